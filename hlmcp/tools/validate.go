package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// requiredFields lists the per-type fields checked beyond the baseline
// resourceType requirement. Types not listed here only get the baseline check.
var requiredFields = map[string][]string{
	"Observation":       {"status", "code"},
	"Condition":         {"subject"},
	"Encounter":         {"status", "class"},
	"DiagnosticReport":  {"status", "code"},
	"MedicationRequest": {"status", "intent", "subject"},
}

func validationTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("validate_fhir_resource",
			mcp.WithDescription("Check a FHIR resource for basic structural problems before submitting it. Local only, no schema download."),
			mcp.WithObject("resource_data", mcp.Required(), mcp.Description("The FHIR resource to check")),
		), handler: validateFHIRResource},
	}
}

func validateFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	resourceData, err := requireObject(args, "resource_data")
	if err != nil {
		return nil, err
	}

	resourceType, issues := checkRequiredFields(resourceData)
	return jsonResult(map[string]interface{}{
		"valid":        len(issues) == 0,
		"resourceType": resourceType,
		"issues":       issues,
	})
}

func checkRequiredFields(resourceData map[string]interface{}) (string, []string) {
	issues := []string{}

	resourceType, _ := resourceData["resourceType"].(string)
	if resourceType == "" {
		issues = append(issues, "missing required field \"resourceType\"")
		return resourceType, issues
	}

	for _, field := range requiredFields[resourceType] {
		if isMissing(resourceData[field]) {
			issues = append(issues, fmt.Sprintf("%s: missing required field %q", resourceType, field))
		}
	}
	return resourceType, issues
}

func isMissing(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case map[string]interface{}:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	default:
		return false
	}
}
