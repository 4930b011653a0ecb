package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

// Template tools are purely local; they never touch AWS.
func templateTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("create_patient_template",
			mcp.WithDescription("Build a minimal FHIR Patient resource from demographics. Does not persist anything."),
			mcp.WithString("family_name", mcp.Required(), mcp.Description("Family (last) name")),
			mcp.WithArray("given_names", mcp.Description("Given (first/middle) names in order")),
			mcp.WithString("gender", mcp.Description("Administrative gender: male, female, other, or unknown")),
			mcp.WithString("birth_date", mcp.Description("Date of birth, YYYY-MM-DD")),
		), handler: createPatientTemplate},
		tool{def: mcp.NewTool("create_observation_template",
			mcp.WithDescription("Build a minimal FHIR Observation resource. Does not persist anything."),
			mcp.WithString("status", mcp.Required(), mcp.Description("Observation status (e.g., final, preliminary)")),
			mcp.WithString("code_system", mcp.Required(), mcp.Description("Coding system URI (e.g., http://loinc.org)")),
			mcp.WithString("code", mcp.Required(), mcp.Description("Code within the system")),
			mcp.WithString("display", mcp.Description("Human-readable display for the code")),
			mcp.WithString("subject_reference", mcp.Description("Reference to the subject (e.g., Patient/123)")),
			mcp.WithNumber("value_quantity", mcp.Description("Numeric value of the observation")),
			mcp.WithString("value_unit", mcp.Description("Unit for value_quantity")),
		), handler: createObservationTemplate},
	}
}

func createPatientTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	family, err := requireString(req, "family_name")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	patient := buildPatientTemplate(family, optStringSlice(args, "given_names"), optString(args, "gender"), optString(args, "birth_date"))
	return jsonResult(patient)
}

func createObservationTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := requireString(req, "status")
	if err != nil {
		return nil, err
	}
	system, err := requireString(req, "code_system")
	if err != nil {
		return nil, err
	}
	code, err := requireString(req, "code")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	obs := buildObservationTemplate(status, system, code,
		optString(args, "display"), optString(args, "subject_reference"))

	if raw, ok := args["value_quantity"]; ok {
		value, ok := raw.(float64)
		if !ok {
			return nil, &customErrors.ValidationError{Msg: "value_quantity must be a number"}
		}
		quantity := map[string]interface{}{"value": value}
		if unit := optString(args, "value_unit"); unit != "" {
			quantity["unit"] = unit
		}
		obs["valueQuantity"] = quantity
	}

	return jsonResult(obs)
}

func buildPatientTemplate(family string, given []string, gender, birthDate string) map[string]interface{} {
	name := map[string]interface{}{"family": family}
	if len(given) > 0 {
		name["given"] = given
	}

	patient := map[string]interface{}{
		"resourceType": "Patient",
		"name":         []interface{}{name},
	}
	if gender != "" {
		patient["gender"] = gender
	}
	if birthDate != "" {
		patient["birthDate"] = birthDate
	}
	return patient
}

func buildObservationTemplate(status, system, code, display, subjectRef string) map[string]interface{} {
	coding := map[string]interface{}{
		"system": system,
		"code":   code,
	}
	if display != "" {
		coding["display"] = display
	}

	obs := map[string]interface{}{
		"resourceType": "Observation",
		"status":       status,
		"code": map[string]interface{}{
			"coding": []interface{}{coding},
		},
	}
	if subjectRef != "" {
		obs["subject"] = map[string]interface{}{"reference": subjectRef}
	}
	return obs
}
