package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/awsri/healthlake-mcp/hlmcp/client"
	"github.com/awsri/healthlake-mcp/hlmcp/client/fhir"
	"github.com/awsri/healthlake-mcp/hlmcp/constants"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

func resourceTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("read_fhir_resource",
			mcp.WithDescription("Read a FHIR resource by ID."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type (e.g., Patient, Observation)")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: readFHIRResource},
		tool{def: mcp.NewTool("vread_fhir_resource",
			mcp.WithDescription("Read a specific historical version of a FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource")),
			mcp.WithString("version_id", mcp.Required(), mcp.Description("The version to read")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: vreadFHIRResource},
		tool{def: mcp.NewTool("search_fhir_resources",
			mcp.WithDescription("Search for FHIR resources of a given type."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type to search")),
			mcp.WithObject("query_parameters", mcp.Description("FHIR search parameters (e.g., {\"family\": \"Doe\", \"_count\": 10})")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: searchFHIRResources},
		tool{def: mcp.NewTool("create_fhir_resource",
			mcp.WithDescription("Create a new FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithObject("resource_data", mcp.Required(), mcp.Description("The FHIR resource body; its resourceType must match resource_type")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: createFHIRResource},
		tool{def: mcp.NewTool("update_fhir_resource",
			mcp.WithDescription("Update an existing FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource to update")),
			mcp.WithObject("resource_data", mcp.Required(), mcp.Description("The updated FHIR resource body")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: updateFHIRResource},
		tool{def: mcp.NewTool("patch_fhir_resource",
			mcp.WithDescription("Apply a JSON Patch to a FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource to patch")),
			mcp.WithArray("patch_operations", mcp.Required(), mcp.Description("JSON Patch operations (RFC 6902)")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: patchFHIRResource},
		tool{def: mcp.NewTool("delete_fhir_resource",
			mcp.WithDescription("Delete a FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource to delete")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: deleteFHIRResource},
		tool{def: mcp.NewTool("get_resource_history",
			mcp.WithDescription("Retrieve the version history of a FHIR resource."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The FHIR resource type")),
			mcp.WithString("resource_id", mcp.Required(), mcp.Description("The ID of the FHIR resource")),
			mcp.WithObject("query_parameters", mcp.Description("History parameters (e.g., {\"_since\": ..., \"_count\": ...})")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: getResourceHistory},
	}
}

// dataPlane resolves the datastore endpoint and builds the request executor.
// Every invocation re-resolves the endpoint via a fresh describe call.
func dataPlane(ctx context.Context, args map[string]interface{}, datastoreID string) (fhir.Client, string, string, error) {
	region := client.Region(optString(args, "region"))

	cp, err := newControlPlane(region)
	if err != nil {
		return nil, "", "", err
	}

	endpoint, err := cp.ResolveEndpoint(ctx, datastoreID)
	if err != nil {
		return nil, "", "", err
	}

	fc, err := newFHIRClient(region)
	if err != nil {
		return nil, "", "", err
	}

	return fc, endpoint, region, nil
}

func readFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, req.GetArguments(), datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, resourceType, resourceID),
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func vreadFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}
	versionID, err := requireString(req, "version_id")
	if err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, req.GetArguments(), datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, resourceType, resourceID, "_history", versionID),
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func searchFHIRResources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, resourceType),
		Region: region,
		Query:  toQueryValues(optObject(args, "query_parameters")),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func createFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("create_fhir_resource"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	resourceData, err := requireObject(args, "resource_data")
	if err != nil {
		return nil, err
	}
	if err := checkResourceType(resourceData, resourceType); err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodPost,
		URL:    client.ResourceURL(endpoint, resourceType),
		Region: region,
		Body:   resourceData,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func updateFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("update_fhir_resource"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	resourceData, err := requireObject(args, "resource_data")
	if err != nil {
		return nil, err
	}
	if err := checkResourceType(resourceData, resourceType); err != nil {
		return nil, err
	}

	// The resource id in the body must agree with the path; default it when
	// absent.
	if id, ok := resourceData["id"].(string); ok && id != "" {
		if id != resourceID {
			return nil, &customErrors.ValidationError{
				Msg: fmt.Sprintf("resource_data.id %q does not match resource_id %q", id, resourceID),
			}
		}
	} else {
		resourceData["id"] = resourceID
	}

	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodPut,
		URL:    client.ResourceURL(endpoint, resourceType, resourceID),
		Region: region,
		Body:   resourceData,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func patchFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("patch_fhir_resource"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	ops := optList(args, "patch_operations")
	if len(ops) == 0 {
		return nil, &customErrors.ValidationError{Msg: "missing required argument \"patch_operations\""}
	}

	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method:  http.MethodPatch,
		URL:     client.ResourceURL(endpoint, resourceType, resourceID),
		Region:  region,
		Body:    ops,
		Headers: map[string]string{"Content-Type": constants.JSONPatchContentType},
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func deleteFHIRResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("delete_fhir_resource"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, req.GetArguments(), datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodDelete,
		URL:    client.ResourceURL(endpoint, resourceType, resourceID),
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func getResourceHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}
	resourceID, err := requireString(req, "resource_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, resourceType, resourceID, "_history"),
		Region: region,
		Query:  toQueryValues(optObject(args, "query_parameters")),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

// checkResourceType rejects payloads whose discriminator does not match the
// resource-type segment of the request URL. This is a local precondition, not
// a network error.
func checkResourceType(resourceData map[string]interface{}, resourceType string) error {
	rt, _ := resourceData["resourceType"].(string)
	if rt != resourceType {
		return &customErrors.ValidationError{
			Msg: fmt.Sprintf("resource_data.resourceType %q does not match resource_type %q", rt, resourceType),
		}
	}
	return nil
}
