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

func bundleTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("get_capability_statement",
			mcp.WithDescription("Fetch the datastore's FHIR CapabilityStatement."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: getCapabilityStatement},
		tool{def: mcp.NewTool("submit_fhir_bundle",
			mcp.WithDescription("Submit a batch or transaction Bundle to the datastore."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithObject("bundle", mcp.Required(), mcp.Description("A FHIR Bundle of type batch or transaction")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: submitFHIRBundle},
		tool{def: mcp.NewTool("search_compartment",
			mcp.WithDescription("Search resources within a compartment (e.g., all Observations for a Patient)."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("compartment_id", mcp.Required(), mcp.Description("The ID of the compartment owner resource")),
			mcp.WithString("resource_type", mcp.Required(), mcp.Description("The resource type to search within the compartment")),
			mcp.WithString("compartment", mcp.Description("The compartment type, defaults to Patient")),
			mcp.WithObject("query_parameters", mcp.Description("Additional FHIR search parameters")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: searchCompartment},
	}
}

func getCapabilityStatement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, req.GetArguments(), datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, "metadata"),
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func submitFHIRBundle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("submit_fhir_bundle"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	bundle, err := requireObject(args, "bundle")
	if err != nil {
		return nil, err
	}
	if err := checkBundle(bundle); err != nil {
		return nil, err
	}

	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	// Bundles post to the service root, not a type endpoint.
	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodPost,
		URL:    endpoint,
		Region: region,
		Body:   bundle,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func searchCompartment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	compartmentID, err := requireString(req, "compartment_id")
	if err != nil {
		return nil, err
	}
	resourceType, err := requireString(req, "resource_type")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	compartment := optString(args, "compartment")
	if compartment == "" {
		compartment = "Patient"
	}

	fc, endpoint, region, err := dataPlane(ctx, args, datastoreID)
	if err != nil {
		return nil, err
	}

	result, err := fc.Do(ctx, fhir.Request{
		Method: http.MethodGet,
		URL:    client.ResourceURL(endpoint, compartment, compartmentID, resourceType),
		Region: region,
		Query:  toQueryValues(optObject(args, "query_parameters")),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(result)
}

func checkBundle(bundle map[string]interface{}) error {
	if rt, _ := bundle["resourceType"].(string); rt != "Bundle" {
		return &customErrors.ValidationError{Msg: fmt.Sprintf("bundle.resourceType must be \"Bundle\", got %q", rt)}
	}
	bt, _ := bundle["type"].(string)
	if bt != constants.BundleTypeBatch && bt != constants.BundleTypeTransaction {
		return &customErrors.ValidationError{
			Msg: fmt.Sprintf("bundle.type must be %q or %q, got %q", constants.BundleTypeBatch, constants.BundleTypeTransaction, bt),
		}
	}
	return nil
}
