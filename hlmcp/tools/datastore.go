package tools

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/awsri/healthlake-mcp/hlmcp/client"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

const regionDescription = "AWS region name (defaults to AWS_REGION env var or us-west-2)"

func datastoreTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("create_datastore",
			mcp.WithDescription("Create a new HealthLake datastore."),
			mcp.WithString("datastore_type_version", mcp.Required(), mcp.Description("The FHIR version of the datastore (R4)")),
			mcp.WithString("datastore_name", mcp.Description("User-generated name for the datastore")),
			mcp.WithObject("sse_configuration", mcp.Description("Server-side encryption configuration")),
			mcp.WithObject("preload_data_config", mcp.Description("Parameter to preload data upon creation")),
			mcp.WithString("client_token", mcp.Description("User-provided token for idempotency")),
			mcp.WithArray("tags", mcp.Description("Tags to apply to the datastore, each with Key and Value")),
			mcp.WithObject("identity_provider_configuration", mcp.Description("Identity provider configuration")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: createDatastore},
		tool{def: mcp.NewTool("delete_datastore",
			mcp.WithDescription("Delete a HealthLake datastore."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: deleteDatastore},
		tool{def: mcp.NewTool("describe_datastore",
			mcp.WithDescription("Describe a HealthLake datastore."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: describeDatastore},
		tool{def: mcp.NewTool("list_datastores",
			mcp.WithDescription("List HealthLake datastores."),
			mcp.WithObject("filter", mcp.Description("Filter with DatastoreName, DatastoreStatus, CreatedBefore, CreatedAfter")),
			mcp.WithString("next_token", mcp.Description("Token for pagination")),
			mcp.WithNumber("max_results", mcp.Description("Maximum number of results to return")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: listDatastores},
		tool{def: mcp.NewTool("tag_resource",
			mcp.WithDescription("Add tags to a HealthLake resource."),
			mcp.WithString("resource_arn", mcp.Required(), mcp.Description("The Amazon Resource Name (ARN) of the resource")),
			mcp.WithArray("tags", mcp.Required(), mcp.Description("Tags to add, each with Key and Value")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: tagResource},
		tool{def: mcp.NewTool("untag_resource",
			mcp.WithDescription("Remove tags from a HealthLake resource."),
			mcp.WithString("resource_arn", mcp.Required(), mcp.Description("The Amazon Resource Name (ARN) of the resource")),
			mcp.WithArray("tag_keys", mcp.Required(), mcp.Description("Tag keys to remove from the resource")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: untagResource},
		tool{def: mcp.NewTool("list_tags_for_resource",
			mcp.WithDescription("List tags for a HealthLake resource."),
			mcp.WithString("resource_arn", mcp.Required(), mcp.Description("The Amazon Resource Name (ARN) of the resource")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: listTagsForResource},
	}
}

func createDatastore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("create_datastore"); err != nil {
		return nil, err
	}

	version, err := requireString(req, "datastore_type_version")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	input := &healthlake.CreateFHIRDatastoreInput{
		DatastoreTypeVersion: aws.String(version),
	}
	if v := optString(args, "datastore_name"); v != "" {
		input.DatastoreName = aws.String(v)
	}
	if v := optString(args, "client_token"); v != "" {
		input.ClientToken = aws.String(v)
	}
	if m := optObject(args, "sse_configuration"); m != nil {
		input.SseConfiguration = &healthlake.SseConfiguration{}
		if err := decodeObject(m, input.SseConfiguration, "sse_configuration"); err != nil {
			return nil, err
		}
	}
	if m := optObject(args, "preload_data_config"); m != nil {
		input.PreloadDataConfig = &healthlake.PreloadDataConfig{}
		if err := decodeObject(m, input.PreloadDataConfig, "preload_data_config"); err != nil {
			return nil, err
		}
	}
	if m := optObject(args, "identity_provider_configuration"); m != nil {
		input.IdentityProviderConfiguration = &healthlake.IdentityProviderConfiguration{}
		if err := decodeObject(m, input.IdentityProviderConfiguration, "identity_provider_configuration"); err != nil {
			return nil, err
		}
	}
	tags, err := tagList(args, "tags")
	if err != nil {
		return nil, err
	}
	input.Tags = tags

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().CreateFHIRDatastoreWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func deleteDatastore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("delete_datastore"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(req.GetString("region", "")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().DeleteFHIRDatastoreWithContext(ctx, &healthlake.DeleteFHIRDatastoreInput{
		DatastoreId: aws.String(datastoreID),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func describeDatastore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(req.GetString("region", "")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().DescribeFHIRDatastoreWithContext(ctx, &healthlake.DescribeFHIRDatastoreInput{
		DatastoreId: aws.String(datastoreID),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func listDatastores(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	input := &healthlake.ListFHIRDatastoresInput{}
	if m := optObject(args, "filter"); m != nil {
		filter, err := buildDatastoreFilter(m)
		if err != nil {
			return nil, err
		}
		input.Filter = filter
	}
	if v := optString(args, "next_token"); v != "" {
		input.NextToken = aws.String(v)
	}
	input.MaxResults = optInt64(args, "max_results")

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().ListFHIRDatastoresWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func tagResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("tag_resource"); err != nil {
		return nil, err
	}

	resourceARN, err := requireString(req, "resource_arn")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	tags, err := tagList(args, "tags")
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, &customErrors.ValidationError{Msg: "missing required argument \"tags\""}
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().TagResourceWithContext(ctx, &healthlake.TagResourceInput{
		ResourceARN: aws.String(resourceARN),
		Tags:        tags,
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func untagResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("untag_resource"); err != nil {
		return nil, err
	}

	resourceARN, err := requireString(req, "resource_arn")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	keys := optStringSlice(args, "tag_keys")
	if len(keys) == 0 {
		return nil, &customErrors.ValidationError{Msg: "missing required argument \"tag_keys\""}
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().UntagResourceWithContext(ctx, &healthlake.UntagResourceInput{
		ResourceARN: aws.String(resourceARN),
		TagKeys:     aws.StringSlice(keys),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func listTagsForResource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resourceARN, err := requireString(req, "resource_arn")
	if err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(req.GetString("region", "")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().ListTagsForResourceWithContext(ctx, &healthlake.ListTagsForResourceInput{
		ResourceARN: aws.String(resourceARN),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func buildDatastoreFilter(m map[string]interface{}) (*healthlake.DatastoreFilter, error) {
	filter := &healthlake.DatastoreFilter{}
	if v := optString(m, "DatastoreName"); v != "" {
		filter.DatastoreName = aws.String(v)
	}
	if v := optString(m, "DatastoreStatus"); v != "" {
		filter.DatastoreStatus = aws.String(v)
	}
	createdBefore, err := optTime(m, "CreatedBefore")
	if err != nil {
		return nil, err
	}
	filter.CreatedBefore = createdBefore
	createdAfter, err := optTime(m, "CreatedAfter")
	if err != nil {
		return nil, err
	}
	filter.CreatedAfter = createdAfter
	return filter, nil
}

func tagList(args map[string]interface{}, key string) ([]*healthlake.Tag, error) {
	items := optList(args, key)
	if items == nil {
		return nil, nil
	}

	tags := make([]*healthlake.Tag, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, &customErrors.ValidationError{
				Msg: fmt.Sprintf("argument %q[%d] must be an object with Key and Value", key, i),
			}
		}
		tag := &healthlake.Tag{}
		if err := decodeObject(m, tag, key); err != nil {
			return nil, err
		}
		if aws.StringValue(tag.Key) == "" {
			return nil, &customErrors.ValidationError{
				Msg: fmt.Sprintf("argument %q[%d] is missing Key", key, i),
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
