package tools

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/awsri/healthlake-mcp/hlmcp/client"
)

func jobTools() []Tool {
	return []Tool{
		tool{def: mcp.NewTool("start_fhir_import_job",
			mcp.WithDescription("Start a FHIR import job."),
			mcp.WithObject("input_data_config", mcp.Required(), mcp.Description("The input properties of the FHIR import job, e.g. {\"S3Uri\": ...}")),
			mcp.WithObject("job_output_data_config", mcp.Required(), mcp.Description("The output data configuration, e.g. {\"S3Configuration\": {\"S3Uri\": ..., \"KmsKeyId\": ...}}")),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated datastore ID")),
			mcp.WithString("data_access_role_arn", mcp.Required(), mcp.Description("The ARN that gives HealthLake access permission")),
			mcp.WithString("job_name", mcp.Description("Name of the FHIR import job")),
			mcp.WithString("client_token", mcp.Description("User-provided token for idempotency")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: startFHIRImportJob},
		tool{def: mcp.NewTool("start_fhir_export_job",
			mcp.WithDescription("Start a FHIR export job."),
			mcp.WithObject("output_data_config", mcp.Required(), mcp.Description("The output data configuration")),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("data_access_role_arn", mcp.Required(), mcp.Description("The ARN that gives HealthLake access permission")),
			mcp.WithString("job_name", mcp.Description("User-generated name for the export job")),
			mcp.WithString("client_token", mcp.Description("User-provided token for idempotency")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: startFHIRExportJob},
		tool{def: mcp.NewTool("describe_fhir_import_job",
			mcp.WithDescription("Describe a FHIR import job."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("job_id", mcp.Required(), mcp.Description("The AWS-generated job ID")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: describeFHIRImportJob},
		tool{def: mcp.NewTool("describe_fhir_export_job",
			mcp.WithDescription("Describe a FHIR export job."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("job_id", mcp.Required(), mcp.Description("The AWS-generated job ID")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: describeFHIRExportJob},
		tool{def: mcp.NewTool("list_fhir_import_jobs",
			mcp.WithDescription("List FHIR import jobs."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("next_token", mcp.Description("Token for pagination")),
			mcp.WithNumber("max_results", mcp.Description("Maximum number of results to return")),
			mcp.WithString("job_name", mcp.Description("Job name filter")),
			mcp.WithString("job_status", mcp.Description("Job status filter")),
			mcp.WithString("submitted_before", mcp.Description("Only jobs submitted before this date")),
			mcp.WithString("submitted_after", mcp.Description("Only jobs submitted after this date")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: listFHIRImportJobs},
		tool{def: mcp.NewTool("list_fhir_export_jobs",
			mcp.WithDescription("List FHIR export jobs."),
			mcp.WithString("datastore_id", mcp.Required(), mcp.Description("The AWS-generated ID for the datastore")),
			mcp.WithString("next_token", mcp.Description("Token for pagination")),
			mcp.WithNumber("max_results", mcp.Description("Maximum number of results to return")),
			mcp.WithString("job_name", mcp.Description("Job name filter")),
			mcp.WithString("job_status", mcp.Description("Job status filter")),
			mcp.WithString("submitted_before", mcp.Description("Only jobs submitted before this date")),
			mcp.WithString("submitted_after", mcp.Description("Only jobs submitted after this date")),
			mcp.WithString("region", mcp.Description(regionDescription)),
		), handler: listFHIRExportJobs},
	}
}

func startFHIRImportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("start_fhir_import_job"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	roleArn, err := requireString(req, "data_access_role_arn")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	inputConfig, err := requireObject(args, "input_data_config")
	if err != nil {
		return nil, err
	}
	outputConfig, err := requireObject(args, "job_output_data_config")
	if err != nil {
		return nil, err
	}

	input := &healthlake.StartFHIRImportJobInput{
		DatastoreId:         aws.String(datastoreID),
		DataAccessRoleArn:   aws.String(roleArn),
		InputDataConfig:     &healthlake.InputDataConfig{},
		JobOutputDataConfig: &healthlake.OutputDataConfig{},
	}
	if err := decodeObject(inputConfig, input.InputDataConfig, "input_data_config"); err != nil {
		return nil, err
	}
	if err := decodeObject(outputConfig, input.JobOutputDataConfig, "job_output_data_config"); err != nil {
		return nil, err
	}
	if v := optString(args, "job_name"); v != "" {
		input.JobName = aws.String(v)
	}
	if v := optString(args, "client_token"); v != "" {
		input.ClientToken = aws.String(v)
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().StartFHIRImportJobWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func startFHIRExportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := checkMutationAllowed("start_fhir_export_job"); err != nil {
		return nil, err
	}

	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	roleArn, err := requireString(req, "data_access_role_arn")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	outputConfig, err := requireObject(args, "output_data_config")
	if err != nil {
		return nil, err
	}

	input := &healthlake.StartFHIRExportJobInput{
		DatastoreId:       aws.String(datastoreID),
		DataAccessRoleArn: aws.String(roleArn),
		OutputDataConfig:  &healthlake.OutputDataConfig{},
	}
	if err := decodeObject(outputConfig, input.OutputDataConfig, "output_data_config"); err != nil {
		return nil, err
	}
	if v := optString(args, "job_name"); v != "" {
		input.JobName = aws.String(v)
	}
	if v := optString(args, "client_token"); v != "" {
		input.ClientToken = aws.String(v)
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().StartFHIRExportJobWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func describeFHIRImportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	jobID, err := requireString(req, "job_id")
	if err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(req.GetString("region", "")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().DescribeFHIRImportJobWithContext(ctx, &healthlake.DescribeFHIRImportJobInput{
		DatastoreId: aws.String(datastoreID),
		JobId:       aws.String(jobID),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func describeFHIRExportJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}
	jobID, err := requireString(req, "job_id")
	if err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(req.GetString("region", "")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().DescribeFHIRExportJobWithContext(ctx, &healthlake.DescribeFHIRExportJobInput{
		DatastoreId: aws.String(datastoreID),
		JobId:       aws.String(jobID),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func listFHIRImportJobs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	input := &healthlake.ListFHIRImportJobsInput{
		DatastoreId: aws.String(datastoreID),
	}
	if err := applyJobListFilters(args, &input.NextToken, &input.MaxResults, &input.JobName,
		&input.JobStatus, &input.SubmittedBefore, &input.SubmittedAfter); err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().ListFHIRImportJobsWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func listFHIRExportJobs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datastoreID, err := requireString(req, "datastore_id")
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	input := &healthlake.ListFHIRExportJobsInput{
		DatastoreId: aws.String(datastoreID),
	}
	if err := applyJobListFilters(args, &input.NextToken, &input.MaxResults, &input.JobName,
		&input.JobStatus, &input.SubmittedBefore, &input.SubmittedAfter); err != nil {
		return nil, err
	}

	cp, err := newControlPlane(client.Region(optString(args, "region")))
	if err != nil {
		return nil, err
	}

	out, err := cp.API().ListFHIRExportJobsWithContext(ctx, input)
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

// applyJobListFilters fills the fields shared by the import and export job
// list inputs, which the SDK defines as distinct types.
func applyJobListFilters(args map[string]interface{}, nextToken **string, maxResults **int64,
	jobName, jobStatus **string, submittedBefore, submittedAfter **time.Time) error {

	if v := optString(args, "next_token"); v != "" {
		*nextToken = aws.String(v)
	}
	*maxResults = optInt64(args, "max_results")
	if v := optString(args, "job_name"); v != "" {
		*jobName = aws.String(v)
	}
	if v := optString(args, "job_status"); v != "" {
		*jobStatus = aws.String(v)
	}

	before, err := optTime(args, "submitted_before")
	if err != nil {
		return err
	}
	*submittedBefore = before

	after, err := optTime(args, "submitted_after")
	if err != nil {
		return err
	}
	*submittedAfter = after

	return nil
}
