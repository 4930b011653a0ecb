package tools

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

func TestStartFHIRImportJob(t *testing.T) {
	api := stubAPI(t)
	api.On("StartFHIRImportJobWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.StartFHIRImportJobInput) bool {
		return aws.StringValue(input.DatastoreId) == "abc123" &&
			aws.StringValue(input.DataAccessRoleArn) == "arn:aws:iam::123:role/import" &&
			aws.StringValue(input.InputDataConfig.S3Uri) == "s3://bucket/in" &&
			input.JobOutputDataConfig.S3Configuration != nil &&
			aws.StringValue(input.JobOutputDataConfig.S3Configuration.S3Uri) == "s3://bucket/out" &&
			aws.StringValue(input.JobOutputDataConfig.S3Configuration.KmsKeyId) == "key-1" &&
			aws.StringValue(input.JobName) == "nightly"
	})).Return(&healthlake.StartFHIRImportJobOutput{
		JobId:     aws.String("job-1"),
		JobStatus: aws.String("SUBMITTED"),
	}, nil)

	res, err := startFHIRImportJob(context.Background(), callReq(map[string]interface{}{
		"datastore_id":         "abc123",
		"data_access_role_arn": "arn:aws:iam::123:role/import",
		"input_data_config":    map[string]interface{}{"S3Uri": "s3://bucket/in"},
		"job_output_data_config": map[string]interface{}{
			"S3Configuration": map[string]interface{}{"S3Uri": "s3://bucket/out", "KmsKeyId": "key-1"},
		},
		"job_name": "nightly",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "job-1")
	api.AssertExpectations(t)
}

func TestStartFHIRImportJobMissingConfig(t *testing.T) {
	api := stubAPI(t)

	_, err := startFHIRImportJob(context.Background(), callReq(map[string]interface{}{
		"datastore_id":         "abc123",
		"data_access_role_arn": "arn:aws:iam::123:role/import",
		"input_data_config":    map[string]interface{}{"S3Uri": "s3://bucket/in"},
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "job_output_data_config")
	api.AssertNotCalled(t, "StartFHIRImportJobWithContext", mock.Anything, mock.Anything)
}

func TestStartFHIRExportJob(t *testing.T) {
	api := stubAPI(t)
	api.On("StartFHIRExportJobWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.StartFHIRExportJobInput) bool {
		return aws.StringValue(input.DatastoreId) == "abc123" &&
			aws.StringValue(input.DataAccessRoleArn) == "arn:aws:iam::123:role/export" &&
			input.OutputDataConfig.S3Configuration != nil &&
			aws.StringValue(input.OutputDataConfig.S3Configuration.S3Uri) == "s3://bucket/export" &&
			aws.StringValue(input.ClientToken) == "tok-1"
	})).Return(&healthlake.StartFHIRExportJobOutput{
		JobId:     aws.String("job-2"),
		JobStatus: aws.String("SUBMITTED"),
	}, nil)

	_, err := startFHIRExportJob(context.Background(), callReq(map[string]interface{}{
		"datastore_id":         "abc123",
		"data_access_role_arn": "arn:aws:iam::123:role/export",
		"output_data_config": map[string]interface{}{
			"S3Configuration": map[string]interface{}{"S3Uri": "s3://bucket/export"},
		},
		"client_token": "tok-1",
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestDescribeFHIRImportJob(t *testing.T) {
	api := stubAPI(t)
	api.On("DescribeFHIRImportJobWithContext", mock.Anything, &healthlake.DescribeFHIRImportJobInput{
		DatastoreId: aws.String("abc123"),
		JobId:       aws.String("job-1"),
	}).Return(&healthlake.DescribeFHIRImportJobOutput{
		ImportJobProperties: &healthlake.ImportJobProperties{
			JobId:     aws.String("job-1"),
			JobStatus: aws.String("COMPLETED"),
		},
	}, nil)

	res, err := describeFHIRImportJob(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "abc123",
		"job_id":       "job-1",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "COMPLETED")
	api.AssertExpectations(t)
}

func TestDescribeFHIRExportJob(t *testing.T) {
	api := stubAPI(t)
	api.On("DescribeFHIRExportJobWithContext", mock.Anything, &healthlake.DescribeFHIRExportJobInput{
		DatastoreId: aws.String("abc123"),
		JobId:       aws.String("job-2"),
	}).Return(&healthlake.DescribeFHIRExportJobOutput{
		ExportJobProperties: &healthlake.ExportJobProperties{
			JobId:     aws.String("job-2"),
			JobStatus: aws.String("IN_PROGRESS"),
		},
	}, nil)

	_, err := describeFHIRExportJob(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "abc123",
		"job_id":       "job-2",
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestListFHIRImportJobsFilters(t *testing.T) {
	api := stubAPI(t)
	api.On("ListFHIRImportJobsWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.ListFHIRImportJobsInput) bool {
		return aws.StringValue(input.DatastoreId) == "abc123" &&
			aws.StringValue(input.JobName) == "nightly" &&
			aws.StringValue(input.JobStatus) == "COMPLETED" &&
			aws.Int64Value(input.MaxResults) == 5 &&
			input.SubmittedAfter != nil &&
			input.SubmittedAfter.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) &&
			input.SubmittedBefore == nil
	})).Return(&healthlake.ListFHIRImportJobsOutput{}, nil)

	_, err := listFHIRImportJobs(context.Background(), callReq(map[string]interface{}{
		"datastore_id":    "abc123",
		"job_name":        "nightly",
		"job_status":      "COMPLETED",
		"max_results":     float64(5),
		"submitted_after": "2024-06-01T12:00:00Z",
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestListFHIRExportJobsBadDate(t *testing.T) {
	api := stubAPI(t)

	_, err := listFHIRExportJobs(context.Background(), callReq(map[string]interface{}{
		"datastore_id":     "abc123",
		"submitted_before": "not-a-date",
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	api.AssertNotCalled(t, "ListFHIRExportJobsWithContext", mock.Anything, mock.Anything)
}

func TestListFHIRExportJobs(t *testing.T) {
	api := stubAPI(t)
	api.On("ListFHIRExportJobsWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.ListFHIRExportJobsInput) bool {
		return aws.StringValue(input.DatastoreId) == "abc123" &&
			aws.StringValue(input.NextToken) == "tok"
	})).Return(&healthlake.ListFHIRExportJobsOutput{}, nil)

	_, err := listFHIRExportJobs(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "abc123",
		"next_token":   "tok",
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}
