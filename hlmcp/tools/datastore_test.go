package tools

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/awsri/healthlake-mcp/hlmcp/client"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

func stubAPI(t *testing.T) *client.MockAPI {
	t.Helper()
	api := &client.MockAPI{}
	stubControlPlane(t, &fakeControlPlane{api: api, region: "us-west-2"})
	return api
}

func TestCreateDatastore(t *testing.T) {
	api := stubAPI(t)
	api.On("CreateFHIRDatastoreWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.CreateFHIRDatastoreInput) bool {
		return aws.StringValue(input.DatastoreTypeVersion) == "R4" &&
			aws.StringValue(input.DatastoreName) == "clinic" &&
			input.SseConfiguration != nil &&
			aws.StringValue(input.SseConfiguration.KmsEncryptionConfig.CmkType) == "AWS_OWNED_KMS_KEY" &&
			len(input.Tags) == 1 &&
			aws.StringValue(input.Tags[0].Key) == "env" &&
			aws.StringValue(input.Tags[0].Value) == "test"
	})).Return(&healthlake.CreateFHIRDatastoreOutput{
		DatastoreId:     aws.String("abc123"),
		DatastoreStatus: aws.String("CREATING"),
	}, nil)

	res, err := createDatastore(context.Background(), callReq(map[string]interface{}{
		"datastore_type_version": "R4",
		"datastore_name":         "clinic",
		"sse_configuration": map[string]interface{}{
			"KmsEncryptionConfig": map[string]interface{}{"CmkType": "AWS_OWNED_KMS_KEY"},
		},
		"tags": []interface{}{map[string]interface{}{"Key": "env", "Value": "test"}},
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "abc123")
	api.AssertExpectations(t)
}

func TestCreateDatastoreMissingVersion(t *testing.T) {
	api := stubAPI(t)

	_, err := createDatastore(context.Background(), callReq(map[string]interface{}{}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	api.AssertNotCalled(t, "CreateFHIRDatastoreWithContext", mock.Anything, mock.Anything)
}

func TestCreateDatastoreBadTagShape(t *testing.T) {
	api := stubAPI(t)

	_, err := createDatastore(context.Background(), callReq(map[string]interface{}{
		"datastore_type_version": "R4",
		"tags":                   []interface{}{"not-an-object"},
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	api.AssertNotCalled(t, "CreateFHIRDatastoreWithContext", mock.Anything, mock.Anything)
}

func TestDeleteDatastore(t *testing.T) {
	api := stubAPI(t)
	api.On("DeleteFHIRDatastoreWithContext", mock.Anything, &healthlake.DeleteFHIRDatastoreInput{
		DatastoreId: aws.String("abc123"),
	}).Return(&healthlake.DeleteFHIRDatastoreOutput{
		DatastoreId:     aws.String("abc123"),
		DatastoreStatus: aws.String("DELETING"),
	}, nil)

	res, err := deleteDatastore(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "abc123",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "DELETING")
	api.AssertExpectations(t)
}

func TestDescribeDatastoreAWSFailure(t *testing.T) {
	api := stubAPI(t)
	api.On("DescribeFHIRDatastoreWithContext", mock.Anything, mock.Anything).
		Return(nil, awserr.New("ResourceNotFoundException", "Datastore not found", nil))

	_, err := describeDatastore(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "missing",
	}))
	require.Error(t, err)

	// The shared wrapper turns the raw SDK error into the normalized string.
	handler := wrapHandler("describe_datastore", describeDatastore)
	res, err := handler(context.Background(), callReq(map[string]interface{}{
		"datastore_id": "missing",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Equal(t, "AWS HealthLake Error (ResourceNotFoundException): Datastore not found", resultText(t, res))
}

func TestListDatastoresFilter(t *testing.T) {
	api := stubAPI(t)
	api.On("ListFHIRDatastoresWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.ListFHIRDatastoresInput) bool {
		return input.Filter != nil &&
			aws.StringValue(input.Filter.DatastoreName) == "clinic" &&
			aws.StringValue(input.Filter.DatastoreStatus) == "ACTIVE" &&
			input.Filter.CreatedAfter != nil &&
			input.Filter.CreatedAfter.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			aws.Int64Value(input.MaxResults) == 10 &&
			aws.StringValue(input.NextToken) == "tok"
	})).Return(&healthlake.ListFHIRDatastoresOutput{}, nil)

	_, err := listDatastores(context.Background(), callReq(map[string]interface{}{
		"filter": map[string]interface{}{
			"DatastoreName":   "clinic",
			"DatastoreStatus": "ACTIVE",
			"CreatedAfter":    "2024-01-01",
		},
		"max_results": float64(10),
		"next_token":  "tok",
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestListDatastoresBadFilterDate(t *testing.T) {
	api := stubAPI(t)

	_, err := listDatastores(context.Background(), callReq(map[string]interface{}{
		"filter": map[string]interface{}{"CreatedBefore": "last tuesday"},
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	api.AssertNotCalled(t, "ListFHIRDatastoresWithContext", mock.Anything, mock.Anything)
}

func TestTagResource(t *testing.T) {
	api := stubAPI(t)
	api.On("TagResourceWithContext", mock.Anything, mock.MatchedBy(func(input *healthlake.TagResourceInput) bool {
		return aws.StringValue(input.ResourceARN) == "arn:aws:healthlake:::datastore/abc" &&
			len(input.Tags) == 2
	})).Return(&healthlake.TagResourceOutput{}, nil)

	_, err := tagResource(context.Background(), callReq(map[string]interface{}{
		"resource_arn": "arn:aws:healthlake:::datastore/abc",
		"tags": []interface{}{
			map[string]interface{}{"Key": "env", "Value": "test"},
			map[string]interface{}{"Key": "team", "Value": "data"},
		},
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestTagResourceEmptyTags(t *testing.T) {
	api := stubAPI(t)

	_, err := tagResource(context.Background(), callReq(map[string]interface{}{
		"resource_arn": "arn:aws:healthlake:::datastore/abc",
		"tags":         []interface{}{},
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	api.AssertNotCalled(t, "TagResourceWithContext", mock.Anything, mock.Anything)
}

func TestUntagResource(t *testing.T) {
	api := stubAPI(t)
	api.On("UntagResourceWithContext", mock.Anything, &healthlake.UntagResourceInput{
		ResourceARN: aws.String("arn:aws:healthlake:::datastore/abc"),
		TagKeys:     aws.StringSlice([]string{"env", "team"}),
	}).Return(&healthlake.UntagResourceOutput{}, nil)

	_, err := untagResource(context.Background(), callReq(map[string]interface{}{
		"resource_arn": "arn:aws:healthlake:::datastore/abc",
		"tag_keys":     []interface{}{"env", "team"},
	}))
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestListTagsForResource(t *testing.T) {
	api := stubAPI(t)
	api.On("ListTagsForResourceWithContext", mock.Anything, &healthlake.ListTagsForResourceInput{
		ResourceARN: aws.String("arn:aws:healthlake:::datastore/abc"),
	}).Return(&healthlake.ListTagsForResourceOutput{
		Tags: []*healthlake.Tag{{Key: aws.String("env"), Value: aws.String("test")}},
	}, nil)

	res, err := listTagsForResource(context.Background(), callReq(map[string]interface{}{
		"resource_arn": "arn:aws:healthlake:::datastore/abc",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "env")
	api.AssertExpectations(t)
}
