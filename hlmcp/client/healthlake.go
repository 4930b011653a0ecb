package client

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/pkg/errors"

	"github.com/awsri/healthlake-mcp/conf"
	hlaws "github.com/awsri/healthlake-mcp/hlmcp/aws"
	"github.com/awsri/healthlake-mcp/hlmcp/constants"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
	"github.com/awsri/healthlake-mcp/log"
)

// API is the subset of the HealthLake management API used by the server.
// Narrowing the SDK interface keeps mocks small.
type API interface {
	CreateFHIRDatastoreWithContext(aws.Context, *healthlake.CreateFHIRDatastoreInput, ...request.Option) (*healthlake.CreateFHIRDatastoreOutput, error)
	DeleteFHIRDatastoreWithContext(aws.Context, *healthlake.DeleteFHIRDatastoreInput, ...request.Option) (*healthlake.DeleteFHIRDatastoreOutput, error)
	DescribeFHIRDatastoreWithContext(aws.Context, *healthlake.DescribeFHIRDatastoreInput, ...request.Option) (*healthlake.DescribeFHIRDatastoreOutput, error)
	ListFHIRDatastoresWithContext(aws.Context, *healthlake.ListFHIRDatastoresInput, ...request.Option) (*healthlake.ListFHIRDatastoresOutput, error)
	StartFHIRImportJobWithContext(aws.Context, *healthlake.StartFHIRImportJobInput, ...request.Option) (*healthlake.StartFHIRImportJobOutput, error)
	StartFHIRExportJobWithContext(aws.Context, *healthlake.StartFHIRExportJobInput, ...request.Option) (*healthlake.StartFHIRExportJobOutput, error)
	DescribeFHIRImportJobWithContext(aws.Context, *healthlake.DescribeFHIRImportJobInput, ...request.Option) (*healthlake.DescribeFHIRImportJobOutput, error)
	DescribeFHIRExportJobWithContext(aws.Context, *healthlake.DescribeFHIRExportJobInput, ...request.Option) (*healthlake.DescribeFHIRExportJobOutput, error)
	ListFHIRImportJobsWithContext(aws.Context, *healthlake.ListFHIRImportJobsInput, ...request.Option) (*healthlake.ListFHIRImportJobsOutput, error)
	ListFHIRExportJobsWithContext(aws.Context, *healthlake.ListFHIRExportJobsInput, ...request.Option) (*healthlake.ListFHIRExportJobsOutput, error)
	TagResourceWithContext(aws.Context, *healthlake.TagResourceInput, ...request.Option) (*healthlake.TagResourceOutput, error)
	UntagResourceWithContext(aws.Context, *healthlake.UntagResourceInput, ...request.Option) (*healthlake.UntagResourceOutput, error)
	ListTagsForResourceWithContext(aws.Context, *healthlake.ListTagsForResourceInput, ...request.Option) (*healthlake.ListTagsForResourceOutput, error)
}

// Ensure the real SDK client satisfies the interface
var _ API = (*healthlake.HealthLake)(nil)

// ControlPlane wraps the HealthLake management API together with endpoint
// resolution for the data plane.
type ControlPlane interface {
	API() API
	Region() string
	ResolveEndpoint(ctx context.Context, datastoreID string) (string, error)
}

type HealthLakeClient struct {
	api    API
	region string
}

// Ensure HealthLakeClient satisfies the interface
var _ ControlPlane = (*HealthLakeClient)(nil)

// New constructs a control-plane client for the given region. The client is
// built fresh per tool invocation; retry behavior (3 attempts) is configured
// once here and nothing else in the server retries.
func New(region string) (*HealthLakeClient, error) {
	sess, err := hlaws.NewSession(region)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}

	return &HealthLakeClient{
		api:    healthlake.New(sess),
		region: region,
	}, nil
}

func (c *HealthLakeClient) API() API {
	return c.api
}

func (c *HealthLakeClient) Region() string {
	return c.region
}

// ResolveEndpoint describes the datastore and extracts its data-plane base
// URL. The result always ends with a path separator so it can be prefixed
// directly to a resource-type/id path. Endpoints are not cached: every tool
// invocation that needs one performs a fresh describe call.
func (c *HealthLakeClient) ResolveEndpoint(ctx context.Context, datastoreID string) (string, error) {
	out, err := c.api.DescribeFHIRDatastoreWithContext(ctx, &healthlake.DescribeFHIRDatastoreInput{
		DatastoreId: aws.String(datastoreID),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok {
			log.AWS.WithField("datastore_id", datastoreID).
				Errorf("failed to describe datastore: %s - %s", awsErr.Code(), awsErr.Message())
			return "", &customErrors.ControlPlaneError{Err: awsErr, Code: awsErr.Code(), Message: awsErr.Message()}
		}
		return "", errors.Wrapf(err, "failed to describe datastore %s", datastoreID)
	}

	if out.DatastoreProperties == nil || aws.StringValue(out.DatastoreProperties.DatastoreEndpoint) == "" {
		return "", &customErrors.ControlPlaneError{
			Code:    "MissingEndpoint",
			Message: "datastore description did not include a data-plane endpoint",
		}
	}

	endpoint := aws.StringValue(out.DatastoreProperties.DatastoreEndpoint)
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	return endpoint, nil
}

// ResourceURL joins the resolved endpoint with resource path segments.
func ResourceURL(endpoint string, segments ...string) string {
	return endpoint + strings.Join(segments, "/")
}

// Region resolves the effective region: explicit argument, then AWS_REGION,
// then the default.
func Region(region string) string {
	if region != "" {
		return region
	}
	if r := conf.GetEnv(constants.RegionEnvVar); r != "" {
		return r
	}
	return constants.DefaultRegion
}
