package client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/healthlake"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a hand-rolled testify mock over the API subset. Shared by tests
// across packages, so it lives with the interface it mocks.
type MockAPI struct {
	mock.Mock
}

var _ API = (*MockAPI)(nil)

func (m *MockAPI) CreateFHIRDatastoreWithContext(ctx aws.Context, input *healthlake.CreateFHIRDatastoreInput, opts ...request.Option) (*healthlake.CreateFHIRDatastoreOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.CreateFHIRDatastoreOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) DeleteFHIRDatastoreWithContext(ctx aws.Context, input *healthlake.DeleteFHIRDatastoreInput, opts ...request.Option) (*healthlake.DeleteFHIRDatastoreOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.DeleteFHIRDatastoreOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) DescribeFHIRDatastoreWithContext(ctx aws.Context, input *healthlake.DescribeFHIRDatastoreInput, opts ...request.Option) (*healthlake.DescribeFHIRDatastoreOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.DescribeFHIRDatastoreOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListFHIRDatastoresWithContext(ctx aws.Context, input *healthlake.ListFHIRDatastoresInput, opts ...request.Option) (*healthlake.ListFHIRDatastoresOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.ListFHIRDatastoresOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) StartFHIRImportJobWithContext(ctx aws.Context, input *healthlake.StartFHIRImportJobInput, opts ...request.Option) (*healthlake.StartFHIRImportJobOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.StartFHIRImportJobOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) StartFHIRExportJobWithContext(ctx aws.Context, input *healthlake.StartFHIRExportJobInput, opts ...request.Option) (*healthlake.StartFHIRExportJobOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.StartFHIRExportJobOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) DescribeFHIRImportJobWithContext(ctx aws.Context, input *healthlake.DescribeFHIRImportJobInput, opts ...request.Option) (*healthlake.DescribeFHIRImportJobOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.DescribeFHIRImportJobOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) DescribeFHIRExportJobWithContext(ctx aws.Context, input *healthlake.DescribeFHIRExportJobInput, opts ...request.Option) (*healthlake.DescribeFHIRExportJobOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.DescribeFHIRExportJobOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListFHIRImportJobsWithContext(ctx aws.Context, input *healthlake.ListFHIRImportJobsInput, opts ...request.Option) (*healthlake.ListFHIRImportJobsOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.ListFHIRImportJobsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListFHIRExportJobsWithContext(ctx aws.Context, input *healthlake.ListFHIRExportJobsInput, opts ...request.Option) (*healthlake.ListFHIRExportJobsOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.ListFHIRExportJobsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) TagResourceWithContext(ctx aws.Context, input *healthlake.TagResourceInput, opts ...request.Option) (*healthlake.TagResourceOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.TagResourceOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) UntagResourceWithContext(ctx aws.Context, input *healthlake.UntagResourceInput, opts ...request.Option) (*healthlake.UntagResourceOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.UntagResourceOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListTagsForResourceWithContext(ctx aws.Context, input *healthlake.ListTagsForResourceInput, opts ...request.Option) (*healthlake.ListTagsForResourceOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*healthlake.ListTagsForResourceOutput), args.Error(1)
	}
	return nil, args.Error(1)
}
