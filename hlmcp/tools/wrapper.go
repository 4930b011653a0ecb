package tools

import (
	"context"
	"encoding/json"
	goerrors "errors"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
	"github.com/awsri/healthlake-mcp/log"
)

// wrapHandler applies the shared error-handling contract to a tool handler:
// AWS client errors are normalized to "AWS HealthLake Error (<code>):
// <message>", everything is logged with the failing tool's name, and the
// caller always receives a single descriptive error string. It changes no
// control flow and is identical for every tool.
func wrapHandler(name string, fn server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := fn(ctx, req)
		if err == nil {
			return result, nil
		}

		logger := log.Tool.WithFields(logrus.Fields{
			"tool":           name,
			"transaction_id": uuid.New(),
		})

		var cpErr *customErrors.ControlPlaneError
		if goerrors.As(err, &cpErr) {
			logger.Errorf("AWS client error: %s - %s", cpErr.Code, cpErr.Message)
			return mcp.NewToolResultError(cpErr.Error()), nil
		}

		var awsErr awserr.Error
		if goerrors.As(err, &awsErr) {
			cpErr = &customErrors.ControlPlaneError{Err: awsErr, Code: awsErr.Code(), Message: awsErr.Message()}
			logger.Errorf("AWS client error: %s - %s", awsErr.Code(), awsErr.Message())
			return mcp.NewToolResultError(cpErr.Error()), nil
		}

		logger.Error(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
}

// jsonResult marshals the raw response structure into an MCP text result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode tool result")
	}
	return mcp.NewToolResultText(string(data)), nil
}
