package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/awsri/healthlake-mcp/hlmcp/client"
	"github.com/awsri/healthlake-mcp/hlmcp/client/fhir"
	"github.com/awsri/healthlake-mcp/hlmcp/constants"
)

// Tool couples an MCP tool definition with its handler.
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type tool struct {
	def     mcp.Tool
	handler server.ToolHandlerFunc
}

func (t tool) Handle() mcp.Tool { return t.def }

func (t tool) Handler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.handler(ctx, req)
}

// Client construction indirection so tests can substitute fakes.
var newControlPlane = func(region string) (client.ControlPlane, error) {
	return client.New(region)
}
var newFHIRClient = func(region string) (fhir.Client, error) {
	return client.NewFHIRClient(region)
}

// All returns every registered operation, control plane and data plane alike.
func All() []Tool {
	var all []Tool
	all = append(all, datastoreTools()...)
	all = append(all, jobTools()...)
	all = append(all, resourceTools()...)
	all = append(all, bundleTools()...)
	all = append(all, templateTools()...)
	all = append(all, validationTools()...)
	return all
}

// NewServer assembles the MCP server with every tool behind the shared
// error-handling wrapper.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(constants.Name, constants.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range All() {
		def := t.Handle()
		s.AddTool(def, wrapHandler(def.Name, t.Handler))
	}

	return s
}
