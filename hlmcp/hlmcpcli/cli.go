package hlmcpcli

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/awsri/healthlake-mcp/hlmcp/constants"
	"github.com/awsri/healthlake-mcp/hlmcp/tools"
	"github.com/awsri/healthlake-mcp/log"
)

// App Name and usage.  Edit them here to prevent breaking tests
const Name = constants.Name
const Usage = "AWS HealthLake MCP server CLI"

// serveStdio indirection so tests can exercise the serve command without
// blocking on stdin.
var serveStdio = func(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = Name
	app.Usage = Usage
	app.Version = constants.Version
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "Serve MCP tools over stdio",
			Action: func(c *cli.Context) error {
				log.Tool.WithField("version", constants.Version).Info("starting MCP server on stdio")
				if err := serveStdio(tools.NewServer()); err != nil {
					return errors.Wrap(err, "MCP server terminated")
				}
				return nil
			},
		},
		{
			Name:  "list-tools",
			Usage: "Print the names of all registered tools",
			Action: func(c *cli.Context) error {
				for _, t := range tools.All() {
					def := t.Handle()
					fmt.Fprintf(app.Writer, "%s\t%s\n", def.Name, def.Description)
				}
				return nil
			},
		},
	}
	return app
}
