package main

import (
	"os"

	"github.com/awsri/healthlake-mcp/hlmcp/hlmcpcli"
	"github.com/awsri/healthlake-mcp/log"
)

func main() {
	if err := hlmcpcli.GetApp().Run(os.Args); err != nil {
		log.Tool.Fatal(err)
	}
}
