package tools

import (
	"strings"

	"github.com/awsri/healthlake-mcp/conf"
	"github.com/awsri/healthlake-mcp/hlmcp/constants"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
	"github.com/awsri/healthlake-mcp/log"
)

// checkMutationAllowed must be the very first action of every tool that
// creates, updates, deletes, imports, exports, tags, or untags, so no partial
// side effect occurs when guarded. The flag is re-read on every invocation;
// tests toggle it at runtime through the conf package.
func checkMutationAllowed(operation string) error {
	if strings.EqualFold(conf.GetEnv(constants.ReadOnlyEnvVar), "true") {
		log.Tool.WithField("tool", operation).Warn("mutation blocked: server is in read-only mode")
		return &customErrors.ReadOnlyModeError{Operation: operation}
	}
	return nil
}
