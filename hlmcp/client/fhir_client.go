package client

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	hlaws "github.com/awsri/healthlake-mcp/hlmcp/aws"
	"github.com/awsri/healthlake-mcp/hlmcp/client/fhir"
	"github.com/awsri/healthlake-mcp/hlmcp/utils"
	"github.com/awsri/healthlake-mcp/log"
)

// NewFHIRClient builds a data-plane executor with ambient request-signing
// credentials for the given region.
func NewFHIRClient(region string) (fhir.Client, error) {
	sess, err := hlaws.NewSession(region)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}

	timeout := utils.GetEnvInt("HLMCP_FHIR_TIMEOUT_MS", 30000)
	httpClient := &http.Client{Timeout: time.Duration(timeout) * time.Millisecond}

	return fhir.NewClient(httpClient, sess.Config.Credentials, log.FHIR), nil
}
