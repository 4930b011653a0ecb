package hlaws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/awsri/healthlake-mcp/conf"
	"github.com/awsri/healthlake-mcp/hlmcp/constants"
)

// Makes these easily mockable for testing
var newSession = session.NewSession

// NewSession returns an AWS session scoped to the given region. When
// HEALTHLAKE_MCP_ROLE_ARN is set, credentials are sourced by assuming that
// role; otherwise the default credential chain applies.
func NewSession(region string) (*session.Session, error) {
	sess := session.Must(session.NewSession())

	config := aws.Config{
		Region:     aws.String(region),
		MaxRetries: aws.Int(constants.MaxRetries),
	}

	if roleArn := conf.GetEnv(constants.RoleArnEnvVar); roleArn != "" {
		config.Credentials = stscreds.NewCredentials(
			sess,
			roleArn,
		)
	}

	sess, err := newSession(&config)
	if err != nil {
		return nil, err
	}

	return sess, nil
}
