package constants

// App Name and Version. Edit them here to prevent breaking tests
const Name = "hlmcp"
const Version = "1.0.0"

// Service name used for SigV4 signing and client construction.
const ServiceName = "healthlake"

// FHIR media types for data-plane content negotiation.
const (
	FHIRJSONContentType  = "application/fhir+json"
	JSONPatchContentType = "application/json-patch+json"
)

// Environment variables read at call time.
const (
	ReadOnlyEnvVar = "HEALTHLAKE_MCP_READONLY"
	RegionEnvVar   = "AWS_REGION"
	RoleArnEnvVar  = "HEALTHLAKE_MCP_ROLE_ARN"
)

// DefaultRegion is used when neither the tool argument nor AWS_REGION is set.
const DefaultRegion = "us-west-2"

// MaxRetries configures the control-plane client's attempt count. Nothing else
// in the server retries.
const MaxRetries = 3

// Bundle types accepted for submission.
const (
	BundleTypeBatch       = "batch"
	BundleTypeTransaction = "transaction"
)
