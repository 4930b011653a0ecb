package errors

import "fmt"

// ReadOnlyModeError is returned by the mutation guard when the server's
// read-only flag is set. It is raised before any network I/O occurs.
type ReadOnlyModeError struct {
	Operation string
}

func (e *ReadOnlyModeError) Error() string {
	return fmt.Sprintf("operation %s not permitted: HealthLake MCP server is in read-only mode", e.Operation)
}

// ValidationError covers preconditions detected locally before any request is
// sent: resource type/id mismatches, missing arguments, malformed payloads.
type ValidationError struct {
	Err error
	Msg string
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Validation Error. Msg: %s, Err: %s", e.Msg, e.Err)
	}
	return fmt.Sprintf("Validation Error. Msg: %s", e.Msg)
}

// ControlPlaneError wraps an AWS management API failure, preserving the
// underlying error code and message.
type ControlPlaneError struct {
	Err     error
	Code    string
	Message string
}

func (e *ControlPlaneError) Error() string {
	return fmt.Sprintf("AWS HealthLake Error (%s): %s", e.Code, e.Message)
}

func (e *ControlPlaneError) Unwrap() error {
	return e.Err
}

// OperationOutcomeError carries the flattened issues of a FHIR
// OperationOutcome returned by the data-plane endpoint.
type OperationOutcomeError struct {
	StatusCode int
	Message    string
}

func (e *OperationOutcomeError) Error() string {
	return fmt.Sprintf("FHIR operation failed: %s", e.Message)
}

// UnexpectedStatusCodeError is returned when the data-plane endpoint fails
// with a body that is not a FHIR OperationOutcome.
type UnexpectedStatusCodeError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusCodeError) Error() string {
	return fmt.Sprintf("Unexpected Status Code %d: %s", e.StatusCode, e.Body)
}
