package fhir

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go/aws/credentials"
	v4 "github.com/aws/aws-sdk-go/aws/signer/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/awsri/healthlake-mcp/hlmcp/constants"
	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
	models "github.com/awsri/healthlake-mcp/hlmcp/models/fhir"
)

// Client executes SigV4-signed requests against a datastore's FHIR endpoint
// and normalizes the response or failure into a uniform result shape.
type Client interface {
	Do(ctx context.Context, req Request) (map[string]interface{}, error)
}

// Request describes one data-plane call. Query and Headers are optional; two
// default headers (FHIR content negotiation) are always present unless the
// caller overrides them.
type Request struct {
	Method  string
	URL     string
	Region  string
	Body    interface{}
	Query   url.Values
	Headers map[string]string
}

type client struct {
	httpClient *http.Client
	signer     *v4.Signer
	logger     logrus.FieldLogger
}

// Ensure client satisfies the interface
var _ Client = &client{}

func NewClient(httpClient *http.Client, creds *credentials.Credentials, logger logrus.FieldLogger) Client {
	return &client{
		httpClient: httpClient,
		signer:     v4.NewSigner(creds),
		logger:     logger,
	}
}

// Do signs and dispatches a single request. Failed calls are surfaced
// immediately; retry policy, if desired, belongs to the caller.
func (c *client) Do(ctx context.Context, r Request) (map[string]interface{}, error) {
	var (
		body io.ReadSeeker
		size int64
	)
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(raw)
		size = int64(len(raw))
	}

	req, err := http.NewRequest(r.Method, r.URL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request for %s", r.Method, r.URL)
	}
	if r.Query != nil {
		req.URL.RawQuery = r.Query.Encode()
	}

	req.Header.Set("Content-Type", constants.FHIRJSONContentType)
	req.Header.Set("Accept", constants.FHIRJSONContentType)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	req.ContentLength = size

	// The signer attaches the body to the request after computing the payload
	// hash, so the request is created without one above.
	if _, err := c.signer.Sign(req, body, constants.ServiceName, r.Region, time.Now().UTC()); err != nil {
		return nil, errors.Wrap(err, "failed to sign request")
	}

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	c.logRequest(req, resp)
	if resp != nil {
		/* #nosec -- it's OK for us to ignore errors when attempting to cleanup response body */
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", r.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < http.StatusBadRequest {
		if len(data) == 0 {
			return map[string]interface{}{
				"status":     "success",
				"statusCode": resp.StatusCode,
			}, nil
		}

		var result map[string]interface{}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, errors.Wrap(err, "failed to decode response body")
		}
		return result, nil
	}

	return nil, c.failure(resp.StatusCode, data)
}

// failure normalizes a non-2xx/3xx response. A decodable OperationOutcome is
// flattened into a single descriptive message; anything else keeps the status
// code and raw body.
func (c *client) failure(statusCode int, data []byte) error {
	var oo models.OperationOutcome
	if err := json.Unmarshal(data, &oo); err == nil && oo.ResourceType == "OperationOutcome" {
		msg := oo.Flatten()
		c.logger.WithField("resp_code", statusCode).Errorf("FHIR operation outcome: %s", msg)
		return &customErrors.OperationOutcomeError{StatusCode: statusCode, Message: msg}
	}

	c.logger.WithField("resp_code", statusCode).Error("FHIR request failed without operation outcome")
	return &customErrors.UnexpectedStatusCodeError{StatusCode: statusCode, Body: string(data)}
}

func (c *client) logRequest(req *http.Request, resp *http.Response) {
	fields := logrus.Fields{
		"fhir_method": req.Method,
		"fhir_uri":    req.URL.String(),
	}
	if resp != nil {
		fields["resp_code"] = resp.StatusCode
		fields["content_length"] = resp.ContentLength
	}
	c.logger.WithFields(fields).Infoln("HealthLake FHIR request")
}
