package petstore

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Adda-Baaj/petstore-client/pkg/httpclient"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request is one call relative to the transport's base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    []byte
	// LogHeaders logs the response headers once the call completes.
	LogHeaders bool
}

// Transport executes requests against the pet-store service and normalizes
// every outcome into a Result. It is safe for concurrent use.
type Transport struct {
	baseURL string
	client  httpclient.Client
	log     Logger
}

// NewTransport wires a transport around an HTTP client. A nil client panics.
func NewTransport(baseURL string, client httpclient.Client, log Logger) *Transport {
	if client == nil {
		panic("petstore: nil http client")
	}
	return &Transport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		log:     ensureLogger(log),
	}
}

// BaseURL returns the service root requests are resolved against.
func (t *Transport) BaseURL() string { return t.baseURL }

// Execute sends exactly one request. Any response, whatever its status, is
// returned verbatim; failures to obtain a response become TransportFailure().
func (t *Transport) Execute(ctx context.Context, req Request) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := t.client.Do(ctx, httpclient.Request{
		Method:  req.Method,
		URL:     t.baseURL + req.Path,
		Query:   req.Query,
		Headers: req.Headers,
		Body:    req.Body,
	})
	if err != nil {
		t.log.ErrorObj("petstore request failed", "petstore_error", map[string]any{
			"method": req.Method,
			"path":   req.Path,
			"error":  err.Error(),
		})
		return TransportFailure()
	}

	if req.LogHeaders {
		t.logHeaders(req, resp.Header())
	}

	return NewResult(resp.StatusCode(), string(resp.Body()))
}

func (t *Transport) logHeaders(req Request, headers http.Header) {
	if len(headers) == 0 {
		return
	}
	t.log.DebugObj("petstore response headers", "petstore_headers", map[string]any{
		"method":  req.Method,
		"path":    req.Path,
		"headers": headers,
	})
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": contentTypeJSON}
}
