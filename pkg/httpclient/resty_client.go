package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options tunes the underlying resty client.
type Options struct {
	Timeout time.Duration
	// RetryCount is the number of extra attempts made after a transport error.
	// HTTP error statuses are never retried.
	RetryCount int
	// Logger receives resty's own diagnostics (retry attempts, warnings).
	// When nil they are discarded instead of going to stderr.
	Logger Logger
}

// Logger is the structured logging surface resty diagnostics are routed to.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// restyLogger adapts Logger to resty's printf-style logger.
type restyLogger struct {
	log Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.ErrorObj("http client error", "resty", formatDetail(format, v))
	}
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.WarnObj("http client warning", "resty", formatDetail(format, v))
	}
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.DebugObj("http client debug", "resty", formatDetail(format, v))
	}
}

func formatDetail(format string, v []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified options.
func NewRestyClient(opts Options) *RestyClient {
	c := newRestyBaseClient(opts.Timeout)
	c.SetLogger(restyLogger{log: opts.Logger})
	if opts.RetryCount > 0 {
		c.SetRetryCount(opts.RetryCount)
		c.AddRetryCondition(func(_ *resty.Response, err error) bool {
			return err != nil
		})
	}
	return &RestyClient{client: c}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Do performs the request with the given context and returns the raw response.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}
	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
