package petstore

import (
	"context"
	"net/http"
	"sync"

	"github.com/Adda-Baaj/petstore-client/pkg/httpclient"
)

// fakeResponse lets us stub the httpclient.Response interface.
type fakeResponse struct {
	body       []byte
	statusCode int
	header     http.Header
}

func (f fakeResponse) Body() []byte        { return f.body }
func (f fakeResponse) StatusCode() int     { return f.statusCode }
func (f fakeResponse) Header() http.Header { return f.header }

// fakeHTTPClient records requests and returns a canned response or error.
type fakeHTTPClient struct {
	mu       sync.Mutex
	requests []httpclient.Request
	status   int
	body     string
	header   http.Header
	err      error
}

func (f *fakeHTTPClient) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return fakeResponse{body: []byte(f.body), statusCode: status, header: f.header}, nil
}

func (f *fakeHTTPClient) last() httpclient.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return httpclient.Request{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeHTTPClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// recordingLogger captures messages per level.
type recordingLogger struct {
	mu     sync.Mutex
	debug  []string
	info   []string
	warn   []string
	errors []string
}

func (r *recordingLogger) InfoObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	r.info = append(r.info, msg)
	r.mu.Unlock()
}

func (r *recordingLogger) DebugObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	r.debug = append(r.debug, msg)
	r.mu.Unlock()
}

func (r *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	r.warn = append(r.warn, msg)
	r.mu.Unlock()
}

func (r *recordingLogger) ErrorObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	r.errors = append(r.errors, msg)
	r.mu.Unlock()
}

const testBaseURL = "http://petstore.test/v2"

func newFakeClient(fake *fakeHTTPClient, log Logger) *Client {
	return New(Config{BaseURL: testBaseURL, LogResponseHeaders: true}, WithHTTPClient(fake), WithLogger(log))
}
