package petstore

import "net/http"

// TransportFailureBody is the body reported when no response was received.
const TransportFailureBody = "Internal server error"

// Result pairs the status code and raw body of one call.
//
// Every operation returns a Result, including calls that never reached the
// server: those collapse to TransportFailure().
type Result struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// NewResult builds a Result from a status code and body.
func NewResult(statusCode int, body string) Result {
	return Result{StatusCode: statusCode, Body: body}
}

// TransportFailure is the fixed result for network errors, timeouts and cancellation.
func TransportFailure() Result {
	return Result{StatusCode: http.StatusInternalServerError, Body: TransportFailureBody}
}

// OK reports whether the status code is exactly 200.
func (r Result) OK() bool { return r.StatusCode == http.StatusOK }
