package publishers

import "time"

// Event is the payload published when a contract check changes state.
type Event struct {
	CheckID        string    `json:"check_id"`
	CheckName      string    `json:"check_name"`
	Operation      string    `json:"operation"`
	Passed         bool      `json:"passed"`
	StatusCode     int       `json:"status_code"`
	ExpectedStatus int       `json:"expected_status"`
	Failures       []string  `json:"failures,omitempty"`
	Snippet        string    `json:"snippet,omitempty"`
	BaseURL        string    `json:"base_url"`
	CheckedAt      time.Time `json:"checked_at"`
}

// State renders Passed as "pass" or "fail" for message attributes.
func (e Event) State() string {
	if e.Passed {
		return "pass"
	}
	return "fail"
}
