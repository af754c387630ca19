package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/petstore-client/internal/logger"
	"github.com/Adda-Baaj/petstore-client/internal/storage"
	"github.com/Adda-Baaj/petstore-client/pkg/checks"
	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/Adda-Baaj/petstore-client/pkg/publishers"
)

// ErrCheckFailed marks a check whose expectations were not met.
var ErrCheckFailed = errors.New("check failed")

// EventPublisher delivers state-change events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Outcome is the evaluated result of one check.
type Outcome struct {
	CheckID        string        `json:"check_id"`
	Operation      string        `json:"operation"`
	Passed         bool          `json:"passed"`
	StatusCode     int           `json:"status_code"`
	ExpectedStatus int           `json:"expected_status"`
	Failures       []string      `json:"failures,omitempty"`
	Snippet        string        `json:"snippet"`
	Duration       time.Duration `json:"duration"`
	// Changed is true when the pass/fail state differs from the journal.
	Changed bool `json:"changed"`
}

// Runner executes contract checks through the pet-store client.
type Runner struct {
	client    *petstore.Client
	ops       *Operations
	journal   storage.Store
	publisher EventPublisher
	log       logger.Logger
	now       func() time.Time
}

// New wires a runner. journal and publisher may be nil.
func New(client *petstore.Client, journal storage.Store, publisher EventPublisher, log logger.Logger) *Runner {
	if client == nil {
		panic("runner: nil petstore client")
	}
	if journal == nil {
		journal, _ = storage.NewStore("none", "", storage.Options{})
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Runner{
		client:    client,
		ops:       NewOperations(),
		journal:   journal,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Run executes the checks in order and returns their outcomes. Failed
// checks, journal and publish errors are joined into the returned error.
// A cancelled context stops the run before the next check.
func (r *Runner) Run(ctx context.Context, list []checks.Check) ([]Outcome, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("no checks configured")
	}

	outcomes := make([]Outcome, 0, len(list))
	var errs []error

	for i, c := range list {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if delay := c.RequestDelay(); delay > 0 && i > 0 {
			if err := sleep(ctx, delay); err != nil {
				errs = append(errs, err)
				break
			}
		}

		out := r.runCheck(ctx, c)
		if err := r.track(ctx, c, &out); err != nil {
			errs = append(errs, err)
		}
		if !out.Passed {
			errs = append(errs, fmt.Errorf("check %q: %w: %s", c.ID, ErrCheckFailed, strings.Join(out.Failures, "; ")))
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, errors.Join(errs...)
}

func (r *Runner) runCheck(ctx context.Context, c checks.Check) Outcome {
	out := Outcome{
		CheckID:        c.ID,
		Operation:      c.Operation,
		ExpectedStatus: c.ExpectStatus,
	}

	op, ok := r.ops.Lookup(c.Operation)
	if !ok {
		out.Failures = []string{fmt.Sprintf("unknown operation %q", c.Operation)}
		return out
	}

	start := time.Now()
	call, err := op(ctx, r.client, c.Params)
	out.Duration = time.Since(start)
	if err != nil {
		out.Failures = []string{fmt.Sprintf("invalid params: %v", err)}
		return out
	}

	out.StatusCode = call.Result.StatusCode
	out.Snippet = snippet(call.Result.Body)
	out.Failures = evaluate(c, call)
	out.Passed = len(out.Failures) == 0

	fields := map[string]any{
		"check_id":    c.ID,
		"operation":   c.Operation,
		"status_code": out.StatusCode,
		"elapsed_ms":  out.Duration.Milliseconds(),
	}
	if out.Passed {
		r.log.InfoObj("check passed", "check_result", fields)
	} else {
		fields["failures"] = out.Failures
		fields["snippet"] = out.Snippet
		r.log.WarnObj("check failed", "check_result", fields)
	}
	return out
}

func evaluate(c checks.Check, call Call) []string {
	var failures []string
	if call.Result.StatusCode != c.ExpectStatus {
		failures = append(failures, fmt.Sprintf("status: got %d want %d", call.Result.StatusCode, c.ExpectStatus))
	}
	for _, needle := range c.ExpectBodyContains {
		if !strings.Contains(call.Result.Body, needle) {
			failures = append(failures, fmt.Sprintf("body does not contain %q", needle))
		}
	}
	if c.ExpectFound != nil {
		switch {
		case call.Found == nil:
			failures = append(failures, "expect_found set on an operation that is not a lookup")
		case *call.Found != *c.ExpectFound:
			failures = append(failures, fmt.Sprintf("found: got %t want %t", *call.Found, *c.ExpectFound))
		}
	}
	return failures
}

// track compares the outcome with the journal, records it and publishes an
// event when the pass/fail state changed.
func (r *Runner) track(ctx context.Context, c checks.Check, out *Outcome) error {
	prev, found, err := r.journal.LastOutcome(c.ID)
	if err != nil {
		return fmt.Errorf("read journal for %q: %w", c.ID, err)
	}
	out.Changed = !found || prev.Passed != out.Passed

	checkedAt := r.now().UTC()
	var errs []error
	if err := r.journal.RecordOutcome(c.ID, storage.Record{
		Passed:     out.Passed,
		StatusCode: out.StatusCode,
		CheckedAt:  checkedAt,
	}); err != nil {
		errs = append(errs, fmt.Errorf("record outcome for %q: %w", c.ID, err))
	}

	if out.Changed && r.publisher != nil {
		evt := publishers.Event{
			CheckID:        c.ID,
			CheckName:      c.Name,
			Operation:      c.Operation,
			Passed:         out.Passed,
			StatusCode:     out.StatusCode,
			ExpectedStatus: out.ExpectedStatus,
			Failures:       out.Failures,
			Snippet:        out.Snippet,
			BaseURL:        r.client.BaseURL(),
			CheckedAt:      checkedAt,
		}
		delivered, err := r.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %q: %w", c.ID, err))
		}
		r.log.DebugObj("check state change published", "check_event", map[string]any{
			"check_id":  c.ID,
			"passed":    out.Passed,
			"delivered": delivered,
		})
	}
	return errors.Join(errs...)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
