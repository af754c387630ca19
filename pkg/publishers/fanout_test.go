package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct {
	stubPublisher
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	bad := &stubPublisher{id: "bad", typ: "http", err: errors.New("failed")}
	last := &stubPublisher{id: "last", typ: "sqs"}
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		bad,
		nil,
		last,
	})

	count, err := fanout.Publish(context.Background(), Event{CheckID: "c1"})
	if count != 2 {
		t.Fatalf("expected 2 successes, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if last.calls != 1 {
		t.Fatalf("publishers after a failure must still be called")
	}
	if fanout.Size() != 3 {
		t.Fatalf("Size = %d", fanout.Size())
	}
}

func TestFanoutCloseOnlyClosesClosers(t *testing.T) {
	c := &closingPublisher{stubPublisher{id: "c", typ: "pubsub"}}
	fanout := NewFanout([]Publisher{&stubPublisher{id: "s"}, c})
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Fatalf("closer was not closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Type() != TypeHTTP {
		t.Fatalf("unexpected publishers %#v", pubs)
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{{ID: "k", Type: "kafka"}}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
