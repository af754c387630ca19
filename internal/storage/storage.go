// Package storage keeps the journal of contract check outcomes between runs.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Record is the last known outcome of a check.
type Record struct {
	Passed     bool      `json:"passed"`
	StatusCode int       `json:"status_code"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Store remembers the last outcome recorded per check id.
type Store interface {
	Close() error
	LastOutcome(checkID string) (Record, bool, error)
	RecordOutcome(checkID string, rec Record) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RecordTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultRecordTTL       = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.RecordTTL <= 0 {
		opts.RecordTTL = defaultRecordTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// noopStore never remembers anything, so every run looks like the first.
type noopStore struct{}

func (noopStore) Close() error                             { return nil }
func (noopStore) LastOutcome(string) (Record, bool, error) { return Record{}, false, nil }
func (noopStore) RecordOutcome(string, Record) error       { return nil }
