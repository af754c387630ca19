// Package checks loads the contract check definitions (YAML/JSON) run against
// a pet-store deployment.
package checks

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/petstore-client/pkg/registryfile"
)

// Check is one call against the service plus the expectations on its result.
type Check struct {
	ID                 string         `json:"id" yaml:"id"`
	Name               string         `json:"name" yaml:"name"`
	Operation          string         `json:"operation" yaml:"operation"`
	Params             map[string]any `json:"params" yaml:"params"`
	ExpectStatus       int            `json:"expect_status" yaml:"expect_status"`
	ExpectBodyContains []string       `json:"expect_body_contains" yaml:"expect_body_contains"`
	// ExpectFound applies to lookups only (getPetById).
	ExpectFound    *bool `json:"expect_found" yaml:"expect_found"`
	RequestDelayMs int   `json:"request_delay_ms" yaml:"request_delay_ms"`
}

type registryFile struct {
	Checks []Check `json:"checks" yaml:"checks"`
}

// Registry holds checks in file order, indexed by id.
type Registry struct {
	mu     sync.RWMutex
	checks []Check
	idx    map[string]Check
}

// Load reads the check registry from a YAML/JSON file.
func Load(path string) (*Registry, error) {
	file, err := registryfile.Read[registryFile](path, "checks")
	if err != nil {
		return nil, err
	}
	return build(file)
}

// Parse decodes registry content. ext selects the decoder (".yaml", ".yml",
// ".json"); an empty ext tries each in turn.
func Parse(data []byte, ext string) (*Registry, error) {
	file, err := registryfile.Decode[registryFile](data, ext, "checks")
	if err != nil {
		return nil, err
	}
	return build(file)
}

func build(file registryFile) (*Registry, error) {
	if len(file.Checks) == 0 {
		return nil, errors.New("checks file contains no checks entries")
	}

	reg := &Registry{
		checks: make([]Check, len(file.Checks)),
		idx:    make(map[string]Check, len(file.Checks)),
	}
	for i := range file.Checks {
		c := sanitizeCheck(file.Checks[i])
		if err := validateCheck(c); err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		if _, exists := reg.idx[c.ID]; exists {
			return nil, fmt.Errorf("duplicate check id %q", c.ID)
		}
		reg.checks[i] = c
		reg.idx[c.ID] = c
	}
	return reg, nil
}

func sanitizeCheck(c Check) Check {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Operation = strings.TrimSpace(c.Operation)
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.Params == nil {
		c.Params = map[string]any{}
	}
	if c.RequestDelayMs < 0 {
		c.RequestDelayMs = 0
	}

	needles := c.ExpectBodyContains[:0:0]
	for _, n := range c.ExpectBodyContains {
		if n = strings.TrimSpace(n); n != "" {
			needles = append(needles, n)
		}
	}
	c.ExpectBodyContains = needles
	return c
}

func validateCheck(c Check) error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.Operation == "" {
		return fmt.Errorf("operation is required for check %q", c.ID)
	}
	if c.ExpectStatus < 100 || c.ExpectStatus > 599 {
		return fmt.Errorf("expect_status must be an HTTP status for check %q", c.ID)
	}
	return nil
}

// All returns the checks in file order.
func (r *Registry) All() []Check {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// ByID returns the check with the given id.
func (r *Registry) ByID(id string) (Check, bool) {
	if r == nil {
		return Check{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Check{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.idx[id]
	return c, ok
}

// Len reports how many checks are loaded.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}

// RequestDelay returns the pause taken before the check runs.
func (c Check) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

// OperationKey is the case-insensitive name used to resolve the operation.
func (c Check) OperationKey() string {
	return strings.ToLower(c.Operation)
}
