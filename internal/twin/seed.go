package twin

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"gopkg.in/yaml.v3"
)

// Seed is the initial state loaded into the twin.
type Seed struct {
	Pets   []petstore.Pet   `json:"pets"`
	Orders []petstore.Order `json:"orders"`
	Users  []petstore.User  `json:"users"`
}

// LoadSeed reads a YAML (or JSON, which is valid YAML) seed file. Keys use
// the wire names of the service, e.g. photoUrls or petId.
func LoadSeed(path string) (Seed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Seed{}, fmt.Errorf("seed file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes seed content. The YAML tree is re-encoded as JSON so the
// models' JSON field names apply.
func ParseSeed(data []byte) (Seed, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return Seed{}, fmt.Errorf("decode seed yaml: %w", err)
	}
	if tree == nil {
		return Seed{}, nil
	}
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return Seed{}, fmt.Errorf("convert seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(asJSON, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// Apply loads the seed into s. Entries must satisfy the same rules as the
// HTTP endpoints.
func (seed Seed) Apply(s *MemoryStore) error {
	for i, p := range seed.Pets {
		if msg := validateNewPet(p); msg != "" {
			return fmt.Errorf("seed pets[%d]: %s", i, msg)
		}
		if !s.AddPet(p) {
			return fmt.Errorf("seed pets[%d]: duplicate id %d", i, p.ID)
		}
	}
	for i, o := range seed.Orders {
		if msg := validateOrder(&o); msg != "" {
			return fmt.Errorf("seed orders[%d]: %s", i, msg)
		}
		if _, ok := s.AddOrder(o); !ok {
			return fmt.Errorf("seed orders[%d]: duplicate id %d", i, o.ID)
		}
	}
	for i, u := range seed.Users {
		if msg := validateUser(u); msg != "" {
			return fmt.Errorf("seed users[%d]: %s", i, msg)
		}
	}
	if len(seed.Users) > 0 {
		if _, ok := s.AddUsers(seed.Users); !ok {
			return fmt.Errorf("seed users: duplicate username or id")
		}
	}
	return nil
}
