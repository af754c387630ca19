package twin

import (
	"sort"
	"sync"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
)

// MemoryStore holds all twin state behind one lock.
type MemoryStore struct {
	mu         sync.RWMutex
	pets       map[int64]petstore.Pet
	orders     map[int64]petstore.Order
	users      map[string]petstore.User
	nextOrder  int64
	nextUser   int64
	sessionSeq int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pets:   make(map[int64]petstore.Pet),
		orders: make(map[int64]petstore.Order),
		users:  make(map[string]petstore.User),
	}
}

// Pet returns the pet with id.
func (s *MemoryStore) Pet(id int64) (petstore.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pets[id]
	return p, ok
}

// AddPet inserts p unless its id is taken.
func (s *MemoryStore) AddPet(p petstore.Pet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pets[p.ID]; exists {
		return false
	}
	s.pets[p.ID] = p
	return true
}

// ReplacePet overwrites an existing pet.
func (s *MemoryStore) ReplacePet(p petstore.Pet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pets[p.ID]; !exists {
		return false
	}
	s.pets[p.ID] = p
	return true
}

// UpdatePet applies fn to the stored pet and keeps the result.
func (s *MemoryStore) UpdatePet(id int64, fn func(*petstore.Pet)) (petstore.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return petstore.Pet{}, false
	}
	fn(&p)
	s.pets[id] = p
	return p, true
}

// DeletePet removes a pet.
func (s *MemoryStore) DeletePet(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return false
	}
	delete(s.pets, id)
	return true
}

// PetsByStatus lists pets whose status is in statuses, ordered by id.
func (s *MemoryStore) PetsByStatus(statuses []string) []petstore.Pet {
	want := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}

	s.mu.RLock()
	out := make([]petstore.Pet, 0)
	for _, p := range s.pets {
		if want[p.Status] {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Inventory counts pets per status.
func (s *MemoryStore) Inventory() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv := make(map[string]int)
	for _, p := range s.pets {
		if p.Status != "" {
			inv[p.Status]++
		}
	}
	return inv
}

// AddOrder stores o, assigning an id when it has none.
func (s *MemoryStore) AddOrder(o petstore.Order) (petstore.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		s.nextOrder++
		for s.orders[s.nextOrder].ID != 0 {
			s.nextOrder++
		}
		o.ID = s.nextOrder
	}
	if _, exists := s.orders[o.ID]; exists {
		return petstore.Order{}, false
	}
	s.orders[o.ID] = o
	return o, true
}

// Order returns the order with id.
func (s *MemoryStore) Order(id int64) (petstore.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// DeleteOrder removes an order.
func (s *MemoryStore) DeleteOrder(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return false
	}
	delete(s.orders, id)
	return true
}

// User returns the user registered under username.
func (s *MemoryStore) User(username string) (petstore.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	return u, ok
}

// AddUsers inserts the batch atomically. It fails without changes when any
// username or non-zero id is already taken, or repeated within the batch.
func (s *MemoryStore) AddUsers(batch []petstore.User) ([]petstore.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[string]bool, len(batch))
	ids := make(map[int64]bool, len(batch))
	for _, u := range batch {
		if names[u.Username] || s.usernameTakenLocked(u.Username) {
			return nil, false
		}
		if u.ID != 0 && (ids[u.ID] || s.userIDTakenLocked(u.ID, "")) {
			return nil, false
		}
		names[u.Username] = true
		ids[u.ID] = true
	}

	out := make([]petstore.User, 0, len(batch))
	for _, u := range batch {
		if u.ID == 0 {
			u.ID = s.nextUserIDLocked(ids)
			ids[u.ID] = true
		}
		s.users[u.Username] = u
		out = append(out, u)
	}
	return out, true
}

// ReplaceUser stores u in place of the user registered under username,
// renaming it when u.Username differs. It reports whether the user existed
// and whether the new username or id collided with another user.
func (s *MemoryStore) ReplaceUser(username string, u petstore.User) (found, conflict bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[username]
	if !ok {
		return false, false
	}
	if u.Username != username && s.usernameTakenLocked(u.Username) {
		return true, true
	}
	if u.ID == 0 {
		u.ID = old.ID
	} else if s.userIDTakenLocked(u.ID, username) {
		return true, true
	}
	delete(s.users, username)
	s.users[u.Username] = u
	return true, false
}

// DeleteUser removes a user.
func (s *MemoryStore) DeleteUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return false
	}
	delete(s.users, username)
	return true
}

// NextSession returns a new session number for a successful login.
func (s *MemoryStore) NextSession() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionSeq++
	return s.sessionSeq
}

func (s *MemoryStore) usernameTakenLocked(username string) bool {
	_, ok := s.users[username]
	return ok
}

func (s *MemoryStore) userIDTakenLocked(id int64, except string) bool {
	for name, u := range s.users {
		if u.ID == id && name != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) nextUserIDLocked(reserved map[int64]bool) int64 {
	for {
		s.nextUser++
		if !reserved[s.nextUser] && !s.userIDTakenLocked(s.nextUser, "") {
			return s.nextUser
		}
	}
}
