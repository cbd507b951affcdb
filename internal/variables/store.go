package variables

import (
	"context"
	"fmt"
	"sync"

	"bennypowers.dev/vars2css/internal/log"
)

// MemoryStore is an in-memory Store populated by the file loaders.
//
// Collections are kept in insertion order so that exports are deterministic.
// Variables are keyed by ID; adding a variable with an existing ID replaces it.
type MemoryStore struct {
	mu          sync.RWMutex
	collections []Collection
	byID        map[string]int
	variables   map[string]*Variable
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:      make(map[string]int),
		variables: make(map[string]*Variable),
	}
}

// AddCollection adds or replaces a collection.
// A replaced collection keeps its original position.
func (s *MemoryStore) AddCollection(c Collection) error {
	if c.ID == "" {
		return fmt.Errorf("collection %q has no id", c.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, exists := s.byID[c.ID]; exists {
		s.collections[i] = c
		return nil
	}
	s.byID[c.ID] = len(s.collections)
	s.collections = append(s.collections, c)
	return nil
}

// AddVariable adds or replaces a variable
func (s *MemoryStore) AddVariable(v *Variable) error {
	if v == nil {
		return fmt.Errorf("variable cannot be nil")
	}
	if v.ID == "" {
		return fmt.Errorf("variable %q has no id", v.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.variables[v.ID] = v
	return nil
}

// Merge copies every collection and variable of other into s.
// A variable whose ID is already present replaces it with a warning.
func (s *MemoryStore) Merge(other *MemoryStore) error {
	if other == nil || other == s {
		return nil
	}

	other.mu.RLock()
	collections := append([]Collection(nil), other.collections...)
	vars := make([]*Variable, 0, len(other.variables))
	for _, v := range other.variables {
		vars = append(vars, v)
	}
	other.mu.RUnlock()

	for _, c := range collections {
		if err := s.AddCollection(c); err != nil {
			return err
		}
	}
	for _, v := range vars {
		if existing, ok := s.lookup(v.ID); ok && existing != v {
			log.Warn("Variable %s (%s) is defined more than once; the last definition wins", v.ID, v.Name)
		}
		if err := s.AddVariable(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) lookup(id string) (*Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.variables[id]
	return v, ok
}

// Collections returns a copy of every collection in insertion order
func (s *MemoryStore) Collections(ctx context.Context) ([]Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Collection, len(s.collections))
	copy(out, s.collections)
	return out, nil
}

// Variable returns the variable with the given ID
func (s *MemoryStore) Variable(ctx context.Context, id string) (*Variable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.variables[id]
	if !ok {
		return nil, NewNotFoundError(id)
	}
	return v, nil
}

// Variables returns every variable, in no particular order
func (s *MemoryStore) Variables() []*Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Variable, 0, len(s.variables))
	for _, v := range s.variables {
		out = append(out, v)
	}
	return out
}

// Count returns the number of variables
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.variables)
}
