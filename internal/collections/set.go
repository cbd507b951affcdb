package collections

import "fmt"

// OrderedSet is a generic set that remembers insertion order
type OrderedSet[T comparable] struct {
	index map[T]int
	items []T
}

// NewOrderedSet creates a new OrderedSet with the given initial values
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: make(map[T]int, len(vs))}
	s.AddAll(vs...)
	return s
}

// Add adds a value to the set and reports whether it was not already present
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// AddAll adds one or more values to the set
func (s *OrderedSet[T]) AddAll(vs ...T) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Has checks if the set contains the given value
func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Index returns the insertion position of v, or -1
func (s *OrderedSet[T]) Index(v T) int {
	if i, ok := s.index[v]; ok {
		return i
	}
	return -1
}

// Remove deletes v from the set, preserving the order of the rest
func (s *OrderedSet[T]) Remove(v T) {
	i, ok := s.index[v]
	if !ok {
		return
	}
	delete(s.index, v)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
}

// Len returns the number of values in the set
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Members returns all values in insertion order
func (s *OrderedSet[T]) Members() []T {
	r := make([]T, len(s.items))
	copy(r, s.items)
	return r
}

// From returns the values inserted at or after v, or nil if v is absent
func (s *OrderedSet[T]) From(v T) []T {
	i := s.Index(v)
	if i < 0 {
		return nil
	}
	r := make([]T, len(s.items)-i)
	copy(r, s.items[i:])
	return r
}

// String returns a string representation of the set
func (s *OrderedSet[T]) String() string {
	return fmt.Sprintf("%v", s.items)
}
