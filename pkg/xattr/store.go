// Package xattr holds extended attributes in memory.
package xattr

import (
	"errors"
	"sort"
	"sync"
)

// ErrNoAttribute is returned for operations on an attribute that is not set.
var ErrNoAttribute = errors.New("no such attribute")

// Store maps attribute names to values. Every operation holds the
// store's lock, so each one observes a consistent map.
type Store struct {
	mu    sync.Mutex
	attrs map[string][]byte
}

// NewStore returns a store holding copies of the seed attributes.
func NewStore(seed map[string][]byte) *Store {
	s := &Store{attrs: make(map[string][]byte, len(seed))}
	for name, value := range seed {
		s.attrs[name] = clone(value)
	}
	return s
}

// Get returns a copy of the value of name.
func (s *Store) Get(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.attrs[name]
	if !ok {
		return nil, ErrNoAttribute
	}
	return clone(value), nil
}

// Set creates or replaces name.
func (s *Store) Set(name string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs[name] = clone(value)
}

// Remove deletes name.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attrs[name]; !ok {
		return ErrNoAttribute
	}
	delete(s.attrs, name)
	return nil
}

// List returns the attribute names, sorted.
func (s *Store) List() []string {
	s.mu.Lock()
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	return names
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
