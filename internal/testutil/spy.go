package testutil

import "sync"

// SpyStorage is a register.Storage that records every access, for tests
// asserting on the load/store traffic a sequence of operations causes.
//
// Thread-safety: all methods take an internal mutex, so a spy can back
// registers touched from multiple goroutines in stress tests.
type SpyStorage struct {
	mu     sync.Mutex
	v      uint64
	loads  int
	stores []uint64
}

// NewSpyStorage returns a spy holding the initial value.
func NewSpyStorage(initial uint64) *SpyStorage {
	return &SpyStorage{v: initial}
}

// Load returns the current value and counts the access.
func (s *SpyStorage) Load() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.v
}

// Store replaces the value and records it.
func (s *SpyStorage) Store(v uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	s.stores = append(s.stores, v)
}

// Loads returns how many times Load was called.
func (s *SpyStorage) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// Stores returns every value stored, in order.
func (s *SpyStorage) Stores() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.stores))
	copy(out, s.stores)
	return out
}
