// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps the research results of a session in memory.
package history

import (
	"sync"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// Store is an append-only, session-scoped list of successful results plus a
// pointer to the most recent result of any outcome. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	results []*types.ResearchResult
	current *types.ResearchResult
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Append adds r to the history and makes it current.
func (s *Store) Append(r *types.ResearchResult) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	s.current = r
}

// SetCurrent makes r the current result without adding it to the history.
// Failed results are recorded this way.
func (s *Store) SetCurrent(r *types.ResearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
}

// Current returns the most recent result, or nil if none has been recorded.
func (s *Store) Current() *types.ResearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// All returns the recorded results in insertion order. The returned slice is
// a copy.
func (s *Store) All() []*types.ResearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.ResearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// Get returns the i-th result (0-based) and whether it exists.
func (s *Store) Get(i int) (*types.ResearchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.results) {
		return nil, false
	}
	return s.results[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Clear drops every result and the current pointer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.current = nil
}
