package state

import (
	"sync"
)

// RecommendedSet tracks which titles the model has already recommended during
// this process's lifetime. Membership is exact case-sensitive string match
// against the model's own echoed title; no normalization is applied.
type RecommendedSet struct {
	mu     sync.Mutex
	titles map[string]struct{}
	order  []string
}

// NewRecommendedSet creates an empty set.
func NewRecommendedSet() *RecommendedSet {
	return &RecommendedSet{
		titles: make(map[string]struct{}),
	}
}

// Add inserts a title. Re-adding an existing title is a no-op.
func (s *RecommendedSet) Add(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[title]; ok {
		return
	}
	s.titles[title] = struct{}{}
	s.order = append(s.order, title)
}

// Contains reports exact-match membership.
func (s *RecommendedSet) Contains(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.titles[title]
	return ok
}

// Snapshot returns the titles in insertion order.
func (s *RecommendedSet) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the set. Invoked only by the cycle-reset protocol, never by
// user action.
func (s *RecommendedSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = make(map[string]struct{})
	s.order = nil
}

// Len returns the number of recorded titles.
func (s *RecommendedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.titles)
}
