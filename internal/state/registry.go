package state

import (
	"sync"
)

// MovieRegistry is the process-lifetime catalog of user-contributed titles.
// Add unions and deduplicates; List returns the session titles merged with a
// fixed curated baseline. No eviction and no persistence.
type MovieRegistry struct {
	mu       sync.Mutex
	baseline []string
	titles   map[string]struct{}
	order    []string
}

// NewMovieRegistry creates a registry seeded with the given baseline catalog.
func NewMovieRegistry(baseline []string) *MovieRegistry {
	return &MovieRegistry{
		baseline: append([]string(nil), baseline...),
		titles:   make(map[string]struct{}),
	}
}

// Add unions the given titles into the session set, skipping blanks and
// duplicates while preserving first-appearance order.
func (r *MovieRegistry) Add(titles ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range titles {
		if t == "" {
			continue
		}
		if _, ok := r.titles[t]; ok {
			continue
		}
		r.titles[t] = struct{}{}
		r.order = append(r.order, t)
	}
}

// Session returns only the user-contributed titles in insertion order.
func (r *MovieRegistry) Session() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// List returns the curated baseline unioned with the session titles,
// deduplicated, baseline first.
func (r *MovieRegistry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(r.baseline)+len(r.order))
	out := make([]string, 0, len(r.baseline)+len(r.order))
	for _, t := range r.baseline {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, t := range r.order {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
