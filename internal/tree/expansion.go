package tree

import "sync"

// ExpansionStore records which points currently show their evidence
// subtree. It is UI-local, never persisted, and shared by reference through
// an entire rendered tree so siblings cannot reset each other's state.
//
// An absent key means collapsed. Toggling is idempotent, and collapsing a
// parent deliberately leaves descendant flags intact: re-expanding restores
// the prior depth.
type ExpansionStore struct {
	mu       sync.RWMutex
	expanded map[string]bool
}

// NewExpansionStore creates an empty store, the state of a freshly mounted
// tree.
func NewExpansionStore() *ExpansionStore {
	return &ExpansionStore{expanded: make(map[string]bool)}
}

// IsExpanded reports whether the point currently shows its evidence
func (s *ExpansionStore) IsExpanded(pointID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded[pointID]
}

// SetExpanded records the expansion flag for one point. It never affects
// any other point's entry.
func (s *ExpansionStore) SetExpanded(pointID string, expanded bool) {
	s.mu.Lock()
	s.expanded[pointID] = expanded
	s.mu.Unlock()
}

// Len returns the number of recorded entries, expanded or not
func (s *ExpansionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expanded)
}
