package core

import "github.com/coelhor/feira/internal/model"

// Snapshot is the immutable view handed to the presentation layer: deep
// copies throughout, safe to hold across further mutations.
type Snapshot struct {
	Lists        []model.List       `json:"lists"`
	ActiveListID string             `json:"active_list_id,omitempty"`
	Categories   []model.Category   `json:"categories"`
	Products     []model.Item       `json:"products"`
	LastRemoved  *model.RemovedItem `json:"last_removed,omitempty"`
}

// Snapshot returns a copy of the full current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := make([]model.List, len(s.lists))
	for i, l := range s.lists {
		lists[i] = l.Clone()
	}

	snap := Snapshot{
		Lists:        lists,
		ActiveListID: s.activeID,
		Categories:   append([]model.Category(nil), s.categories...),
		Products:     append([]model.Item(nil), s.products...),
	}
	if s.lastRemoved != nil {
		removed := *s.lastRemoved
		snap.LastRemoved = &removed
	}
	return snap
}

// ActiveList returns a copy of the active list, or nil when no list is
// selected. Screens that need an active list degrade to an empty state on
// nil instead of failing.
func (s *Store) ActiveList() *model.List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.lists {
		if l.ID == s.activeID {
			out := l.Clone()
			return &out
		}
	}
	return nil
}

// Products returns the catalog ordered by category then name.
func (s *Store) Products() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.products)
}

// Categories returns the registry in insertion order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}
