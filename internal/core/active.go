package core

import "github.com/coelhor/feira/internal/model"

// deriveActive re-validates the active-list pointer against the current
// collection. It is a pure function of state, run after every mutation of
// the list collection and on initial load: a pointer at an existing list is
// kept, a dangling or empty pointer falls back to the first list, and an
// empty collection yields no active list.
func deriveActive(lists []model.List, current string) string {
	if current != "" {
		for _, l := range lists {
			if l.ID == current {
				return current
			}
		}
	}
	if len(lists) > 0 {
		return lists[0].ID
	}
	return ""
}
