package model

import "time"

// List is a named shopping list with its own items and member set.
// Items keep insertion order; ids are unique within the list.
type List struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Icon    string   `json:"icon,omitempty"`
	Items   []Item   `json:"items"`
	Members []Member `json:"members"`
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	c := l
	c.Items = append([]Item(nil), l.Items...)
	c.Members = append([]Member(nil), l.Members...)
	return c
}

// FindItem returns the index of the item with the given id, or -1.
func (l List) FindItem(itemID string) int {
	for i, it := range l.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// RemovedItem is the single-slot undo buffer entry: the most recently
// removed item together with the list it came from.
type RemovedItem struct {
	ListID    string    `json:"list_id"`
	Item      Item      `json:"item"`
	RemovedAt time.Time `json:"removed_at"`
}
