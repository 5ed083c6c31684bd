package model

import (
	"encoding/json"
	"strings"
)

// FallbackCategory receives items whose category is deleted or unknown.
// It is seeded at first run and can never be renamed or deleted.
const FallbackCategory = "Outros"

// Category is a user-managed tag grouping items.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRef is a reference to a category as it appears on the wire.
// Early clients send a bare name string, later ones an {id, name} object;
// both decode into a CategoryRef. Lookups go through the id when present
// and fall back to case-insensitive name equality.
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.ID = ""
		r.Name = name
		return nil
	}

	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Name = obj.Name
	return nil
}

// Matches reports whether the reference points at the given category.
func (r CategoryRef) Matches(c Category) bool {
	if r.ID != "" {
		return r.ID == c.ID
	}
	return strings.EqualFold(r.Name, c.Name)
}

// IsZero reports whether the reference carries neither an id nor a name.
func (r CategoryRef) IsZero() bool {
	return r.ID == "" && strings.TrimSpace(r.Name) == ""
}
