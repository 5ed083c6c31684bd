package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/coelhor/feira/internal/model"
)

// Category registry operations. Names are case-insensitively unique and
// keep insertion order. Rename and delete cascade over every item of every
// list in one repository transaction, then sweep the in-memory collections;
// the caller observes either both effects or neither.

// AddCategory appends a new category to the registry.
func (s *Store) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return nil, ErrDuplicateCategory
		}
	}

	cat := model.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.InsertCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	s.categories = append(s.categories, cat)

	out := cat
	return &out, nil
}

// RenameCategory renames a registry entry and rewrites every item across
// every list tagged with the old name. Renaming the fallback category or
// renaming onto a name taken by a different category is rejected.
func (s *Store) RenameCategory(ctx context.Context, ref model.CategoryRef, newName string) (*model.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCategory(ref)
	if idx < 0 {
		return nil, ErrNotFound
	}
	oldName := s.categories[idx].Name
	if oldName == model.FallbackCategory {
		return nil, ErrFallbackCategory
	}
	for i, c := range s.categories {
		if i != idx && strings.EqualFold(c.Name, newName) {
			return nil, ErrDuplicateCategory
		}
	}

	if err := s.repo.RenameCategory(ctx, oldName, newName); err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}

	s.categories[idx].Name = newName
	for li := range s.lists {
		for ii := range s.lists[li].Items {
			if s.lists[li].Items[ii].Category == oldName {
				s.lists[li].Items[ii].Category = newName
			}
		}
	}
	for pi := range s.products {
		if s.products[pi].Category == oldName {
			s.products[pi].Category = newName
		}
	}
	if s.lastRemoved != nil && s.lastRemoved.Item.Category == oldName {
		s.lastRemoved.Item.Category = newName
	}

	out := s.categories[idx]
	return &out, nil
}

// DeleteCategory removes a registry entry; every item referencing it, on
// lists and in the product bank, is reassigned to the fallback category.
// The fallback itself cannot be deleted.
func (s *Store) DeleteCategory(ctx context.Context, ref model.CategoryRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCategory(ref)
	if idx < 0 {
		return ErrNotFound
	}
	name := s.categories[idx].Name
	if name == model.FallbackCategory {
		return ErrFallbackCategory
	}

	if err := s.repo.DeleteCategory(ctx, name, model.FallbackCategory); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	for li := range s.lists {
		for ii := range s.lists[li].Items {
			if s.lists[li].Items[ii].Category == name {
				s.lists[li].Items[ii].Category = model.FallbackCategory
			}
		}
	}
	for pi := range s.products {
		if s.products[pi].Category == name {
			s.products[pi].Category = model.FallbackCategory
		}
	}
	if s.lastRemoved != nil && s.lastRemoved.Item.Category == name {
		s.lastRemoved.Item.Category = model.FallbackCategory
	}
	return nil
}

// findCategory resolves a reference to an index in the registry, by id when
// present and by case-insensitive name otherwise; callers hold s.mu.
func (s *Store) findCategory(ref model.CategoryRef) int {
	for i, c := range s.categories {
		if ref.Matches(c) {
			return i
		}
	}
	return -1
}
