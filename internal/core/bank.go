package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/coelhor/feira/internal/model"
)

// Product bank operations. The bank is a global catalog of item templates;
// entries are deduplicated by name, case-insensitively, across the whole
// bank regardless of category.

// ProductGroup is one category's slice of a grouped product listing.
type ProductGroup struct {
	Category string       `json:"category"`
	Items    []model.Item `json:"items"`
}

// AddProduct appends a template to the catalog. Quantity defaults to 1,
// notes stay empty.
func (s *Store) AddProduct(ctx context.Context, name, category, unit string) (*model.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !model.ValidUnit(unit) {
		unit = model.DefaultUnit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Name, name) {
			return nil, ErrDuplicateProduct
		}
	}

	product := model.Item{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: 1,
		Unit:     unit,
		Category: s.resolveCategoryName(category),
	}
	if err := s.repo.InsertProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	s.products = append(s.products, product)

	out := product
	return &out, nil
}

// UpdateProduct replaces the catalog entry matching the item's id.
func (s *Store) UpdateProduct(ctx context.Context, product model.Item) (*model.Item, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, ErrNameRequired
	}
	product.Quantity = model.ClampQuantity(product.Quantity)
	if !model.ValidUnit(product.Unit) {
		product.Unit = model.DefaultUnit
	}
	product.Purchased = false

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == product.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	for i, p := range s.products {
		if i != idx && strings.EqualFold(p.Name, product.Name) {
			return nil, ErrDuplicateProduct
		}
	}
	product.Category = s.resolveCategoryName(product.Category)

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.products[idx] = product

	out := product
	return &out, nil
}

// DeleteProduct removes a catalog entry.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	return nil
}

// SearchProducts filters the catalog by a case-insensitive substring of the
// name. When excludeListID names a known list, products whose names are
// already on that list are left out, which keeps the "add from bank" picker
// free of duplicates. Results come grouped by category; groups and the
// items inside them are ordered lexicographically.
func (s *Store) SearchProducts(term, excludeListID string) []ProductGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var taken map[string]bool
	if excludeListID != "" {
		if list := s.findList(excludeListID); list != nil {
			taken = make(map[string]bool, len(list.Items))
			for _, it := range list.Items {
				taken[strings.ToLower(it.Name)] = true
			}
		}
	}

	term = strings.ToLower(strings.TrimSpace(term))
	grouped := make(map[string][]model.Item)
	for _, p := range s.products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if taken[strings.ToLower(p.Name)] {
			continue
		}
		grouped[p.Category] = append(grouped[p.Category], p)
	}

	names := make([]string, 0, len(grouped))
	for cat := range grouped {
		names = append(names, cat)
	}
	sort.Strings(names)

	groups := make([]ProductGroup, 0, len(names))
	for _, cat := range names {
		items := grouped[cat]
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
		groups = append(groups, ProductGroup{Category: cat, Items: items})
	}
	return groups
}
