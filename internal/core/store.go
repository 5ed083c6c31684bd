package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coelhor/feira/internal/model"
)

// Store is the session-scoped data core: it owns the list collection, the
// active-list pointer, the category registry, the product bank, and the
// single-slot undo buffer for one signed-in member. All state lives in
// memory and is written through the Repository before being applied, so a
// rejected write never leaves a half-applied mutation behind.
//
// Store is the only writer of its collections. Readers get deep-copied
// snapshots and never a live reference.
type Store struct {
	mu     sync.RWMutex
	repo   Repository
	user   model.Member
	logger *slog.Logger

	lists       []model.List
	activeID    string
	categories  []model.Category
	products    []model.Item
	lastRemoved *model.RemovedItem
}

// Open loads the member's state from the repository and returns a ready
// Store. The active pointer starts at the first list, if any.
func Open(ctx context.Context, repo Repository, user model.Member, logger *slog.Logger) (*Store, error) {
	lists, err := repo.LoadLists(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	categories, err := repo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	products, err := repo.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	return &Store{
		repo:       repo,
		user:       user,
		logger:     logger,
		lists:      lists,
		activeID:   deriveActive(lists, ""),
		categories: categories,
		products:   products,
	}, nil
}

// User returns the member this store belongs to.
func (s *Store) User() model.Member {
	return s.user
}

// --- Lists ---

// CreateList creates an empty list owned by the current member and makes it
// the active list.
func (s *Store) CreateList(ctx context.Context, name, icon string) (*model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	list := model.List{
		ID:      uuid.NewString(),
		Name:    name,
		Icon:    icon,
		Items:   []model.Item{},
		Members: []model.Member{s.user},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveList(ctx, list); err != nil {
		return nil, fmt.Errorf("save list: %w", err)
	}
	s.lists = append(s.lists, list)
	s.activeID = list.ID

	out := list.Clone()
	return &out, nil
}

// RenameList updates a list's name in place, preserving id, items and
// members.
func (s *Store) RenameList(ctx context.Context, listID, newName string) (*model.List, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.RenameList(ctx, listID, newName); err != nil {
		return nil, fmt.Errorf("rename list: %w", err)
	}
	list.Name = newName

	out := list.Clone()
	return &out, nil
}

// DeleteList removes a list. If it was active, the pointer falls back to
// the first remaining list, or to none when the collection empties.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lists {
		if s.lists[i].ID == listID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if err := s.repo.DeleteList(ctx, listID); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	s.lists = append(s.lists[:idx], s.lists[idx+1:]...)
	if s.lastRemoved != nil && s.lastRemoved.ListID == listID {
		s.lastRemoved = nil
	}
	s.activeID = deriveActive(s.lists, s.activeID)
	return nil
}

// SetActive moves the active pointer. Unknown ids leave it unchanged.
func (s *Store) SetActive(listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findList(listID) == nil {
		return ErrNotFound
	}
	s.activeID = listID
	return nil
}

// --- Items ---

// AddItem adds or replaces an item on a list. A draft without an id is
// minted one and appended unpurchased; a draft whose id matches an existing
// item replaces it in place. Quantities are clamped to >= 1 and an unknown
// category is coerced to the fallback.
func (s *Store) AddItem(ctx context.Context, listID string, draft model.Item) (*model.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return nil, ErrNameRequired
	}
	draft.Quantity = model.ClampQuantity(draft.Quantity)
	if !model.ValidUnit(draft.Unit) {
		draft.Unit = model.DefaultUnit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return nil, ErrNotFound
	}
	draft.Category = s.resolveCategoryName(draft.Category)

	if draft.ID != "" {
		if i := list.FindItem(draft.ID); i >= 0 {
			if err := s.repo.UpdateItem(ctx, listID, draft); err != nil {
				return nil, fmt.Errorf("update item: %w", err)
			}
			list.Items[i] = draft
			out := draft
			return &out, nil
		}
	}

	if draft.ID == "" {
		draft.ID = uuid.NewString()
		draft.Purchased = false
	}
	if err := s.repo.InsertItem(ctx, listID, draft); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	list.Items = append(list.Items, draft)

	out := draft
	return &out, nil
}

// AddFromBank instantiates a product-bank entry as a new item on a list:
// name, category and unit are copied, a fresh id is minted, quantity starts
// at 1. Adding a product whose name is already on the list is rejected.
func (s *Store) AddFromBank(ctx context.Context, listID, productID string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return nil, ErrNotFound
	}

	var tmpl *model.Item
	for i := range s.products {
		if s.products[i].ID == productID {
			tmpl = &s.products[i]
			break
		}
	}
	if tmpl == nil {
		return nil, ErrNotFound
	}

	for _, it := range list.Items {
		if strings.EqualFold(it.Name, tmpl.Name) {
			return nil, ErrDuplicateItem
		}
	}

	item := model.Item{
		ID:       uuid.NewString(),
		Name:     tmpl.Name,
		Quantity: 1,
		Unit:     tmpl.Unit,
		Category: s.resolveCategoryName(tmpl.Category),
		Notes:    "",
	}
	if err := s.repo.InsertItem(ctx, listID, item); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	list.Items = append(list.Items, item)

	out := item
	return &out, nil
}

// TogglePurchased flips an item's purchased flag.
func (s *Store) TogglePurchased(ctx context.Context, listID, itemID string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return nil, ErrNotFound
	}
	i := list.FindItem(itemID)
	if i < 0 {
		return nil, ErrNotFound
	}

	updated := list.Items[i]
	updated.Purchased = !updated.Purchased
	if err := s.repo.UpdateItem(ctx, listID, updated); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	list.Items[i] = updated

	out := updated
	return &out, nil
}

// RemoveItem deletes an item from a list and captures it into the undo
// buffer, replacing whatever the buffer held before.
func (s *Store) RemoveItem(ctx context.Context, listID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return ErrNotFound
	}
	i := list.FindItem(itemID)
	if i < 0 {
		return ErrNotFound
	}

	removed := list.Items[i]
	if err := s.repo.DeleteItem(ctx, listID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	list.Items = append(list.Items[:i], list.Items[i+1:]...)
	s.lastRemoved = &model.RemovedItem{
		ListID:    listID,
		Item:      removed,
		RemovedAt: time.Now().UTC(),
	}
	return nil
}

// UndoLastRemoval restores the buffered item to the list it was removed
// from and clears the buffer. The item is re-inserted next to its category
// neighbours, ordered by name, so the restored row lands where the grouped
// display expects it.
func (s *Store) UndoLastRemoval(ctx context.Context, listID string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRemoved == nil || s.lastRemoved.ListID != listID {
		return nil, ErrNothingToUndo
	}
	list := s.findList(listID)
	if list == nil {
		s.lastRemoved = nil
		return nil, ErrNothingToUndo
	}

	restored := s.lastRemoved.Item
	items := insertGrouped(list.Items, restored)
	if err := s.repo.ReplaceItems(ctx, listID, items); err != nil {
		return nil, fmt.Errorf("replace items: %w", err)
	}
	list.Items = items
	s.lastRemoved = nil

	out := restored
	return &out, nil
}

// insertGrouped returns items with the extra item inserted after the last
// same-category entry whose name sorts before it, or appended when the
// category is not present yet.
func insertGrouped(items []model.Item, extra model.Item) []model.Item {
	pos := len(items)
	found := false
	for i, it := range items {
		if !strings.EqualFold(it.Category, extra.Category) {
			continue
		}
		found = true
		if strings.ToLower(extra.Name) < strings.ToLower(it.Name) {
			pos = i
			break
		}
		pos = i + 1
	}
	if !found {
		pos = len(items)
	}

	out := make([]model.Item, 0, len(items)+1)
	out = append(out, items[:pos]...)
	out = append(out, extra)
	out = append(out, items[pos:]...)
	return out
}

// --- Members ---

// AddMember invites an email address to a list. The member's display name
// is derived from the email's local part. Inviting an address already on
// the list is reported as a duplicate.
func (s *Store) AddMember(ctx context.Context, listID, email string) (*model.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return nil, ErrNotFound
	}
	for _, m := range list.Members {
		if strings.EqualFold(m.Email, email) {
			return nil, ErrDuplicateMember
		}
	}

	member := model.Member{
		ID:    uuid.NewString(),
		Name:  model.NameFromEmail(email),
		Email: email,
	}
	if err := s.repo.InsertMember(ctx, listID, member); err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	list.Members = append(list.Members, member)

	out := member
	return &out, nil
}

// RemoveMember removes a member from a list. The current member can never
// remove themselves.
func (s *Store) RemoveMember(ctx context.Context, listID, memberID string) error {
	if memberID == s.user.ID {
		return ErrSelfRemoval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.findList(listID)
	if list == nil {
		return ErrNotFound
	}
	idx := -1
	for i, m := range list.Members {
		if m.ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if err := s.repo.DeleteMember(ctx, listID, memberID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	list.Members = append(list.Members[:idx], list.Members[idx+1:]...)
	return nil
}

// --- internal helpers ---

// findList returns a pointer into the live collection; callers hold s.mu.
func (s *Store) findList(listID string) *model.List {
	for i := range s.lists {
		if s.lists[i].ID == listID {
			return &s.lists[i]
		}
	}
	return nil
}

// resolveCategoryName maps a free-form category name onto the registry,
// preserving the registry's casing. Unknown or empty names coerce to the
// fallback category; callers hold s.mu.
func (s *Store) resolveCategoryName(name string) string {
	name = strings.TrimSpace(name)
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name
		}
	}
	return model.FallbackCategory
}

// sortedCopy returns a copy of items ordered by (category, name), the order
// used for grouped product listings.
func sortedCopy(items []model.Item) []model.Item {
	out := append([]model.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := strings.ToLower(out[i].Category), strings.ToLower(out[j].Category)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
