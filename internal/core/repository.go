package core

import (
	"context"

	"github.com/coelhor/feira/internal/model"
)

// Repository is the persistence collaborator behind the data core. Every
// write is acknowledged before the in-memory state is touched, so a failing
// backend leaves the core unchanged. Implementations must provide
// single-writer semantics per entity; the core never issues concurrent
// writes for the same session.
//
// RenameCategory and DeleteCategory are transactional sweeps: the registry
// entry and every affected item across every list change together or not
// at all.
type Repository interface {
	LoadLists(ctx context.Context, memberID string) ([]model.List, error)
	LoadCategories(ctx context.Context) ([]model.Category, error)
	LoadProducts(ctx context.Context) ([]model.Item, error)

	SaveList(ctx context.Context, list model.List) error
	RenameList(ctx context.Context, listID, name string) error
	DeleteList(ctx context.Context, listID string) error

	InsertItem(ctx context.Context, listID string, item model.Item) error
	UpdateItem(ctx context.Context, listID string, item model.Item) error
	DeleteItem(ctx context.Context, listID, itemID string) error
	ReplaceItems(ctx context.Context, listID string, items []model.Item) error

	InsertMember(ctx context.Context, listID string, m model.Member) error
	DeleteMember(ctx context.Context, listID, memberID string) error

	InsertCategory(ctx context.Context, c model.Category) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	DeleteCategory(ctx context.Context, name, fallback string) error

	InsertProduct(ctx context.Context, p model.Item) error
	UpdateProduct(ctx context.Context, p model.Item) error
	DeleteProduct(ctx context.Context, productID string) error
}
