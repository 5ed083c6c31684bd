package store

import (
	"context"
	"fmt"

	"github.com/coelhor/feira/internal/model"
)

const itemCols = `id, name, quantity, unit, category, notes, purchased`

func (r *Repository) loadItems(ctx context.Context, listID string) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM items WHERE list_id = ? ORDER BY position ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		var purchased int
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.Category, &it.Notes, &purchased); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Purchased = purchased != 0
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertItem appends an item to the end of a list.
func (r *Repository) InsertItem(ctx context.Context, listID string, item model.Item) error {
	var maxPos int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM items WHERE list_id = ?`,
		listID,
	).Scan(&maxPos); err != nil {
		return fmt.Errorf("query max position: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, list_id, name, quantity, unit, category, notes, purchased, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, listID, item.Name, item.Quantity, item.Unit, item.Category,
		item.Notes, boolToInt(item.Purchased), maxPos+1,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem rewrites an item's fields, keeping its position.
func (r *Repository) UpdateItem(ctx context.Context, listID string, item model.Item) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, quantity = ?, unit = ?, category = ?, notes = ?, purchased = ?
		 WHERE id = ? AND list_id = ?`,
		item.Name, item.Quantity, item.Unit, item.Category, item.Notes,
		boolToInt(item.Purchased), item.ID, listID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes one item from a list.
func (r *Repository) DeleteItem(ctx context.Context, listID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND list_id = ?`,
		itemID, listID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ReplaceItems rewrites a list's items wholesale in the given order. Used
// when an undo re-inserts an item into the middle of the list.
func (r *Repository) ReplaceItems(ctx context.Context, listID string, items []model.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (id, list_id, name, quantity, unit, category, notes, purchased, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.ExecContext(ctx,
			it.ID, listID, it.Name, it.Quantity, it.Unit, it.Category,
			it.Notes, boolToInt(it.Purchased), i,
		); err != nil {
			return fmt.Errorf("insert item %s: %w", it.ID, err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
