package store

import (
	"context"
	"fmt"

	"github.com/coelhor/feira/internal/model"
)

// LoadCategories returns the registry in insertion order.
func (r *Repository) LoadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertCategory appends a category, preserving insertion order via the
// position column.
func (r *Repository) InsertCategory(ctx context.Context, c model.Category) error {
	var maxPos int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM categories`,
	).Scan(&maxPos); err != nil {
		return fmt.Errorf("query max position: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, position) VALUES (?, ?, ?)`,
		c.ID, c.Name, maxPos+1,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// RenameCategory updates the registry entry and rewrites every item and
// product tagged with the old name, all inside one transaction.
func (r *Repository) RenameCategory(ctx context.Context, oldName, newName string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE name = ?`, newName, oldName,
	); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET category = ? WHERE category = ?`, newName, oldName,
	); err != nil {
		return fmt.Errorf("rewrite items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET category = ? WHERE category = ?`, newName, oldName,
	); err != nil {
		return fmt.Errorf("rewrite products: %w", err)
	}

	return tx.Commit()
}

// DeleteCategory removes the registry entry and reassigns every item and
// product that referenced it to the fallback, all inside one transaction.
func (r *Repository) DeleteCategory(ctx context.Context, name, fallback string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET category = ? WHERE category = ?`, fallback, name,
	); err != nil {
		return fmt.Errorf("reassign items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET category = ? WHERE category = ?`, fallback, name,
	); err != nil {
		return fmt.Errorf("reassign products: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE name = ?`, name,
	); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return tx.Commit()
}
