package store

import (
	"context"
	"fmt"

	"github.com/coelhor/feira/internal/model"
)

// LoadProducts returns the whole product bank in creation order. Bank
// entries reuse the Item shape with Purchased always false.
func (r *Repository) LoadProducts(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, quantity, unit, category FROM products ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Item
	for rows.Next() {
		var p model.Item
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Unit, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// InsertProduct appends a template to the catalog.
func (r *Repository) InsertProduct(ctx context.Context, p model.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, quantity, unit, category) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Quantity, p.Unit, p.Category,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct rewrites the catalog entry matching the id.
func (r *Repository) UpdateProduct(ctx context.Context, p model.Item) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, quantity = ?, unit = ?, category = ? WHERE id = ?`,
		p.Name, p.Quantity, p.Unit, p.Category, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a catalog entry.
func (r *Repository) DeleteProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
