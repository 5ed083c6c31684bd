// Package store implements the persistence collaborator on SQLite.
package store

import (
	"database/sql"

	"github.com/coelhor/feira/internal/core"
)

// Repository persists lists, items, members, categories and products. It is
// the single writer for those tables; the data core serializes calls.
type Repository struct {
	db *sql.DB
}

var _ core.Repository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
