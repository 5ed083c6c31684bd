package store

import (
	"context"
	"fmt"

	"github.com/coelhor/feira/internal/model"
)

// LoadLists returns every list the member belongs to, with items and
// members in stored order.
func (r *Repository) LoadLists(ctx context.Context, memberID string) ([]model.List, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.name, l.icon FROM lists l
		 JOIN list_members lm ON lm.list_id = l.id
		 WHERE lm.member_id = ?
		 ORDER BY l.position ASC, l.created_at ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.Name, &l.Icon); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := r.loadItems(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		members, err := r.loadMembers(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
		lists[i].Members = members
	}
	return lists, nil
}

func (r *Repository) loadMembers(ctx context.Context, listID string) ([]model.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT member_id, name, email, avatar FROM list_members
		 WHERE list_id = ? ORDER BY position ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []model.Member{}
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Avatar); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SaveList inserts a new list together with its initial member set.
func (r *Repository) SaveList(ctx context.Context, list model.List) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var maxPos int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM lists`,
	).Scan(&maxPos); err != nil {
		return fmt.Errorf("query max position: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO lists (id, name, icon, position) VALUES (?, ?, ?, ?)`,
		list.ID, list.Name, list.Icon, maxPos+1,
	); err != nil {
		return fmt.Errorf("insert list: %w", err)
	}

	for i, m := range list.Members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO list_members (list_id, member_id, name, email, avatar, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			list.ID, m.ID, m.Name, m.Email, m.Avatar, i,
		); err != nil {
			return fmt.Errorf("insert member: %w", err)
		}
	}

	return tx.Commit()
}

// RenameList updates a list's name in place.
func (r *Repository) RenameList(ctx context.Context, listID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE lists SET name = ? WHERE id = ?`, name, listID,
	)
	if err != nil {
		return fmt.Errorf("rename list: %w", err)
	}
	return nil
}

// DeleteList removes a list; items and memberships go with it via cascade.
func (r *Repository) DeleteList(ctx context.Context, listID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, listID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// InsertMember appends a member to a list.
func (r *Repository) InsertMember(ctx context.Context, listID string, m model.Member) error {
	var maxPos int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM list_members WHERE list_id = ?`,
		listID,
	).Scan(&maxPos); err != nil {
		return fmt.Errorf("query max position: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO list_members (list_id, member_id, name, email, avatar, position)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		listID, m.ID, m.Name, m.Email, m.Avatar, maxPos+1,
	)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// DeleteMember removes a member from a list.
func (r *Repository) DeleteMember(ctx context.Context, listID, memberID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM list_members WHERE list_id = ? AND member_id = ?`,
		listID, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
