package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/coelhor/feira/internal/database"
	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/store"
)

func testManager(t *testing.T) *Manager {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(store.NewRepository(db), logger)
}

func TestForReturnsSameCore(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()
	member := model.Member{ID: "member-1", Name: "Ana", Email: "ana@example.com"}

	first, err := m.For(ctx, member)
	if err != nil {
		t.Fatalf("first For: %v", err)
	}
	second, err := m.For(ctx, member)
	if err != nil {
		t.Fatalf("second For: %v", err)
	}
	if first != second {
		t.Error("same member should share one core across requests")
	}
	if m.Count() != 1 {
		t.Errorf("cores = %d, want 1", m.Count())
	}
}

func TestDropTearsDownCore(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()
	member := model.Member{ID: "member-1", Name: "Ana", Email: "ana@example.com"}

	before, err := m.For(ctx, member)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if _, err := before.CreateList(ctx, "Semana", ""); err != nil {
		t.Fatalf("create list: %v", err)
	}

	m.Drop(member.ID)
	if m.Count() != 0 {
		t.Errorf("cores after drop = %d, want 0", m.Count())
	}

	after, err := m.For(ctx, member)
	if err != nil {
		t.Fatalf("For after drop: %v", err)
	}
	if after == before {
		t.Error("dropped core should be rebuilt, not reused")
	}
	// Persisted state comes back in the fresh core
	if n := len(after.Snapshot().Lists); n != 1 {
		t.Errorf("lists after reload = %d, want 1", n)
	}
}

func TestDistinctMembersGetDistinctCores(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	a, err := m.For(ctx, model.Member{ID: "member-1", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	b, err := m.For(ctx, model.Member{ID: "member-2", Email: "bia@example.com"})
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if a == b {
		t.Error("different members must not share a core")
	}
	if m.Count() != 2 {
		t.Errorf("cores = %d, want 2", m.Count())
	}
}
