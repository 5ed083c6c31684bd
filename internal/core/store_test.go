package core_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/coelhor/feira/internal/core"
	"github.com/coelhor/feira/internal/database"
	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/store"
)

var testMember = model.Member{
	ID:    "member-1",
	Name:  "Ana",
	Email: "ana@example.com",
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*core.Store, *sql.DB) {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st, err := core.Open(context.Background(), store.NewRepository(db), testMember, testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st, db
}

func mustCreateList(t *testing.T, st *core.Store, name string) *model.List {
	t.Helper()
	list, err := st.CreateList(context.Background(), name, "")
	if err != nil {
		t.Fatalf("create list %q: %v", name, err)
	}
	return list
}

func TestCreateListBecomesActive(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	a := mustCreateList(t, st, "Semana")
	if got := st.Snapshot().ActiveListID; got != a.ID {
		t.Errorf("active = %q, want %q", got, a.ID)
	}

	b := mustCreateList(t, st, "Churrasco")
	if got := st.Snapshot().ActiveListID; got != b.ID {
		t.Errorf("active = %q, want %q", got, b.ID)
	}

	if len(a.Members) != 1 || a.Members[0].ID != testMember.ID {
		t.Errorf("new list members = %+v, want creator only", a.Members)
	}

	if _, err := st.CreateList(ctx, "   ", ""); !errors.Is(err, core.ErrNameRequired) {
		t.Errorf("blank name err = %v, want ErrNameRequired", err)
	}
}

func TestDeleteListMovesActivePointer(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	a := mustCreateList(t, st, "Semana")
	b := mustCreateList(t, st, "Churrasco")

	// b is active; deleting it falls back to the first remaining list
	if err := st.DeleteList(ctx, b.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if got := st.Snapshot().ActiveListID; got != a.ID {
		t.Errorf("active = %q, want %q", got, a.ID)
	}

	if err := st.DeleteList(ctx, a.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if got := st.Snapshot().ActiveListID; got != "" {
		t.Errorf("active = %q, want empty", got)
	}
	if st.ActiveList() != nil {
		t.Error("ActiveList should be nil when no lists remain")
	}

	if err := st.DeleteList(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("delete unknown err = %v, want ErrNotFound", err)
	}
}

func TestDeletingInactiveListKeepsActive(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	a := mustCreateList(t, st, "Semana")
	b := mustCreateList(t, st, "Churrasco")

	if err := st.DeleteList(ctx, a.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if got := st.Snapshot().ActiveListID; got != b.ID {
		t.Errorf("active = %q, want %q", got, b.ID)
	}
}

func TestSetActive(t *testing.T) {
	st, _ := setup(t)

	a := mustCreateList(t, st, "Semana")
	mustCreateList(t, st, "Churrasco")

	if err := st.SetActive(a.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if got := st.Snapshot().ActiveListID; got != a.ID {
		t.Errorf("active = %q, want %q", got, a.ID)
	}

	if err := st.SetActive("nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("set unknown err = %v, want ErrNotFound", err)
	}
	if got := st.Snapshot().ActiveListID; got != a.ID {
		t.Errorf("active moved on failed SetActive: %q", got)
	}
}

func TestAddItemDefaults(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	item, err := st.AddItem(ctx, list.ID, model.Item{
		Name:     "Pilhas",
		Quantity: 0,
		Unit:     "caixotes",
		Category: "Eletrônicos",
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if item.ID == "" {
		t.Error("item should get a generated id")
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want clamped to 1", item.Quantity)
	}
	if item.Unit != model.DefaultUnit {
		t.Errorf("unit = %q, want %q", item.Unit, model.DefaultUnit)
	}
	if item.Category != model.FallbackCategory {
		t.Errorf("category = %q, want %q", item.Category, model.FallbackCategory)
	}
	if item.Purchased {
		t.Error("new item should start unpurchased")
	}
}

func TestAddItemReplacesExistingByID(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	item, err := st.AddItem(ctx, list.ID, model.Item{Name: "Arroz", Quantity: 1, Unit: "kg", Category: "Alimentos"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	updated, err := st.AddItem(ctx, list.ID, model.Item{
		ID: item.ID, Name: "Arroz Integral", Quantity: 2, Unit: "kg", Category: "Alimentos",
	})
	if err != nil {
		t.Fatalf("replace item: %v", err)
	}
	if updated.ID != item.ID {
		t.Errorf("replace changed id: %q -> %q", item.ID, updated.ID)
	}

	snap := st.Snapshot()
	if n := len(snap.Lists[0].Items); n != 1 {
		t.Fatalf("items = %d, want 1 after in-place replace", n)
	}
	if got := snap.Lists[0].Items[0].Name; got != "Arroz Integral" {
		t.Errorf("name = %q, want Arroz Integral", got)
	}
}

func TestTogglePurchased(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	item, err := st.AddItem(ctx, list.ID, model.Item{Name: "Leite", Quantity: 1, Unit: "l", Category: "Alimentos"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	toggled, err := st.TogglePurchased(ctx, list.ID, item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Purchased {
		t.Error("first toggle should mark purchased")
	}

	toggled, err = st.TogglePurchased(ctx, list.ID, item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Purchased {
		t.Error("second toggle should unmark purchased")
	}
}

func TestRemoveAndUndoRestoresGroupedPosition(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	arroz, err := st.AddItem(ctx, list.ID, model.Item{Name: "Arroz", Quantity: 1, Unit: "kg", Category: "Alimentos"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := st.AddItem(ctx, list.ID, model.Item{Name: "Feijão", Quantity: 1, Unit: "kg", Category: "Alimentos"}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := st.AddItem(ctx, list.ID, model.Item{Name: "Detergente", Quantity: 1, Unit: "un", Category: "Limpeza"}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := st.RemoveItem(ctx, list.ID, arroz.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}

	snap := st.Snapshot()
	if snap.LastRemoved == nil || snap.LastRemoved.Item.ID != arroz.ID {
		t.Fatalf("undo buffer = %+v, want removed item", snap.LastRemoved)
	}

	restored, err := st.UndoLastRemoval(ctx, list.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.ID != arroz.ID {
		t.Errorf("restored id = %q, want %q", restored.ID, arroz.ID)
	}

	snap = st.Snapshot()
	if snap.LastRemoved != nil {
		t.Error("undo buffer should be cleared after restore")
	}
	names := make([]string, 0, 3)
	for _, it := range snap.Lists[0].Items {
		names = append(names, it.Name)
	}
	// Arroz goes back next to its category neighbour, before Feijão
	want := []string{"Arroz", "Feijão", "Detergente"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("items = %v, want %v", names, want)
		}
	}
}

func TestUndoWithEmptyBuffer(t *testing.T) {
	st, _ := setup(t)
	list := mustCreateList(t, st, "Semana")

	if _, err := st.UndoLastRemoval(context.Background(), list.ID); !errors.Is(err, core.ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
}

func TestSecondRemovalOverwritesUndoBuffer(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	first, _ := st.AddItem(ctx, list.ID, model.Item{Name: "Arroz", Quantity: 1, Unit: "kg", Category: "Alimentos"})
	second, _ := st.AddItem(ctx, list.ID, model.Item{Name: "Feijão", Quantity: 1, Unit: "kg", Category: "Alimentos"})

	if err := st.RemoveItem(ctx, list.ID, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := st.RemoveItem(ctx, list.ID, second.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	restored, err := st.UndoLastRemoval(ctx, list.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.ID != second.ID {
		t.Errorf("restored = %q, want the most recent removal %q", restored.Name, second.Name)
	}
	if _, err := st.UndoLastRemoval(ctx, list.ID); !errors.Is(err, core.ErrNothingToUndo) {
		t.Errorf("second undo err = %v, want ErrNothingToUndo", err)
	}
}

func TestDeleteListClearsItsUndoBuffer(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")
	mustCreateList(t, st, "Churrasco")

	item, _ := st.AddItem(ctx, list.ID, model.Item{Name: "Arroz", Quantity: 1, Unit: "kg", Category: "Alimentos"})
	if err := st.RemoveItem(ctx, list.ID, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := st.DeleteList(ctx, list.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}

	if st.Snapshot().LastRemoved != nil {
		t.Error("undo buffer should be cleared when its list is deleted")
	}
}

func TestAddMember(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	member, err := st.AddMember(ctx, list.ID, "joao.silva@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if member.Name != "Joao Silva" {
		t.Errorf("derived name = %q, want Joao Silva", member.Name)
	}

	if _, err := st.AddMember(ctx, list.ID, "JOAO.SILVA@example.com"); !errors.Is(err, core.ErrDuplicateMember) {
		t.Errorf("duplicate email err = %v, want ErrDuplicateMember", err)
	}
}

func TestRemoveMemberSelfRejected(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")

	if err := st.RemoveMember(ctx, list.ID, testMember.ID); !errors.Is(err, core.ErrSelfRemoval) {
		t.Errorf("err = %v, want ErrSelfRemoval", err)
	}

	member, _ := st.AddMember(ctx, list.ID, "joao@example.com")
	if err := st.RemoveMember(ctx, list.ID, member.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if n := len(st.Snapshot().Lists[0].Members); n != 1 {
		t.Errorf("members = %d, want 1", n)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	st, db := setup(t)
	ctx := context.Background()

	list := mustCreateList(t, st, "Semana")
	if _, err := st.AddItem(ctx, list.ID, model.Item{Name: "Café", Quantity: 2, Unit: "g", Category: "Alimentos", Notes: "moído"}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := st.AddMember(ctx, list.ID, "joao@example.com"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	reopened, err := core.Open(ctx, store.NewRepository(db), testMember, testLogger())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	snap := reopened.Snapshot()
	if len(snap.Lists) != 1 {
		t.Fatalf("lists = %d, want 1", len(snap.Lists))
	}
	got := snap.Lists[0]
	if got.Name != "Semana" {
		t.Errorf("name = %q, want Semana", got.Name)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Café" || got.Items[0].Notes != "moído" {
		t.Errorf("items = %+v, want the persisted Café entry", got.Items)
	}
	if len(got.Members) != 2 {
		t.Errorf("members = %d, want 2", len(got.Members))
	}
	if snap.ActiveListID != got.ID {
		t.Errorf("active after reopen = %q, want first list %q", snap.ActiveListID, got.ID)
	}
	if snap.LastRemoved != nil {
		t.Error("undo buffer should not survive a reopen")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Semana")
	if _, err := st.AddItem(ctx, list.ID, model.Item{Name: "Arroz", Quantity: 1, Unit: "kg", Category: "Alimentos"}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	snap := st.Snapshot()
	snap.Lists[0].Items[0].Name = "mutated"
	snap.Lists[0].Name = "mutated"

	fresh := st.Snapshot()
	if fresh.Lists[0].Name == "mutated" || fresh.Lists[0].Items[0].Name == "mutated" {
		t.Error("mutating a snapshot leaked into the store")
	}
}
