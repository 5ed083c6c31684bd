// Package session owns the lifecycle of per-member data cores: one core
// Store per signed-in member, created lazily on first use and torn down at
// logout.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coelhor/feira/internal/core"
	"github.com/coelhor/feira/internal/model"
)

// Manager hands out the session-scoped data core for a member. All sessions
// of the same member share one core, so the active-list pointer and undo
// buffer follow the member across tabs.
type Manager struct {
	mu     sync.Mutex
	repo   core.Repository
	logger *slog.Logger
	stores map[string]*core.Store
}

func NewManager(repo core.Repository, logger *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger,
		stores: make(map[string]*core.Store),
	}
}

// For returns the member's data core, loading it from the repository on
// first use.
func (m *Manager) For(ctx context.Context, member model.Member) (*core.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.stores[member.ID]; ok {
		return st, nil
	}

	st, err := core.Open(ctx, m.repo, member, m.logger.With("member", member.ID))
	if err != nil {
		return nil, err
	}
	m.stores[member.ID] = st
	m.logger.Debug("opened data core", "member", member.ID)
	return st, nil
}

// Drop tears down the member's core. Called at logout; the next request
// reloads fresh state from the repository.
func (m *Manager) Drop(memberID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stores[memberID]; ok {
		delete(m.stores, memberID)
		m.logger.Debug("dropped data core", "member", memberID)
	}
}

// Count returns the number of live cores.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
