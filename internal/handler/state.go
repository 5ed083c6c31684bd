package handler

import (
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/session"
)

type StateHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewStateHandler(sessions *session.Manager, logger *slog.Logger) *StateHandler {
	return &StateHandler{sessions: sessions, logger: logger}
}

// Get returns the full snapshot for the signed-in member: lists, active
// pointer, category registry, product bank and the undo buffer.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := dataStore(h.sessions, r)
	if err != nil {
		h.logger.Error("open data core", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	writeJSON(w, http.StatusOK, st.Snapshot())
}

// ActiveList returns the currently active list, or 204 when none exists.
func (h *StateHandler) ActiveList(w http.ResponseWriter, r *http.Request) {
	st, err := dataStore(h.sessions, r)
	if err != nil {
		h.logger.Error("open data core", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	list := st.ActiveList()
	if list == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
