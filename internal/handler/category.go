package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/session"
	ws "github.com/coelhor/feira/internal/websocket"
)

type CategoryHandler struct {
	sessions *session.Manager
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewCategoryHandler(sessions *session.Manager, hub *ws.Hub, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{sessions: sessions, hub: hub, logger: logger}
}

// List returns the category registry in insertion order.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Categories())
}

// Create appends a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	cat, err := st.AddCategory(r.Context(), req.Name)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("category", "created", cat.ID, nil))
	writeJSON(w, http.StatusCreated, cat)
}

// Rename renames a category and rewrites every item tagged with the old
// name. The target is addressed by the id in the path.
func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ref := model.CategoryRef{ID: r.PathValue("id")}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	cat, err := st.RenameCategory(r.Context(), ref, req.Name)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("category", "updated", cat.ID, nil))
	writeJSON(w, http.StatusOK, cat)
}

// Delete removes a category; items that referenced it move to the fallback.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := model.CategoryRef{ID: r.PathValue("id")}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.DeleteCategory(r.Context(), ref); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("category", "deleted", ref.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}
