package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/session"
	ws "github.com/coelhor/feira/internal/websocket"
)

type ListHandler struct {
	sessions *session.Manager
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewListHandler(sessions *session.Manager, hub *ws.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{sessions: sessions, hub: hub, logger: logger}
}

type listRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Create makes a new empty list and activates it.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	list, err := st.CreateList(r.Context(), req.Name, req.Icon)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("list", "created", list.ID, nil))
	writeJSON(w, http.StatusCreated, list)
}

// Rename updates a list's name.
func (h *ListHandler) Rename(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	list, err := st.RenameList(r.Context(), listID, req.Name)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("list", "updated", list.ID, nil))
	writeJSON(w, http.StatusOK, list)
}

// Delete removes a list; the active pointer falls back to the first
// remaining list.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.DeleteList(r.Context(), listID); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("list", "deleted", listID, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Activate points the active-list pointer at the given list.
func (h *ListHandler) Activate(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.SetActive(listID); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active_list_id": listID})
}
