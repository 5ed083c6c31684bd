package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/session"
	ws "github.com/coelhor/feira/internal/websocket"
)

type MemberHandler struct {
	sessions *session.Manager
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewMemberHandler(sessions *session.Manager, hub *ws.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{sessions: sessions, hub: hub, logger: logger}
}

// Add invites an email address to a list.
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	var req struct {
		Email string `json:"email"`
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

	member, err := st.AddMember(r.Context(), listID, req.Email)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "created", member.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusCreated, member)
}

// Remove drops a member from a list. Members cannot remove themselves.
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	memberID := r.PathValue("memberID")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.RemoveMember(r.Context(), listID, memberID); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("member", "deleted", memberID, map[string]any{"list_id": listID}))
	w.WriteHeader(http.StatusNoContent)
}
