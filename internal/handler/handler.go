package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/auth"
	"github.com/coelhor/feira/internal/core"
	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCoreError maps data-core rejections to HTTP responses. Unexpected
// errors (persistence failures) become 500s with the detail logged, never
// leaked.
func writeCoreError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrNameRequired):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrDuplicateCategory),
		errors.Is(err, core.ErrDuplicateProduct),
		errors.Is(err, core.ErrDuplicateItem),
		errors.Is(err, core.ErrDuplicateMember),
		errors.Is(err, core.ErrFallbackCategory),
		errors.Is(err, core.ErrNothingToUndo):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrSelfRemoval):
		writeErr(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("core operation failed", "error", err)
		writeErr(w, http.StatusInternalServerError, "operation failed")
	}
}

// dataStore resolves the request's session-scoped data core.
func dataStore(sessions *session.Manager, r *http.Request) (*core.Store, error) {
	return sessions.For(r.Context(), auth.CurrentMember(r.Context()))
}

// categoryName resolves a wire category reference against the registry,
// returning the registry's casing. Unresolved references pass through as
// the raw name for the core to coerce.
func categoryName(st *core.Store, ref model.CategoryRef) string {
	for _, c := range st.Categories() {
		if ref.Matches(c) {
			return c.Name
		}
	}
	return ref.Name
}
