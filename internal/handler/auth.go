package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/coelhor/feira/internal/auth"
	"github.com/coelhor/feira/internal/middleware"
	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/session"
	"github.com/coelhor/feira/internal/store"
)

type AuthHandler struct {
	users    *store.UserStore
	sessions *store.SessionStore
	cores    *session.Manager
	logger   *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, cores *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, sessions: ss, cores: cores, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeErr(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeErr(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = model.NameFromEmail(req.Email)
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("check existing user", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if existing != nil {
		writeErr(w, http.StatusConflict, "an account with that email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to register")
		return
	}

	user, err := h.users.Create(req.Email, req.Name, string(hash))
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to register")
		return
	}

	if err := h.startSession(w, user); err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	hash, err := h.users.GetPasswordHash(req.Email)
	if err != nil {
		h.logger.Error("get password hash", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeErr(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil || user == nil {
		h.logger.Error("load user after login", "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := h.startSession(w, user); err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout ends the session and tears down the member's data core; the next
// login reloads state from the repository.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if ok {
		if err := h.sessions.Delete(ac.Token); err != nil {
			h.logger.Error("delete session", "error", err)
		}
		h.cores.Drop(ac.Member.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in member.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.CurrentMember(r.Context()))
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *model.User) error {
	sess, err := h.sessions.Create(user.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
