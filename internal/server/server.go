package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coelhor/feira/internal/backup"
	"github.com/coelhor/feira/internal/handler"
	"github.com/coelhor/feira/internal/middleware"
	"github.com/coelhor/feira/internal/session"
	"github.com/coelhor/feira/internal/store"
	ws "github.com/coelhor/feira/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	stateH        *handler.StateHandler
	listH         *handler.ListHandler
	itemH         *handler.ItemHandler
	memberH       *handler.MemberHandler
	categoryH     *handler.CategoryHandler
	productH      *handler.ProductHandler
	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	cores         *session.Manager
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	repo := store.NewRepository(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	cores := session.NewManager(repo, logger.With("component", "core"))

	backupMgr := backup.NewManager(backupCfg, db, func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"in_progress": s.InProgress,
				"error":       s.Error,
			},
		})
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, cores, logger.With("component", "auth")),
		stateH:        handler.NewStateHandler(cores, logger.With("component", "state")),
		listH:         handler.NewListHandler(cores, hub, logger.With("component", "list")),
		itemH:         handler.NewItemHandler(cores, hub, logger.With("component", "item")),
		memberH:       handler.NewMemberHandler(cores, hub, logger.With("component", "member")),
		categoryH:     handler.NewCategoryHandler(cores, hub, logger.With("component", "category")),
		productH:      handler.NewProductHandler(cores, hub, logger.With("component", "product")),
		sessionStore:  sessionStore,
		userStore:     userStore,
		cores:         cores,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Full snapshot + active list
	mux.HandleFunc("GET /api/state", s.stateH.Get)
	mux.HandleFunc("GET /api/lists/active", s.stateH.ActiveList)

	// List routes
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Rename)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("POST /api/lists/{id}/activate", s.listH.Activate)

	// Item routes
	mux.HandleFunc("POST /api/lists/{id}/items", s.itemH.Create)
	mux.HandleFunc("PUT /api/lists/{id}/items/{itemID}", s.itemH.Update)
	mux.HandleFunc("POST /api/lists/{id}/items/{itemID}/toggle", s.itemH.Toggle)
	mux.HandleFunc("DELETE /api/lists/{id}/items/{itemID}", s.itemH.Delete)
	mux.HandleFunc("POST /api/lists/{id}/undo", s.itemH.Undo)
	mux.HandleFunc("POST /api/lists/{id}/items/from-bank", s.itemH.FromBank)

	// Member routes
	mux.HandleFunc("POST /api/lists/{id}/members", s.memberH.Add)
	mux.HandleFunc("DELETE /api/lists/{id}/members/{memberID}", s.memberH.Remove)

	// Category routes
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Rename)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	// Product bank routes
	mux.HandleFunc("GET /api/products", s.productH.Search)
	mux.HandleFunc("POST /api/products", s.productH.Create)
	mux.HandleFunc("PUT /api/products/{id}", s.productH.Update)
	mux.HandleFunc("DELETE /api/products/{id}", s.productH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
