package middleware

import (
	"net/http"

	"github.com/coelhor/feira/internal/auth"
	"github.com/coelhor/feira/internal/store"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "feira_session"

// RequireAuth validates the session cookie, resolves the signed-in member,
// and populates the request context. Unauthenticated API requests get 401.
func RequireAuth(sessionStore *store.SessionStore, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := userStore.GetByID(sess.UserID)
			if err != nil || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac := auth.AuthContext{
				Member: user.Member(),
				Token:  sess.Token,
			}
			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
