package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"tickethub/internal/models"
)

type contextKey string

const (
	// UserContextKey is the request context key holding the authenticated user
	UserContextKey contextKey = "user"

	// SessionName is the cookie session name
	SessionName = "tickethub_session"
)

// UserProvider loads users for session validation
type UserProvider interface {
	GetUser(id int) (*models.User, error)
}

// AuthMiddleware resolves the session cookie into an explicit user in the
// request context; core operations never reach for ambient identity.
type AuthMiddleware struct {
	users UserProvider
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(users UserProvider, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{users: users, store: store}
}

// LoadUser loads the current user from the session, if any, and adds it to
// the request context. Requests without a valid session continue anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUser(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without an authenticated user
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireOrganizer rejects requests unless the authenticated user is an
// organizer
func (m *AuthMiddleware) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		if !user.IsOrganizer() {
			http.Error(w, "Organizer role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the authenticated user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
