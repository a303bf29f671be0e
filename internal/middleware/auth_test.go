package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/models"
)

type stubUserProvider struct {
	users map[int]*models.User
}

func (s *stubUserProvider) GetUser(id int) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func newTestMiddleware(users ...*models.User) (*AuthMiddleware, sessions.Store) {
	provider := &stubUserProvider{users: make(map[int]*models.User)}
	for _, user := range users {
		provider.users[user.ID] = user
	}

	store := sessions.NewCookieStore([]byte("test-session-key"))
	return NewAuthMiddleware(provider, store), store
}

// sessionRequest builds a request carrying a session cookie for the given
// user id
func sessionRequest(t *testing.T, store sessions.Store, userID int) *http.Request {
	t.Helper()

	setter := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodGet, "/", nil)

	session, err := store.Get(seed, SessionName)
	require.NoError(t, err)
	session.Values["user_id"] = userID
	require.NoError(t, session.Save(seed, setter))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range setter.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestLoadUser_ValidSession(t *testing.T) {
	attendee := &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleAttendee}
	mw, store := newTestMiddleware(attendee)

	var got *models.User
	handler := mw.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), sessionRequest(t, store, 1))

	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestLoadUser_NoSessionContinuesAnonymously(t *testing.T) {
	mw, _ := newTestMiddleware()

	called := false
	handler := mw.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, GetUserFromContext(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestLoadUser_UnknownUserContinuesAnonymously(t *testing.T) {
	mw, store := newTestMiddleware()

	handler := mw.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, GetUserFromContext(r.Context()))
	}))

	// Session references a user id that no longer exists
	handler.ServeHTTP(httptest.NewRecorder(), sessionRequest(t, store, 99))
}

func TestRequireAuth(t *testing.T) {
	mw, _ := newTestMiddleware()

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user := &models.User{ID: 1, Role: models.RoleAttendee}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireOrganizer(t *testing.T) {
	mw, _ := newTestMiddleware()

	handler := mw.RequireOrganizer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Attendee
	attendee := &models.User{ID: 1, Role: models.RoleAttendee}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, attendee))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Organizer
	organizer := &models.User{ID: 2, Role: models.RoleOrganizer}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, organizer))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
