package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"tickethub/internal/middleware"
	"tickethub/internal/models"
	"tickethub/internal/services"
)

// AuthHandler handles signup, signin, signout and profile requests
type AuthHandler struct {
	authService services.AuthServiceInterface
	store       sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, store sessions.Store) *AuthHandler {
	return &AuthHandler{authService: authService, store: store}
}

// Signup registers a new account
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Signin verifies credentials and establishes a session
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Signout clears the session
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Profile returns the authenticated user
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	respondJSON(w, http.StatusOK, user)
}

// UpdatePassword changes the user's password after re-verifying the current
// one
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.PasswordChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.authService.ChangePassword(user.ID, &req); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
