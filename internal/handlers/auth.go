package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/models"
	"petmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles session-related HTTP requests
type AuthHandler struct {
	userService *services.UserService
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokenTTL:    tokenTTL,
	}
}

// AuthResponse is the payload returned on successful authentication
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// VerifyRequest represents the login body
type VerifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Verify handles POST /auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		respondServiceError(w, err)
		return
	}

	token, err := h.userService.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User signed in")

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Session handles GET /auth/session: the session bootstrap used by the
// frontend on page load. 401 means "not signed in", not an error.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.userService.GetByID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		respondError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{User: user})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// ValidateToken handles POST /auth/validate-token
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		respondError(w, "Bearer token required", http.StatusUnauthorized)
		return
	}

	userID, _, err := h.userService.ValidateJWT(parts[1])
	if err != nil {
		respondError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{User: user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
