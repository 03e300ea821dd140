package handlers

import (
	"encoding/json"
	"net/http"

	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUserRequest represents the request body for registration
type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(ctx, services.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Phone:       req.Phone,
		Location:    req.Location,
	})
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		respondServiceError(w, err)
		return
	}

	token, err := h.userService.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User created")

	respondJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// UpdateUserRequest represents the PATCH body for a profile update
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	DisplayName  *string `json:"displayName"`
	Role         *string `json:"role"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateUser handles PATCH /users/{userID}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	userID := chi.URLParam(r, "userID")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, callerID, services.UpdateProfileInput{
		Name:         req.Name,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		Phone:        req.Phone,
		Location:     req.Location,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update user")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetUserByUsername handles GET /users/username/{username}
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CheckExists handles GET /users/exists?email=&username=
func (h *UserHandler) CheckExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	username := r.URL.Query().Get("username")

	result, err := h.userService.CheckExists(r.Context(), email, username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check user existence")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
