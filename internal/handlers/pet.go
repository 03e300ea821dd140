package handlers

import (
	"encoding/json"
	"net/http"

	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PetHandler handles pet-related HTTP requests
type PetHandler struct {
	petService  *services.PetService
	userService *services.UserService
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *services.PetService, userService *services.UserService) *PetHandler {
	return &PetHandler{
		petService:  petService,
		userService: userService,
	}
}

// CreatePetRequest represents the request body for creating a pet
type CreatePetRequest struct {
	Name                 string `json:"name"`
	Animal               string `json:"animal"`
	Breed                string `json:"breed"`
	Age                  int    `json:"age"`
	Gender               string `json:"gender"`
	Vaccinated           bool   `json:"vaccinated"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	ImageURL             string `json:"imageUrl"`
	AvailableForMatch    bool   `json:"isAvailableForMatch"`
	AvailableForBoarding bool   `json:"isAvailableForBoarding"`
}

// CreatePet handles POST /pets
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetUserID(ctx)

	var req CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pet, err := h.petService.CreatePet(ctx, ownerID, services.PetInput{
		Name:                 req.Name,
		Animal:               req.Animal,
		Breed:                req.Breed,
		Age:                  req.Age,
		Gender:               req.Gender,
		Vaccinated:           req.Vaccinated,
		Description:          req.Description,
		Location:             req.Location,
		ImageURL:             req.ImageURL,
		AvailableForMatch:    req.AvailableForMatch,
		AvailableForBoarding: req.AvailableForBoarding,
	})
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to create pet")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("pet_id", pet.ID).
		Str("owner_id", ownerID).
		Str("animal", string(pet.Animal)).
		Msg("Pet created")

	respondJSON(w, http.StatusCreated, pet)
}

// UpdatePetRequest represents the PATCH body for a pet update
type UpdatePetRequest struct {
	Name                 *string `json:"name"`
	Animal               *string `json:"animal"`
	Breed                *string `json:"breed"`
	Age                  *int    `json:"age"`
	Gender               *string `json:"gender"`
	Vaccinated           *bool   `json:"vaccinated"`
	Description          *string `json:"description"`
	Location             *string `json:"location"`
	ImageURL             *string `json:"imageUrl"`
	AvailableForMatch    *bool   `json:"isAvailableForMatch"`
	AvailableForBoarding *bool   `json:"isAvailableForBoarding"`
}

// UpdatePet handles PATCH /pets/{petID}
func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	petID := chi.URLParam(r, "petID")

	var req UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pet, err := h.petService.UpdatePet(ctx, petID, callerID, services.UpdatePetInput{
		Name:                 req.Name,
		Animal:               req.Animal,
		Breed:                req.Breed,
		Age:                  req.Age,
		Gender:               req.Gender,
		Vaccinated:           req.Vaccinated,
		Description:          req.Description,
		Location:             req.Location,
		ImageURL:             req.ImageURL,
		AvailableForMatch:    req.AvailableForMatch,
		AvailableForBoarding: req.AvailableForBoarding,
	})
	if err != nil {
		log.Error().Err(err).Str("pet_id", petID).Msg("Failed to update pet")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pet)
}

// ListUserPets handles GET /users/{userID}/pets
func (h *PetHandler) ListUserPets(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	pets, err := h.petService.ListByOwnerID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list pets")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pets)
}

// ListPetsByOwnerUsername handles GET /pets/owner/{username}
func (h *PetHandler) ListPetsByOwnerUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	pets, err := h.petService.ListByOwnerUsername(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pets)
}

// MatchFeed handles GET /pets/match: the candidate browse feed with
// the caller's own pets excluded.
func (h *PetHandler) MatchFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)

	caller, err := h.userService.GetByID(ctx, callerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	feed, err := h.petService.MatchCandidates(ctx, caller)
	if err != nil {
		log.Error().Err(err).Str("user_id", callerID).Msg("Failed to build match feed")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}
