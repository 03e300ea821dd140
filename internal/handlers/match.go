package handlers

import (
	"encoding/json"
	"net/http"

	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MatchHandler handles match-request HTTP requests
type MatchHandler struct {
	matchService *services.MatchService
	wsHub        *services.WSHub
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService, wsHub *services.WSHub) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		wsHub:        wsHub,
	}
}

// CreateMatchRequest represents the request body for a breeding proposal
type CreateMatchRequest struct {
	RequesterPetID string `json:"requesterPetId"`
	RecipientPetID string `json:"recipientPetId"`
	Message        string `json:"message"`
}

// Create handles POST /matches/request
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID := middleware.GetUserID(ctx)

	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.matchService.CreateMatchRequest(ctx, requesterID, services.CreateMatchInput{
		RequesterPetID: req.RequesterPetID,
		RecipientPetID: req.RecipientPetID,
		Message:        req.Message,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("requester_id", requesterID).
			Str("requester_pet_id", req.RequesterPetID).
			Str("recipient_pet_id", req.RecipientPetID).
			Msg("Failed to create match request")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("match_id", m.ID).
		Str("requester_id", m.RequesterID).
		Str("recipient_id", m.RecipientID).
		Msg("Match request created")

	// Push to the recipient if online; the request is already
	// persisted, so delivery failure is not surfaced.
	h.wsHub.NotifyMatchRequested(m)

	respondJSON(w, http.StatusCreated, m)
}

// Received handles GET /matches/received/{username}?status=
func (h *MatchHandler) Received(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if username != middleware.GetUsername(ctx) {
		respondError(w, "Match requests may only be listed by their recipient", http.StatusForbidden)
		return
	}

	requests, err := h.matchService.ReceivedRequests(ctx, middleware.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list match requests")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// RespondRequest represents the request body for a match response
type RespondRequest struct {
	Approve bool `json:"approve"`
}

// Respond handles POST /matches/{matchID}/respond/by-username
func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	matchID := chi.URLParam(r, "matchID")

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.matchService.Respond(ctx, matchID, callerID, req.Approve)
	if err != nil {
		log.Error().
			Err(err).
			Str("match_id", matchID).
			Str("user_id", callerID).
			Bool("approve", req.Approve).
			Msg("Failed to respond to match request")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("match_id", m.ID).
		Str("status", string(m.Status)).
		Msg("Match request responded")

	h.wsHub.NotifyMatchResponded(m)

	respondJSON(w, http.StatusOK, m)
}

// Options handles GET /matches/options/{petID}: partitions the
// caller's pets against a target pet so the selection UI can list
// compatible entries first and annotate the rest.
func (h *MatchHandler) Options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	petID := chi.URLParam(r, "petID")

	opts, err := h.matchService.OptionsFor(ctx, callerID, petID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opts)
}
