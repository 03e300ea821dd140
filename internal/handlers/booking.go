package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BookingHandler handles sitting booking HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
	wsHub          *services.WSHub
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, wsHub *services.WSHub) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		wsHub:          wsHub,
	}
}

// BookingRequest represents the request body for a sitting request
type BookingRequest struct {
	SitterUsername string `json:"sitterUsername"`
	PetID          string `json:"petId"`
	ServiceType    string `json:"serviceType"`
	StartDate      string `json:"startDate"` // YYYY-MM-DD
	EndDate        string `json:"endDate"`   // YYYY-MM-DD, optional
	Notes          string `json:"notes"`
}

// Create handles POST /sittings/request
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetUserID(ctx)

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondError(w, "startDate must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	var end *time.Time
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			respondError(w, "endDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end = &t
	}

	b, err := h.bookingService.RequestBooking(ctx, ownerID, services.BookingInput{
		SitterUsername: req.SitterUsername,
		PetID:          req.PetID,
		ServiceType:    req.ServiceType,
		StartDate:      start,
		EndDate:        end,
		Notes:          req.Notes,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("owner_id", ownerID).
			Str("sitter_username", req.SitterUsername).
			Msg("Failed to create sitting booking")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("booking_id", b.ID).
		Str("owner_id", b.OwnerID).
		Str("sitter_id", b.SitterID).
		Msg("Sitting booking created")

	h.wsHub.NotifyBookingRequested(b)

	respondJSON(w, http.StatusCreated, b)
}

// BookingRespondRequest represents the request body for a sitter response
type BookingRespondRequest struct {
	Accept bool `json:"accept"`
}

// Respond handles POST /sittings/{bookingID}/respond/by-username
func (h *BookingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	bookingID := chi.URLParam(r, "bookingID")

	var req BookingRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	b, err := h.bookingService.Respond(ctx, bookingID, callerID, req.Accept)
	if err != nil {
		log.Error().
			Err(err).
			Str("booking_id", bookingID).
			Str("user_id", callerID).
			Msg("Failed to respond to sitting booking")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("booking_id", b.ID).
		Str("status", string(b.Status)).
		Msg("Sitting booking responded")

	h.wsHub.NotifyBookingUpdated(b)

	respondJSON(w, http.StatusOK, b)
}

// Cancel handles POST /sittings/{bookingID}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	bookingID := chi.URLParam(r, "bookingID")

	b, err := h.bookingService.Cancel(ctx, bookingID, callerID)
	if err != nil {
		log.Error().
			Err(err).
			Str("booking_id", bookingID).
			Str("user_id", callerID).
			Msg("Failed to cancel sitting booking")
		respondServiceError(w, err)
		return
	}

	h.wsHub.NotifyBookingCancelled(b)

	respondJSON(w, http.StatusOK, b)
}

// Received handles GET /sittings/received/{username}?status=
func (h *BookingHandler) Received(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if username != middleware.GetUsername(ctx) {
		respondError(w, "Sitting bookings may only be listed by their sitter", http.StatusForbidden)
		return
	}

	bookings, err := h.bookingService.ReceivedBookings(ctx, middleware.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// Owned handles GET /sittings/owner/{username}?status=
func (h *BookingHandler) Owned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if username != middleware.GetUsername(ctx) {
		respondError(w, "Sitting bookings may only be listed by their owner", http.StatusForbidden)
		return
	}

	bookings, err := h.bookingService.OwnedBookings(ctx, middleware.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}
