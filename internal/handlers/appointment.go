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

// AppointmentHandler handles vet appointment HTTP requests
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
	wsHub              *services.WSHub
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService, wsHub *services.WSHub) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		wsHub:              wsHub,
	}
}

// AppointmentRequest represents the request body for scheduling
type AppointmentRequest struct {
	VetUsername string `json:"vetUsername"`
	PetID       string `json:"petId"`
	Date        string `json:"date"` // YYYY-MM-DD, required unless emergency
	TimeSlot    string `json:"timeSlot"`
	Reason      string `json:"reason"`
	Emergency   bool   `json:"emergency"`
	Notes       string `json:"notes"`
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := middleware.GetUserID(ctx)

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var date *time.Time
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = &t
	}

	a, err := h.appointmentService.Schedule(ctx, ownerID, services.AppointmentInput{
		VetUsername: req.VetUsername,
		PetID:       req.PetID,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		Reason:      req.Reason,
		Emergency:   req.Emergency,
		Notes:       req.Notes,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("owner_id", ownerID).
			Str("vet_username", req.VetUsername).
			Msg("Failed to schedule vet appointment")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("appointment_id", a.ID).
		Str("owner_id", a.OwnerID).
		Str("vet_id", a.VetID).
		Bool("emergency", a.Emergency).
		Msg("Vet appointment scheduled")

	h.wsHub.NotifyAppointmentUpdated(a.VetID, a)

	respondJSON(w, http.StatusCreated, a)
}

// AppointmentRespondRequest represents the request body for a vet response
type AppointmentRespondRequest struct {
	Confirm bool `json:"confirm"`
}

// Respond handles POST /appointments/{appointmentID}/respond/by-username
func (h *AppointmentHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	appointmentID := chi.URLParam(r, "appointmentID")

	var req AppointmentRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.appointmentService.Respond(ctx, appointmentID, callerID, req.Confirm)
	if err != nil {
		log.Error().
			Err(err).
			Str("appointment_id", appointmentID).
			Str("user_id", callerID).
			Msg("Failed to respond to vet appointment")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("appointment_id", a.ID).
		Str("status", string(a.Status)).
		Msg("Vet appointment responded")

	h.wsHub.NotifyAppointmentUpdated(a.OwnerID, a)

	respondJSON(w, http.StatusOK, a)
}

// Cancel handles POST /appointments/{appointmentID}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)
	appointmentID := chi.URLParam(r, "appointmentID")

	a, err := h.appointmentService.Cancel(ctx, appointmentID, callerID)
	if err != nil {
		log.Error().
			Err(err).
			Str("appointment_id", appointmentID).
			Str("user_id", callerID).
			Msg("Failed to cancel vet appointment")
		respondServiceError(w, err)
		return
	}

	h.wsHub.NotifyAppointmentUpdated(a.VetID, a)

	respondJSON(w, http.StatusOK, a)
}

// ForVet handles GET /appointments/vet/{username}?status=
func (h *AppointmentHandler) ForVet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if username != middleware.GetUsername(ctx) {
		respondError(w, "Appointments may only be listed by their vet", http.StatusForbidden)
		return
	}

	appointments, err := h.appointmentService.VetAppointments(ctx, middleware.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appointments)
}

// ForOwner handles GET /appointments/owner/{username}?status=
func (h *AppointmentHandler) ForOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if username != middleware.GetUsername(ctx) {
		respondError(w, "Appointments may only be listed by their owner", http.StatusForbidden)
		return
	}

	appointments, err := h.appointmentService.OwnedAppointments(ctx, middleware.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appointments)
}
