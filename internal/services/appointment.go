package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmatch-backend/internal/models"
	"petmatch-backend/internal/repository"

	"github.com/google/uuid"
)

// AppointmentStore is the persistence surface the appointment service depends on
type AppointmentStore interface {
	Create(ctx context.Context, a *models.VetAppointment) error
	GetByID(ctx context.Context, id string) (*models.VetAppointment, error)
	UpdateStatus(ctx context.Context, a *models.VetAppointment) error
	ListByVet(ctx context.Context, vetID string, status models.AppointmentStatus) ([]*models.VetAppointment, error)
	ListByOwner(ctx context.Context, ownerID string, status models.AppointmentStatus) ([]*models.VetAppointment, error)
}

// AppointmentService handles the vet scheduling workflow
type AppointmentService struct {
	appointmentRepo AppointmentStore
	petRepo         PetStore
	userRepo        UserStore
	now             func() time.Time
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointmentRepo AppointmentStore, petRepo PetStore, userRepo UserStore) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		petRepo:         petRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

// AppointmentInput carries the fields of an appointment request
type AppointmentInput struct {
	VetUsername string
	PetID       string
	Date        *time.Time
	TimeSlot    string
	Reason      string
	Emergency   bool
	Notes       string
}

// Schedule validates and persists an appointment request.
// Emergency visits skip the date and time slot; regular appointments
// require both. The request starts out REQUESTED.
func (s *AppointmentService) Schedule(ctx context.Context, ownerID string, in AppointmentInput) (*models.VetAppointment, error) {
	if !in.Emergency {
		if in.Date == nil || in.Date.IsZero() {
			return nil, fmt.Errorf("%w: appointment date is required", ErrValidation)
		}
		if strings.TrimSpace(in.TimeSlot) == "" {
			return nil, fmt.Errorf("%w: time slot is required", ErrValidation)
		}
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}

	pet, err := s.petRepo.GetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("pet %s: %w", in.PetID, ErrNotFound)
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: pet %s does not belong to caller", ErrForbidden, in.PetID)
	}

	vet, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.VetUsername))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("vet %s: %w", in.VetUsername, ErrNotFound)
		}
		return nil, err
	}
	if vet.Role != models.RoleVet {
		return nil, fmt.Errorf("%w: user %s is not a vet", ErrValidation, vet.Username)
	}
	if vet.ID == ownerID {
		return nil, fmt.Errorf("%w: cannot book an appointment with yourself", ErrValidation)
	}

	now := s.now()
	a := &models.VetAppointment{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		VetID:     vet.ID,
		PetID:     pet.ID,
		Date:      in.Date,
		TimeSlot:  strings.TrimSpace(in.TimeSlot),
		Reason:    strings.TrimSpace(in.Reason),
		Emergency: in.Emergency,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    models.AppointmentRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.appointmentRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create vet appointment: %w", err)
	}

	a.Pet = pet
	vetSummary := vet.Summary()
	a.Vet = &vetSummary
	return a, nil
}

// Respond lets the vet confirm or decline a requested appointment
func (s *AppointmentService) Respond(ctx context.Context, appointmentID, callerID string, confirm bool) (*models.VetAppointment, error) {
	a, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.VetID != callerID {
		return nil, fmt.Errorf("%w: only the vet may respond", ErrForbidden)
	}
	if !a.Status.CanRespond() {
		return nil, fmt.Errorf("%w: vet appointment is already %s", ErrBadState, a.Status)
	}

	if confirm {
		a.Status = models.AppointmentConfirmed
	} else {
		a.Status = models.AppointmentDeclined
	}
	a.UpdatedAt = s.now()

	if err := s.appointmentRepo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update vet appointment: %w", err)
	}
	return a, nil
}

// Cancel lets the owner withdraw a requested or confirmed appointment
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, callerID string) (*models.VetAppointment, error) {
	a, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the owner may cancel", ErrForbidden)
	}
	if !a.Status.CanCancel() {
		return nil, fmt.Errorf("%w: vet appointment is already %s", ErrBadState, a.Status)
	}

	a.Status = models.AppointmentCancelled
	a.UpdatedAt = s.now()

	if err := s.appointmentRepo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update vet appointment: %w", err)
	}
	return a, nil
}

// VetAppointments lists appointments addressed to a vet
func (s *AppointmentService) VetAppointments(ctx context.Context, vetID string, statusFilter string) ([]*models.VetAppointment, error) {
	appointments, err := s.appointmentRepo.ListByVet(ctx, vetID, models.ParseAppointmentStatus(statusFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to list vet appointments: %w", err)
	}
	for _, a := range appointments {
		s.hydrate(ctx, a)
	}
	return appointments, nil
}

// OwnedAppointments lists appointments created by an owner
func (s *AppointmentService) OwnedAppointments(ctx context.Context, ownerID string, statusFilter string) ([]*models.VetAppointment, error) {
	appointments, err := s.appointmentRepo.ListByOwner(ctx, ownerID, models.ParseAppointmentStatus(statusFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to list vet appointments: %w", err)
	}
	for _, a := range appointments {
		s.hydrate(ctx, a)
	}
	return appointments, nil
}

func (s *AppointmentService) hydrate(ctx context.Context, a *models.VetAppointment) {
	if p, err := s.petRepo.GetByID(ctx, a.PetID); err == nil {
		a.Pet = p
	}
	if u, err := s.userRepo.GetByID(ctx, a.OwnerID); err == nil {
		summary := u.Summary()
		a.Owner = &summary
	}
	if u, err := s.userRepo.GetByID(ctx, a.VetID); err == nil {
		summary := u.Summary()
		a.Vet = &summary
	}
}

func (s *AppointmentService) getAppointment(ctx context.Context, id string) (*models.VetAppointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("vet appointment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}
