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

// BookingStore is the persistence surface the booking service depends on
type BookingStore interface {
	Create(ctx context.Context, b *models.SittingBooking) error
	GetByID(ctx context.Context, id string) (*models.SittingBooking, error)
	UpdateStatus(ctx context.Context, b *models.SittingBooking) error
	ListBySitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]*models.SittingBooking, error)
	ListByOwner(ctx context.Context, ownerID string, status models.BookingStatus) ([]*models.SittingBooking, error)
}

// BookingService handles the pet sitting booking workflow
type BookingService struct {
	bookingRepo BookingStore
	petRepo     PetStore
	userRepo    UserStore
	now         func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo BookingStore, petRepo PetStore, userRepo UserStore) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		petRepo:     petRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// BookingInput carries the fields of a sitting request
type BookingInput struct {
	SitterUsername string
	PetID          string
	ServiceType    string
	StartDate      time.Time
	EndDate        *time.Time
	Notes          string
}

// RequestBooking validates and persists a sitting request.
// The pet must belong to the caller and the sitter must be a
// registered SITTER; the request starts out PENDING.
func (s *BookingService) RequestBooking(ctx context.Context, ownerID string, in BookingInput) (*models.SittingBooking, error) {
	serviceType := models.ParseSittingService(in.ServiceType)
	if serviceType == "" {
		return nil, fmt.Errorf("%w: unknown service type %q", ErrValidation, in.ServiceType)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrValidation)
	}
	// Boarding spans nights, so it needs an end date; daycare and home
	// visits are single-day and may omit it.
	if serviceType == models.SittingBoarding && in.EndDate == nil {
		return nil, fmt.Errorf("%w: end date is required for boarding", ErrValidation)
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date cannot precede start date", ErrValidation)
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

	sitter, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.SitterUsername))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("sitter %s: %w", in.SitterUsername, ErrNotFound)
		}
		return nil, err
	}
	if sitter.Role != models.RoleSitter {
		return nil, fmt.Errorf("%w: user %s is not a sitter", ErrValidation, sitter.Username)
	}
	if sitter.ID == ownerID {
		return nil, fmt.Errorf("%w: cannot book yourself as a sitter", ErrValidation)
	}

	now := s.now()
	b := &models.SittingBooking{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		SitterID:    sitter.ID,
		PetID:       pet.ID,
		ServiceType: serviceType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Notes:       strings.TrimSpace(in.Notes),
		Status:      models.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create sitting booking: %w", err)
	}

	b.Pet = pet
	sitterSummary := sitter.Summary()
	b.Sitter = &sitterSummary
	return b, nil
}

// Respond lets the sitter accept or decline a pending booking
func (s *BookingService) Respond(ctx context.Context, bookingID, callerID string, accept bool) (*models.SittingBooking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.SitterID != callerID {
		return nil, fmt.Errorf("%w: only the sitter may respond", ErrForbidden)
	}
	if !b.Status.CanRespond() {
		return nil, fmt.Errorf("%w: sitting booking is already %s", ErrBadState, b.Status)
	}

	if accept {
		b.Status = models.BookingAccepted
	} else {
		b.Status = models.BookingDeclined
	}
	b.UpdatedAt = s.now()

	if err := s.bookingRepo.UpdateStatus(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update sitting booking: %w", err)
	}
	return b, nil
}

// Cancel lets the owner withdraw a booking that is still pending
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID string) (*models.SittingBooking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the owner may cancel", ErrForbidden)
	}
	if !b.Status.CanCancel() {
		return nil, fmt.Errorf("%w: sitting booking is already %s", ErrBadState, b.Status)
	}

	b.Status = models.BookingCancelled
	b.UpdatedAt = s.now()

	if err := s.bookingRepo.UpdateStatus(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update sitting booking: %w", err)
	}
	return b, nil
}

// ReceivedBookings lists bookings addressed to a sitter
func (s *BookingService) ReceivedBookings(ctx context.Context, sitterID string, statusFilter string) ([]*models.SittingBooking, error) {
	bookings, err := s.bookingRepo.ListBySitter(ctx, sitterID, models.ParseBookingStatus(statusFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to list sitting bookings: %w", err)
	}
	for _, b := range bookings {
		s.hydrate(ctx, b)
	}
	return bookings, nil
}

// OwnedBookings lists bookings created by an owner
func (s *BookingService) OwnedBookings(ctx context.Context, ownerID string, statusFilter string) ([]*models.SittingBooking, error) {
	bookings, err := s.bookingRepo.ListByOwner(ctx, ownerID, models.ParseBookingStatus(statusFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to list sitting bookings: %w", err)
	}
	for _, b := range bookings {
		s.hydrate(ctx, b)
	}
	return bookings, nil
}

func (s *BookingService) hydrate(ctx context.Context, b *models.SittingBooking) {
	if p, err := s.petRepo.GetByID(ctx, b.PetID); err == nil {
		b.Pet = p
	}
	if u, err := s.userRepo.GetByID(ctx, b.OwnerID); err == nil {
		summary := u.Summary()
		b.Owner = &summary
	}
	if u, err := s.userRepo.GetByID(ctx, b.SitterID); err == nil {
		summary := u.Summary()
		b.Sitter = &summary
	}
}

func (s *BookingService) getBooking(ctx context.Context, id string) (*models.SittingBooking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("sitting booking %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}
