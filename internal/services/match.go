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

// IneligibleError reports a failed compatibility check. Its message is
// the evaluator's reason, surfaced to the user verbatim.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string { return e.Reason }

// Is makes the error match ErrValidation, since eligibility failures
// are detected before any write and are recoverable locally.
func (e *IneligibleError) Is(target error) bool { return target == ErrValidation }

// MatchStore is the persistence surface the match service depends on
type MatchStore interface {
	Create(ctx context.Context, m *models.MatchRequest) error
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	UpdateStatus(ctx context.Context, m *models.MatchRequest) error
	ListByRecipient(ctx context.Context, recipientID string, status models.MatchStatus) ([]*models.MatchRequest, error)
}

// MatchService handles the breeding match request workflow
type MatchService struct {
	matchRepo MatchStore
	petRepo   PetStore
	userRepo  UserStore
	now       func() time.Time
}

// NewMatchService creates a new match service
func NewMatchService(matchRepo MatchStore, petRepo PetStore, userRepo UserStore) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		petRepo:   petRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// CreateMatchInput carries the fields of a breeding proposal
type CreateMatchInput struct {
	RequesterPetID string
	RecipientPetID string
	Message        string
}

// CreateMatchRequest validates and persists a breeding proposal.
// All preconditions run before any write: the message must be
// non-empty, the requester pet must belong to the caller, the pets
// must belong to different users, and the pair must pass the
// compatibility evaluation. An ineligible pair fails with the
// evaluator's reason, never reaching the store.
func (s *MatchService) CreateMatchRequest(ctx context.Context, requesterID string, in CreateMatchInput) (*models.MatchRequest, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if in.RequesterPetID == "" || in.RecipientPetID == "" {
		return nil, fmt.Errorf("%w: requesterPetId and recipientPetId are required", ErrValidation)
	}

	requesterPet, err := s.getPet(ctx, in.RequesterPetID)
	if err != nil {
		return nil, err
	}
	if requesterPet.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: pet %s does not belong to caller", ErrForbidden, in.RequesterPetID)
	}

	recipientPet, err := s.getPet(ctx, in.RecipientPetID)
	if err != nil {
		return nil, err
	}
	if recipientPet.OwnerID == requesterID {
		return nil, fmt.Errorf("%w: cannot request a match against your own pet", ErrValidation)
	}

	if c := EvaluateCompatibility(requesterPet, recipientPet); !c.Eligible {
		return nil, &IneligibleError{Reason: c.Reason}
	}

	now := s.now()
	m := &models.MatchRequest{
		ID:             uuid.New().String(),
		RequesterID:    requesterID,
		RecipientID:    recipientPet.OwnerID,
		RequesterPetID: requesterPet.ID,
		RecipientPetID: recipientPet.ID,
		Message:        strings.TrimSpace(in.Message),
		Status:         models.MatchPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}

	m.RequesterPet = requesterPet
	m.RecipientPet = recipientPet
	return m, nil
}

// Respond transitions a pending match request to APPROVED or REJECTED.
// Only the recipient may respond, and only while the request is
// PENDING; both terminal states admit no further transitions.
func (s *MatchService) Respond(ctx context.Context, matchID, callerID string, approve bool) (*models.MatchRequest, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("match request %s: %w", matchID, ErrNotFound)
		}
		return nil, err
	}

	if m.RecipientID != callerID {
		return nil, fmt.Errorf("%w: only the recipient may respond", ErrForbidden)
	}
	if !m.Status.CanRespond() {
		return nil, fmt.Errorf("%w: match request is already %s", ErrBadState, m.Status)
	}

	if approve {
		m.Status = models.MatchApproved
	} else {
		m.Status = models.MatchRejected
	}
	m.UpdatedAt = s.now()

	if err := s.matchRepo.UpdateStatus(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update match request: %w", err)
	}
	return m, nil
}

// ReceivedRequests lists match requests addressed to a user, optionally
// constrained to one status. Deck views pass PENDING so responded
// requests drop out; history views pass no filter and keep them.
// Each entry is hydrated with the pets and parties involved.
func (s *MatchService) ReceivedRequests(ctx context.Context, recipientID string, statusFilter string) ([]*models.MatchRequest, error) {
	status := models.ParseMatchStatus(statusFilter)
	requests, err := s.matchRepo.ListByRecipient(ctx, recipientID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list match requests: %w", err)
	}

	for _, m := range requests {
		s.hydrate(ctx, m)
	}
	return requests, nil
}

// MatchOptions is the selection contract for proposing a match: the
// caller's compatible pets first, then incompatible ones annotated
// with their reason, plus a guidance hint when nothing is compatible.
type MatchOptions struct {
	TargetPet    *models.Pet       `json:"targetPet"`
	Compatible   []*models.Pet     `json:"compatible"`
	Incompatible []IncompatiblePet `json:"incompatible"`
	Hint         string            `json:"hint,omitempty"`
}

// OptionsFor partitions the caller's pets against a target pet
func (s *MatchService) OptionsFor(ctx context.Context, callerID, targetPetID string) (*MatchOptions, error) {
	target, err := s.getPet(ctx, targetPetID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID == callerID {
		return nil, fmt.Errorf("%w: cannot request a match against your own pet", ErrValidation)
	}

	mine, err := s.petRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch own pets: %w", err)
	}

	compatible, incompatible := PartitionByCompatibility(mine, target)
	opts := &MatchOptions{
		TargetPet:    target,
		Compatible:   compatible,
		Incompatible: incompatible,
	}
	if len(compatible) == 0 && len(mine) > 0 {
		opts.Hint = CompatibilityHint(target)
	}
	return opts, nil
}

// hydrate fills in the pet and party summaries for a request.
// Best effort: a missing side leaves its field nil rather than
// failing the whole listing.
func (s *MatchService) hydrate(ctx context.Context, m *models.MatchRequest) {
	if p, err := s.petRepo.GetByID(ctx, m.RequesterPetID); err == nil {
		m.RequesterPet = p
	}
	if p, err := s.petRepo.GetByID(ctx, m.RecipientPetID); err == nil {
		m.RecipientPet = p
	}
	if u, err := s.userRepo.GetByID(ctx, m.RequesterID); err == nil {
		summary := u.Summary()
		m.Requester = &summary
	}
	if u, err := s.userRepo.GetByID(ctx, m.RecipientID); err == nil {
		summary := u.Summary()
		m.Recipient = &summary
	}
}

func (s *MatchService) getPet(ctx context.Context, id string) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("pet %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return pet, nil
}
