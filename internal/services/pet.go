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

// PetStore is the persistence surface the pet service depends on
type PetStore interface {
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Pet, error)
	ListMatchCandidates(ctx context.Context) ([]*models.Pet, error)
}

// PetService handles pet profiles and the breeding candidate feed
type PetService struct {
	petRepo  PetStore
	userRepo UserStore
	now      func() time.Time
}

// NewPetService creates a new pet service
func NewPetService(petRepo PetStore, userRepo UserStore) *PetService {
	return &PetService{
		petRepo:  petRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// PetInput carries the fields accepted when creating a pet
type PetInput struct {
	Name                 string
	Animal               string
	Breed                string
	Age                  int
	Gender               string
	Vaccinated           bool
	Description          string
	Location             string
	ImageURL             string
	AvailableForMatch    bool
	AvailableForBoarding bool
}

// CreatePet registers a new pet owned by the caller.
// Species and gender normalize through the canonical enums here, at
// the boundary, so downstream comparison logic never re-normalizes.
func (s *PetService) CreatePet(ctx context.Context, ownerID string, in PetInput) (*models.Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	animal := models.ParseAnimalType(in.Animal)
	if animal == "" {
		return nil, fmt.Errorf("%w: unknown animal type %q", ErrValidation, in.Animal)
	}
	if in.Age < 0 {
		return nil, fmt.Errorf("%w: age cannot be negative", ErrValidation)
	}

	now := s.now()
	pet := &models.Pet{
		ID:                   uuid.New().String(),
		OwnerID:              ownerID,
		Name:                 strings.TrimSpace(in.Name),
		Animal:               animal,
		Breed:                strings.TrimSpace(in.Breed),
		Age:                  in.Age,
		Gender:               models.NormalizeGender(in.Gender),
		Vaccinated:           in.Vaccinated,
		Description:          strings.TrimSpace(in.Description),
		Location:             strings.TrimSpace(in.Location),
		ImageURL:             strings.TrimSpace(in.ImageURL),
		AvailableForMatch:    in.AvailableForMatch,
		AvailableForBoarding: in.AvailableForBoarding,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	return pet, nil
}

// UpdatePetInput carries the PATCHable pet fields; nil means leave untouched
type UpdatePetInput struct {
	Name                 *string
	Animal               *string
	Breed                *string
	Age                  *int
	Gender               *string
	Vaccinated           *bool
	Description          *string
	Location             *string
	ImageURL             *string
	AvailableForMatch    *bool
	AvailableForBoarding *bool
}

// UpdatePet applies a partial update to a pet owned by the caller
func (s *PetService) UpdatePet(ctx context.Context, petID, callerID string, in UpdatePetInput) (*models.Pet, error) {
	pet, err := s.getPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != callerID {
		return nil, fmt.Errorf("%w: pet %s does not belong to caller", ErrForbidden, petID)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		pet.Name = strings.TrimSpace(*in.Name)
	}
	if in.Animal != nil {
		animal := models.ParseAnimalType(*in.Animal)
		if animal == "" {
			return nil, fmt.Errorf("%w: unknown animal type %q", ErrValidation, *in.Animal)
		}
		pet.Animal = animal
	}
	if in.Breed != nil {
		pet.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, fmt.Errorf("%w: age cannot be negative", ErrValidation)
		}
		pet.Age = *in.Age
	}
	if in.Gender != nil {
		pet.Gender = models.NormalizeGender(*in.Gender)
	}
	if in.Vaccinated != nil {
		pet.Vaccinated = *in.Vaccinated
	}
	if in.Description != nil {
		pet.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		pet.Location = strings.TrimSpace(*in.Location)
	}
	if in.ImageURL != nil {
		pet.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.AvailableForMatch != nil {
		pet.AvailableForMatch = *in.AvailableForMatch
	}
	if in.AvailableForBoarding != nil {
		pet.AvailableForBoarding = *in.AvailableForBoarding
	}
	pet.UpdatedAt = s.now()

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	return pet, nil
}

// GetByID retrieves a pet by ID
func (s *PetService) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	return s.getPet(ctx, id)
}

// ListByOwnerID retrieves all pets owned by a user
func (s *PetService) ListByOwnerID(ctx context.Context, ownerID string) ([]*models.Pet, error) {
	return s.petRepo.ListByOwner(ctx, ownerID)
}

// ListByOwnerUsername retrieves all pets owned by the named user
func (s *PetService) ListByOwnerUsername(ctx context.Context, username string) ([]*models.Pet, error) {
	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return s.petRepo.ListByOwner(ctx, owner.ID)
}

// MatchCandidates produces the breeding browse feed for a caller: all
// match-available pets minus the caller's own. Exclusion is a
// defensive double filter, by pet ID against the caller's own-pet set
// and by owner identity (username or display name), because upstream
// records tag ownership inconsistently. Backend order is preserved.
func (s *PetService) MatchCandidates(ctx context.Context, caller *models.User) ([]*models.Pet, error) {
	candidates, err := s.petRepo.ListMatchCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	own, err := s.petRepo.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch own pets: %w", err)
	}

	ownIDs := make(map[string]struct{}, len(own))
	for _, p := range own {
		ownIDs[p.ID] = struct{}{}
	}

	feed := make([]*models.Pet, 0, len(candidates))
	for _, c := range candidates {
		if _, mine := ownIDs[c.ID]; mine {
			continue
		}
		if c.OwnerID == caller.ID || ownerMatchesIdentity(c.Owner, caller) {
			continue
		}
		feed = append(feed, c)
	}
	return feed, nil
}

func ownerMatchesIdentity(owner *models.OwnerSummary, caller *models.User) bool {
	if owner == nil {
		return false
	}
	if owner.Username != "" && owner.Username == caller.Username {
		return true
	}
	if owner.DisplayName != "" && owner.DisplayName == caller.DisplayName {
		return true
	}
	return false
}

func (s *PetService) getPet(ctx context.Context, id string) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("pet %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return pet, nil
}
