package repository

import (
	"context"
	"errors"
	"fmt"

	"petmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PetRepository handles database operations for pets
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

// Pets are always read together with their owner's identity block
// because feed filtering and request validation both need it.
const petSelect = `
	SELECT p.id, p.owner_id, p.name, p.animal, p.breed, p.age, p.gender,
		p.vaccinated, p.description, p.location, p.image_url,
		p.available_for_match, p.available_for_boarding,
		p.created_at, p.updated_at,
		u.id, u.username, u.display_name, u.name
	FROM pets p
	JOIN users u ON u.id = p.owner_id
`

func scanPet(row pgx.Row) (*models.Pet, error) {
	var p models.Pet
	var owner models.OwnerSummary
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Animal, &p.Breed, &p.Age, &p.Gender,
		&p.Vaccinated, &p.Description, &p.Location, &p.ImageURL,
		&p.AvailableForMatch, &p.AvailableForBoarding,
		&p.CreatedAt, &p.UpdatedAt,
		&owner.ID, &owner.Username, &owner.DisplayName, &owner.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pet: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan pet: %w", err)
	}
	p.Owner = &owner
	return &p, nil
}

func collectPets(rows pgx.Rows) ([]*models.Pet, error) {
	defer rows.Close()
	pets := make([]*models.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pets: %w", err)
	}
	return pets, nil
}

// Create creates a new pet
func (r *PetRepository) Create(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, owner_id, name, animal, breed, age, gender,
			vaccinated, description, location, image_url,
			available_for_match, available_for_boarding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		pet.ID, pet.OwnerID, pet.Name, pet.Animal, pet.Breed, pet.Age, pet.Gender,
		pet.Vaccinated, pet.Description, pet.Location, pet.ImageURL,
		pet.AvailableForMatch, pet.AvailableForBoarding, pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// Update persists mutable fields for a pet
func (r *PetRepository) Update(ctx context.Context, pet *models.Pet) error {
	query := `
		UPDATE pets
		SET name = $2, animal = $3, breed = $4, age = $5, gender = $6,
			vaccinated = $7, description = $8, location = $9, image_url = $10,
			available_for_match = $11, available_for_boarding = $12, updated_at = $13
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query,
		pet.ID, pet.Name, pet.Animal, pet.Breed, pet.Age, pet.Gender,
		pet.Vaccinated, pet.Description, pet.Location, pet.ImageURL,
		pet.AvailableForMatch, pet.AvailableForBoarding, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("pet: %w", ErrNotFound)
	}
	return nil
}

// GetByID retrieves a pet by ID
func (r *PetRepository) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	query := petSelect + ` WHERE p.id = $1`
	return scanPet(r.db.QueryRow(ctx, query, id))
}

// ListByOwner retrieves all pets owned by a user
func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Pet, error) {
	query := petSelect + ` WHERE p.owner_id = $1 ORDER BY p.created_at`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets by owner: %w", err)
	}
	return collectPets(rows)
}

// ListMatchCandidates retrieves all pets available for breeding matches
func (r *PetRepository) ListMatchCandidates(ctx context.Context) ([]*models.Pet, error) {
	query := petSelect + ` WHERE p.available_for_match ORDER BY p.created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list match candidates: %w", err)
	}
	return collectPets(rows)
}
