package repository

import (
	"context"
	"errors"
	"fmt"

	"petmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository handles database operations for match requests
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, requester_id, recipient_id, requester_pet_id,
	recipient_pet_id, message, status, created_at, updated_at`

func scanMatch(row pgx.Row) (*models.MatchRequest, error) {
	var m models.MatchRequest
	err := row.Scan(
		&m.ID, &m.RequesterID, &m.RecipientID, &m.RequesterPetID,
		&m.RecipientPetID, &m.Message, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("match request: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan match request: %w", err)
	}
	return &m, nil
}

// Create creates a new match request
func (r *MatchRepository) Create(ctx context.Context, m *models.MatchRequest) error {
	query := `
		INSERT INTO match_requests (id, requester_id, recipient_id,
			requester_pet_id, recipient_pet_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.RequesterID, m.RecipientID, m.RequesterPetID,
		m.RecipientPetID, m.Message, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match request: %w", err)
	}
	return nil
}

// GetByID retrieves a match request by ID
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	query := `SELECT ` + matchColumns + ` FROM match_requests WHERE id = $1`
	return scanMatch(r.db.QueryRow(ctx, query, id))
}

// UpdateStatus transitions a match request's status
func (r *MatchRepository) UpdateStatus(ctx context.Context, m *models.MatchRequest) error {
	query := `UPDATE match_requests SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, m.ID, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update match request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match request: %w", ErrNotFound)
	}
	return nil
}

// ListByRecipient retrieves match requests addressed to a user,
// optionally constrained to a single status.
func (r *MatchRepository) ListByRecipient(ctx context.Context, recipientID string, status models.MatchStatus) ([]*models.MatchRequest, error) {
	query := `SELECT ` + matchColumns + ` FROM match_requests WHERE recipient_id = $1`
	args := []any{recipientID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.MatchRequest, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match requests: %w", err)
	}
	return requests, nil
}
