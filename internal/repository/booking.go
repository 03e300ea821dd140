package repository

import (
	"context"
	"errors"
	"fmt"

	"petmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository handles database operations for sitting bookings
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, owner_id, sitter_id, pet_id, service_type,
	start_date, end_date, notes, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*models.SittingBooking, error) {
	var b models.SittingBooking
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.SitterID, &b.PetID, &b.ServiceType,
		&b.StartDate, &b.EndDate, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sitting booking: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan sitting booking: %w", err)
	}
	return &b, nil
}

// Create creates a new sitting booking
func (r *BookingRepository) Create(ctx context.Context, b *models.SittingBooking) error {
	query := `
		INSERT INTO sitting_bookings (id, owner_id, sitter_id, pet_id, service_type,
			start_date, end_date, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.OwnerID, b.SitterID, b.PetID, b.ServiceType,
		b.StartDate, b.EndDate, b.Notes, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sitting booking: %w", err)
	}
	return nil
}

// GetByID retrieves a sitting booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.SittingBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM sitting_bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, query, id))
}

// UpdateStatus transitions a sitting booking's status
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *models.SittingBooking) error {
	query := `UPDATE sitting_bookings SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, b.ID, b.Status, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update sitting booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("sitting booking: %w", ErrNotFound)
	}
	return nil
}

func (r *BookingRepository) list(ctx context.Context, column, userID string, status models.BookingStatus) ([]*models.SittingBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM sitting_bookings WHERE ` + column + ` = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitting bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*models.SittingBooking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sitting bookings: %w", err)
	}
	return bookings, nil
}

// ListBySitter retrieves bookings addressed to a sitter
func (r *BookingRepository) ListBySitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]*models.SittingBooking, error) {
	return r.list(ctx, "sitter_id", sitterID, status)
}

// ListByOwner retrieves bookings created by an owner
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string, status models.BookingStatus) ([]*models.SittingBooking, error) {
	return r.list(ctx, "owner_id", ownerID, status)
}
