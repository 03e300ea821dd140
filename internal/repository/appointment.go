package repository

import (
	"context"
	"errors"
	"fmt"

	"petmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppointmentRepository handles database operations for vet appointments
type AppointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `id, owner_id, vet_id, pet_id, date, time_slot,
	reason, emergency, notes, status, created_at, updated_at`

func scanAppointment(row pgx.Row) (*models.VetAppointment, error) {
	var a models.VetAppointment
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.VetID, &a.PetID, &a.Date, &a.TimeSlot,
		&a.Reason, &a.Emergency, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vet appointment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan vet appointment: %w", err)
	}
	return &a, nil
}

// Create creates a new vet appointment
func (r *AppointmentRepository) Create(ctx context.Context, a *models.VetAppointment) error {
	query := `
		INSERT INTO vet_appointments (id, owner_id, vet_id, pet_id, date, time_slot,
			reason, emergency, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.OwnerID, a.VetID, a.PetID, a.Date, a.TimeSlot,
		a.Reason, a.Emergency, a.Notes, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vet appointment: %w", err)
	}
	return nil
}

// GetByID retrieves a vet appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.VetAppointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM vet_appointments WHERE id = $1`
	return scanAppointment(r.db.QueryRow(ctx, query, id))
}

// UpdateStatus transitions a vet appointment's status
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *models.VetAppointment) error {
	query := `UPDATE vet_appointments SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, a.ID, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update vet appointment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vet appointment: %w", ErrNotFound)
	}
	return nil
}

func (r *AppointmentRepository) list(ctx context.Context, column, userID string, status models.AppointmentStatus) ([]*models.VetAppointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM vet_appointments WHERE ` + column + ` = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vet appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]*models.VetAppointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vet appointments: %w", err)
	}
	return appointments, nil
}

// ListByVet retrieves appointments addressed to a vet
func (r *AppointmentRepository) ListByVet(ctx context.Context, vetID string, status models.AppointmentStatus) ([]*models.VetAppointment, error) {
	return r.list(ctx, "vet_id", vetID, status)
}

// ListByOwner retrieves appointments created by an owner
func (r *AppointmentRepository) ListByOwner(ctx context.Context, ownerID string, status models.AppointmentStatus) ([]*models.VetAppointment, error) {
	return r.list(ctx, "owner_id", ownerID, status)
}
