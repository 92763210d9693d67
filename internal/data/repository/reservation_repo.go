package repository

import (
	"context"
	"fmt"
	"time"

	"fleet-booking/internal/data/entity"
	"fleet-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Reservation, error)
	CountByCustomerID(ctx context.Context, customerID string) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	FindByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.Reservation, error)
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error
}

type reservationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationRepository(db database.Querier, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, kind, customer_id, employee_id, start_time, end_time,
	passengers, status, amount_due, resource_id, pickup_location, dropoff_location,
	with_driver, plan_id, with_guide, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID,
		&r.Code,
		&r.Kind,
		&r.CustomerID,
		&r.EmployeeID,
		&r.StartTime,
		&r.EndTime,
		&r.Passengers,
		&r.Status,
		&r.AmountDue,
		&r.ResourceID,
		&r.PickupLocation,
		&r.DropoffLocation,
		&r.WithDriver,
		&r.PlanID,
		&r.WithGuide,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Code,
		reservation.Kind,
		reservation.CustomerID,
		reservation.EmployeeID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Passengers,
		reservation.Status,
		reservation.AmountDue,
		reservation.ResourceID,
		reservation.PickupLocation,
		reservation.DropoffLocation,
		reservation.WithDriver,
		reservation.PlanID,
		reservation.WithGuide,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
			zap.String("customer_id", reservation.CustomerID),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by customer ID %s: %w", customerID, err)
	}
	defer rows.Close()

	return collectReservations(rows, r.log)
}

func (r *reservationRepository) CountByCustomerID(ctx context.Context, customerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE customer_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, customerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return 0, fmt.Errorf("count reservations by customer ID %s: %w", customerID, err)
	}

	return count, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET employee_id = $2, start_time = $3, end_time = $4, passengers = $5,
		    status = $6, amount_due = $7, pickup_location = $8, dropoff_location = $9,
		    with_driver = $10, with_guide = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.EmployeeID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Passengers,
		reservation.Status,
		reservation.AmountDue,
		reservation.PickupLocation,
		reservation.DropoffLocation,
		reservation.WithDriver,
		reservation.WithGuide,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

func (r *reservationRepository) FindByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, resourceID)
	if err != nil {
		r.log.Error("Failed to find reservations by resource ID",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return nil, fmt.Errorf("find reservations by resource ID %s: %w", resourceID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows, r.log)
}

// FindOverlapping returns active reservations for the resource whose half-open
// interval intersects [start, end). Back-to-back intervals do not match.
func (r *reservationRepository) FindOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE resource_id = $1
		  AND status IN ('pending', 'confirmed', 'in_progress')
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, resourceID, start, end)
	if err != nil {
		r.log.Error("Failed to find overlapping reservations",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find overlapping reservations for resource %s: %w", resourceID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows, r.log)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, reservationID, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", reservationID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservationID.String())
	}

	return nil
}

func collectReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}
