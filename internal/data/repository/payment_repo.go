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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	UpdateTotals(ctx context.Context, paymentID uuid.UUID, amountPaid float64, status entity.PaymentStatus, lastTransactionAt time.Time) error
	UpdateAmountDue(ctx context.Context, paymentID uuid.UUID, amountDue float64) error
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, reservation_id, amount_due, amount_paid, status, last_transaction_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.ReservationID,
		payment.AmountDue,
		payment.AmountPaid,
		payment.Status,
		payment.LastTransactionAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("reservation_id", payment.ReservationID.String()),
		)
		return fmt.Errorf("create payment for reservation %s: %w", payment.ReservationID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount_due, amount_paid, status, last_transaction_at, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountDue,
		&payment.AmountPaid,
		&payment.Status,
		&payment.LastTransactionAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return &payment, nil
}

func (r *paymentRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount_due, amount_paid, status, last_transaction_at, created_at, updated_at
		FROM payments
		WHERE reservation_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, reservationID).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountDue,
		&payment.AmountPaid,
		&payment.Status,
		&payment.LastTransactionAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find payment by reservation ID %s: %w", reservationID.String(), err)
	}

	return &payment, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("delete payment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", id.String())
	}

	return nil
}

func (r *paymentRepository) UpdateTotals(ctx context.Context, paymentID uuid.UUID, amountPaid float64, status entity.PaymentStatus, lastTransactionAt time.Time) error {
	query := `
		UPDATE payments
		SET amount_paid = $2, status = $3, last_transaction_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, amountPaid, status, lastTransactionAt)
	if err != nil {
		r.log.Error("Failed to update payment totals",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.Float64("amount_paid", amountPaid),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s totals: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

func (r *paymentRepository) UpdateAmountDue(ctx context.Context, paymentID uuid.UUID, amountDue float64) error {
	query := `
		UPDATE payments
		SET amount_due = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, amountDue)
	if err != nil {
		r.log.Error("Failed to update payment amount due",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.Float64("amount_due", amountDue),
		)
		return fmt.Errorf("update payment %s amount due: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}
