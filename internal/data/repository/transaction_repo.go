package repository

import (
	"context"
	"fmt"

	"fleet-booking/internal/data/entity"
	"fleet-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionRepository is append-only: transactions are never updated or
// deleted, corrections happen via refund rows.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.PaymentTransaction) error
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentTransaction, error)
	CountByPaymentID(ctx context.Context, paymentID uuid.UUID) (int64, error)
	SumSignedByPaymentID(ctx context.Context, paymentID uuid.UUID) (float64, error)
}

type transactionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTransactionRepository(db database.Querier, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, payment_id, kind, amount, method_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		transaction.ID,
		transaction.PaymentID,
		transaction.Kind,
		transaction.Amount,
		transaction.MethodID,
		transaction.Notes,
		transaction.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment transaction",
			zap.Error(err),
			zap.String("payment_id", transaction.PaymentID.String()),
			zap.String("kind", string(transaction.Kind)),
			zap.Float64("amount", transaction.Amount),
		)
		return fmt.Errorf("create %s transaction for payment %s: %w",
			string(transaction.Kind), transaction.PaymentID.String(), err)
	}

	return nil
}

func (r *transactionRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentTransaction, error) {
	query := `
		SELECT id, payment_id, kind, amount, method_id, notes, created_at
		FROM payment_transactions
		WHERE payment_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, paymentID)
	if err != nil {
		r.log.Error("Failed to find transactions by payment ID",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return nil, fmt.Errorf("find transactions by payment ID %s: %w", paymentID.String(), err)
	}
	defer rows.Close()

	var transactions []*entity.PaymentTransaction
	for rows.Next() {
		var transaction entity.PaymentTransaction
		err := rows.Scan(
			&transaction.ID,
			&transaction.PaymentID,
			&transaction.Kind,
			&transaction.Amount,
			&transaction.MethodID,
			&transaction.Notes,
			&transaction.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, nil
}

func (r *transactionRepository) CountByPaymentID(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM payment_transactions WHERE payment_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, paymentID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count transactions by payment ID",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return 0, fmt.Errorf("count transactions by payment ID %s: %w", paymentID.String(), err)
	}

	return count, nil
}

// SumSignedByPaymentID computes the signed sum of all transactions: charges
// add, refunds subtract. The payment's amount_paid must always equal it.
func (r *transactionRepository) SumSignedByPaymentID(ctx context.Context, paymentID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'charge' THEN amount ELSE -amount END), 0)
		FROM payment_transactions
		WHERE payment_id = $1
	`

	var sum float64
	err := r.db.QueryRow(ctx, query, paymentID).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum transactions by payment ID",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return 0, fmt.Errorf("sum transactions by payment ID %s: %w", paymentID.String(), err)
	}

	return sum, nil
}
