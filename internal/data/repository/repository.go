package repository

import (
	"context"
	"fmt"

	"fleet-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Car           CarRepository
	TripPlan      TripPlanRepository
	Reservation   ReservationRepository
	Payment       PaymentRepository
	Transaction   TransactionRepository
	PaymentMethod PaymentMethodRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Car:           NewCarRepository(db, log),
		TripPlan:      NewTripPlanRepository(db, log),
		Reservation:   NewReservationRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
		Transaction:   NewTransactionRepository(db, log),
		PaymentMethod: NewPaymentMethodRepository(db, log),
		db:            db,
		log:           log,
	}
}

// InTx runs fn against a repository set bound to a single database
// transaction. The transaction commits if fn returns nil and rolls back
// otherwise, so multi-row writes are all-or-nothing.
func (r *Repository) InTx(ctx context.Context, fn func(txRepo *Repository) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.log.Error("Failed to rollback transaction after panic", zap.Error(rbErr))
			}
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
			return
		}

		if cmErr := tx.Commit(ctx); cmErr != nil {
			err = fmt.Errorf("commit transaction: %w", cmErr)
		}
	}()

	txRepo := &Repository{
		Car:           NewCarRepository(tx, r.log),
		TripPlan:      NewTripPlanRepository(tx, r.log),
		Reservation:   NewReservationRepository(tx, r.log),
		Payment:       NewPaymentRepository(tx, r.log),
		Transaction:   NewTransactionRepository(tx, r.log),
		PaymentMethod: NewPaymentMethodRepository(tx, r.log),
		log:           r.log,
	}

	err = fn(txRepo)
	return err
}
