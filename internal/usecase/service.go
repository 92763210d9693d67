package usecase

import (
	"context"
	"time"

	"fleet-booking/internal/data/repository"
	"fleet-booking/pkg/lock"
	"fleet-booking/pkg/utils"

	"go.uber.org/zap"
)

// Clock supplies the current time; injected so "in the future" and "already
// started" checks are testable.
type Clock func() time.Time

// TxRunner runs a function against a transaction-bound repository set.
// *repository.Repository implements it in production.
type TxRunner interface {
	InTx(ctx context.Context, fn func(txRepo *repository.Repository) error) error
}

type Service struct {
	Availability AvailabilityService
	Reservation  ReservationService
	Payment      PaymentService
	Fleet        FleetService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		log.Warn("Unknown booking timezone, falling back to UTC",
			zap.String("timezone", config.Booking.Timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}

	locks := lock.NewKeyed()
	clock := Clock(time.Now)

	availability := NewAvailabilityService(repo, locks, clock, loc, log)
	payment := NewPaymentService(repo, repo, locks, clock, log)

	return &Service{
		Availability: availability,
		Reservation:  NewReservationService(repo, repo, availability, payment, locks, clock, log),
		Payment:      payment,
		Fleet:        NewFleetService(repo, log),
	}
}
