package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-booking/internal/data/repository"
	"fleet-booking/pkg/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService answers whether a resource is free over a half-open
// interval and fences the check-and-reserve step so two overlapping requests
// for the same resource can never both succeed.
type AvailabilityService interface {
	IsFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (bool, error)

	// Reserve executes persist while holding the resource's critical section,
	// after re-checking that [start, end) is free. exclude skips one
	// reservation from the overlap check (used when an existing reservation
	// is being moved). Returns ErrResourceUnavailable on conflict.
	Reserve(ctx context.Context, resourceID uuid.UUID, start, end time.Time, exclude *uuid.UUID, persist func(ctx context.Context) error) error

	// ValidateInterval rejects zero-length and reversed intervals, and starts
	// before today in the reference timezone.
	ValidateInterval(start, end time.Time) error
}

type availabilityService struct {
	repo  *repository.Repository
	locks *lock.Keyed
	clock Clock
	loc   *time.Location
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, locks *lock.Keyed, clock Clock, loc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		locks: locks,
		clock: clock,
		loc:   loc,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	// Reservations must start today or later, by calendar date in the
	// service's reference timezone.
	now := s.clock().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if start.In(s.loc).Before(today) {
		return fmt.Errorf("%w: start %s is in the past",
			ErrInvalidInterval, start.Format(time.RFC3339))
	}

	return nil
}

func (s *availabilityService) IsFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (bool, error) {
	if err := s.ValidateInterval(start, end); err != nil {
		return false, err
	}

	return s.isFree(ctx, resourceID, start, end, nil)
}

func (s *availabilityService) isFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	overlapping, err := s.repo.Reservation.FindOverlapping(ctx, resourceID, start, end)
	if err != nil {
		return false, fmt.Errorf("check availability for resource %s: %w", resourceID.String(), err)
	}

	for _, r := range overlapping {
		if exclude != nil && r.ID == *exclude {
			continue
		}
		return false, nil
	}

	return true, nil
}

func (s *availabilityService) Reserve(ctx context.Context, resourceID uuid.UUID, start, end time.Time, exclude *uuid.UUID, persist func(ctx context.Context) error) error {
	if err := s.ValidateInterval(start, end); err != nil {
		return err
	}

	// The overlap check and the write must be one atomic unit; everything
	// touching this resource's calendar runs inside its critical section.
	release := s.locks.Acquire("car:" + resourceID.String())
	defer release()

	free, err := s.isFree(ctx, resourceID, start, end, exclude)
	if err != nil {
		return err
	}
	if !free {
		s.log.Info("Reservation conflict",
			zap.String("resource_id", resourceID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return fmt.Errorf("%w: resource %s is booked within [%s, %s)",
			ErrResourceUnavailable, resourceID.String(),
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return persist(ctx)
}
