package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-booking/internal/data/entity"
	"fleet-booking/internal/data/repository"
	"fleet-booking/internal/dto/request"
	"fleet-booking/internal/dto/response"
	"fleet-booking/internal/pricing"
	"fleet-booking/pkg/lock"
	"fleet-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService is the coordinator: it validates requests, consults the
// availability index, prices the leg, persists the reservation together with
// its payment in one database transaction, and drives the lifecycle state
// machine. All lifecycle transitions for one reservation are serialized.
type ReservationService interface {
	CreateCarReservation(ctx context.Context, customerID string, req *request.CreateCarReservationRequest) (*response.ReservationResponse, error)
	CreateTripReservation(ctx context.Context, customerID string, req *request.CreateTripReservationRequest) (*response.ReservationResponse, error)

	GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	ListByCustomer(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	ListByResource(ctx context.Context, resourceID string) ([]response.ReservationResponse, error)

	UpdateReservation(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, reservationID string) error

	// Lifecycle
	Confirm(ctx context.Context, reservationID, employeeID string) error
	Deny(ctx context.Context, reservationID string) error
	Cancel(ctx context.Context, reservationID string) error
	Start(ctx context.Context, reservationID string) error
	Complete(ctx context.Context, reservationID string) error
}

type reservationService struct {
	repo         *repository.Repository
	tx           TxRunner
	availability AvailabilityService
	payment      PaymentService
	locks        *lock.Keyed
	clock        Clock
	log          *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	tx TxRunner,
	availability AvailabilityService,
	payment PaymentService,
	locks *lock.Keyed,
	clock Clock,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:         repo,
		tx:           tx,
		availability: availability,
		payment:      payment,
		locks:        locks,
		clock:        clock,
		log:          log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateCarReservation(ctx context.Context, customerID string, req *request.CreateCarReservationRequest) (*response.ReservationResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", ErrValidation)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create car reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource ID %s", ErrValidation, req.ResourceID)
	}

	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.availability.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	car, err := s.repo.Car.FindByID(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("create car reservation: %w", err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, req.ResourceID)
	}
	if !car.IsActive {
		return nil, fmt.Errorf("%w: car %s is not available for rental", ErrValidation, car.PlateNumber)
	}
	if req.Passengers > car.Seats {
		return nil, fmt.Errorf("%w: %d passengers exceed car capacity %d", ErrValidation, req.Passengers, car.Seats)
	}

	amountDue, err := pricing.CarAmount(start, end, car.DailyRate, car.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	now := s.clock()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            utils.GenerateReservationCode(),
		Kind:            entity.ReservationKindCar,
		CustomerID:      customerID,
		StartTime:       start,
		EndTime:         end,
		Passengers:      req.Passengers,
		Status:          entity.ReservationStatusPending,
		AmountDue:       amountDue,
		ResourceID:      &resourceID,
		PickupLocation:  &req.PickupLocation,
		DropoffLocation: &req.DropoffLocation,
		WithDriver:      &req.WithDriver,
	}

	var payment *entity.Payment

	// The overlap re-check and both inserts happen inside the resource's
	// critical section; the two inserts share one database transaction so a
	// failed payment open rolls the reservation back.
	err = s.availability.Reserve(ctx, resourceID, start, end, nil, func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
			if err := txRepo.Reservation.Create(ctx, reservation); err != nil {
				return err
			}

			payment, err = s.payment.Open(ctx, txRepo, reservation.ID, amountDue)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Car reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("customer_id", customerID),
		zap.String("resource_id", resourceID.String()),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Float64("amount_due", amountDue),
	)

	paymentResp := response.PaymentToResponse(payment)
	resp := response.ReservationToResponse(reservation, &paymentResp)
	return &resp, nil
}

func (s *reservationService) CreateTripReservation(ctx context.Context, customerID string, req *request.CreateTripReservationRequest) (*response.ReservationResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", ErrValidation)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create trip reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid plan ID %s", ErrValidation, req.PlanID)
	}

	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.availability.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	plan, err := s.repo.TripPlan.FindByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("create trip reservation: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: trip plan %s", ErrNotFound, req.PlanID)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: trip plan %s is not open for booking", ErrValidation, plan.Name)
	}
	if req.Passengers > plan.Capacity {
		return nil, fmt.Errorf("%w: %d passengers exceed plan capacity %d", ErrValidation, req.Passengers, plan.Capacity)
	}

	amountDue, err := pricing.TripAmount(plan.SeatPrice, req.Passengers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	now := s.clock()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:       utils.GenerateReservationCode(),
		Kind:       entity.ReservationKindTrip,
		CustomerID: customerID,
		StartTime:  start,
		EndTime:    end,
		Passengers: req.Passengers,
		Status:     entity.ReservationStatusPending,
		AmountDue:  amountDue,
		PlanID:     &planID,
		WithGuide:  &req.WithGuide,
	}

	var payment *entity.Payment

	err = s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Reservation.Create(ctx, reservation); err != nil {
			return err
		}

		payment, err = s.payment.Open(ctx, txRepo, reservation.ID, amountDue)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Trip reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("customer_id", customerID),
		zap.String("plan_id", planID.String()),
		zap.Int("passengers", req.Passengers),
		zap.Float64("amount_due", amountDue),
	)

	paymentResp := response.PaymentToResponse(payment)
	resp := response.ReservationToResponse(reservation, &paymentResp)
	return &resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	var paymentResp *response.PaymentResponse
	payment, err := s.repo.Payment.FindByReservationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %s payment: %w", reservationID, err)
	}
	if payment != nil {
		respValue := response.PaymentToResponse(payment)
		paymentResp = &respValue
	}

	resp := response.ReservationToResponse(reservation, paymentResp)
	return &resp, nil
}

func (s *reservationService) ListByCustomer(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", ErrValidation)
	}

	reservations, err := s.repo.Reservation.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reservations for customer %s: %w", customerID, err)
	}

	total, err := s.repo.Reservation.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count reservations for customer %s: %w", customerID, err)
	}

	responses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		responses[i] = response.ReservationToResponse(reservation, nil)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) ListByResource(ctx context.Context, resourceID string) ([]response.ReservationResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource ID %s", ErrValidation, resourceID)
	}

	car, err := s.repo.Car.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reservations for resource %s: %w", resourceID, err)
	}
	if car == nil {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, resourceID)
	}

	reservations, err := s.repo.Reservation.FindByResourceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reservations for resource %s: %w", resourceID, err)
	}

	responses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		responses[i] = response.ReservationToResponse(reservation, nil)
	}

	return responses, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.availability.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	release := s.locks.Acquire("reservation:" + id.String())
	defer release()

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}
	if reservation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: reservation %s is %s", ErrIllegalTransition, reservationID, reservation.Status)
	}

	payment, err := s.repo.Payment.FindByReservationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update reservation %s: %w", reservationID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment for reservation %s", ErrNotFound, reservationID)
	}

	// Rewriting the due is a ledger mutation: the paid check and the write
	// must sit in the payment's critical section, or a charge committing in
	// between leaves amount paid above amount due. Charge and Refund take
	// only the payment lock, so reservation-then-payment ordering is acyclic.
	releasePayment := s.locks.Acquire("payment:" + payment.ID.String())
	defer releasePayment()

	payment, err = s.repo.Payment.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("update reservation %s: %w", reservationID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment for reservation %s", ErrNotFound, reservationID)
	}

	var amountDue float64

	switch reservation.Kind {
	case entity.ReservationKindCar:
		car, err := s.repo.Car.FindByID(ctx, *reservation.ResourceID)
		if err != nil {
			return nil, fmt.Errorf("update reservation %s: %w", reservationID, err)
		}
		if car == nil {
			return nil, fmt.Errorf("%w: car %s", ErrNotFound, reservation.ResourceID.String())
		}
		if req.Passengers > car.Seats {
			return nil, fmt.Errorf("%w: %d passengers exceed car capacity %d", ErrValidation, req.Passengers, car.Seats)
		}

		amountDue, err = pricing.CarAmount(start, end, car.DailyRate, car.HourlyRate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}

	case entity.ReservationKindTrip:
		plan, err := s.repo.TripPlan.FindByID(ctx, *reservation.PlanID)
		if err != nil {
			return nil, fmt.Errorf("update reservation %s: %w", reservationID, err)
		}
		if plan == nil {
			return nil, fmt.Errorf("%w: trip plan %s", ErrNotFound, reservation.PlanID.String())
		}
		if req.Passengers > plan.Capacity {
			return nil, fmt.Errorf("%w: %d passengers exceed plan capacity %d", ErrValidation, req.Passengers, plan.Capacity)
		}

		amountDue, err = pricing.TripAmount(plan.SeatPrice, req.Passengers)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	}

	// Money already collected must stay covered by the new amount due.
	if amountDue < payment.AmountPaid {
		return nil, fmt.Errorf("%w: new amount due %.2f is below amount already paid %.2f",
			ErrConflict, amountDue, payment.AmountPaid)
	}

	reservation.StartTime = start
	reservation.EndTime = end
	reservation.Passengers = req.Passengers
	reservation.AmountDue = amountDue
	reservation.UpdatedAt = s.clock()
	if reservation.Kind == entity.ReservationKindCar {
		if req.PickupLocation != "" {
			reservation.PickupLocation = &req.PickupLocation
		}
		if req.DropoffLocation != "" {
			reservation.DropoffLocation = &req.DropoffLocation
		}
	}

	persist := func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
			if err := txRepo.Reservation.Update(ctx, reservation); err != nil {
				return err
			}
			return txRepo.Payment.UpdateAmountDue(ctx, payment.ID, amountDue)
		})
	}

	if reservation.Kind == entity.ReservationKindCar {
		// Moving the interval must not collide with other holds; its own
		// current hold is excluded from the overlap check.
		err = s.availability.Reserve(ctx, *reservation.ResourceID, start, end, &reservation.ID, persist)
	} else {
		err = persist(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", reservationID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("passengers", req.Passengers),
		zap.Float64("amount_due", amountDue),
	)

	payment.AmountDue = amountDue
	paymentResp := response.PaymentToResponse(payment)
	resp := response.ReservationToResponse(reservation, &paymentResp)
	return &resp, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, reservationID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	release := s.locks.Acquire("reservation:" + id.String())
	defer release()

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}
	if reservation.Status != entity.ReservationStatusPending {
		return fmt.Errorf("%w: only pending reservations can be deleted, reservation %s is %s",
			ErrConflict, reservationID, reservation.Status)
	}

	payment, err := s.repo.Payment.FindByReservationID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}

	if payment != nil {
		// Financial history is immutable; a reservation with any money
		// movement can only be cancelled, never erased.
		count, err := s.repo.Transaction.CountByPaymentID(ctx, payment.ID)
		if err != nil {
			return fmt.Errorf("delete reservation %s: %w", reservationID, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: reservation %s has %d ledger transactions", ErrConflict, reservationID, count)
		}
	}

	err = s.tx.InTx(ctx, func(txRepo *repository.Repository) error {
		if payment != nil {
			if err := txRepo.Payment.Delete(ctx, payment.ID); err != nil {
				return err
			}
		}
		return txRepo.Reservation.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}

	s.log.Info("Reservation deleted",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
	)

	return nil
}

// ==================== LIFECYCLE ====================

func (s *reservationService) Confirm(ctx context.Context, reservationID, employeeID string) error {
	if employeeID == "" {
		return fmt.Errorf("%w: employee ID is required", ErrValidation)
	}

	return s.transition(ctx, reservationID, entity.ReservationStatusConfirmed, nil, func(r *entity.Reservation) {
		r.EmployeeID = &employeeID
	})
}

func (s *reservationService) Deny(ctx context.Context, reservationID string) error {
	return s.transition(ctx, reservationID, entity.ReservationStatusDenied, nil, nil)
}

func (s *reservationService) Cancel(ctx context.Context, reservationID string) error {
	guard := func(r *entity.Reservation) error {
		if !s.clock().Before(r.StartTime) {
			return fmt.Errorf("%w: reservation %s already started, cannot cancel",
				ErrIllegalTransition, r.ID.String())
		}
		return nil
	}

	// Cancelling flips the status to a non-blocking one, which releases the
	// availability hold for the resource and interval.
	return s.transition(ctx, reservationID, entity.ReservationStatusCancelled, guard, nil)
}

func (s *reservationService) Start(ctx context.Context, reservationID string) error {
	return s.transition(ctx, reservationID, entity.ReservationStatusInProgress, nil, nil)
}

func (s *reservationService) Complete(ctx context.Context, reservationID string) error {
	return s.transition(ctx, reservationID, entity.ReservationStatusCompleted, nil, nil)
}

// transition serializes the read-guard-write of a lifecycle step per
// reservation, so a concurrent cancel and confirm cannot interleave.
func (s *reservationService) transition(
	ctx context.Context,
	reservationID string,
	next entity.ReservationStatus,
	guard func(r *entity.Reservation) error,
	mutate func(r *entity.Reservation),
) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	release := s.locks.Acquire("reservation:" + id.String())
	defer release()

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("transition reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	if !reservation.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: reservation %s cannot go from %s to %s",
			ErrIllegalTransition, reservationID, reservation.Status, next)
	}

	if guard != nil {
		if err := guard(reservation); err != nil {
			return err
		}
	}

	reservation.Status = next
	reservation.UpdatedAt = s.clock()

	if mutate != nil {
		mutate(reservation)
		err = s.repo.Reservation.Update(ctx, reservation)
	} else {
		err = s.repo.Reservation.UpdateStatus(ctx, id, next)
	}
	if err != nil {
		return fmt.Errorf("transition reservation %s to %s: %w", reservationID, next, err)
	}

	s.log.Info("Reservation transitioned",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
		zap.String("status", string(next)),
	)

	return nil
}

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	end, err := utils.ParseTime(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return start, end, nil
}
