package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationKind string

const (
	ReservationKindCar  ReservationKind = "car"
	ReservationKindTrip ReservationKind = "trip"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusInProgress ReservationStatus = "in_progress"
	ReservationStatusCompleted  ReservationStatus = "completed"
	ReservationStatusDenied     ReservationStatus = "denied"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// legal lifecycle transitions; anything not listed is illegal
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusDenied, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusInProgress, ReservationStatusCancelled},
	ReservationStatusInProgress: {ReservationStatusCompleted},
}

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// IsActive reports whether a reservation in this status still blocks its
// resource. Denied, cancelled and completed reservations never block.
func (s ReservationStatus) IsActive() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusInProgress:
		return true
	default:
		return false
	}
}

type Reservation struct {
	Base
	Code       string            `db:"code"`
	Kind       ReservationKind   `db:"kind"`
	CustomerID string            `db:"customer_id"`
	EmployeeID *string           `db:"employee_id"`
	StartTime  time.Time         `db:"start_time"`
	EndTime    time.Time         `db:"end_time"`
	Passengers int               `db:"passengers"`
	Status     ReservationStatus `db:"status"`
	AmountDue  float64           `db:"amount_due"`

	// car leg
	ResourceID      *uuid.UUID `db:"resource_id"`
	PickupLocation  *string    `db:"pickup_location"`
	DropoffLocation *string    `db:"dropoff_location"`
	WithDriver      *bool      `db:"with_driver"`

	// trip leg
	PlanID    *uuid.UUID `db:"plan_id"`
	WithGuide *bool      `db:"with_guide"`
}

// Overlaps reports whether the reservation's half-open interval [StartTime,
// EndTime) intersects [start, end). Back-to-back intervals do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
