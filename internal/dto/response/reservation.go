package response

import (
	"time"

	"fleet-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID         string                   `json:"id"`
	Code       string                   `json:"code"`
	Kind       entity.ReservationKind   `json:"kind"`
	CustomerID string                   `json:"customer_id"`
	EmployeeID *string                  `json:"employee_id,omitempty"`
	StartTime  time.Time                `json:"start_time"`
	EndTime    time.Time                `json:"end_time"`
	Passengers int                      `json:"passengers"`
	Status     entity.ReservationStatus `json:"status"`
	AmountDue  float64                  `json:"amount_due"`

	ResourceID      string `json:"resource_id,omitempty"`
	PickupLocation  string `json:"pickup_location,omitempty"`
	DropoffLocation string `json:"dropoff_location,omitempty"`
	WithDriver      *bool  `json:"with_driver,omitempty"`

	PlanID    string `json:"plan_id,omitempty"`
	WithGuide *bool  `json:"with_guide,omitempty"`

	Payment   *PaymentResponse `json:"payment,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type AvailabilityResponse struct {
	ResourceID string    `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Available  bool      `json:"available"`
}

// Helper converter
func ReservationToResponse(r *entity.Reservation, payment *PaymentResponse) ReservationResponse {
	resp := ReservationResponse{
		ID:         r.ID.String(),
		Code:       r.Code,
		Kind:       r.Kind,
		CustomerID: r.CustomerID,
		EmployeeID: r.EmployeeID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Passengers: r.Passengers,
		Status:     r.Status,
		AmountDue:  r.AmountDue,
		WithDriver: r.WithDriver,
		WithGuide:  r.WithGuide,
		Payment:    payment,
		CreatedAt:  r.CreatedAt,
	}

	if r.ResourceID != nil {
		resp.ResourceID = r.ResourceID.String()
	}
	if r.PickupLocation != nil {
		resp.PickupLocation = *r.PickupLocation
	}
	if r.DropoffLocation != nil {
		resp.DropoffLocation = *r.DropoffLocation
	}
	if r.PlanID != nil {
		resp.PlanID = r.PlanID.String()
	}

	return resp
}
