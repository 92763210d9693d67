package request

// Create requests are one fully-specified struct per reservation kind, rather
// than a shared struct with nullable fields for both.

type CreateCarReservationRequest struct {
	ResourceID      string `json:"resource_id" validate:"required,uuid4"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	Passengers      int    `json:"passengers" validate:"required,gt=0"`
	PickupLocation  string `json:"pickup_location" validate:"required"`
	DropoffLocation string `json:"dropoff_location" validate:"required"`
	WithDriver      bool   `json:"with_driver"`
}

type CreateTripReservationRequest struct {
	PlanID     string `json:"plan_id" validate:"required,uuid4"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Passengers int    `json:"passengers" validate:"required,gt=0"`
	WithGuide  bool   `json:"with_guide"`
}

// UpdateReservationRequest replaces the mutable fields of a non-terminal
// reservation. Location fields are ignored for trip reservations.
type UpdateReservationRequest struct {
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	Passengers      int    `json:"passengers" validate:"required,gt=0"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}
