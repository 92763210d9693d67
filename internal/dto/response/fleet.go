package response

import (
	"fleet-booking/internal/data/entity"
)

type CarResponse struct {
	ID          string  `json:"id"`
	PlateNumber string  `json:"plate_number"`
	Model       string  `json:"model"`
	Seats       int     `json:"seats"`
	HourlyRate  float64 `json:"hourly_rate"`
	DailyRate   float64 `json:"daily_rate"`
	IsActive    bool    `json:"is_active"`
}

type TripPlanResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SeatPrice float64 `json:"seat_price"`
	Capacity  int     `json:"capacity"`
	IsActive  bool    `json:"is_active"`
}

// Helper converters
func CarToResponse(car *entity.Car) CarResponse {
	return CarResponse{
		ID:          car.ID.String(),
		PlateNumber: car.PlateNumber,
		Model:       car.Model,
		Seats:       car.Seats,
		HourlyRate:  car.HourlyRate,
		DailyRate:   car.DailyRate,
		IsActive:    car.IsActive,
	}
}

func TripPlanToResponse(plan *entity.TripPlan) TripPlanResponse {
	return TripPlanResponse{
		ID:        plan.ID.String(),
		Name:      plan.Name,
		SeatPrice: plan.SeatPrice,
		Capacity:  plan.Capacity,
		IsActive:  plan.IsActive,
	}
}
