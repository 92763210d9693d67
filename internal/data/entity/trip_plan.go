package entity

type TripPlan struct {
	Base
	Name      string  `db:"name"`
	SeatPrice float64 `db:"seat_price"`
	Capacity  int     `db:"capacity"`
	IsActive  bool    `db:"is_active"`
}
