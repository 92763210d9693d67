package entity

type Car struct {
	Base
	PlateNumber string  `db:"plate_number"`
	Model       string  `db:"model"`
	Seats       int     `db:"seats"`
	HourlyRate  float64 `db:"hourly_rate"`
	DailyRate   float64 `db:"daily_rate"`
	IsActive    bool    `db:"is_active"`
}
