// Package pricing computes the amount due for a reservation. It is pure:
// no I/O, no clock, no storage.
package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNegativeInput   = errors.New("pricing input must not be negative")
	ErrInvalidDuration = errors.New("pricing duration must be positive")
)

// CarAmount prices a car rental over [start, end) as full days at the daily
// rate plus whole remaining hours at the hourly rate. Partial hours below one
// are not billed.
func CarAmount(start, end time.Time, dailyRate, hourlyRate float64) (float64, error) {
	if dailyRate < 0 || hourlyRate < 0 {
		return 0, ErrNegativeInput
	}
	if !start.Before(end) {
		return 0, ErrInvalidDuration
	}

	totalHours := end.Sub(start).Hours()
	days := math.Floor(totalHours / 24)
	remainingHours := math.Floor(totalHours - days*24)

	return Round2(days*dailyRate + remainingHours*hourlyRate), nil
}

// TripAmount prices a trip itinerary as seat price times passenger count.
func TripAmount(seatPrice float64, passengers int) (float64, error) {
	if seatPrice < 0 || passengers < 0 {
		return 0, ErrNegativeInput
	}
	return Round2(seatPrice * float64(passengers)), nil
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
