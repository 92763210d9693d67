package pricing

import (
	"errors"
	"testing"
	"time"
)

func TestCarAmount(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hours  time.Duration
		daily  float64
		hourly float64
		want   float64
	}{
		{"thirty hours splits into one day plus six hours", 30 * time.Hour, 80, 15, 170},
		{"exactly one day", 24 * time.Hour, 80, 15, 80},
		{"under a day bills hourly only", 5 * time.Hour, 80, 15, 75},
		{"partial hour below one is not billed", 90 * time.Minute, 80, 15, 15},
		{"two full days", 48 * time.Hour, 100, 20, 200},
		{"rounds to two decimals", 3 * time.Hour, 0, 10.333, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CarAmount(base, base.Add(tt.hours), tt.daily, tt.hourly)
			if err != nil {
				t.Fatalf("CarAmount returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CarAmount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCarAmount_negativeRate(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if _, err := CarAmount(base, base.Add(time.Hour), -1, 10); !errors.Is(err, ErrNegativeInput) {
		t.Errorf("expected ErrNegativeInput for negative daily rate, got %v", err)
	}
	if _, err := CarAmount(base, base.Add(time.Hour), 10, -1); !errors.Is(err, ErrNegativeInput) {
		t.Errorf("expected ErrNegativeInput for negative hourly rate, got %v", err)
	}
}

func TestCarAmount_invalidDuration(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if _, err := CarAmount(base, base, 80, 15); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration for zero-length interval, got %v", err)
	}
	if _, err := CarAmount(base.Add(time.Hour), base, 80, 15); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration for reversed interval, got %v", err)
	}
}

func TestTripAmount(t *testing.T) {
	got, err := TripAmount(49.99, 3)
	if err != nil {
		t.Fatalf("TripAmount returned error: %v", err)
	}
	if got != 149.97 {
		t.Errorf("TripAmount = %v, want 149.97", got)
	}

	if _, err := TripAmount(-1, 2); !errors.Is(err, ErrNegativeInput) {
		t.Errorf("expected ErrNegativeInput for negative seat price, got %v", err)
	}
	if _, err := TripAmount(10, -2); !errors.Is(err, ErrNegativeInput) {
		t.Errorf("expected ErrNegativeInput for negative passengers, got %v", err)
	}
}
