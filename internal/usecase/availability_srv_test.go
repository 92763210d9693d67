package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestValidateInterval(t *testing.T) {
	env := newTestEnv()
	base := env.now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid interval", base, base.Add(4 * time.Hour), false},
		{"starts earlier today", env.now.Add(-time.Hour), env.now.Add(3 * time.Hour), false},
		{"zero length", base, base, true},
		{"reversed", base.Add(4 * time.Hour), base, true},
		{"starts yesterday", env.now.Add(-25 * time.Hour), env.now.Add(3 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.availability.ValidateInterval(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInterval) {
					t.Errorf("ValidateInterval() error = %v, want ErrInvalidInterval", err)
				}
			} else if err != nil {
				t.Errorf("ValidateInterval() unexpected error = %v", err)
			}
		})
	}
}

func TestIsFreeOverlapLaw(t *testing.T) {
	env := newTestEnv()
	car := env.seedCar(4, 100, 10)
	day := env.now.Add(48 * time.Hour).Truncate(time.Hour)

	// Hold [day+2h, day+6h)
	_, err := env.reservation.CreateCarReservation(context.Background(), "cust-1",
		carReq(car.ID.String(), day.Add(2*time.Hour), day.Add(6*time.Hour), 2))
	if err != nil {
		t.Fatalf("CreateCarReservation() error = %v", err)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", day.Add(2 * time.Hour), day.Add(6 * time.Hour), false},
		{"straddles start", day.Add(1 * time.Hour), day.Add(3 * time.Hour), false},
		{"straddles end", day.Add(5 * time.Hour), day.Add(8 * time.Hour), false},
		{"contained", day.Add(3 * time.Hour), day.Add(4 * time.Hour), false},
		{"surrounds", day, day.Add(10 * time.Hour), false},
		{"back-to-back before", day, day.Add(2 * time.Hour), true},
		{"back-to-back after", day.Add(6 * time.Hour), day.Add(9 * time.Hour), true},
		{"disjoint", day.Add(12 * time.Hour), day.Add(15 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.availability.IsFree(context.Background(), car.ID, tt.start, tt.end)
			if err != nil {
				t.Fatalf("IsFree() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsFree() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFreeRepeatedReadStable(t *testing.T) {
	env := newTestEnv()
	car := env.seedCar(4, 100, 10)
	day := env.now.Add(48 * time.Hour).Truncate(time.Hour)

	if _, err := env.reservation.CreateCarReservation(context.Background(), "cust-1",
		carReq(car.ID.String(), day, day.Add(4*time.Hour), 2)); err != nil {
		t.Fatalf("CreateCarReservation() error = %v", err)
	}

	// With no writes in between, asking twice gives the same answer.
	intervals := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"blocked", day, day.Add(4 * time.Hour)},
		{"free", day.Add(4 * time.Hour), day.Add(8 * time.Hour)},
	}

	for _, iv := range intervals {
		t.Run(iv.name, func(t *testing.T) {
			first, err := env.availability.IsFree(context.Background(), car.ID, iv.start, iv.end)
			if err != nil {
				t.Fatalf("IsFree() first call error = %v", err)
			}
			second, err := env.availability.IsFree(context.Background(), car.ID, iv.start, iv.end)
			if err != nil {
				t.Fatalf("IsFree() second call error = %v", err)
			}
			if first != second {
				t.Errorf("IsFree() answers diverged: first %v, second %v", first, second)
			}
		})
	}
}

func TestIsFreeIgnoresNonBlockingStatuses(t *testing.T) {
	env := newTestEnv()
	car := env.seedCar(4, 100, 10)
	day := env.now.Add(48 * time.Hour).Truncate(time.Hour)

	created, err := env.reservation.CreateCarReservation(context.Background(), "cust-1",
		carReq(car.ID.String(), day, day.Add(4*time.Hour), 2))
	if err != nil {
		t.Fatalf("CreateCarReservation() error = %v", err)
	}

	free, err := env.availability.IsFree(context.Background(), car.ID, day, day.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("IsFree() error = %v", err)
	}
	if free {
		t.Fatal("interval should be blocked by the pending reservation")
	}

	if err := env.reservation.Cancel(context.Background(), created.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	free, err = env.availability.IsFree(context.Background(), car.ID, day, day.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("IsFree() error = %v", err)
	}
	if !free {
		t.Error("cancelled reservation must release its interval")
	}
}
