package entity

import (
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{ReservationStatusPending, ReservationStatusConfirmed, true},
		{ReservationStatusPending, ReservationStatusDenied, true},
		{ReservationStatusPending, ReservationStatusCancelled, true},
		{ReservationStatusPending, ReservationStatusInProgress, false},
		{ReservationStatusPending, ReservationStatusCompleted, false},
		{ReservationStatusConfirmed, ReservationStatusInProgress, true},
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusDenied, false},
		{ReservationStatusConfirmed, ReservationStatusCompleted, false},
		{ReservationStatusInProgress, ReservationStatusCompleted, true},
		{ReservationStatusInProgress, ReservationStatusCancelled, false},
		{ReservationStatusCompleted, ReservationStatusPending, false},
		{ReservationStatusDenied, ReservationStatusConfirmed, false},
		{ReservationStatusCancelled, ReservationStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []ReservationStatus{
		ReservationStatusCompleted,
		ReservationStatusDenied,
		ReservationStatusCancelled,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = false, want true", s)
		}
		if s.IsActive() {
			t.Errorf("%s.IsActive() = true, want false", s)
		}
	}

	open := []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusInProgress,
	}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = true, want false", s)
		}
		if !s.IsActive() {
			t.Errorf("%s.IsActive() = false, want true", s)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	hold := &Reservation{
		StartTime: base.Add(2 * time.Hour),
		EndTime:   base.Add(6 * time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical", base.Add(2 * time.Hour), base.Add(6 * time.Hour), true},
		{"contained", base.Add(3 * time.Hour), base.Add(5 * time.Hour), true},
		{"surrounds", base, base.Add(8 * time.Hour), true},
		{"straddles start", base, base.Add(3 * time.Hour), true},
		{"straddles end", base.Add(5 * time.Hour), base.Add(8 * time.Hour), true},
		{"ends exactly at start", base, base.Add(2 * time.Hour), false},
		{"starts exactly at end", base.Add(6 * time.Hour), base.Add(9 * time.Hour), false},
		{"disjoint before", base, base.Add(time.Hour), false},
		{"disjoint after", base.Add(7 * time.Hour), base.Add(9 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hold.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
