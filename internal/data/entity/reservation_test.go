package entity

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
		ReservationStatusConfirmed: {ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusNoShow},
		ReservationStatusCheckedIn: {ReservationStatusCheckedOut},
	}

	all := []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCheckedIn,
		ReservationStatusCheckedOut,
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	}

	// Every pair must match the table exactly; anything not listed is denied.
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	if CanTransition("archived", ReservationStatusConfirmed) {
		t.Error("unknown status should not transition anywhere")
	}
	if CanTransition(ReservationStatusPending, "archived") {
		t.Error("transition to unknown status should be denied")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		want   bool
	}{
		{ReservationStatusPending, false},
		{ReservationStatusConfirmed, false},
		{ReservationStatusCheckedIn, false},
		{ReservationStatusCheckedOut, true},
		{ReservationStatusCancelled, true},
		{ReservationStatusNoShow, true},
		{"archived", false},
	}

	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		want   bool
	}{
		{ReservationStatusPending, true},
		{ReservationStatusConfirmed, true},
		{ReservationStatusCheckedIn, true},
		{ReservationStatusCheckedOut, true},
		{ReservationStatusCancelled, false},
		{ReservationStatusNoShow, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsActive(); got != tt.want {
			t.Errorf("IsActive(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	res := &Reservation{CheckInDate: day(10), CheckOutDate: day(13)}

	tests := []struct {
		name     string
		checkIn  int
		checkOut int
		want     bool
	}{
		{"identical interval", 10, 13, true},
		{"contained interval", 11, 12, true},
		{"covering interval", 9, 14, true},
		{"partial overlap left", 8, 11, true},
		{"partial overlap right", 12, 15, true},
		{"single shared night", 12, 13, true},
		{"back-to-back after checkout", 13, 16, false},
		{"back-to-back before checkin", 7, 10, false},
		{"disjoint before", 5, 8, false},
		{"disjoint after", 20, 22, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.Overlaps(day(tt.checkIn), day(tt.checkOut)); got != tt.want {
				t.Errorf("Overlaps([%d, %d)) = %v, want %v", tt.checkIn, tt.checkOut, got, tt.want)
			}
		})
	}
}
