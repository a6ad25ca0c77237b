package models

import "testing"

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusRescheduled, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("EXPIRED").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("PENDING must allow further transitions")
	}
	for _, s := range []BookingStatus{StatusRescheduled, StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}
