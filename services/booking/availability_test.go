package booking

import (
	"context"
	"testing"

	"autoserve/models"
)

func TestFindClosestAvailableDatesStartsTomorrow(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	dates, err := svc.findClosestAvailableDates(context.Background(), "branch-1", "svc-1", 2, availableDateCount)
	if err != nil {
		t.Fatalf("findClosestAvailableDates() error = %v", err)
	}

	want := []string{daysOut(1), daysOut(2), daysOut(3)}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates %v, want %d", len(dates), dates, len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestFindClosestAvailableDatesSkipsFullDays(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "other-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 1)

	dates, err := svc.findClosestAvailableDates(context.Background(), "branch-1", "svc-1", 1, availableDateCount)
	if err != nil {
		t.Fatalf("findClosestAvailableDates() error = %v", err)
	}

	want := []string{daysOut(2), daysOut(3), daysOut(4)}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestFindClosestAvailableDatesIgnoresClosedBookings(t *testing.T) {
	// Cancelled and rescheduled records do not consume capacity.
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "other-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusCancelled},
		{ID: "b2", CarID: "other-2", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusRescheduled},
	}}
	svc := newTestService(repo, 1)

	dates, err := svc.findClosestAvailableDates(context.Background(), "branch-1", "svc-1", 1, availableDateCount)
	if err != nil {
		t.Fatalf("findClosestAvailableDates() error = %v", err)
	}
	if dates[0] != daysOut(1) {
		t.Errorf("dates[0] = %s, want %s", dates[0], daysOut(1))
	}
}

func TestFindClosestAvailableDatesExhaustedHorizon(t *testing.T) {
	// Zero capacity means no date can ever qualify; the scan must terminate
	// and report nothing rather than spin forever.
	svc := newTestService(&fakeBookingRepo{}, 0)

	dates, err := svc.findClosestAvailableDates(context.Background(), "branch-1", "svc-1", 0, availableDateCount)
	if err != nil {
		t.Fatalf("findClosestAvailableDates() error = %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("got %v, want no dates", dates)
	}
}
