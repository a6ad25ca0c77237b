package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "autoserve/database/repository/booking"
	branchServiceRepo "autoserve/database/repository/branchservice"
	"autoserve/models"
)

func assertCode(t *testing.T, err error, want string) *BookingError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	be, ok := err.(*BookingError)
	if !ok {
		t.Fatalf("expected *BookingError, got %T: %v", err, err)
	}
	if be.Code != want {
		t.Fatalf("error code = %s, want %s (message: %s)", be.Code, want, be.Message)
	}
	return be
}

func TestCreateBookingAssignsNearestDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, 2)

	created, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1", Comments: "oil change",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if created.Status != models.StatusPending {
		t.Errorf("status = %s, want %s", created.Status, models.StatusPending)
	}
	if created.Date != daysOut(1) {
		t.Errorf("date = %s, want %s", created.Date, daysOut(1))
	}
	if created.ID == "" {
		t.Error("expected a generated booking id")
	}
	if stored, err := repo.GetByID(context.Background(), created.ID); err != nil || stored.Comments != "oil change" {
		t.Errorf("stored booking = %+v, err = %v", stored, err)
	}
}

func TestCreateBookingAcceptsOfferedDate(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	created, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1", Date: daysOut(3),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if created.Date != daysOut(3) {
		t.Errorf("date = %s, want %s", created.Date, daysOut(3))
	}
}

func TestCreateBookingRejectsDateNotOffered(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1", Date: daysOut(30),
	})
	be := assertCode(t, err, CodeBusinessRule)

	want := []string{daysOut(1), daysOut(2), daysOut(3)}
	if len(be.AvailableDates) != len(want) {
		t.Fatalf("alternatives = %v, want %v", be.AvailableDates, want)
	}
	for i := range want {
		if be.AvailableDates[i] != want[i] {
			t.Errorf("alternatives[%d] = %s, want %s", i, be.AvailableDates[i], want[i])
		}
	}
	if !strings.Contains(be.Message, daysOut(30)) {
		t.Errorf("message %q should name the rejected date", be.Message)
	}
}

func TestCreateBookingRejectsSecondPending(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	assertCode(t, err, CodeConflict)
}

func TestCreateBookingAllowsNewAfterCancellation(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusCancelled},
	}}
	svc := newTestService(repo, 2)

	if _, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	}); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
}

func TestCreateBookingUnknownCar(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "ghost", ServiceID: "svc-1", BranchID: "branch-1",
	})
	assertCode(t, err, CodeNotFound)
}

func TestCreateBookingMissingCapacityRule(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 0)
	svc.Capacity = &fakeCapacity{err: branchServiceRepo.ErrRuleNotFound}

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	assertCode(t, err, CodeNotFound)
}

func TestCreateBookingFullyBookedHorizon(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 0)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	be := assertCode(t, err, CodeBusinessRule)
	if !strings.Contains(be.Message, "No available dates") {
		t.Errorf("unexpected message: %s", be.Message)
	}
}

func TestCreateBookingCommitRaceMapsPendingConflict(t *testing.T) {
	// A competing request won the partial unique index between the read-phase
	// check and the commit.
	repo := &fakeBookingRepo{commitErr: bookingRepo.ErrPendingExists}
	svc := newTestService(repo, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	assertCode(t, err, CodeConflict)
}

func TestCreateBookingCommitRaceMapsCapacityFull(t *testing.T) {
	repo := &fakeBookingRepo{commitErr: bookingRepo.ErrCapacityFull}
	svc := newTestService(repo, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	be := assertCode(t, err, CodeBusinessRule)
	if len(be.AvailableDates) == 0 {
		t.Error("expected alternatives in capacity-full rejection")
	}
}

func TestCommitGuardRejectsLateCompetitorOnSameDate(t *testing.T) {
	// Two callers can both pass the read phase seeing one free slot on the
	// same date; the commit-time re-count admits only the first.
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, 1)

	first, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		CarID: "car-1", ServiceID: "svc-1", BranchID: "branch-1",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	competitor := &models.Booking{
		ID: "late", CarID: "car-2", BranchID: "branch-1", ServiceID: "svc-1",
		Date: first.Date, Status: models.StatusPending,
	}
	if err := repo.CreatePendingTransactionally(context.Background(), competitor, 1); !errors.Is(err, bookingRepo.ErrCapacityFull) {
		t.Fatalf("competitor commit error = %v, want ErrCapacityFull", err)
	}
	if count, _ := repo.CountActive(context.Background(), "branch-1", "svc-1", first.Date); count != 1 {
		t.Errorf("active count on %s = %d, want 1", first.Date, count)
	}
}

func TestRescheduleMovesBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 2)

	successor, err := svc.RescheduleBooking(context.Background(), "b1", daysOut(2), "pushed a day")
	if err != nil {
		t.Fatalf("RescheduleBooking() error = %v", err)
	}

	if successor.Date != daysOut(2) || successor.Status != models.StatusPending {
		t.Errorf("successor = %+v", successor)
	}
	old, _ := repo.GetByID(context.Background(), "b1")
	if old.Status != models.StatusRescheduled {
		t.Errorf("old status = %s, want %s", old.Status, models.StatusRescheduled)
	}
	if exists, _ := repo.ExistsPending(context.Background(), "car-1"); !exists {
		t.Error("car should hold exactly the successor as pending")
	}
}

func TestRescheduleRequiresExplicitDate(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 2)

	_, err := svc.RescheduleBooking(context.Background(), "b1", "", "")
	assertCode(t, err, CodeValidation)
}

func TestRescheduleRejectsNonPending(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusCancelled},
	}}
	svc := newTestService(repo, 2)

	_, err := svc.RescheduleBooking(context.Background(), "b1", daysOut(2), "")
	assertCode(t, err, CodeBusinessRule)
}

func TestRescheduleUnknownBooking(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.RescheduleBooking(context.Background(), "ghost", daysOut(2), "")
	assertCode(t, err, CodeNotFound)
}

func TestRescheduleGuardRejectsFourthAttempt(t *testing.T) {
	// Three reschedules already happened; b4 is the live pending successor.
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusRescheduled},
		{ID: "b2", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(2), Status: models.StatusRescheduled},
		{ID: "b3", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(3), Status: models.StatusRescheduled},
		{ID: "b4", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(4), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 5)

	_, err := svc.RescheduleBooking(context.Background(), "b4", daysOut(5), "")
	be := assertCode(t, err, CodeBusinessRule)
	if !strings.Contains(be.Message, "maximum of 3 consecutive reschedules") {
		t.Errorf("unexpected message: %s", be.Message)
	}
}

func TestRescheduleAllowedAfterCompletedVisit(t *testing.T) {
	// A completed visit clears the reschedule penalty.
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusRescheduled},
		{ID: "b2", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(2), Status: models.StatusRescheduled},
		{ID: "b3", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(3), Status: models.StatusCompleted},
		{ID: "b4", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(4), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 5)

	if _, err := svc.RescheduleBooking(context.Background(), "b4", daysOut(2), ""); err != nil {
		t.Fatalf("RescheduleBooking() error = %v", err)
	}
}

func TestRescheduleLeavesOldPendingOnCommitFailure(t *testing.T) {
	// A failed commit rolls back both writes; the old record must still be
	// PENDING afterwards.
	repo := &fakeBookingRepo{
		bookings: []*models.Booking{
			{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
		},
		commitErr: bookingRepo.ErrCapacityFull,
	}
	svc := newTestService(repo, 2)

	_, err := svc.RescheduleBooking(context.Background(), "b1", daysOut(2), "")
	assertCode(t, err, CodeBusinessRule)

	old, _ := repo.GetByID(context.Background(), "b1")
	if old.Status != models.StatusPending {
		t.Errorf("old status = %s, want %s", old.Status, models.StatusPending)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected no successor record, got %d bookings", len(repo.bookings))
	}
}

func TestCancelBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
	}}
	svc := newTestService(repo, 2)

	cancelled, err := svc.CancelBooking(context.Background(), "b1")
	if err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want %s", cancelled.Status, models.StatusCancelled)
	}
	stored, _ := repo.GetByID(context.Background(), "b1")
	if stored.Status != models.StatusCancelled {
		t.Errorf("stored status = %s, want %s", stored.Status, models.StatusCancelled)
	}
}

// raceCancelRepo flips the booking to a competing terminal status between
// the service's read and its guarded update, the way a concurrent cancel or
// reschedule would.
type raceCancelRepo struct {
	fakeBookingRepo
	stolenBy models.BookingStatus
	raced    bool
}

func (f *raceCancelRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error {
	if !f.raced {
		f.raced = true
		if b := f.find(id); b != nil {
			b.Status = f.stolenBy
		}
		return bookingRepo.ErrStatusConflict
	}
	return f.fakeBookingRepo.UpdateStatus(ctx, id, from, to, at)
}

func TestCancelLostRaceReclassifiedAsConflict(t *testing.T) {
	repo := &raceCancelRepo{
		fakeBookingRepo: fakeBookingRepo{bookings: []*models.Booking{
			{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
		}},
		stolenBy: models.StatusCancelled,
	}
	svc := newTestService(&repo.fakeBookingRepo, 2)
	svc.Repo = repo

	_, err := svc.CancelBooking(context.Background(), "b1")
	assertCode(t, err, CodeConflict)
}

func TestCancelLostRaceReclassifiedAsBusinessRule(t *testing.T) {
	repo := &raceCancelRepo{
		fakeBookingRepo: fakeBookingRepo{bookings: []*models.Booking{
			{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusPending},
		}},
		stolenBy: models.StatusRescheduled,
	}
	svc := newTestService(&repo.fakeBookingRepo, 2)
	svc.Repo = repo

	_, err := svc.CancelBooking(context.Background(), "b1")
	assertCode(t, err, CodeBusinessRule)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusCancelled},
	}}
	svc := newTestService(repo, 2)

	_, err := svc.CancelBooking(context.Background(), "b1")
	assertCode(t, err, CodeConflict)
}

func TestCancelCompletedBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*models.Booking{
		{ID: "b1", CarID: "car-1", BranchID: "branch-1", ServiceID: "svc-1", Date: daysOut(1), Status: models.StatusCompleted},
	}}
	svc := newTestService(repo, 2)

	_, err := svc.CancelBooking(context.Background(), "b1")
	assertCode(t, err, CodeBusinessRule)
}

func TestCancelUnknownBooking(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.CancelBooking(context.Background(), "ghost")
	assertCode(t, err, CodeNotFound)
}

func TestGetLastBookingNoHistory(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.GetLastBooking(context.Background(), "car-1")
	assertCode(t, err, CodeNotFound)
}

func TestFindAvailableDatesValidatesInput(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, 2)

	_, err := svc.FindAvailableDates(context.Background(), "", "svc-1")
	assertCode(t, err, CodeValidation)
}
