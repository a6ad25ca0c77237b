package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "autoserve/database/repository/booking"
	branchServiceRepo "autoserve/database/repository/branchservice"
	carRepo "autoserve/database/repository/car"
	"autoserve/models"
	"autoserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking reserves a PENDING booking for a car.
//
// Read phase: single-pending check, car lookup, capacity rule, availability
// scan. Write phase: one insert, committed through the repository's
// transactional path which re-validates capacity and relies on the partial
// unique pending index, so both race windows identified at read time are
// closed at commit time.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if req.CarID == "" || req.ServiceID == "" || req.BranchID == "" {
		return nil, newValidationError("car_id, service_id and branch_id are required")
	}

	if _, err := svc.Cars.GetByID(ctx, req.CarID); err != nil {
		if errors.Is(err, carRepo.ErrNotFound) {
			return nil, newNotFoundError(fmt.Sprintf("Car %s is not registered.", req.CarID))
		}
		return nil, err
	}

	exists, err := svc.Repo.ExistsPending(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newConflictError(fmt.Sprintf("Car %s already has a pending booking and cannot book again.", req.CarID))
	}

	maxCapacity, availableDates, err := svc.lookupAvailability(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	chosenDate, err := chooseDate(req.Date, availableDates, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:        uuid.New().String(),
		ServiceID: req.ServiceID,
		CarID:     req.CarID,
		BranchID:  req.BranchID,
		Date:      chosenDate,
		Status:    models.StatusPending,
		Comments:  req.Comments,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.Repo.CreatePendingTransactionally(ctx, booking, maxCapacity); err != nil {
		return nil, svc.mapCommitError(err, req.CarID, availableDates)
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("carId", booking.CarID),
		zap.String("date", booking.Date))
	svc.notify(func() error { return svc.Notifier.BookingCreated(ctx, booking) })

	return booking, nil
}

// RescheduleBooking closes oldBookingID as RESCHEDULED and opens a PENDING
// successor on the requested date. Both writes commit together or neither
// does.
func (svc *DefaultBookingService) RescheduleBooking(ctx context.Context, oldBookingID, requestedDate, newComments string) (*models.Booking, error) {
	if oldBookingID == "" {
		return nil, newValidationError("booking id is required")
	}
	if requestedDate == "" {
		return nil, newValidationError("booking_date is required for a reschedule")
	}

	old, err := svc.Repo.GetByID(ctx, oldBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(fmt.Sprintf("Booking not found with ID: %s", oldBookingID))
		}
		return nil, err
	}
	if old.Status != models.StatusPending {
		return nil, newBusinessRuleError("Only PENDING bookings can be rescheduled.")
	}

	// The booking being rescheduled is itself the newest record in the chain;
	// the guard inspects its predecessors.
	recent, err := svc.Repo.GetRecentByCarID(ctx, old.CarID, rescheduleHistoryWindow+1)
	if err != nil {
		return nil, err
	}
	history := make([]models.Booking, 0, rescheduleHistoryWindow)
	for _, b := range recent {
		if b.ID == old.ID {
			continue
		}
		history = append(history, b)
	}
	if len(history) > rescheduleHistoryWindow {
		history = history[:rescheduleHistoryWindow]
	}
	if countConsecutiveStatus(history, models.StatusRescheduled) >= maxConsecutiveReschedules {
		return nil, newBusinessRuleError(fmt.Sprintf(
			"You have reached the maximum of %d consecutive reschedules. Please visit the branch.",
			maxConsecutiveReschedules))
	}

	maxCapacity, availableDates, err := svc.lookupAvailability(ctx, old.BranchID, old.ServiceID)
	if err != nil {
		return nil, err
	}

	chosenDate, err := chooseDate(requestedDate, availableDates, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	successor := &models.Booking{
		ID:        uuid.New().String(),
		ServiceID: old.ServiceID,
		CarID:     old.CarID,
		BranchID:  old.BranchID,
		Date:      chosenDate,
		Status:    models.StatusPending,
		Comments:  newComments,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.Repo.RescheduleTransactionally(ctx, old.ID, successor, maxCapacity); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, newBusinessRuleError("Only PENDING bookings can be rescheduled.")
		}
		return nil, svc.mapCommitError(err, old.CarID, availableDates)
	}

	utils.GetLogger().Info("booking rescheduled",
		zap.String("oldBookingId", old.ID),
		zap.String("newBookingId", successor.ID),
		zap.String("date", successor.Date))
	svc.notify(func() error { return svc.Notifier.BookingRescheduled(ctx, old, successor) })

	return successor, nil
}

// CancelBooking transitions a PENDING booking to CANCELLED. Cancelling an
// already-cancelled booking is a conflict, distinct from the generic
// not-cancellable rejection.
func (svc *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, newValidationError("booking id is required")
	}

	booking, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(fmt.Sprintf("Booking not found with ID: %s", bookingID))
		}
		return nil, err
	}

	if err := svc.rejectNonCancellable(booking); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := svc.Repo.UpdateStatus(ctx, bookingID, models.StatusPending, models.StatusCancelled, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Lost a race since the read; re-fetch to classify the rejection.
			current, fetchErr := svc.Repo.GetByID(ctx, bookingID)
			if fetchErr != nil {
				return nil, fetchErr
			}
			return nil, svc.rejectNonCancellable(current)
		}
		return nil, err
	}

	booking.Status = models.StatusCancelled
	booking.UpdatedAt = now

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("carId", booking.CarID))
	svc.notify(func() error { return svc.Notifier.BookingCancelled(ctx, booking) })

	return booking, nil
}

// GetBookingsByCar lists a car's bookings, newest first.
func (svc *DefaultBookingService) GetBookingsByCar(ctx context.Context, carID string) ([]models.Booking, error) {
	if carID == "" {
		return nil, newValidationError("car id is required")
	}
	return svc.Repo.GetByCarID(ctx, carID)
}

// GetLastBooking returns the most recently created booking for a car.
func (svc *DefaultBookingService) GetLastBooking(ctx context.Context, carID string) (*models.Booking, error) {
	if carID == "" {
		return nil, newValidationError("car id is required")
	}
	booking, err := svc.Repo.GetLastByCarID(ctx, carID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(fmt.Sprintf("No bookings found for car ID %s", carID))
		}
		return nil, err
	}
	return booking, nil
}

// FindAvailableDates returns the nearest dates with free capacity for a
// (branch, service) pair.
func (svc *DefaultBookingService) FindAvailableDates(ctx context.Context, branchID, serviceID string) ([]string, error) {
	if branchID == "" || serviceID == "" {
		return nil, newValidationError("branch id and service id are required")
	}
	_, dates, err := svc.lookupAvailability(ctx, branchID, serviceID)
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// lookupAvailability resolves the capacity rule and runs the availability
// scan for a (branch, service) pair.
func (svc *DefaultBookingService) lookupAvailability(ctx context.Context, branchID, serviceID string) (int, []string, error) {
	maxCapacity, err := svc.Capacity.GetMaxCapacity(ctx, branchID, serviceID)
	if err != nil {
		if errors.Is(err, branchServiceRepo.ErrRuleNotFound) {
			return 0, nil, newNotFoundError(fmt.Sprintf(
				"Capacity rule not found for branch %s and service %s.", branchID, serviceID))
		}
		return 0, nil, err
	}

	dates, err := svc.findClosestAvailableDates(ctx, branchID, serviceID, maxCapacity, availableDateCount)
	if err != nil {
		return 0, nil, err
	}
	if len(dates) == 0 {
		// No unverified fallback date: a fully booked horizon is surfaced,
		// not papered over with "tomorrow".
		return 0, nil, newBusinessRuleError(fmt.Sprintf(
			"No available dates within the next %d days for branch %s and service %s.",
			availabilityHorizon, branchID, serviceID))
	}
	return maxCapacity, dates, nil
}

// chooseDate applies the date-selection rule. Reschedules always require an
// explicit date; creates fall back to the nearest available one.
func chooseDate(requested string, available []string, dateRequired bool) (string, error) {
	if requested == "" {
		if dateRequired {
			return "", newValidationError("booking_date is required")
		}
		return available[0], nil
	}
	if _, err := time.Parse(models.DateLayout, requested); err != nil {
		return "", newValidationError(fmt.Sprintf("invalid booking_date %q, expected YYYY-MM-DD", requested))
	}
	for _, d := range available {
		if d == requested {
			return requested, nil
		}
	}
	return "", newDateUnavailableError(fmt.Sprintf(
		"Requested date %s is not available. Please choose one of the nearest available dates: %v",
		requested, available), available)
}

// rejectNonCancellable returns the rejection matching the booking's current
// status, or nil when the booking is still cancellable.
func (svc *DefaultBookingService) rejectNonCancellable(booking *models.Booking) error {
	switch booking.Status {
	case models.StatusPending:
		return nil
	case models.StatusCancelled:
		return newConflictError(fmt.Sprintf("Booking %s is already cancelled.", booking.ID))
	default:
		return newBusinessRuleError(fmt.Sprintf(
			"Booking %s cannot be cancelled as its status is not PENDING.", booking.ID))
	}
}

// mapCommitError translates repository commit failures into the domain
// taxonomy.
func (svc *DefaultBookingService) mapCommitError(err error, carID string, availableDates []string) error {
	switch {
	case errors.Is(err, bookingRepo.ErrPendingExists):
		return newConflictError(fmt.Sprintf("Car %s already has a pending booking and cannot book again.", carID))
	case errors.Is(err, bookingRepo.ErrCapacityFull):
		return newDateUnavailableError(fmt.Sprintf(
			"The chosen date filled up before the booking could be committed. Please choose one of: %v",
			availableDates), availableDates)
	default:
		return err
	}
}

func (svc *DefaultBookingService) notify(fn func() error) {
	if svc.Notifier == nil {
		return
	}
	if err := fn(); err != nil {
		utils.GetLogger().Warn("booking notification failed", zap.Error(err))
	}
}
