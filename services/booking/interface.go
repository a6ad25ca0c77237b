package booking

import (
	"context"

	bookingRepo "autoserve/database/repository/booking"
	carRepo "autoserve/database/repository/car"
	"autoserve/models"
	"autoserve/services/branchservice"
	"autoserve/services/notification"
)

// CreateBookingRequest carries the caller's input for a new booking.
// Date is optional: when empty the nearest available date is chosen; when set
// it must be one of the nearest available dates.
type CreateBookingRequest struct {
	CarID     string `json:"car_id"`
	ServiceID string `json:"service_id"`
	BranchID  string `json:"branch_id"`
	Date      string `json:"booking_date,omitempty"`
	Comments  string `json:"comments,omitempty"`
}

// BookingService defines the reservation engine operations.
type BookingService interface {
	// CreateBooking reserves a PENDING booking for a car, subject to the
	// single-pending invariant and the daily capacity rule.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	// GetBookingsByCar lists a car's bookings, newest first.
	GetBookingsByCar(ctx context.Context, carID string) ([]models.Booking, error)
	// GetLastBooking returns the most recently created booking for a car.
	GetLastBooking(ctx context.Context, carID string) (*models.Booking, error)
	// RescheduleBooking closes a PENDING booking as RESCHEDULED and opens a
	// PENDING successor on the requested date, atomically.
	RescheduleBooking(ctx context.Context, oldBookingID, requestedDate, newComments string) (*models.Booking, error)
	// CancelBooking transitions a PENDING booking to CANCELLED.
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// FindAvailableDates returns the nearest dates with free capacity for a
	// (branch, service) pair.
	FindAvailableDates(ctx context.Context, branchID, serviceID string) ([]string, error)
}

// DefaultBookingService implements BookingService. It is the only writer of
// booking state transitions; every mutation goes through one of the
// repository's transactional commit paths.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Capacity branchservice.BranchServiceService
	Cars     carRepo.CarRepository
	Notifier notification.NotificationService
}
