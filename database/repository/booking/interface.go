package bookingRepo

import (
	"context"
	"errors"
	"time"

	"autoserve/models"
)

// Sentinel errors surfaced by the store so the booking service can map them
// onto its own error taxonomy without parsing driver errors.
var (
	// ErrNotFound indicates the booking id is unknown.
	ErrNotFound = errors.New("booking not found")
	// ErrPendingExists indicates the car already holds a PENDING booking
	// (partial unique index violation at commit time).
	ErrPendingExists = errors.New("car already has a pending booking")
	// ErrCapacityFull indicates the commit-time capacity re-check failed for
	// the chosen date.
	ErrCapacityFull = errors.New("daily capacity reached for chosen date")
	// ErrStatusConflict indicates a guarded status update matched no
	// document, i.e. the record was not in the expected status anymore.
	ErrStatusConflict = errors.New("booking not in expected status")
)

// BookingRepository defines the interface for booking data access.
// The two *Transactionally methods run their re-validation reads and their
// write(s) inside one MongoDB transaction, so decisions made during the
// service's read phase are confirmed at commit time.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByCarID retrieves all bookings for a car, newest first.
	GetByCarID(ctx context.Context, carID string) ([]models.Booking, error)
	// GetRecentByCarID retrieves up to limit bookings for a car in
	// descending creation order.
	GetRecentByCarID(ctx context.Context, carID string, limit int) ([]models.Booking, error)
	// GetLastByCarID retrieves the most recently created booking for a car.
	GetLastByCarID(ctx context.Context, carID string) (*models.Booking, error)
	// CountActive counts PENDING bookings for a (branch, service, date)
	// triple; only PENDING records count against daily capacity.
	CountActive(ctx context.Context, branchID, serviceID, date string) (int64, error)
	// ExistsPending reports whether the car currently holds a PENDING booking.
	ExistsPending(ctx context.Context, carID string) (bool, error)
	// UpdateStatus transitions a booking from one status to another,
	// stamping updated_at. Returns ErrStatusConflict when the record is not
	// in the expected source status.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error
	// CreatePendingTransactionally inserts a new PENDING booking after
	// re-validating the capacity count for its date inside the transaction.
	CreatePendingTransactionally(ctx context.Context, booking *models.Booking, maxCapacity int) error
	// RescheduleTransactionally closes the old PENDING record as RESCHEDULED
	// and inserts its PENDING successor; both writes commit together or not
	// at all.
	RescheduleTransactionally(ctx context.Context, oldID string, successor *models.Booking, maxCapacity int) error
}
