package models

import "time"

// DateLayout is the wire format for booking dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// BookingStatus is the lifecycle status of a booking record.
type BookingStatus string

const (
	StatusPending     BookingStatus = "PENDING"
	StatusRescheduled BookingStatus = "RESCHEDULED"
	StatusCompleted   BookingStatus = "COMPLETED"
	StatusCancelled   BookingStatus = "CANCELLED"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRescheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether a record in this status can still transition.
// Only PENDING records may be rescheduled or cancelled; everything else is
// final for that record (a reschedule continues the chain in a new record).
func (s BookingStatus) Terminal() bool {
	return s != StatusPending
}

// Booking represents one reservation attempt for a customer car.
// A reschedule never mutates the date in place; it closes this record with
// RESCHEDULED and opens a successor record with a fresh ID.
type Booking struct {
	ID        string        `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	ServiceID string        `bson:"service_id" json:"service_id"` // Service being booked
	CarID     string        `bson:"car_id" json:"car_id"`         // Customer car the service is for
	BranchID  string        `bson:"branch_id" json:"branch_id"`   // Branch performing the service
	Date      string        `bson:"date" json:"date"`             // Booking date in "YYYY-MM-DD" format
	Status    BookingStatus `bson:"status" json:"status"`
	Comments  string        `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}
