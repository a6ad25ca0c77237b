package models

// ReminderPayload is the queued payload for a booking reminder task.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	CarID     string `json:"carId"`
	BranchID  string `json:"branchId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
