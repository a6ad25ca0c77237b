package booking

import "autoserve/models"

const (
	// maxConsecutiveReschedules caps how often a booking chain may be pushed
	// forward without the car ever showing up.
	maxConsecutiveReschedules = 3
	// rescheduleHistoryWindow is how many recent bookings the guard inspects.
	rescheduleHistoryWindow = 3
)

// countConsecutiveStatus walks a car's bookings in descending creation order
// and counts the trailing run of target statuses. A COMPLETED visit clears
// the penalty; any other status breaks the run.
func countConsecutiveStatus(bookings []models.Booking, target models.BookingStatus) int {
	count := 0
	for _, b := range bookings {
		if b.Status == models.StatusCompleted {
			break
		}
		if b.Status == target {
			count++
		} else {
			break
		}
	}
	return count
}
