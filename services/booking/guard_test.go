package booking

import (
	"testing"

	"autoserve/models"
)

func TestCountConsecutiveStatus(t *testing.T) {
	mk := func(statuses ...models.BookingStatus) []models.Booking {
		out := make([]models.Booking, len(statuses))
		for i, s := range statuses {
			out[i] = models.Booking{Status: s}
		}
		return out
	}

	cases := []struct {
		name     string
		bookings []models.Booking
		want     int
	}{
		{"empty history", nil, 0},
		{"no reschedules", mk(models.StatusPending, models.StatusCancelled), 0},
		{"single reschedule", mk(models.StatusRescheduled, models.StatusPending), 1},
		{"full run", mk(models.StatusRescheduled, models.StatusRescheduled, models.StatusRescheduled), 3},
		{"completed clears the run", mk(models.StatusCompleted, models.StatusRescheduled, models.StatusRescheduled), 0},
		{"run stops at completed", mk(models.StatusRescheduled, models.StatusCompleted, models.StatusRescheduled), 1},
		{"cancelled breaks but does not clear earlier count", mk(models.StatusRescheduled, models.StatusRescheduled, models.StatusCancelled, models.StatusRescheduled), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := countConsecutiveStatus(tc.bookings, models.StatusRescheduled)
			if got != tc.want {
				t.Errorf("countConsecutiveStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
