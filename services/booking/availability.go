package booking

import (
	"context"
	"time"

	"autoserve/models"
)

const (
	// availabilityHorizon bounds the date scan. The candidate sequence is
	// conceptually infinite; without a cap a fully booked pair would make
	// the scan run away.
	availabilityHorizon = 90 // days
	// availableDateCount is how many qualifying dates are offered.
	availableDateCount = 3
)

// findClosestAvailableDates scans calendar dates starting tomorrow and
// returns up to count dates (ascending) whose active-booking count is below
// maxCapacity. An exhausted horizon yields an empty slice; the caller decides
// what that means.
func (svc *DefaultBookingService) findClosestAvailableDates(ctx context.Context, branchID, serviceID string, maxCapacity, count int) ([]string, error) {
	start := time.Now().AddDate(0, 0, 1)

	var dates []string
	for offset := 0; offset < availabilityHorizon && len(dates) < count; offset++ {
		date := start.AddDate(0, 0, offset).Format(models.DateLayout)
		active, err := svc.Repo.CountActive(ctx, branchID, serviceID, date)
		if err != nil {
			return nil, err
		}
		if active < int64(maxCapacity) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}
