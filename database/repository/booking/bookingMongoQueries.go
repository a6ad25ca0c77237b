package bookingRepo

import (
	"context"
	"fmt"

	"autoserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CountActive counts PENDING bookings for a (branch, service, date) triple.
// Only PENDING records are "active" and count against the daily capacity.
func (r *MongoBookingRepo) CountActive(ctx context.Context, branchID, serviceID, date string) (int64, error) {
	filter := bson.M{
		"branch_id":  branchID,
		"service_id": serviceID,
		"date":       date,
		"status":     models.StatusPending,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings for branch %s service %s on %s: %w",
			branchID, serviceID, date, err)
	}
	return count, nil
}

// ExistsPending reports whether the car currently holds a PENDING booking.
func (r *MongoBookingRepo) ExistsPending(ctx context.Context, carID string) (bool, error) {
	filter := bson.M{"car_id": carID, "status": models.StatusPending}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check pending booking for car %s: %w", carID, err)
	}
	return count > 0, nil
}
