package bookingRepo

import (
	"fmt"
	"time"

	"autoserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
// The partial unique index on car_id enforces the single-pending-booking
// invariant at the storage layer: two concurrent creates for the same car can
// both pass the read-phase check, but only one insert will commit.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "car_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.StatusPending}),
		},
		{Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "service_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "car_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	// One slot document per (branch, service, date); claimSlot upserts
	// against this key.
	slotIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "branch_id", Value: 1}, {Key: "service_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.slots.Indexes().CreateOne(ctx, slotIndex); err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}
	return nil
}
