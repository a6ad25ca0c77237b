package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"autoserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withTransaction runs fn inside a MongoDB transaction on a fresh session.
// The driver retries fn when the transaction aborts with a transient error
// (e.g. a write conflict on the slot document), so fn must be safe to re-run
// from scratch.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// claimSlot bumps the slot document for (branch, service, date) inside the
// transaction. Snapshot isolation alone would let two committers insert
// distinct booking documents after both counted active < maxCapacity; making
// every committer write the same slot document forces WiredTiger to abort one
// of them with a transient write conflict. The driver then retries the loser,
// whose re-run of the capacity count sees the winner's committed insert.
func (r *MongoBookingRepo) claimSlot(sc mongo.SessionContext, branchID, serviceID, date string) error {
	filter := bson.M{"branch_id": branchID, "service_id": serviceID, "date": date}
	update := bson.M{"$inc": bson.M{"claims": 1}}

	_, err := r.slots.UpdateOne(sc, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// Lost the upsert race creating the slot; it exists now, so a plain
		// update serializes on it.
		_, err = r.slots.UpdateOne(sc, filter, update)
	}
	if err != nil {
		return fmt.Errorf("failed to claim slot %s/%s/%s: %w", branchID, serviceID, date, err)
	}
	return nil
}

// insertPendingChecked claims the date's slot, re-validates the capacity
// count and inserts the record. Runs under a session context so all three
// belong to the same transaction.
func (r *MongoBookingRepo) insertPendingChecked(sc mongo.SessionContext, booking *models.Booking, maxCapacity int) error {
	if err := r.claimSlot(sc, booking.BranchID, booking.ServiceID, booking.Date); err != nil {
		return err
	}

	count, err := r.CountActive(sc, booking.BranchID, booking.ServiceID, booking.Date)
	if err != nil {
		return err
	}
	if count >= int64(maxCapacity) {
		return ErrCapacityFull
	}

	if _, err := r.coll.InsertOne(sc, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPendingExists
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

// CreatePendingTransactionally inserts a new PENDING booking. The slot claim,
// the capacity re-check and the insert commit together, closing the
// overbooking race between the availability scan and the write.
func (r *MongoBookingRepo) CreatePendingTransactionally(ctx context.Context, booking *models.Booking, maxCapacity int) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		return r.insertPendingChecked(sc, booking, maxCapacity)
	})
}

// RescheduleTransactionally closes the old PENDING record as RESCHEDULED and
// inserts its PENDING successor. If the insert fails for any reason the
// transaction aborts and the old record remains PENDING.
func (r *MongoBookingRepo) RescheduleTransactionally(ctx context.Context, oldID string, successor *models.Booking, maxCapacity int) error {
	now := time.Now()
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.UpdateStatus(sc, oldID, models.StatusPending, models.StatusRescheduled, now); err != nil {
			return err
		}
		return r.insertPendingChecked(sc, successor, maxCapacity)
	})
}
