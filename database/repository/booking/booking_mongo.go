package bookingRepo

import (
	"context"
	"time"

	"autoserve/database"
	"autoserve/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB. slots holds
// one document per (branch, service, date) that concurrent booking
// transactions write to so they conflict instead of committing side by side.
type MongoBookingRepo struct {
	coll  *mongo.Collection
	slots *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:  db.Collection("bookings"),
		slots: db.Collection("booking_slots"),
	}

	// The partial unique pending index backs the one-pending-per-car rule and
	// the slot index backs the capacity guard; refuse to run without them.
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Fatal("Failed to create booking indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
