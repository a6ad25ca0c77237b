// File: database/repository/booking/bookingMongoCrud.go
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

// GetByID retrieves a booking document by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByCarID retrieves all bookings for a car, newest first.
func (r *MongoBookingRepo) GetByCarID(ctx context.Context, carID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"car_id": carID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for car %s: %w", carID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for car %s: %w", carID, err)
	}
	return bookings, nil
}

// GetRecentByCarID retrieves up to limit bookings for a car in descending
// creation order. The reschedule guard walks this window.
func (r *MongoBookingRepo) GetRecentByCarID(ctx context.Context, carID string, limit int) ([]models.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"car_id": carID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent bookings for car %s: %w", carID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode recent bookings for car %s: %w", carID, err)
	}
	return bookings, nil
}

// GetLastByCarID retrieves the most recently created booking for a car.
func (r *MongoBookingRepo) GetLastByCarID(ctx context.Context, carID string) (*models.Booking, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"car_id": carID}, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last booking for car %s: %w", carID, err)
	}
	return &booking, nil
}

// UpdateStatus transitions a booking from one status to another, stamping
// updated_at. The source status is part of the filter, so a lost race shows
// up as MatchedCount == 0 rather than a silent double transition.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": at}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}
