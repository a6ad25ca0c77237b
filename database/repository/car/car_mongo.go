package carRepo

import (
	"context"
	"errors"
	"fmt"

	"autoserve/database"
	"autoserve/models"
	"autoserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the car id is unknown.
	ErrNotFound = errors.New("car not found")
	// ErrDuplicateVIN indicates the VIN is already registered.
	ErrDuplicateVIN = errors.New("car with this VIN already registered")
)

// CarRepository defines methods for customer car data access.
type CarRepository interface {
	GetByID(ctx context.Context, id string) (*models.Car, error)
	GetByVIN(ctx context.Context, vin string) (*models.Car, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Car, error)
	Create(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id string) error
}

// MongoCarRepo implements CarRepository using MongoDB.
type MongoCarRepo struct {
	coll *mongo.Collection
}

// NewMongoCarRepo creates a new instance of CarRepository using MongoDB.
func NewMongoCarRepo() CarRepository {
	coll := database.DB().Collection("customer_cars")
	repo := &MongoCarRepo{coll: coll}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vin", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(context.Background(), indexModels); err != nil {
		utils.GetLogger().Error("Failed to create car indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCarRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch car with id %s: %w", id, err)
	}
	return &car, nil
}

func (r *MongoCarRepo) GetByVIN(ctx context.Context, vin string) (*models.Car, error) {
	var car models.Car
	err := r.coll.FindOne(ctx, bson.M{"vin": vin}).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch car with vin %s: %w", vin, err)
	}
	return &car, nil
}

func (r *MongoCarRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.Car, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cars for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars for customer %s: %w", customerID, err)
	}
	return cars, nil
}

func (r *MongoCarRepo) Create(ctx context.Context, car *models.Car) error {
	if _, err := r.coll.InsertOne(ctx, car); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateVIN
		}
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

func (r *MongoCarRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
