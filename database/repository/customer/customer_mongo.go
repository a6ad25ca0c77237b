package customerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoserve/database"
	"autoserve/models"
	"autoserve/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the customer is unknown.
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("customer with this email already exists")
)

// CustomerRepository defines methods for customer account data access.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
}

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo creates a new instance of CustomerRepository using MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	coll := database.DB().Collection("customers")
	repo := &MongoCustomerRepo{coll: coll}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := coll.Indexes().CreateMany(context.Background(), indexModels); err != nil {
		utils.GetLogger().Error("Failed to create customer indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer with id %s: %w", id, err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer with email %s: %w", email, err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": customer.ID}, bson.M{"$set": customer})
	if err != nil {
		return fmt.Errorf("failed to update customer with id %s: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
