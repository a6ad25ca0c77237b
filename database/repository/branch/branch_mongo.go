package branchRepo

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

// ErrNotFound indicates the branch id is unknown.
var ErrNotFound = errors.New("branch not found")

// BranchRepository defines methods for branch data access.
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	GetAll(ctx context.Context) ([]models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id string) error
}

// MongoBranchRepo implements BranchRepository using MongoDB.
type MongoBranchRepo struct {
	coll *mongo.Collection
}

// NewMongoBranchRepo creates a new instance of BranchRepository using MongoDB.
func NewMongoBranchRepo() BranchRepository {
	coll := database.DB().Collection("branches")
	repo := &MongoBranchRepo{coll: coll}

	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := coll.Indexes().CreateOne(context.Background(), idx); err != nil {
		utils.GetLogger().Error("Failed to create branch indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBranchRepo) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&branch)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branch with id %s: %w", id, err)
	}
	return &branch, nil
}

func (r *MongoBranchRepo) GetAll(ctx context.Context) ([]models.Branch, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branches: %w", err)
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("failed to decode branches: %w", err)
	}
	return branches, nil
}

func (r *MongoBranchRepo) Create(ctx context.Context, branch *models.Branch) error {
	if _, err := r.coll.InsertOne(ctx, branch); err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func (r *MongoBranchRepo) Update(ctx context.Context, branch *models.Branch) error {
	filter := bson.M{"id": branch.ID}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": branch})
	if err != nil {
		return fmt.Errorf("failed to update branch with id %s: %w", branch.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBranchRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete branch with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
