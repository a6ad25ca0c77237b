package branchServiceRepo

import (
	"context"
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

// MongoBranchServiceRepo implements BranchServiceRepository using MongoDB.
type MongoBranchServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoBranchServiceRepo creates a new instance of BranchServiceRepository using MongoDB.
func NewMongoBranchServiceRepo() BranchServiceRepository {
	coll := database.DB().Collection("branch_services")
	repo := &MongoBranchServiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create branch_service indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBranchServiceRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "branch_id", Value: 1}, {Key: "service_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetMaxCapacity returns the per-day capacity for the (branch, service) pair.
func (r *MongoBranchServiceRepo) GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error) {
	var rule models.BranchService
	filter := bson.M{"branch_id": branchID, "service_id": serviceID}
	err := r.coll.FindOne(ctx, filter).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return 0, ErrRuleNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch capacity rule for branch %s service %s: %w", branchID, serviceID, err)
	}
	return rule.CapacityPerDay, nil
}

// GetServiceIDsByBranch lists the service IDs offered at a branch.
func (r *MongoBranchServiceRepo) GetServiceIDsByBranch(ctx context.Context, branchID string) ([]string, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"branch_id": branchID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services for branch %s: %w", branchID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.BranchService
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode capacity rules for branch %s: %w", branchID, err)
	}
	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ServiceID)
	}
	return ids, nil
}

// Upsert creates or replaces the capacity rule for a (branch, service) pair.
func (r *MongoBranchServiceRepo) Upsert(ctx context.Context, rule *models.BranchService) error {
	filter := bson.M{"branch_id": rule.BranchID, "service_id": rule.ServiceID}
	update := bson.M{"$set": rule}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert capacity rule for branch %s service %s: %w", rule.BranchID, rule.ServiceID, err)
	}
	return nil
}
