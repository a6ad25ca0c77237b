package branchServiceRepo

import (
	"context"
	"errors"

	"autoserve/models"
)

// ErrRuleNotFound indicates no capacity rule exists for the
// (branch, service) pair.
var ErrRuleNotFound = errors.New("capacity rule not found")

// BranchServiceRepository defines data access for per-branch service
// capacity rules.
type BranchServiceRepository interface {
	// GetMaxCapacity returns the maximum number of active bookings allowed
	// per day for the (branch, service) pair, or ErrRuleNotFound.
	GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error)
	// GetServiceIDsByBranch lists the service IDs offered at a branch.
	GetServiceIDsByBranch(ctx context.Context, branchID string) ([]string, error)
	// Upsert creates or replaces the capacity rule for a (branch, service)
	// pair.
	Upsert(ctx context.Context, rule *models.BranchService) error
}
