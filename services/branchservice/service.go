package branchservice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	branchServiceRepo "autoserve/database/repository/branchservice"
	serviceRepo "autoserve/database/repository/service"
	"autoserve/models"
	"autoserve/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// capacityCacheTTL bounds how stale a cached capacity rule may get.
const capacityCacheTTL = 10 * time.Minute

// BranchServiceService exposes per-branch service capacity rules and the
// service catalog of a branch.
type BranchServiceService interface {
	// GetMaxCapacity returns the daily active-booking capacity for a
	// (branch, service) pair, or branchServiceRepo.ErrRuleNotFound.
	GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error)
	// GetServicesByBranch resolves the services offered at a branch.
	GetServicesByBranch(ctx context.Context, branchID string) ([]models.Service, error)
	// SetCapacityRule creates or replaces a capacity rule.
	SetCapacityRule(ctx context.Context, rule *models.BranchService) error
}

// DefaultBranchServiceService implements BranchServiceService with a Redis
// read-through cache; capacity rules are read on every booking decision but
// change rarely.
type DefaultBranchServiceService struct {
	Repo     branchServiceRepo.BranchServiceRepository
	Services serviceRepo.ServiceRepository
	Cache    *redis.Client
}

func capacityCacheKey(branchID, serviceID string) string {
	return fmt.Sprintf("capacity:%s:%s", branchID, serviceID)
}

func (s *DefaultBranchServiceService) GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error) {
	key := capacityCacheKey(branchID, serviceID)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			if capacity, convErr := strconv.Atoi(cached); convErr == nil {
				return capacity, nil
			}
		}
	}

	capacity, err := s.Repo.GetMaxCapacity(ctx, branchID, serviceID)
	if err != nil {
		return 0, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, strconv.Itoa(capacity), capacityCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache capacity rule",
				zap.String("branchId", branchID),
				zap.String("serviceId", serviceID),
				zap.Error(err))
		}
	}
	return capacity, nil
}

func (s *DefaultBranchServiceService) GetServicesByBranch(ctx context.Context, branchID string) ([]models.Service, error) {
	ids, err := s.Repo.GetServiceIDsByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		service, err := s.Services.GetByID(ctx, id)
		if err == serviceRepo.ErrNotFound {
			// Rule points at a service removed from the catalog; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		services = append(services, *service)
	}
	return services, nil
}

func (s *DefaultBranchServiceService) SetCapacityRule(ctx context.Context, rule *models.BranchService) error {
	if err := s.Repo.Upsert(ctx, rule); err != nil {
		return err
	}
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, capacityCacheKey(rule.BranchID, rule.ServiceID)).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate capacity cache", zap.Error(err))
		}
	}
	return nil
}
