package branchservice

import (
	"context"
	"errors"
	"testing"

	branchServiceRepo "autoserve/database/repository/branchservice"
	serviceRepo "autoserve/database/repository/service"
	"autoserve/models"
)

type fakeRuleRepo struct {
	rules map[string]int // key branchID|serviceID
}

func ruleKey(branchID, serviceID string) string { return branchID + "|" + serviceID }

func (f *fakeRuleRepo) GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error) {
	if capacity, ok := f.rules[ruleKey(branchID, serviceID)]; ok {
		return capacity, nil
	}
	return 0, branchServiceRepo.ErrRuleNotFound
}

func (f *fakeRuleRepo) GetServiceIDsByBranch(ctx context.Context, branchID string) ([]string, error) {
	var ids []string
	for key := range f.rules {
		if len(key) > len(branchID) && key[:len(branchID)] == branchID {
			ids = append(ids, key[len(branchID)+1:])
		}
	}
	return ids, nil
}

func (f *fakeRuleRepo) Upsert(ctx context.Context, rule *models.BranchService) error {
	f.rules[ruleKey(rule.BranchID, rule.ServiceID)] = rule.CapacityPerDay
	return nil
}

type fakeCatalog struct {
	services map[string]models.Service
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return &s, nil
	}
	return nil, serviceRepo.ErrNotFound
}

func (f *fakeCatalog) GetAll(ctx context.Context) ([]models.Service, error) { return nil, nil }

func (f *fakeCatalog) Create(ctx context.Context, service *models.Service) error { return nil }

func TestGetMaxCapacity(t *testing.T) {
	repo := &fakeRuleRepo{rules: map[string]int{ruleKey("branch-1", "svc-1"): 4}}
	svc := &DefaultBranchServiceService{Repo: repo}

	capacity, err := svc.GetMaxCapacity(context.Background(), "branch-1", "svc-1")
	if err != nil {
		t.Fatalf("GetMaxCapacity() error = %v", err)
	}
	if capacity != 4 {
		t.Errorf("capacity = %d, want 4", capacity)
	}
}

func TestGetMaxCapacityMissingRule(t *testing.T) {
	svc := &DefaultBranchServiceService{Repo: &fakeRuleRepo{rules: map[string]int{}}}

	_, err := svc.GetMaxCapacity(context.Background(), "branch-1", "svc-1")
	if !errors.Is(err, branchServiceRepo.ErrRuleNotFound) {
		t.Fatalf("err = %v, want ErrRuleNotFound", err)
	}
}

func TestGetServicesByBranchSkipsRemovedCatalogEntries(t *testing.T) {
	repo := &fakeRuleRepo{rules: map[string]int{
		ruleKey("branch-1", "svc-1"): 2,
		ruleKey("branch-1", "svc-2"): 2,
	}}
	catalog := &fakeCatalog{services: map[string]models.Service{
		"svc-1": {ID: "svc-1", Name: "Oil change"},
	}}
	svc := &DefaultBranchServiceService{Repo: repo, Services: catalog}

	services, err := svc.GetServicesByBranch(context.Background(), "branch-1")
	if err != nil {
		t.Fatalf("GetServicesByBranch() error = %v", err)
	}
	if len(services) != 1 || services[0].ID != "svc-1" {
		t.Errorf("services = %+v, want only svc-1", services)
	}
}

func TestSetCapacityRule(t *testing.T) {
	repo := &fakeRuleRepo{rules: map[string]int{}}
	svc := &DefaultBranchServiceService{Repo: repo}

	rule := &models.BranchService{BranchID: "branch-1", ServiceID: "svc-1", CapacityPerDay: 3}
	if err := svc.SetCapacityRule(context.Background(), rule); err != nil {
		t.Fatalf("SetCapacityRule() error = %v", err)
	}
	if capacity, _ := svc.GetMaxCapacity(context.Background(), "branch-1", "svc-1"); capacity != 3 {
		t.Errorf("capacity after upsert = %d, want 3", capacity)
	}
}
