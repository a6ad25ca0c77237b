package car

import (
	"context"
	"errors"
	"time"

	carRepo "autoserve/database/repository/car"
	customerRepo "autoserve/database/repository/customer"
	"autoserve/models"

	"github.com/google/uuid"
)

// ErrCustomerUnknown is returned when registering a car for a customer that
// does not exist.
var ErrCustomerUnknown = errors.New("customer not found")

// CarService manages the customer car registry.
type CarService interface {
	RegisterCar(ctx context.Context, customerID, vin, model string) (*models.Car, error)
	GetCarsByCustomer(ctx context.Context, customerID string) ([]models.Car, error)
	GetByVIN(ctx context.Context, vin string) (*models.Car, error)
	Delete(ctx context.Context, id string) error
}

// DefaultCarService implements CarService.
type DefaultCarService struct {
	Repo      carRepo.CarRepository
	Customers customerRepo.CustomerRepository
}

func (s *DefaultCarService) RegisterCar(ctx context.Context, customerID, vin, model string) (*models.Car, error) {
	if vin == "" || customerID == "" {
		return nil, errors.New("customer id and vin are required")
	}
	if _, err := s.Customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, customerRepo.ErrNotFound) {
			return nil, ErrCustomerUnknown
		}
		return nil, err
	}

	c := &models.Car{
		ID:         uuid.New().String(),
		VIN:        vin,
		CustomerID: customerID,
		Model:      model,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DefaultCarService) GetCarsByCustomer(ctx context.Context, customerID string) ([]models.Car, error) {
	return s.Repo.GetByCustomerID(ctx, customerID)
}

func (s *DefaultCarService) GetByVIN(ctx context.Context, vin string) (*models.Car, error) {
	return s.Repo.GetByVIN(ctx, vin)
}

func (s *DefaultCarService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
