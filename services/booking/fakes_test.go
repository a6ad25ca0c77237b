package booking

import (
	"context"
	"time"

	bookingRepo "autoserve/database/repository/booking"
	carRepo "autoserve/database/repository/car"
	"autoserve/models"
)

// fakeBookingRepo is an in-memory BookingRepository. Bookings are held in
// insertion order; the newest record is the last element. Its transactional
// methods mimic the store's commit-time re-checks, and commitErr forces a
// commit failure without mutating state, which is what a rolled-back
// transaction looks like to the caller.
type fakeBookingRepo struct {
	bookings  []*models.Booking
	commitErr error
}

func (f *fakeBookingRepo) find(id string) *models.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if b := f.find(id); b != nil {
		snapshot := *b
		return &snapshot, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) GetByCarID(ctx context.Context, carID string) ([]models.Booking, error) {
	var out []models.Booking
	for i := len(f.bookings) - 1; i >= 0; i-- {
		if f.bookings[i].CarID == carID {
			out = append(out, *f.bookings[i])
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetRecentByCarID(ctx context.Context, carID string, limit int) ([]models.Booking, error) {
	all, _ := f.GetByCarID(ctx, carID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeBookingRepo) GetLastByCarID(ctx context.Context, carID string) (*models.Booking, error) {
	all, _ := f.GetByCarID(ctx, carID)
	if len(all) == 0 {
		return nil, bookingRepo.ErrNotFound
	}
	return &all[0], nil
}

func (f *fakeBookingRepo) CountActive(ctx context.Context, branchID, serviceID, date string) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.BranchID == branchID && b.ServiceID == serviceID && b.Date == date && b.Status == models.StatusPending {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) ExistsPending(ctx context.Context, carID string) (bool, error) {
	for _, b := range f.bookings {
		if b.CarID == carID && b.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error {
	b := f.find(id)
	if b == nil {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = at
	return nil
}

func (f *fakeBookingRepo) CreatePendingTransactionally(ctx context.Context, booking *models.Booking, maxCapacity int) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	if exists, _ := f.ExistsPending(ctx, booking.CarID); exists {
		return bookingRepo.ErrPendingExists
	}
	if active, _ := f.CountActive(ctx, booking.BranchID, booking.ServiceID, booking.Date); active >= int64(maxCapacity) {
		return bookingRepo.ErrCapacityFull
	}
	rec := *booking
	f.bookings = append(f.bookings, &rec)
	return nil
}

func (f *fakeBookingRepo) RescheduleTransactionally(ctx context.Context, oldID string, successor *models.Booking, maxCapacity int) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	old := f.find(oldID)
	if old == nil || old.Status != models.StatusPending {
		return bookingRepo.ErrStatusConflict
	}
	if active, _ := f.CountActive(ctx, successor.BranchID, successor.ServiceID, successor.Date); active >= int64(maxCapacity) {
		return bookingRepo.ErrCapacityFull
	}
	old.Status = models.StatusRescheduled
	old.UpdatedAt = successor.CreatedAt
	rec := *successor
	f.bookings = append(f.bookings, &rec)
	return nil
}

// fakeCapacity is an in-memory BranchServiceService with one flat capacity.
type fakeCapacity struct {
	capacity int
	err      error
}

func (f *fakeCapacity) GetMaxCapacity(ctx context.Context, branchID, serviceID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.capacity, nil
}

func (f *fakeCapacity) GetServicesByBranch(ctx context.Context, branchID string) ([]models.Service, error) {
	return nil, nil
}

func (f *fakeCapacity) SetCapacityRule(ctx context.Context, rule *models.BranchService) error {
	return nil
}

// fakeCarRepo is an in-memory CarRepository keyed by car id.
type fakeCarRepo struct {
	cars map[string]*models.Car
}

func (f *fakeCarRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	if c, ok := f.cars[id]; ok {
		return c, nil
	}
	return nil, carRepo.ErrNotFound
}

func (f *fakeCarRepo) GetByVIN(ctx context.Context, vin string) (*models.Car, error) {
	for _, c := range f.cars {
		if c.VIN == vin {
			return c, nil
		}
	}
	return nil, carRepo.ErrNotFound
}

func (f *fakeCarRepo) GetByCustomerID(ctx context.Context, customerID string) ([]models.Car, error) {
	var out []models.Car
	for _, c := range f.cars {
		if c.CustomerID == customerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCarRepo) Create(ctx context.Context, car *models.Car) error {
	f.cars[car.ID] = car
	return nil
}

func (f *fakeCarRepo) Delete(ctx context.Context, id string) error {
	delete(f.cars, id)
	return nil
}

// newTestService wires a DefaultBookingService over the fakes with one
// registered car.
func newTestService(repo *fakeBookingRepo, capacity int) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Capacity: &fakeCapacity{capacity: capacity},
		Cars: &fakeCarRepo{cars: map[string]*models.Car{
			"car-1": {ID: "car-1", VIN: "WVWZZZ1JZXW000001", CustomerID: "cust-1"},
		}},
	}
}

// daysOut formats the date n days from now.
func daysOut(n int) string {
	return time.Now().AddDate(0, 0, n).Format(models.DateLayout)
}
