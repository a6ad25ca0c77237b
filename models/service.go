package models

// Service is a catalog entry for a workshop service (oil change, brakes, ...).
type Service struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// BranchService is the capacity rule for one (branch, service) pair: the
// maximum number of simultaneously active (PENDING) bookings per calendar day.
type BranchService struct {
	BranchID       string `bson:"branch_id" json:"branch_id"`
	ServiceID      string `bson:"service_id" json:"service_id"`
	CapacityPerDay int    `bson:"capacity_per_day" json:"capacity_per_day"`
}
