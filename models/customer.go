package models

import "time"

// Customer is an account holder who owns one or more registered cars.
type Customer struct {
	ID             string    `bson:"id" json:"id"`
	CustomerNumber string    `bson:"customer_number" json:"customer_number"`
	Name           string    `bson:"name" json:"name"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
