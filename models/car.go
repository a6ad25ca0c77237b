package models

import "time"

// Car is a customer vehicle registered with the automotive group.
type Car struct {
	ID         string    `bson:"id" json:"id"`
	VIN        string    `bson:"vin" json:"vin"`
	CustomerID string    `bson:"customer_id" json:"customer_id"`
	Model      string    `bson:"model,omitempty" json:"model,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
