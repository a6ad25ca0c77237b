package models

// Branch is a physical service location of the automotive group.
type Branch struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Address     string `bson:"address" json:"address"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
}
