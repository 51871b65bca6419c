package entity

import "time"

type Company struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

const (
	CompanyPending  = "pending"
	CompanyActive   = "active"
	CompanyInactive = "inactive"
)
