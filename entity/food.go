package entity

import "time"

type Food struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	Price     float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Quantity  int       `json:"quantity" bson:"quantity" validate:"required,gte=0"`
	Image     string    `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
