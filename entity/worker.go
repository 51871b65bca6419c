package entity

import "time"

// Worker links an employee account to the company it joined. Its status
// is kept consistent with the account's status during approval.
type Worker struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CompanyID string    `json:"company_id" bson:"company_id"`
	Status    string    `json:"status" bson:"status"`
	Image     string    `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
