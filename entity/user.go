package entity

import "time"

type User struct {
	ID              string    `json:"id" bson:"id"`
	Name            string    `json:"name" bson:"name" validate:"omitempty"`
	Email           string    `json:"email" bson:"email" validate:"omitempty,email"`
	Password        string    `json:"-" bson:"password"`
	ChatID          int64     `json:"chat_id" bson:"chat_id" validate:"omitempty"`
	Image           string    `json:"image" bson:"image" validate:"omitempty"`
	Role            string    `json:"role" bson:"role" validate:"omitempty"`
	Company         string    `json:"company" bson:"company" validate:"omitempty"`
	Status          string    `json:"status" bson:"status" validate:"omitempty"`
	EmailVerifiedAt time.Time `json:"email_verified_at" bson:"email_verified_at"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

const (
	HolderRole   = "holder"
	EmployeeRole = "employee"
	AdminRole    = "admin"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func (u *User) IsHolder() bool {
	return u.Role == HolderRole
}

func (u *User) IsEmployee() bool {
	return u.Role == EmployeeRole
}

func (u *User) IsAdmin() bool {
	return u.Role == AdminRole
}

// IsDecided reports whether an approval decision was already applied.
// Status never moves out of a terminal state automatically.
func (u *User) IsDecided() bool {
	return u.Status == StatusApproved || u.Status == StatusRejected
}

// HasChat reports whether the user can be reached over the messenger.
func (u *User) HasChat() bool {
	return u.ChatID != 0
}
