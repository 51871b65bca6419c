package entity

import "time"

// StepName identifies the dialogue step a chat is currently at.
type StepName string

const (
	StepStart            StepName = "start"
	StepChooseRole       StepName = "choose_role"
	StepCompanyName      StepName = "company_name"
	StepCompanySelection StepName = "company_selection"
	StepUserName         StepName = "user_name"
	StepEmail            StepName = "email"
	StepPassword         StepName = "password"
	StepConfirmation     StepName = "confirmation"
	StepImage            StepName = "image"
	StepLoginEmail       StepName = "login_email"
	StepLoginPassword    StepName = "login_password"
)

// Step is the per-chat conversation record. At most one exists per chat;
// it accumulates registration answers until the dialogue completes and
// is deleted when the account is handed off or the user logs in.
type Step struct {
	ChatID           int64     `json:"chat_id" bson:"chat_id"`
	Step             StepName  `json:"step" bson:"step"`
	Role             string    `json:"role" bson:"role"`
	CompanyName      string    `json:"company_name" bson:"company_name"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Password         string    `json:"password" bson:"password"`
	ConfirmationCode string    `json:"confirmation_code" bson:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// NewStep creates a conversation record at the initial step.
func NewStep(chatID int64) *Step {
	now := time.Now()
	return &Step{
		ChatID:    chatID,
		Step:      StepStart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the conversation to the next step.
func (s *Step) Advance(next StepName) {
	s.Step = next
	s.UpdatedAt = time.Now()
}
