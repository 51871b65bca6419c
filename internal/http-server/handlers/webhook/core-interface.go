package webhook

import (
	"StaffGate/entity"
	"context"
)

// Registration is the conversation state machine entry point.
type Registration interface {
	HandleMessage(ctx context.Context, msg *entity.Message) error
}

// Approval is the callback-query entry point.
type Approval interface {
	HandleCallback(ctx context.Context, cb *entity.CallbackQuery) error
}
