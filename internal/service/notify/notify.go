package notify

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"StaffGate/internal/service/approval"
	"StaffGate/internal/service/telegram"
	"fmt"
	"log/slog"
	"time"
)

// Gateway defines the messenger operations the dispatcher needs.
type Gateway interface {
	VerifyChat(chatID int64) error
	SendInline(chatID int64, text string, rows [][]telegram.InlineButton) error
}

// Dispatcher composes and sends the human-approval prompts with inline
// approve/reject controls.
type Dispatcher struct {
	gateway Gateway
	log     *slog.Logger
}

func NewDispatcher(gateway Gateway, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		log:     logger.With(sl.Module("notify")),
	}
}

// NotifyAdmin asks an administrator to decide on a new company
// registration.
func (d *Dispatcher) NotifyAdmin(admin, user *entity.User) error {
	text := fmt.Sprintf("🆕 <b>New Company Registration Request</b>\n\n"+
		"Company: <b>%s</b>\nOwner: %s\nEmail: %s\nDate: %s",
		user.Company, user.Name, user.Email, time.Now().Format("2006-01-02 15:04:05"))

	return d.dispatch(admin, user, text, approval.SubjectCompany)
}

// NotifyHolder asks a company holder to decide on a new worker
// registration.
func (d *Dispatcher) NotifyHolder(holder, user *entity.User) error {
	text := fmt.Sprintf("🆕 <b>New Worker Registration Request</b>\n\n"+
		"Name: %s\nEmail: %s\nCompany: <b>%s</b>\nDate: %s",
		user.Name, user.Email, user.Company, time.Now().Format("2006-01-02 15:04:05"))

	return d.dispatch(holder, user, text, approval.SubjectWorker)
}

// dispatch gates the notification on the recipient being reachable: no
// bound chat or a failed liveness check drops it with a log line, there
// is nothing to retry.
func (d *Dispatcher) dispatch(recipient, user *entity.User, text string, subject approval.Subject) error {
	if !recipient.HasChat() {
		d.log.Warn("recipient has no bound chat, skipping notification",
			slog.String("recipient_id", recipient.ID),
			slog.String("user_id", user.ID),
		)
		return nil
	}

	if err := d.gateway.VerifyChat(recipient.ChatID); err != nil {
		d.log.Error("recipient chat verification failed",
			slog.String("recipient_id", recipient.ID),
			slog.Int64("chat_id", recipient.ChatID),
			sl.Err(err),
		)
		return nil
	}

	buttons := [][]telegram.InlineButton{{
		{
			Text: "✅ Approve",
			Data: approval.NewToken(approval.ActionApprove, subject, user.ID).String(),
		},
		{
			Text: "❌ Reject",
			Data: approval.NewToken(approval.ActionReject, subject, user.ID).String(),
		},
	}}

	if err := d.gateway.SendInline(recipient.ChatID, text, buttons); err != nil {
		return fmt.Errorf("sending approval prompt: %w", err)
	}

	d.log.Info("approval prompt sent",
		slog.Int64("chat_id", recipient.ChatID),
		slog.String("subject", string(subject)),
		slog.String("user_id", user.ID),
	)
	return nil
}
