package approval

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository defines the persistence operations for approval decisions.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) error
	CreateCompany(ctx context.Context, company *entity.Company) (string, error)
	GetWorkerByUserID(ctx context.Context, userID string) (*entity.Worker, error)
	UpdateWorker(ctx context.Context, worker *entity.Worker) error

	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}

// Gateway defines the messenger operations for approval decisions.
type Gateway interface {
	SendText(chatID int64, text string) error
	EditText(chatID, messageID int64, text string) error
}

// Service applies approve/reject decisions arriving as callback
// queries.
type Service struct {
	repository Repository
	gateway    Gateway
	log        *slog.Logger
}

func NewService(repository Repository, gateway Gateway, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		gateway:    gateway,
		log:        logger.With(sl.Module("approval")),
	}
}

// HandleCallback routes an inline-button decision. Malformed tokens are
// dropped before dispatch; operation failures are reported back to the
// approver and logged, never escalated to the webhook response.
func (s *Service) HandleCallback(ctx context.Context, cb *entity.CallbackQuery) error {
	if cb.Message == nil {
		s.log.Warn("callback without message payload", slog.String("data", cb.Data))
		return nil
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	token, err := ParseToken(cb.Data)
	if err != nil {
		s.log.Warn("dropping malformed callback", slog.String("data", cb.Data), sl.Err(err))
		return nil
	}

	switch {
	case token.Action == ActionApprove && token.Subject == SubjectCompany:
		err = s.approveCompany(ctx, token.AccountID, chatID, messageID)
	case token.Action == ActionApprove && token.Subject == SubjectWorker:
		err = s.approveWorker(ctx, token.AccountID, chatID, messageID)
	case token.Action == ActionReject && token.Subject == SubjectCompany:
		err = s.rejectCompany(ctx, token.AccountID, chatID, messageID)
	case token.Action == ActionReject && token.Subject == SubjectWorker:
		err = s.rejectWorker(ctx, token.AccountID, chatID, messageID)
	}

	if err != nil {
		s.log.Error("callback handling failed",
			slog.String("token", token.String()),
			sl.Err(err),
		)
		s.send(chatID, "Failed to process the request. Please try again.")
	}
	return nil
}

// approveCompany flips the holder account to approved and materializes
// the company, as one atomic unit.
func (s *Service) approveCompany(ctx context.Context, userID string, chatID, messageID int64) error {
	user, err := s.repository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("account %s not found", userID)
	}
	if user.IsDecided() {
		s.log.Info("ignoring repeated decision",
			slog.String("user_id", userID),
			slog.String("status", user.Status),
		)
		s.send(chatID, "This request has already been processed.")
		return nil
	}
	if user.Company == "" {
		return fmt.Errorf("account %s has no company name", userID)
	}

	return s.repository.Atomically(ctx, func(ctx context.Context) error {
		user.Status = entity.StatusApproved
		if err := s.repository.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("updating user: %w", err)
		}

		company := &entity.Company{
			Name:    user.Company,
			Email:   user.Email,
			OwnerID: user.ID,
			Status:  entity.CompanyActive,
		}
		if _, err := s.repository.CreateCompany(ctx, company); err != nil {
			return fmt.Errorf("creating company: %w", err)
		}

		decided := fmt.Sprintf("✅ <b>Company Registration Approved</b>\n\n"+
			"Company: %s\nOwner: %s\nStatus: Approved\nDate: %s",
			user.Company, user.Name, decisionTime())
		if err := s.gateway.EditText(chatID, messageID, decided); err != nil {
			return fmt.Errorf("editing approval message: %w", err)
		}

		s.send(user.ChatID, fmt.Sprintf("🎉 <b>Congratulations!</b>\n\n"+
			"Your company registration for <b>%s</b> has been approved.\n"+
			"You can now start using the system.", user.Company))
		return nil
	})
}

// rejectCompany flips the account to rejected. Unlike approval this is
// not one atomic unit: a failed message edit does not revert the
// already-persisted status.
func (s *Service) rejectCompany(ctx context.Context, userID string, chatID, messageID int64) error {
	user, err := s.repository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("account %s not found", userID)
	}
	if user.IsDecided() {
		s.send(chatID, "This request has already been processed.")
		return nil
	}

	user.Status = entity.StatusRejected
	if err := s.repository.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	decided := fmt.Sprintf("❌ <b>Company Registration Rejected</b>\n\n"+
		"Company: %s\nOwner: %s\nStatus: Rejected\nDate: %s",
		user.Company, user.Name, decisionTime())
	if err := s.gateway.EditText(chatID, messageID, decided); err != nil {
		return fmt.Errorf("editing approval message: %w", err)
	}

	s.send(user.ChatID, fmt.Sprintf("❌ <b>Registration Update</b>\n\n"+
		"Your company registration for <b>%s</b> has been rejected.\n"+
		"Please contact support for more information.", user.Company))
	return nil
}

// approveWorker flips both the employee account and its linked worker
// row to approved, as one atomic unit.
func (s *Service) approveWorker(ctx context.Context, userID string, chatID, messageID int64) error {
	user, err := s.repository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("account %s not found", userID)
	}
	if user.IsDecided() {
		s.send(chatID, "This request has already been processed.")
		return nil
	}

	worker, err := s.repository.GetWorkerByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if worker == nil {
		// An employee account must always have its worker row.
		return fmt.Errorf("worker record for account %s not found", userID)
	}

	return s.repository.Atomically(ctx, func(ctx context.Context) error {
		user.Status = entity.StatusApproved
		if err := s.repository.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("updating user: %w", err)
		}

		worker.Status = entity.StatusApproved
		if err := s.repository.UpdateWorker(ctx, worker); err != nil {
			return fmt.Errorf("updating worker: %w", err)
		}

		decided := fmt.Sprintf("✅ <b>Worker Registration Approved</b>\n\n"+
			"Name: %s\nCompany: %s\nStatus: Approved\nDate: %s",
			user.Name, user.Company, decisionTime())
		if err := s.gateway.EditText(chatID, messageID, decided); err != nil {
			return fmt.Errorf("editing approval message: %w", err)
		}

		s.send(user.ChatID, fmt.Sprintf("🎉 <b>Congratulations!</b>\n\n"+
			"Your registration as a worker at <b>%s</b> has been approved.\n"+
			"You can now start using the system.", user.Company))
		return nil
	})
}

// rejectWorker flips only the account status. The linked worker row is
// left untouched, mirroring the approve/reject asymmetry of the
// original workflow.
func (s *Service) rejectWorker(ctx context.Context, userID string, chatID, messageID int64) error {
	user, err := s.repository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("account %s not found", userID)
	}
	if user.IsDecided() {
		s.send(chatID, "This request has already been processed.")
		return nil
	}

	user.Status = entity.StatusRejected
	if err := s.repository.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	decided := fmt.Sprintf("❌ <b>Worker Registration Rejected</b>\n\n"+
		"Name: %s\nCompany: %s\nStatus: Rejected\nDate: %s",
		user.Name, user.Company, decisionTime())
	if err := s.gateway.EditText(chatID, messageID, decided); err != nil {
		return fmt.Errorf("editing approval message: %w", err)
	}

	s.send(user.ChatID, fmt.Sprintf("❌ <b>Registration Update</b>\n\n"+
		"Your registration as a worker at <b>%s</b> has been rejected.\n"+
		"Please contact the company for more information.", user.Company))
	return nil
}

func (s *Service) send(chatID int64, text string) {
	if chatID == 0 {
		return
	}
	if err := s.gateway.SendText(chatID, text); err != nil {
		s.log.Error("sending message", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

func decisionTime() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
