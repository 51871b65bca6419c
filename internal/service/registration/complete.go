package registration

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

func (s *Service) handleImage(ctx context.Context, step *entity.Step, msg *entity.Message) error {
	photo := msg.LargestPhoto()
	if photo == nil {
		s.send(step.ChatID, "Please send a photo.")
		return nil
	}

	content, err := s.gateway.FetchFile(photo.FileID)
	if err != nil {
		s.log.Error("fetching photo", slog.Int64("chat_id", step.ChatID), sl.Err(err))
		s.send(step.ChatID, "Failed to process image. Please try again.")
		return nil
	}

	imageName := fmt.Sprintf("uploads/%s.jpg", uuid.NewString())
	if err := s.repository.UploadFile(imageName, bytes.NewReader(content)); err != nil {
		s.log.Error("saving photo", slog.Int64("chat_id", step.ChatID), sl.Err(err))
		s.send(step.ChatID, "Failed to save image. Please try again.")
		return nil
	}

	return s.completeRegistration(ctx, step, imageName)
}

// completeRegistration materializes the pending account from the
// accumulated dialogue state and hands it to the approval workflow. All
// writes happen in one atomic unit; on failure the conversation is left
// untouched so the user can retry the photo.
func (s *Service) completeRegistration(ctx context.Context, step *entity.Step, imagePath string) error {
	err := s.repository.Atomically(ctx, func(ctx context.Context) error {
		user := &entity.User{
			Name:            step.Name,
			Email:           step.Email,
			Password:        step.Password,
			ChatID:          step.ChatID,
			Image:           imagePath,
			Role:            step.Role,
			Company:         step.CompanyName,
			Status:          entity.StatusPending,
			EmailVerifiedAt: time.Now(),
		}

		userID, err := s.repository.CreateUser(ctx, user)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		user.ID = userID

		switch step.Role {
		case entity.HolderRole:
			admin, err := s.repository.FindAdmin(ctx)
			if err != nil {
				return fmt.Errorf("looking up admin: %w", err)
			}
			// No admin registered is not an error; approval is just not
			// requested from anyone.
			if admin != nil {
				if err := s.notifier.NotifyAdmin(admin, user); err != nil {
					s.log.Error("notifying admin", sl.Err(err))
				}
			}
		case entity.EmployeeRole:
			company, err := s.repository.GetCompanyByName(ctx, step.CompanyName)
			if err != nil {
				return fmt.Errorf("looking up company: %w", err)
			}
			if company == nil {
				return fmt.Errorf("company %q no longer exists", step.CompanyName)
			}

			worker := &entity.Worker{
				UserID:    userID,
				CompanyID: company.ID,
				Status:    entity.StatusPending,
				Image:     imagePath,
			}
			if err := s.repository.CreateWorker(ctx, worker); err != nil {
				return fmt.Errorf("creating worker: %w", err)
			}

			holder, err := s.repository.FindHolderByCompany(ctx, step.CompanyName)
			if err != nil {
				return fmt.Errorf("looking up holder: %w", err)
			}
			if holder != nil {
				if err := s.notifier.NotifyHolder(holder, user); err != nil {
					s.log.Error("notifying holder", sl.Err(err))
				}
			}
		}

		s.send(step.ChatID, "Registration successful! Please wait for approval.")
		return s.repository.DeleteStep(ctx, step.ChatID)
	})
	if err != nil {
		s.log.Error("registration completion failed",
			slog.Int64("chat_id", step.ChatID),
			slog.String("email", step.Email),
			sl.Err(err),
		)
		s.send(step.ChatID, "Registration failed. Please try again.")
		return nil
	}

	s.log.Info("registration completed",
		slog.Int64("chat_id", step.ChatID),
		slog.String("role", step.Role),
	)
	return nil
}
