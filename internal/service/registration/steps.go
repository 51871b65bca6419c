package registration

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"StaffGate/internal/service/telegram"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (s *Service) handleStart(ctx context.Context, step *entity.Step, text string) error {
	switch text {
	case "/start":
		menu := [][]telegram.MenuButton{
			{{Text: "Register"}, {Text: "Login"}},
		}
		if err := s.gateway.SendMenu(step.ChatID, "Welcome! Please choose an option:", menu); err != nil {
			s.log.Error("sending welcome menu", slog.Int64("chat_id", step.ChatID), sl.Err(err))
		}
	case "Register":
		step.Advance(entity.StepChooseRole)
		if err := s.repository.SaveStep(ctx, step); err != nil {
			return err
		}
		menu := [][]telegram.MenuButton{
			{{Text: "Company holder"}, {Text: "Employee of company"}},
		}
		if err := s.gateway.SendMenu(step.ChatID, "Choose your role:", menu); err != nil {
			s.log.Error("sending role menu", slog.Int64("chat_id", step.ChatID), sl.Err(err))
		}
	case "Login":
		step.Advance(entity.StepLoginEmail)
		if err := s.repository.SaveStep(ctx, step); err != nil {
			return err
		}
		s.prompt(step.ChatID, "Please enter your email:")
	}
	return nil
}

func (s *Service) handleChooseRole(ctx context.Context, step *entity.Step, text string) error {
	switch text {
	case "Company holder":
		step.Role = entity.HolderRole
		step.Advance(entity.StepCompanyName)
		if err := s.repository.SaveStep(ctx, step); err != nil {
			return err
		}
		s.prompt(step.ChatID, "Please enter your company name:")
	case "Employee of company":
		step.Role = entity.EmployeeRole
		step.Advance(entity.StepCompanySelection)
		if err := s.repository.SaveStep(ctx, step); err != nil {
			return err
		}
		s.prompt(step.ChatID, "Please enter the company name you want to join:")
	}
	return nil
}

func (s *Service) handleCompanyName(ctx context.Context, step *entity.Step, text string) error {
	if len(text) < 2 {
		s.send(step.ChatID, "Company name must be at least 2 characters long.")
		return nil
	}

	step.CompanyName = text
	step.Advance(entity.StepUserName)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please enter your full name:")
	return nil
}

func (s *Service) handleCompanySelection(ctx context.Context, step *entity.Step, text string) error {
	if len(text) < 2 {
		s.send(step.ChatID, "Company name must be at least 2 characters long.")
		return nil
	}

	company, err := s.repository.GetCompanyByName(ctx, text)
	if err != nil {
		return err
	}
	if company == nil {
		s.send(step.ChatID, "Company not found. Please check the name and try again.")
		return nil
	}

	step.CompanyName = text
	step.Advance(entity.StepUserName)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please enter your full name:")
	return nil
}

func (s *Service) handleUserName(ctx context.Context, step *entity.Step, text string) error {
	if len(text) < 2 {
		s.send(step.ChatID, "Name must be at least 2 characters long.")
		return nil
	}

	step.Name = text
	step.Advance(entity.StepEmail)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please enter your email address:")
	return nil
}

func (s *Service) handleEmail(ctx context.Context, step *entity.Step, text string) error {
	if !s.isValidEmail(text) {
		s.send(step.ChatID, "Invalid email format. Please try again.")
		return nil
	}

	exists, err := s.repository.UserEmailExists(ctx, text)
	if err != nil {
		return err
	}
	if exists {
		s.log.Info("duplicate email registration attempt",
			slog.String("email", text),
			slog.Int64("chat_id", step.ChatID),
		)
		s.send(step.ChatID, "This email is already registered. Please use a different email.")
		return nil
	}

	step.Email = text
	step.Advance(entity.StepPassword)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please enter your password (minimum 6 characters):")
	return nil
}

func (s *Service) handlePassword(ctx context.Context, step *entity.Step, text string) error {
	if len(text) < minPasswordLength {
		s.send(step.ChatID, "Password must be at least 6 characters long.")
		return nil
	}

	code := generateCode(6)
	if err := s.mailer.SendConfirmationCode(step.Email, code); err != nil {
		// Step stays at password so the user can retry.
		s.log.Error("sending confirmation email", slog.String("email", step.Email), sl.Err(err))
		s.send(step.ChatID, "Failed to send confirmation email. Please try again.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	step.Password = string(hash)
	step.ConfirmationCode = code
	step.Advance(entity.StepConfirmation)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "A confirmation code has been sent to your email. Please enter it here:")
	return nil
}

func (s *Service) handleConfirmation(ctx context.Context, step *entity.Step, text string) error {
	if text != step.ConfirmationCode {
		s.send(step.ChatID, "Invalid confirmation code. Please try again.")
		return nil
	}

	step.Advance(entity.StepImage)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please send your profile photo:")
	return nil
}

func (s *Service) handleLoginEmail(ctx context.Context, step *entity.Step, text string) error {
	if !s.isValidEmail(text) {
		s.send(step.ChatID, "Invalid email format. Please try again.")
		return nil
	}

	step.Email = text
	step.Advance(entity.StepLoginPassword)
	if err := s.repository.SaveStep(ctx, step); err != nil {
		return err
	}
	s.send(step.ChatID, "Please enter your password:")
	return nil
}

func (s *Service) handleLoginPassword(ctx context.Context, step *entity.Step, text string) error {
	user, err := s.repository.GetUserByEmail(ctx, step.Email)
	if err != nil {
		return err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(text)) != nil {
		s.send(step.ChatID, "Invalid email or password. Please try again.")
		return nil
	}

	user.ChatID = step.ChatID
	if err := s.repository.UpdateUser(ctx, user); err != nil {
		return err
	}
	if err := s.repository.DeleteStep(ctx, step.ChatID); err != nil {
		return err
	}

	s.send(step.ChatID, fmt.Sprintf("Welcome back, %s!", user.Name))
	return nil
}
