package registration

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"StaffGate/internal/service/telegram"
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"math/big"

	"github.com/go-playground/validator/v10"
)

// Repository defines the persistence operations the dialogue needs.
type Repository interface {
	GetOrCreateStep(ctx context.Context, chatID int64) (*entity.Step, error)
	SaveStep(ctx context.Context, step *entity.Step) error
	DeleteStep(ctx context.Context, chatID int64) error

	CreateUser(ctx context.Context, user *entity.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UserEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *entity.User) error
	FindAdmin(ctx context.Context) (*entity.User, error)
	FindHolderByCompany(ctx context.Context, company string) (*entity.User, error)

	GetCompanyByName(ctx context.Context, name string) (*entity.Company, error)
	CreateWorker(ctx context.Context, worker *entity.Worker) error

	UploadFile(filename string, reader io.Reader) error

	// Atomically runs fn as one all-or-nothing unit of work.
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}

// Gateway defines the messenger operations the dialogue needs.
type Gateway interface {
	SendText(chatID int64, text string) error
	SendMenu(chatID int64, text string, rows [][]telegram.MenuButton) error
	SendPrompt(chatID int64, text string) error
	FetchFile(fileID string) ([]byte, error)
}

// Mailer delivers confirmation codes out of band.
type Mailer interface {
	SendConfirmationCode(to, code string) error
}

// Notifier dispatches the human-approval prompts after a registration
// completes.
type Notifier interface {
	NotifyAdmin(admin, user *entity.User) error
	NotifyHolder(holder, user *entity.User) error
}

// Service is the conversation state machine: the single entry point
// owning every transition of the per-chat dialogue state.
type Service struct {
	repository Repository
	gateway    Gateway
	mailer     Mailer
	notifier   Notifier
	validate   *validator.Validate
	log        *slog.Logger
}

func NewService(repository Repository, gateway Gateway, mailer Mailer, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		gateway:    gateway,
		mailer:     mailer,
		notifier:   notifier,
		validate:   validator.New(),
		log:        logger.With(sl.Module("registration")),
	}
}

// HandleMessage processes one inbound chat message against the chat's
// current step. Invalid input never changes state, so a redelivered
// message is evaluated the same way until the step advances.
func (s *Service) HandleMessage(ctx context.Context, msg *entity.Message) error {
	chatID := msg.Chat.ID

	step, err := s.repository.GetOrCreateStep(ctx, chatID)
	if err != nil {
		return err
	}

	s.log.Debug("processing message",
		slog.Int64("chat_id", chatID),
		slog.String("step", string(step.Step)),
	)

	switch step.Step {
	case entity.StepStart:
		return s.handleStart(ctx, step, msg.Text)
	case entity.StepChooseRole:
		return s.handleChooseRole(ctx, step, msg.Text)
	case entity.StepCompanyName:
		return s.handleCompanyName(ctx, step, msg.Text)
	case entity.StepCompanySelection:
		return s.handleCompanySelection(ctx, step, msg.Text)
	case entity.StepUserName:
		return s.handleUserName(ctx, step, msg.Text)
	case entity.StepEmail:
		return s.handleEmail(ctx, step, msg.Text)
	case entity.StepPassword:
		return s.handlePassword(ctx, step, msg.Text)
	case entity.StepConfirmation:
		return s.handleConfirmation(ctx, step, msg.Text)
	case entity.StepImage:
		return s.handleImage(ctx, step, msg)
	case entity.StepLoginEmail:
		return s.handleLoginEmail(ctx, step, msg.Text)
	case entity.StepLoginPassword:
		return s.handleLoginPassword(ctx, step, msg.Text)
	default:
		s.send(chatID, "Sorry, I didn't understand that. Use /start to begin.")
		return nil
	}
}

// send delivers a plain reply; delivery failures are logged and never
// interrupt dialogue processing.
func (s *Service) send(chatID int64, text string) {
	if err := s.gateway.SendText(chatID, text); err != nil {
		s.log.Error("sending message", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

// prompt delivers a reply that also removes the current reply keyboard.
func (s *Service) prompt(chatID int64, text string) {
	if err := s.gateway.SendPrompt(chatID, text); err != nil {
		s.log.Error("sending prompt", slog.Int64("chat_id", chatID), sl.Err(err))
	}
}

func (s *Service) isValidEmail(text string) bool {
	return s.validate.Var(text, "required,email") == nil
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		b[i] = codeCharset[n.Int64()]
	}
	return string(b)
}
