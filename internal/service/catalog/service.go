package catalog

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/sl"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Repository defines the persistence operations for catalog items.
type Repository interface {
	CreateFood(ctx context.Context, food *entity.Food) error
	ListFoods(ctx context.Context) ([]entity.Food, error)
	UploadFile(filename string, reader io.Reader) error
}

// Service manages the simple item catalog. It is unrelated to the
// onboarding dialogue and shares only the storage layer with it.
type Service struct {
	repository Repository
	validate   *validator.Validate
	log        *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		validate:   validator.New(),
		log:        logger.With(sl.Module("catalog")),
	}
}

func (s *Service) ListFoods(ctx context.Context) ([]entity.Food, error) {
	return s.repository.ListFoods(ctx)
}

// CreateFood validates the item, stores its image under a generated
// unique name and persists the record.
func (s *Service) CreateFood(ctx context.Context, food *entity.Food, image io.Reader) error {
	if err := s.validate.Struct(food); err != nil {
		return fmt.Errorf("invalid food item: %w", err)
	}

	imageName := fmt.Sprintf("uploads/%s.jpg", uuid.NewString())
	if err := s.repository.UploadFile(imageName, image); err != nil {
		return fmt.Errorf("storing image: %w", err)
	}
	food.Image = imageName

	if err := s.repository.CreateFood(ctx, food); err != nil {
		return fmt.Errorf("creating food: %w", err)
	}

	s.log.Debug("food created", slog.String("name", food.Name))
	return nil
}
