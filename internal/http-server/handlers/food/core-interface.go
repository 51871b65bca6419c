package food

import (
	"StaffGate/entity"
	"context"
	"io"
)

type Core interface {
	ListFoods(ctx context.Context) ([]entity.Food, error)
	CreateFood(ctx context.Context, food *entity.Food, image io.Reader) error
}
