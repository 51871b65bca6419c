package repository

import (
	"StaffGate/entity"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (m *MongoDB) CreateFood(ctx context.Context, food *entity.Food) error {
	food.ID = uuid.NewString()
	food.CreatedAt = time.Now()

	if _, err := m.collection(foodsCollection).InsertOne(ctx, food); err != nil {
		return m.writeError(err)
	}
	return nil
}

func (m *MongoDB) ListFoods(ctx context.Context) ([]entity.Food, error) {
	cursor, err := m.collection(foodsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb find foods: %w", err)
	}
	defer cursor.Close(ctx)

	var foods []entity.Food
	if err = cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("mongodb decode foods: %w", err)
	}

	return foods, nil
}
