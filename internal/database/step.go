package repository

import (
	"StaffGate/entity"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetOrCreateStep loads the conversation record for a chat, creating it
// at the initial step on first contact. The unique index on chat_id
// guarantees at most one record per chat even under concurrent inserts.
func (m *MongoDB) GetOrCreateStep(ctx context.Context, chatID int64) (*entity.Step, error) {
	collection := m.collection(stepsCollection)
	filter := bson.D{{Key: "chat_id", Value: chatID}}

	var step entity.Step
	err := collection.FindOne(ctx, filter).Decode(&step)
	if err == nil {
		return &step, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongodb find step: %w", err)
	}

	created := entity.NewStep(chatID)
	if _, err := collection.InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the insert race; the winner's record is authoritative.
			if err := collection.FindOne(ctx, filter).Decode(&step); err != nil {
				return nil, fmt.Errorf("mongodb find step: %w", err)
			}
			return &step, nil
		}
		return nil, m.writeError(err)
	}
	return created, nil
}

// SaveStep persists the conversation record, replacing the previous
// revision for the chat.
func (m *MongoDB) SaveStep(ctx context.Context, step *entity.Step) error {
	step.UpdatedAt = time.Now()

	filter := bson.D{{Key: "chat_id", Value: step.ChatID}}
	update := bson.M{"$set": step}

	_, err := m.collection(stepsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return m.writeError(err)
	}
	return nil
}

// DeleteStep removes the conversation record once the dialogue is done.
func (m *MongoDB) DeleteStep(ctx context.Context, chatID int64) error {
	_, err := m.collection(stepsCollection).DeleteOne(ctx, bson.D{{Key: "chat_id", Value: chatID}})
	if err != nil {
		return fmt.Errorf("mongodb delete step: %w", err)
	}
	return nil
}
