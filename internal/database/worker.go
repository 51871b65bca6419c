package repository

import (
	"StaffGate/entity"
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (m *MongoDB) CreateWorker(ctx context.Context, worker *entity.Worker) error {
	worker.ID = uuid.NewString()
	worker.CreatedAt = time.Now()

	if _, err := m.collection(workersCollection).InsertOne(ctx, worker); err != nil {
		return m.writeError(err)
	}
	return nil
}

// GetWorkerByUserID returns the worker row linked to an employee
// account, or nil when the account has none.
func (m *MongoDB) GetWorkerByUserID(ctx context.Context, userID string) (*entity.Worker, error) {
	var worker entity.Worker
	err := m.collection(workersCollection).FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&worker)
	if err != nil {
		return nil, m.findError(err)
	}
	return &worker, nil
}

func (m *MongoDB) UpdateWorker(ctx context.Context, worker *entity.Worker) error {
	filter := bson.D{{Key: "id", Value: worker.ID}}
	update := bson.M{"$set": worker}

	_, err := m.collection(workersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return m.writeError(err)
	}
	return nil
}
