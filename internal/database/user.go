package repository

import (
	"StaffGate/entity"
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateUser inserts a new account and returns its generated id.
// Returns ErrDuplicate when the email is already registered.
func (m *MongoDB) CreateUser(ctx context.Context, user *entity.User) (string, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()

	if _, err := m.collection(usersCollection).InsertOne(ctx, user); err != nil {
		return "", m.writeError(err)
	}
	return user.ID, nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := m.collection(usersCollection).FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := m.collection(usersCollection).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

func (m *MongoDB) UserEmailExists(ctx context.Context, email string) (bool, error) {
	count, err := m.collection(usersCollection).CountDocuments(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return false, m.findError(err)
	}
	return count > 0, nil
}

func (m *MongoDB) UpdateUser(ctx context.Context, user *entity.User) error {
	filter := bson.D{{Key: "id", Value: user.ID}}
	update := bson.M{"$set": user}

	_, err := m.collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return m.writeError(err)
	}
	return nil
}

// FindAdmin returns the first administrator account, or nil when none
// is registered yet.
func (m *MongoDB) FindAdmin(ctx context.Context) (*entity.User, error) {
	var user entity.User
	err := m.collection(usersCollection).FindOne(ctx, bson.D{{Key: "role", Value: entity.AdminRole}}).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

// FindHolderByCompany returns the holder account owning the named
// company, or nil when none matches.
func (m *MongoDB) FindHolderByCompany(ctx context.Context, company string) (*entity.User, error) {
	filter := bson.D{
		{Key: "role", Value: entity.HolderRole},
		{Key: "company", Value: company},
	}

	var user entity.User
	err := m.collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}
