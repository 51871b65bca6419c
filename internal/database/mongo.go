package repository

import (
	"StaffGate/internal/config"
	"StaffGate/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	stepsCollection     = "steps"
	usersCollection     = "users"
	companiesCollection = "companies"
	workersCollection   = "workers"
	foodsCollection     = "foods"
)

// ErrDuplicate is returned when a write violates a unique index,
// e.g. a second account with an already registered email.
var ErrDuplicate = errors.New("duplicate record")

type MongoDB struct {
	client   *mongo.Client
	database string
	log      *slog.Logger
}

func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}

	connection, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}

	client := &MongoDB{
		client:   connection,
		database: conf.Mongo.Database,
		log:      logger.With(sl.Module("mongodb")),
	}
	return client, nil
}

func (m *MongoDB) collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// findError maps "no documents" to a nil-result miss; callers receive
// (nil, nil) for lookups that found nothing.
func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("mongodb find error: %w", err)
}

func (m *MongoDB) writeError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return fmt.Errorf("mongodb write error: %w", err)
}

// EnsureIndexes creates the unique indexes the registration flow relies
// on. Email uniqueness in particular must be enforced here, not only by
// the pre-write existence check in the dialogue.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{usersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{usersCollection, mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{stepsCollection, mongo.IndexModel{Keys: bson.D{{Key: "chat_id", Value: 1}}, Options: unique}},
		{companiesCollection, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
	}

	for _, idx := range indexes {
		if _, err := m.collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("mongodb create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

// Atomically runs fn inside a single transaction: either every write fn
// performs is visible together, or none is. fn must pass the supplied
// context to all repository calls.
func (m *MongoDB) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongodb start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
