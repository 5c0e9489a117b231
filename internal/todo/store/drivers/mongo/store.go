// Package mongo implements the store interfaces on top of the official
// MongoDB driver. Documents keep the collection layout of the original
// deployment: a users collection with an embedded token list and a
// todos collection keyed by _creator.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tickbox/tickbox/internal/todo/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users *usersRepo
	todos *todosRepo
}

var _ store.Store = (*Store)(nil)

// NewStore connects to MongoDB and returns a Store bound to the given
// database. The driver manages its own connection pool; per-request
// cancellation is the caller's concern via ctx on each operation.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client: client,
		db:     db,
		users:  &usersRepo{col: db.Collection("users")},
		todos:  &todosRepo{col: db.Collection("todos")},
	}, nil
}

func (s *Store) Users() store.Users { return s.users }
func (s *Store) Todos() store.Todos { return s.todos }

// EnsureIndexes creates the unique email index that backs the email
// uniqueness invariant, and the owner index the scoped todo queries
// lean on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = s.todos.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "_creator", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("todos creator index: %w", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mapNotFound converts the driver's no-document sentinel into the
// store-level one.
func mapNotFound(err error) error {
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	return err
}
