// Package memory implements the store interfaces entirely in memory.
// It mirrors the mongo driver's semantics (ObjectID-format ids, unique
// emails, not-found for malformed ids) so services can run against it
// in tests without a database.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

type Store struct {
	mu    sync.Mutex
	users map[string]domain.User
	todos map[string]domain.Todo
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users: make(map[string]domain.User),
		todos: make(map[string]domain.Todo),
	}
}

func (s *Store) Users() store.Users { return &usersRepo{s: s} }
func (s *Store) Todos() store.Todos { return &todosRepo{s: s} }

func (s *Store) EnsureIndexes(ctx context.Context) error { return nil }
func (s *Store) Ping(ctx context.Context) error          { return nil }
func (s *Store) Close(ctx context.Context) error         { return nil }

// newID mints ids in the same 24-hex format the mongo driver uses, so
// id-format validation behaves identically across drivers.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
