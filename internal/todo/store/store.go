package store

import (
	"context"
	"errors"

	"github.com/tickbox/tickbox/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (mongo for
// production, memory for tests) implement this. All lookups return
// ErrNotFound rather than a nil document, and a malformed document id
// is normalised to ErrNotFound inside the driver so garbage ids follow
// the same path as absent records.
type Store interface {
	Users() Users
	Todos() Todos

	// EnsureIndexes creates the indexes the data model relies on, most
	// importantly the unique index on users.email.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user and returns it with its assigned id.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByAuthToken returns the user only when the exact token
	// string is still present on the user under the given class. This
	// is the membership half of token resolution; revoked tokens fail
	// here even though their signature still verifies.
	GetUserByAuthToken(ctx context.Context, id, access, token string) (domain.User, error)

	// AppendToken adds a token entry to the user's active list.
	AppendToken(ctx context.Context, userID string, t domain.AuthToken) error

	// RemoveToken pulls the matching token entry. Removing an absent
	// token is not an error.
	RemoveToken(ctx context.Context, userID, token string) error
}

type Todos interface {
	// CreateTodo inserts a new todo and returns it with its assigned id.
	CreateTodo(ctx context.Context, t domain.Todo) (domain.Todo, error)

	// ListTodosByOwner returns all todos created by the given user.
	ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)

	// GetTodoForOwner returns the todo only when it belongs to the
	// owner. Ownership mismatch and absence are indistinguishable.
	GetTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error)

	// UpdateTodoForOwner atomically applies the change and returns the
	// post-update document.
	UpdateTodoForOwner(ctx context.Context, id, ownerID string, change domain.TodoChange) (domain.Todo, error)

	// DeleteTodoForOwner removes the todo and returns the deleted
	// document.
	DeleteTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error)
}
