package service

import (
	"context"
	"strings"
	"time"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

// TodoService owns the per-user scoping of todo records. Every read,
// update and delete is constrained to the caller's own todos; a record
// owned by someone else behaves exactly like one that does not exist.
type TodoService struct {
	Store store.Store
}

func (s *TodoService) Create(ctx context.Context, owner domain.User, text string) (domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Todo{}, &ValidationError{Field: "text", Reason: "is required"}
	}

	return s.Store.Todos().CreateTodo(ctx, domain.Todo{
		Text:    text,
		OwnerID: owner.ID,
	})
}

func (s *TodoService) List(ctx context.Context, owner domain.User) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodosByOwner(ctx, owner.ID)
}

func (s *TodoService) Get(ctx context.Context, owner domain.User, id string) (domain.Todo, error) {
	return s.Store.Todos().GetTodoForOwner(ctx, id, owner.ID)
}

// Update applies a patch to the caller's todo and returns the
// post-update document. Only text and completed are writable; the
// completed/completedAt pair is resolved by domain.TodoPatch.Apply.
func (s *TodoService) Update(ctx context.Context, owner domain.User, id string, patch domain.TodoPatch) (domain.Todo, error) {
	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return domain.Todo{}, &ValidationError{Field: "text", Reason: "is required"}
		}
		patch.Text = &trimmed
	}

	change := patch.Apply(time.Now().UTC())
	return s.Store.Todos().UpdateTodoForOwner(ctx, id, owner.ID, change)
}

func (s *TodoService) Delete(ctx context.Context, owner domain.User, id string) (domain.Todo, error) {
	return s.Store.Todos().DeleteTodoForOwner(ctx, id, owner.ID)
}
