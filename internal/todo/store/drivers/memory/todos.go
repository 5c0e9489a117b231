package memory

import (
	"context"
	"time"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

type todosRepo struct {
	s *Store
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	if !validID(t.OwnerID) {
		return domain.Todo{}, store.ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	t.ID = newID()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.s.todos[t.ID] = t

	return t, nil
}

func (r *todosRepo) ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	if !validID(ownerID) {
		return nil, store.ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	todos := []domain.Todo{}
	for _, t := range r.s.todos {
		if t.OwnerID == ownerID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (r *todosRepo) GetTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.owned(id, ownerID)
}

func (r *todosRepo) UpdateTodoForOwner(ctx context.Context, id, ownerID string, change domain.TodoChange) (domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, err := r.owned(id, ownerID)
	if err != nil {
		return domain.Todo{}, err
	}

	if change.Text != nil {
		t.Text = *change.Text
	}
	t.Completed = change.Completed
	t.CompletedAt = change.CompletedAt
	t.UpdatedAt = time.Now().UTC()
	r.s.todos[t.ID] = t

	return t, nil
}

func (r *todosRepo) DeleteTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, err := r.owned(id, ownerID)
	if err != nil {
		return domain.Todo{}, err
	}
	delete(r.s.todos, t.ID)
	return t, nil
}

// owned resolves a todo for its owner. Malformed ids, absent records
// and ownership mismatches all return ErrNotFound, matching the mongo
// driver. Callers hold the store lock.
func (r *todosRepo) owned(id, ownerID string) (domain.Todo, error) {
	if !validID(id) || !validID(ownerID) {
		return domain.Todo{}, store.ErrNotFound
	}
	t, ok := r.s.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, store.ErrNotFound
	}
	return t, nil
}
