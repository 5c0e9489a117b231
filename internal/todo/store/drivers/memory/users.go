package memory

import (
	"context"
	"slices"
	"time"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.User{}, store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	u.ID = newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = copyUser(u)

	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) GetUserByAuthToken(ctx context.Context, id, access, token string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !u.HasToken(access, token) {
		return domain.User{}, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *usersRepo) AppendToken(ctx context.Context, userID string, t domain.AuthToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Tokens = append(slices.Clone(u.Tokens), t)
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) RemoveToken(ctx context.Context, userID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}

	kept := make([]domain.AuthToken, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func copyUser(u domain.User) domain.User {
	u.Tokens = slices.Clone(u.Tokens)
	return u
}
