package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
	"github.com/tickbox/tickbox/pkg/cryptox"
	"github.com/tickbox/tickbox/pkg/jwtx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

// MinPasswordLength is the minimum accepted password length for
// registration.
const MinPasswordLength = 6

// UserService owns credential validation, token issuance and
// revocation, and token-to-user resolution.
type UserService struct {
	Store store.Store
	Codec *jwtx.Codec

	// Cost is the bcrypt work factor for new password hashes.
	Cost int
}

// Register validates the credentials and persists a new user with an
// empty token list. The plaintext password is hashed before it ever
// reaches the store.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)

	if email == "" {
		return domain.User{}, &ValidationError{Field: "email", Reason: "is required"}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.User{}, &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, &ValidationError{Field: "password", Reason: "is too short"}
	}

	hash, err := cryptox.HashPassword(password, s.Cost)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		Tokens:       []domain.AuthToken{},
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, &ValidationError{Field: "email", Reason: "is already registered"}
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate resolves an email/password pair to a user. Unknown email
// and wrong password both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken signs a new auth token for the user, appends it to the
// user's active token list and persists the change.
func (s *UserService) IssueToken(ctx context.Context, user domain.User) (string, error) {
	token, err := s.Codec.Sign(user.ID)
	if err != nil {
		return "", err
	}

	err = s.Store.Users().AppendToken(ctx, user.ID, domain.AuthToken{
		Access: jwtx.AccessAuth,
		Token:  token,
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// ResolveToken binds a presented token to a user. The signature check
// rejects garbage without touching the store; the store lookup then
// requires the exact token string to still be on the user's active
// list, which is how logout revokes tokens whose signature would
// otherwise verify forever.
func (s *UserService) ResolveToken(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Codec.Verify(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByAuthToken(ctx, claims.UserID, jwtx.AccessAuth, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidToken
		}
		return domain.User{}, err
	}

	return user, nil
}

// RevokeToken removes the token from the user's active list.
// Revoking a token that is already gone is not an error.
func (s *UserService) RevokeToken(ctx context.Context, user domain.User, token string) error {
	return s.Store.Users().RemoveToken(ctx, user.ID, token)
}
