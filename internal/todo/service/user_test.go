package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store/drivers/memory"
	"github.com/tickbox/tickbox/pkg/jwtx"
)

// testCost keeps bcrypt cheap in tests.
const testCost = 4

func newUserService(t *testing.T) *service.UserService {
	t.Helper()

	codec, err := jwtx.NewCodec("unit-test-secret")
	require.NoError(t, err)

	return &service.UserService{
		Store: memory.NewStore(),
		Codec: codec,
		Cost:  testCost,
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	created, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice@example.com", created.Email)
	require.NotEqual(t, "secret1", created.PasswordHash)
	require.Empty(t, created.Tokens)

	authed, err := users.Authenticate(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, created.ID, authed.ID)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"whitespace email", "   ", "secret1"},
		{"invalid email", "not-an-address", "secret1"},
		{"short password", "bob@example.com", "12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register(ctx, tc.email, tc.password)
			require.Error(t, err)
			require.True(t, service.IsValidation(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	_, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = users.Register(ctx, "alice@example.com", "another1")
	require.Error(t, err)
	require.True(t, service.IsValidation(err))
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	_, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	// Unknown email and wrong password must be the same error.
	_, unknownErr := users.Authenticate(ctx, "nobody@example.com", "secret1")
	_, wrongErr := users.Authenticate(ctx, "alice@example.com", "wrongpass")

	require.ErrorIs(t, unknownErr, service.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, service.ErrInvalidCredentials)
}

func TestIssueAndResolveToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	token, err := users.IssueToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := users.ResolveToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.True(t, resolved.HasToken(jwtx.AccessAuth, token))
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	_, err := users.ResolveToken(ctx, "not-a-token")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestResolveTokenRejectsForeignSignature(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	// A token signed with a different secret never reaches the store.
	foreign, err := jwtx.NewCodec("some-other-secret")
	require.NoError(t, err)
	token, err := foreign.Sign(user.ID)
	require.NoError(t, err)

	_, err = users.ResolveToken(ctx, token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestResolveTokenRejectsUnstoredToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	// Correct signature, but the token was never issued so it is not on
	// the user's active list.
	token, err := users.Codec.Sign(user.ID)
	require.NoError(t, err)

	_, err = users.ResolveToken(ctx, token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRevokeTokenIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	token, err := users.IssueToken(ctx, user)
	require.NoError(t, err)

	require.NoError(t, users.RevokeToken(ctx, user, token))

	_, err = users.ResolveToken(ctx, token)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	// Second revocation of the same token is a no-op, not an error.
	require.NoError(t, users.RevokeToken(ctx, user, token))
}

func TestRevokeLeavesOtherTokensActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	first, err := users.IssueToken(ctx, user)
	require.NoError(t, err)
	second, err := users.IssueToken(ctx, user)
	require.NoError(t, err)

	require.NoError(t, users.RevokeToken(ctx, user, first))

	_, err = users.ResolveToken(ctx, first)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	resolved, err := users.ResolveToken(ctx, second)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestPublicProjectionCarriesNoSecrets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newUserService(t)

	user, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = users.IssueToken(ctx, user)
	require.NoError(t, err)

	pub := user.Public()
	require.Equal(t, domain.PublicUser{ID: user.ID, Email: user.Email}, pub)
}
