package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store"
	"github.com/tickbox/tickbox/internal/todo/store/drivers/memory"
	"github.com/tickbox/tickbox/pkg/jwtx"
)

func newTodoFixture(t *testing.T) (*service.TodoService, domain.User, domain.User) {
	t.Helper()
	ctx := context.Background()

	st := memory.NewStore()
	codec, err := jwtx.NewCodec("unit-test-secret")
	require.NoError(t, err)

	users := &service.UserService{Store: st, Codec: codec, Cost: testCost}
	alice, err := users.Register(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	bob, err := users.Register(ctx, "bob@example.com", "secret2")
	require.NoError(t, err)

	return &service.TodoService{Store: st}, alice, bob
}

func TestCreateTodo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, _ := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "  Buy milk  ")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Buy milk", created.Text)
	require.False(t, created.Completed)
	require.Nil(t, created.CompletedAt)
	require.Equal(t, alice.ID, created.OwnerID)
}

func TestCreateTodoRejectsEmptyText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, _ := newTodoFixture(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := todos.Create(ctx, alice, text)
		require.Error(t, err)
		require.True(t, service.IsValidation(err))
	}
}

func TestListIsScopedToOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, bob := newTodoFixture(t)

	_, err := todos.Create(ctx, alice, "First")
	require.NoError(t, err)
	_, err = todos.Create(ctx, alice, "Second")
	require.NoError(t, err)
	_, err = todos.Create(ctx, bob, "Bob's thing")
	require.NoError(t, err)

	mine, err := todos.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, todo := range mine {
		require.Equal(t, alice.ID, todo.OwnerID)
	}
}

func TestGetNeverLeaksOtherUsersRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, bob := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	// The owner sees it.
	got, err := todos.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Text)

	// Anyone else gets exactly the absent-record signal.
	_, err = todos.Get(ctx, bob, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMalformedIDBehavesLikeAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, _ := newTodoFixture(t)

	for _, bad := range []string{"123abc", "", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := todos.Get(ctx, alice, bad)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = todos.Delete(ctx, alice, bad)
		require.ErrorIs(t, err, store.ErrNotFound)
	}
}

func TestUpdateCompletedStampsTimestamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, _ := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	yes := true
	updated, err := todos.Update(ctx, alice, created.ID, domain.TodoPatch{Completed: &yes})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	require.Positive(t, *updated.CompletedAt)
}

func TestUpdateIncompleteClearsTimestamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, _ := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	yes := true
	_, err = todos.Update(ctx, alice, created.ID, domain.TodoPatch{Completed: &yes})
	require.NoError(t, err)

	// A text-only patch resolves completed to false and must clear the
	// timestamp even though the caller never mentioned it.
	text := "Buy oat milk"
	updated, err := todos.Update(ctx, alice, created.ID, domain.TodoPatch{Text: &text})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Text)
	require.False(t, updated.Completed)
	require.Nil(t, updated.CompletedAt)
}

func TestUpdateByNonOwnerIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, bob := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	text := "hijacked"
	_, err = todos.Update(ctx, bob, created.ID, domain.TodoPatch{Text: &text})
	require.ErrorIs(t, err, store.ErrNotFound)

	// Unchanged for the owner.
	got, err := todos.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Text)
}

func TestDeleteReturnsDeletedDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	todos, alice, bob := newTodoFixture(t)

	created, err := todos.Create(ctx, alice, "Buy milk")
	require.NoError(t, err)

	_, err = todos.Delete(ctx, bob, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := todos.Delete(ctx, alice, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	_, err = todos.Get(ctx, alice, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
