package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	todohttp "github.com/tickbox/tickbox/internal/todo/http"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store/drivers/memory"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/jwtx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

/*
 * Common helpers for handler tests. Each test spins up a full router
 * over the in-memory store, so requests exercise the real middleware
 * chain, auth resolution and status mapping end to end.
 */

const (
	testTokenHeader = "x-auth"
	testSecret      = "handler-test-secret"

	// low bcrypt cost keeps the suite fast
	testCost = 4

	aliceEmail    = "alice@example.com"
	alicePassword = "correct horse"
	bobEmail      = "bob@example.com"
	bobPassword   = "battery staple"
)

// TestMain raises the rate limit profiles before any router is built.
// Tests issue many rapid requests from the same client, which would
// otherwise trip the strict production defaults.
func TestMain(m *testing.M) {
	relaxed := httpx.RateLimitConfig{
		RequestsPerWindow: 10000,
		Window:            time.Minute,
		Burst:             10000,
	}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed

	os.Exit(m.Run())
}

// newTestServer builds a router over a fresh in-memory store and serves
// it via httptest. The server is torn down with the test.
func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	st := memory.NewStore()

	codec, err := jwtx.NewCodec(testSecret)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{
		Service: "todod",
		Env:     "test",
		Level:   "error",
		Format:  "json",
	})

	router := todohttp.NewRouter(testTokenHeader, "test", st, logger)
	router.UserService = &service.UserService{Store: st, Codec: codec, Cost: testCost}
	router.TodoService = &service.TodoService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, st
}

// doJSON sends a request with an optional JSON body and auth token and
// returns the response. The response body is read and the connection
// released before returning.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(testTokenHeader, token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, raw
}

// registerUser signs up a user and returns the issued token and the
// user id from the response body.
func registerUser(t *testing.T, srv *httptest.Server, email, password string) (token, userID string) {
	t.Helper()

	resp, raw := doJSON(t, srv, http.MethodPost, "/users", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "register should succeed: %s", raw)

	token = resp.Header.Get(testTokenHeader)
	require.NotEmpty(t, token, "register should issue a token")

	var body struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.ID)

	return token, body.ID
}

// createTodo creates a todo for the token's owner and returns its id.
func createTodo(t *testing.T, srv *httptest.Server, token, text string) string {
	t.Helper()

	resp, raw := doJSON(t, srv, http.MethodPost, "/todos", token, map[string]string{"text": text})
	require.Equal(t, http.StatusOK, resp.StatusCode, "create todo should succeed: %s", raw)

	var body struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.ID)

	return body.ID
}
