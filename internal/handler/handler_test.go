package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/handler"
	"github.com/adventuresync/server/internal/notify"
	"github.com/adventuresync/server/internal/paypal"
	"github.com/adventuresync/server/internal/repository/memstore"
	"github.com/adventuresync/server/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-1"

// memBlobStore keeps payloads in a map for tests.
type memBlobStore struct {
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.blobs[key] = data
	return int64(len(data)), nil
}

type nopReadSeekCloser struct{ *bytes.Reader }

func (nopReadSeekCloser) Close() error { return nil }

func (m *memBlobStore) Open(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return nopReadSeekCloser{bytes.NewReader(data)}, nil
}

func (m *memBlobStore) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

type testEnv struct {
	srv   *httptest.Server
	store *memstore.Store
	hub   *notify.Hub
	auth  *service.AuthService
}

// newTestEnv wires the full route set over an empty store, the way main
// does, with fast bcrypt and a roomy rate limit.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.New()
	hub := notify.NewHub()
	blobs := newMemBlobStore()

	authService := service.NewAuthService(store.Users(), testJWTSecret, 4)
	userService := service.NewUserService(store.Users())
	eventService := service.NewEventService(store.Events(), store.UserEvents())
	fileService := service.NewFileService(store.Files(), store.Users(), blobs)
	paymentService := service.NewPaymentService(store.Payments(), store.Users(), hub)
	budgetService := service.NewBudgetService(store.Budgets())
	statsService := service.NewStatsService(
		store.Users(), store.Events(), store.UserEvents(),
		store.Files(), store.Payments(), store.Budgets(),
	)

	limiter := service.NewAttemptLimiter(100, 100)
	t.Cleanup(limiter.Stop)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService, statsService),
		Event:   handler.NewEventHandler(eventService),
		File:    handler.NewFileHandler(fileService),
		Payment: handler.NewPaymentHandler(paymentService),
		Budget:  handler.NewBudgetHandler(budgetService),
		Metrics: handler.NewMetricsHandler(statsService),
		Admin:   handler.NewAdminHandler(store, 4),
		PayPal:  handler.NewPayPalHandler(paypal.Disabled{}),
		WS:      handler.NewWSHandler(authService, hub),
	}, authService, store.Users(), limiter)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: store, hub: hub, auth: authService}
}

// postJSON sends a JSON POST, optionally with a bearer token, and decodes
// the response body into a generic map.
func (e *testEnv) postJSON(t *testing.T, path, token string, body any) (int, map[string]any) {
	t.Helper()
	return e.doJSON(t, http.MethodPost, path, token, body)
}

func (e *testEnv) getJSON(t *testing.T, path, token string) (int, map[string]any) {
	t.Helper()
	return e.doJSON(t, http.MethodGet, path, token, nil)
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, payload)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates an account through the API and returns its
// session token.
func (e *testEnv) registerAndLogin(t *testing.T, username, email string) string {
	t.Helper()

	status, body := e.postJSON(t, "/api/v1/auth/register", "", map[string]any{
		"username":        username,
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
		"name":            "Test User",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("register: expected token in response")
	}
	return token
}
