package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
	"github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/pdv-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pdv-dashboard/internal/logger"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/rogerio-castellano/pdv-dashboard/internal/seed"
	"github.com/shopspring/decimal"
)

const (
	adminEmail    = "admin@pdv.local"
	adminPassword = "secret123"
)

var seedTime = time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)

// failingStore answers every read with an outage.
type failingStore struct{}

func (failingStore) Count(_ context.Context, q repo.Query) (int, error) {
	return 0, &repo.StoreError{Kind: repo.Unavailable, Op: "count", Collection: q.Collection, Err: fmt.Errorf("connection refused")}
}

func (failingStore) List(_ context.Context, q repo.Query) ([]repo.Row, error) {
	return nil, &repo.StoreError{Kind: repo.Unavailable, Op: "list", Collection: q.Collection, Err: fmt.Errorf("connection refused")}
}

type app struct {
	router  http.Handler
	limiter *rl.Limiter
}

func demoStore(t *testing.T) *repo.InMemoryStore {
	t.Helper()
	store := repo.NewInMemoryStore()
	if err := seed.Demo(store, seedTime); err != nil {
		t.Fatalf("seed demo data: %v", err)
	}
	return store
}

func newApp(t *testing.T, store repo.Store, limiter *rl.Limiter) app {
	t.Helper()
	log := logger.Discard()

	users := repo.NewInMemoryUserRepository()
	if err := seed.Admin(t.Context(), users, adminEmail, adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	sessions := auth.NewService(users, auth.NewTokenIssuer("test-secret", time.Hour), auth.NewInMemoryRevoker())
	agg := dashboard.NewAggregator(store, dashboard.DefaultConfig(), log)

	r := router.NewRouter(router.Options{
		Server:  handlers.NewServer(agg, store, sessions, log),
		Auth:    sessions,
		Limiter: limiter,
		Metrics: true,
		Log:     log,
	})
	return app{router: r, limiter: limiter}
}

func login(r http.Handler, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handlers.CredentialsRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func generateToken(t *testing.T, r http.Handler) string {
	t.Helper()
	w := login(r, adminEmail, adminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var resp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("token decoding failed: %v", err)
	}
	return resp.Token
}

func authorized(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
