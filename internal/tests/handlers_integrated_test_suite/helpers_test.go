package handlers_integrated_test_suite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
	"github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/pdv-dashboard/internal/db"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pdv-dashboard/internal/logger"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/rogerio-castellano/pdv-dashboard/internal/seed"
)

const (
	adminEmail    = "admin@pdv.local"
	adminPassword = "secret123"
)

// setupDB connects to DATABASE_URL, applies migrations and empties every table.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	database, err := db.Connect(t.Context(), dsn)
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.Migrate(t.Context(), database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	const truncate = `TRUNCATE TABLE activity_logs, sale_items, sales, customers, products, categories,
		payment_methods, pdv_settings, users RESTART IDENTITY CASCADE`
	if _, err := database.ExecContext(t.Context(), truncate); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return database
}

func newRouter(t *testing.T, database *sql.DB, cfg dashboard.Config) http.Handler {
	t.Helper()
	log := logger.Discard()

	users := repo.NewPostgresUserRepository(database)
	if err := seed.Admin(t.Context(), users, adminEmail, adminPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	store := repo.NewPostgresStore(database)
	sessions := auth.NewService(users, auth.NewTokenIssuer("test-secret", time.Hour), auth.NewInMemoryRevoker())
	return router.NewRouter(router.Options{
		Server: handlers.NewServer(dashboard.NewAggregator(store, cfg, log), store, sessions, log),
		Auth:   sessions,
		Log:    log,
	})
}

func generateToken(t *testing.T, r http.Handler) string {
	t.Helper()
	body, _ := json.Marshal(handlers.CredentialsRequest{Email: adminEmail, Password: adminPassword})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	var resp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("token decoding failed: %v", err)
	}
	return resp.Token
}

func exec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.ExecContext(t.Context(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func addProduct(t *testing.T, database *sql.DB, name string, stock int, active bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	exec(t, database, `INSERT INTO products (id, name, price, stock_quantity, is_active) VALUES ($1, $2, 9.90, $3, $4)`,
		id, name, stock, active)
	return id
}

func addSale(t *testing.T, database *sql.DB, number, amount string, createdAt time.Time) {
	t.Helper()
	exec(t, database, `INSERT INTO sales (id, sale_number, total_amount, final_amount, payment_method, created_at)
		VALUES ($1, $2, $3, $3, 'PIX', $4)`, uuid.New(), number, amount, createdAt)
}

func addCustomer(t *testing.T, database *sql.DB, name string) {
	t.Helper()
	exec(t, database, `INSERT INTO customers (id, name) VALUES ($1, $2)`, uuid.New(), name)
}
