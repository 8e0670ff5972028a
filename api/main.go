package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
	"github.com/rogerio-castellano/pdv-dashboard/internal/config"
	"github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/pdv-dashboard/internal/db"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/pdv-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/router"
	"github.com/rogerio-castellano/pdv-dashboard/internal/logger"
	"github.com/rogerio-castellano/pdv-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/rogerio-castellano/pdv-dashboard/internal/seed"
)

// @title PDV Dashboard API
// @version 1.0
// @description Point-of-sale back-office statistics: totals, revenue, recent sales and low-stock products.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the yaml config file")
	flag.Parse()

	if _, err := os.Stat(*configPath); err != nil {
		*configPath = ""
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store repo.Store
		users repo.UserRepository
	)
	switch cfg.Store.Driver {
	case "postgres":
		database, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer database.Close()
		log.Info("db connected")

		if cfg.Postgres.Migrate {
			if err := db.Migrate(ctx, database); err != nil {
				return err
			}
			log.Info("migrations applied")
		}
		store = repo.NewPostgresStore(database)
		users = repo.NewPostgresUserRepository(database)
	default:
		mem := repo.NewInMemoryStore()
		if err := seed.Demo(mem, time.Now().UTC()); err != nil {
			return err
		}
		store = mem
		users = repo.NewInMemoryUserRepository()
		log.Info("using in-memory store with demo data")
	}

	if err := seed.Admin(ctx, users, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}

	var revoker auth.Revoker = auth.NewInMemoryRevoker()
	if cfg.Redis.Addr != "" {
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
		log.Info("redis connected", "addr", cfg.Redis.Addr)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = "dev-only-secret"
		log.Warn("auth.jwt_secret not set, using a development secret")
	}
	sessions := auth.NewService(users, auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL), revoker)

	agg := dashboard.NewAggregator(store, dashboard.Config{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		RecentSalesLimit:  cfg.Dashboard.RecentSalesLimit,
		RevenueMode:       dashboard.RevenueMode(cfg.Dashboard.RevenueMode),
		LoadTimeout:       cfg.Dashboard.LoadTimeout,
	}, log)

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartCleanupLoop(ctx, time.Minute, 5*time.Minute)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: router.NewRouter(router.Options{
			Server:  handlers.NewServer(agg, store, sessions, log),
			Auth:    sessions,
			Limiter: limiter,
			Metrics: cfg.Metrics.Enabled,
			Log:     log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("graceful shutdown complete")
	return nil
}
