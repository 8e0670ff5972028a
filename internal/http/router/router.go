package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/pdv-dashboard/internal/docs"
	"github.com/rogerio-castellano/pdv-dashboard/internal/http/handlers"
	mw "github.com/rogerio-castellano/pdv-dashboard/internal/http/middleware"
	rl "github.com/rogerio-castellano/pdv-dashboard/internal/http/rate_limiter"
)

type Options struct {
	Server  *handlers.Server
	Auth    mw.Authenticator
	Limiter *rl.Limiter
	Metrics bool
	Log     *slog.Logger
}

func NewRouter(o Options) http.Handler {
	if o.Log == nil {
		o.Log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if o.Limiter != nil {
		r.Use(o.Limiter.Middleware)
	}

	r.Get("/health", handlers.HealthHandler)
	if o.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Post("/login", o.Server.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(o.Auth, o.Log))
		r.Post("/logout", o.Server.LogoutHandler)
		r.Get("/dashboard", o.Server.GetDashboardHandler)
		r.Get("/dashboard/export", o.Server.ExportDashboardHandler)
	})

	return r
}
