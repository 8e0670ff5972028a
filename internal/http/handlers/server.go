package handlers

import (
	"context"
	"log/slog"

	"github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
)

// DashboardLoader produces one statistics snapshot per call.
type DashboardLoader interface {
	Load(ctx context.Context) (dashboard.Snapshot, error)
}

type Sessions interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// Server holds the collaborators shared by every handler.
type Server struct {
	dashboard DashboardLoader
	store     repo.Store
	sessions  Sessions
	log       *slog.Logger
}

func NewServer(d DashboardLoader, store repo.Store, sessions Sessions, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{dashboard: d, store: store, sessions: sessions, log: log}
}
