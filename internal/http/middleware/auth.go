package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
)

type contextKey string

const (
	userEmailKey = contextKey("user_email")
	tokenKey     = contextKey("token")
)

// Authenticator resolves a bearer token to its claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

func AuthMiddleware(sessions Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := sessions.Authenticate(r.Context(), tokenStr)
			switch {
			case errors.Is(err, auth.ErrTokenRevoked):
				http.Error(w, "token revoked", http.StatusUnauthorized)
				return
			case errors.Is(err, auth.ErrInvalidToken):
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			case err != nil:
				log.Error("authenticate request", "err", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userEmailKey, claims.Email)
			ctx = context.WithValue(ctx, tokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserEmail(r *http.Request) string {
	if val, ok := r.Context().Value(userEmailKey).(string); ok {
		return val
	}
	return ""
}

// GetToken returns the bearer token accepted by AuthMiddleware.
func GetToken(r *http.Request) string {
	if val, ok := r.Context().Value(tokenKey).(string); ok {
		return val
	}
	return ""
}
