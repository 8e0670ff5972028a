package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
	mw "github.com/rogerio-castellano/pdv-dashboard/internal/http/middleware"
)

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} ValidationErrorsResult "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateCredentials(creds); len(errs) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, ValidationErrorsResult{Errors: errs})
		return
	}

	token, err := s.sessions.Login(r.Context(), creds.Email, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		s.log.Error("login failed", "err", err)
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token}); err != nil {
		s.log.Warn("failed to write JSON response", "err", err)
	}
}

// LogoutHandler godoc
// @Summary Revoke the current token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MessageResult
// @Failure 401 {string} string "Unauthorized"
// @Router /logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Logout(r.Context(), mw.GetToken(r))
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenRevoked) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		s.log.Error("logout failed", "err", err)
		http.Error(w, "could not revoke token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, MessageResult{Message: "logged out"}); err != nil {
		s.log.Warn("failed to write JSON response", "err", err)
	}
}
