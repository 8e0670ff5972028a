package handlers

import "github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type ValidationErrorsResult struct {
	Errors []ValidationError `json:"errors"`
}

// DashboardResponse is what the dashboard screen renders. User is only echoed
// back for display.
type DashboardResponse struct {
	User    string             `json:"user"`
	PdvName string             `json:"pdv_name"`
	Stats   dashboard.Snapshot `json:"stats"`
}
