package handlers

import (
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateCredentials(c CredentialsRequest) []ValidationError {
	errs := []ValidationError{}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, ValidationError{Field: "email", Description: "Email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, ValidationError{Field: "email", Description: "Email is not valid"})
	}
	if c.Password == "" {
		errs = append(errs, ValidationError{Field: "password", Description: "Password is required"})
	}
	return errs
}
