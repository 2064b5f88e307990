package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// input failed shape validation
	ErrInvalidEmail    = errors.New("invalid email")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")
	ErrMissingField    = errors.New("email and password are required")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegister checks the signup input shape.
func ValidateRegister(email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrMissingField
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrPasswordTooWeak
	}
	return nil
}

// ValidateLogin checks the login input shape.
func ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrMissingField
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
