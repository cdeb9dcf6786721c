package services

import (
	"errors"
	"fmt"
)

// Error variables
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrBadPassword        = errors.New("invalid password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrForbidden          = errors.New("only the author can change this recipe")
	ErrPersistence        = errors.New("storage failure")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
