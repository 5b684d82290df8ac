package application

import (
	"errors"
	"fmt"
	"strings"

	"tagmanager/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidInput    = errors.New("invalid input")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError represents a malformed request field
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationFailedError carries the rule violations that stopped a tag from
// being persisted
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a missing (category, id) pair
type NotFoundError struct {
	Category domain.Category
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("category %s not found", e.Category)
	}
	return fmt.Sprintf("tag %s not found in %s", e.ID, e.Category)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError reports an id collision inside one category file
type AlreadyExistsError struct {
	Category domain.Category
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("tag %s already exists in %s", e.ID, e.Category)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}
