package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

// ValidationError lists every rejected field. It matches ErrInvalidInput.
type ValidationError struct {
	Fields model.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func validationError(fields model.FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: model.FieldErrors{field: message}}
}

// storeError maps repository failures onto the service error taxonomy.
func storeError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s with the same name already exists", ErrConflict, entity)
	case errors.Is(err, repository.ErrReferenced):
		return fmt.Errorf("%w: %s is referenced by other records", ErrConflict, entity)
	case errors.Is(err, repository.ErrStaleStatus):
		return fmt.Errorf("%w: %s was changed by another request", ErrConflict, entity)
	case errors.Is(err, repository.ErrNumberTaken):
		return fmt.Errorf("%w: %s number already taken", ErrConflict, entity)
	}
	return err
}
