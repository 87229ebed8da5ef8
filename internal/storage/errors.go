package storage

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey  = errors.New("запись с таким кодом уже существует")
	ErrNotFound      = errors.New("запись не найдена")
	ErrDuplicateUser = errors.New("пользователь уже существует")
	ErrValidation    = errors.New("ошибка валидации")
)

// ValidationError names the rejected field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
