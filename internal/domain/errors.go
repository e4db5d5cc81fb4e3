package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("dados inválidos")
	ErrPersistence    = errors.New("falha ao gravar os registros")
	ErrOfficeNotFound = errors.New("escritório não encontrado")
)

// ValidationError indica uma entrada rejeitada antes de qualquer alteração de estado
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

// PersistenceError indica que a gravação falhou e a memória não foi alterada
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
