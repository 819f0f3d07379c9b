package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que el registro no existe al momento de la búsqueda.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica una violación de unicidad.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica datos de entrada o documentos malformados.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indica que el principal no puede operar sobre el registro.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indica que el store no respondió o el round trip falló.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError describe qué campo falló y por qué.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Unavailable envuelve una falla del driver como ErrUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalidInput) }
