// Package validation contiene las reglas de campo compartidas por services y adapters.
// Todas devuelven *repository.ValidationError, así el mapeo HTTP es uniforme.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

var (
	// Forma string canónica de un ObjectID.
	idRe          = regexp.MustCompile(`^[0-9a-f]{24}$`)
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	fullNameRe    = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ' -]+$`)
	descriptionRe = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÑáéíóúñ -]+$`)
)

// ID valida un identificador externo antes de tocar el store.
func ID(field, v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if !idRe.MatchString(v) {
		return "", repository.Invalid(field, "malformed identifier")
	}
	return v, nil
}

// ApartmentNumber normaliza (trim + lower) y valida largo 1..10.
func ApartmentNumber(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n := utf8.RuneCountInString(v); n < 1 || n > 10 {
		return "", repository.Invalid("number", "must have 1 to 10 characters")
	}
	return v, nil
}

// Level valida el nivel del edificio (1..10 caracteres).
func Level(v string) (string, error) {
	v = strings.TrimSpace(v)
	if n := utf8.RuneCountInString(v); n < 1 || n > 10 {
		return "", repository.Invalid("level", "must have 1 to 10 characters")
	}
	return v, nil
}

// Email valida el formato y lo devuelve en minúsculas.
func Email(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !emailRe.MatchString(v) {
		return "", repository.Invalid("email", "malformed email")
	}
	return strings.ToLower(v), nil
}

// FullName acepta letras (incluye acentos), apóstrofes, espacios y guiones.
func FullName(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || utf8.RuneCountInString(v) > 120 || !fullNameRe.MatchString(v) {
		return "", repository.Invalid("full_name", "only letters, spaces, apostrophes and hyphens")
	}
	return v, nil
}

// Description valida la descripción de un tipo de mantenimiento.
func Description(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || utf8.RuneCountInString(v) > 60 || !descriptionRe.MatchString(v) {
		return "", repository.Invalid("description", "only letters, spaces and hyphens (max 60)")
	}
	return v, nil
}

// PositiveAmount exige un monto > 0.
func PositiveAmount(field string, v float64) error {
	if !(v > 0) {
		return repository.Invalid(field, "must be greater than 0")
	}
	return nil
}

// Date acepta YYYY-MM-DD o RFC3339 y devuelve el inicio del día en UTC.
func Date(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return StartOfDay(t), nil
	}
	return time.Time{}, repository.Invalid(field, "expected YYYY-MM-DD")
}

// StartOfDay trunca un instante al inicio de su día calendario en UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange exige start <= end.
func DateRange(start, end time.Time) error {
	if start.After(end) {
		return repository.Invalid("end_date", "must not be before start_date")
	}
	return nil
}

// Instant acepta RFC3339 o YYYY-MM-DD (inicio del día) y devuelve UTC.
func Instant(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, repository.Invalid(field, "expected RFC3339 timestamp or YYYY-MM-DD")
}

// Required exige un valor no vacío y lo devuelve sin espacios.
func Required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", repository.Invalid(field, "required")
	}
	return v, nil
}
