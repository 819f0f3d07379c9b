package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Policy define las reglas de complejidad de contraseñas.
type Policy struct {
	MinLength    int
	MaxLength    int
	RequireUpper bool
	RequireDigit bool
	// Symbols es el set de caracteres especiales aceptados; vacío = no se exige.
	Symbols string
}

// DefaultPolicy: 8..64, una mayúscula, un número y un especial de @$!%*?&.
var DefaultPolicy = Policy{MinLength: 8, MaxLength: 64, RequireUpper: true, RequireDigit: true, Symbols: "@$!%*?&"}

// Validate devuelve los motivos de rechazo; ok=true si no hay ninguno.
func (p Policy) Validate(s string) (ok bool, reasons []string) {
	n := utf8.RuneCountInString(s)
	if n < p.MinLength {
		reasons = append(reasons, "too_short")
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		reasons = append(reasons, "too_long")
	}
	var hasU, hasD bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasU = true
		case unicode.IsDigit(r):
			hasD = true
		}
	}
	if p.RequireUpper && !hasU {
		reasons = append(reasons, "missing_upper")
	}
	if p.RequireDigit && !hasD {
		reasons = append(reasons, "missing_digit")
	}
	if p.Symbols != "" && !strings.ContainsAny(s, p.Symbols) {
		reasons = append(reasons, "missing_symbol")
	}
	return len(reasons) == 0, reasons
}
