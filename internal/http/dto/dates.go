// Package dto agrupa formatos compartidos por los DTOs de cada dominio.
package dto

import "time"

// DateLayout es el formato de fecha calendario en requests y responses.
const DateLayout = "2006-01-02"

// FormatDate renderiza un instante de inicio de día como fecha calendario.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
