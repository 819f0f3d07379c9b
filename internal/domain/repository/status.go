package repository

import "strings"

// Status es el estado de ciclo de vida de Apartment y Contract.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus acepta "active"/"inactive" y los booleanos "true"/"false".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "true", "1":
		return StatusActive, nil
	case "inactive", "false", "0":
		return StatusInactive, nil
	}
	return "", Invalid("status", "must be active or inactive")
}

func (s Status) Active() bool { return s == StatusActive }

// StatusOf traduce un flag booleano.
func StatusOf(active bool) Status {
	if active {
		return StatusActive
	}
	return StatusInactive
}

// Scope es el subconjunto de contratos visible para un listado.
// All=true no filtra; caso contrario solo ContractIDs (vacío = nada visible).
type Scope struct {
	All         bool
	ContractIDs []string
}

// Contains indica si el contrato cae dentro del scope.
func (s Scope) Contains(contractID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.ContractIDs {
		if id == contractID {
			return true
		}
	}
	return false
}

// Empty indica que el scope no puede devolver registros.
func (s Scope) Empty() bool { return !s.All && len(s.ContractIDs) == 0 }
