// Package authz resuelve el contexto de autenticación y decide el acceso a
// registros: guards de rol (RequireActive, RequireAdmin) y el guard de
// propiedad sobre contratos, mantenimientos y pagos.
package authz

import (
	"errors"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
)

// ErrInactiveAccount: el token es válido pero la cuenta está desactivada.
var ErrInactiveAccount = errors.New("inactive account")

// Principal es el contexto de autenticación de un request.
// Se pasa explícitamente a cada operación protegida.
type Principal struct {
	SubjectID string
	Email     string
	FullName  string
	IsAdmin   bool
	IsActive  bool
	ExpiresAt time.Time
}

// RequireActive falla si no hay principal o la cuenta está inactiva.
func RequireActive(p *Principal) error {
	if p == nil || p.SubjectID == "" {
		return jwtx.ErrTokenMissing
	}
	if !p.IsActive {
		return ErrInactiveAccount
	}
	return nil
}

// RequireAdmin agrega el chequeo de rol sobre RequireActive.
func RequireAdmin(p *Principal) error {
	if err := RequireActive(p); err != nil {
		return err
	}
	if !p.IsAdmin {
		return repository.ErrForbidden
	}
	return nil
}
