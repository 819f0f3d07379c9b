// Package idp integra el proveedor de identidad que valida credenciales en
// el login y registra cuentas nuevas. Hay dos implementaciones: Firebase
// (Identity Toolkit REST) y local (hash bcrypt guardado en el store).
package idp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

var (
	// ErrInvalidCredentials: email o password incorrectos (o cuenta deshabilitada en el IdP).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists: el IdP ya tiene una cuenta con ese email.
	ErrEmailExists = errors.New("email already registered")
)

// Identity es lo que devuelve el IdP tras un sign-in o sign-up.
type Identity struct {
	UID   string
	Email string
}

// Provider valida y registra credenciales.
type Provider interface {
	Name() string
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) (Identity, error)
}

// Config selecciona y parametriza el provider.
type Config struct {
	Kind           string // local | firebase
	FirebaseAPIKey string
	FirebaseURL    string
}

// New construye el provider configurado.
func New(cfg Config, users repository.UserRepository) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", "local":
		return NewLocal(users), nil
	case "firebase":
		return NewFirebase(cfg.FirebaseURL, cfg.FirebaseAPIKey)
	default:
		return nil, fmt.Errorf("idp: unknown provider %q", cfg.Kind)
	}
}
