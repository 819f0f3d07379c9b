package idp

import (
	"context"
	"errors"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/security/password"
)

// Local valida contra el hash bcrypt del usuario en el store.
type Local struct {
	users repository.UserRepository
}

func NewLocal(users repository.UserRepository) *Local { return &Local{users: users} }

func (l *Local) Name() string { return "local" }

func (l *Local) SignIn(ctx context.Context, email, plain string) (Identity, error) {
	u, err := l.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if u.PasswordHash == "" || !password.Verify(plain, u.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{UID: u.ID, Email: u.Email}, nil
}

// SignUp no registra nada: el hash lo persiste el service de usuarios.
func (l *Local) SignUp(_ context.Context, email, _ string) (Identity, error) {
	return Identity{Email: email}, nil
}
