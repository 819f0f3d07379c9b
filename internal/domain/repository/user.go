package repository

import (
	"context"
	"time"
)

// User es una cuenta del sistema. PasswordHash nunca sale de la capa de servicio.
type User struct {
	ID           string
	FullName     string
	Email        string
	IsActive     bool
	IsAdmin      bool
	PasswordHash string
	// ProviderUID es el ID asignado por el identity provider externo.
	ProviderUID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRepository persiste usuarios.
type UserRepository interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail compara el email normalizado (lower).
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u User) (*User, error)
}
