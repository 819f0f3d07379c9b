package repository

import (
	"context"
	"time"
)

// Contract vincula un usuario (dueño) con un apartamento.
// StartDate y EndDate son instantes de inicio de día en UTC.
type Contract struct {
	ID          string
	OwnerUserID string
	ApartmentID string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContractFilter filtra listados de contratos.
type ContractFilter struct {
	// OwnerUserID vacío = todos los dueños.
	OwnerUserID string
	ApartmentID string
	Status      *Status
}

// ContractRepository persiste contratos.
type ContractRepository interface {
	Create(ctx context.Context, c Contract) (*Contract, error)
	GetByID(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, f ContractFilter, p Page) ([]Contract, error)
	Update(ctx context.Context, c Contract) (*Contract, error)
	SetStatus(ctx context.Context, id string, s Status) error
	Delete(ctx context.Context, id string) error

	// CountByApartment cuenta contratos que referencian el apartamento.
	CountByApartment(ctx context.Context, apartmentID string) (int64, error)
	// IDsByOwner devuelve los IDs de todos los contratos del usuario.
	IDsByOwner(ctx context.Context, ownerUserID string) ([]string, error)
}
