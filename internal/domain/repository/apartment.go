package repository

import (
	"context"
	"time"
)

// Apartment es una unidad alquilable. Number se guarda normalizado (trim + lower).
type Apartment struct {
	ID        string
	Number    string
	Level     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApartmentFilter filtra el listado público.
type ApartmentFilter struct {
	Status *Status
}

// ApartmentRepository persiste apartamentos.
type ApartmentRepository interface {
	Create(ctx context.Context, a Apartment) (*Apartment, error)
	GetByID(ctx context.Context, id string) (*Apartment, error)
	// GetByNumber busca por número ya normalizado.
	GetByNumber(ctx context.Context, number string) (*Apartment, error)
	List(ctx context.Context, f ApartmentFilter, p Page) ([]Apartment, error)
	Update(ctx context.Context, a Apartment) (*Apartment, error)
	SetStatus(ctx context.Context, id string, s Status) error
	Delete(ctx context.Context, id string) error
}
