package repository

import (
	"context"
	"time"
)

// MaintenanceStatus es el estado de trabajo de un mantenimiento.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Valid indica si el estado es uno de los conocidos.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// MaintenanceType es el catálogo de trabajos con su costo base.
type MaintenanceType struct {
	ID          string
	Description string
	BaseCost    float64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Maintenance es un trabajo sobre un apartamento bajo un contrato.
// El dueño es el dueño del contrato referenciado.
type Maintenance struct {
	ID                string
	ApartmentID       string
	ContractID        string
	MaintenanceTypeID string
	Cost              float64
	OccurredAt        time.Time
	Status            MaintenanceStatus
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MaintenanceFilter filtra listados. Scope es obligatorio (pre-filtrado por dueño).
type MaintenanceFilter struct {
	Scope       Scope
	ApartmentID string
	Status      MaintenanceStatus
}

// MaintenanceRepository persiste mantenimientos.
type MaintenanceRepository interface {
	Create(ctx context.Context, m Maintenance) (*Maintenance, error)
	GetByID(ctx context.Context, id string) (*Maintenance, error)
	List(ctx context.Context, f MaintenanceFilter, p Page) ([]Maintenance, error)
	Update(ctx context.Context, m Maintenance) (*Maintenance, error)
	// CountByContract cuenta mantenimientos que referencian el contrato.
	CountByContract(ctx context.Context, contractID string) (int64, error)
}

// MaintenanceTypeRepository persiste el catálogo de tipos.
type MaintenanceTypeRepository interface {
	Create(ctx context.Context, t MaintenanceType) (*MaintenanceType, error)
	// GetByID devuelve el tipo aunque esté inactivo; el service decide.
	GetByID(ctx context.Context, id string) (*MaintenanceType, error)
	// GetByDescription compara sin distinguir mayúsculas.
	GetByDescription(ctx context.Context, description string) (*MaintenanceType, error)
	ListActive(ctx context.Context, p Page) ([]MaintenanceType, error)
	Update(ctx context.Context, t MaintenanceType) (*MaintenanceType, error)
}
