package maintenance

import (
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// CreateMaintenanceRequest para POST /maintenances. Sin cost se usa el base_cost del tipo.
type CreateMaintenanceRequest struct {
	ApartmentID       string   `json:"apartment_id"`
	ContractID        string   `json:"contract_id"`
	MaintenanceTypeID string   `json:"maintenance_type_id"`
	Cost              *float64 `json:"cost,omitempty"`
	OccurredAt        string   `json:"occurred_at,omitempty"`
	Status            string   `json:"status,omitempty"`
}

// UpdateMaintenanceRequest para PUT /maintenances/{id}
type UpdateMaintenanceRequest struct {
	ApartmentID       *string  `json:"apartment_id,omitempty"`
	ContractID        *string  `json:"contract_id,omitempty"`
	MaintenanceTypeID *string  `json:"maintenance_type_id,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	OccurredAt        *string  `json:"occurred_at,omitempty"`
	Status            *string  `json:"status,omitempty"`
	Active            *bool    `json:"active,omitempty"`
}

type MaintenanceResponse struct {
	ID                string    `json:"id"`
	ApartmentID       string    `json:"apartment_id"`
	ContractID        string    `json:"contract_id"`
	MaintenanceTypeID string    `json:"maintenance_type_id"`
	Cost              float64   `json:"cost"`
	OccurredAt        time.Time `json:"occurred_at"`
	Status            string    `json:"status"`
	Active            bool      `json:"active"`
}

// CreateTypeRequest para POST /maintenance_types
type CreateTypeRequest struct {
	Description string  `json:"description"`
	BaseCost    float64 `json:"base_cost"`
}

// UpdateTypeRequest para PUT /maintenance_types/{id}
type UpdateTypeRequest struct {
	Description *string  `json:"description,omitempty"`
	BaseCost    *float64 `json:"base_cost,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type TypeResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	BaseCost    float64 `json:"base_cost"`
	Active      bool    `json:"active"`
}

func FromMaintenance(m *repository.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:                m.ID,
		ApartmentID:       m.ApartmentID,
		ContractID:        m.ContractID,
		MaintenanceTypeID: m.MaintenanceTypeID,
		Cost:              m.Cost,
		OccurredAt:        m.OccurredAt,
		Status:            string(m.Status),
		Active:            m.Active,
	}
}

func FromMaintenances(list []repository.Maintenance) []MaintenanceResponse {
	out := make([]MaintenanceResponse, 0, len(list))
	for i := range list {
		out = append(out, FromMaintenance(&list[i]))
	}
	return out
}

func FromType(t *repository.MaintenanceType) TypeResponse {
	return TypeResponse{ID: t.ID, Description: t.Description, BaseCost: t.BaseCost, Active: t.Active}
}

func FromTypes(list []repository.MaintenanceType) []TypeResponse {
	out := make([]TypeResponse, 0, len(list))
	for i := range list {
		out = append(out, FromType(&list[i]))
	}
	return out
}
