package contracts

import (
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/http/dto"
)

// CreateContractRequest para POST /contracts. Fechas YYYY-MM-DD o RFC3339.
type CreateContractRequest struct {
	OwnerUserID string `json:"owner_user_id"`
	ApartmentID string `json:"apartment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      *bool  `json:"active,omitempty"`
}

// UpdateContractRequest para PUT /contracts/{id}
type UpdateContractRequest struct {
	OwnerUserID *string `json:"owner_user_id,omitempty"`
	ApartmentID *string `json:"apartment_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type ContractResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	ApartmentID string    `json:"apartment_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DetailResponse es el contrato con los datos de su apartamento.
type DetailResponse struct {
	ContractResponse
	ApartmentNumber string `json:"apartment_number"`
	ApartmentLevel  string `json:"apartment_level"`
}

func FromContract(c *repository.Contract) ContractResponse {
	return ContractResponse{
		ID:          c.ID,
		OwnerUserID: c.OwnerUserID,
		ApartmentID: c.ApartmentID,
		StartDate:   dto.FormatDate(c.StartDate),
		EndDate:     dto.FormatDate(c.EndDate),
		Status:      string(c.Status),
		Active:      c.Status.Active(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromContracts(list []repository.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(list))
	for i := range list {
		out = append(out, FromContract(&list[i]))
	}
	return out
}

func FromDetail(d *repository.ContractDetail) DetailResponse {
	return DetailResponse{
		ContractResponse: FromContract(&d.Contract),
		ApartmentNumber:  d.ApartmentNumber,
		ApartmentLevel:   d.ApartmentLevel,
	}
}

func FromDetails(list []repository.ContractDetail) []DetailResponse {
	out := make([]DetailResponse, 0, len(list))
	for i := range list {
		out = append(out, FromDetail(&list[i]))
	}
	return out
}
