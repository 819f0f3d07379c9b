package apartments

import (
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// CreateApartmentRequest para POST /apartments
type CreateApartmentRequest struct {
	Number string `json:"number"`
	Level  string `json:"level"`
	Active *bool  `json:"active,omitempty"` // default true
}

// UpdateApartmentRequest para PUT /apartments/{id}
type UpdateApartmentRequest struct {
	Number *string `json:"number,omitempty"`
	Level  *string `json:"level,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type ApartmentResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Level     string    `json:"level"`
	Status    string    `json:"status"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResponse para GET /apartments
type ListResponse struct {
	Apartments []ApartmentResponse `json:"apartments"`
	Skip       int                 `json:"skip"`
	Limit      int                 `json:"limit"`
}

func FromApartment(a *repository.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:        a.ID,
		Number:    a.Number,
		Level:     a.Level,
		Status:    string(a.Status),
		Active:    a.Status.Active(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromApartments(list []repository.Apartment) []ApartmentResponse {
	out := make([]ApartmentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromApartment(&list[i]))
	}
	return out
}
