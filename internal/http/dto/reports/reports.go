package reports

import (
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/http/dto"
	aptdto "github.com/dropDatabas3/alquiler/internal/http/dto/apartments"
	paydto "github.com/dropDatabas3/alquiler/internal/http/dto/payments"
	rep "github.com/dropDatabas3/alquiler/internal/reports"
)

// ApartmentContractsResponse es un apartamento con su cantidad de contratos.
type ApartmentContractsResponse struct {
	aptdto.ApartmentResponse
	NumberOfContracts int64 `json:"number_of_contracts"`
}

// ContractRef es el contrato embebido en un pago enriquecido.
type ContractRef struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	Active    bool   `json:"active"`
}

type EnrichedPaymentResponse struct {
	paydto.PaymentResponse
	Contract ContractRef `json:"contract"`
}

type PaymentStatsResponse struct {
	ContractID    string  `json:"contract_id"`
	TotalPayments int64   `json:"total_payments"`
	TotalAmount   float64 `json:"total_amount"`
	AvgAmount     float64 `json:"avg_amount"`
}

type PendingPaymentResponse struct {
	paydto.PaymentResponse
	ContractActive bool `json:"contract_active"`
}

// ThresholdApartment es el detalle de la alerta de mantenimiento.
type ThresholdApartment struct {
	ID           string `json:"id"`
	Number       string `json:"number,omitempty"`
	PendingCount int64  `json:"pending_count"`
}

// ThresholdResponse: con alerta lleva "apartment", sin alerta lleva "pending_count".
type ThresholdResponse struct {
	Alert        bool                `json:"alert"`
	Message      string              `json:"message"`
	Apartment    *ThresholdApartment `json:"apartment,omitempty"`
	PendingCount *int64              `json:"pending_count,omitempty"`
}

func FromApartmentCounts(list []repository.ApartmentContractCount) []ApartmentContractsResponse {
	out := make([]ApartmentContractsResponse, 0, len(list))
	for i := range list {
		out = append(out, ApartmentContractsResponse{
			ApartmentResponse: aptdto.FromApartment(&list[i].Apartment),
			NumberOfContracts: list[i].NumberOfContracts,
		})
	}
	return out
}

func FromEnriched(list []repository.EnrichedPayment) []EnrichedPaymentResponse {
	out := make([]EnrichedPaymentResponse, 0, len(list))
	for i := range list {
		c := list[i].Contract
		out = append(out, EnrichedPaymentResponse{
			PaymentResponse: paydto.FromPayment(&list[i].Payment),
			Contract:        ContractRef{ID: c.ID, StartDate: dto.FormatDate(c.StartDate), Active: c.Active},
		})
	}
	return out
}

func FromStats(s repository.PaymentStats) PaymentStatsResponse {
	return PaymentStatsResponse{
		ContractID:    s.ContractID,
		TotalPayments: s.TotalPayments,
		TotalAmount:   s.TotalAmount,
		AvgAmount:     s.AvgAmount,
	}
}

func FromStatsList(list []repository.PaymentStats) []PaymentStatsResponse {
	out := make([]PaymentStatsResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromStats(s))
	}
	return out
}

func FromPending(list []repository.PendingPayment) []PendingPaymentResponse {
	out := make([]PendingPaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, PendingPaymentResponse{
			PaymentResponse: paydto.FromPayment(&list[i].Payment),
			ContractActive:  list[i].ContractActive,
		})
	}
	return out
}

func FromThreshold(r rep.ThresholdResult) ThresholdResponse {
	if r.Alert {
		return ThresholdResponse{
			Alert:   true,
			Message: r.Message,
			Apartment: &ThresholdApartment{
				ID:           r.ApartmentID,
				Number:       r.Number,
				PendingCount: r.PendingCount,
			},
		}
	}
	n := r.PendingCount
	return ThresholdResponse{Message: r.Message, PendingCount: &n}
}
