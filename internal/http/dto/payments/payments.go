package payments

import (
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// CreatePaymentRequest para POST /contracts/{id}/payments
type CreatePaymentRequest struct {
	Cost            float64 `json:"cost"`
	PaidAt          string  `json:"paid_at,omitempty"` // default ahora
	PaymentMethodID string  `json:"payment_method_id"`
	IsPaid          *bool   `json:"is_paid,omitempty"` // default true
}

// UpdatePaymentRequest para PUT /payments/{id}. El contrato no se puede cambiar.
type UpdatePaymentRequest struct {
	Cost            *float64 `json:"cost,omitempty"`
	PaidAt          *string  `json:"paid_at,omitempty"`
	PaymentMethodID *string  `json:"payment_method_id,omitempty"`
	IsPaid          *bool    `json:"is_paid,omitempty"`
}

type PaymentResponse struct {
	ID              string    `json:"id"`
	ContractID      string    `json:"contract_id"`
	Cost            float64   `json:"cost"`
	PaidAt          time.Time `json:"paid_at"`
	PaymentMethodID string    `json:"payment_method_id"`
	IsPaid          bool      `json:"is_paid"`
}

func FromPayment(p *repository.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		ContractID:      p.ContractID,
		Cost:            p.Cost,
		PaidAt:          p.PaidAt,
		PaymentMethodID: p.PaymentMethodID,
		IsPaid:          p.IsPaid,
	}
}

func FromPayments(list []repository.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromPayment(&list[i]))
	}
	return out
}
