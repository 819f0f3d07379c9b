package repository

import (
	"context"
	"time"
)

// Payment es un pago de un contrato. El dueño es el dueño del contrato.
type Payment struct {
	ID              string
	ContractID      string
	Cost            float64
	PaidAt          time.Time
	PaymentMethodID string
	IsPaid          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentFilter filtra listados de pagos.
type PaymentFilter struct {
	Scope      Scope
	ContractID string
	IsPaid     *bool
}

// PaymentRepository persiste pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (*Payment, error)
	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, f PaymentFilter, p Page) ([]Payment, error)
	Update(ctx context.Context, p Payment) (*Payment, error)
	// CountByContract cuenta pagos que referencian el contrato.
	CountByContract(ctx context.Context, contractID string) (int64, error)
}
