package repository

import (
	"context"
	"time"
)

// ApartmentContractCount es un apartamento con la cantidad de contratos que lo referencian.
type ApartmentContractCount struct {
	Apartment
	NumberOfContracts int64
}

// ContractDetail es un contrato con los datos visibles de su apartamento.
type ContractDetail struct {
	Contract
	ApartmentNumber string
	ApartmentLevel  string
}

// ContractRef es la proyección de contrato embebida en un pago enriquecido.
type ContractRef struct {
	ID        string
	StartDate time.Time
	Active    bool
}

// EnrichedPayment es un pago con su contrato.
type EnrichedPayment struct {
	Payment
	Contract ContractRef
}

// PaymentStats agrupa los pagos de un contrato.
type PaymentStats struct {
	ContractID    string
	TotalPayments int64
	TotalAmount   float64
	AvgAmount     float64
}

// PendingPayment es un pago impago o de un contrato inactivo.
type PendingPayment struct {
	Payment
	ContractActive bool
}

// ReportRepository resuelve las vistas derivadas que cruzan colecciones.
// Ninguna operación muta estado.
type ReportRepository interface {
	ApartmentsWithContractCount(ctx context.Context, p Page) ([]ApartmentContractCount, error)
	ContractWithApartment(ctx context.Context, contractID string) (*ContractDetail, error)
	// SearchContracts busca (case-insensitive) por dueño o número de apartamento.
	SearchContracts(ctx context.Context, term string, p Page) ([]ContractDetail, error)
	PaymentsWithContract(ctx context.Context, contractID string, p Page) ([]EnrichedPayment, error)
	// PaymentStats agrupa por contrato; contractID vacío = todos.
	PaymentStats(ctx context.Context, contractID string, p Page) ([]PaymentStats, error)
	PendingPayments(ctx context.Context, p Page) ([]PendingPayment, error)
	// PendingMaintenanceCount cuenta mantenimientos con status pending del apartamento.
	PendingMaintenanceCount(ctx context.Context, apartmentID string) (int64, error)
}
