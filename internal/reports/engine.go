// Package reports expone las vistas derivadas (joins, estadísticas, umbral de
// mantenimiento) aplicando el gate de rol y de propiedad antes de cada consulta.
// Los joins en sí los resuelve repository.ReportRepository en cada adapter.
package reports

import (
	"context"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

// Deps agrupa lo que necesita el engine.
type Deps struct {
	Reports    repository.ReportRepository
	Apartments repository.ApartmentRepository
	Guard      *authz.Guard
	// MaxPageSize acota cualquier página recibida (<= 0 usa repository.MaxLimit).
	MaxPageSize int
}

type Engine struct {
	reports    repository.ReportRepository
	apartments repository.ApartmentRepository
	guard      *authz.Guard
	maxPage    int
}

func New(d Deps) *Engine {
	maxPage := d.MaxPageSize
	if maxPage <= 0 || maxPage > repository.MaxLimit {
		maxPage = repository.MaxLimit
	}
	return &Engine{reports: d.Reports, apartments: d.Apartments, guard: d.Guard, maxPage: maxPage}
}

func (e *Engine) bound(p repository.Page) repository.Page {
	p = p.Bounded()
	if p.Limit > e.maxPage {
		p.Limit = e.maxPage
	}
	return p
}

// ApartmentsWithContractCount lista cada apartamento con su cantidad de contratos. Solo admin.
func (e *Engine) ApartmentsWithContractCount(ctx context.Context, p *authz.Principal, page repository.Page) ([]repository.ApartmentContractCount, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return e.reports.ApartmentsWithContractCount(ctx, e.bound(page))
}

// ContractDetail devuelve el contrato con los datos de su apartamento.
func (e *Engine) ContractDetail(ctx context.Context, p *authz.Principal, contractID string) (*repository.ContractDetail, error) {
	id, err := e.gateContract(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	return e.reports.ContractWithApartment(ctx, id)
}

// SearchContracts busca por dueño o número de apartamento. Solo admin.
func (e *Engine) SearchContracts(ctx context.Context, p *authz.Principal, term string, page repository.Page) ([]repository.ContractDetail, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return e.reports.SearchContracts(ctx, term, e.bound(page))
}

// PaymentsWithContract devuelve los pagos del contrato enriquecidos con el contrato.
func (e *Engine) PaymentsWithContract(ctx context.Context, p *authz.Principal, contractID string, page repository.Page) ([]repository.EnrichedPayment, error) {
	id, err := e.gateContract(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	return e.reports.PaymentsWithContract(ctx, id, e.bound(page))
}

// ContractPaymentStats devuelve las estadísticas de un contrato. Un contrato
// sin pagos devuelve ceros.
func (e *Engine) ContractPaymentStats(ctx context.Context, p *authz.Principal, contractID string) (repository.PaymentStats, error) {
	id, err := e.gateContract(ctx, p, contractID)
	if err != nil {
		return repository.PaymentStats{}, err
	}
	stats, err := e.reports.PaymentStats(ctx, id, repository.Page{Limit: 1})
	if err != nil {
		return repository.PaymentStats{}, err
	}
	if len(stats) == 0 {
		return repository.PaymentStats{ContractID: id}, nil
	}
	return stats[0], nil
}

// PaymentStats agrupa los pagos de todos los contratos. Solo admin.
func (e *Engine) PaymentStats(ctx context.Context, p *authz.Principal, page repository.Page) ([]repository.PaymentStats, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return e.reports.PaymentStats(ctx, "", e.bound(page))
}

// PendingPayments lista pagos impagos o de contratos inactivos. Solo admin.
func (e *Engine) PendingPayments(ctx context.Context, p *authz.Principal, page repository.Page) ([]repository.PendingPayment, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	return e.reports.PendingPayments(ctx, e.bound(page))
}

// gateContract valida el id y aplica el guard de propiedad.
func (e *Engine) gateContract(ctx context.Context, p *authz.Principal, contractID string) (string, error) {
	if err := authz.RequireActive(p); err != nil {
		return "", err
	}
	id, err := validation.ID("contract_id", contractID)
	if err != nil {
		return "", err
	}
	d, err := e.guard.CanAccessContractID(ctx, p, id)
	if err != nil {
		return "", err
	}
	if err := d.Err(); err != nil {
		return "", err
	}
	return id, nil
}
