package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// Decision es el resultado del guard de propiedad.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Err convierte Deny en repository.ErrForbidden sin exponer el motivo.
func (d Decision) Err() error {
	if d == Allow {
		return nil
	}
	return repository.ErrForbidden
}

// ContractLookup es lo que el guard necesita del repositorio de contratos.
type ContractLookup interface {
	GetByID(ctx context.Context, id string) (*repository.Contract, error)
	IDsByOwner(ctx context.Context, ownerUserID string) ([]string, error)
}

// Guard restringe a los no-admin a los registros que les pertenecen
// (directa o transitivamente vía contrato).
type Guard struct {
	contracts ContractLookup
}

func NewGuard(contracts ContractLookup) *Guard { return &Guard{contracts: contracts} }

// CanAccessContract es pura: no consulta el store.
func (g *Guard) CanAccessContract(p *Principal, c *repository.Contract) Decision {
	if p == nil || c == nil {
		return Deny
	}
	if p.IsAdmin {
		return Allow
	}
	return Decision(p.SubjectID != "" && c.OwnerUserID == p.SubjectID)
}

// CanAccessMaintenance resuelve el contrato del mantenimiento; si no existe, Deny.
func (g *Guard) CanAccessMaintenance(ctx context.Context, p *Principal, m *repository.Maintenance) (Decision, error) {
	if p == nil || m == nil {
		return Deny, nil
	}
	if p.IsAdmin {
		return Allow, nil
	}
	return g.viaContract(ctx, p, m.ContractID)
}

// CanAccessPayment resuelve el contrato del pago; si no existe, Deny.
// La referencia ya llega normalizada a su forma string por el adapter.
func (g *Guard) CanAccessPayment(ctx context.Context, p *Principal, pay *repository.Payment) (Decision, error) {
	if p == nil || pay == nil {
		return Deny, nil
	}
	if p.IsAdmin {
		return Allow, nil
	}
	return g.viaContract(ctx, p, pay.ContractID)
}

// CanAccessContractID es la variante por ID (rutas /contracts/{id}/...).
func (g *Guard) CanAccessContractID(ctx context.Context, p *Principal, contractID string) (Decision, error) {
	if p == nil {
		return Deny, nil
	}
	if p.IsAdmin {
		return Allow, nil
	}
	return g.viaContract(ctx, p, contractID)
}

func (g *Guard) viaContract(ctx context.Context, p *Principal, contractID string) (Decision, error) {
	if contractID == "" {
		return Deny, nil
	}
	c, err := g.contracts.GetByID(ctx, contractID)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
		return Deny, nil
	}
	if err != nil {
		return Deny, fmt.Errorf("resolve contract owner: %w", err)
	}
	return g.CanAccessContract(p, c), nil
}

// Scope calcula el subconjunto de contratos visible para listados.
// Admin ve todo; el resto solo sus contratos (pre-filtrado, nunca post-hoc).
func (g *Guard) Scope(ctx context.Context, p *Principal) (repository.Scope, error) {
	if p == nil {
		return repository.Scope{}, nil
	}
	if p.IsAdmin {
		return repository.Scope{All: true}, nil
	}
	ids, err := g.contracts.IDsByOwner(ctx, p.SubjectID)
	if err != nil {
		return repository.Scope{}, fmt.Errorf("owned contracts: %w", err)
	}
	return repository.Scope{ContractIDs: ids}, nil
}

// ContractFilter fuerza el dueño en el filtro de contratos para no-admin.
func (g *Guard) ContractFilter(p *Principal, f repository.ContractFilter) repository.ContractFilter {
	if p != nil && !p.IsAdmin {
		f.OwnerUserID = p.SubjectID
	}
	return f
}
