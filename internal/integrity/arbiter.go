// Package integrity decide si un borrado de Apartment o Contract es físico
// o se degrada a desactivación porque existen registros dependientes.
package integrity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/metrics"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"golang.org/x/sync/errgroup"
)

// Acciones posibles de un borrado arbitrado.
const (
	ActionDeleted     = "deleted"
	ActionDeactivated = "deactivated"
)

// Decision es el resultado de un borrado arbitrado.
type Decision struct {
	Action         string `json:"action"`
	DependentCount int64  `json:"dependent_count,omitempty"`
}

// Deps son los repositorios que el árbitro consulta y muta.
type Deps struct {
	Apartments  repository.ApartmentRepository
	Contracts   repository.ContractRepository
	Maintenance repository.MaintenanceRepository
	Payments    repository.PaymentRepository
	Audit       *audit.Trail
}

// Arbiter aplica la política de borrado. No hay transacción entre la
// cuenta de dependientes y la escritura: dos borrados concurrentes pueden
// cruzarse y gana la última escritura.
type Arbiter struct {
	apartments  repository.ApartmentRepository
	contracts   repository.ContractRepository
	maintenance repository.MaintenanceRepository
	payments    repository.PaymentRepository
	audit       *audit.Trail
}

func New(d Deps) *Arbiter {
	return &Arbiter{
		apartments:  d.Apartments,
		contracts:   d.Contracts,
		maintenance: d.Maintenance,
		payments:    d.Payments,
		audit:       d.Audit,
	}
}

// target abstrae lo que cambia entre entidades: cómo se resuelve, cómo se
// cuentan sus dependientes y cómo se desactiva o elimina.
type target struct {
	entity     string
	resolve    func(ctx context.Context) error
	dependents func(ctx context.Context) (int64, error)
	deactivate func(ctx context.Context) error
	remove     func(ctx context.Context) error
}

// DeleteApartment borra el departamento o lo desactiva si tiene contratos.
func (a *Arbiter) DeleteApartment(ctx context.Context, actorID, id string) (Decision, error) {
	return a.arbitrate(ctx, actorID, id, target{
		entity: "apartment",
		resolve: func(ctx context.Context) error {
			_, err := a.apartments.GetByID(ctx, id)
			return err
		},
		dependents: func(ctx context.Context) (int64, error) {
			return a.contracts.CountByApartment(ctx, id)
		},
		deactivate: func(ctx context.Context) error {
			return a.apartments.SetStatus(ctx, id, repository.StatusInactive)
		},
		remove: func(ctx context.Context) error { return a.apartments.Delete(ctx, id) },
	})
}

// DeleteContract borra el contrato o lo desactiva si tiene mantenimientos o pagos.
func (a *Arbiter) DeleteContract(ctx context.Context, actorID, id string) (Decision, error) {
	return a.arbitrate(ctx, actorID, id, target{
		entity: "contract",
		resolve: func(ctx context.Context) error {
			_, err := a.contracts.GetByID(ctx, id)
			return err
		},
		dependents: a.contractDependents(id),
		deactivate: func(ctx context.Context) error {
			return a.contracts.SetStatus(ctx, id, repository.StatusInactive)
		},
		remove: func(ctx context.Context) error { return a.contracts.Delete(ctx, id) },
	})
}

func (a *Arbiter) contractDependents(id string) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		var maint, pays int64
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			n, err := a.maintenance.CountByContract(gctx, id)
			maint = n
			return err
		})
		g.Go(func() error {
			n, err := a.payments.CountByContract(gctx, id)
			pays = n
			return err
		})
		if err := g.Wait(); err != nil {
			return 0, err
		}
		return maint + pays, nil
	}
}

func (a *Arbiter) arbitrate(ctx context.Context, actorID, id string, t target) (Decision, error) {
	log := logger.From(ctx).With(logger.Component("integrity"), logger.Entity(t.entity), logger.EntityID(id))

	if err := t.resolve(ctx); err != nil {
		return Decision{}, fmt.Errorf("resolve %s: %w", t.entity, err)
	}

	n, err := t.dependents(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("count %s dependents: %w", t.entity, err)
	}

	var d Decision
	if n > 0 {
		if err := t.deactivate(ctx); err != nil {
			return Decision{}, fmt.Errorf("deactivate %s: %w", t.entity, err)
		}
		d = Decision{Action: ActionDeactivated, DependentCount: n}
	} else {
		if err := t.remove(ctx); err != nil {
			// Otro borrado ganó la carrera entre la cuenta y el delete.
			if errors.Is(err, repository.ErrNotFound) {
				log.Debug("target vanished before delete")
			}
			return Decision{}, fmt.Errorf("delete %s: %w", t.entity, err)
		}
		d = Decision{Action: ActionDeleted}
	}

	metrics.IntegrityDecisions.WithLabelValues(t.entity, d.Action).Inc()
	log.Info("arbitrated delete", logger.Action(d.Action), logger.Count(d.DependentCount), logger.UserID(actorID))

	kind := audit.KindDeleted
	if d.Action == ActionDeactivated {
		kind = audit.KindDeactivated
	}
	a.audit.Record(ctx, audit.NewEvent(kind, actorID, t.entity, id, map[string]any{"dependent_count": d.DependentCount}))
	return d, nil
}
