// Package maintenance contiene los mantenimientos (con guard de propiedad
// vía contrato) y el catálogo de tipos.
package maintenance

import (
	"context"
	"time"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/maintenance"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const entity = "maintenance"

// MaintenanceService define las operaciones sobre mantenimientos.
type MaintenanceService interface {
	List(ctx context.Context, p *authz.Principal, apartmentID, status string, page repository.Page) ([]dto.MaintenanceResponse, error)
	Get(ctx context.Context, p *authz.Principal, id string) (*dto.MaintenanceResponse, error)
	Create(ctx context.Context, p *authz.Principal, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.MaintenanceResponse, error)
}

// Deps contiene las dependencias de los services de mantenimiento.
type Deps struct {
	Maintenance repository.MaintenanceRepository
	Types       repository.MaintenanceTypeRepository
	Contracts   repository.ContractRepository
	Guard       *authz.Guard
	Audit       *audit.Trail
	// Now se reemplaza en tests.
	Now func() time.Time
}

type maintenanceService struct {
	deps Deps
}

func NewMaintenanceService(d Deps) MaintenanceService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &maintenanceService{deps: d}
}

func parseStatus(v string) (repository.MaintenanceStatus, error) {
	s := repository.MaintenanceStatus(v)
	if !s.Valid() {
		return "", repository.Invalid("status", "must be pending, in_progress, completed or cancelled")
	}
	return s, nil
}

func (s *maintenanceService) List(ctx context.Context, p *authz.Principal, apartmentID, status string, page repository.Page) ([]dto.MaintenanceResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	f := repository.MaintenanceFilter{}
	var err error
	if apartmentID != "" {
		if f.ApartmentID, err = validation.ID("apartment_id", apartmentID); err != nil {
			return nil, err
		}
	}
	if status != "" {
		if f.Status, err = parseStatus(status); err != nil {
			return nil, err
		}
	}
	if f.Scope, err = s.deps.Guard.Scope(ctx, p); err != nil {
		return nil, err
	}
	if f.Scope.Empty() {
		return []dto.MaintenanceResponse{}, nil
	}
	list, err := s.deps.Maintenance.List(ctx, f, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromMaintenances(list), nil
}

func (s *maintenanceService) load(ctx context.Context, p *authz.Principal, id string) (*repository.Maintenance, error) {
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	m, err := s.deps.Maintenance.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) && !p.IsAdmin {
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	d, err := s.deps.Guard.CanAccessMaintenance(ctx, p, m)
	if err != nil {
		return nil, err
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *maintenanceService) Get(ctx context.Context, p *authz.Principal, id string) (*dto.MaintenanceResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	m, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromMaintenance(m)
	return &out, nil
}

// activeType devuelve el tipo solo si existe y está activo.
func (s *maintenanceService) activeType(ctx context.Context, id string) (*repository.MaintenanceType, error) {
	t, err := s.deps.Types.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, repository.Invalid("maintenance_type_id", "unknown or inactive maintenance type")
		}
		return nil, err
	}
	if !t.Active {
		return nil, repository.Invalid("maintenance_type_id", "unknown or inactive maintenance type")
	}
	return t, nil
}

// checkContract exige que el contrato exista y sea del mismo apartamento.
func (s *maintenanceService) checkContract(ctx context.Context, m *repository.Maintenance) error {
	c, err := s.deps.Contracts.GetByID(ctx, m.ContractID)
	if err != nil {
		if repository.IsNotFound(err) {
			return repository.Invalid("contract_id", "contract does not exist")
		}
		return err
	}
	if c.ApartmentID != m.ApartmentID {
		return repository.Invalid("apartment_id", "does not match the contract apartment")
	}
	return nil
}

func (s *maintenanceService) Create(ctx context.Context, p *authz.Principal, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	m := repository.Maintenance{
		Status:     repository.MaintenancePending,
		Active:     true,
		OccurredAt: s.deps.Now().UTC(),
	}
	var err error
	if m.ApartmentID, err = validation.ID("apartment_id", req.ApartmentID); err != nil {
		return nil, err
	}
	if m.ContractID, err = validation.ID("contract_id", req.ContractID); err != nil {
		return nil, err
	}
	if m.MaintenanceTypeID, err = validation.ID("maintenance_type_id", req.MaintenanceTypeID); err != nil {
		return nil, err
	}
	if req.OccurredAt != "" {
		if m.OccurredAt, err = validation.Instant("occurred_at", req.OccurredAt); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if m.Status, err = parseStatus(req.Status); err != nil {
			return nil, err
		}
	}
	if req.Cost != nil {
		if err := validation.PositiveAmount("cost", *req.Cost); err != nil {
			return nil, err
		}
	}

	t, err := s.activeType(ctx, m.MaintenanceTypeID)
	if err != nil {
		return nil, err
	}
	m.Cost = t.BaseCost
	if req.Cost != nil {
		m.Cost = *req.Cost
	}
	if err := s.checkContract(ctx, &m); err != nil {
		return nil, err
	}

	created, err := s.deps.Maintenance.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindCreated, p.SubjectID, entity, created.ID, map[string]any{
		"apartment_id": created.ApartmentID,
		"status":       string(created.Status),
	}))
	out := dto.FromMaintenance(created)
	return &out, nil
}

func (s *maintenanceService) Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	m, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	refs := false
	if req.ApartmentID != nil {
		if m.ApartmentID, err = validation.ID("apartment_id", *req.ApartmentID); err != nil {
			return nil, err
		}
		refs = true
	}
	if req.ContractID != nil {
		if m.ContractID, err = validation.ID("contract_id", *req.ContractID); err != nil {
			return nil, err
		}
		refs = true
	}
	if req.MaintenanceTypeID != nil {
		if m.MaintenanceTypeID, err = validation.ID("maintenance_type_id", *req.MaintenanceTypeID); err != nil {
			return nil, err
		}
		if _, err := s.activeType(ctx, m.MaintenanceTypeID); err != nil {
			return nil, err
		}
	}
	if req.Cost != nil {
		if err := validation.PositiveAmount("cost", *req.Cost); err != nil {
			return nil, err
		}
		m.Cost = *req.Cost
	}
	if req.OccurredAt != nil {
		if m.OccurredAt, err = validation.Instant("occurred_at", *req.OccurredAt); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if m.Status, err = parseStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if refs {
		if err := s.checkContract(ctx, m); err != nil {
			return nil, err
		}
	}

	m, err = s.deps.Maintenance.Update(ctx, *m)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindUpdated, p.SubjectID, entity, m.ID, nil))
	out := dto.FromMaintenance(m)
	return &out, nil
}

// Deactivate marca active=false; un mantenimiento pendiente pasa a cancelled
// para que deje de contar en el umbral.
func (s *maintenanceService) Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.MaintenanceResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	m, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	m.Active = false
	if m.Status == repository.MaintenancePending {
		m.Status = repository.MaintenanceCancelled
	}
	m, err = s.deps.Maintenance.Update(ctx, *m)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindDeactivated, p.SubjectID, entity, m.ID, nil))
	logger.From(ctx).Info("maintenance deactivated",
		logger.Layer("service"), logger.Component("maintenance"), logger.EntityID(m.ID))
	out := dto.FromMaintenance(m)
	return &out, nil
}
