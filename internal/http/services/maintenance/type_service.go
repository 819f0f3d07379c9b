package maintenance

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/maintenance"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const typeEntity = "maintenance_type"

// TypeService define las operaciones del catálogo de tipos.
type TypeService interface {
	List(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.TypeResponse, error)
	Get(ctx context.Context, p *authz.Principal, id string) (*dto.TypeResponse, error)
	Create(ctx context.Context, p *authz.Principal, req dto.CreateTypeRequest) (*dto.TypeResponse, error)
	Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateTypeRequest) (*dto.TypeResponse, error)
	Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.TypeResponse, error)
}

type typeService struct {
	types repository.MaintenanceTypeRepository
	audit *audit.Trail
}

func NewTypeService(d Deps) TypeService {
	return &typeService{types: d.Types, audit: d.Audit}
}

func (s *typeService) List(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.TypeResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	list, err := s.types.ListActive(ctx, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromTypes(list), nil
}

// Get solo devuelve tipos activos.
func (s *typeService) Get(ctx context.Context, p *authz.Principal, id string) (*dto.TypeResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	t, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, repository.ErrNotFound
	}
	out := dto.FromType(t)
	return &out, nil
}

func (s *typeService) byID(ctx context.Context, id string) (*repository.MaintenanceType, error) {
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	return s.types.GetByID(ctx, id)
}

func (s *typeService) descriptionTaken(ctx context.Context, description, exceptID string) error {
	t, err := s.types.GetByDescription(ctx, description)
	switch {
	case repository.IsNotFound(err):
		return nil
	case err != nil:
		return err
	case t.ID != exceptID:
		return fmt.Errorf("maintenance type %q: %w", description, repository.ErrConflict)
	}
	return nil
}

func (s *typeService) Create(ctx context.Context, p *authz.Principal, req dto.CreateTypeRequest) (*dto.TypeResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	desc, err := validation.Description(req.Description)
	if err != nil {
		return nil, err
	}
	if err := validation.PositiveAmount("base_cost", req.BaseCost); err != nil {
		return nil, err
	}
	if err := s.descriptionTaken(ctx, desc, ""); err != nil {
		return nil, err
	}
	t, err := s.types.Create(ctx, repository.MaintenanceType{Description: desc, BaseCost: req.BaseCost, Active: true})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.NewEvent(audit.KindCreated, p.SubjectID, typeEntity, t.ID, nil))
	out := dto.FromType(t)
	return &out, nil
}

func (s *typeService) Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateTypeRequest) (*dto.TypeResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	t, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		desc, err := validation.Description(*req.Description)
		if err != nil {
			return nil, err
		}
		if err := s.descriptionTaken(ctx, desc, t.ID); err != nil {
			return nil, err
		}
		t.Description = desc
	}
	if req.BaseCost != nil {
		if err := validation.PositiveAmount("base_cost", *req.BaseCost); err != nil {
			return nil, err
		}
		t.BaseCost = *req.BaseCost
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	t, err = s.types.Update(ctx, *t)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.NewEvent(audit.KindUpdated, p.SubjectID, typeEntity, t.ID, nil))
	out := dto.FromType(t)
	return &out, nil
}

func (s *typeService) Deactivate(ctx context.Context, p *authz.Principal, id string) (*dto.TypeResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	t, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Active = false
	t, err = s.types.Update(ctx, *t)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.NewEvent(audit.KindDeactivated, p.SubjectID, typeEntity, t.ID, nil))
	out := dto.FromType(t)
	return &out, nil
}
