// Package apartments contiene el CRUD de apartamentos y su borrado arbitrado.
package apartments

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/cache"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/apartments"
	"github.com/dropDatabas3/alquiler/internal/integrity"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const entity = "apartment"

// ApartmentService define las operaciones sobre apartamentos.
type ApartmentService interface {
	// List y Get son públicos.
	List(ctx context.Context, status *repository.Status, page repository.Page) (*dto.ListResponse, error)
	Get(ctx context.Context, id string) (*dto.ApartmentResponse, error)
	Create(ctx context.Context, p *authz.Principal, req dto.CreateApartmentRequest) (*dto.ApartmentResponse, error)
	Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateApartmentRequest) (*dto.ApartmentResponse, error)
	Delete(ctx context.Context, p *authz.Principal, id string) (integrity.Decision, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Apartments repository.ApartmentRepository
	Arbiter    *integrity.Arbiter
	Listing    *cache.Listing // nil = sin cache
	Audit      *audit.Trail
}

type apartmentService struct {
	deps Deps
}

func NewApartmentService(d Deps) ApartmentService {
	return &apartmentService{deps: d}
}

func (s *apartmentService) List(ctx context.Context, status *repository.Status, page repository.Page) (*dto.ListResponse, error) {
	page = page.Bounded()
	var st any
	if status != nil {
		st = string(*status)
	}
	variant := cache.Variant(st, page.Skip, page.Limit)

	var cached dto.ListResponse
	gen, hit := s.deps.Listing.Load(ctx, variant, &cached)
	if hit {
		return &cached, nil
	}

	list, err := s.deps.Apartments.List(ctx, repository.ApartmentFilter{Status: status}, page)
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse{Apartments: dto.FromApartments(list), Skip: page.Skip, Limit: page.Limit}
	if err := s.deps.Listing.Store(ctx, gen, variant, out); err != nil {
		logger.From(ctx).Warn("apartment listing not cached",
			logger.Layer("service"), logger.Component("apartments"), logger.Err(err))
	}
	return out, nil
}

func (s *apartmentService) Get(ctx context.Context, id string) (*dto.ApartmentResponse, error) {
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	a, err := s.deps.Apartments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromApartment(a)
	return &out, nil
}

// numberTaken aplica la unicidad de número sobre el valor ya normalizado.
func (s *apartmentService) numberTaken(ctx context.Context, number, exceptID string) error {
	a, err := s.deps.Apartments.GetByNumber(ctx, number)
	switch {
	case repository.IsNotFound(err):
		return nil
	case err != nil:
		return err
	case a.ID != exceptID:
		return fmt.Errorf("apartment number %q: %w", number, repository.ErrConflict)
	}
	return nil
}

func (s *apartmentService) Create(ctx context.Context, p *authz.Principal, req dto.CreateApartmentRequest) (*dto.ApartmentResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	number, err := validation.ApartmentNumber(req.Number)
	if err != nil {
		return nil, err
	}
	level, err := validation.Level(req.Level)
	if err != nil {
		return nil, err
	}
	if err := s.numberTaken(ctx, number, ""); err != nil {
		return nil, err
	}

	status := repository.StatusActive
	if req.Active != nil {
		status = repository.StatusOf(*req.Active)
	}
	a, err := s.deps.Apartments.Create(ctx, repository.Apartment{Number: number, Level: level, Status: status})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, p, audit.KindCreated, a.ID)
	out := dto.FromApartment(a)
	return &out, nil
}

func (s *apartmentService) Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateApartmentRequest) (*dto.ApartmentResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	a, err := s.deps.Apartments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Number != nil {
		number, err := validation.ApartmentNumber(*req.Number)
		if err != nil {
			return nil, err
		}
		if err := s.numberTaken(ctx, number, a.ID); err != nil {
			return nil, err
		}
		a.Number = number
	}
	if req.Level != nil {
		level, err := validation.Level(*req.Level)
		if err != nil {
			return nil, err
		}
		a.Level = level
	}
	if req.Active != nil {
		a.Status = repository.StatusOf(*req.Active)
	}

	a, err = s.deps.Apartments.Update(ctx, *a)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, p, audit.KindUpdated, a.ID)
	out := dto.FromApartment(a)
	return &out, nil
}

func (s *apartmentService) Delete(ctx context.Context, p *authz.Principal, id string) (integrity.Decision, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return integrity.Decision{}, err
	}
	id, err := validation.ID("id", id)
	if err != nil {
		return integrity.Decision{}, err
	}
	d, err := s.deps.Arbiter.DeleteApartment(ctx, p.SubjectID, id)
	if err != nil {
		return integrity.Decision{}, err
	}
	s.bump(ctx)
	return d, nil
}

func (s *apartmentService) changed(ctx context.Context, p *authz.Principal, kind, id string) {
	s.deps.Audit.Record(ctx, audit.NewEvent(kind, p.SubjectID, entity, id, nil))
	s.bump(ctx)
}

// bump invalida el listado público cacheado.
func (s *apartmentService) bump(ctx context.Context) {
	if _, err := s.deps.Listing.Bump(ctx); err != nil {
		logger.From(ctx).Warn("apartment listing not invalidated",
			logger.Layer("service"), logger.Component("apartments"), logger.Err(err))
	}
}
