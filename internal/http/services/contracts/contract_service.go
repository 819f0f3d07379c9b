// Package contracts contiene el CRUD de contratos con guard de propiedad
// y borrado arbitrado.
package contracts

import (
	"context"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/contracts"
	"github.com/dropDatabas3/alquiler/internal/integrity"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const entity = "contract"

// ContractService define las operaciones sobre contratos.
type ContractService interface {
	List(ctx context.Context, p *authz.Principal, status *repository.Status, page repository.Page) ([]dto.ContractResponse, error)
	Get(ctx context.Context, p *authz.Principal, id string) (*dto.ContractResponse, error)
	Create(ctx context.Context, p *authz.Principal, req dto.CreateContractRequest) (*dto.ContractResponse, error)
	Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error)
	Delete(ctx context.Context, p *authz.Principal, id string) (integrity.Decision, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Contracts  repository.ContractRepository
	Apartments repository.ApartmentRepository
	Users      repository.UserRepository
	Guard      *authz.Guard
	Arbiter    *integrity.Arbiter
	Audit      *audit.Trail
}

type contractService struct {
	deps Deps
}

func NewContractService(d Deps) ContractService {
	return &contractService{deps: d}
}

// List pre-filtra por dueño para no-admin.
func (s *contractService) List(ctx context.Context, p *authz.Principal, status *repository.Status, page repository.Page) ([]dto.ContractResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	f := s.deps.Guard.ContractFilter(p, repository.ContractFilter{Status: status})
	list, err := s.deps.Contracts.List(ctx, f, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromContracts(list), nil
}

// load resuelve el contrato y aplica el guard. Para no-admin un contrato
// inexistente es indistinguible de uno ajeno.
func (s *contractService) load(ctx context.Context, p *authz.Principal, id string) (*repository.Contract, error) {
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	c, err := s.deps.Contracts.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) && !p.IsAdmin {
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	if err := s.deps.Guard.CanAccessContract(p, c).Err(); err != nil {
		logger.From(ctx).Debug("contract access denied",
			logger.Layer("service"), logger.Component("contracts"), logger.ContractID(id))
		return nil, err
	}
	return c, nil
}

func (s *contractService) Get(ctx context.Context, p *authz.Principal, id string) (*dto.ContractResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromContract(c)
	return &out, nil
}

// references valida que el apartamento y el dueño existan.
func (s *contractService) references(ctx context.Context, c *repository.Contract) error {
	if _, err := s.deps.Apartments.GetByID(ctx, c.ApartmentID); err != nil {
		if repository.IsNotFound(err) {
			return repository.Invalid("apartment_id", "apartment does not exist")
		}
		return err
	}
	if _, err := s.deps.Users.GetByID(ctx, c.OwnerUserID); err != nil {
		if repository.IsNotFound(err) {
			return repository.Invalid("owner_user_id", "user does not exist")
		}
		return err
	}
	return nil
}

func (s *contractService) Create(ctx context.Context, p *authz.Principal, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	c := repository.Contract{Status: repository.StatusActive}
	var err error
	if c.OwnerUserID, err = validation.ID("owner_user_id", req.OwnerUserID); err != nil {
		return nil, err
	}
	if c.ApartmentID, err = validation.ID("apartment_id", req.ApartmentID); err != nil {
		return nil, err
	}
	if c.StartDate, err = validation.Date("start_date", req.StartDate); err != nil {
		return nil, err
	}
	if c.EndDate, err = validation.Date("end_date", req.EndDate); err != nil {
		return nil, err
	}
	if err := validation.DateRange(c.StartDate, c.EndDate); err != nil {
		return nil, err
	}
	if req.Active != nil {
		c.Status = repository.StatusOf(*req.Active)
	}
	if err := s.references(ctx, &c); err != nil {
		return nil, err
	}

	created, err := s.deps.Contracts.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindCreated, p.SubjectID, entity, created.ID, map[string]any{
		"apartment_id": created.ApartmentID,
		"owner":        created.OwnerUserID,
	}))
	out := dto.FromContract(created)
	return &out, nil
}

func (s *contractService) Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	refs := false
	if req.OwnerUserID != nil {
		if c.OwnerUserID, err = validation.ID("owner_user_id", *req.OwnerUserID); err != nil {
			return nil, err
		}
		refs = true
	}
	if req.ApartmentID != nil {
		if c.ApartmentID, err = validation.ID("apartment_id", *req.ApartmentID); err != nil {
			return nil, err
		}
		refs = true
	}
	if req.StartDate != nil {
		if c.StartDate, err = validation.Date("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if c.EndDate, err = validation.Date("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validation.DateRange(c.StartDate, c.EndDate); err != nil {
		return nil, err
	}
	if req.Active != nil {
		c.Status = repository.StatusOf(*req.Active)
	}
	if refs {
		if err := s.references(ctx, c); err != nil {
			return nil, err
		}
	}

	c, err = s.deps.Contracts.Update(ctx, *c)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindUpdated, p.SubjectID, entity, c.ID, nil))
	out := dto.FromContract(c)
	return &out, nil
}

func (s *contractService) Delete(ctx context.Context, p *authz.Principal, id string) (integrity.Decision, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return integrity.Decision{}, err
	}
	id, err := validation.ID("id", id)
	if err != nil {
		return integrity.Decision{}, err
	}
	return s.deps.Arbiter.DeleteContract(ctx, p.SubjectID, id)
}
