// Package payments contiene los pagos: listados por dueño, vista pública y
// operaciones sobre un contrato.
package payments

import (
	"context"
	"time"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/payments"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

const entity = "payment"

// PaymentService define las operaciones sobre pagos.
type PaymentService interface {
	List(ctx context.Context, p *authz.Principal, isPaid *bool, page repository.Page) ([]dto.PaymentResponse, error)
	// PublicList no aplica filtro de dueño.
	PublicList(ctx context.Context, isPaid *bool, page repository.Page) ([]dto.PaymentResponse, error)
	ListByContract(ctx context.Context, p *authz.Principal, contractID string, page repository.Page) ([]dto.PaymentResponse, error)
	Get(ctx context.Context, p *authz.Principal, id string) (*dto.PaymentResponse, error)
	GetForContract(ctx context.Context, p *authz.Principal, contractID, paymentID string) (*dto.PaymentResponse, error)
	Create(ctx context.Context, p *authz.Principal, contractID string, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Payments  repository.PaymentRepository
	Contracts repository.ContractRepository
	Guard     *authz.Guard
	Audit     *audit.Trail
	// Now se reemplaza en tests.
	Now func() time.Time
}

type paymentService struct {
	deps Deps
}

func NewPaymentService(d Deps) PaymentService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &paymentService{deps: d}
}

func (s *paymentService) List(ctx context.Context, p *authz.Principal, isPaid *bool, page repository.Page) ([]dto.PaymentResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	scope, err := s.deps.Guard.Scope(ctx, p)
	if err != nil {
		return nil, err
	}
	if scope.Empty() {
		return []dto.PaymentResponse{}, nil
	}
	list, err := s.deps.Payments.List(ctx, repository.PaymentFilter{Scope: scope, IsPaid: isPaid}, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromPayments(list), nil
}

func (s *paymentService) PublicList(ctx context.Context, isPaid *bool, page repository.Page) ([]dto.PaymentResponse, error) {
	f := repository.PaymentFilter{Scope: repository.Scope{All: true}, IsPaid: isPaid}
	list, err := s.deps.Payments.List(ctx, f, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromPayments(list), nil
}

// gate valida el contrato y aplica el guard por ID.
func (s *paymentService) gate(ctx context.Context, p *authz.Principal, contractID string) (string, error) {
	if err := authz.RequireActive(p); err != nil {
		return "", err
	}
	id, err := validation.ID("contract_id", contractID)
	if err != nil {
		return "", err
	}
	d, err := s.deps.Guard.CanAccessContractID(ctx, p, id)
	if err != nil {
		return "", err
	}
	return id, d.Err()
}

func (s *paymentService) ListByContract(ctx context.Context, p *authz.Principal, contractID string, page repository.Page) ([]dto.PaymentResponse, error) {
	id, err := s.gate(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	f := repository.PaymentFilter{Scope: repository.Scope{ContractIDs: []string{id}}, ContractID: id}
	list, err := s.deps.Payments.List(ctx, f, page.Bounded())
	if err != nil {
		return nil, err
	}
	return dto.FromPayments(list), nil
}

// load resuelve el pago y aplica el guard vía su contrato.
func (s *paymentService) load(ctx context.Context, p *authz.Principal, id string) (*repository.Payment, error) {
	id, err := validation.ID("id", id)
	if err != nil {
		return nil, err
	}
	pay, err := s.deps.Payments.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) && !p.IsAdmin {
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	d, err := s.deps.Guard.CanAccessPayment(ctx, p, pay)
	if err != nil {
		return nil, err
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *paymentService) Get(ctx context.Context, p *authz.Principal, id string) (*dto.PaymentResponse, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	pay, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromPayment(pay)
	return &out, nil
}

// GetForContract exige que el pago pertenezca al contrato de la ruta.
func (s *paymentService) GetForContract(ctx context.Context, p *authz.Principal, contractID, paymentID string) (*dto.PaymentResponse, error) {
	cid, err := s.gate(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	pid, err := validation.ID("payment_id", paymentID)
	if err != nil {
		return nil, err
	}
	pay, err := s.deps.Payments.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if pay.ContractID != cid {
		return nil, repository.ErrNotFound
	}
	out := dto.FromPayment(pay)
	return &out, nil
}

func (s *paymentService) Create(ctx context.Context, p *authz.Principal, contractID string, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	cid, err := validation.ID("contract_id", contractID)
	if err != nil {
		return nil, err
	}
	if err := validation.PositiveAmount("cost", req.Cost); err != nil {
		return nil, err
	}
	method, err := validation.Required("payment_method_id", req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	pay := repository.Payment{
		ContractID:      cid,
		Cost:            req.Cost,
		PaidAt:          s.deps.Now().UTC(),
		PaymentMethodID: method,
		IsPaid:          true,
	}
	if req.PaidAt != "" {
		if pay.PaidAt, err = validation.Instant("paid_at", req.PaidAt); err != nil {
			return nil, err
		}
	}
	if req.IsPaid != nil {
		pay.IsPaid = *req.IsPaid
	}

	if _, err := s.deps.Contracts.GetByID(ctx, cid); err != nil {
		return nil, err
	}

	created, err := s.deps.Payments.Create(ctx, pay)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindCreated, p.SubjectID, entity, created.ID, map[string]any{
		"contract_id": cid,
		"cost":        created.Cost,
	}))
	out := dto.FromPayment(created)
	return &out, nil
}

func (s *paymentService) Update(ctx context.Context, p *authz.Principal, id string, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return nil, err
	}
	pay, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if req.Cost != nil {
		if err := validation.PositiveAmount("cost", *req.Cost); err != nil {
			return nil, err
		}
		pay.Cost = *req.Cost
	}
	if req.PaidAt != nil {
		if pay.PaidAt, err = validation.Instant("paid_at", *req.PaidAt); err != nil {
			return nil, err
		}
	}
	if req.PaymentMethodID != nil {
		if pay.PaymentMethodID, err = validation.Required("payment_method_id", *req.PaymentMethodID); err != nil {
			return nil, err
		}
	}
	if req.IsPaid != nil {
		pay.IsPaid = *req.IsPaid
	}

	pay, err = s.deps.Payments.Update(ctx, *pay)
	if err != nil {
		return nil, err
	}
	s.deps.Audit.Record(ctx, audit.NewEvent(audit.KindUpdated, p.SubjectID, entity, pay.ID, nil))
	out := dto.FromPayment(pay)
	return &out, nil
}
