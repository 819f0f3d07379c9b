// Package reports adapta el engine de reportes a los DTOs HTTP.
package reports

import (
	"context"
	"io"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	ctrdto "github.com/dropDatabas3/alquiler/internal/http/dto/contracts"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/reports"
	rep "github.com/dropDatabas3/alquiler/internal/reports"
)

// ReportService define las vistas derivadas expuestas por HTTP.
type ReportService interface {
	ApartmentsWithContractCount(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.ApartmentContractsResponse, error)
	ContractDetail(ctx context.Context, p *authz.Principal, contractID string) (*ctrdto.DetailResponse, error)
	SearchContracts(ctx context.Context, p *authz.Principal, term string, page repository.Page) ([]ctrdto.DetailResponse, error)
	PaymentsWithContract(ctx context.Context, p *authz.Principal, contractID string, page repository.Page) ([]dto.EnrichedPaymentResponse, error)
	ContractPaymentStats(ctx context.Context, p *authz.Principal, contractID string) (*dto.PaymentStatsResponse, error)
	PaymentStats(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.PaymentStatsResponse, error)
	// ExportPaymentStats escribe las estadísticas como workbook xlsx.
	ExportPaymentStats(ctx context.Context, p *authz.Principal, page repository.Page, w io.Writer) error
	PendingPayments(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.PendingPaymentResponse, error)
	CheckMaintenance(ctx context.Context, p *authz.Principal, apartmentID string) (*dto.ThresholdResponse, error)
}

type reportService struct {
	engine *rep.Engine
}

func NewReportService(engine *rep.Engine) ReportService {
	return &reportService{engine: engine}
}

func (s *reportService) ApartmentsWithContractCount(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.ApartmentContractsResponse, error) {
	list, err := s.engine.ApartmentsWithContractCount(ctx, p, page)
	if err != nil {
		return nil, err
	}
	return dto.FromApartmentCounts(list), nil
}

func (s *reportService) ContractDetail(ctx context.Context, p *authz.Principal, contractID string) (*ctrdto.DetailResponse, error) {
	d, err := s.engine.ContractDetail(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	out := ctrdto.FromDetail(d)
	return &out, nil
}

func (s *reportService) SearchContracts(ctx context.Context, p *authz.Principal, term string, page repository.Page) ([]ctrdto.DetailResponse, error) {
	list, err := s.engine.SearchContracts(ctx, p, term, page)
	if err != nil {
		return nil, err
	}
	return ctrdto.FromDetails(list), nil
}

func (s *reportService) PaymentsWithContract(ctx context.Context, p *authz.Principal, contractID string, page repository.Page) ([]dto.EnrichedPaymentResponse, error) {
	list, err := s.engine.PaymentsWithContract(ctx, p, contractID, page)
	if err != nil {
		return nil, err
	}
	return dto.FromEnriched(list), nil
}

func (s *reportService) ContractPaymentStats(ctx context.Context, p *authz.Principal, contractID string) (*dto.PaymentStatsResponse, error) {
	st, err := s.engine.ContractPaymentStats(ctx, p, contractID)
	if err != nil {
		return nil, err
	}
	out := dto.FromStats(st)
	return &out, nil
}

func (s *reportService) PaymentStats(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.PaymentStatsResponse, error) {
	list, err := s.engine.PaymentStats(ctx, p, page)
	if err != nil {
		return nil, err
	}
	return dto.FromStatsList(list), nil
}

func (s *reportService) ExportPaymentStats(ctx context.Context, p *authz.Principal, page repository.Page, w io.Writer) error {
	list, err := s.engine.PaymentStats(ctx, p, page)
	if err != nil {
		return err
	}
	return rep.WriteStatsXLSX(w, list)
}

func (s *reportService) PendingPayments(ctx context.Context, p *authz.Principal, page repository.Page) ([]dto.PendingPaymentResponse, error) {
	list, err := s.engine.PendingPayments(ctx, p, page)
	if err != nil {
		return nil, err
	}
	return dto.FromPending(list), nil
}

func (s *reportService) CheckMaintenance(ctx context.Context, p *authz.Principal, apartmentID string) (*dto.ThresholdResponse, error) {
	res, err := s.engine.CheckMaintenance(ctx, p, apartmentID)
	if err != nil {
		return nil, err
	}
	out := dto.FromThreshold(res)
	return &out, nil
}
