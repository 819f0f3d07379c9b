package memory

import (
	"context"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// reportRepo hace los joins en proceso, bajo un read lock: cada reporte ve
// un snapshot consistente de todas las colecciones.
type reportRepo struct{ d *db }

func (r *reportRepo) ApartmentsWithContractCount(_ context.Context, p repository.Page) ([]repository.ApartmentContractCount, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	counts := map[string]int64{}
	for _, c := range r.d.contracts {
		counts[c.ApartmentID]++
	}
	page := paginate(sortedValues(r.d.apartments, nil), p)
	out := make([]repository.ApartmentContractCount, 0, len(page))
	for _, a := range page {
		out = append(out, repository.ApartmentContractCount{Apartment: a, NumberOfContracts: counts[a.ID]})
	}
	return out, nil
}

func (r *reportRepo) ContractWithApartment(_ context.Context, contractID string) (*repository.ContractDetail, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	c, ok := r.d.contracts[contractID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a, ok := r.d.apartments[c.ApartmentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &repository.ContractDetail{Contract: c, ApartmentNumber: a.Number, ApartmentLevel: a.Level}, nil
}

func (r *reportRepo) SearchContracts(_ context.Context, term string, p repository.Page) ([]repository.ContractDetail, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var matches []repository.ContractDetail
	for _, c := range sortedValues(r.d.contracts, nil) {
		a, ok := r.d.apartments[c.ApartmentID]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(c.OwnerUserID), term) || strings.Contains(a.Number, term) {
			matches = append(matches, repository.ContractDetail{Contract: c, ApartmentNumber: a.Number, ApartmentLevel: a.Level})
		}
	}
	return paginate(matches, p), nil
}

func (r *reportRepo) PaymentsWithContract(_ context.Context, contractID string, p repository.Page) ([]repository.EnrichedPayment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	c, ok := r.d.contracts[contractID]
	if !ok {
		return []repository.EnrichedPayment{}, nil
	}
	ref := repository.ContractRef{ID: c.ID, StartDate: c.StartDate, Active: c.Status.Active()}
	page := paginate(sortedValues(r.d.payments, func(pay repository.Payment) bool {
		return pay.ContractID == contractID
	}), p)
	out := make([]repository.EnrichedPayment, 0, len(page))
	for _, pay := range page {
		out = append(out, repository.EnrichedPayment{Payment: pay, Contract: ref})
	}
	return out, nil
}

func (r *reportRepo) PaymentStats(_ context.Context, contractID string, p repository.Page) ([]repository.PaymentStats, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	groups := map[string]*repository.PaymentStats{}
	for _, pay := range r.d.payments {
		if contractID != "" && pay.ContractID != contractID {
			continue
		}
		g, ok := groups[pay.ContractID]
		if !ok {
			g = &repository.PaymentStats{ContractID: pay.ContractID}
			groups[pay.ContractID] = g
		}
		g.TotalPayments++
		g.TotalAmount += pay.Cost
	}
	all := make(map[string]repository.PaymentStats, len(groups))
	for k, g := range groups {
		g.AvgAmount = g.TotalAmount / float64(g.TotalPayments)
		all[k] = *g
	}
	return paginate(sortedValues(all, nil), p), nil
}

func (r *reportRepo) PendingPayments(_ context.Context, p repository.Page) ([]repository.PendingPayment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var out []repository.PendingPayment
	for _, pay := range sortedValues(r.d.payments, nil) {
		c, ok := r.d.contracts[pay.ContractID]
		if !ok {
			continue
		}
		active := c.Status.Active()
		if !pay.IsPaid || !active {
			out = append(out, repository.PendingPayment{Payment: pay, ContractActive: active})
		}
	}
	return paginate(out, p), nil
}

func (r *reportRepo) PendingMaintenanceCount(_ context.Context, apartmentID string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var n int64
	for _, m := range r.d.maint {
		if m.ApartmentID == apartmentID && m.Status == repository.MaintenancePending {
			n++
		}
	}
	return n, nil
}
