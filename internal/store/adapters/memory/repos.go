package memory

import (
	"context"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

// ─── Apartments ───

type apartmentRepo struct{ d *db }

func (r *apartmentRepo) Create(_ context.Context, a repository.Apartment) (*repository.Apartment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = r.d.now()
	a.UpdatedAt = a.CreatedAt
	if a.Status == "" {
		a.Status = repository.StatusActive
	}
	r.d.apartments[a.ID] = a
	return &a, nil
}

func (r *apartmentRepo) GetByID(_ context.Context, id string) (*repository.Apartment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	a, ok := r.d.apartments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *apartmentRepo) GetByNumber(_ context.Context, number string) (*repository.Apartment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, a := range sortedValues(r.d.apartments, nil) {
		if strings.EqualFold(a.Number, strings.TrimSpace(number)) {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *apartmentRepo) List(_ context.Context, f repository.ApartmentFilter, p repository.Page) ([]repository.Apartment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	items := sortedValues(r.d.apartments, func(a repository.Apartment) bool {
		return f.Status == nil || a.Status == *f.Status
	})
	return paginate(items, p), nil
}

func (r *apartmentRepo) Update(_ context.Context, a repository.Apartment) (*repository.Apartment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.apartments[a.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = r.d.now()
	if a.Status == "" {
		a.Status = cur.Status
	}
	r.d.apartments[a.ID] = a
	return &a, nil
}

func (r *apartmentRepo) SetStatus(_ context.Context, id string, s repository.Status) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	a, ok := r.d.apartments[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = s
	a.UpdatedAt = r.d.now()
	r.d.apartments[id] = a
	return nil
}

func (r *apartmentRepo) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.apartments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.apartments, id)
	return nil
}

// ─── Contracts ───

type contractRepo struct{ d *db }

func (r *contractRepo) Create(_ context.Context, c repository.Contract) (*repository.Contract, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = r.d.now()
	c.UpdatedAt = c.CreatedAt
	if c.Status == "" {
		c.Status = repository.StatusActive
	}
	r.d.contracts[c.ID] = c
	return &c, nil
}

func (r *contractRepo) GetByID(_ context.Context, id string) (*repository.Contract, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	c, ok := r.d.contracts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *contractRepo) List(_ context.Context, f repository.ContractFilter, p repository.Page) ([]repository.Contract, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	items := sortedValues(r.d.contracts, func(c repository.Contract) bool {
		if f.OwnerUserID != "" && c.OwnerUserID != f.OwnerUserID {
			return false
		}
		if f.ApartmentID != "" && c.ApartmentID != f.ApartmentID {
			return false
		}
		return f.Status == nil || c.Status == *f.Status
	})
	return paginate(items, p), nil
}

func (r *contractRepo) Update(_ context.Context, c repository.Contract) (*repository.Contract, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.contracts[c.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.d.now()
	if c.Status == "" {
		c.Status = cur.Status
	}
	r.d.contracts[c.ID] = c
	return &c, nil
}

func (r *contractRepo) SetStatus(_ context.Context, id string, s repository.Status) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.contracts[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = s
	c.UpdatedAt = r.d.now()
	r.d.contracts[id] = c
	return nil
}

func (r *contractRepo) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.contracts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.contracts, id)
	return nil
}

func (r *contractRepo) CountByApartment(_ context.Context, apartmentID string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var n int64
	for _, c := range r.d.contracts {
		if c.ApartmentID == apartmentID {
			n++
		}
	}
	return n, nil
}

func (r *contractRepo) IDsByOwner(_ context.Context, owner string) ([]string, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	ids := []string{}
	for _, c := range sortedValues(r.d.contracts, nil) {
		if c.OwnerUserID == owner {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// ─── Maintenance ───

type maintenanceRepo struct{ d *db }

func (r *maintenanceRepo) Create(_ context.Context, m repository.Maintenance) (*repository.Maintenance, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	m.ID = newID()
	m.CreatedAt = r.d.now()
	m.UpdatedAt = m.CreatedAt
	r.d.maint[m.ID] = m
	return &m, nil
}

func (r *maintenanceRepo) GetByID(_ context.Context, id string) (*repository.Maintenance, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	m, ok := r.d.maint[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *maintenanceRepo) List(_ context.Context, f repository.MaintenanceFilter, p repository.Page) ([]repository.Maintenance, error) {
	if f.Scope.Empty() {
		return []repository.Maintenance{}, nil
	}
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	items := sortedValues(r.d.maint, func(m repository.Maintenance) bool {
		if !f.Scope.Contains(m.ContractID) {
			return false
		}
		if f.ApartmentID != "" && m.ApartmentID != f.ApartmentID {
			return false
		}
		return f.Status == "" || m.Status == f.Status
	})
	return paginate(items, p), nil
}

func (r *maintenanceRepo) Update(_ context.Context, m repository.Maintenance) (*repository.Maintenance, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.maint[m.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.CreatedAt = cur.CreatedAt
	m.UpdatedAt = r.d.now()
	r.d.maint[m.ID] = m
	return &m, nil
}

func (r *maintenanceRepo) CountByContract(_ context.Context, contractID string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var n int64
	for _, m := range r.d.maint {
		if m.ContractID == contractID {
			n++
		}
	}
	return n, nil
}

// ─── Maintenance types ───

type typeRepo struct{ d *db }

func (r *typeRepo) Create(_ context.Context, t repository.MaintenanceType) (*repository.MaintenanceType, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	t.ID = newID()
	t.CreatedAt = r.d.now()
	t.UpdatedAt = t.CreatedAt
	r.d.types[t.ID] = t
	return &t, nil
}

func (r *typeRepo) GetByID(_ context.Context, id string) (*repository.MaintenanceType, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	t, ok := r.d.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *typeRepo) GetByDescription(_ context.Context, description string) (*repository.MaintenanceType, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, t := range sortedValues(r.d.types, nil) {
		if strings.EqualFold(t.Description, description) {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *typeRepo) ListActive(_ context.Context, p repository.Page) ([]repository.MaintenanceType, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	items := sortedValues(r.d.types, func(t repository.MaintenanceType) bool { return t.Active })
	return paginate(items, p), nil
}

func (r *typeRepo) Update(_ context.Context, t repository.MaintenanceType) (*repository.MaintenanceType, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.types[t.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = r.d.now()
	r.d.types[t.ID] = t
	return &t, nil
}

// ─── Payments ───

type paymentRepo struct{ d *db }

func (r *paymentRepo) Create(_ context.Context, p repository.Payment) (*repository.Payment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p.ID = newID()
	p.CreatedAt = r.d.now()
	p.UpdatedAt = p.CreatedAt
	r.d.payments[p.ID] = p
	return &p, nil
}

func (r *paymentRepo) GetByID(_ context.Context, id string) (*repository.Payment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	p, ok := r.d.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *paymentRepo) List(_ context.Context, f repository.PaymentFilter, pg repository.Page) ([]repository.Payment, error) {
	if f.Scope.Empty() {
		return []repository.Payment{}, nil
	}
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	items := sortedValues(r.d.payments, func(p repository.Payment) bool {
		if !f.Scope.Contains(p.ContractID) {
			return false
		}
		if f.ContractID != "" && p.ContractID != f.ContractID {
			return false
		}
		return f.IsPaid == nil || p.IsPaid == *f.IsPaid
	})
	return paginate(items, pg), nil
}

func (r *paymentRepo) Update(_ context.Context, p repository.Payment) (*repository.Payment, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.payments[p.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.d.now()
	r.d.payments[p.ID] = p
	return &p, nil
}

func (r *paymentRepo) CountByContract(_ context.Context, contractID string) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var n int64
	for _, p := range r.d.payments {
		if p.ContractID == contractID {
			n++
		}
	}
	return n, nil
}

// ─── Users ───

type userRepo struct{ d *db }

func (r *userRepo) Create(_ context.Context, u repository.User) (*repository.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u.ID = newID()
	u.CreatedAt = r.d.now()
	u.UpdatedAt = u.CreatedAt
	r.d.users[u.ID] = u
	return &u, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*repository.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, u := range sortedValues(r.d.users, nil) {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u repository.User) (*repository.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cur, ok := r.d.users[u.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.d.now()
	r.d.users[u.ID] = u
	return &u, nil
}
