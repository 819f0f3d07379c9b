package mongo

import (
	"context"
	"regexp"
	"strings"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

// ─── Apartments ───

type apartmentRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *apartmentRepo) Create(ctx context.Context, a repository.Apartment) (*repository.Apartment, error) {
	now := r.c.now()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.Status == "" {
		a.Status = repository.StatusActive
	}
	doc := apartmentDoc(a)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return &a, nil
}

func (r *apartmentRepo) GetByID(ctx context.Context, id string) (*repository.Apartment, error) {
	return findByID(ctx, r.coll, id, decodeApartment)
}

func (r *apartmentRepo) GetByNumber(ctx context.Context, number string) (*repository.Apartment, error) {
	return findOne(ctx, r.coll, numberFilter(number), decodeApartment)
}

// numberFilter ignora mayúsculas: documentos viejos pueden tener "A1" guardado.
func numberFilter(number string) bson.M {
	return bson.M{"number": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(number)) + "$",
		"$options": "i",
	}}
}

func (r *apartmentRepo) List(ctx context.Context, f repository.ApartmentFilter, p repository.Page) ([]repository.Apartment, error) {
	filter := bson.M{}
	if f.Status != nil {
		filter = statusFilter(*f.Status)
	}
	return findPage(ctx, r.coll, filter, p, decodeApartment)
}

func (r *apartmentRepo) Update(ctx context.Context, a repository.Apartment) (*repository.Apartment, error) {
	a.UpdatedAt = r.c.now()
	set := apartmentDoc(a)
	if a.Status == "" {
		delete(set, "status")
		delete(set, "active")
	}
	return updateByID(ctx, r.coll, a.ID, set, nil, decodeApartment)
}

func (r *apartmentRepo) SetStatus(ctx context.Context, id string, s repository.Status) error {
	return setFields(ctx, r.coll, id, bson.M{"status": string(s), "active": s.Active(), "updated_at": r.c.now()})
}

func (r *apartmentRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

// ─── Contracts ───

type contractRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *contractRepo) Create(ctx context.Context, ct repository.Contract) (*repository.Contract, error) {
	now := r.c.now()
	ct.CreatedAt, ct.UpdatedAt = now, now
	if ct.Status == "" {
		ct.Status = repository.StatusActive
	}
	doc := contractDoc(ct)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	ct.ID = id
	return &ct, nil
}

func (r *contractRepo) GetByID(ctx context.Context, id string) (*repository.Contract, error) {
	return findByID(ctx, r.coll, id, decodeContract)
}

func contractFilter(f repository.ContractFilter) bson.M {
	var parts []bson.M
	if f.OwnerUserID != "" {
		parts = append(parts, refFilter(fOwner, f.OwnerUserID))
	}
	if f.ApartmentID != "" {
		parts = append(parts, refFilter(fApartment, f.ApartmentID))
	}
	if f.Status != nil {
		parts = append(parts, statusFilter(*f.Status))
	}
	return and(parts...)
}

func (r *contractRepo) List(ctx context.Context, f repository.ContractFilter, p repository.Page) ([]repository.Contract, error) {
	return findPage(ctx, r.coll, contractFilter(f), p, decodeContract)
}

func (r *contractRepo) Update(ctx context.Context, ct repository.Contract) (*repository.Contract, error) {
	ct.UpdatedAt = r.c.now()
	set := contractDoc(ct)
	if ct.Status == "" {
		delete(set, "status")
		delete(set, "active")
	}
	return updateByID(ctx, r.coll, ct.ID, set, legacy(fOwner, fApartment), decodeContract)
}

func (r *contractRepo) SetStatus(ctx context.Context, id string, s repository.Status) error {
	return setFields(ctx, r.coll, id, bson.M{"status": string(s), "active": s.Active(), "updated_at": r.c.now()})
}

func (r *contractRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *contractRepo) CountByApartment(ctx context.Context, apartmentID string) (int64, error) {
	return count(ctx, r.coll, refFilter(fApartment, apartmentID))
}

func (r *contractRepo) IDsByOwner(ctx context.Context, owner string) ([]string, error) {
	cur, err := r.coll.Find(ctx, refFilter(fOwner, owner), projectionIDs())
	if err != nil {
		return nil, mapErr("contracts.ids", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr("contracts.ids", err)
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if id, err := docID(d); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ─── Maintenance ───

type maintenanceRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *maintenanceRepo) Create(ctx context.Context, m repository.Maintenance) (*repository.Maintenance, error) {
	now := r.c.now()
	m.CreatedAt, m.UpdatedAt = now, now
	doc := maintenanceDoc(m)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id string) (*repository.Maintenance, error) {
	return findByID(ctx, r.coll, id, decodeMaintenance)
}

func (r *maintenanceRepo) List(ctx context.Context, f repository.MaintenanceFilter, p repository.Page) ([]repository.Maintenance, error) {
	if f.Scope.Empty() {
		return []repository.Maintenance{}, nil
	}
	var parts []bson.M
	if !f.Scope.All {
		parts = append(parts, refInFilter(fContract, f.Scope.ContractIDs))
	}
	if f.ApartmentID != "" {
		parts = append(parts, refFilter(fApartment, f.ApartmentID))
	}
	if f.Status != "" {
		parts = append(parts, bson.M{"status": string(f.Status)})
	}
	return findPage(ctx, r.coll, and(parts...), p, decodeMaintenance)
}

func (r *maintenanceRepo) Update(ctx context.Context, m repository.Maintenance) (*repository.Maintenance, error) {
	m.UpdatedAt = r.c.now()
	return updateByID(ctx, r.coll, m.ID, maintenanceDoc(m), legacy(fApartment, fContract, fMaintType, fOccurredAt), decodeMaintenance)
}

func (r *maintenanceRepo) CountByContract(ctx context.Context, contractID string) (int64, error) {
	return count(ctx, r.coll, refFilter(fContract, contractID))
}

// ─── Maintenance types ───

type typeRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *typeRepo) Create(ctx context.Context, t repository.MaintenanceType) (*repository.MaintenanceType, error) {
	now := r.c.now()
	t.CreatedAt, t.UpdatedAt = now, now
	doc := maintenanceTypeDoc(t)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &t, nil
}

func (r *typeRepo) GetByID(ctx context.Context, id string) (*repository.MaintenanceType, error) {
	return findByID(ctx, r.coll, id, decodeMaintenanceType)
}

func (r *typeRepo) GetByDescription(ctx context.Context, description string) (*repository.MaintenanceType, error) {
	return findOne(ctx, r.coll, descriptionFilter(description), decodeMaintenanceType)
}

// descriptionFilter es un match exacto sin distinguir mayúsculas.
func descriptionFilter(description string) bson.M {
	return bson.M{"description": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(description) + "$",
		"$options": "i",
	}}
}

func (r *typeRepo) ListActive(ctx context.Context, p repository.Page) ([]repository.MaintenanceType, error) {
	return findPage(ctx, r.coll, bson.M{"active": bson.M{"$ne": false}}, p, decodeMaintenanceType)
}

func (r *typeRepo) Update(ctx context.Context, t repository.MaintenanceType) (*repository.MaintenanceType, error) {
	t.UpdatedAt = r.c.now()
	return updateByID(ctx, r.coll, t.ID, maintenanceTypeDoc(t), nil, decodeMaintenanceType)
}

// ─── Payments ───

type paymentRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *paymentRepo) Create(ctx context.Context, p repository.Payment) (*repository.Payment, error) {
	now := r.c.now()
	p.CreatedAt, p.UpdatedAt = now, now
	doc := paymentDoc(p)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (*repository.Payment, error) {
	return findByID(ctx, r.coll, id, decodePayment)
}

func (r *paymentRepo) List(ctx context.Context, f repository.PaymentFilter, pg repository.Page) ([]repository.Payment, error) {
	if f.Scope.Empty() {
		return []repository.Payment{}, nil
	}
	var parts []bson.M
	if !f.Scope.All {
		parts = append(parts, refInFilter(fContract, f.Scope.ContractIDs))
	}
	if f.ContractID != "" {
		parts = append(parts, refFilter(fContract, f.ContractID))
	}
	if f.IsPaid != nil {
		if *f.IsPaid {
			parts = append(parts, bson.M{"is_paid": bson.M{"$ne": false}})
		} else {
			parts = append(parts, bson.M{"is_paid": false})
		}
	}
	return findPage(ctx, r.coll, and(parts...), pg, decodePayment)
}

func (r *paymentRepo) Update(ctx context.Context, p repository.Payment) (*repository.Payment, error) {
	p.UpdatedAt = r.c.now()
	return updateByID(ctx, r.coll, p.ID, paymentDoc(p), legacy(fContract, fPaidAt, fPayMethod), decodePayment)
}

func (r *paymentRepo) CountByContract(ctx context.Context, contractID string) (int64, error) {
	return count(ctx, r.coll, refFilter(fContract, contractID))
}

// ─── Users ───

type userRepo struct {
	c    *connection
	coll *mongodrv.Collection
}

func (r *userRepo) Create(ctx context.Context, u repository.User) (*repository.User, error) {
	now := r.c.now()
	u.CreatedAt, u.UpdatedAt = now, now
	doc := userDoc(u)
	doc["created_at"] = now
	id, err := insert(ctx, r.coll, doc)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return findByID(ctx, r.coll, id, decodeUser)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return findOne(ctx, r.coll, bson.M{"email": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(email) + "$",
		"$options": "i",
	}}, decodeUser)
}

func (r *userRepo) Update(ctx context.Context, u repository.User) (*repository.User, error) {
	u.UpdatedAt = r.c.now()
	return updateByID(ctx, r.coll, u.ID, userDoc(u), legacy(fPassword, fUserActive, fUserAdmin), decodeUser)
}
