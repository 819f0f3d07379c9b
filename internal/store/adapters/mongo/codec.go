package mongo

import (
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nombres de campo aceptados al leer. El primero es el canónico (el que se escribe);
// el resto son nombres heredados de documentos viejos.
var (
	fOwner       = []string{"owner_user_id", "id_User", "id_user"}
	fApartment   = []string{"apartment_id", "id_Apartment", "id_apartment"}
	fContract    = []string{"contract_id", "id_Contract"}
	fMaintType   = []string{"maintenance_type_id", "id_Maintenance_type"}
	fPayMethod   = []string{"payment_method_id", "id_Pyment_Method"}
	fOccurredAt  = []string{"occurred_at", "date"}
	fPaidAt      = []string{"paid_at", "date"}
	fPassword    = []string{"password_hash", "password"}
	fUserActive  = []string{"is_active", "active"}
	fUserAdmin   = []string{"is_admin", "admin"}
	fCreatedAt   = []string{"created_at"}
	fUpdatedAt   = []string{"updated_at"}
	fStartDate   = []string{"start_date"}
	fEndDate     = []string{"end_date"}
	fProviderUID = []string{"provider_uid"}
)

// legacy devuelve los alias no canónicos para $unset en updates.
func legacy(groups ...[]string) bson.M {
	out := bson.M{}
	for _, g := range groups {
		for _, f := range g[1:] {
			out[f] = ""
		}
	}
	return out
}

// oid parsea un ID externo; un ID mal formado es ValidationFailure.
func oid(id string) (primitive.ObjectID, error) {
	o, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.Invalid("id", "malformed identifier")
	}
	return o, nil
}

// ref guarda una referencia como ObjectID cuando tiene esa forma.
func ref(id string) any {
	if o, err := primitive.ObjectIDFromHex(id); err == nil {
		return o
	}
	return id
}

// refString normaliza una referencia (string u ObjectID) a su forma canónica.
func refString(v any) (string, bool) {
	switch x := v.(type) {
	case primitive.ObjectID:
		return x.Hex(), true
	case string:
		s := strings.TrimSpace(x)
		if o, err := primitive.ObjectIDFromHex(s); err == nil {
			return o.Hex(), true
		}
		return s, s != ""
	default:
		return "", false
	}
}

// refFilter matchea cualquier alias del campo en cualquiera de las dos representaciones.
func refFilter(fields []string, id string) bson.M {
	vals := []any{id}
	if o, err := primitive.ObjectIDFromHex(id); err == nil {
		vals = append(vals, o)
	}
	ors := make(bson.A, 0, len(fields))
	for _, f := range fields {
		ors = append(ors, bson.M{f: bson.M{"$in": vals}})
	}
	return bson.M{"$or": ors}
}

// refInFilter es refFilter para un conjunto de IDs.
func refInFilter(fields []string, ids []string) bson.M {
	vals := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		vals = append(vals, id)
		if o, err := primitive.ObjectIDFromHex(id); err == nil {
			vals = append(vals, o)
		}
	}
	ors := make(bson.A, 0, len(fields))
	for _, f := range fields {
		ors = append(ors, bson.M{f: bson.M{"$in": vals}})
	}
	return bson.M{"$or": ors}
}

// statusFilter tolera documentos con status string o con flag active.
func statusFilter(s repository.Status) bson.M {
	if s == repository.StatusActive {
		return bson.M{"$or": bson.A{
			bson.M{"status": string(repository.StatusActive)},
			bson.M{"status": bson.M{"$exists": false}, "active": bson.M{"$ne": false}},
		}}
	}
	return bson.M{"$or": bson.A{
		bson.M{"status": string(repository.StatusInactive)},
		bson.M{"status": bson.M{"$exists": false}, "active": false},
	}}
}

func and(parts ...bson.M) bson.M {
	nonEmpty := make(bson.A, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 {
			nonEmpty = append(nonEmpty, p)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return bson.M{}
	case 1:
		return nonEmpty[0].(bson.M)
	}
	return bson.M{"$and": nonEmpty}
}

// ─── lectura de campos ───

func docID(m bson.M) (string, error) {
	if s, ok := refString(m["_id"]); ok {
		return s, nil
	}
	if s, ok := refString(m["id"]); ok {
		return s, nil
	}
	return "", repository.Invalid("_id", "missing identifier")
}

// subdoc acepta un documento embebido decodificado como M o D.
func subdoc(v any) (bson.M, bool) {
	switch x := v.(type) {
	case bson.M:
		return x, true
	case bson.D:
		m := make(bson.M, len(x))
		for _, e := range x {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

func refField(m bson.M, fields []string) string {
	for _, f := range fields {
		if s, ok := refString(m[f]); ok {
			return s
		}
	}
	return ""
}

func strField(m bson.M, fields ...string) string {
	for _, f := range fields {
		if s, ok := m[f].(string); ok {
			return s
		}
	}
	return ""
}

func numField(m bson.M, f string) (float64, bool) {
	switch x := m[f].(type) {
	case float64:
		return x, true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case primitive.Decimal128:
		var v float64
		if _, err := fmt.Sscan(x.String(), &v); err == nil {
			return v, true
		}
	}
	return 0, false
}

func boolField(m bson.M, def bool, fields ...string) bool {
	for _, f := range fields {
		if b, ok := m[f].(bool); ok {
			return b
		}
	}
	return def
}

func timeField(m bson.M, fields []string) time.Time {
	for _, f := range fields {
		switch x := m[f].(type) {
		case primitive.DateTime:
			return x.Time().UTC()
		case time.Time:
			return x.UTC()
		case string:
			if t, err := time.Parse(time.RFC3339, x); err == nil {
				return t.UTC()
			}
			if t, err := time.Parse("2006-01-02", x); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

func statusField(m bson.M) repository.Status {
	if s, ok := m["status"].(string); ok {
		if st, err := repository.ParseStatus(s); err == nil {
			return st
		}
	}
	return repository.StatusOf(boolField(m, true, "active"))
}

func malformed(entity, id, reason string) error {
	return repository.Invalid(entity, fmt.Sprintf("malformed document %s: %s", id, reason))
}

// ─── decoders: documento → registro validado ───

func decodeApartment(m bson.M) (*repository.Apartment, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	a := &repository.Apartment{
		ID:        id,
		Number:    strings.ToLower(strings.TrimSpace(strField(m, "number"))),
		Level:     strField(m, "level"),
		Status:    statusField(m),
		CreatedAt: timeField(m, fCreatedAt),
		UpdatedAt: timeField(m, fUpdatedAt),
	}
	if a.Number == "" {
		return nil, malformed("apartment", id, "number")
	}
	return a, nil
}

func decodeContract(m bson.M) (*repository.Contract, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	c := &repository.Contract{
		ID:          id,
		OwnerUserID: refField(m, fOwner),
		ApartmentID: refField(m, fApartment),
		StartDate:   timeField(m, fStartDate),
		EndDate:     timeField(m, fEndDate),
		Status:      statusField(m),
		CreatedAt:   timeField(m, fCreatedAt),
		UpdatedAt:   timeField(m, fUpdatedAt),
	}
	if c.ApartmentID == "" {
		return nil, malformed("contract", id, "apartment reference")
	}
	return c, nil
}

func decodeMaintenance(m bson.M) (*repository.Maintenance, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	cost, _ := numField(m, "cost")
	st := repository.MaintenanceStatus(strField(m, "status"))
	if st == "" {
		st = repository.MaintenancePending
	}
	out := &repository.Maintenance{
		ID:                id,
		ApartmentID:       refField(m, fApartment),
		ContractID:        refField(m, fContract),
		MaintenanceTypeID: refField(m, fMaintType),
		Cost:              cost,
		OccurredAt:        timeField(m, fOccurredAt),
		Status:            st,
		Active:            boolField(m, true, "active"),
		CreatedAt:         timeField(m, fCreatedAt),
		UpdatedAt:         timeField(m, fUpdatedAt),
	}
	if out.ContractID == "" {
		return nil, malformed("maintenance", id, "contract reference")
	}
	return out, nil
}

func decodeMaintenanceType(m bson.M) (*repository.MaintenanceType, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	cost, _ := numField(m, "base_cost")
	t := &repository.MaintenanceType{
		ID:          id,
		Description: strField(m, "description"),
		BaseCost:    cost,
		Active:      boolField(m, true, "active"),
		CreatedAt:   timeField(m, fCreatedAt),
		UpdatedAt:   timeField(m, fUpdatedAt),
	}
	if t.Description == "" {
		return nil, malformed("maintenance_type", id, "description")
	}
	return t, nil
}

func decodePayment(m bson.M) (*repository.Payment, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	cost, ok := numField(m, "cost")
	if !ok {
		return nil, malformed("payment", id, "cost")
	}
	p := &repository.Payment{
		ID:              id,
		ContractID:      refField(m, fContract),
		Cost:            cost,
		PaidAt:          timeField(m, fPaidAt),
		PaymentMethodID: refField(m, fPayMethod),
		IsPaid:          boolField(m, true, "is_paid"),
		CreatedAt:       timeField(m, fCreatedAt),
		UpdatedAt:       timeField(m, fUpdatedAt),
	}
	if p.ContractID == "" {
		return nil, malformed("payment", id, "contract reference")
	}
	return p, nil
}

func decodeUser(m bson.M) (*repository.User, error) {
	id, err := docID(m)
	if err != nil {
		return nil, err
	}
	u := &repository.User{
		ID:           id,
		FullName:     strField(m, "full_name"),
		Email:        strings.ToLower(strField(m, "email")),
		IsActive:     boolField(m, true, fUserActive...),
		IsAdmin:      boolField(m, false, fUserAdmin...),
		PasswordHash: strField(m, fPassword...),
		ProviderUID:  strField(m, fProviderUID...),
		CreatedAt:    timeField(m, fCreatedAt),
		UpdatedAt:    timeField(m, fUpdatedAt),
	}
	if u.Email == "" {
		return nil, malformed("user", id, "email")
	}
	return u, nil
}

// ─── encoders: registro → documento canónico (sin _id) ───

func apartmentDoc(a repository.Apartment) bson.M {
	return bson.M{
		"number":     a.Number,
		"level":      a.Level,
		"status":     string(a.Status),
		"active":     a.Status.Active(),
		"updated_at": a.UpdatedAt,
	}
}

func contractDoc(c repository.Contract) bson.M {
	return bson.M{
		"owner_user_id": ref(c.OwnerUserID),
		"apartment_id":  ref(c.ApartmentID),
		"start_date":    c.StartDate,
		"end_date":      c.EndDate,
		"status":        string(c.Status),
		"active":        c.Status.Active(),
		"updated_at":    c.UpdatedAt,
	}
}

func maintenanceDoc(m repository.Maintenance) bson.M {
	return bson.M{
		"apartment_id":        ref(m.ApartmentID),
		"contract_id":         ref(m.ContractID),
		"maintenance_type_id": ref(m.MaintenanceTypeID),
		"cost":                m.Cost,
		"occurred_at":         m.OccurredAt,
		"status":              string(m.Status),
		"active":              m.Active,
		"updated_at":          m.UpdatedAt,
	}
}

func maintenanceTypeDoc(t repository.MaintenanceType) bson.M {
	return bson.M{
		"description": t.Description,
		"base_cost":   t.BaseCost,
		"active":      t.Active,
		"updated_at":  t.UpdatedAt,
	}
}

func paymentDoc(p repository.Payment) bson.M {
	return bson.M{
		"contract_id":       ref(p.ContractID),
		"cost":              p.Cost,
		"paid_at":           p.PaidAt,
		"payment_method_id": p.PaymentMethodID,
		"is_paid":           p.IsPaid,
		"updated_at":        p.UpdatedAt,
	}
}

func userDoc(u repository.User) bson.M {
	return bson.M{
		"full_name":     u.FullName,
		"email":         strings.ToLower(u.Email),
		"is_active":     u.IsActive,
		"is_admin":      u.IsAdmin,
		"password_hash": u.PasswordHash,
		"provider_uid":  u.ProviderUID,
		"updated_at":    u.UpdatedAt,
	}
}
