package mongo

import (
	"context"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

type reportRepo struct {
	c *connection
}

func (r *reportRepo) aggregate(ctx context.Context, coll string, pl mongodrv.Pipeline) ([]bson.M, error) {
	cur, err := r.c.coll(coll).Aggregate(ctx, pl)
	if err != nil {
		return nil, mapErr(coll+".aggregate", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(coll+".aggregate", err)
	}
	return docs, nil
}

func (r *reportRepo) ApartmentsWithContractCount(ctx context.Context, p repository.Page) ([]repository.ApartmentContractCount, error) {
	docs, err := r.aggregate(ctx, collApartments, apartmentsWithContractCountPipeline(p))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, collApartments, docs, decodeApartmentCount), nil
}

func (r *reportRepo) ContractWithApartment(ctx context.Context, contractID string) (*repository.ContractDetail, error) {
	id, err := oid(contractID)
	if err != nil {
		return nil, err
	}
	docs, err := r.aggregate(ctx, collContracts, contractWithApartmentPipeline(id))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	return decodeContractDetail(docs[0])
}

func (r *reportRepo) SearchContracts(ctx context.Context, term string, p repository.Page) ([]repository.ContractDetail, error) {
	docs, err := r.aggregate(ctx, collContracts, searchContractsPipeline(term, p))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, collContracts, docs, decodeContractDetail), nil
}

func (r *reportRepo) PaymentsWithContract(ctx context.Context, contractID string, p repository.Page) ([]repository.EnrichedPayment, error) {
	docs, err := r.aggregate(ctx, collPayments, paymentsWithContractPipeline(contractID, p))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, collPayments, docs, decodeEnrichedPayment), nil
}

func (r *reportRepo) PaymentStats(ctx context.Context, contractID string, p repository.Page) ([]repository.PaymentStats, error) {
	docs, err := r.aggregate(ctx, collPayments, paymentStatsPipeline(contractID, p))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, collPayments, docs, decodePaymentStats), nil
}

func (r *reportRepo) PendingPayments(ctx context.Context, p repository.Page) ([]repository.PendingPayment, error) {
	docs, err := r.aggregate(ctx, collPayments, pendingPaymentsPipeline(p))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, collPayments, docs, decodePendingPayment), nil
}

func (r *reportRepo) PendingMaintenanceCount(ctx context.Context, apartmentID string) (int64, error) {
	docs, err := r.aggregate(ctx, collMaintenance, pendingMaintenancePipeline(apartmentID))
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	n, _ := numField(docs[0], "pending_count")
	return int64(n), nil
}

// ─── decoders de resultados de pipelines ───

func decodeApartmentCount(m bson.M) (*repository.ApartmentContractCount, error) {
	a, err := decodeApartment(m)
	if err != nil {
		return nil, err
	}
	n, _ := numField(m, "number_of_contracts")
	return &repository.ApartmentContractCount{Apartment: *a, NumberOfContracts: int64(n)}, nil
}

func decodeContractDetail(m bson.M) (*repository.ContractDetail, error) {
	c, err := decodeContract(m)
	if err != nil {
		return nil, err
	}
	d := &repository.ContractDetail{Contract: *c}
	if apt, ok := subdoc(m["apartment"]); ok {
		d.ApartmentNumber = strField(apt, "number")
		d.ApartmentLevel = strField(apt, "level")
	}
	return d, nil
}

func decodeEnrichedPayment(m bson.M) (*repository.EnrichedPayment, error) {
	p, err := decodePayment(m)
	if err != nil {
		return nil, err
	}
	out := &repository.EnrichedPayment{Payment: *p}
	if c, ok := subdoc(m["contract"]); ok {
		out.Contract.ID, _ = refString(c["_id"])
		out.Contract.StartDate = timeField(c, fStartDate)
	}
	out.Contract.Active = boolField(m, true, "contract_active")
	return out, nil
}

func decodePaymentStats(m bson.M) (*repository.PaymentStats, error) {
	s := &repository.PaymentStats{}
	s.ContractID, _ = refString(m["contract_id"])
	n, _ := numField(m, "total_payments")
	s.TotalPayments = int64(n)
	s.TotalAmount, _ = numField(m, "total_amount")
	s.AvgAmount, _ = numField(m, "avg_amount")
	return s, nil
}

func decodePendingPayment(m bson.M) (*repository.PendingPayment, error) {
	p, err := decodePayment(m)
	if err != nil {
		return nil, err
	}
	return &repository.PendingPayment{Payment: *p, ContractActive: boolField(m, true, "contract_active")}, nil
}
