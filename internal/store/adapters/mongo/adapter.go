// Package mongo implementa el adapter MongoDB sobre go.mongodb.org/mongo-driver.
//
// Colecciones: apartments, contracts, maintenance, maintenance_types, pays, users.
// Los documentos se convierten a registros validados en el borde (codec.go) y las
// vistas derivadas se resuelven con aggregation pipelines (pipelines.go).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	store "github.com/dropDatabas3/alquiler/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collApartments       = "apartments"
	collContracts        = "contracts"
	collMaintenance      = "maintenance"
	collMaintenanceTypes = "maintenance_types"
	collPayments         = "pays"
	collUsers            = "users"
)

func init() {
	store.RegisterAdapter(&mongoAdapter{})
}

type mongoAdapter struct{}

func (a *mongoAdapter) Name() string { return "mongo" }

func (a *mongoAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: empty URI")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo: empty database name")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout).SetConnectTimeout(cfg.Timeout)
	}

	client, err := mongodrv.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	c := newConnection(client, client.Database(cfg.Database))
	if cfg.EnsureIndexes {
		c.ensureIndexes(ctx)
	}
	return c, nil
}

type connection struct {
	client *mongodrv.Client
	db     *mongodrv.Database
	now    func() time.Time
}

func newConnection(client *mongodrv.Client, db *mongodrv.Database) *connection {
	return &connection{client: client, db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (c *connection) Name() string { return "mongo" }

func (c *connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return repository.Unavailable("ping", err)
	}
	return nil
}

func (c *connection) Close() error { return c.client.Disconnect(context.Background()) }

func (c *connection) coll(name string) *mongodrv.Collection { return c.db.Collection(name) }

func (c *connection) Apartments() repository.ApartmentRepository {
	return &apartmentRepo{c: c, coll: c.coll(collApartments)}
}
func (c *connection) Contracts() repository.ContractRepository {
	return &contractRepo{c: c, coll: c.coll(collContracts)}
}
func (c *connection) Maintenance() repository.MaintenanceRepository {
	return &maintenanceRepo{c: c, coll: c.coll(collMaintenance)}
}
func (c *connection) MaintenanceTypes() repository.MaintenanceTypeRepository {
	return &typeRepo{c: c, coll: c.coll(collMaintenanceTypes)}
}
func (c *connection) Payments() repository.PaymentRepository {
	return &paymentRepo{c: c, coll: c.coll(collPayments)}
}
func (c *connection) Users() repository.UserRepository {
	return &userRepo{c: c, coll: c.coll(collUsers)}
}
func (c *connection) Reports() repository.ReportRepository { return &reportRepo{c: c} }

// ensureIndexes respalda los chequeos de unicidad de la aplicación con
// índices del store. Un fallo (ej: duplicados heredados) solo se loguea.
func (c *connection) ensureIndexes(ctx context.Context) {
	log := logger.From(ctx).With(logger.Layer("adapter"), logger.Component("mongo"))
	caseInsensitive := &options.Collation{Locale: "en", Strength: 2}

	specs := []struct {
		coll  string
		model mongodrv.IndexModel
	}{
		{collApartments, mongodrv.IndexModel{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(caseInsensitive)}},
		{collUsers, mongodrv.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{collMaintenanceTypes, mongodrv.IndexModel{Keys: bson.D{{Key: "description", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(caseInsensitive)}},
		{collContracts, mongodrv.IndexModel{Keys: bson.D{{Key: "apartment_id", Value: 1}}}},
		{collContracts, mongodrv.IndexModel{Keys: bson.D{{Key: "owner_user_id", Value: 1}}}},
		{collPayments, mongodrv.IndexModel{Keys: bson.D{{Key: "contract_id", Value: 1}}}},
		{collMaintenance, mongodrv.IndexModel{Keys: bson.D{{Key: "contract_id", Value: 1}}}},
		{collMaintenance, mongodrv.IndexModel{Keys: bson.D{{Key: "apartment_id", Value: 1}, {Key: "status", Value: 1}}}},
	}
	for _, s := range specs {
		if _, err := c.coll(s.coll).Indexes().CreateOne(ctx, s.model); err != nil {
			log.Warn("index creation failed", logger.String("collection", s.coll), logger.Err(err))
		}
	}
}

// mapErr traduce errores del driver a la taxonomía de dominio.
func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodrv.ErrNoDocuments):
		return repository.ErrNotFound
	case mongodrv.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	default:
		return repository.Unavailable(op, err)
	}
}
