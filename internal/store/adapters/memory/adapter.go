// Package memory implementa un adapter en memoria: mismo contrato que el
// adapter mongo, para tests y modo dev sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	store "github.com/dropDatabas3/alquiler/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(_ context.Context, _ store.AdapterConfig) (store.AdapterConnection, error) {
	return New(), nil
}

// db guarda todas las colecciones bajo un único lock.
type db struct {
	mu sync.RWMutex

	apartments map[string]repository.Apartment
	contracts  map[string]repository.Contract
	maint      map[string]repository.Maintenance
	types      map[string]repository.MaintenanceType
	payments   map[string]repository.Payment
	users      map[string]repository.User

	now func() time.Time
}

// Connection es una conexión en memoria; cada New() es un store vacío.
type Connection struct {
	d *db
}

// New crea un store vacío.
func New() *Connection {
	return &Connection{d: &db{
		apartments: map[string]repository.Apartment{},
		contracts:  map[string]repository.Contract{},
		maint:      map[string]repository.Maintenance{},
		types:      map[string]repository.MaintenanceType{},
		payments:   map[string]repository.Payment{},
		users:      map[string]repository.User{},
		now:        func() time.Time { return time.Now().UTC() },
	}}
}

func (c *Connection) Name() string               { return "memory" }
func (c *Connection) Ping(context.Context) error { return nil }
func (c *Connection) Close() error               { return nil }
func (c *Connection) Apartments() repository.ApartmentRepository {
	return &apartmentRepo{c.d}
}
func (c *Connection) Contracts() repository.ContractRepository { return &contractRepo{c.d} }
func (c *Connection) Maintenance() repository.MaintenanceRepository {
	return &maintenanceRepo{c.d}
}
func (c *Connection) MaintenanceTypes() repository.MaintenanceTypeRepository {
	return &typeRepo{c.d}
}
func (c *Connection) Payments() repository.PaymentRepository { return &paymentRepo{c.d} }
func (c *Connection) Users() repository.UserRepository       { return &userRepo{c.d} }
func (c *Connection) Reports() repository.ReportRepository   { return &reportRepo{c.d} }

// newID genera IDs con la misma forma que el store real (ObjectID hex).
// Ordenar por ID equivale a ordenar por creación.
func newID() string { return primitive.NewObjectID().Hex() }

// sortedValues devuelve los valores del mapa ordenados por ID.
func sortedValues[T any](m map[string]T, keep func(T) bool) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func paginate[T any](items []T, p repository.Page) []T {
	p = p.Bounded()
	if p.Skip >= len(items) {
		return []T{}
	}
	end := p.Skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}
