package integrity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	conn *memory.Connection
	arb  *Arbiter
}

func newFixture() fixture {
	conn := memory.New()
	return fixture{
		conn: conn,
		arb: New(Deps{
			Apartments:  conn.Apartments(),
			Contracts:   conn.Contracts(),
			Maintenance: conn.Maintenance(),
			Payments:    conn.Payments(),
		}),
	}
}

func (f fixture) apartment(t *testing.T, number string) *repository.Apartment {
	t.Helper()
	a, err := f.conn.Apartments().Create(context.Background(), repository.Apartment{Number: number, Level: "1"})
	require.NoError(t, err)
	return a
}

func (f fixture) contract(t *testing.T, apartmentID string) *repository.Contract {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := f.conn.Contracts().Create(context.Background(), repository.Contract{
		OwnerUserID: "65a000000000000000000001",
		ApartmentID: apartmentID,
		StartDate:   start,
		EndDate:     start.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	return c
}

func TestDeleteApartment_WithContracts_DeactivatesTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.apartment(t, "a1")
	f.contract(t, a.ID)
	f.contract(t, a.ID)

	for i := 0; i < 2; i++ {
		d, err := f.arb.DeleteApartment(ctx, "admin", a.ID)
		require.NoError(t, err)
		assert.Equal(t, Decision{Action: ActionDeactivated, DependentCount: 2}, d)
	}

	got, err := f.conn.Apartments().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.StatusInactive, got.Status)
}

func TestDeleteApartment_NoDependents_DeletesThenNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.apartment(t, "b2")

	d, err := f.arb.DeleteApartment(ctx, "admin", a.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionDeleted, d.Action)
	assert.Zero(t, d.DependentCount)

	_, err = f.arb.DeleteApartment(ctx, "admin", a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteContract_CountsMaintenanceAndPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.apartment(t, "c3")
	c := f.contract(t, a.ID)

	_, err := f.conn.Maintenance().Create(ctx, repository.Maintenance{
		ApartmentID: a.ID, ContractID: c.ID, MaintenanceTypeID: "65a0000000000000000000aa", Cost: 10,
	})
	require.NoError(t, err)
	_, err = f.conn.Payments().Create(ctx, repository.Payment{ContractID: c.ID, Cost: 100, PaymentMethodID: "cash", IsPaid: true})
	require.NoError(t, err)

	d, err := f.arb.DeleteContract(ctx, "admin", c.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Action: ActionDeactivated, DependentCount: 2}, d)

	got, err := f.conn.Contracts().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.StatusInactive, got.Status)
}

func TestDeleteContract_NoDependents(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.contract(t, f.apartment(t, "d4").ID)

	d, err := f.arb.DeleteContract(ctx, "admin", c.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionDeleted, d.Action)

	_, err = f.arb.DeleteContract(ctx, "admin", c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type failingPayments struct {
	repository.PaymentRepository
}

func (failingPayments) CountByContract(context.Context, string) (int64, error) {
	return 0, repository.Unavailable("count payments", errors.New("connection reset"))
}

func TestDeleteContract_CountFailureLeavesTargetUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.contract(t, f.apartment(t, "e5").ID)
	arb := New(Deps{
		Apartments:  f.conn.Apartments(),
		Contracts:   f.conn.Contracts(),
		Maintenance: f.conn.Maintenance(),
		Payments:    failingPayments{f.conn.Payments()},
	})

	_, err := arb.DeleteContract(ctx, "admin", c.ID)
	assert.ErrorIs(t, err, repository.ErrUnavailable)

	got, err := f.conn.Contracts().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.StatusActive, got.Status)
}
