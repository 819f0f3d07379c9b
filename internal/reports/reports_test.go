package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	ownerID = "65a000000000000000000001"
	otherID = "65a000000000000000000002"
)

var (
	admin = &authz.Principal{SubjectID: "65a0000000000000000000ff", IsAdmin: true, IsActive: true}
	owner = &authz.Principal{SubjectID: ownerID, IsActive: true}
	other = &authz.Principal{SubjectID: otherID, IsActive: true}
)

type fixture struct {
	conn     *memory.Connection
	engine   *Engine
	aptID    string
	contract string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()
	apt, err := conn.Apartments().Create(ctx, repository.Apartment{Number: "a1", Level: "1"})
	require.NoError(t, err)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c, err := conn.Contracts().Create(ctx, repository.Contract{
		OwnerUserID: ownerID, ApartmentID: apt.ID, StartDate: start, EndDate: start.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	return fixture{
		conn: conn,
		engine: New(Deps{
			Reports:    conn.Reports(),
			Apartments: conn.Apartments(),
			Guard:      authz.NewGuard(conn.Contracts()),
		}),
		aptID:    apt.ID,
		contract: c.ID,
	}
}

func (f fixture) pending(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.conn.Maintenance().Create(context.Background(), repository.Maintenance{
			ApartmentID: f.aptID, ContractID: f.contract, MaintenanceTypeID: "65a0000000000000000000aa",
			Cost: 50, Status: repository.MaintenancePending, Active: true,
		})
		require.NoError(t, err)
	}
}

func TestEvaluate(t *testing.T) {
	below := Evaluate(2)
	assert.False(t, below.Alert)
	assert.Equal(t, BelowThresholdMessage, below.Message)
	assert.EqualValues(t, 2, below.PendingCount)

	above := Evaluate(3)
	assert.True(t, above.Alert)
	assert.EqualValues(t, 3, above.PendingCount)
}

func TestCheckMaintenance_Threshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pending(t, 2)

	res, err := f.engine.CheckMaintenance(ctx, owner, f.aptID)
	require.NoError(t, err)
	assert.False(t, res.Alert)
	assert.EqualValues(t, 2, res.PendingCount)

	f.pending(t, 1)
	res, err = f.engine.CheckMaintenance(ctx, owner, f.aptID)
	require.NoError(t, err)
	assert.True(t, res.Alert)
	assert.EqualValues(t, 3, res.PendingCount)
	assert.Equal(t, f.aptID, res.ApartmentID)
	assert.Equal(t, "a1", res.Number)
}

func TestCheckMaintenance_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.engine.CheckMaintenance(ctx, owner, "not-an-id")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = f.engine.CheckMaintenance(ctx, owner, "65a0000000000000000000bb")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.engine.CheckMaintenance(ctx, nil, f.aptID)
	assert.ErrorIs(t, err, jwtx.ErrTokenMissing)

	_, err = f.engine.CheckMaintenance(ctx, &authz.Principal{SubjectID: ownerID}, f.aptID)
	assert.ErrorIs(t, err, authz.ErrInactiveAccount)
}

func TestContractPaymentStats_OwnerAndAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, cost := range []float64{100, 200, 300} {
		_, err := f.conn.Payments().Create(ctx, repository.Payment{ContractID: f.contract, Cost: cost, PaymentMethodID: "cash", IsPaid: true})
		require.NoError(t, err)
	}

	for _, p := range []*authz.Principal{owner, admin} {
		s, err := f.engine.ContractPaymentStats(ctx, p, f.contract)
		require.NoError(t, err)
		assert.EqualValues(t, 3, s.TotalPayments)
		assert.InDelta(t, 600, s.TotalAmount, 0.001)
		assert.InDelta(t, 200, s.AvgAmount, 0.001)
	}

	_, err := f.engine.ContractPaymentStats(ctx, other, f.contract)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestContractPaymentStats_NoPayments(t *testing.T) {
	f := newFixture(t)
	s, err := f.engine.ContractPaymentStats(context.Background(), owner, f.contract)
	require.NoError(t, err)
	assert.Equal(t, repository.PaymentStats{ContractID: f.contract}, s)
}

func TestAdminOnlyReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.engine.ApartmentsWithContractCount(ctx, owner, repository.DefaultPage())
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = f.engine.PendingPayments(ctx, owner, repository.DefaultPage())
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = f.engine.PaymentStats(ctx, owner, repository.DefaultPage())
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = f.engine.SearchContracts(ctx, owner, "a1", repository.DefaultPage())
	assert.ErrorIs(t, err, repository.ErrForbidden)

	counts, err := f.engine.ApartmentsWithContractCount(ctx, admin, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.EqualValues(t, 1, counts[0].NumberOfContracts)
}

func TestContractDetail_Guarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.engine.ContractDetail(ctx, owner, f.contract)
	require.NoError(t, err)
	assert.Equal(t, "a1", d.ApartmentNumber)

	_, err = f.engine.ContractDetail(ctx, other, f.contract)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	// Un contrato inexistente es indistinguible de uno ajeno para un no-admin.
	_, err = f.engine.ContractDetail(ctx, other, "65a0000000000000000000cc")
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestBound_CapsLimit(t *testing.T) {
	e := New(Deps{MaxPageSize: 20})
	assert.Equal(t, repository.Page{Skip: 5, Limit: 20}, e.bound(repository.Page{Skip: 5, Limit: 90}))
	assert.Equal(t, repository.Page{Limit: repository.DefaultLimit}, e.bound(repository.Page{}))
}

func TestWriteStatsXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatsXLSX(&buf, []repository.PaymentStats{
		{ContractID: "65a000000000000000000010", TotalPayments: 3, TotalAmount: 600, AvgAmount: 200},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(StatsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, StatsHeader, rows[0])
	assert.Equal(t, []string{"65a000000000000000000010", "3", "600", "200"}, rows[1])
	assert.Equal(t, []string{StatsSheet}, f.GetSheetList())
}
