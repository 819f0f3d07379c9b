package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	store "github.com/dropDatabas3/alquiler/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	conn, err := store.OpenAdapter(context.Background(), store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", conn.Name())
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestApartments_GetByNumberIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := New().Apartments()

	a, err := repo.Create(ctx, repository.Apartment{Number: "A1", Level: "1"})
	require.NoError(t, err)

	got, err := repo.GetByNumber(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestApartments_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := New().Apartments()

	a, err := repo.Create(ctx, repository.Apartment{Number: "a1", Level: "1"})
	require.NoError(t, err)
	assert.Len(t, a.ID, 24)
	assert.Equal(t, repository.StatusActive, a.Status)

	got, err := repo.GetByNumber(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	a.Level = "2"
	upd, err := repo.Update(ctx, *a)
	require.NoError(t, err)
	assert.Equal(t, "2", upd.Level)
	assert.Equal(t, a.CreatedAt, upd.CreatedAt)

	require.NoError(t, repo.SetStatus(ctx, a.ID, repository.StatusInactive))
	inactive := repository.StatusInactive
	list, err := repo.List(ctx, repository.ApartmentFilter{Status: &inactive}, repository.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.SetStatus(ctx, a.ID, repository.StatusActive), repository.ErrNotFound)
}

func TestList_Paginates(t *testing.T) {
	ctx := context.Background()
	repo := New().Apartments()
	var ids []string
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		a, err := repo.Create(ctx, repository.Apartment{Number: n, Level: "1"})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	page, err := repo.List(ctx, repository.ApartmentFilter{}, repository.Page{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)

	page, err = repo.List(ctx, repository.ApartmentFilter{}, repository.Page{Skip: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestScopedListings(t *testing.T) {
	ctx := context.Background()
	c := New()
	m := c.Maintenance()
	p := c.Payments()

	_, _ = m.Create(ctx, repository.Maintenance{ContractID: "c1", Status: repository.MaintenancePending})
	_, _ = m.Create(ctx, repository.Maintenance{ContractID: "c2", Status: repository.MaintenancePending})
	_, _ = p.Create(ctx, repository.Payment{ContractID: "c1", Cost: 10, IsPaid: true})
	_, _ = p.Create(ctx, repository.Payment{ContractID: "c2", Cost: 10, IsPaid: false})

	ms, err := m.List(ctx, repository.MaintenanceFilter{Scope: repository.Scope{ContractIDs: []string{"c1"}}}, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "c1", ms[0].ContractID)

	ms, err = m.List(ctx, repository.MaintenanceFilter{Scope: repository.Scope{}}, repository.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, ms)

	unpaid := false
	ps, err := p.List(ctx, repository.PaymentFilter{Scope: repository.Scope{All: true}, IsPaid: &unpaid}, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "c2", ps[0].ContractID)
}

func seedContracts(t *testing.T, c *Connection, apartmentID string, n int) []string {
	t.Helper()
	var ids []string
	for i := 0; i < n; i++ {
		ct, err := c.Contracts().Create(context.Background(), repository.Contract{
			OwnerUserID: "u1",
			ApartmentID: apartmentID,
			StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		ids = append(ids, ct.ID)
	}
	return ids
}

func TestReports_ApartmentsWithContractCount(t *testing.T) {
	ctx := context.Background()
	c := New()
	busy, _ := c.Apartments().Create(ctx, repository.Apartment{Number: "a1", Level: "1"})
	empty, _ := c.Apartments().Create(ctx, repository.Apartment{Number: "a2", Level: "1"})
	seedContracts(t, c, busy.ID, 3)

	rows, err := c.Reports().ApartmentsWithContractCount(ctx, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byID := map[string]int64{}
	for _, r := range rows {
		byID[r.ID] = r.NumberOfContracts
	}
	assert.Equal(t, int64(3), byID[busy.ID])
	assert.Equal(t, int64(0), byID[empty.ID])
}

func TestReports_PaymentsAndStats(t *testing.T) {
	ctx := context.Background()
	c := New()
	apt, _ := c.Apartments().Create(ctx, repository.Apartment{Number: "a1", Level: "1"})
	ids := seedContracts(t, c, apt.ID, 2)

	for _, cost := range []float64{100, 200, 300} {
		_, err := c.Payments().Create(ctx, repository.Payment{ContractID: ids[0], Cost: cost, IsPaid: true})
		require.NoError(t, err)
	}
	_, _ = c.Payments().Create(ctx, repository.Payment{ContractID: ids[1], Cost: 50, IsPaid: false})

	stats, err := c.Reports().PaymentStats(ctx, ids[0], repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(3), stats[0].TotalPayments)
	assert.InDelta(t, 600, stats[0].TotalAmount, 0.001)
	assert.InDelta(t, 200, stats[0].AvgAmount, 0.001)

	all, err := c.Reports().PaymentStats(ctx, "", repository.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enriched, err := c.Reports().PaymentsWithContract(ctx, ids[0], repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, enriched, 3)
	assert.Equal(t, ids[0], enriched[0].Contract.ID)
	assert.True(t, enriched[0].Contract.Active)

	require.NoError(t, c.Contracts().SetStatus(ctx, ids[0], repository.StatusInactive))
	pending, err := c.Reports().PendingPayments(ctx, repository.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, pending, 4)
	for _, p := range pending {
		if p.ContractID == ids[0] {
			assert.False(t, p.ContractActive)
		} else {
			assert.False(t, p.IsPaid)
		}
	}
}

func TestReports_ContractDetailAndSearch(t *testing.T) {
	ctx := context.Background()
	c := New()
	apt, _ := c.Apartments().Create(ctx, repository.Apartment{Number: "b205", Level: "2"})
	ids := seedContracts(t, c, apt.ID, 1)

	d, err := c.Reports().ContractWithApartment(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "b205", d.ApartmentNumber)

	_, err = c.Reports().ContractWithApartment(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := c.Reports().SearchContracts(ctx, "B20", repository.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, found, 1)
	found, err = c.Reports().SearchContracts(ctx, "zzz", repository.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestReports_PendingMaintenanceCount(t *testing.T) {
	ctx := context.Background()
	c := New()
	for _, st := range []repository.MaintenanceStatus{
		repository.MaintenancePending, repository.MaintenancePending, repository.MaintenanceCompleted,
	} {
		_, _ = c.Maintenance().Create(ctx, repository.Maintenance{ApartmentID: "a1", Status: st})
	}
	n, err := c.Reports().PendingMaintenanceCount(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
