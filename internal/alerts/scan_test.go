package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/reports"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to      []string
	subject string
	text    string
}

func (r *recordingSender) Send(_ context.Context, to []string, subject, _, text string) error {
	r.to, r.subject, r.text = to, subject, text
	return nil
}

func seed(t *testing.T, conn *memory.Connection, number string, pending int) string {
	t.Helper()
	ctx := context.Background()
	a, err := conn.Apartments().Create(ctx, repository.Apartment{Number: number, Level: "1"})
	require.NoError(t, err)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := conn.Contracts().Create(ctx, repository.Contract{OwnerUserID: "65a000000000000000000001", ApartmentID: a.ID, StartDate: start, EndDate: start})
	require.NoError(t, err)
	for i := 0; i < pending; i++ {
		_, err := conn.Maintenance().Create(ctx, repository.Maintenance{
			ApartmentID: a.ID, ContractID: c.ID, Cost: 1, Status: repository.MaintenancePending, Active: true,
		})
		require.NoError(t, err)
	}
	return a.ID
}

func TestScanAndNotify(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()
	hot := seed(t, conn, "a1", 3)
	seed(t, conn, "b2", 2)
	seed(t, conn, "c3", 0)

	sender := &recordingSender{}
	s := &Scanner{
		Apartments: conn.Apartments(),
		Checker: reports.New(reports.Deps{
			Reports: conn.Reports(), Apartments: conn.Apartments(), Guard: authz.NewGuard(conn.Contracts()),
		}),
		Sender:     sender,
		Recipients: []string{"ops@example.com"},
		PageSize:   2,
	}

	res, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, hot, res[0].ApartmentID)
	assert.EqualValues(t, 3, res[0].PendingCount)

	sent, err := s.Notify(ctx, res)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"ops@example.com"}, sender.to)
	assert.Contains(t, sender.text, "a1")

	sent, err = s.Notify(ctx, nil)
	require.NoError(t, err)
	assert.False(t, sent)
}

// shortPages simula el adapter de Mongo: descarta de cada página los
// departamentos marcados como malformados sin compensar el skip.
type shortPages struct {
	repository.ApartmentRepository
	all       []repository.Apartment
	malformed map[string]bool
}

func (s *shortPages) List(_ context.Context, _ repository.ApartmentFilter, p repository.Page) ([]repository.Apartment, error) {
	var out []repository.Apartment
	for i := p.Skip; i < len(s.all) && i < p.Skip+p.Limit; i++ {
		if !s.malformed[s.all[i].ID] {
			out = append(out, s.all[i])
		}
	}
	return out, nil
}

type alwaysAlert struct{}

func (alwaysAlert) ScanMaintenance(_ context.Context, id string) (reports.ThresholdResult, error) {
	return reports.ThresholdResult{Alert: true, ApartmentID: id, PendingCount: 3}, nil
}

func TestScan_ShortPageDoesNotStopScan(t *testing.T) {
	repo := &shortPages{
		all: []repository.Apartment{
			{ID: "bad"}, {ID: "a1"}, {ID: "a2"}, {ID: "a3"},
		},
		malformed: map[string]bool{"bad": true},
	}
	s := &Scanner{Apartments: repo, Checker: alwaysAlert{}, PageSize: 2}

	res, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "a1", res[0].ApartmentID)
	assert.Equal(t, "a3", res[2].ApartmentID)
}
