package audit

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dropDatabas3/alquiler/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls int }

func (f *failingSink) Name() string                       { return "failing" }
func (f *failingSink) Write(context.Context, Event) error { f.calls++; return errors.New("down") }
func (f *failingSink) Close() error                       { return nil }

func TestNewEvent(t *testing.T) {
	e := NewEvent(KindDeleted, "u1", "apartment", "a1", nil)
	assert.Len(t, e.ID, 36)
	assert.NotNil(t, e.Detail)
	assert.False(t, e.At.IsZero())
}

func TestTrail_SwallowsSinkErrors(t *testing.T) {
	s := &failingSink{}
	before := testutil.ToFloat64(metrics.AuditFailures.WithLabelValues("failing"))

	NewTrail(s).Record(context.Background(), NewEvent(KindCreated, "u1", "payment", "p1", nil))

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuditFailures.WithLabelValues("failing")))
}

func TestTrail_NilIsNoop(t *testing.T) {
	var tr *Trail
	tr.Record(context.Background(), NewEvent(KindCreated, "", "x", "", nil))
	NewTrail(nil).Record(context.Background(), NewEvent(KindCreated, "", "x", "", nil))
}

func TestMigrationFiles_Ordered(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_audit_events.up.sql", files[0])
}

// Requiere un Postgres real: AUDIT_TEST_DSN=postgres://...
func TestPGSink_Integration(t *testing.T) {
	dsn := os.Getenv("AUDIT_TEST_DSN")
	if dsn == "" {
		t.Skip("AUDIT_TEST_DSN not set")
	}
	ctx := context.Background()
	s, err := NewPGSink(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Migrate(ctx)
	require.NoError(t, err)
	n, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Write(ctx, NewEvent(KindDeactivated, "u1", "contract", "c1", map[string]any{"dependent_count": 2})))
}
