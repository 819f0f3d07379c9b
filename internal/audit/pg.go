package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	migrations "github.com/dropDatabas3/alquiler/migrations/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSink persiste eventos en la tabla audit_events.
type PGSink struct {
	pool *pgxpool.Pool
}

// NewPGSink abre un pool contra dsn.
func NewPGSink(ctx context.Context, dsn string) (*PGSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("audit pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit pg ping: %w", err)
	}
	return &PGSink{pool: pool}, nil
}

func (s *PGSink) Name() string { return "postgres" }

// Pool expone el pool para el collector de métricas.
func (s *PGSink) Pool() *pgxpool.Pool { return s.pool }

const insertEventSQL = `INSERT INTO audit_events (id, kind, actor_id, entity, entity_id, detail, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (s *PGSink) Write(ctx context.Context, e Event) error {
	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return fmt.Errorf("marshal detail: %w", err)
	}
	_, err = s.pool.Exec(ctx, insertEventSQL, e.ID, e.Kind, e.ActorID, e.Entity, e.EntityID, detail, e.At)
	return err
}

func (s *PGSink) Close() error {
	s.pool.Close()
	return nil
}

// Migrate aplica las migraciones embebidas que falten, en orden de nombre.
// Devuelve cuántas aplicó.
func (s *PGSink) Migrate(ctx context.Context) (int, error) {
	files, err := migrationFiles()
	if err != nil {
		return 0, err
	}
	if _, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS audit_schema_migrations (
		version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`); err != nil {
		return 0, fmt.Errorf("migrations table: %w", err)
	}

	applied := 0
	for _, name := range files {
		var exists bool
		err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM audit_schema_migrations WHERE version = $1)`, name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		body, err := fs.ReadFile(migrations.AuditFS, migrations.AuditDir+"/"+name)
		if err != nil {
			return applied, err
		}
		err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO audit_schema_migrations (version) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply %s: %w", name, err)
		}
		applied++
	}
	return applied, nil
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrations.AuditFS, migrations.AuditDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
