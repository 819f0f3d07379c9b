// Package audit registra eventos de negocio (altas, cambios, borrados
// arbitrados) en un sink configurable: log estructurado o Postgres.
package audit

import (
	"context"
	"time"

	"github.com/dropDatabas3/alquiler/internal/metrics"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/google/uuid"
)

// Tipos de evento.
const (
	KindCreated     = "created"
	KindUpdated     = "updated"
	KindDeleted     = "deleted"
	KindDeactivated = "deactivated"
	KindLogin       = "login"
)

// Event es un evento de auditoría.
type Event struct {
	ID       string
	Kind     string
	ActorID  string
	Entity   string
	EntityID string
	Detail   map[string]any
	At       time.Time
}

// NewEvent arma un evento con ID y timestamp.
func NewEvent(kind, actorID, entity, entityID string, detail map[string]any) Event {
	if detail == nil {
		detail = map[string]any{}
	}
	return Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		ActorID:  actorID,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
		At:       time.Now().UTC(),
	}
}

// Sink persiste eventos.
type Sink interface {
	Name() string
	Write(ctx context.Context, e Event) error
	Close() error
}

// Trail es la fachada que usan los services: nunca falla el request.
type Trail struct {
	sink Sink
}

func NewTrail(s Sink) *Trail {
	if s == nil {
		s = LogSink{}
	}
	return &Trail{sink: s}
}

// Record escribe el evento; un error del sink se loguea y se cuenta.
func (t *Trail) Record(ctx context.Context, e Event) {
	if t == nil || t.sink == nil {
		return
	}
	if err := t.sink.Write(ctx, e); err != nil {
		metrics.AuditFailures.WithLabelValues(t.sink.Name()).Inc()
		logger.From(ctx).Warn("audit write failed",
			logger.Component("audit"),
			logger.String("sink", t.sink.Name()),
			logger.String("kind", e.Kind),
			logger.Entity(e.Entity),
			logger.EntityID(e.EntityID),
			logger.Err(err))
	}
}

// LogSink escribe eventos como líneas de log estructurado.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Write(ctx context.Context, e Event) error {
	logger.From(ctx).Info("audit",
		logger.Component("audit"),
		logger.String("event_id", e.ID),
		logger.String("kind", e.Kind),
		logger.UserID(e.ActorID),
		logger.Entity(e.Entity),
		logger.EntityID(e.EntityID),
		logger.Any("detail", e.Detail))
	return nil
}

func (LogSink) Close() error { return nil }
