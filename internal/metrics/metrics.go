// Package metrics define las métricas Prometheus del servicio. Vive aparte de
// internal/http para que integrity, reports y audit puedan instrumentar sin ciclos.
package metrics

import (
	"net/http"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo por método y ruta",
	}, []string{"method", "path"})

	// Dominio
	IntegrityDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alquiler_integrity_decisions_total",
		Help: "Decisiones de borrado por entidad y acción (deleted|deactivated)",
	}, []string{"entity", "action"})

	MaintenanceAlerts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alquiler_maintenance_alerts_total",
		Help: "Chequeos de mantenimiento que superaron el umbral de pendientes",
	})

	AuditFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alquiler_audit_failures_total",
		Help: "Eventos de auditoría que el sink no pudo persistir",
	}, []string{"sink"})

	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alquiler_rate_limited_total",
		Help: "Requests rechazadas por rate limit",
	}, []string{"bucket"})
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Config agrupa lo necesario para exponer /metrics.
type Config struct {
	Registry prometheus.Registerer
	// AuditPool expone estadísticas del pool de auditoría (nil si el sink no es postgres).
	AuditPool func() *pgxpool.Pool
}

// Register registra todas las métricas y devuelve el handler de /metrics.
func Register(cfg Config) (http.Handler, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
			IntegrityDecisions, MaintenanceAlerts, AuditFailures, RateLimited,
		} {
			if err := registerCollector(reg, c); err != nil {
				registerErr = err
				return
			}
		}
	})
	if registerErr != nil {
		return nil, registerErr
	}
	if cfg.AuditPool != nil {
		if err := registerCollector(reg, newPoolCollector(cfg.AuditPool)); err != nil {
			return nil, err
		}
	}
	return promhttp.Handler(), nil
}

// registerCollector ignora duplicados.
func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// poolCollector expone gauges del pool pgx del sink de auditoría.
type poolCollector struct {
	pool func() *pgxpool.Pool

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
}

func newPoolCollector(pool func() *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:     pool,
		acquired: prometheus.NewDesc("audit_pgxpool_acquired", "Conexiones adquiridas del pool de auditoría", nil, nil),
		idle:     prometheus.NewDesc("audit_pgxpool_idle", "Conexiones inactivas del pool de auditoría", nil, nil),
		total:    prometheus.NewDesc("audit_pgxpool_total", "Conexiones totales del pool de auditoría", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	p := c.pool()
	if p == nil {
		return
	}
	st := p.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(st.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(st.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(st.TotalConns()))
}
