// Package health contiene el service para liveness/readiness.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/health"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"golang.org/x/sync/errgroup"
)

// Check es un ping a una dependencia.
type Check func(ctx context.Context) error

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
	Version() dto.VersionResponse
}

// Deps contiene los checks por componente. Los marcados como Required
// dejan el servicio "unavailable"; el resto solo "degraded".
type Deps struct {
	Name     string
	Version  string
	Required map[string]Check // store
	Optional map[string]Check // cache, audit
	Timeout  time.Duration
}

type healthService struct {
	deps Deps
}

func NewHealthService(d Deps) HealthService {
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}
	return &healthService{deps: d}
}

func (s *healthService) Version() dto.VersionResponse {
	return dto.VersionResponse{Name: s.deps.Name, Version: s.deps.Version}
}

// Check corre todos los pings en paralelo con timeout compartido.
func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components []dto.Component
		reqDown    bool
		optDown    bool
	)
	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, check Check, required bool) {
		g.Go(func() error {
			c := dto.Component{Name: name, Status: "ok"}
			if err := check(gctx); err != nil {
				c.Status = "down"
				c.Error = err.Error()
				logger.From(ctx).Warn("health check failed",
					logger.Component(name), logger.Layer("service"), logger.Err(err))
			}
			mu.Lock()
			defer mu.Unlock()
			components = append(components, c)
			if c.Status == "down" {
				if required {
					reqDown = true
				} else {
					optDown = true
				}
			}
			return nil
		})
	}
	for name, c := range s.deps.Required {
		run(name, c, true)
	}
	for name, c := range s.deps.Optional {
		run(name, c, false)
	}
	_ = g.Wait()

	sort.Slice(components, func(i, j int) bool { return components[i].Name < components[j].Name })
	status := "ready"
	switch {
	case reqDown:
		status = "unavailable"
	case optDown:
		status = "degraded"
	}
	return dto.HealthResponse{Status: status, Version: s.deps.Version, Components: components}
}
