package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/alquiler/internal/http/controllers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
)

// registerHealthRoutes registra /, /healthz, /readyz y /metrics.
func registerHealthRoutes(r chi.Router, c *controllers.Controllers, metricsHandler http.Handler) {
	r.Get("/", c.Health.Root)
	r.Get("/healthz", c.Health.Healthz)
	r.Get("/readyz", c.Health.Readyz)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
}

// registerPublicRoutes registra las rutas sin token.
func registerPublicRoutes(r chi.Router, c *controllers.Controllers, limiter mw.BucketLimiter) {
	r.With(mw.WithRateLimit(limiter, "login", mw.LoginRateKey)).Post("/login", c.Auth.Login)

	r.Get("/apartments", c.Apartments.List)
	r.Get("/apartments/{id}", c.Apartments.Get)
	r.Get("/public/payments", c.Payments.PublicList)
}
