// Package router arma el árbol de rutas chi con sus middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/alquiler/internal/http/controllers"
	httperrors "github.com/dropDatabas3/alquiler/internal/http/errors"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	"github.com/dropDatabas3/alquiler/internal/metrics"
)

// Deps contiene todo lo que necesita el router.
type Deps struct {
	Controllers *controllers.Controllers
	Resolver    mw.PrincipalResolver
	// Limiter es opcional; nil desactiva el rate limit del login.
	Limiter mw.BucketLimiter
	// Metrics es el handler de /metrics; nil no expone la ruta.
	Metrics http.Handler
}

// New devuelve el handler raíz del servicio.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithSecurityHeaders(),
		metrics.WithMetrics,
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	c := d.Controllers
	registerHealthRoutes(r, c, d.Metrics)
	registerPublicRoutes(r, c, d.Limiter)

	// Todo lo demás requiere token válido y cuenta activa.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(d.Resolver), mw.RequireActive())
		registerAuthRoutes(r, c)
		registerApartmentRoutes(r, c)
		registerContractRoutes(r, c)
		registerPaymentRoutes(r, c)
		registerMaintenanceRoutes(r, c)
		registerReportRoutes(r, c)
	})
	return r
}

// admin agrega RequireAdmin a una ruta puntual.
func admin(r chi.Router) chi.Router { return r.With(mw.RequireAdmin()) }
