package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/alquiler/internal/http/controllers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
)

func registerAuthRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/me", c.Auth.Me)
	admin(r).Get("/admin", c.Auth.Admin)

	// PUT /users actualiza el perfil propio.
	r.Put("/users", c.Users.UpdateProfile)
	admin(r).Post("/users", c.Users.Create)
	admin(r).Get("/users/{id}", c.Users.Get)
	admin(r).Delete("/users/{id}", c.Users.Deactivate)
}

func registerApartmentRoutes(r chi.Router, c *controllers.Controllers) {
	admin(r).Post("/apartments", c.Apartments.Create)
	admin(r).Put("/apartments/{id}", c.Apartments.Update)
	admin(r).Delete("/apartments/{id}", c.Apartments.Delete)
	r.Get("/apartments/{id}/check_maintenance", c.Reports.CheckMaintenance)
}

func registerContractRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/contracts", c.Contracts.List)
	admin(r).Post("/contracts", c.Contracts.Create)
	admin(r).Get("/contracts/search", c.Reports.SearchContracts)

	r.Route("/contracts/{id}", func(r chi.Router) {
		r.Get("/", c.Contracts.Get)
		admin(r).Put("/", c.Contracts.Update)
		admin(r).Delete("/", c.Contracts.Delete)
		r.Get("/details", c.Reports.ContractDetail)

		r.Get("/payments", c.Payments.ListByContract)
		admin(r).Post("/payments", c.Payments.Create)
		r.Get("/payments/enriched", c.Reports.PaymentsWithContract)
		r.Get("/payments/stats", c.Reports.ContractPaymentStats)
		r.Get("/payments/{paymentId}", c.Payments.GetForContract)
	})
}

func registerPaymentRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/payments", c.Payments.List)
	r.Get("/payments/{id}", c.Payments.Get)
	admin(r).Put("/payments/{id}", c.Payments.Update)
}

func registerMaintenanceRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/maintenances", c.Maintenance.List)
	admin(r).Post("/maintenances", c.Maintenance.Create)
	r.Get("/maintenances/{id}", c.Maintenance.Get)
	admin(r).Put("/maintenances/{id}", c.Maintenance.Update)
	admin(r).Delete("/maintenances/{id}", c.Maintenance.Deactivate)

	r.Get("/maintenance_types", c.MaintenanceTypes.List)
	admin(r).Post("/maintenance_types", c.MaintenanceTypes.Create)
	r.Get("/maintenance_types/{id}", c.MaintenanceTypes.Get)
	admin(r).Put("/maintenance_types/{id}", c.MaintenanceTypes.Update)
	admin(r).Delete("/maintenance_types/{id}", c.MaintenanceTypes.Deactivate)
}

// registerReportRoutes registra los reportes globales; son todos de admin.
func registerReportRoutes(r chi.Router, c *controllers.Controllers) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(mw.RequireAdmin())
		r.Get("/apartments/contracts", c.Reports.ApartmentsContracts)
		r.Get("/payments/stats", c.Reports.PaymentStats)
		r.Get("/payments/stats.xlsx", c.Reports.PaymentStatsXLSX)
		r.Get("/payments/pending", c.Reports.PendingPayments)
	})
}
