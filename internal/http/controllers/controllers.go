// Package controllers agrupa todos los controllers HTTP.
//
// Flujo de inicialización:
//
//	svcs := services.New(deps)
//	ctrls := controllers.New(svcs, maxPage)
//	handler := router.New(router.Deps{Controllers: ctrls, ...})
package controllers

import (
	"github.com/dropDatabas3/alquiler/internal/http/controllers/apartments"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/auth"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/contracts"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/health"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/maintenance"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/payments"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/reports"
	"github.com/dropDatabas3/alquiler/internal/http/controllers/users"
	"github.com/dropDatabas3/alquiler/internal/http/services"
)

// Controllers agrupa los controllers por dominio.
type Controllers struct {
	Auth             *auth.AuthController
	Users            *users.UsersController
	Apartments       *apartments.ApartmentsController
	Contracts        *contracts.ContractsController
	Payments         *payments.PaymentsController
	Maintenance      *maintenance.MaintenanceController
	MaintenanceTypes *maintenance.TypesController
	Reports          *reports.ReportsController
	Health           *health.HealthController
}

// New crea todos los controllers. Es el único lugar donde se instancian.
func New(svc *services.Services, maxPage int) *Controllers {
	return &Controllers{
		Auth:             auth.NewAuthController(svc.Auth),
		Users:            users.NewUsersController(svc.Users),
		Apartments:       apartments.NewApartmentsController(svc.Apartments, maxPage),
		Contracts:        contracts.NewContractsController(svc.Contracts, maxPage),
		Payments:         payments.NewPaymentsController(svc.Payments, maxPage),
		Maintenance:      maintenance.NewMaintenanceController(svc.Maintenance, maxPage),
		MaintenanceTypes: maintenance.NewTypesController(svc.MaintenanceType, maxPage),
		Reports:          reports.NewReportsController(svc.Reports, maxPage),
		Health:           health.NewHealthController(svc.Health),
	}
}
