// Package services es el composition root de los services HTTP.
package services

import (
	"time"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/cache"
	"github.com/dropDatabas3/alquiler/internal/http/services/apartments"
	"github.com/dropDatabas3/alquiler/internal/http/services/auth"
	"github.com/dropDatabas3/alquiler/internal/http/services/contracts"
	"github.com/dropDatabas3/alquiler/internal/http/services/health"
	"github.com/dropDatabas3/alquiler/internal/http/services/maintenance"
	"github.com/dropDatabas3/alquiler/internal/http/services/payments"
	"github.com/dropDatabas3/alquiler/internal/http/services/reports"
	"github.com/dropDatabas3/alquiler/internal/http/services/users"
	"github.com/dropDatabas3/alquiler/internal/idp"
	"github.com/dropDatabas3/alquiler/internal/integrity"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	rep "github.com/dropDatabas3/alquiler/internal/reports"
	"github.com/dropDatabas3/alquiler/internal/store"
)

// Deps contiene las dependencias compartidas por todos los services.
type Deps struct {
	Store    store.AdapterConnection
	Issuer   *jwtx.Issuer
	Provider idp.Provider
	Audit    *audit.Trail
	// Cache es opcional; nil desactiva el cache del listado público.
	Cache    cache.Client
	CacheTTL time.Duration
	MaxPage  int
	Health   health.Deps
}

// Services agrupa los services de cada dominio.
type Services struct {
	Auth            auth.LoginService
	Users           users.UserService
	Apartments      apartments.ApartmentService
	Contracts       contracts.ContractService
	Payments        payments.PaymentService
	Maintenance     maintenance.MaintenanceService
	MaintenanceType maintenance.TypeService
	Reports         reports.ReportService
	Health          health.HealthService

	// Guard y Arbiter quedan expuestos para el CLI.
	Guard   *authz.Guard
	Arbiter *integrity.Arbiter
	Engine  *rep.Engine
}

// New arma todos los services sobre la misma conexión de store.
func New(d Deps) *Services {
	st := d.Store
	guard := authz.NewGuard(st.Contracts())
	arbiter := integrity.New(integrity.Deps{
		Apartments:  st.Apartments(),
		Contracts:   st.Contracts(),
		Maintenance: st.Maintenance(),
		Payments:    st.Payments(),
		Audit:       d.Audit,
	})
	engine := rep.New(rep.Deps{
		Reports:     st.Reports(),
		Apartments:  st.Apartments(),
		Guard:       guard,
		MaxPageSize: d.MaxPage,
	})

	var listing *cache.Listing
	if d.Cache != nil {
		listing = cache.NewListing(d.Cache, "apartments:public", d.CacheTTL)
	}

	maintDeps := maintenance.Deps{
		Maintenance: st.Maintenance(),
		Types:       st.MaintenanceTypes(),
		Contracts:   st.Contracts(),
		Guard:       guard,
		Audit:       d.Audit,
	}

	return &Services{
		Auth: auth.NewLoginService(auth.Deps{
			Users:    st.Users(),
			Provider: d.Provider,
			Issuer:   d.Issuer,
			Audit:    d.Audit,
		}),
		Users: users.NewUserService(users.Deps{
			Users:    st.Users(),
			Provider: d.Provider,
			Audit:    d.Audit,
		}),
		Apartments: apartments.NewApartmentService(apartments.Deps{
			Apartments: st.Apartments(),
			Arbiter:    arbiter,
			Listing:    listing,
			Audit:      d.Audit,
		}),
		Contracts: contracts.NewContractService(contracts.Deps{
			Contracts:  st.Contracts(),
			Apartments: st.Apartments(),
			Users:      st.Users(),
			Guard:      guard,
			Arbiter:    arbiter,
			Audit:      d.Audit,
		}),
		Payments: payments.NewPaymentService(payments.Deps{
			Payments:  st.Payments(),
			Contracts: st.Contracts(),
			Guard:     guard,
			Audit:     d.Audit,
		}),
		Maintenance:     maintenance.NewMaintenanceService(maintDeps),
		MaintenanceType: maintenance.NewTypeService(maintDeps),
		Reports:         reports.NewReportService(engine),
		Health:          health.NewHealthService(d.Health),
		Guard:           guard,
		Arbiter:         arbiter,
		Engine:          engine,
	}
}
