// Package maintenance contiene los controllers de mantenimientos y tipos.
package maintenance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/maintenance"
	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/maintenance"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

type MaintenanceController struct {
	service svc.MaintenanceService
	maxPage int
}

func NewMaintenanceController(s svc.MaintenanceService, maxPage int) *MaintenanceController {
	return &MaintenanceController{service: s, maxPage: maxPage}
}

// List maneja GET /maintenances?apartment_id=&status=
func (c *MaintenanceController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MaintenanceController.List"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	q := r.URL.Query()
	res, err := c.service.List(ctx, mw.GetPrincipal(ctx), q.Get("apartment_id"), q.Get("status"), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (c *MaintenanceController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MaintenanceController.Get"))

	res, err := c.service.Get(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (c *MaintenanceController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MaintenanceController.Create"))

	var req dto.CreateMaintenanceRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.Create(ctx, mw.GetPrincipal(ctx), req)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}

func (c *MaintenanceController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MaintenanceController.Update"))

	var req dto.UpdateMaintenanceRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.Update(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"), req)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Deactivate maneja DELETE /maintenances/{id}; el registro queda inactivo.
func (c *MaintenanceController) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MaintenanceController.Deactivate"))

	res, err := c.service.Deactivate(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}
