// Package apartments contiene el controller de apartamentos.
package apartments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/apartments"
	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/apartments"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

type ApartmentsController struct {
	service svc.ApartmentService
	maxPage int
}

func NewApartmentsController(s svc.ApartmentService, maxPage int) *ApartmentsController {
	return &ApartmentsController{service: s, maxPage: maxPage}
}

// List maneja GET /apartments?active=&skip=&limit= (público)
func (c *ApartmentsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ApartmentsController.List"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	status, err := helpers.OptionalStatus(r, "active")
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.List(ctx, status, page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Get maneja GET /apartments/{id} (público)
func (c *ApartmentsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ApartmentsController.Get"))

	res, err := c.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Create maneja POST /apartments
func (c *ApartmentsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ApartmentsController.Create"))

	var req dto.CreateApartmentRequest
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

// Update maneja PUT /apartments/{id}
func (c *ApartmentsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ApartmentsController.Update"))

	var req dto.UpdateApartmentRequest
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

// Delete maneja DELETE /apartments/{id}: 200 con la decisión del árbitro.
func (c *ApartmentsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ApartmentsController.Delete"))

	d, err := c.service.Delete(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}
