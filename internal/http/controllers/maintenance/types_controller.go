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

// TypesController maneja /maintenance_types.
type TypesController struct {
	service svc.TypeService
	maxPage int
}

func NewTypesController(s svc.TypeService, maxPage int) *TypesController {
	return &TypesController{service: s, maxPage: maxPage}
}

func (c *TypesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TypesController.List"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.List(ctx, mw.GetPrincipal(ctx), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (c *TypesController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TypesController.Get"))

	res, err := c.service.Get(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (c *TypesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TypesController.Create"))

	var req dto.CreateTypeRequest
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

func (c *TypesController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TypesController.Update"))

	var req dto.UpdateTypeRequest
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

func (c *TypesController) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TypesController.Deactivate"))

	res, err := c.service.Deactivate(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}
