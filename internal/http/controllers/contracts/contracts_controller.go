// Package contracts contiene el controller de contratos.
package contracts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/contracts"
	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/contracts"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

type ContractsController struct {
	service svc.ContractService
	maxPage int
}

func NewContractsController(s svc.ContractService, maxPage int) *ContractsController {
	return &ContractsController{service: s, maxPage: maxPage}
}

// List maneja GET /contracts?active=&skip=&limit=
func (c *ContractsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContractsController.List"))

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
	res, err := c.service.List(ctx, mw.GetPrincipal(ctx), status, page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Get maneja GET /contracts/{id}
func (c *ContractsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContractsController.Get"))

	res, err := c.service.Get(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Create maneja POST /contracts
func (c *ContractsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContractsController.Create"))

	var req dto.CreateContractRequest
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

// Update maneja PUT /contracts/{id}
func (c *ContractsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContractsController.Update"))

	var req dto.UpdateContractRequest
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

// Delete maneja DELETE /contracts/{id}
func (c *ContractsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ContractsController.Delete"))

	d, err := c.service.Delete(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}
