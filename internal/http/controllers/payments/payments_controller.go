// Package payments contiene el controller de pagos.
package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/alquiler/internal/http/dto/payments"
	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/payments"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

type PaymentsController struct {
	service svc.PaymentService
	maxPage int
}

func NewPaymentsController(s svc.PaymentService, maxPage int) *PaymentsController {
	return &PaymentsController{service: s, maxPage: maxPage}
}

// List maneja GET /payments?is_paid= (pre-filtrado por dueño)
func (c *PaymentsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.List"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	isPaid, err := helpers.OptionalBool(r, "is_paid")
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.List(ctx, mw.GetPrincipal(ctx), isPaid, page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// PublicList maneja GET /public/payments?is_paid=&skip=&limit=
func (c *PaymentsController) PublicList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.PublicList"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	isPaid, err := helpers.OptionalBool(r, "is_paid")
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.PublicList(ctx, isPaid, page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ListByContract maneja GET /contracts/{id}/payments
func (c *PaymentsController) ListByContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.ListByContract"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.ListByContract(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Get maneja GET /payments/{id}
func (c *PaymentsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.Get"))

	res, err := c.service.Get(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// GetForContract maneja GET /contracts/{id}/payments/{paymentId}
func (c *PaymentsController) GetForContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.GetForContract"))

	res, err := c.service.GetForContract(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"), chi.URLParam(r, "paymentId"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Create maneja POST /contracts/{id}/payments
func (c *PaymentsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.Create"))

	var req dto.CreatePaymentRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.Create(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"), req)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}

// Update maneja PUT /payments/{id}
func (c *PaymentsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.Update"))

	var req dto.UpdatePaymentRequest
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
