// Package reports expone los reportes de agregación y el chequeo de umbral.
package reports

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/alquiler/internal/http/helpers"
	mw "github.com/dropDatabas3/alquiler/internal/http/middlewares"
	svc "github.com/dropDatabas3/alquiler/internal/http/services/reports"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsController struct {
	service svc.ReportService
	maxPage int
}

func NewReportsController(s svc.ReportService, maxPage int) *ReportsController {
	return &ReportsController{service: s, maxPage: maxPage}
}

// ApartmentsContracts maneja GET /reports/apartments/contracts
func (c *ReportsController) ApartmentsContracts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.ApartmentsContracts"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.ApartmentsWithContractCount(ctx, mw.GetPrincipal(ctx), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ContractDetail maneja GET /contracts/{id}/details
func (c *ReportsController) ContractDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.ContractDetail"))

	res, err := c.service.ContractDetail(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// SearchContracts maneja GET /contracts/search?q=
func (c *ReportsController) SearchContracts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.SearchContracts"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.SearchContracts(ctx, mw.GetPrincipal(ctx), r.URL.Query().Get("q"), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// PaymentsWithContract maneja GET /contracts/{id}/payments/enriched
func (c *ReportsController) PaymentsWithContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.PaymentsWithContract"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.PaymentsWithContract(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ContractPaymentStats maneja GET /contracts/{id}/payments/stats
func (c *ReportsController) ContractPaymentStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.ContractPaymentStats"))

	res, err := c.service.ContractPaymentStats(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// PaymentStats maneja GET /reports/payments/stats
func (c *ReportsController) PaymentStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.PaymentStats"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.PaymentStats(ctx, mw.GetPrincipal(ctx), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// PaymentStatsXLSX maneja GET /reports/payments/stats.xlsx
func (c *ReportsController) PaymentStatsXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.PaymentStatsXLSX"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	// Se arma en memoria para poder responder un error JSON si falla.
	var buf bytes.Buffer
	if err := c.service.ExportPaymentStats(ctx, mw.GetPrincipal(ctx), page, &buf); err != nil {
		helpers.Fail(w, log, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="payment_stats.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// PendingPayments maneja GET /reports/payments/pending
func (c *ReportsController) PendingPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.PendingPayments"))

	page, err := helpers.Page(r, c.maxPage)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	res, err := c.service.PendingPayments(ctx, mw.GetPrincipal(ctx), page)
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// CheckMaintenance maneja GET /apartments/{id}/check_maintenance
func (c *ReportsController) CheckMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ReportsController.CheckMaintenance"))

	res, err := c.service.CheckMaintenance(ctx, mw.GetPrincipal(ctx), chi.URLParam(r, "id"))
	if err != nil {
		helpers.Fail(w, log, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}
