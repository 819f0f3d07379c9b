package reports

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/metrics"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/validation"
)

// PendingThreshold: más de esta cantidad de mantenimientos pendientes dispara alerta.
const PendingThreshold = 2

// BelowThresholdMessage es la respuesta cuando no hay alerta.
var BelowThresholdMessage = fmt.Sprintf("%d or fewer pending maintenance records", PendingThreshold)

// ThresholdResult es el resultado del chequeo de mantenimiento de un apartamento.
type ThresholdResult struct {
	Alert        bool
	Message      string
	ApartmentID  string
	Number       string
	PendingCount int64
}

// CheckMaintenance cuenta los mantenimientos pendientes del apartamento y
// arma la alerta si supera el umbral.
func (e *Engine) CheckMaintenance(ctx context.Context, p *authz.Principal, apartmentID string) (ThresholdResult, error) {
	if err := authz.RequireActive(p); err != nil {
		return ThresholdResult{}, err
	}
	return e.checkMaintenance(ctx, apartmentID)
}

// ScanMaintenance es la variante sin principal para tareas de operador (CLI).
func (e *Engine) ScanMaintenance(ctx context.Context, apartmentID string) (ThresholdResult, error) {
	return e.checkMaintenance(ctx, apartmentID)
}

func (e *Engine) checkMaintenance(ctx context.Context, apartmentID string) (ThresholdResult, error) {
	id, err := validation.ID("apartment_id", apartmentID)
	if err != nil {
		return ThresholdResult{}, err
	}
	apt, err := e.apartments.GetByID(ctx, id)
	if err != nil {
		return ThresholdResult{}, err
	}
	n, err := e.reports.PendingMaintenanceCount(ctx, id)
	if err != nil {
		return ThresholdResult{}, err
	}

	res := Evaluate(n)
	res.ApartmentID = id
	res.Number = apt.Number
	if res.Alert {
		metrics.MaintenanceAlerts.Inc()
		logger.From(ctx).Warn("maintenance threshold exceeded",
			logger.Component("reports"), logger.ApartmentID(id), logger.Count(n))
	}
	return res, nil
}

// Evaluate aplica la regla de umbral sobre una cuenta ya calculada.
func Evaluate(pending int64) ThresholdResult {
	if pending > PendingThreshold {
		return ThresholdResult{
			Alert:        true,
			Message:      fmt.Sprintf("apartment has %d pending maintenance records", pending),
			PendingCount: pending,
		}
	}
	return ThresholdResult{Message: BelowThresholdMessage, PendingCount: pending}
}
