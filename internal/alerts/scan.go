// Package alerts recorre los departamentos activos, aplica el chequeo de
// umbral de mantenimiento y opcionalmente notifica por correo.
package alerts

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/email"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"github.com/dropDatabas3/alquiler/internal/reports"
)

// Checker es lo que el scanner necesita del engine de reportes.
type Checker interface {
	ScanMaintenance(ctx context.Context, apartmentID string) (reports.ThresholdResult, error)
}

type Scanner struct {
	Apartments repository.ApartmentRepository
	Checker    Checker
	// Sender y Recipients son opcionales: sin ellos Notify no envía.
	Sender     email.Sender
	Recipients []string
	PageSize   int
}

// Scan devuelve los resultados con alerta de todos los departamentos activos.
func (s *Scanner) Scan(ctx context.Context) ([]reports.ThresholdResult, error) {
	size := s.PageSize
	if size <= 0 || size > repository.MaxLimit {
		size = repository.MaxLimit
	}
	active := repository.StatusActive
	var out []reports.ThresholdResult

	// Una página corta no marca el final: el adapter descarta documentos
	// malformados de la página. Solo una página vacía corta el recorrido.
	for skip := 0; ; skip += size {
		page, err := s.Apartments.List(ctx, repository.ApartmentFilter{Status: &active}, repository.Page{Skip: skip, Limit: size})
		if err != nil {
			return out, fmt.Errorf("list apartments: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, a := range page {
			res, err := s.Checker.ScanMaintenance(ctx, a.ID)
			if err != nil {
				return out, fmt.Errorf("check apartment %s: %w", a.ID, err)
			}
			if res.Alert {
				out = append(out, res)
			}
		}
	}
	logger.From(ctx).Info("maintenance scan finished", logger.Component("alerts"), logger.Count(int64(len(out))))
	return out, nil
}

// Notify envía un correo con las alertas. Sin alertas o sin destinatarios no hace nada.
func (s *Scanner) Notify(ctx context.Context, results []reports.ThresholdResult) (bool, error) {
	if len(results) == 0 || s.Sender == nil || len(s.Recipients) == 0 {
		return false, nil
	}
	vars := email.AlertVars{Total: len(results)}
	for _, r := range results {
		vars.Items = append(vars.Items, email.AlertItem{ApartmentID: r.ApartmentID, Number: r.Number, PendingCount: r.PendingCount})
	}
	subject, html, text, err := email.RenderAlert(vars)
	if err != nil {
		return false, fmt.Errorf("render alert: %w", err)
	}
	if err := s.Sender.Send(ctx, s.Recipients, subject, html, text); err != nil {
		return false, err
	}
	return true, nil
}
