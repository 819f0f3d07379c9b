package reports

import (
	"fmt"
	"io"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// StatsSheet es la hoja del workbook de estadísticas.
const StatsSheet = "Stats"

// StatsHeader es la fila de encabezado del workbook.
var StatsHeader = []string{"contract_id", "total_payments", "total_amount", "avg_amount"}

// WriteStatsXLSX escribe las estadísticas como workbook Excel.
func WriteStatsXLSX(w io.Writer, stats []repository.PaymentStats) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(StatsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(StatsSheet, "A1", &StatsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(StatsSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(StatsSheet, "A", "A", 28); err != nil {
		return err
	}

	for i, s := range stats {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.ContractID, s.TotalPayments, s.TotalAmount, s.AvgAmount}
		if err := f.SetSheetRow(StatsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
