// Package export renders computed ratio bundles into XLSX workbooks for
// distribution to society auditors.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/coopstack/ratio-engine/internal/ratios"
	"github.com/coopstack/ratio-engine/internal/store"
)

// Service is a tiny façade over the store that produces XLSX bytes for exports.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// ExportRatiosXLSX returns an XLSX workbook (as bytes) for the organization's
// stored ratio bundle of the given period: one sheet with the full ratio
// battery against its benchmarks and statuses, one with the interpretation.
func (s *Service) ExportRatiosXLSX(ctx context.Context, orgID uuid.UUID, periodLabel string) ([]byte, error) {
	start := time.Now()

	bundle, err := s.store.GetRatioBundle(ctx, orgID, periodLabel)
	if err != nil {
		return nil, fmt.Errorf("load ratio bundle: %w", err)
	}
	overrides, err := s.store.GetOverrides(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load benchmark overrides: %w", err)
	}
	bm := ratios.DefaultBenchmarks().Merge(overrides)

	f := excelize.NewFile()
	const sheet = "Ratio Analysis"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Ratio", "Value", "Benchmark", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, key := range ratios.RatioKeyOrder {
		value, ok := bundle.Values[key]
		if !ok {
			continue
		}
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, ratios.RatioLabels[key])
		write(2, value)
		write(3, benchmarkCell(bm, key))
		if status, ok := bundle.Statuses[key]; ok {
			write(4, string(status))
		}
		row++
	}

	const narrative = "Interpretation"
	if _, err := f.NewSheet(narrative); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(narrative, "A1", "Period")
	_ = f.SetCellValue(narrative, "B1", bundle.PeriodLabel)
	_ = f.SetCellValue(narrative, "A2", "Calculated At")
	_ = f.SetCellValue(narrative, "B2", bundle.CalculatedAt.Format("2006-01-02 15:04"))
	_ = f.SetCellValue(narrative, "A3", "Interpretation")
	_ = f.SetCellValue(narrative, "B3", bundle.Interpretation)
	_ = f.SetColWidth(narrative, "B", "B", 120)

	_ = f.SetColWidth(sheet, "A", "A", 42)
	_ = f.SetColWidth(sheet, "B", "C", 18)
	_ = f.SetColWidth(sheet, "D", "D", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"organization_id", orgID.String(),
		"period", periodLabel,
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Some margin ratios carry longer benchmark key names.
var benchmarkKeyAliases = map[string]string{
	"net_fin_margin":   "net_financial_margin",
	"gross_fin_margin": "gross_financial_margin",
}

// benchmarkCell renders a ratio's benchmark for display: a single ideal, a
// min-max band, or empty when contextual.
func benchmarkCell(bm ratios.BenchmarkSet, key string) string {
	if alias, ok := benchmarkKeyAliases[key]; ok {
		key = alias
	}
	if min, okMin := bm.Value(key + "_min"); okMin {
		if max, okMax := bm.Value(key + "_max"); okMax {
			return fmt.Sprintf("%.2f - %.2f", min, max)
		}
		return fmt.Sprintf(">= %.2f", min)
	}
	if v, ok := bm.Value(key); ok {
		return fmt.Sprintf("%.2f", v)
	}
	if v, ok := bm.Value(key + "_max"); ok {
		return fmt.Sprintf("<= %.2f", v)
	}
	return ""
}
