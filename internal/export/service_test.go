package export

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/store"
)

func TestExportRatiosXLSX(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	st, err := store.OpenSQLite(ctx, common.StoreConfig{SQLitePath: filepath.Join(t.TempDir(), "test.db")}, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	orgID := uuid.New()
	bundle := &entity.RatioBundle{
		PeriodLabel: "FY_2012_13",
		Values: map[string]float64{
			"working_fund":   518425409,
			"net_margin":     1.52,
			"stock_turnover": 17.38,
		},
		Statuses: map[string]entity.Status{
			"net_margin":     entity.StatusGreen,
			"stock_turnover": entity.StatusGreen,
		},
		Interpretation: "Healthy profitability.",
		CalculatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := st.SaveRatioBundle(ctx, orgID, bundle); err != nil {
		t.Fatal(err)
	}

	svc := NewService(st, logger)
	out, err := svc.ExportRatiosXLSX(ctx, orgID, "FY_2012_13")
	if err != nil {
		t.Fatalf("ExportRatiosXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Ratio Analysis")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3 ratios", len(rows))
	}
	if rows[0][0] != "Ratio" || rows[0][3] != "Status" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	// working_fund precedes the classified ratios in presentation order.
	if rows[1][0] != "Working Fund" {
		t.Errorf("first ratio row = %v, want Working Fund", rows[1])
	}
	foundNetMargin := false
	for _, row := range rows[1:] {
		if row[0] == "Net Margin (%)" {
			foundNetMargin = true
			if len(row) < 4 || row[3] != "green" {
				t.Errorf("net margin row = %v, want green status", row)
			}
			if row[2] != "1.00" {
				t.Errorf("net margin benchmark = %q, want 1.00", row[2])
			}
		}
	}
	if !foundNetMargin {
		t.Error("net margin row missing")
	}

	interp, err := f.GetCellValue("Interpretation", "B3")
	if err != nil {
		t.Fatal(err)
	}
	if interp != "Healthy profitability." {
		t.Errorf("interpretation cell = %q", interp)
	}
}

func TestExportRatiosXLSX_MissingPeriod(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	st, err := store.OpenSQLite(ctx, common.StoreConfig{SQLitePath: filepath.Join(t.TempDir(), "test.db")}, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	svc := NewService(st, logger)
	if _, err := svc.ExportRatiosXLSX(ctx, uuid.New(), "FY_2030_31"); err == nil {
		t.Fatal("expected error for unknown period")
	}
}
