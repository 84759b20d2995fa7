package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/store"
)

// buildWorkbook assembles an in-memory sheet-per-statement workbook in the
// two-column item-list layout.
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][2]any{
		"Trading Account": {
			{"Opening Stock", 25080},
			{"Purchases", 572444},
			{"Trade Charges", 8176},
			{"Sales", 552264},
			{"Closing Stock", 40000},
		},
		"Profit and Loss": {
			{"Interest on Loans", 42488657},
			{"Interest on Bank A/c", 6300000},
			{"Return on Investment", 1066314},
			{"Miscellaneous Income", 3485633},
			{"Interest on Deposits", 26698057},
			{"Interest on Borrowings", 770021},
			{"Establishment & Contingencies", 13476132},
			{"Provisions", 4533930},
			{"Net Profit", 7863516},
		},
		"Balance Sheet": {
			{"Share Capital", 5281006},
			{"Deposits", 484706199},
			{"Borrowings", 7001911},
			{"Reserves (Statutory & Free)", 10569840},
			{"Undistributed Profit", 10866453},
			{"Provisions", 53117811},
			{"Other Liabilities", 46444029},
			{"Cash in Hand", 16213483},
			{"Cash at Bank", 90000000},
			{"Investments", 13328928},
			{"Loans & Advances", 437223261},
			{"Fixed Assets", 55501843},
			{"Other Assets", 5678014},
			{"Stock in Trade", 40000},
		},
		"Operational Metrics": {
			{"Staff Count", 24},
		},
	}

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		_ = f.SetCellValue(name, "A1", "Particulars")
		_ = f.SetCellValue(name, "B1", "Amount")
		for i, row := range rows {
			_ = f.SetCellValue(name, fmt.Sprintf("A%d", i+2), row[0])
			_ = f.SetCellValue(name, fmt.Sprintf("B%d", i+2), row[1])
		}
	}
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(),
		common.StoreConfig{SQLitePath: filepath.Join(t.TempDir(), "test.db")},
		slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestService_IngestFileAndComputeRatios(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	svc := NewService(st, zap.NewNop())
	orgID := uuid.New()

	set, err := svc.IngestFile(ctx, orgID, "FY_2012_13.xlsx", buildWorkbook(t))
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if set.PeriodLabel != "FY_2012_13" {
		t.Errorf("period = %q, want FY_2012_13", set.PeriodLabel)
	}
	if !set.Trading.Sales.Equal(decimal.NewFromInt(552264)) {
		t.Errorf("sales = %s", set.Trading.Sales)
	}
	if !set.Balance.Deposits.Equal(decimal.NewFromInt(484706199)) {
		t.Errorf("deposits = %s", set.Balance.Deposits)
	}
	if set.Operational.StaffCount != 24 {
		t.Errorf("staff = %d", set.Operational.StaffCount)
	}

	// The set must be retrievable through the store.
	stored, err := st.GetStatementSet(ctx, orgID, "FY_2012_13")
	if err != nil {
		t.Fatal(err)
	}
	if !stored.ProfitLoss.NetProfit.Equal(decimal.NewFromInt(7863516)) {
		t.Errorf("stored net profit = %s", stored.ProfitLoss.NetProfit)
	}

	bundle, err := svc.ComputeRatios(ctx, orgID, "FY_2012_13")
	if err != nil {
		t.Fatalf("ComputeRatios: %v", err)
	}
	if bundle.Values["working_fund"] != 518425409 {
		t.Errorf("working_fund = %v", bundle.Values["working_fund"])
	}
	if math.Abs(bundle.Values["stock_turnover"]-17.38) > 0.01 {
		t.Errorf("stock_turnover = %v", bundle.Values["stock_turnover"])
	}

	// And the bundle must have been persisted.
	saved, err := st.GetRatioBundle(ctx, orgID, "FY_2012_13")
	if err != nil {
		t.Fatal(err)
	}
	if saved.Interpretation == "" {
		t.Error("persisted bundle has no interpretation")
	}
}

func TestService_IngestFile_UnsupportedFormat(t *testing.T) {
	st := openTestStore(t)
	svc := NewService(st, zap.NewNop())

	_, err := svc.IngestFile(context.Background(), uuid.New(), "statements.csv", []byte("a,b"))
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestService_ComputeRatios_UnknownPeriod(t *testing.T) {
	st := openTestStore(t)
	svc := NewService(st, zap.NewNop())

	_, err := svc.ComputeRatios(context.Background(), uuid.New(), "FY_2030_31")
	if err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestService_SaveOverrides(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	svc := NewService(st, zap.NewNop())
	orgID := uuid.New()

	overrides, err := svc.SaveOverrides(ctx, orgID, []byte(`{"net_margin": 1.25, "bogus": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if overrides["net_margin"] == nil || *overrides["net_margin"] != 1.25 {
		t.Errorf("net_margin = %v", overrides["net_margin"])
	}
	if _, ok := overrides["bogus"]; ok {
		t.Error("unknown key survived validation")
	}

	if _, err := svc.SaveOverrides(ctx, orgID, []byte(`{"net_margin": "high"}`)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_SaveMapping(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	svc := NewService(st, zap.NewNop())
	orgID := uuid.New()

	err := svc.SaveMapping(ctx, entity.FieldMapping{
		OrganizationID: orgID,
		StatementType:  entity.StatementBalance,
		CanonicalField: "deposits",
		DisplayName:    "Member Deposits",
		Aliases:        []string{"deposits from members"},
	})
	if err != nil {
		t.Fatal(err)
	}
	mappings, err := st.ListMappings(ctx, orgID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mappings) != 1 || mappings[0].CanonicalField != "deposits" {
		t.Fatalf("unexpected mappings: %+v", mappings)
	}

	err = svc.SaveMapping(ctx, entity.FieldMapping{
		OrganizationID: orgID,
		StatementType:  "LEDGER",
		CanonicalField: "",
		DisplayName:    "Broken",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("error %v does not wrap ErrValidation", err)
	}
	for _, want := range []string{"canonical_field is required", "statement_type must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q lacks %q", err.Error(), want)
		}
	}
}

func TestPeriodLabelFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"FY_2012_13.xlsx", "FY_2012_13"},
		{"/uploads/q1_fy_2024_25.docx", "Q1_FY_2024_25"},
		{"apr-2024.pdf", "Apr_2024"},
		{"annual-statements.xlsx", "annual-statements"},
	}
	for _, tt := range tests {
		if got := periodLabelFromFilename(tt.filename); got != tt.want {
			t.Errorf("periodLabelFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
