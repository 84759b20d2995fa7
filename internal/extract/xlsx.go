package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// sheetNameVariants lists the recognized sheet names per statement, in
// priority order. The first convention is the long-form template naming, the
// second the abbreviated naming seen in older uploads. Matching is by fuzzy
// containment over normalized names, so "Trading Account FY 2023-24" still
// resolves.
var sheetNameVariants = map[entity.StatementType][]string{
	entity.StatementTrading: {
		"trading account", "trading",
	},
	entity.StatementIncome: {
		"profit and loss", "profit & loss", "income and expenditure",
		"profit", "income", "p&l", "pl",
	},
	entity.StatementBalance: {
		"balance sheet", "balance", "bs",
	},
	entity.StatementOperational: {
		"operational metrics", "operational", "other details", "staff",
	},
}

// WorkbookExtractor reads sheet-per-statement spreadsheets.
type WorkbookExtractor struct {
	file *excelize.File
}

func NewWorkbookExtractor(data []byte) (*WorkbookExtractor, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &WorkbookExtractor{file: f}, nil
}

func (w *WorkbookExtractor) Extract() (map[entity.StatementType][]entity.RawLineItem, error) {
	defer w.file.Close()

	sheets := w.file.GetSheetList()
	grids := make(map[entity.StatementType]Grid)

	for _, st := range entity.RequiredStatements {
		name, ok := matchSheetName(sheets, sheetNameVariants[st])
		if !ok {
			continue
		}
		rows, err := w.file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		grids[st] = Grid(rows)
	}

	if err := validateRequired(grids, sheets); err != nil {
		return nil, err
	}
	return itemsFromGrids(grids), nil
}

// matchSheetName tries each variant in priority order against every sheet.
// A sheet matches when its normalized name contains the variant. Short
// variants ("pl", "bs") require an exact normalized match so that "P&L"
// abbreviations never hijack unrelated sheet names.
func matchSheetName(sheets []string, variants []string) (string, bool) {
	for _, variant := range variants {
		for _, sheet := range sheets {
			name := normalizeSheetName(sheet)
			if len(variant) <= 2 {
				if name == variant {
					return sheet, true
				}
				continue
			}
			if strings.Contains(name, variant) {
				return sheet, true
			}
		}
	}
	return "", false
}

func normalizeSheetName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
