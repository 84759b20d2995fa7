// Package extract locates statement tables in spreadsheet, word-processor
// and PDF documents and flattens them into raw (label, amount) line items.
//
// Every physical encoding converges on the same Grid shape before layout
// detection, so the three extractors share one row-iteration path.
package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grid is a format-agnostic 2-D surface of cell values. Row 0 is expected to
// be the header row.
type Grid [][]string

// Cell returns the trimmed value at (row, col), or "" when out of range.
// Ragged rows from document parsers are treated as trailing empty cells.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Header returns the normalized header row, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	header := make([]string, len(g[0]))
	for i, c := range g[0] {
		header[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return header
}

var amountCleaner = strings.NewReplacer(
	",", "",
	" ", "",
	" ", "",
	"₹", "",
	"rs.", "",
	"Rs.", "",
)

// ParseAmount parses a numeric cell tolerating thousands separators, currency
// marks and surrounding whitespace. Unparsable input yields zero rather than
// an error so a single bad cell never fails the whole ingestion.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := amountCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	// Accountant-style negatives: (1,234.56)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// findColumn returns the index of the first header cell containing any of the
// given keywords, or -1. Containment rather than equality tolerates variants
// like "Liability Type" vs "Liabilities".
func findColumn(header []string, keywords ...string) int {
	for i, cell := range header {
		for _, kw := range keywords {
			if cell != "" && strings.Contains(cell, kw) {
				return i
			}
		}
	}
	return -1
}

func headerContains(header []string, keywords ...string) bool {
	return findColumn(header, keywords...) >= 0
}
