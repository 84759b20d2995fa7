package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// DocumentExtractor reads table-per-statement word-processor documents.
// Tables are disambiguated by column count and header keyword sniffing, not
// by their position in the document.
type DocumentExtractor struct {
	doc *docx.Docx
}

func NewDocumentExtractor(data []byte) (*DocumentExtractor, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &DocumentExtractor{doc: doc}, nil
}

func (d *DocumentExtractor) Extract() (map[entity.StatementType][]entity.RawLineItem, error) {
	grids := make(map[entity.StatementType]Grid)
	var tableNames []string

	for _, item := range d.doc.Document.Body.Items {
		table, ok := item.(*docx.Table)
		if !ok {
			continue
		}
		grid := tableToGrid(table)
		if len(grid) == 0 {
			continue
		}
		tableNames = append(tableNames, tableLabel(grid))

		st, ok := classifyTable(grid)
		if !ok {
			continue
		}
		// First table wins per statement; duplicates are ignored.
		if _, seen := grids[st]; !seen {
			grids[st] = grid
		}
	}

	if err := validateRequired(grids, tableNames); err != nil {
		return nil, err
	}
	return itemsFromGrids(grids), nil
}

func tableToGrid(table *docx.Table) Grid {
	var grid Grid
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if text := strings.TrimSpace(p.String()); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		grid = append(grid, cells)
	}
	return grid
}

// classifyTable sniffs a table's header (and column count as a tiebreaker)
// for statement-identifying keywords.
func classifyTable(g Grid) (entity.StatementType, bool) {
	header := strings.ToLower(strings.Join(g.Header(), " "))

	switch {
	case strings.Contains(header, "liabilit") || strings.Contains(header, "asset"):
		return entity.StatementBalance, true
	case strings.Contains(header, "expense") && strings.Contains(header, "income"):
		return entity.StatementIncome, true
	case strings.Contains(header, "staff") || strings.Contains(header, "employee") ||
		strings.Contains(header, "metric"):
		return entity.StatementOperational, true
	}

	// Item-list tables carry the statement name in the header or first rows.
	body := strings.ToLower(strings.Join(firstColumn(g), " ")) + " " + header
	switch {
	case strings.Contains(body, "trading") ||
		(strings.Contains(body, "stock") && strings.Contains(body, "purchase")):
		return entity.StatementTrading, true
	case strings.Contains(body, "profit") || strings.Contains(body, "interest"):
		return entity.StatementIncome, true
	case strings.Contains(body, "staff"):
		return entity.StatementOperational, true
	}

	// Four-column tables with no recognizable wording are most likely the
	// paired balance layout.
	if len(g[0]) >= 4 {
		return entity.StatementBalance, true
	}
	return "", false
}

func firstColumn(g Grid) []string {
	out := make([]string, 0, len(g))
	for row := range g {
		if c := g.Cell(row, 0); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// tableLabel names a table for error reporting: its first non-empty header
// cell, or the first cell of the first row.
func tableLabel(g Grid) string {
	for _, cell := range g.Header() {
		if cell != "" {
			return cell
		}
	}
	return "(unnamed table)"
}
