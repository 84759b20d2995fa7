package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// PDFExtractor reads single-table-per-page PDF statements. Each page is
// classified by its text, rows are recovered from the page's positioned text
// runs, and a colon/tab/double-space splitter recovers (label, amount) pairs
// when no machine-readable table structure survives.
type PDFExtractor struct {
	reader *pdf.Reader
}

func NewPDFExtractor(data []byte) (*PDFExtractor, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &PDFExtractor{reader: r}, nil
}

func (p *PDFExtractor) Extract() (map[entity.StatementType][]entity.RawLineItem, error) {
	grids := make(map[entity.StatementType]Grid)
	var pageNames []string

	for i := 1; i <= p.reader.NumPage(); i++ {
		page := p.reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines := pageLines(page)
		if len(lines) == 0 {
			continue
		}
		pageNames = append(pageNames, fmt.Sprintf("page %d: %s", i, firstWords(lines[0], 6)))

		st, ok := classifyPage(lines)
		if !ok {
			continue
		}
		grid := linesToGrid(lines)
		if len(grid) <= 1 {
			continue
		}
		if _, seen := grids[st]; !seen {
			grids[st] = grid
		}
	}

	if err := validateRequired(grids, pageNames); err != nil {
		return nil, err
	}
	return itemsFromGrids(grids), nil
}

// pageLines reassembles text lines from the page's positioned runs. Runs on
// one visual row are joined, with a wide horizontal gap rendered as a double
// space so the downstream splitter can still see the column boundary.
func pageLines(page pdf.Page) []string {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		// No positioned text; fall back to the plain text stream.
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil
		}
		return nonEmptyLines(strings.Split(text, "\n"))
	}

	var lines []string
	for _, row := range rows {
		var b strings.Builder
		var prev *pdf.Text
		for i := range row.Content {
			word := row.Content[i]
			if prev != nil {
				if word.X-(prev.X+prev.W) > 12 {
					b.WriteString("  ")
				} else {
					b.WriteString(" ")
				}
			}
			b.WriteString(word.S)
			prev = &row.Content[i]
		}
		lines = append(lines, b.String())
	}
	return nonEmptyLines(lines)
}

// firstWords returns up to n leading words of s, used to name a page in
// the missing-statements error.
func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func nonEmptyLines(lines []string) []string {
	out := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimSpace(l))
		}
	}
	return out
}

// classifyPage decides which statement a page carries from its text.
func classifyPage(lines []string) (entity.StatementType, bool) {
	text := strings.ToLower(strings.Join(lines, " "))
	switch {
	case strings.Contains(text, "trading"):
		return entity.StatementTrading, true
	case strings.Contains(text, "balance sheet") ||
		(strings.Contains(text, "liabilit") && strings.Contains(text, "asset")):
		return entity.StatementBalance, true
	case strings.Contains(text, "profit") || strings.Contains(text, "income and expenditure"):
		return entity.StatementIncome, true
	case strings.Contains(text, "staff") || strings.Contains(text, "operational"):
		return entity.StatementOperational, true
	}
	return "", false
}

var multiSpace = regexp.MustCompile(`\s{2,}|\t`)

// linesToGrid converts text lines into a two-column grid under a synthetic
// "item | amount" header, so the shared layout path can consume it. Lines
// split at the last colon, a tab, or a run of two-plus spaces; as a last
// resort a trailing numeric token is peeled off.
func linesToGrid(lines []string) Grid {
	grid := Grid{{"item", "amount"}}
	for _, line := range lines {
		label, amount, ok := splitLine(line)
		if !ok {
			continue
		}
		grid = append(grid, []string{label, amount})
	}
	return grid
}

func splitLine(line string) (label, amount string, ok bool) {
	if idx := strings.LastIndex(line, ":"); idx > 0 {
		return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), strings.TrimSpace(line[idx+1:]) != ""
	}
	if parts := multiSpace.Split(line, -1); len(parts) >= 2 {
		last := strings.TrimSpace(parts[len(parts)-1])
		if last != "" && looksNumeric(last) {
			return strings.TrimSpace(strings.Join(parts[:len(parts)-1], " ")), last, true
		}
	}
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		last := fields[len(fields)-1]
		if looksNumeric(last) {
			return strings.Join(fields[:len(fields)-1], " "), last, true
		}
	}
	return "", "", false
}

var numericToken = regexp.MustCompile(`^\(?-?[\d,]+(\.\d+)?\)?$`)

func looksNumeric(s string) bool {
	return numericToken.MatchString(s)
}
