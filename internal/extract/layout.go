package extract

import (
	"strings"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// Layout is the closed set of table orientations a statement surface may use.
// One classification step up front selects the variant; each variant then
// produces raw items through the same contract.
type Layout int

const (
	// LayoutPaired is two side-by-side label/amount column pairs, e.g.
	// "Liabilities | Amount | Assets | Amount".
	LayoutPaired Layout = iota
	// LayoutItemList is a single label/amount pair with one row per item.
	LayoutItemList
	// LayoutHeaderRow is a header of field names over a single data row.
	LayoutHeaderRow
)

// ClassifyLayout inspects the header row's text to pick the orientation.
// Domain keywords select the two explicit layouts; anything else falls back
// to the header+single-data-row format.
func ClassifyLayout(g Grid) Layout {
	header := g.Header()
	switch {
	case headerContains(header, "liabilit") && headerContains(header, "asset"):
		return LayoutPaired
	case headerContains(header, "expense") && headerContains(header, "income"):
		return LayoutPaired
	case headerContains(header, "item", "particular", "metric"):
		return LayoutItemList
	default:
		return LayoutHeaderRow
	}
}

// Items flattens a statement grid into raw line items according to its
// detected layout. A row contributes an item only when both its label and
// amount cells are non-empty.
func Items(g Grid, st entity.StatementType) []entity.RawLineItem {
	switch ClassifyLayout(g) {
	case LayoutPaired:
		return pairedItems(g, st)
	case LayoutItemList:
		return listItems(g, st)
	default:
		return headerRowItems(g, st)
	}
}

// pairedItems walks a four-column surface: left label/amount pair (sources)
// and right label/amount pair (applications) on each row.
func pairedItems(g Grid, st entity.StatementType) []entity.RawLineItem {
	header := g.Header()

	leftLabel := findColumn(header, "liabilit", "expense")
	rightLabel := findColumn(header, "asset", "income")
	if leftLabel < 0 || rightLabel < 0 {
		return nil
	}
	leftAmount := amountColumnAfter(header, leftLabel, rightLabel)
	rightAmount := amountColumnAfter(header, rightLabel, len(header))

	var items []entity.RawLineItem
	for row := 1; row < len(g); row++ {
		if label, amount := g.Cell(row, leftLabel), g.Cell(row, leftAmount); label != "" && amount != "" {
			items = append(items, entity.RawLineItem{Label: label, Amount: amount, StatementType: st})
		}
		if label, amount := g.Cell(row, rightLabel), g.Cell(row, rightAmount); label != "" && amount != "" {
			items = append(items, entity.RawLineItem{Label: label, Amount: amount, StatementType: st})
		}
	}
	return items
}

// amountColumnAfter finds the "amount" column between the label column and
// the bound, defaulting to the cell immediately to the label's right.
func amountColumnAfter(header []string, labelCol, bound int) int {
	for i := labelCol + 1; i < bound && i < len(header); i++ {
		if header[i] != "" && (containsAny(header[i], "amount", "amt", "value", "rs")) {
			return i
		}
	}
	return labelCol + 1
}

func listItems(g Grid, st entity.StatementType) []entity.RawLineItem {
	header := g.Header()
	labelCol := findColumn(header, "item", "particular", "metric")
	if labelCol < 0 {
		labelCol = 0
	}
	amountCol := findColumn(header, "amount", "value", "count")
	if amountCol < 0 || amountCol == labelCol {
		amountCol = labelCol + 1
	}

	var items []entity.RawLineItem
	for row := 1; row < len(g); row++ {
		label, amount := g.Cell(row, labelCol), g.Cell(row, amountCol)
		if label == "" || amount == "" {
			continue
		}
		items = append(items, entity.RawLineItem{Label: label, Amount: amount, StatementType: st})
	}
	return items
}

// headerRowItems reads named columns over a single data row: each header cell
// is the label and the cell beneath it the amount.
func headerRowItems(g Grid, st entity.StatementType) []entity.RawLineItem {
	if len(g) < 2 {
		return nil
	}
	var items []entity.RawLineItem
	for col := 0; col < len(g[0]); col++ {
		label, amount := g.Cell(0, col), g.Cell(1, col)
		if label == "" || amount == "" {
			continue
		}
		items = append(items, entity.RawLineItem{Label: label, Amount: amount, StatementType: st})
	}
	return items
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
