package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// Extractor produces raw line items per statement type from one parsed
// document. Each physical encoding (xlsx, docx, pdf) implements it.
type Extractor interface {
	Extract() (map[entity.StatementType][]entity.RawLineItem, error)
}

// MissingStatementsError reports which required statements could not be
// located under any supported encoding, and which sheet or table names were
// actually present, so the operator can see what the document looked like.
type MissingStatementsError struct {
	Missing []entity.StatementType
	Found   []string
}

func (e *MissingStatementsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, st := range e.Missing {
		names[i] = st.DisplayName()
	}
	return fmt.Sprintf("required statements not found: %s (tables present: %s)",
		strings.Join(names, ", "), strings.Join(e.Found, ", "))
}

// validateRequired checks that every required statement was located.
func validateRequired(found map[entity.StatementType]Grid, names []string) error {
	var missing []entity.StatementType
	for _, st := range entity.RequiredStatements {
		if _, ok := found[st]; !ok {
			missing = append(missing, st)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(names)
	return &MissingStatementsError{Missing: missing, Found: names}
}

// itemsFromGrids converts the located statement grids to raw line items.
func itemsFromGrids(grids map[entity.StatementType]Grid) map[entity.StatementType][]entity.RawLineItem {
	out := make(map[entity.StatementType][]entity.RawLineItem, len(grids))
	for st, g := range grids {
		out[st] = Items(g, st)
	}
	return out
}

// ForFile returns the extractor matching the file extension. The caller
// hands over raw bytes; nothing here touches the filesystem.
func ForFile(name string, data []byte) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".xlsm":
		return NewWorkbookExtractor(data)
	case ".docx":
		return NewDocumentExtractor(data)
	case ".pdf":
		return NewPDFExtractor(data)
	default:
		return nil, fmt.Errorf("unsupported document format %q", filepath.Ext(name))
	}
}
