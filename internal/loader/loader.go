// =============================================================================
// LedgerLens - Table Loader
// =============================================================================
//
// The loader turns a source file into a RawTable plus an inferred schema
// mapping. File type is dispatched on extension:
//
//   .xlsx / .xlsm / .xltx / .xltm : workbook; every sheet is parsed and
//                                   scored, the best-matching sheet wins
//   .csv                          : delimited text with a header row
//   anything else                 : ErrUnsupportedFileType
//
// After the table is built, two post-processing steps run:
//
//   1. The column mapped to the date role is coerced to timestamps.
//      Unparseable values become Missing, never an error.
//   2. When no line-total column is mapped but quantity and unit price
//      both are, a computed total column (quantity x unit price) is
//      appended and the line-total role is redirected to it.
//
// The loader is stateless; caching by modification time lives in the
// session layer.
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

// ErrUnsupportedFileType is returned for extensions outside the supported set.
var ErrUnsupportedFileType = errors.New("unsupported file type (use .xlsx/.xlsm/.csv)")

// ComputedTotalColumn is the name of the synthetic line-total column the
// loader appends when a direct total column is absent.
const ComputedTotalColumn = "__computed_total__"

// Result is the outcome of loading one source file.
type Result struct {
	// Table is the materialized rows with normalized columns.
	Table *table.RawTable

	// Schema is the inferred role mapping, after total derivation.
	Schema schema.Mapping

	// Sheet is the selected sheet name for workbook sources, "" for CSV.
	Sheet string
}

// Options adjusts loading behavior.
type Options struct {
	// Synonyms overrides the synonym table used for inference and sheet
	// scoring. Nil means schema.DefaultSynonyms.
	Synonyms map[schema.Role][]string
}

// Load reads a source file with default options.
func Load(path string) (*Result, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions reads a source file, dispatching on its extension.
func LoadWithOptions(path string, opts Options) (*Result, error) {
	synonyms := opts.Synonyms
	if synonyms == nil {
		synonyms = schema.DefaultSynonyms()
	}

	var (
		tbl   *table.RawTable
		sheet string
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		tbl, sheet, err = loadWorkbook(path, synonyms)
	case ".csv":
		tbl, err = loadCSV(path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	mapping := schema.InferWith(synonyms, tbl.Columns)
	coerceDateColumn(tbl, &mapping)
	deriveLineTotal(tbl, &mapping)

	return &Result{Table: tbl, Schema: mapping, Sheet: sheet}, nil
}

// coerceDateColumn best-effort parses the date-role column into timestamps.
// Values that do not parse become Missing.
func coerceDateColumn(t *table.RawTable, m *schema.Mapping) {
	col := m.Date
	if col == "" || !t.HasColumn(col) {
		return
	}
	for _, row := range t.Rows {
		if ts, ok := row[col].AsTime(); ok {
			row[col] = table.Timestamp(ts)
		} else {
			row[col] = table.Missing()
		}
	}
}

// deriveLineTotal appends the computed quantity x unit-price column when no
// direct total column is mapped, and redirects the line-total role to it.
// Non-numeric quantity or price contributes zero, not an error.
func deriveLineTotal(t *table.RawTable, m *schema.Mapping) {
	if m.LineTotal != "" || m.Quantity == "" || m.UnitPrice == "" {
		return
	}

	values := make([]table.Cell, len(t.Rows))
	for i, row := range t.Rows {
		qty, _ := row[m.Quantity].AsNumber()
		price, _ := row[m.UnitPrice].AsNumber()
		values[i] = table.Number(qty * price)
	}

	t.AppendColumn(ComputedTotalColumn, values)
	m.LineTotal = ComputedTotalColumn
}
