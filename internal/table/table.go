// =============================================================================
// LedgerLens - Raw Table
// =============================================================================
//
// RawTable is the in-memory materialization of one loaded sheet or CSV: an
// ordered column list plus row maps keyed by normalized column name. It is
// the only shape the schema and query layers ever see, so workbook and CSV
// sources become indistinguishable past the loader.
//
// =============================================================================

package table

import (
	"fmt"
	"strings"
)

// Row maps normalized column name to cell value.
type Row map[string]Cell

// RawTable holds the rows of a single loaded source.
type RawTable struct {
	// Columns is the ordered list of normalized column names.
	// Names are unique: collisions after normalization keep the
	// first-seen column and drop later ones.
	Columns []string

	// Rows holds the data rows in source order.
	Rows []Row
}

// FromStringRows builds a RawTable from raw sheet rows, the first row being
// headers. Headers are normalized; a header that normalizes to the empty
// string is named by position ("column 3"). Fully empty data rows are
// skipped. Returns an error when no header row exists at all.
func FromStringRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row present")
	}

	// Resolve headers first: normalized, positionally named when blank,
	// first-seen wins on collision. keep[i] records whether source column
	// i survived deduplication.
	rawHeaders := rows[0]
	columns := make([]string, 0, len(rawHeaders))
	keep := make([]string, len(rawHeaders))
	seen := make(map[string]bool, len(rawHeaders))

	for i, h := range rawHeaders {
		name := Normalize(h)
		if name == "" {
			name = fmt.Sprintf("column %d", i+1)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		keep[i] = name
		columns = append(columns, name)
	}

	t := &RawTable{Columns: columns, Rows: make([]Row, 0, len(rows)-1)}

	for _, raw := range rows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := make(Row, len(columns))
		for i, name := range keep {
			if name == "" {
				continue
			}
			if i < len(raw) {
				row[name] = Text(raw[i])
			} else {
				row[name] = Missing()
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// HasColumn reports whether the table contains the given normalized column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AppendColumn adds a derived column. Values shorter than the row count are
// padded with Missing; extra values are dropped. A duplicate name is a no-op.
func (t *RawTable) AppendColumn(name string, values []Cell) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		if i < len(values) {
			t.Rows[i][name] = values[i]
		} else {
			t.Rows[i][name] = Missing()
		}
	}
}

// isRowEmpty reports whether every cell in a raw row is blank.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
