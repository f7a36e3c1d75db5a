// =============================================================================
// LedgerLens - Invoice Line Listing
// =============================================================================
//
// InvoiceLines returns the raw detail rows behind one invoice, with dates
// rendered in the fixed output format and columns limited to a preference
// order so callers see the useful fields first.
//
// Degraded modes, each an explicit branch:
//   - no invoice-id role mapped: the first 50 raw rows are returned
//     regardless of the requested id (longstanding quirk, kept on purpose;
//     callers relying on it are covered by tests)
//   - none of the preferred roles mapped: the first 10 raw columns are shown
//
// =============================================================================

package query

import (
	"github.com/ledgerlens/ledgerlens/internal/loader"
	"github.com/ledgerlens/ledgerlens/internal/session"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

const (
	// noKeyRowLimit caps the raw dump when no invoice-id role is mapped.
	noKeyRowLimit = 50

	// rawColumnLimit caps the column fallback when no preferred role is mapped.
	rawColumnLimit = 10
)

// LineSet is an ordered projection of detail rows.
type LineSet struct {
	// Columns is the display order of the projected columns.
	Columns []string `json:"columns"`

	// Records holds one map per row, keyed by column, values formatted
	// as output text.
	Records []map[string]string `json:"records"`
}

// InvoiceLines returns the detail rows whose invoice-id equals id.
func InvoiceLines(s *session.Session, id string) (*LineSet, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	tbl := s.Table()
	m := s.Mapping()

	// Degraded mode: no invoice notion at all — dump the head of the table.
	if m.InvoiceID == "" {
		rows := tbl.Rows
		if len(rows) > noKeyRowLimit {
			rows = rows[:noKeyRowLimit]
		}
		return project(tbl.Columns, rows), nil
	}

	matched := make([]table.Row, 0)
	for _, row := range tbl.Rows {
		if row[m.InvoiceID].String() == id {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return &LineSet{Columns: []string{}, Records: []map[string]string{}}, nil
	}

	// Enrich with a computed total when no total column exists but the
	// factors do. The loader normally pre-derives this; the branch covers
	// mappings where the total role was explicitly unset afterwards.
	totalColumn := m.LineTotal
	var computed map[int]table.Cell
	if totalColumn == "" && m.Quantity != "" && m.UnitPrice != "" {
		totalColumn = loader.ComputedTotalColumn
		computed = make(map[int]table.Cell, len(matched))
		for i, row := range matched {
			qty, _ := row[m.Quantity].AsNumber()
			price, _ := row[m.UnitPrice].AsNumber()
			computed[i] = table.Number(qty * price)
		}
	}

	// Fixed preference order for display.
	preferred := []string{m.Description, m.Quantity, m.UnitPrice, totalColumn, m.Date, m.Customer, m.Country}
	columns := make([]string, 0, len(preferred))
	for _, c := range preferred {
		if c == "" {
			continue
		}
		if tbl.HasColumn(c) || (computed != nil && c == totalColumn) {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		columns = tbl.Columns
		if len(columns) > rawColumnLimit {
			columns = columns[:rawColumnLimit]
		}
	}

	out := project(columns, matched)
	for i := range out.Records {
		if cell, ok := computed[i]; ok {
			out.Records[i][totalColumn] = cell.String()
		}
	}
	return out, nil
}

// project renders rows down to the given columns as formatted text.
func project(columns []string, rows []table.Row) *LineSet {
	ls := &LineSet{
		Columns: append([]string(nil), columns...),
		Records: make([]map[string]string, len(rows)),
	}
	for i, row := range rows {
		rec := make(map[string]string, len(columns))
		for _, c := range columns {
			rec[c] = row[c].String()
		}
		ls.Records[i] = rec
	}
	return ls
}
