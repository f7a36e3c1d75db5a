// =============================================================================
// LedgerLens - Invoice Aggregation
// =============================================================================
//
// Invoices groups raw line rows into one aggregate per distinct invoice-id
// value. When no invoice-id role is mapped the engine runs in a named
// degraded mode: every row becomes its own "invoice" under a synthetic
// 0-based row index, so the operation still returns something useful.
//
// Filtering order: returns exclusion, then date window, then customer
// equality. Grouping preserves first-seen order, which also serves as the
// deterministic tie-break for equal sort keys.
//
// =============================================================================

package query

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/session"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

// DefaultMaxInvoices caps Invoices results when no maximum is given.
const DefaultMaxInvoices = 200

// InvoiceOptions filters and bounds an Invoices query.
type InvoiceOptions struct {
	// DateRange is "YYYY-MM" or "YYYY-MM..YYYY-MM"; empty means no window.
	// Ignored (including validation) when no date role is mapped.
	DateRange string

	// Customer, when non-empty and a customer role is mapped, keeps only
	// rows whose customer value compares equal as text.
	Customer string

	// IncludeReturns keeps rows with negative quantity. When false and a
	// quantity role is mapped, such rows are dropped before aggregation.
	IncludeReturns bool

	// MaxResults caps the result; <= 0 means DefaultMaxInvoices.
	MaxResults int
}

// Invoice is one aggregated invoice.
type Invoice struct {
	InvoiceID   string  `json:"invoice_id"`
	InvoiceDate string  `json:"invoice_date,omitempty"`
	Customer    string  `json:"customer,omitempty"`
	Country     string  `json:"country,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	LineCount   int     `json:"line_count"`
}

// invoiceGroup accumulates one invoice during aggregation.
type invoiceGroup struct {
	id       string
	total    decimal.Decimal
	count    int
	date     time.Time
	hasDate  bool
	customer string
	country  string
}

// Invoices aggregates line rows into invoices under the session's schema.
// An empty filtered table yields an empty slice, never an error.
func Invoices(s *session.Session, opts InvoiceOptions) ([]Invoice, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	m := s.Mapping()

	rows, err := filterRows(s.Table().Rows, m, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Invoice{}, nil
	}

	groups := groupRows(rows, m)
	sortGroups(groups, m.Date != "")

	max := opts.MaxResults
	if max <= 0 {
		max = DefaultMaxInvoices
	}
	if len(groups) > max {
		groups = groups[:max]
	}

	out := make([]Invoice, len(groups))
	for i, g := range groups {
		inv := Invoice{
			InvoiceID:   g.id,
			Customer:    g.customer,
			Country:     g.country,
			TotalAmount: g.total.InexactFloat64(),
			LineCount:   g.count,
		}
		if g.hasDate {
			inv.InvoiceDate = g.date.Format(table.TimeFormat)
		}
		out[i] = inv
	}
	return out, nil
}

// filterRows applies returns exclusion, the date window, and the customer
// filter, in that order.
func filterRows(rows []table.Row, m schema.Mapping, opts InvoiceOptions) ([]table.Row, error) {
	kept := rows

	if !opts.IncludeReturns && m.Quantity != "" {
		kept = keepRows(kept, func(row table.Row) bool {
			qty, _ := row[m.Quantity].AsNumber()
			return qty >= 0
		})
	}

	// The window is a no-op without a date role: the range expression is
	// not even parsed, mirroring how an unmapped customer role ignores the
	// customer filter.
	if opts.DateRange != "" && m.Date != "" {
		start, end, err := RangeBounds(opts.DateRange)
		if err != nil {
			return nil, err
		}
		kept = keepRows(kept, func(row table.Row) bool {
			ts, ok := row[m.Date].AsTime()
			return ok && !ts.Before(start) && !ts.After(end)
		})
	}

	if opts.Customer != "" && m.Customer != "" {
		kept = keepRows(kept, func(row table.Row) bool {
			return row[m.Customer].String() == opts.Customer
		})
	}

	return kept, nil
}

func keepRows(rows []table.Row, keep func(table.Row) bool) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// groupRows builds invoice groups in first-seen order. Without an
// invoice-id role each row grouped under its own 0-based index (degraded
// per-row mode).
func groupRows(rows []table.Row, m schema.Mapping) []*invoiceGroup {
	groups := make([]*invoiceGroup, 0)
	index := make(map[string]*invoiceGroup)

	for i, row := range rows {
		var key string
		if m.InvoiceID != "" {
			key = row[m.InvoiceID].String()
		} else {
			key = strconv.Itoa(i)
		}

		g, ok := index[key]
		if !ok {
			g = &invoiceGroup{id: key, total: decimal.Zero}
			index[key] = g
			groups = append(groups, g)
		}

		g.total = g.total.Add(resolveTotal(row, m))
		g.count++

		if m.Date != "" {
			if ts, ok := row[m.Date].AsTime(); ok {
				if !g.hasDate || ts.Before(g.date) {
					g.date = ts
					g.hasDate = true
				}
			}
		}
		if m.Customer != "" && g.customer == "" {
			g.customer = row[m.Customer].String()
		}
		if m.Country != "" && g.country == "" {
			g.country = row[m.Country].String()
		}
	}

	return groups
}

// sortGroups orders invoices descending by date when a date role exists
// (dateless groups last), else descending by total. Stable, so first-seen
// order breaks ties.
func sortGroups(groups []*invoiceGroup, byDate bool) {
	if byDate {
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := groups[i], groups[j]
			if a.hasDate != b.hasDate {
				return a.hasDate
			}
			return a.date.After(b.date)
		})
		return
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})
}
