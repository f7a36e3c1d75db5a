// =============================================================================
// LedgerLens - Monthly Summary
// =============================================================================
//
// SummarizeMonth computes revenue for one month window and ranks customers
// by their summed totals. The dataset carries no cost side, so expenses and
// profit are always reported absent rather than zero — absent means "not in
// this data", zero would mean "measured as nothing".
//
// =============================================================================

package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/session"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

// DefaultTopClients caps the ranked customer list when no N is given.
const DefaultTopClients = 5

// SummaryOptions adjusts SummarizeMonth.
type SummaryOptions struct {
	// IncludeReturns keeps negative-quantity rows in the revenue sum.
	IncludeReturns bool

	// TopClients is the ranking depth; <= 0 means DefaultTopClients.
	TopClients int
}

// TopClient is one entry of the ranked customer list.
type TopClient struct {
	Customer string  `json:"customer"`
	Total    float64 `json:"total"`
}

// Summary is the result of SummarizeMonth. Revenue is nil when no date role
// is mapped (the month window cannot be applied); Expenses and Profit are
// always nil for this dataset.
type Summary struct {
	Month      string      `json:"month"`
	Revenue    *float64    `json:"revenue,omitempty"`
	Expenses   *float64    `json:"expenses"`
	Profit     *float64    `json:"profit"`
	TopClients []TopClient `json:"top_clients"`
	Message    string      `json:"message,omitempty"`
	Narrative  string      `json:"natural_language,omitempty"`
}

// clientGroup accumulates one customer's summed total during ranking.
type clientGroup struct {
	name  string
	total decimal.Decimal
}

// SummarizeMonth sums revenue for "YYYY-MM" and ranks the top customers.
func SummarizeMonth(s *session.Session, month string, opts SummaryOptions) (*Summary, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	m := s.Mapping()

	// Without a date role there is no month window to apply; report that
	// instead of a misleading all-time figure.
	if m.Date == "" {
		return &Summary{Month: month, Message: "No usable date column detected."}, nil
	}

	start, end, err := MonthBounds(month)
	if err != nil {
		return nil, err
	}

	rows := keepRows(s.Table().Rows, func(row table.Row) bool {
		ts, ok := row[m.Date].AsTime()
		return ok && !ts.Before(start) && !ts.After(end)
	})

	if !opts.IncludeReturns && m.Quantity != "" {
		rows = keepRows(rows, func(row table.Row) bool {
			qty, _ := row[m.Quantity].AsNumber()
			return qty >= 0
		})
	}

	if len(rows) == 0 {
		zero := 0.0
		return &Summary{
			Month:      month,
			Revenue:    &zero,
			TopClients: []TopClient{},
			Message:    "No data for this month.",
		}, nil
	}

	topN := opts.TopClients
	if topN <= 0 {
		topN = DefaultTopClients
	}

	revenue := decimal.Zero
	clients := make([]*clientGroup, 0)
	clientIndex := make(map[string]*clientGroup)

	for _, row := range rows {
		total := resolveTotal(row, m)
		revenue = revenue.Add(total)

		if m.Customer == "" || row[m.Customer].IsMissing() {
			continue
		}
		name := row[m.Customer].String()
		g, ok := clientIndex[name]
		if !ok {
			g = &clientGroup{name: name, total: decimal.Zero}
			clientIndex[name] = g
			clients = append(clients, g)
		}
		g.total = g.total.Add(total)
	}

	// Rank descending; stable sort keeps first-seen grouping order on ties.
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].total.GreaterThan(clients[j].total)
	})
	if len(clients) > topN {
		clients = clients[:topN]
	}

	top := make([]TopClient, len(clients))
	for i, c := range clients {
		top[i] = TopClient{Customer: c.name, Total: c.total.InexactFloat64()}
	}

	rev := revenue.InexactFloat64()
	return &Summary{
		Month:      month,
		Revenue:    &rev,
		TopClients: top,
		Narrative:  narrative(month, revenue, clients),
	}, nil
}

// narrative builds the human-readable one-liner with currency-formatted
// amounts: `For 2024-01, revenue $25.00. Top clients: A ($20.00), B ($5.00)`.
func narrative(month string, revenue decimal.Decimal, clients []*clientGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For %s, revenue %s.", month, formatMoney(revenue))
	if len(clients) > 0 {
		parts := make([]string, len(clients))
		for i, c := range clients {
			parts[i] = fmt.Sprintf("%s (%s)", c.name, formatMoney(c.total))
		}
		b.WriteString(" Top clients: ")
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}
