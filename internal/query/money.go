// =============================================================================
// LedgerLens - Money Arithmetic
// =============================================================================
//
// Monetary sums run on shopspring/decimal so that adding thousands of line
// totals does not accumulate binary float drift; values cross back to plain
// float64 only at the output boundary. Cells that fail to parse as numbers
// contribute zero, matching the missing-on-parse-failure policy everywhere
// else.
//
// =============================================================================

package query

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

// cellDecimal converts a cell to a decimal. Text cells may carry currency
// decoration ("$1,234.50"). Timestamp and Missing cells are not numeric.
func cellDecimal(c table.Cell) (decimal.Decimal, bool) {
	switch c.Kind() {
	case table.KindNumber, table.KindText:
		s := strings.TrimSpace(c.String())
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// resolveTotal computes the monetary total for one row. Precedence: the
// mapped line-total column; else quantity x unit price; else a constant 1,
// so a source with no money columns still aggregates to line counts instead
// of failing.
func resolveTotal(row table.Row, m schema.Mapping) decimal.Decimal {
	if m.LineTotal != "" {
		d, ok := cellDecimal(row[m.LineTotal])
		if !ok {
			return decimal.Zero
		}
		return d
	}
	if m.Quantity != "" && m.UnitPrice != "" {
		qty, _ := cellDecimal(row[m.Quantity])
		price, _ := cellDecimal(row[m.UnitPrice])
		return qty.Mul(price)
	}
	return decimal.NewFromInt(1)
}

// formatMoney renders a decimal as currency for narrative text:
// 1234.5 -> "$1,234.50", -1234.5 -> "$-1,234.50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteByte('$')
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(frac)
	return b.String()
}
