// =============================================================================
// LedgerLens - Date Range Resolution
// =============================================================================
//
// Query windows are expressed in whole months: either a single "YYYY-MM" or
// an inclusive "YYYY-MM..YYYY-MM" span. Bounds cover the first instant of
// the opening month through the last instant of the closing month.
//
// =============================================================================

package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateRange is returned for malformed month tokens.
var ErrInvalidDateRange = errors.New("invalid date range (use YYYY-MM or YYYY-MM..YYYY-MM)")

const monthLayout = "2006-01"

// MonthBounds resolves "YYYY-MM" to [first instant, last instant] of that
// month: 2024-01 yields [2024-01-01 00:00:00, 2024-01-31 23:59:59].
func MonthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateRange, month)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// RangeBounds resolves either a single month or an "A..B" month span to
// inclusive bounds: the first instant of A through the last instant of B.
func RangeBounds(expr string) (time.Time, time.Time, error) {
	if !strings.Contains(expr, "..") {
		return MonthBounds(expr)
	}
	parts := strings.SplitN(expr, "..", 2)
	start, _, err := MonthBounds(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, end, err := MonthBounds(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
