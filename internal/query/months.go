package query

import (
	"sort"

	"github.com/ledgerlens/ledgerlens/internal/session"
)

// DefaultMonthsLimit caps ListMonths when no limit is given.
const DefaultMonthsLimit = 24

// ListMonths returns the distinct "YYYY-MM" periods present in the date
// role's values, newest first, truncated to limit. A source with no date
// role mapped yields an empty list, not an error.
func ListMonths(s *session.Session, limit int) ([]string, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMonthsLimit
	}

	m := s.Mapping()
	if m.Date == "" {
		return []string{}, nil
	}

	seen := make(map[string]bool)
	months := make([]string, 0)
	for _, row := range s.Table().Rows {
		ts, ok := row[m.Date].AsTime()
		if !ok {
			continue
		}
		key := ts.Format(monthLayout)
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}

	// Descending lexicographic order is descending chronological order
	// for zero-padded YYYY-MM keys.
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	if len(months) > limit {
		months = months[:limit]
	}
	return months, nil
}
