// =============================================================================
// LedgerLens - Cell Value Model
// =============================================================================
//
// Spreadsheet and CSV exports carry loosely typed values: a "quantity" column
// may hold integers, blanks, or stray text, and a "date" column may hold any
// of a dozen formats. Cell models this as a closed variant of four kinds:
//
//   Text      - any string value
//   Number    - a float64
//   Timestamp - a point in time
//   Missing   - no value (blank cell, unparseable date, short row)
//
// The coercion methods (AsNumber, AsTime) are total: they never fail, they
// report "not available" through their second return value. Queries built on
// top of them treat unavailable as zero or skip the row, so one dirty cell
// never sinks a whole report.
//
// =============================================================================

package table

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Cell holds.
type Kind int

const (
	// KindMissing is the zero Kind: no value present.
	KindMissing Kind = iota

	// KindText holds an arbitrary string.
	KindText

	// KindNumber holds a float64.
	KindNumber

	// KindTimestamp holds a time.Time.
	KindTimestamp
)

// TimeFormat is the fixed rendering for timestamps in all output payloads.
const TimeFormat = "2006-01-02 15:04:05"

// Cell is a single dynamically typed table value.
// The zero value is a Missing cell.
type Cell struct {
	kind Kind
	text string
	num  float64
	ts   time.Time
}

// Missing returns a cell with no value.
func Missing() Cell {
	return Cell{}
}

// Text returns a text cell. An empty or all-whitespace string becomes Missing,
// matching how blank CSV fields behave everywhere else in the system.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// Timestamp returns a time cell.
func Timestamp(t time.Time) Cell {
	if t.IsZero() {
		return Cell{}
	}
	return Cell{kind: KindTimestamp, ts: t}
}

// Kind reports which variant the cell holds.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// =============================================================================
// COERCIONS
// =============================================================================

// timeLayouts are tried in order by AsTime. GetRows in excelize returns date
// cells as display strings, so the US short styles produced by default Excel
// number formats are included alongside ISO forms.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"1/2/06",
	"02-Jan-2006",
	"2 Jan 2006",
}

// AsNumber coerces the cell to a float64.
//
// Number cells return their value directly. Text cells are parsed after
// stripping currency decoration ("$1,234.50" parses as 1234.5). Timestamp
// and Missing cells, and unparseable text, report ok=false.
func (c Cell) AsNumber() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindText:
		s := strings.TrimSpace(c.text)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsTime coerces the cell to a timestamp.
//
// Timestamp cells return their value directly. Text cells are parsed against
// timeLayouts in order. Everything else reports ok=false.
func (c Cell) AsTime() (time.Time, bool) {
	switch c.kind {
	case KindTimestamp:
		return c.ts, true
	case KindText:
		s := strings.TrimSpace(c.text)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// String renders the cell for output payloads. Missing renders as the empty
// string, timestamps use TimeFormat, numbers use the shortest exact form.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindTimestamp:
		return c.ts.Format(TimeFormat)
	default:
		return ""
	}
}
