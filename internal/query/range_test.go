package query

import (
	"errors"
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name  string
		month string
		start string
		end   string
	}{
		{"january", "2024-01", "2024-01-01 00:00:00", "2024-01-31 23:59:59"},
		{"february leap year", "2024-02", "2024-02-01 00:00:00", "2024-02-29 23:59:59"},
		{"february common year", "2023-02", "2023-02-01 00:00:00", "2023-02-28 23:59:59"},
		{"december year rollover", "2023-12", "2023-12-01 00:00:00", "2023-12-31 23:59:59"},
		{"surrounding whitespace", " 2024-06 ", "2024-06-01 00:00:00", "2024-06-30 23:59:59"},
	}

	const layout = "2006-01-02 15:04:05"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthBounds(tt.month)
			if err != nil {
				t.Fatalf("MonthBounds(%q) failed: %v", tt.month, err)
			}
			if got := start.Format(layout); got != tt.start {
				t.Errorf("start = %s, want %s", got, tt.start)
			}
			if got := end.Format(layout); got != tt.end {
				t.Errorf("end = %s, want %s", got, tt.end)
			}
		})
	}
}

func TestMonthBoundsInvalid(t *testing.T) {
	for _, month := range []string{"", "2024", "2024-13", "jan 2024", "2024-1-5"} {
		if _, _, err := MonthBounds(month); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("MonthBounds(%q): want ErrInvalidDateRange, got %v", month, err)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	start, end, err := RangeBounds("2024-01..2024-03")
	if err != nil {
		t.Fatalf("RangeBounds failed: %v", err)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestRangeBoundsSingleMonth(t *testing.T) {
	s1, e1, err := RangeBounds("2024-05")
	if err != nil {
		t.Fatalf("RangeBounds failed: %v", err)
	}
	s2, e2, _ := MonthBounds("2024-05")
	if !s1.Equal(s2) || !e1.Equal(e2) {
		t.Error("single-month range must behave exactly like MonthBounds")
	}
}

func TestRangeBoundsInvalidHalf(t *testing.T) {
	if _, _, err := RangeBounds("2024-01..nope"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("want ErrInvalidDateRange, got %v", err)
	}
	if _, _, err := RangeBounds("nope..2024-01"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("want ErrInvalidDateRange, got %v", err)
	}
}
