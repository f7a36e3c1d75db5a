package query

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

func TestCellDecimal(t *testing.T) {
	tests := []struct {
		name string
		cell table.Cell
		want string
		ok   bool
	}{
		{"plain number", table.Number(12.5), "12.5", true},
		{"numeric text", table.Text("42"), "42", true},
		{"currency decoration", table.Text("$1,234.50"), "1234.5", true},
		{"negative", table.Text("-3.25"), "-3.25", true},
		{"non-numeric text", table.Text("n/a"), "0", false},
		{"missing", table.Missing(), "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := cellDecimal(tt.cell)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if want, _ := decimal.NewFromString(tt.want); !d.Equal(want) {
				t.Errorf("value = %s, want %s", d, want)
			}
		})
	}
}

func TestResolveTotalPrecedence(t *testing.T) {
	row := table.Row{
		"qty":    table.Number(2),
		"price":  table.Number(10),
		"amount": table.Number(999),
	}

	// A mapped total column wins over quantity x price.
	m := schema.Mapping{LineTotal: "amount", Quantity: "qty", UnitPrice: "price"}
	if got := resolveTotal(row, m); !got.Equal(decimal.NewFromInt(999)) {
		t.Errorf("total-column precedence: got %s, want 999", got)
	}

	// Without a total column the product is used.
	m = schema.Mapping{Quantity: "qty", UnitPrice: "price"}
	if got := resolveTotal(row, m); !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("quantity x price: got %s, want 20", got)
	}

	// With no money columns at all every row counts as 1.
	if got := resolveTotal(row, schema.Mapping{}); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("constant fallback: got %s, want 1", got)
	}
}

func TestResolveTotalUnparseableColumn(t *testing.T) {
	row := table.Row{
		"qty":    table.Number(2),
		"price":  table.Number(10),
		"amount": table.Text("pending"),
	}
	// An unparseable total contributes zero; it is never recomputed from the
	// factors once a total column is mapped.
	m := schema.Mapping{LineTotal: "amount", Quantity: "qty", UnitPrice: "price"}
	if got := resolveTotal(row, m); !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-1234.5", "$-1,234.50"},
		{"999", "$999.00"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.in)
		if got := formatMoney(d); got != tt.want {
			t.Errorf("formatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
