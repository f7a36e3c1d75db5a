package schema

import (
	"errors"
	"testing"
)

func TestInferSynonymOrderWins(t *testing.T) {
	// "invoice" is listed before "order id" in the invoice_id synonyms,
	// so it wins regardless of physical column order.
	for _, columns := range [][]string{
		{"order id", "invoice"},
		{"invoice", "order id"},
	} {
		m := Infer(columns)
		if m.InvoiceID != "invoice" {
			t.Errorf("Infer(%v).InvoiceID = %q, want %q", columns, m.InvoiceID, "invoice")
		}
	}
}

func TestInferAbsentRoles(t *testing.T) {
	m := Infer([]string{"quantity", "price"})
	if m.Quantity != "quantity" || m.UnitPrice != "price" {
		t.Errorf("quantity/unit_price mapping wrong: %+v", m)
	}
	for _, role := range []Role{RoleInvoiceID, RoleDate, RoleLineTotal, RoleCustomer, RoleCountry, RoleDescription} {
		if got := m.Column(role); got != "" {
			t.Errorf("role %s should be absent, got %q", role, got)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    int
	}{
		{
			"all eight roles",
			[]string{"invoice no", "invoicedate", "quantity", "unitprice", "linetotal", "customerid", "country", "description"},
			8,
		},
		{"empty", nil, 0},
		{"unrelated columns", []string{"foo", "bar"}, 0},
		{"partial", []string{"date", "amount", "client"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.columns); got != tt.want {
				t.Errorf("Score(%v) = %d, want %d", tt.columns, got, tt.want)
			}
		})
	}
}

func TestOverride(t *testing.T) {
	columns := []string{"ref", "when", "amount"}

	var m Mapping
	if err := m.Override("invoice_id", "ref", columns); err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	if m.InvoiceID != "ref" {
		t.Errorf("InvoiceID = %q, want %q", m.InvoiceID, "ref")
	}

	// Unset with an empty column.
	if err := m.Override("invoice_id", "", columns); err != nil {
		t.Fatalf("unset failed: %v", err)
	}
	if m.InvoiceID != "" {
		t.Errorf("InvoiceID should be unset, got %q", m.InvoiceID)
	}
}

func TestOverrideUnknownRole(t *testing.T) {
	var m Mapping
	err := m.Override("shipping_cost", "ref", []string{"ref"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("want ErrUnknownRole, got %v", err)
	}
}

func TestOverrideColumnNotFound(t *testing.T) {
	var m Mapping
	err := m.Override("date", "nope", []string{"ref", "when"})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("want ErrColumnNotFound, got %v", err)
	}
	if m.Date != "" {
		t.Errorf("failed override must not be applied, got %q", m.Date)
	}
}

func TestExtendSynonyms(t *testing.T) {
	syn, err := ExtendSynonyms(DefaultSynonyms(), map[string][]string{
		"invoice_id": {"belegnummer"},
	})
	if err != nil {
		t.Fatalf("ExtendSynonyms failed: %v", err)
	}

	m := InferWith(syn, []string{"belegnummer"})
	if m.InvoiceID != "belegnummer" {
		t.Errorf("extended synonym not used: %+v", m)
	}

	// Extras rank below built-ins.
	m = InferWith(syn, []string{"belegnummer", "invoice"})
	if m.InvoiceID != "invoice" {
		t.Errorf("built-in should outrank extra, got %q", m.InvoiceID)
	}
}

func TestExtendSynonymsUnknownRole(t *testing.T) {
	_, err := ExtendSynonyms(DefaultSynonyms(), map[string][]string{"notarole": {"x"}})
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("want ErrUnknownRole, got %v", err)
	}
}

func TestAsMapCoversAllRoles(t *testing.T) {
	var m Mapping
	m.InvoiceID = "ref"
	got := m.AsMap()
	if len(got) != len(Roles) {
		t.Fatalf("AsMap has %d entries, want %d", len(got), len(Roles))
	}
	if got["invoice_id"] != "ref" || got["date"] != "" {
		t.Errorf("AsMap wrong: %v", got)
	}
}
