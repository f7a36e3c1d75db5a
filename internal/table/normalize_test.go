package table

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "invoice no", "invoice no"},
		{"surrounding whitespace", "  Invoice No  ", "invoice no"},
		{"uppercase", "INVOICE NO", "invoice no"},
		{"underscores", "invoice_no", "invoice no"},
		{"hyphens", "sold-to", "sold to"},
		{"mixed separator run", "unit -_ price", "unit price"},
		{"trailing dot", "Qty.", "qty"},
		{"hash stripped", "Invoice #", "invoice"},
		{"dot between words", "a . b", "a b"},
		{"empty", "", ""},
		{"only separators", " -_- ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Invoice No.", "  UNIT_PRICE  ", "a . b", "Qty.", "sold-to",
		"Customer   ID", "#ref#", "", "plain",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
