package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledgerlens/ledgerlens/internal/session"
)

// salesCSV covers the common shape: invoice ids, dates, a return row, and
// two customers across two invoices.
const salesCSV = "Invoice,Date,Qty,Price,Client,Country\n" +
	"A1,2024-01-05,2,10.0,Acme,United Kingdom\n" +
	"A1,2024-01-06,-1,10.0,Acme,United Kingdom\n" +
	"B2,2024-01-10,1,5.0,Globex,France\n"

func sessionFor(t *testing.T, csv string) *session.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	sess := session.New("")
	if _, err := sess.SetSource(path); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	return sess
}

func TestInvoicesExcludesReturnsByDefault(t *testing.T) {
	sess := sessionFor(t, salesCSV)

	got, err := Invoices(sess, InvoiceOptions{})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d invoices, want 2", len(got))
	}

	// Newest invoice date first.
	if got[0].InvoiceID != "B2" || got[1].InvoiceID != "A1" {
		t.Fatalf("order = [%s %s], want [B2 A1]", got[0].InvoiceID, got[1].InvoiceID)
	}
	if got[1].TotalAmount != 20.0 || got[1].LineCount != 1 {
		t.Errorf("A1 = %.2f x %d, want 20.00 x 1 (return row dropped)", got[1].TotalAmount, got[1].LineCount)
	}
	if got[0].TotalAmount != 5.0 || got[0].LineCount != 1 {
		t.Errorf("B2 = %.2f x %d, want 5.00 x 1", got[0].TotalAmount, got[0].LineCount)
	}
	if got[1].Customer != "Acme" || got[1].Country != "United Kingdom" {
		t.Errorf("A1 attrs = %q/%q, want Acme/United Kingdom", got[1].Customer, got[1].Country)
	}
	if got[1].InvoiceDate != "2024-01-05 00:00:00" {
		t.Errorf("A1 date = %q, want earliest line date", got[1].InvoiceDate)
	}
}

func TestInvoicesIncludeReturns(t *testing.T) {
	sess := sessionFor(t, salesCSV)

	got, err := Invoices(sess, InvoiceOptions{IncludeReturns: true})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d invoices, want 2", len(got))
	}
	// The -1 x 10.0 return nets A1 down to 10 across two lines.
	if got[1].TotalAmount != 10.0 || got[1].LineCount != 2 {
		t.Errorf("A1 = %.2f x %d, want 10.00 x 2", got[1].TotalAmount, got[1].LineCount)
	}
}

func TestInvoicesCustomerFilter(t *testing.T) {
	sess := sessionFor(t, salesCSV)

	got, err := Invoices(sess, InvoiceOptions{Customer: "Globex"})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 1 || got[0].InvoiceID != "B2" {
		t.Fatalf("got %v, want only B2", got)
	}
}

func TestInvoicesDateWindow(t *testing.T) {
	csv := "Invoice,Date,Amount\n" +
		"A1,2024-01-05,10\n" +
		"B2,2024-02-05,20\n" +
		"C3,2024-03-05,30\n"
	sess := sessionFor(t, csv)

	got, err := Invoices(sess, InvoiceOptions{DateRange: "2024-01..2024-02"})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d invoices, want 2", len(got))
	}
	if got[0].InvoiceID != "B2" || got[1].InvoiceID != "A1" {
		t.Errorf("order = [%s %s], want [B2 A1]", got[0].InvoiceID, got[1].InvoiceID)
	}
}

func TestInvoicesEmptyWindowYieldsEmptySlice(t *testing.T) {
	sess := sessionFor(t, salesCSV)

	got, err := Invoices(sess, InvoiceOptions{DateRange: "2030-01"})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestInvoicesDateRangeIgnoredWithoutDateRole(t *testing.T) {
	// No recognizable date column: the range expression is not parsed at
	// all, so even a malformed one passes through.
	csv := "Invoice,Amount\nA1,10\nB2,20\n"
	sess := sessionFor(t, csv)

	got, err := Invoices(sess, InvoiceOptions{DateRange: "not-a-month"})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d invoices, want 2", len(got))
	}
	// Without dates ordering falls back to total descending.
	if got[0].InvoiceID != "B2" {
		t.Errorf("first invoice = %s, want B2 (largest total)", got[0].InvoiceID)
	}
}

func TestInvoicesInvalidDateRange(t *testing.T) {
	sess := sessionFor(t, salesCSV)
	if _, err := Invoices(sess, InvoiceOptions{DateRange: "bogus"}); err == nil {
		t.Fatal("want error for malformed range with a date role mapped")
	}
}

func TestInvoicesPerRowModeWithoutInvoiceID(t *testing.T) {
	csv := "Date,Amount\n2024-01-05,10\n2024-01-06,20\n"
	sess := sessionFor(t, csv)

	got, err := Invoices(sess, InvoiceOptions{})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d invoices, want 2 (one per row)", len(got))
	}
	ids := map[string]bool{got[0].InvoiceID: true, got[1].InvoiceID: true}
	if !ids["0"] || !ids["1"] {
		t.Errorf("ids = %v, want synthetic row indexes 0 and 1", ids)
	}
}

func TestInvoicesMaxResults(t *testing.T) {
	sess := sessionFor(t, salesCSV)
	got, err := Invoices(sess, InvoiceOptions{MaxResults: 1})
	if err != nil {
		t.Fatalf("Invoices failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d invoices, want 1", len(got))
	}
	if got[0].InvoiceID != "B2" {
		t.Errorf("kept %s, want the newest invoice B2", got[0].InvoiceID)
	}
}

func TestListMonths(t *testing.T) {
	csv := "Invoice,Date,Amount\n" +
		"A1,2024-01-05,10\n" +
		"A2,2024-03-01,10\n" +
		"A3,2024-01-20,10\n" +
		"A4,2023-11-02,10\n"
	sess := sessionFor(t, csv)

	months, err := ListMonths(sess, 0)
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	want := []string{"2024-03", "2024-01", "2023-11"}
	if len(months) != len(want) {
		t.Fatalf("got %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("got %v, want %v", months, want)
		}
	}

	limited, err := ListMonths(sess, 2)
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	if len(limited) != 2 || limited[0] != "2024-03" {
		t.Errorf("limited = %v, want newest 2", limited)
	}
}

func TestListMonthsWithoutDateRole(t *testing.T) {
	sess := sessionFor(t, "Invoice,Amount\nA1,10\n")
	months, err := ListMonths(sess, 0)
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	if months == nil || len(months) != 0 {
		t.Errorf("got %v, want empty non-nil slice", months)
	}
}
