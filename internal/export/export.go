// =============================================================================
// LedgerLens - Report Writer
// =============================================================================
//
// Query results can be written out as CSV or XLSX reports for hand-off to
// accounting. Files land in the configured output directory under a unique
// name ({name}_{timestamp}_{uuid}), so repeated exports never clobber each
// other.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/ledgerlens/internal/query"
	"github.com/ledgerlens/ledgerlens/pkg/utils"
)

// Format selects the report file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// fileNameFormat is the unique-name pattern for report files.
const fileNameFormat = "{name}_{timestamp}_{uuid}"

// reportSheet is the sheet name used in XLSX reports.
const reportSheet = "Report"

// ParseFormat validates a format string from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported report format %q (use csv or xlsx)", s)
	}
}

// WriteInvoices writes aggregated invoices as a report and returns the
// created file path.
func WriteInvoices(dir string, format Format, invoices []query.Invoice) (string, error) {
	header := []string{"invoice_id", "invoice_date", "customer", "country", "total_amount", "line_count"}
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = []string{
			inv.InvoiceID,
			inv.InvoiceDate,
			inv.Customer,
			inv.Country,
			strconv.FormatFloat(inv.TotalAmount, 'f', -1, 64),
			strconv.Itoa(inv.LineCount),
		}
	}
	return WriteTable(dir, format, "invoices", header, rows)
}

// WriteLineSet writes an invoice line listing as a report and returns the
// created file path.
func WriteLineSet(dir string, format Format, ls *query.LineSet) (string, error) {
	rows := make([][]string, len(ls.Records))
	for i, rec := range ls.Records {
		row := make([]string, len(ls.Columns))
		for j, col := range ls.Columns {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	return WriteTable(dir, format, "invoice_lines", ls.Columns, rows)
}

// WriteTable writes a generic header+rows table as a report file.
func WriteTable(dir string, format Format, name string, header []string, rows [][]string) (string, error) {
	if err := utils.EnsureDirectories(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, utils.GenerateReportFileName(fileNameFormat, name, string(format)))

	switch format {
	case FormatCSV:
		if err := writeCSV(path, header, rows); err != nil {
			return "", err
		}
	case FormatXLSX:
		if err := writeXLSX(path, header, rows); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
	return path, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func writeXLSX(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), reportSheet)

	if err := setStringRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setStringRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func setStringRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
