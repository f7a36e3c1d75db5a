// =============================================================================
// LedgerLens - Workbook Loading
// =============================================================================
//
// Multi-sheet workbooks rarely announce which sheet holds the transaction
// data, so every sheet is parsed, its normalized headers are scored against
// the synonym table, and the highest score wins. Enumeration order breaks
// ties (first seen wins), and a sheet that fails to parse is skipped from
// scoring rather than surfaced. Only when every sheet fails does the loader
// fall back to the first sheet, parsed leniently, so a workbook with at
// least one sheet never fails outright.
//
// =============================================================================

package loader

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/table"
)

// loadWorkbook selects and parses the best-matching sheet of a workbook.
func loadWorkbook(path string, synonyms map[schema.Role][]string) (*table.RawTable, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	bestScore := -1
	var bestTable *table.RawTable
	var bestSheet string

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		tbl, err := table.FromStringRows(rows)
		if err != nil {
			continue
		}
		score := schema.ScoreWith(synonyms, tbl.Columns)
		if score > bestScore {
			bestScore, bestTable, bestSheet = score, tbl, sheet
		}
	}

	if bestTable == nil {
		// Every sheet failed to parse: fall back to the first sheet.
		slog.Debug("no sheet scored, falling back to first", "sheet", sheets[0])
		return fallbackFirstSheet(f, sheets[0])
	}

	slog.Debug("sheet selected", "sheet", bestSheet, "score", bestScore)
	return bestTable, bestSheet, nil
}

// fallbackFirstSheet parses the first sheet leniently: a sheet with no rows
// at all still yields an empty table instead of an error.
func fallbackFirstSheet(f *excelize.File, sheet string) (*table.RawTable, string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &table.RawTable{}, sheet, nil
	}
	tbl, err := table.FromStringRows(rows)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse sheet %q: %w", sheet, err)
	}
	return tbl, sheet, nil
}
