// =============================================================================
// LedgerLens - CSV Loading
// =============================================================================
//
// Delimited-text sources are parsed with a header-row assumption. The reader
// is deliberately forgiving: ragged rows and loosely quoted fields are
// common in exports from legacy reporting systems, so field counts are not
// enforced and lazy quotes are accepted.
//
// =============================================================================

package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ledgerlens/ledgerlens/internal/table"
)

// loadCSV parses a delimited text file into a RawTable.
func loadCSV(path string) (*table.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	tbl, err := table.FromStringRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return tbl, nil
}
