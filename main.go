// =============================================================================
// LedgerLens - Main Entry Point
// =============================================================================
//
// LedgerLens answers invoice and revenue questions over loosely structured
// sales spreadsheets and CSVs without requiring the caller to know each
// file's exact layout.
//
// USAGE:
//   ledgerlens source set <path>   - Select the active data source
//   ledgerlens source show         - Show the detected schema
//   ledgerlens source map k=v      - Override role-to-column assignments
//   ledgerlens search <name>       - Find candidate files under the base dir
//   ledgerlens months              - List months present in the data
//   ledgerlens invoices            - List aggregated invoices
//   ledgerlens lines <invoice-id>  - Show detail lines for one invoice
//   ledgerlens summary <month>     - Summarize revenue for a month
//   ledgerlens version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core business logic (not for external import)
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/ledgerlens/ledgerlens/cmd"
)

func main() {
	cmd.Execute()
}
