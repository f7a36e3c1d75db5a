// =============================================================================
// LedgerLens - Months Command
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/query"
)

// monthsLimit caps the listing; 0 falls back to the configured default.
var monthsLimit int

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the distinct months present in the data, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}
		if err := applyOverrides(sess, st); err != nil {
			return err
		}

		limit := monthsLimit
		if limit <= 0 {
			limit = cfg.Defaults.MonthsLimit
		}

		months, err := query.ListMonths(sess, limit)
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(months)
		}
		if len(months) == 0 {
			fmt.Println("No months found (is a date column mapped?)")
			return nil
		}
		for _, m := range months {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	monthsCmd.Flags().IntVar(&monthsLimit, "limit", 0, "Maximum number of months to list")
	rootCmd.AddCommand(monthsCmd)
}
