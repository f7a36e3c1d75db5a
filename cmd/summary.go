// =============================================================================
// LedgerLens - Summary Command
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/query"
)

var (
	summaryTop      int
	summaryNoReturn bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <month>",
	Short: "Summarize revenue for a month (YYYY-MM) with top customers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}
		if err := applyOverrides(sess, st); err != nil {
			return err
		}

		top := summaryTop
		if top <= 0 {
			top = cfg.Defaults.TopClients
		}

		summary, err := query.SummarizeMonth(sess, args[0], query.SummaryOptions{
			IncludeReturns: !summaryNoReturn,
			TopClients:     top,
		})
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(summary)
		}

		if summary.Narrative != "" {
			fmt.Println(summary.Narrative)
		}
		if summary.Message != "" {
			fmt.Println(summary.Message)
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 0, "Number of top customers to rank")
	summaryCmd.Flags().BoolVar(&summaryNoReturn, "no-returns", false, "Exclude negative-quantity lines")
	rootCmd.AddCommand(summaryCmd)
}
