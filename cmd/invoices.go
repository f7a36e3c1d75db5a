// =============================================================================
// LedgerLens - Invoices Command
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/export"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

var (
	invoicesRange    string
	invoicesCustomer string
	invoicesNoReturn bool
	invoicesMax      int
	invoicesExport   string
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List aggregated invoices from the active data source",
	Long: `Group line rows into invoices and list them newest first. Each invoice
carries the summed total, line count, earliest date, and the first-seen
customer and country. Use --range to restrict to a month or month span,
--customer for an exact customer match, and --no-returns to drop
negative-quantity lines before aggregating.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}
		if err := applyOverrides(sess, st); err != nil {
			return err
		}

		max := invoicesMax
		if max <= 0 {
			max = cfg.Defaults.MaxInvoices
		}

		invoices, err := query.Invoices(sess, query.InvoiceOptions{
			DateRange:      invoicesRange,
			Customer:       invoicesCustomer,
			IncludeReturns: !invoicesNoReturn,
			MaxResults:     max,
		})
		if err != nil {
			return err
		}

		if invoicesExport != "" {
			format, err := export.ParseFormat(invoicesExport)
			if err != nil {
				return err
			}
			path, err := export.WriteInvoices(cfg.OutputDir, format, invoices)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		}

		if jsonOut {
			return printJSON(invoices)
		}
		if len(invoices) == 0 {
			fmt.Println("No invoices matched.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INVOICE\tDATE\tCUSTOMER\tCOUNTRY\tTOTAL\tLINES")
		for _, inv := range invoices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\n",
				inv.InvoiceID, inv.InvoiceDate, inv.Customer, inv.Country,
				inv.TotalAmount, inv.LineCount)
		}
		return w.Flush()
	},
}

func init() {
	invoicesCmd.Flags().StringVar(&invoicesRange, "range", "", "Month window: YYYY-MM or YYYY-MM..YYYY-MM")
	invoicesCmd.Flags().StringVar(&invoicesCustomer, "customer", "", "Exact customer filter (text compare)")
	invoicesCmd.Flags().BoolVar(&invoicesNoReturn, "no-returns", false, "Exclude negative-quantity lines")
	invoicesCmd.Flags().IntVar(&invoicesMax, "max", 0, "Maximum number of invoices to return")
	invoicesCmd.Flags().StringVar(&invoicesExport, "export", "", "Write a report instead of printing (csv or xlsx)")
	rootCmd.AddCommand(invoicesCmd)
}
