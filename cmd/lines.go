// =============================================================================
// LedgerLens - Lines Command
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/export"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

var linesExport string

var linesCmd = &cobra.Command{
	Use:   "lines <invoice-id>",
	Short: "Show the detail lines behind one invoice",
	Long: `List the raw line rows whose invoice id equals the given id, columns
limited to the useful fields (description, quantity, unit price, total,
date, customer, country). When the source has no recognizable invoice id
column the first 50 raw rows are shown instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}
		if err := applyOverrides(sess, st); err != nil {
			return err
		}

		lines, err := query.InvoiceLines(sess, args[0])
		if err != nil {
			return err
		}

		if linesExport != "" {
			format, err := export.ParseFormat(linesExport)
			if err != nil {
				return err
			}
			path, err := export.WriteLineSet(cfg.OutputDir, format, lines)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		}

		if jsonOut {
			return printJSON(lines)
		}
		if len(lines.Records) == 0 {
			fmt.Printf("No lines found for invoice %q.\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, strings.ToUpper(strings.Join(lines.Columns, "\t")))
		for _, rec := range lines.Records {
			values := make([]string, len(lines.Columns))
			for i, c := range lines.Columns {
				values[i] = rec[c]
			}
			fmt.Fprintln(w, strings.Join(values, "\t"))
		}
		return w.Flush()
	},
}

func init() {
	linesCmd.Flags().StringVar(&linesExport, "export", "", "Write a report instead of printing (csv or xlsx)")
	rootCmd.AddCommand(linesCmd)
}
