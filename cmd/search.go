// =============================================================================
// LedgerLens - Search Command
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/search"
)

var (
	searchExts  []string
	searchMax   int
	searchExact bool
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find candidate data files under the base directory",
	Long: `Search the configured base directory recursively for files by name.
The name supports '*' and '?' wildcards; without wildcards it matches as a
case-insensitive substring (use --exact to require a whole-name match).

Example Usage:
  ledgerlens search retail --ext .xlsx,.csv
  ledgerlens search "sales_2024_*.csv"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		max := searchMax
		if max <= 0 {
			max = cfg.Defaults.SearchResults
		}

		matches, err := search.Files(cfg.BaseDir, args[0], search.Options{
			Extensions: searchExts,
			MaxResults: max,
			Exact:      searchExact,
		})
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(matches)
		}
		if len(matches) == 0 {
			fmt.Printf("No files matching %q under %s\n", args[0], cfg.BaseDir)
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%s (%d bytes)\n", m.Path, m.SizeBytes)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchExts, "ext", nil, "Restrict to extensions, e.g. .xlsx,.csv")
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Require a whole-name match")
	rootCmd.AddCommand(searchCmd)
}
