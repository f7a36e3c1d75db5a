// =============================================================================
// LedgerLens - Source Commands
// =============================================================================
//
// The source command family manages the active data source:
//
//   source set <path>        - select a file, load it, show detected schema
//   source show              - show the current schema and columns
//   source map role=column   - manually override role assignments
//
// The selected path and any overrides are persisted in the state file so
// subsequent invocations resume them; overrides are reapplied after each
// load (and therefore survive file-change reloads too).
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/session"
)

// clearOverrides drops all persisted role overrides when set on `source map`.
var clearOverrides bool

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Select and inspect the active data source",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var sourceSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Select a spreadsheet or CSV file as the active data source",
	Long: `Select a data source inside the configured base directory. The file is
loaded immediately: for workbooks the best-matching sheet is chosen, the
schema is inferred, and both are reported back. Any previously saved role
overrides are cleared, since they referred to the old source's columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}

		info, err := sess.SetSource(args[0])
		if err != nil {
			return err
		}

		st.SourcePath = sess.Path()
		st.Overrides = nil
		if err := config.SaveState(cfg.StateFile, st); err != nil {
			return err
		}

		return printInfo(info)
	},
}

var sourceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the detected schema, columns, and row count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, st, err := newSession()
		if err != nil {
			return err
		}
		if err := applyOverrides(sess, st); err != nil {
			return err
		}

		info, err := sess.Describe()
		if err != nil {
			return err
		}
		return printInfo(info)
	},
}

var sourceMapCmd = &cobra.Command{
	Use:   "map role=column [role=column ...]",
	Short: "Override role-to-column assignments",
	Long: `Manually point semantic roles at columns when inference guesses wrong.
Roles: ` + roleList() + `.
Column names must match the normalized names shown by 'source show'. An
empty column ("date=") explicitly unsets a role. Overrides persist until
the next 'source set' or 'source map --clear'.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, st, err := newSession()
		if err != nil {
			return err
		}

		if clearOverrides {
			st.Overrides = nil
		} else if len(args) == 0 {
			return fmt.Errorf("no assignments given (expected role=column)")
		}

		assignments, err := parseAssignments(args)
		if err != nil {
			return err
		}
		if st.Overrides == nil && len(assignments) > 0 {
			st.Overrides = make(map[string]string)
		}
		for role, column := range assignments {
			st.Overrides[role] = column
		}

		if err := applyOverrides(sess, st); err != nil {
			return err
		}
		if err := config.SaveState(cfg.StateFile, st); err != nil {
			return err
		}

		info, err := sess.Describe()
		if err != nil {
			return err
		}
		return printInfo(info)
	},
}

func init() {
	sourceMapCmd.Flags().BoolVar(&clearOverrides, "clear", false, "Drop all persisted overrides first")

	sourceCmd.AddCommand(sourceSetCmd)
	sourceCmd.AddCommand(sourceShowCmd)
	sourceCmd.AddCommand(sourceMapCmd)
	rootCmd.AddCommand(sourceCmd)
}

// parseAssignments splits "role=column" arguments.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		role, column, found := strings.Cut(arg, "=")
		if !found || role == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected role=column)", arg)
		}
		out[role] = column
	}
	return out, nil
}

// roleList renders the known roles for help text.
func roleList() string {
	names := make([]string, len(schema.Roles))
	for i, r := range schema.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// printInfo renders a source description.
func printInfo(info *session.Info) error {
	if jsonOut {
		return printJSON(info)
	}

	fmt.Printf("Source: %s\n", info.Path)
	if info.Sheet != "" {
		fmt.Printf("Sheet:  %s\n", info.Sheet)
	}
	fmt.Printf("Rows:   %d\n", info.Rows)

	fmt.Println("Schema:")
	for _, r := range schema.Roles {
		column := info.Schema[string(r)]
		if column == "" {
			column = "(absent)"
		}
		fmt.Printf("  %-12s -> %s\n", string(r), column)
	}

	cols := append([]string(nil), info.Columns...)
	sort.Strings(cols)
	fmt.Printf("Columns: %s\n", strings.Join(cols, ", "))
	return nil
}
