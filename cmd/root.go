// =============================================================================
// LedgerLens - Root Command
// =============================================================================
//
// The root command carries the global flags and the shared wiring every
// subcommand needs: configuration loading, logger setup, and construction
// of the data source session from the persisted CLI state.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ledgerlens)
//   ├── sourceCmd (ledgerlens source set|show|map)
//   ├── searchCmd (ledgerlens search)
//   ├── monthsCmd (ledgerlens months)
//   ├── invoicesCmd (ledgerlens invoices)
//   ├── linesCmd (ledgerlens lines)
//   ├── summaryCmd (ledgerlens summary)
//   └── versionCmd (ledgerlens version)
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/logging"
	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/session"
)

// cfgFile holds the path to the configuration file, overridable via --config.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// jsonOut switches query output from human-readable text to JSON.
var jsonOut bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerlens",
	Short: "LedgerLens - Query invoices and revenue from messy sales spreadsheets",
	Long: `LedgerLens ingests loosely structured sales spreadsheets and CSVs whose
column names vary across files, infers which columns carry the invoice id,
date, quantity, unit price, line total, customer, country, and description,
and answers analytical queries without the caller knowing the file layout.

Key Features:
  - Schema inference over an open set of source column names
  - Manual role overrides when inference guesses wrong
  - Invoice aggregation with date, customer, and returns filtering
  - Monthly revenue summaries with top-customer ranking
  - CSV/XLSX report export

Example Usage:
  ledgerlens source set ~/Documents/Online_Retail.xlsx
  ledgerlens invoices --range 2011-01..2011-03 --no-returns
  ledgerlens summary 2011-03 --top 5`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
	rootCmd.PersistentFlags().BoolVar(
		&jsonOut,
		"json",
		false,
		"Emit results as JSON instead of text",
	)
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// loadConfig reads the configuration and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFormat)

	return cfg, nil
}

// newSession builds the data source session from configuration and the
// persisted CLI state: base dir confinement, extended synonyms, the resumed
// source path, and any saved schema overrides (applied lazily on first use).
func newSession() (*session.Session, *config.Config, *config.State, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := config.LoadState(cfg.StateFile)
	if err != nil {
		return nil, nil, nil, err
	}

	sess := session.New(cfg.BaseDir)
	if len(cfg.Synonyms) > 0 {
		synonyms, err := schema.ExtendSynonyms(schema.DefaultSynonyms(), cfg.Synonyms)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid synonyms in config: %w", err)
		}
		sess.SetSynonyms(synonyms)
	}
	if st.SourcePath != "" {
		sess.Resume(st.SourcePath)
	}

	return sess, cfg, st, nil
}

// applyOverrides reapplies persisted role overrides after the source loads.
func applyOverrides(sess *session.Session, st *config.State) error {
	if len(st.Overrides) == 0 {
		return nil
	}
	_, err := sess.OverrideSchema(st.Overrides)
	return err
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
