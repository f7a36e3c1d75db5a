// =============================================================================
// LedgerLens - Configuration Module
// =============================================================================
//
// Two YAML files drive the CLI:
//
//   1. Config (config.yaml): base directory confinement, output directory
//      for reports, logging, query defaults, and house-specific synonym
//      spellings merged into the built-in table.
//   2. State (state file): the active data source chosen by `source set`,
//      persisted so later invocations resume it without re-selection.
//
// A missing config file is not an error — everything has a default — but a
// present file that fails to parse is.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// BaseDir confines data sources and file search to one directory
	// tree. Default: ~/Documents.
	BaseDir string `yaml:"base_dir"`

	// OutputDir is where report exports are written.
	// Default: "./reports"
	OutputDir string `yaml:"output_dir"`

	// StateFile is where the active-source state is persisted.
	// Default: <user config dir>/ledgerlens/state.yaml
	StateFile string `yaml:"state_file"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info". The --verbose flag forces "debug".
	LogLevel string `yaml:"log_level"`

	// LogFormat selects "text" or "json" log output. Default: "text".
	LogFormat string `yaml:"log_format"`

	// Defaults are the query limits applied when a flag is not given.
	Defaults Defaults `yaml:"defaults"`

	// Synonyms adds house-specific header spellings per role, e.g.
	//
	//   synonyms:
	//     invoice_id: ["belegnummer"]
	//     customer: ["kundennr"]
	//
	// Extras rank below the built-in spellings.
	Synonyms map[string][]string `yaml:"synonyms"`
}

// Defaults holds per-operation result caps.
type Defaults struct {
	// MonthsLimit caps `months`. Default: 24.
	MonthsLimit int `yaml:"months_limit"`

	// MaxInvoices caps `invoices`. Default: 200.
	MaxInvoices int `yaml:"max_invoices"`

	// TopClients caps the summary customer ranking. Default: 5.
	TopClients int `yaml:"top_clients"`

	// SearchResults caps `search`. Default: 25.
	SearchResults int `yaml:"search_results"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file. A nonexistent path yields
// the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.BaseDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.BaseDir = filepath.Join(home, "Documents")
		}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./reports"
	}
	if cfg.StateFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.StateFile = filepath.Join(dir, "ledgerlens", "state.yaml")
		} else {
			cfg.StateFile = ".ledgerlens-state.yaml"
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Defaults.MonthsLimit == 0 {
		cfg.Defaults.MonthsLimit = 24
	}
	if cfg.Defaults.MaxInvoices == 0 {
		cfg.Defaults.MaxInvoices = 200
	}
	if cfg.Defaults.TopClients == 0 {
		cfg.Defaults.TopClients = 5
	}
	if cfg.Defaults.SearchResults == 0 {
		cfg.Defaults.SearchResults = 25
	}
}

// =============================================================================
// PERSISTED STATE
// =============================================================================

// State is the cross-invocation CLI state.
type State struct {
	// SourcePath is the active data source selected by `source set`.
	SourcePath string `yaml:"source_path"`

	// Overrides are manual role-to-column assignments from `source map`,
	// reapplied after every load. An empty column value means the role is
	// explicitly unset. Cleared when a new source is selected.
	Overrides map[string]string `yaml:"overrides,omitempty"`
}

// LoadState reads the persisted state. A nonexistent file yields an empty
// state.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &st, nil
}

// SaveState writes the persisted state, creating parent directories as
// needed.
func SaveState(path string, st *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
