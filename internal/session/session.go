// =============================================================================
// LedgerLens - Data Source Session
// =============================================================================
//
// Session holds the state of one active data source: the file path, the
// cached table and schema mapping, and the modification time at which they
// were loaded. It is an explicit, caller-held object — every query operation
// takes one — so concurrent sessions and tests each construct their own
// instead of sharing process-wide state.
//
// Cache invalidation has exactly one rule: before any use, the source file's
// current modification time is compared with the cached one, and the table
// is reloaded when they differ. There is no manual invalidation call, and
// content changes that do not touch the mtime go undetected. Reloading also
// re-infers the schema, so manual overrides only live until the underlying
// file changes.
//
// Sources may be confined to a base directory; paths outside it are refused
// before any file is read.
//
// =============================================================================

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/loader"
	"github.com/ledgerlens/ledgerlens/internal/schema"
	"github.com/ledgerlens/ledgerlens/internal/table"
	"github.com/ledgerlens/ledgerlens/pkg/utils"
)

// Failure modes surfaced to the caller verbatim, never retried.
var (
	// ErrNoDataSource means no source has been configured yet.
	ErrNoDataSource = errors.New("no data source set (run source set first)")

	// ErrSourceMissing means the configured path no longer resolves to a file.
	ErrSourceMissing = errors.New("data source not found")

	// ErrOutsideBaseDir means the requested path escapes the configured
	// base directory.
	ErrOutsideBaseDir = errors.New("path is outside the allowed base directory")
)

// Session is the per-caller data source state.
type Session struct {
	baseDir  string
	synonyms map[schema.Role][]string

	path    string
	modTime time.Time
	tbl     *table.RawTable
	mapping schema.Mapping
	sheet   string
}

// Info describes the loaded source for introspection output.
type Info struct {
	Path    string
	Sheet   string
	Schema  map[string]string
	Columns []string
	Rows    int
}

// New creates a session confined to baseDir. An empty baseDir disables
// confinement.
func New(baseDir string) *Session {
	return &Session{baseDir: baseDir}
}

// SetSynonyms installs an extended synonym table used for schema inference
// on every (re)load. Must be set before SetSource to affect the first load.
func (s *Session) SetSynonyms(synonyms map[schema.Role][]string) {
	s.synonyms = synonyms
}

// BaseDir returns the confinement directory, or "" when unconfined.
func (s *Session) BaseDir() string {
	return s.baseDir
}

// Path returns the active source path, or "" when none is set.
func (s *Session) Path() string {
	return s.path
}

// =============================================================================
// SOURCE SELECTION
// =============================================================================

// SetSource points the session at a source file, drops any cached table,
// and loads it immediately so the caller gets schema feedback up front.
func (s *Session) SetSource(path string) (*Info, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if s.baseDir != "" && !within(abs, s.baseDir) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideBaseDir, abs)
	}
	if !utils.FileExists(abs) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, abs)
	}

	s.path = abs
	s.tbl = nil
	s.modTime = time.Time{}

	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.Describe()
}

// Resume restores a previously selected source path without loading it.
// Used by the CLI to pick up the source persisted by an earlier invocation;
// the next Ensure performs the actual load.
func (s *Session) Resume(path string) {
	s.path = path
}

// Ensure revalidates cache freshness and reloads when stale. Every query
// operation calls this first.
func (s *Session) Ensure() error {
	if s.path == "" {
		return ErrNoDataSource
	}

	mtime, err := utils.GetFileModTime(s.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSourceMissing, s.path)
	}
	if s.tbl != nil && mtime.Equal(s.modTime) {
		return nil
	}

	result, err := loader.LoadWithOptions(s.path, loader.Options{Synonyms: s.synonyms})
	if err != nil {
		return err
	}

	s.tbl = result.Table
	s.mapping = result.Schema
	s.sheet = result.Sheet
	s.modTime = mtime

	slog.Debug("data source loaded",
		"path", s.path,
		"sheet", s.sheet,
		"rows", len(s.tbl.Rows),
		"columns", len(s.tbl.Columns))
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Table returns the cached table. Call Ensure first.
func (s *Session) Table() *table.RawTable {
	return s.tbl
}

// Mapping returns the current schema mapping. Call Ensure first.
func (s *Session) Mapping() schema.Mapping {
	return s.mapping
}

// Sheet returns the selected workbook sheet, or "" for CSV sources.
func (s *Session) Sheet() string {
	return s.sheet
}

// Describe loads if necessary and reports the current source, sheet, schema
// mapping, and columns.
func (s *Session) Describe() (*Info, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return &Info{
		Path:    s.path,
		Sheet:   s.sheet,
		Schema:  s.mapping.AsMap(),
		Columns: append([]string(nil), s.tbl.Columns...),
		Rows:    len(s.tbl.Rows),
	}, nil
}

// OverrideSchema applies manual role assignments on top of the inferred
// mapping. Each entry maps a role name to a column in the current table; an
// empty column unsets the role. Fails with schema.ErrUnknownRole or
// schema.ErrColumnNotFound without applying the offending entry.
func (s *Session) OverrideSchema(assignments map[string]string) (*Info, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	for roleName, column := range assignments {
		if err := s.mapping.Override(roleName, column, s.tbl.Columns); err != nil {
			return nil, err
		}
	}
	return s.Describe()
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// within reports whether path is inside dir (or is dir itself).
func within(path, dir string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
