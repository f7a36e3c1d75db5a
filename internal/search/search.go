// =============================================================================
// LedgerLens - Source File Search
// =============================================================================
//
// Search walks the configured base directory for candidate data files by
// name. Patterns support "*" and "?" wildcards; a plain name with neither
// is matched as a fuzzy substring ("retail" finds "Online Retail.xlsx").
// Matching is case-insensitive. Results can be restricted by extension and
// are capped, first found wins.
//
// =============================================================================

package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultMaxResults caps searches when no maximum is given.
const DefaultMaxResults = 25

// Match is one found file.
type Match struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// Options adjusts a search.
type Options struct {
	// Extensions restricts matches, e.g. [".xlsx", ".csv"]. A missing
	// leading dot is tolerated. Empty means any extension.
	Extensions []string

	// MaxResults caps the result; <= 0 means DefaultMaxResults.
	MaxResults int

	// Exact disables the fuzzy-substring fallback for patterns without
	// wildcards, requiring the whole file name to match.
	Exact bool
}

// Files searches baseDir recursively for files whose name matches pattern.
func Files(baseDir, pattern string, opts Options) ([]Match, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("base directory does not exist: %s", baseDir)
	}

	rx, err := compilePattern(pattern, opts.Exact)
	if err != nil {
		return nil, err
	}

	extSet := normalizeExtensions(opts.Extensions)

	max := opts.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}

	matches := make([]Match, 0)
	walkErr := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if extSet != nil && !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if !rx.MatchString(d.Name()) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		matches = append(matches, Match{Path: path, Name: d.Name(), SizeBytes: fi.Size()})
		if len(matches) >= max {
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("search failed: %w", walkErr)
	}

	return matches, nil
}

// compilePattern translates a wildcard pattern into a regexp. "*" and "?"
// become ".*" and "."; everything else is quoted literally. A pattern with
// no wildcard matches as a substring unless exact is set.
func compilePattern(pattern string, exact bool) (*regexp.Regexp, error) {
	hasWildcard := strings.ContainsAny(pattern, "*?")

	var b strings.Builder
	b.WriteString("(?i)")
	if hasWildcard || exact {
		b.WriteString("^")
	}
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if hasWildcard || exact {
		b.WriteString("$")
	}

	rx, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	return rx, nil
}

// normalizeExtensions lowercases and dot-prefixes the extension filter.
// Returns nil when the filter is empty.
func normalizeExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
