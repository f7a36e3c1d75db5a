// =============================================================================
// LedgerLens - File Utilities
// =============================================================================
//
// Shared file-system helpers used by the session layer (source stat checks)
// and the report writer (output directories and unique file names).
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// GetFileModTime returns the modification time of a file.
func GetFileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.ModTime(), nil
}

// EnsureDirectories creates every given directory if it does not exist.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GenerateReportFileName expands a file-name format string.
//
// Placeholders:
//   {name}      - the report name (e.g. "invoices")
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//   {date}      - current date (YYYYMMDD)
//   {uuid}      - a random UUID
//
// The extension is appended when the expanded name does not already end
// with it.
//
// Example:
//
//	GenerateReportFileName("{name}_{timestamp}_{uuid}", "invoices", "csv")
//	-> "invoices_20240115_143022_a1b2c3d4-....csv"
func GenerateReportFileName(format, name, extension string) string {
	now := time.Now()

	replacements := map[string]string{
		"{name}":      name,
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{uuid}":      uuid.New().String(),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	suffix := "." + strings.TrimPrefix(extension, ".")
	if !strings.HasSuffix(strings.ToLower(result), suffix) {
		result += suffix
	}
	return result
}
