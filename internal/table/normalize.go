// =============================================================================
// LedgerLens - Header Normalizer
// =============================================================================
//
// Raw exports spell the same column a dozen ways: "Invoice No.", "invoice_no",
// "INVOICE-NO ". Normalize canonicalizes a header so that both table columns
// and synonym-table entries land in the same key space and lookups stay
// consistent.
//
// The transformation, in order:
//   1. Trim surrounding whitespace
//   2. Lowercase
//   3. Strip literal "." and "#"
//   4. Collapse runs of whitespace, hyphen, underscore into a single space
//
// Stripping before collapsing keeps Normalize idempotent even when removing
// a dot leaves two separators adjacent ("a . b" -> "a b").
//
// Normalize is pure, total, and idempotent.
//
// =============================================================================

package table

import (
	"regexp"
	"strings"
)

var separatorRuns = regexp.MustCompile(`[\s\-_]+`)

// Normalize canonicalizes a raw header string for matching.
func Normalize(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "#", "")
	s = strings.TrimSpace(separatorRuns.ReplaceAllString(s, " "))
	return s
}

// NormalizeAll normalizes every header in place order, without deduplication.
func NormalizeAll(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = Normalize(h)
	}
	return out
}
