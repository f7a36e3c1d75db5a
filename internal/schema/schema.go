// =============================================================================
// LedgerLens - Schema Inference Engine
// =============================================================================
//
// Source files never agree on column names. This package maps the normalized
// columns of a loaded table onto eight fixed semantic roles using an ordered
// synonym table, producing a Mapping that the loader and query engine work
// from. Inference is deterministic: for each role, the first synonym in the
// table's listed order that is present among the columns wins, so list order
// encodes priority.
//
// The mapping is advisory and correctable: any role can be manually pointed
// at a different column (or unset) through Override.
//
// =============================================================================

package schema

import (
	"errors"
	"fmt"
)

// Role is one of the eight semantic fields the engine locates among
// arbitrary source columns.
type Role string

const (
	RoleInvoiceID   Role = "invoice_id"
	RoleDate        Role = "date"
	RoleQuantity    Role = "quantity"
	RoleUnitPrice   Role = "unit_price"
	RoleLineTotal   Role = "line_total"
	RoleCustomer    Role = "customer"
	RoleCountry     Role = "country"
	RoleDescription Role = "description"
)

// Roles lists every role in canonical order.
var Roles = []Role{
	RoleInvoiceID,
	RoleDate,
	RoleQuantity,
	RoleUnitPrice,
	RoleLineTotal,
	RoleCustomer,
	RoleCountry,
	RoleDescription,
}

// Override failure modes.
var (
	// ErrUnknownRole is returned when an override names a role outside the
	// fixed set.
	ErrUnknownRole = errors.New("unknown schema role")

	// ErrColumnNotFound is returned when an override points a role at a
	// column the current table does not have.
	ErrColumnNotFound = errors.New("column not found in data source")
)

// =============================================================================
// SYNONYM TABLE
// =============================================================================

// DefaultSynonyms returns the built-in synonym table: for each role, the
// known real-world header spellings in priority order. Entries are matched
// against normalized column names, so spellings that normalization would
// rewrite ("qty.", "sold-to") only ever match through their normalized
// siblings listed alongside them.
func DefaultSynonyms() map[Role][]string {
	return map[Role][]string{
		RoleInvoiceID:   {"invoice no", "invoiceno", "invoice", "invoice number", "orderid", "order id", "order no", "billno", "bill no", "inv no", "invno", "document number"},
		RoleDate:        {"invoicedate", "invoice date", "date", "order date", "document date", "posting date"},
		RoleQuantity:    {"quantity", "qty", "qty.", "qnty", "units", "count"},
		RoleUnitPrice:   {"unitprice", "unit price", "price", "rate", "unit cost", "cost"},
		RoleLineTotal:   {"linetotal", "line total", "amount", "total", "value", "net amount", "gross amount", "subtotal"},
		RoleCustomer:    {"customerid", "customer id", "customer", "client", "account", "buyer", "party", "sold-to", "sold to", "customer code", "customer no"},
		RoleCountry:     {"country", "region", "market"},
		RoleDescription: {"description", "item", "product", "sku name", "name", "details"},
	}
}

// ExtendSynonyms returns a copy of base with extra spellings appended per
// role. Extras rank below the built-ins: they are meant for house-specific
// headers the built-in table does not know, not for reprioritizing it.
// An extra keyed by an unknown role name fails with ErrUnknownRole.
func ExtendSynonyms(base map[Role][]string, extra map[string][]string) (map[Role][]string, error) {
	out := make(map[Role][]string, len(base))
	for role, syns := range base {
		out[role] = append([]string(nil), syns...)
	}
	for name, syns := range extra {
		role, ok := ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, name)
		}
		out[role] = append(out[role], syns...)
	}
	return out, nil
}

// ParseRole resolves a role name to its Role, reporting whether it is one of
// the eight known roles.
func ParseRole(name string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// =============================================================================
// MAPPING
// =============================================================================

// Mapping associates each role with a column name in the current table, or
// the empty string when the role is absent.
type Mapping struct {
	InvoiceID   string
	Date        string
	Quantity    string
	UnitPrice   string
	LineTotal   string
	Customer    string
	Country     string
	Description string
}

// Column returns the column mapped to a role, or "" when absent.
func (m *Mapping) Column(r Role) string {
	switch r {
	case RoleInvoiceID:
		return m.InvoiceID
	case RoleDate:
		return m.Date
	case RoleQuantity:
		return m.Quantity
	case RoleUnitPrice:
		return m.UnitPrice
	case RoleLineTotal:
		return m.LineTotal
	case RoleCustomer:
		return m.Customer
	case RoleCountry:
		return m.Country
	case RoleDescription:
		return m.Description
	}
	return ""
}

// Set points a role at a column. An empty column unsets the role.
func (m *Mapping) Set(r Role, column string) {
	switch r {
	case RoleInvoiceID:
		m.InvoiceID = column
	case RoleDate:
		m.Date = column
	case RoleQuantity:
		m.Quantity = column
	case RoleUnitPrice:
		m.UnitPrice = column
	case RoleLineTotal:
		m.LineTotal = column
	case RoleCustomer:
		m.Customer = column
	case RoleCountry:
		m.Country = column
	case RoleDescription:
		m.Description = column
	}
}

// AsMap renders the mapping for structured output, one entry per role in
// canonical order (use Roles to iterate deterministically). Absent roles map
// to the empty string.
func (m *Mapping) AsMap() map[string]string {
	out := make(map[string]string, len(Roles))
	for _, r := range Roles {
		out[string(r)] = m.Column(r)
	}
	return out
}

// Override validates and applies a manual role assignment.
//
// The role name must be one of the eight known roles and, when column is
// non-empty, the column must exist in columns (the current table's
// normalized column list). An empty column explicitly unsets the role.
func (m *Mapping) Override(roleName, column string, columns []string) error {
	role, ok := ParseRole(roleName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}
	if column != "" && !contains(columns, column) {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	m.Set(role, column)
	return nil
}

// =============================================================================
// INFERENCE
// =============================================================================

// Infer maps columns onto roles using the built-in synonym table.
func Infer(columns []string) Mapping {
	return InferWith(DefaultSynonyms(), columns)
}

// InferWith maps columns onto roles using the given synonym table. For each
// role the first synonym present among columns is chosen; a role with no
// synonym present is left absent.
func InferWith(synonyms map[Role][]string, columns []string) Mapping {
	var m Mapping
	for _, role := range Roles {
		m.Set(role, firstPresent(synonyms[role], columns))
	}
	return m
}

// Score counts how many roles have at least one synonym present among
// columns, using the built-in synonym table. The loader uses this to rank
// candidate sheets in a workbook.
func Score(columns []string) int {
	return ScoreWith(DefaultSynonyms(), columns)
}

// ScoreWith is Score with an explicit synonym table.
func ScoreWith(synonyms map[Role][]string, columns []string) int {
	score := 0
	for _, role := range Roles {
		if firstPresent(synonyms[role], columns) != "" {
			score++
		}
	}
	return score
}

// firstPresent returns the first candidate found in columns, or "".
func firstPresent(candidates, columns []string) string {
	for _, c := range candidates {
		if contains(columns, c) {
			return c
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
