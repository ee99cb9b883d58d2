// Package sorter resolves user supplied sort fields and directions against an allow-list
// and renders them as SQL order clauses.
package sorter

import (
	"strings"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Opt represents a single sorting option, consisting of a field and a direction.
type Opt struct {
	F string        // F is the SQL expression to sort by.
	D SortDirection // D is the sorting direction (asc or desc).
}

// ToSQL converts an Opt into an SQL-compatible clause (e.g., "v.variety_name asc").
func (o Opt) ToSQL() string {
	return o.F + " " + string(o.D)
}

// Allowed maps the public name of a sortable field to the SQL expression used for it.
type Allowed map[string]string

// ParseDirection returns Desc for "desc" or "descending" in any case
// and Asc for everything else.
func ParseDirection(direction string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case string(Desc), "descending":
		return Desc
	default:
		return Asc
	}
}

// Resolve picks the SQL expression for field from allowed.
// Unknown fields fall back to the fallback field and unknown directions to Asc,
// so no caller supplied text ever reaches the ORDER BY clause.
// The second return value is the public name of the field actually used.
func Resolve(field, direction string, allowed Allowed, fallback string) (Opt, string) {
	key := strings.TrimSpace(field)
	expr, ok := allowed[key]
	if !ok {
		key = fallback
		expr = allowed[fallback]
	}

	return Opt{F: expr, D: ParseDirection(direction)}, key
}
