package schema

import (
	"fmt"
	"strings"
)

// CreateTableSQL renders an idempotent CREATE TABLE for the contract. Column
// types are emitted as declared; backends with a narrower type system (e.g.
// SQLite) accept these by affinity. Nullability is intentionally loose: the
// engine guarantees the non-null invariants, the warehouse stores what it is
// given.
func CreateTableSQL(c Contract) string {
	cols := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		cols = append(cols, fmt.Sprintf("\t%s %s", f.Name, f.Type))
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		c.Table, strings.Join(cols, ",\n"),
	)
}
