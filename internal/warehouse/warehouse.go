// Package warehouse maps raw source documents to finalized destination rows.
//
// Each builder is a pure batch transform: it takes one extraction snapshot
// and returns the complete row set for its table, selecting exactly the
// contract's column set as its last step. Builders share no state and are
// order-insensitive to each other. Row-local problems (bad dates, bad
// numbers, undecodable embedded structures) become nulls or empty structures
// and are logged at warn level; they never drop a row or fail the batch.
package warehouse

import (
	"strings"

	"dwetl/pkg/records"
)

// lowerKeys canonicalizes field names to lowercase, mirroring the loose
// casing of the source documents. An existing lowercase key wins over a
// re-cased duplicate.
func lowerKeys(docs []records.Record) []records.Record {
	for i, r := range docs {
		out := make(records.Record, len(r))
		for k, v := range r {
			lk := strings.ToLower(k)
			if _, exists := out[lk]; exists && lk != k {
				continue
			}
			out[lk] = v
		}
		docs[i] = out
	}
	return docs
}

// scalarOrNil keeps scalar values and nullifies embedded structures, for
// fields extracted out of a decoded map that must land in a scalar column.
func scalarOrNil(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		return nil
	}
	return v
}
