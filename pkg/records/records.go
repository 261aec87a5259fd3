// Package records defines the generic record shape that flows through the
// ETL pipeline: a flat map of field name to value, as produced by the
// document source and consumed by transformers, builders, and the loader.
//
// Values are kept as loosely typed `any` on purpose; normalization and
// coercion to analytical types happen in the transformer layer, not here.
package records

// Record is one source document or one finalized destination row.
// A nil value means SQL NULL for the destination.
type Record map[string]any

// Clone returns a shallow copy of r. Nested structures are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Row projects r onto the given column order. Missing columns yield nil,
// so the result is always aligned with len(columns).
func (r Record) Row(columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = r[c]
	}
	return row
}

// Rows projects a batch of records onto the given column order.
func Rows(recs []Record, columns []string) [][]any {
	out := make([][]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Row(columns))
	}
	return out
}
