// Package transformer defines the transformation contract applied to record
// batches between extraction and loading.
package transformer

import "dwetl/pkg/records"

// Transformer rewrites a batch of records. Implementations may mutate the
// records in place and may change the batch length (dedup drops records, the
// fact expansion grows it).
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
