package builtin

import "dwetl/pkg/records"

// Rename moves values from source field names to destination field names,
// deleting the source key. Fields absent from a record are skipped.
type Rename struct {
	Mapping map[string]string // source -> destination
}

func (n Rename) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for src, dst := range n.Mapping {
			v, ok := r[src]
			if !ok || src == dst {
				continue
			}
			r[dst] = v
			delete(r, src)
		}
	}
	return in
}

// Select reduces every record to exactly the listed columns, in effect
// dropping everything else. Columns missing from a record materialize as
// explicit nils so downstream row projection stays aligned.
type Select struct {
	Columns []string
}

func (s Select) Apply(in []records.Record) []records.Record {
	for i, r := range in {
		out := make(records.Record, len(s.Columns))
		for _, c := range s.Columns {
			out[c] = r[c] // missing -> nil
		}
		in[i] = out
	}
	return in
}

// Drop removes the listed fields from every record. Select already bounds
// the final column set; Drop exists to scrub sensitive fields explicitly and
// early, before any further processing sees them.
type Drop struct {
	Columns []string
}

func (d Drop) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, c := range d.Columns {
			delete(r, c)
		}
	}
	return in
}
