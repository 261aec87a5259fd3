package builtin

import (
	"strings"

	"github.com/zeebo/xxh3"

	"dwetl/pkg/records"
)

// DeDup collapses duplicate records by a natural key, keeping the first
// occurrence in batch order. It runs in-memory on a single batch and removes
// intra-batch duplicates before they reach the database; the destination's
// UNIQUE/PK constraints remain the backstop.
//
// A record's key is the xxh3 hash of the configured key fields' string forms
// joined by an unlikely separator (nil renders as "\x00"). Records missing a
// key field are passed through untouched.
type DeDup struct {
	// Keys are the field names that form the natural key, e.g. ["id"].
	Keys []string

	// dropped counts the duplicates removed by the last Apply.
	dropped int
}

// Dropped reports how many duplicates the last Apply removed.
func (d *DeDup) Dropped() int { return d.dropped }

// Apply returns a new slice containing only the first occurrence for each
// key, preserving input order.
func (d *DeDup) Apply(in []records.Record) []records.Record {
	d.dropped = 0
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		key, ok := d.keyOf(r)
		if !ok {
			out = append(out, r)
			continue
		}
		if _, dup := seen[key]; dup {
			d.dropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (d *DeDup) keyOf(r records.Record) (uint64, bool) {
	var b strings.Builder
	for i, k := range d.Keys {
		v, ok := r[k]
		if !ok {
			return 0, false
		}
		if i > 0 {
			b.WriteByte('\x1f')
		}
		if v == nil {
			b.WriteByte('\x00')
			continue
		}
		b.WriteString(stringify(v))
	}
	return xxh3.HashString(b.String()), true
}
