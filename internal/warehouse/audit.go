package warehouse

import (
	"sort"

	"github.com/rs/zerolog"

	"dwetl/pkg/records"
)

// Report carries the quality metrics of one produced table: total row count
// and null counts for the columns that should usually be present. It is
// purely observational and never gates the pipeline.
type Report struct {
	Table      string
	Rows       int
	NullCounts map[string]int
}

// Audit computes the quality report for a finalized row set. Watched columns
// absent from a record count as null.
func Audit(table string, recs []records.Record, watch ...string) Report {
	rep := Report{
		Table:      table,
		Rows:       len(recs),
		NullCounts: make(map[string]int, len(watch)),
	}
	for _, col := range watch {
		rep.NullCounts[col] = 0
	}
	for _, r := range recs {
		for _, col := range watch {
			if v, ok := r[col]; !ok || v == nil {
				rep.NullCounts[col]++
			}
		}
	}
	return rep
}

// Log emits the report as one structured info line.
func (r Report) Log(log zerolog.Logger) {
	ev := log.Info().Str("table", r.Table).Int("rows", r.Rows)
	cols := make([]string, 0, len(r.NullCounts))
	for col := range r.NullCounts {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		ev = ev.Int("null_"+col, r.NullCounts[col])
	}
	ev.Msg("quality audit")
}
