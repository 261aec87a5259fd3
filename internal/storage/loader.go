package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations insert
// the provided rows (aligned to 'columns' order) and return the number of
// rows reported as inserted. In production it points at Repository.CopyFrom;
// tests substitute a fake to verify batching.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches appends the finalized row set in batches of batchSize, bounding
// per-statement payload size. It returns the total number of rows reported by
// copyFn and the first error encountered; on error, rows already flushed stay
// written (the partial-append window is accepted, see Repository).
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
	log zerolog.Logger,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var total int64
	for start := 0; start < len(rows); start += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := copyFn(ctx, columns, rows[start:end])
		total += n
		if err != nil {
			return total, fmt.Errorf("batch starting at row %d: %w", start, err)
		}
		log.Debug().
			Int64("inserted", n).
			Int64("total_inserted", total).
			Msg("batch flushed")
	}
	return total, nil
}
