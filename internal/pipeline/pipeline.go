// Package pipeline orchestrates the three warehouse loads end to end:
// extract the source collection, build the dimensional rows, audit them,
// then truncate-and-append into the destination table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dwetl/internal/metrics"
	"dwetl/internal/schema"
	"dwetl/internal/storage"
	"dwetl/internal/warehouse"
	"dwetl/pkg/records"
)

// Source yields the raw documents of one collection.
type Source interface {
	Collection(ctx context.Context, name string) ([]records.Record, error)
}

// Builder turns raw documents into finalized rows for one table.
type Builder func(docs []records.Record, log zerolog.Logger) []records.Record

// Pipeline binds one source collection to one destination table.
type Pipeline struct {
	// Name identifies the pipeline in logs and metrics; it equals the
	// destination table name.
	Name string

	// Collection is the source collection read from MongoDB.
	Collection string

	// Contract fixes the destination table and column order.
	Contract schema.Contract

	// Build produces the finalized rows.
	Build Builder

	// Watch lists the columns reported in the quality audit.
	Watch []string
}

// Defaults returns the three standard pipelines in load order. Dimensions
// come first so a fact load failure never leaves stale dimensions behind.
//
// Each Watch list must keep at least its contractual audit columns: category
// and price for products, email and city for users, product_id for facts.
// The remaining entries are extra operator visibility and free to change.
func Defaults() []Pipeline {
	return []Pipeline{
		{
			Name:       "dim_produto",
			Collection: "products",
			Contract:   schema.DimProduto,
			Build:      warehouse.Products,
			Watch:      []string{"product_id", "product_name", "category", "price", "barcode", "created_at"},
		},
		{
			Name:       "dim_usuario",
			Collection: "users",
			Contract:   schema.DimUsuario,
			Build:      warehouse.Users,
			Watch:      []string{"user_id", "name", "email", "birthdate", "city"},
		},
		{
			Name:       "fact_transacao",
			Collection: "carts",
			Contract:   schema.FactTransacao,
			Build:      warehouse.Transactions,
			Watch:      []string{"sale_id", "user_id", "product_id", "transaction_date"},
		},
	}
}

// Summary reports what one pipeline run did.
type Summary struct {
	Pipeline  string
	Extracted int
	Built     int
	Loaded    int64
}

// Runner executes pipelines against a source and a storage backend.
type Runner struct {
	Source Source

	// Kind and DSN select the storage backend per destination table.
	Kind string
	DSN  string

	// BatchSize bounds rows per bulk append statement.
	BatchSize int

	// CreateTables runs the bootstrap DDL before loading.
	CreateTables bool

	// DryRun stops after the audit, never touching the warehouse.
	DryRun bool

	Log zerolog.Logger

	// openRepo is a test seam; nil means storage.New.
	openRepo func(ctx context.Context, cfg storage.Config) (storage.Repository, error)
}

// Run executes one pipeline. Any step failure aborts the run and is returned
// to the caller; rows already flushed by a failing load stay written.
func (r *Runner) Run(ctx context.Context, p Pipeline) (Summary, error) {
	sum := Summary{Pipeline: p.Name}
	log := r.Log.With().Str("pipeline", p.Name).Logger()

	start := time.Now()
	docs, err := r.Source.Collection(ctx, p.Collection)
	metrics.RecordStep(p.Name, "extract", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("%s: extract %s: %w", p.Name, p.Collection, err)
	}
	sum.Extracted = len(docs)
	metrics.RecordRows(p.Name, "extracted", int64(len(docs)))
	log.Info().Int("documents", len(docs)).Str("collection", p.Collection).Msg("extracted")

	start = time.Now()
	rows := p.Build(docs, log)
	metrics.RecordStep(p.Name, "build", nil, time.Since(start))
	sum.Built = len(rows)
	metrics.RecordRows(p.Name, "built", int64(len(rows)))

	warehouse.Audit(p.Name, rows, p.Watch...).Log(log)

	if r.DryRun {
		log.Info().Msg("dry run, skipping load")
		return sum, nil
	}

	repo, err := r.open(ctx, storage.Config{
		Kind:    r.Kind,
		DSN:     r.DSN,
		Table:   p.Contract.Table,
		Columns: p.Contract.Columns(),
	})
	if err != nil {
		return sum, fmt.Errorf("%s: open storage: %w", p.Name, err)
	}
	defer repo.Close()

	if r.CreateTables {
		if err := repo.Exec(ctx, schema.CreateTableSQL(p.Contract)); err != nil {
			return sum, fmt.Errorf("%s: create table: %w", p.Name, err)
		}
	}

	start = time.Now()
	err = repo.Truncate(ctx)
	metrics.RecordStep(p.Name, "truncate", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("%s: %w", p.Name, err)
	}

	columns := p.Contract.Columns()
	start = time.Now()
	loaded, err := storage.LoadBatches(
		ctx, columns, records.Rows(rows, columns), r.BatchSize, repo.CopyFrom, log,
	)
	metrics.RecordStep(p.Name, "load", err, time.Since(start))
	sum.Loaded = loaded
	metrics.RecordRows(p.Name, "loaded", loaded)
	if err != nil {
		return sum, fmt.Errorf("%s: load: %w", p.Name, err)
	}

	log.Info().Int64("rows", loaded).Msg("load complete")
	return sum, nil
}

// RunAll executes the given pipelines, sequentially by default or
// concurrently when parallel is set. The first error cancels the remaining
// work and is returned; completed summaries are returned either way.
func (r *Runner) RunAll(ctx context.Context, pipelines []Pipeline, parallel bool) ([]Summary, error) {
	summaries := make([]Summary, len(pipelines))

	if !parallel {
		for i, p := range pipelines {
			sum, err := r.Run(ctx, p)
			summaries[i] = sum
			if err != nil {
				return summaries[:i+1], err
			}
		}
		return summaries, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pipelines {
		i, p := i, p
		g.Go(func() error {
			sum, err := r.Run(gctx, p)
			summaries[i] = sum
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func (r *Runner) open(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	if r.openRepo != nil {
		return r.openRepo(ctx, cfg)
	}
	return storage.New(ctx, cfg)
}
