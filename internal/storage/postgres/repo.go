// Package postgres implements the warehouse sink on Postgres using pgx v5.
// Bulk appends go through the COPY protocol; truncation resets the identity
// sequence and cascades, matching the full-reload semantics of the pipeline.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN     string   // connection string for pgxpool
	Table   string   // destination table, optionally schema-qualified
	Columns []string // ordered columns for COPY
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and validates the connection with a
// ping. The returned close function releases the pool.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	return &Repository{pool: pool, cfg: cfg}, pool.Close, nil
}

// Truncate clears the destination table, restarting its identity sequence
// and cascading to dependents.
func (r *Repository) Truncate(ctx context.Context) error {
	stmt := fmt.Sprintf(
		"TRUNCATE TABLE %s RESTART IDENTITY CASCADE",
		pgFQN(r.cfg.Table),
	)
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("truncate %s: %w", r.cfg.Table, err)
	}
	return nil
}

// CopyFrom bulk-inserts rows via the COPY protocol. Rows must be aligned to
// the given column order.
func (r *Repository) CopyFrom(
	ctx context.Context,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	ident := make(pgx.Identifier, 0, 2)
	for _, part := range strings.Split(r.cfg.Table, ".") {
		ident = append(ident, part)
	}
	n, err := r.pool.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", r.cfg.Table, err)
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically table bootstrap DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// pgIdent double-quotes a single identifier part.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified name part by part.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}
