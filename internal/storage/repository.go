// Package storage contains storage-agnostic contracts and utilities for the
// warehouse sink: the Repository interface, a factory keyed by backend kind,
// and the batched truncate-then-append loader.
//
// Backends (Postgres, SQLite) register their constructors at init time; the
// rest of the application depends only on this package and never imports a
// database driver directly.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and parameterizes a backend for one destination table.
type Config struct {
	// Kind selects the backend implementation: "postgres" or "sqlite".
	Kind string

	// DSN is the backend connection string.
	DSN string

	// Table is the destination table name, e.g. "dim_produto".
	Table string

	// Columns is the ordered destination column list; rows handed to
	// CopyFrom must be aligned with it.
	Columns []string
}

// Repository is a table-scoped warehouse sink.
//
// Truncate clears the destination table and resets its identity sequence.
// CopyFrom bulk-inserts rows aligned to the given column order and reports
// the number of rows inserted. Exec runs arbitrary SQL (table bootstrap).
// Truncate and append are two sequential statements with no compensating
// rollback: a failure during append leaves the table truncated-and-partial.
type Repository interface {
	Truncate(ctx context.Context) error
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
	Close()
}

// Factory constructs a Repository for one Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) a backend factory for the given kind.
// It is called from backend packages' init functions.
func Register(kind string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. An unknown kind is an error; callers
// surface it as a configuration problem.
func New(ctx context.Context, cfg Config) (Repository, error) {
	factoryMu.RLock()
	f, ok := factories[cfg.Kind]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}
