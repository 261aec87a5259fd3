package storage

import (
	"context"
	"strings"
	"testing"
)

type stubRepo struct{}

func (stubRepo) Truncate(context.Context) error { return nil }
func (stubRepo) CopyFrom(context.Context, []string, [][]any) (int64, error) {
	return 0, nil
}
func (stubRepo) Exec(context.Context, string) error { return nil }
func (stubRepo) Close()                             {}

func TestNewDispatchesByKind(t *testing.T) {
	var got Config
	Register("stub", func(ctx context.Context, cfg Config) (Repository, error) {
		got = cfg
		return stubRepo{}, nil
	})
	t.Cleanup(func() {
		factoryMu.Lock()
		delete(factories, "stub")
		factoryMu.Unlock()
	})

	cfg := Config{
		Kind:    "stub",
		DSN:     "stub://local",
		Table:   "dim_produto",
		Columns: []string{"product_id", "sku"},
	}
	repo, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if repo == nil {
		t.Fatal("New returned nil repository")
	}
	if got.Table != "dim_produto" || got.DSN != "stub://local" {
		t.Errorf("factory received %+v, want %+v", got, cfg)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "oracle"})
	if err == nil {
		t.Fatal("expected error for unregistered kind")
	}
	if !strings.Contains(err.Error(), "oracle") {
		t.Errorf("err = %q, want it to name the kind", err)
	}
}
