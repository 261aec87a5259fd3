package warehouse

import (
	"reflect"
	"testing"

	"dwetl/pkg/records"
)

func TestAudit(t *testing.T) {
	recs := []records.Record{
		{"price": 9.99, "category": "Beauty"},
		{"price": nil, "category": "Beauty"},
		{"category": nil},
	}
	got := Audit("dim_produto", recs, "price", "category")
	want := Report{
		Table:      "dim_produto",
		Rows:       3,
		NullCounts: map[string]int{"price": 2, "category": 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestAuditEmptyTable(t *testing.T) {
	got := Audit("fact_transacao", nil, "product_id")
	if got.Rows != 0 || got.NullCounts["product_id"] != 0 {
		t.Fatalf("got %#v", got)
	}
}

// The auditor observes; it must not touch the rows it is given.
func TestAuditDoesNotMutate(t *testing.T) {
	recs := []records.Record{{"price": nil, "category": "Beauty"}}
	before := records.Record{"price": nil, "category": "Beauty"}
	Audit("dim_produto", recs, "price", "category")
	if !reflect.DeepEqual(recs[0], before) {
		t.Fatalf("auditor mutated its input: %#v", recs[0])
	}
}
