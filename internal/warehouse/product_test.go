package warehouse

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dwetl/internal/schema"
	"dwetl/pkg/records"
)

var testLog = zerolog.Nop()

func TestProductsFullRow(t *testing.T) {
	docs := []records.Record{{
		"id":          float64(1),
		"title":       "  essence mascara lash princess ",
		"category":    "beauty",
		"brand":       "essence",
		"price":       9.99,
		"rating":      "4.94",
		"stock":       float64(5),
		"sku":         "rch45q1a",
		"meta":        map[string]any{"barcode": "9164035109868", "createdAt": "2024-05-23T08:56:21.618Z"},
		"description": "dropped",
		"images":      []any{"x.png"},
		"thumbnail":   "t.png",
	}}
	got := Products(docs, testLog)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	want := records.Record{
		"product_id":   int64(1),
		"sku":          "RCH45Q1A",
		"product_name": "Essence Mascara Lash Princess",
		"category":     "Beauty",
		"brand":        "Essence",
		"price":        9.99,
		"rating":       4.94,
		"stock":        5.0,
		"barcode":      "9164035109868",
		"created_at":   time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("got %#v\nwant %#v", got[0], want)
	}
}

// Scenario from the source data: meta arrives as a Python-literal string.
func TestProductsStringifiedMeta(t *testing.T) {
	docs := []records.Record{{
		"id":   1,
		"meta": "{'barcode':'123','createdAt':'2023-01-01'}",
	}}
	got := Products(docs, testLog)
	if got[0]["barcode"] != "123" {
		t.Fatalf("barcode = %#v, want \"123\"", got[0]["barcode"])
	}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if created, _ := got[0]["created_at"].(time.Time); !created.Equal(want) {
		t.Fatalf("created_at = %#v, want %v", got[0]["created_at"], want)
	}
}

func TestProductsDedupByID(t *testing.T) {
	docs := []records.Record{
		{"id": 1, "title": "first"},
		{"id": 1, "title": "second"},
		{"id": 2, "title": "other"},
	}
	got := Products(docs, testLog)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0]["product_name"] != "First" {
		t.Fatalf("dedup must keep the first occurrence, got %#v", got[0]["product_name"])
	}
}

func TestProductsMissingMeta(t *testing.T) {
	docs := []records.Record{{"id": 3, "title": "bare"}}
	got := Products(docs, testLog)
	if got[0]["barcode"] != nil || got[0]["created_at"] != nil {
		t.Fatalf("barcode/created_at = %#v/%#v, want nil/nil",
			got[0]["barcode"], got[0]["created_at"])
	}
}

func TestProductsColumnContract(t *testing.T) {
	docs := []records.Record{{"id": 1, "description": "x", "thumbnail": "y"}}
	got := Products(docs, testLog)
	if len(got[0]) != len(schema.DimProduto.Fields) {
		t.Fatalf("columns = %d, want %d: %#v",
			len(got[0]), len(schema.DimProduto.Fields), got[0])
	}
	for _, dropped := range []string{"description", "images", "thumbnail", "meta"} {
		if _, ok := got[0][dropped]; ok {
			t.Fatalf("non-analytical column %q present", dropped)
		}
	}
}

func TestProductsIdempotent(t *testing.T) {
	mkDocs := func() []records.Record {
		return []records.Record{{
			"id": 1, "title": "a", "price": "9.99",
			"meta": "{'barcode':'123','createdAt':'2023-01-01'}",
		}}
	}
	first := Products(mkDocs(), testLog)
	second := Products(mkDocs(), testLog)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("builder is not deterministic:\n%#v\n%#v", first, second)
	}
}
