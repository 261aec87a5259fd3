package records

import (
	"reflect"
	"testing"
)

func TestCloneIsShallowCopy(t *testing.T) {
	orig := Record{"id": int64(1), "name": "ana"}
	c := orig.Clone()

	c["name"] = "bia"
	if orig["name"] != "ana" {
		t.Errorf("mutating the clone changed the original: %v", orig)
	}
	if !reflect.DeepEqual(orig, Record{"id": int64(1), "name": "ana"}) {
		t.Errorf("original = %v", orig)
	}
}

func TestRowAlignsWithColumns(t *testing.T) {
	r := Record{"b": 2, "a": 1}
	got := r.Row([]string{"a", "b", "missing"})
	want := []any{1, 2, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Row() = %v, want %v", got, want)
	}
}

func TestRows(t *testing.T) {
	recs := []Record{
		{"a": 1, "b": "x"},
		{"a": 2},
	}
	got := Rows(recs, []string{"a", "b"})
	want := [][]any{{1, "x"}, {2, nil}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %v, want %v", got, want)
	}
	if len(Rows(nil, []string{"a"})) != 0 {
		t.Error("Rows(nil) should be empty")
	}
}
