package builtin

import (
	"reflect"
	"testing"

	"dwetl/pkg/records"
)

func TestRename(t *testing.T) {
	in := []records.Record{{"id": 1, "title": "X", "price": 2.0}}
	Rename{Mapping: map[string]string{"id": "product_id", "title": "product_name"}}.Apply(in)
	want := records.Record{"product_id": 1, "product_name": "X", "price": 2.0}
	if !reflect.DeepEqual(in[0], want) {
		t.Fatalf("got %#v want %#v", in[0], want)
	}
}

func TestRenameAbsentSource(t *testing.T) {
	in := []records.Record{{"id": 1}}
	Rename{Mapping: map[string]string{"title": "product_name"}}.Apply(in)
	if _, ok := in[0]["product_name"]; ok {
		t.Fatal("absent source must not materialize destination")
	}
}

func TestSelect(t *testing.T) {
	in := []records.Record{{"a": 1, "b": 2, "secret": "x"}}
	Select{Columns: []string{"a", "c"}}.Apply(in)
	want := records.Record{"a": 1, "c": nil}
	if !reflect.DeepEqual(in[0], want) {
		t.Fatalf("got %#v want %#v", in[0], want)
	}
}

func TestDrop(t *testing.T) {
	in := []records.Record{{"email": "a@x", "password": "p", "cpf": "1"}}
	Drop{Columns: []string{"password", "cpf", "cnpj"}}.Apply(in)
	want := records.Record{"email": "a@x"}
	if !reflect.DeepEqual(in[0], want) {
		t.Fatalf("got %#v want %#v", in[0], want)
	}
}
