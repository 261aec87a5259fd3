package builtin

import (
	"math"
	"testing"

	"dwetl/pkg/records"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"float", 9.99, 9.99},
		{"int", 42, 42.0},
		{"int64", int64(7), 7.0},
		{"string number", "19.5", 19.5},
		{"string padded", " 3 ", 3.0},
		{"nil", nil, nil},
		{"nan", math.NaN(), nil},
		{"nan text", "NaN", nil},
		{"garbage", "abc", nil},
		{"bool", true, nil},
		{"struct", []any{1}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToNumber(tc.in); got != tc.want {
				t.Fatalf("ToNumber(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoerceNumericNeverDropsRows(t *testing.T) {
	in := []records.Record{
		{"price": "9.99", "rating": "bad", "stock": nil},
		{"price": 5, "rating": 4.5, "stock": "100"},
	}
	got := CoerceNumeric{Fields: []string{"price", "rating", "stock"}}.Apply(in)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0]["price"] != 9.99 || got[0]["rating"] != nil || got[0]["stock"] != nil {
		t.Fatalf("row 0 = %#v", got[0])
	}
	if got[1]["price"] != 5.0 || got[1]["rating"] != 4.5 || got[1]["stock"] != 100.0 {
		t.Fatalf("row 1 = %#v", got[1])
	}
}

func TestBoundRange(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"inside", 30.0, 30.0},
		{"lower edge", 0.0, 0.0},
		{"upper edge", 120.0, 120.0},
		{"above", 200.0, nil},
		{"below", -1.0, nil},
		{"nil stays nil", nil, nil},
		{"uncoerced text", "x", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []records.Record{{"age": tc.in}}
			BoundRange{Field: "age", Min: 0, Max: 120}.Apply(in)
			if in[0]["age"] != tc.want {
				t.Fatalf("got %#v want %#v", in[0]["age"], tc.want)
			}
		})
	}
}

func TestEnumDomain(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"male", "male", "male"},
		{"female", "female", "female"},
		{"case sensitive", "Male", "unknown"},
		{"other", "x", "unknown"},
		{"nil", nil, "unknown"},
		{"number", 3, "unknown"},
	}
	e := EnumDomain{Field: "gender", Allowed: []string{"male", "female"}, Fallback: "unknown"}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []records.Record{{"gender": tc.in}}
			e.Apply(in)
			if in[0]["gender"] != tc.want {
				t.Fatalf("got %#v want %q", in[0]["gender"], tc.want)
			}
		})
	}
}
