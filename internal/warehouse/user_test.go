package warehouse

import (
	"reflect"
	"testing"
	"time"

	"dwetl/internal/schema"
	"dwetl/pkg/records"
)

// Scenario: lower-case names, shouting padded email, out-of-range age, and
// an unknown gender code.
func TestUsersAnaSilva(t *testing.T) {
	docs := []records.Record{{
		"id":         3,
		"firstname":  "ana",
		"lastname":   "silva",
		"maidenname": nil,
		"email":      " ANA@X.com ",
		"age":        200,
		"gender":     "x",
	}}
	got := Users(docs, testLog)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	r := got[0]
	if r["user_id"] != int64(3) || r["name"] != "Ana Silva" ||
		r["email"] != "ana@x.com" || r["gender"] != "unknown" {
		t.Fatalf("got %#v", r)
	}
}

func TestUsersMaidenNameWins(t *testing.T) {
	docs := []records.Record{{
		"id": 1, "firstname": "maria", "maidenname": "souza", "lastname": "pereira",
	}}
	got := Users(docs, testLog)
	if got[0]["name"] != "Maria Souza" {
		t.Fatalf("name = %#v, want \"Maria Souza\"", got[0]["name"])
	}
}

func TestUsersNameSkipsMissingParts(t *testing.T) {
	cases := []struct {
		name string
		doc  records.Record
		want any
	}{
		{"first only", records.Record{"id": 1, "firstname": "ana"}, "Ana"},
		{"maidenname is nan text", records.Record{"id": 2, "firstname": "ana", "maidenname": "NaN", "lastname": "silva"}, "Ana Silva"},
		{"all missing", records.Record{"id": 3}, nil},
		{"last only", records.Record{"id": 4, "lastname": "silva"}, "Silva"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Users([]records.Record{tc.doc}, testLog)
			if got[0]["name"] != tc.want {
				t.Fatalf("name = %#v, want %#v", got[0]["name"], tc.want)
			}
		})
	}
}

func TestUsersSensitiveFieldsExcluded(t *testing.T) {
	docs := []records.Record{{
		"id": 1, "firstname": "a", "email": "a@x",
		"password": "hunter2", "cpf": "123", "cnpj": "456",
		"bank":   map[string]any{"iban": "x"},
		"crypto": map[string]any{"wallet": "y"},
		"company": map[string]any{"name": "z"},
		"cardnumber": "4111", "cardexpire": "01/30", "cardsymbol": "v",
	}}
	got := Users(docs, testLog)
	for _, col := range sensitiveColumns {
		if _, ok := got[0][col]; ok {
			t.Fatalf("sensitive column %q present in output", col)
		}
	}
	if len(got[0]) != len(schema.DimUsuario.Fields) {
		t.Fatalf("columns = %d, want %d: %#v",
			len(got[0]), len(schema.DimUsuario.Fields), got[0])
	}
}

func TestUsersGenderAlwaysInDomain(t *testing.T) {
	docs := []records.Record{
		{"id": 1, "gender": "male"},
		{"id": 2, "gender": "female"},
		{"id": 3, "gender": "Male"},
		{"id": 4},
		{"id": 5, "gender": nil},
	}
	got := Users(docs, testLog)
	domain := map[any]bool{"male": true, "female": true, "unknown": true}
	for _, r := range got {
		if !domain[r["gender"]] {
			t.Fatalf("gender %#v outside domain for user %v", r["gender"], r["user_id"])
		}
	}
	if got[0]["gender"] != "male" || got[1]["gender"] != "female" || got[2]["gender"] != "unknown" {
		t.Fatalf("got %v %v %v", got[0]["gender"], got[1]["gender"], got[2]["gender"])
	}
}

func TestUsersAddressExtraction(t *testing.T) {
	docs := []records.Record{
		{"id": 1, "address": map[string]any{"city": "Phoenix", "state": "Arizona", "country": "United States"}},
		{"id": 2, "address": "{'city': 'Recife', 'state': 'PE', 'country': 'Brazil'}"},
		{"id": 3, "address": "broken{"},
		{"id": 4},
	}
	got := Users(docs, testLog)
	if got[0]["city"] != "Phoenix" || got[0]["state"] != "Arizona" {
		t.Fatalf("native address: %#v", got[0])
	}
	if got[1]["city"] != "Recife" || got[1]["country"] != "Brazil" {
		t.Fatalf("stringified address: %#v", got[1])
	}
	if got[2]["city"] != nil || got[3]["city"] != nil {
		t.Fatalf("undecodable/missing address must yield nils: %#v %#v", got[2], got[3])
	}
}

func TestUsersBirthdate(t *testing.T) {
	docs := []records.Record{
		{"id": 1, "birthdate": "1996-05-30"},
		{"id": 2, "birthdate": "not a date"},
		{"id": 3},
	}
	got := Users(docs, testLog)
	want := time.Date(1996, 5, 30, 0, 0, 0, 0, time.UTC)
	if bd, _ := got[0]["birthdate"].(time.Time); !bd.Equal(want) {
		t.Fatalf("birthdate = %#v, want %v", got[0]["birthdate"], want)
	}
	if got[1]["birthdate"] != nil || got[2]["birthdate"] != nil {
		t.Fatalf("bad/missing birthdates must be nil: %#v %#v",
			got[1]["birthdate"], got[2]["birthdate"])
	}
}

func TestUsersDedupByID(t *testing.T) {
	docs := []records.Record{
		{"id": 7, "firstname": "first"},
		{"id": 7, "firstname": "second"},
	}
	got := Users(docs, testLog)
	if len(got) != 1 || got[0]["name"] != "First" {
		t.Fatalf("got %#v", got)
	}
}

func TestUsersIdempotent(t *testing.T) {
	mkDocs := func() []records.Record {
		return []records.Record{{
			"id": 3, "firstname": "ana", "lastname": "silva",
			"email": " ANA@X.com ", "age": 200, "gender": "x",
			"address": "{'city': 'Recife'}",
		}}
	}
	if a, b := Users(mkDocs(), testLog), Users(mkDocs(), testLog); !reflect.DeepEqual(a, b) {
		t.Fatalf("builder is not deterministic:\n%#v\n%#v", a, b)
	}
}
