// Package builtin contains the reusable record transforms the warehouse
// builders are assembled from: text normalization, numeric coercion, range
// bounding, enum domains, key-based de-duplication, renaming, and column
// selection. All transforms are row-local and total: a value that cannot be
// normalized becomes nil, never an error and never a dropped row.
package builtin

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dwetl/pkg/records"
)

// Casing selects the canonical case applied to a text field.
type Casing int

const (
	// CasingNone trims only.
	CasingNone Casing = iota
	// CasingTitle is for display fields (product_name, category, name parts).
	CasingTitle
	// CasingLower is for identifiers (email).
	CasingLower
	// CasingUpper is for codes (sku).
	CasingUpper
)

// missing-value sentinels after string coercion. "nan" is what dataframe
// exporters leave behind when a missing value is stringified; "<nil>" is
// Go's own fmt rendering of nil.
var missingText = map[string]struct{}{
	"":      {},
	"nan":   {},
	"none":  {},
	"null":  {},
	"<nil>": {},
}

// NormalizeText string-coerces, trims, and re-cases the configured fields.
// A value that reads as a missing-value sentinel becomes an explicit nil.
type NormalizeText struct {
	Fields []string
	Casing Casing
}

func (n NormalizeText) Apply(in []records.Record) []records.Record {
	caser := cases.Title(language.Und)
	for _, r := range in {
		for _, f := range n.Fields {
			if _, ok := r[f]; !ok {
				continue
			}
			r[f] = cleanText(r[f], n.Casing, caser)
		}
	}
	return in
}

// CleanText normalizes a single text value outside a chain, for scalars
// pulled out of embedded structures.
func CleanText(v any, c Casing) any {
	return cleanText(v, c, cases.Title(language.Und))
}

func cleanText(v any, c Casing, caser cases.Caser) any {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(stringify(v))
	if _, miss := missingText[strings.ToLower(s)]; miss {
		return nil
	}
	switch c {
	case CasingTitle:
		return caser.String(strings.ToLower(s))
	case CasingLower:
		return strings.ToLower(s)
	case CasingUpper:
		return strings.ToUpper(s)
	}
	return s
}

// stringify renders v the way the destination column would receive it as
// text. Floats carrying integral values print without a trailing ".0" so
// that document numbers round-trip cleanly.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
	}
	return fmt.Sprintf("%v", v)
}
