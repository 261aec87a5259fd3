package builtin

import (
	"math"
	"strconv"
	"strings"

	"dwetl/pkg/records"
)

// CoerceNumeric parses the configured fields as numbers. A parse failure or
// NaN produces nil; the row is never dropped.
type CoerceNumeric struct {
	Fields []string
}

func (c CoerceNumeric) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, f := range c.Fields {
			if _, ok := r[f]; !ok {
				continue
			}
			r[f] = ToNumber(r[f])
		}
	}
	return in
}

// ToNumber coerces a single value to float64, or nil when it has no numeric
// reading.
func ToNumber(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		return nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return nil
		}
		return f
	}
	return nil
}

// ToInt coerces a single value to int64 for identifier columns, or nil when
// it has no integer reading. Document stores deliver ids as int32, int64, or
// float64 depending on the document.
func ToInt(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return int64(t)
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && !math.IsNaN(f) {
			return int64(f)
		}
		return nil
	}
	return nil
}

// BoundRange nullifies values of Field outside the closed range [Min, Max].
// It expects the field to have been numerically coerced already; non-numeric
// leftovers also become nil.
type BoundRange struct {
	Field    string
	Min, Max float64
}

func (b BoundRange) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		v, ok := r[b.Field]
		if !ok || v == nil {
			continue
		}
		f, ok := v.(float64)
		if !ok || f < b.Min || f > b.Max {
			r[b.Field] = nil
		}
	}
	return in
}

// EnumDomain constrains Field to a fixed allowed set, case-sensitively.
// Any other value, nil included, is replaced with Fallback.
type EnumDomain struct {
	Field    string
	Allowed  []string
	Fallback string
}

func (e EnumDomain) Apply(in []records.Record) []records.Record {
	allowed := make(map[string]struct{}, len(e.Allowed))
	for _, a := range e.Allowed {
		allowed[a] = struct{}{}
	}
	for _, r := range in {
		s, ok := r[e.Field].(string)
		if !ok {
			r[e.Field] = e.Fallback
			continue
		}
		if _, ok := allowed[s]; !ok {
			r[e.Field] = e.Fallback
		}
	}
	return in
}
