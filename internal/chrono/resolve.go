// Package chrono resolves transaction timestamps of unknown representation.
//
// Source documents carry dates as Unix epochs (numbers or digit strings),
// ISO-8601 text, or day-first locale text, and any of them may be absent.
// Resolve tries an ordered list of candidate interpretations and reports a
// tagged outcome instead of an error; it is total over all inputs.
package chrono

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Outcome tags the result of a resolution attempt.
type Outcome int

const (
	// Resolved means a valid UTC instant was produced.
	Resolved Outcome = iota
	// Missing means the input carried no value at all (nil, NaN, blank
	// text); no interpretation was attempted.
	Missing
	// Invalid means every candidate interpretation failed. Callers should
	// log the offending value together with the consuming context.
	Invalid
)

// String returns the lowercase tag name, for log fields.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Missing:
		return "missing"
	default:
		return "invalid"
	}
}

// isoLayouts cover ISO-8601 text, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// localeLayouts cover day-before-month text.
var localeLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"02.01.2006",
}

// Resolve interprets v as an instant. Candidates are tried in order and the
// first success wins:
//
//  1. missing (nil, NaN, blank text) -> Missing
//  2. numeric, or all-digit text    -> Unix epoch seconds, UTC
//  3. text starting with 4 digits   -> ISO-8601; a failure falls through
//  4. remaining text                -> day-first locale formats
//
// Any returned instant is in UTC. Resolve never panics and never errors.
func Resolve(v any) (time.Time, Outcome) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, Missing
	case time.Time:
		if t.IsZero() {
			return time.Time{}, Missing
		}
		return t.UTC(), Resolved
	case int:
		return epoch(int64(t))
	case int32:
		return epoch(int64(t))
	case int64:
		return epoch(t)
	case float64:
		if math.IsNaN(t) {
			return time.Time{}, Missing
		}
		return epoch(int64(t))
	case string:
		return resolveText(t)
	}
	return time.Time{}, Invalid
}

// ResolveDate is Resolve truncated to a calendar date (midnight UTC), for
// date-typed destination columns such as birthdate and created_at.
func ResolveDate(v any) (time.Time, Outcome) {
	t, out := Resolve(v)
	if out != Resolved {
		return t, out
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Resolved
}

func resolveText(s string) (time.Time, Outcome) {
	// Blank text is an absent value, not a malformed one; it must not land
	// in the callers' warn logs.
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, Missing
	}

	if allDigits(s) {
		sec, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, Invalid
		}
		return epoch(sec)
	}

	if len(s) >= 4 && allDigits(s[:4]) {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), Resolved
			}
		}
		// Fall through to locale formats rather than failing here.
	}

	for _, layout := range localeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), Resolved
		}
	}
	return time.Time{}, Invalid
}

func epoch(sec int64) (time.Time, Outcome) {
	return time.Unix(sec, 0).UTC(), Resolved
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
