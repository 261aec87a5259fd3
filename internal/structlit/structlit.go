// Package structlit decodes embedded structures (nested maps and lists) out
// of loosely typed document fields.
//
// Source documents mix already-decoded structures with stringified ones: the
// same field may hold a native map, a JSON string, or a Python-style literal
// such as "{'barcode':'123'}" produced by the upstream exporter. The decoders
// here are total: they never return an error and never return a structure of
// the wrong kind. Callers inspect the returned Kind to decide whether to log.
package structlit

import (
	"encoding/json"
	"math"
	"strings"
)

// Kind tags the outcome of a decode attempt.
type Kind int

const (
	// KindMap means a map structure was obtained (native or decoded).
	KindMap Kind = iota
	// KindList means a list structure was obtained (native or decoded).
	KindList
	// KindEmpty means the input was nil or a missing-value sentinel; the
	// caller received the empty structure of the expected shape.
	KindEmpty
	// KindMalformed means the input was text that could not be decoded, a
	// decode of the wrong shape, or an unexpected scalar type. The caller
	// received the empty structure of the expected shape.
	KindMalformed
)

// String returns the lowercase tag name, for log fields.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindEmpty:
		return "empty"
	default:
		return "malformed"
	}
}

// Map resolves v into a map structure. Resolution order: native map, missing
// value, decodable text, anything else. A decoded list does not satisfy a
// map-typed field and reports KindMalformed.
func Map(v any) (map[string]any, Kind) {
	switch t := v.(type) {
	case map[string]any:
		return t, KindMap
	case nil:
		return map[string]any{}, KindEmpty
	case float64:
		if math.IsNaN(t) {
			return map[string]any{}, KindEmpty
		}
	case string:
		dec, kind := decodeLiteral(t)
		if kind == KindMap {
			return dec.(map[string]any), KindMap
		}
		if kind == KindEmpty {
			return map[string]any{}, KindEmpty
		}
		return map[string]any{}, KindMalformed
	}
	return map[string]any{}, KindMalformed
}

// List resolves v into a list structure, with the same resolution order as
// Map. A decoded map does not satisfy a list-typed field.
func List(v any) ([]any, Kind) {
	switch t := v.(type) {
	case []any:
		return t, KindList
	case nil:
		return []any{}, KindEmpty
	case float64:
		if math.IsNaN(t) {
			return []any{}, KindEmpty
		}
	case string:
		dec, kind := decodeLiteral(t)
		if kind == KindList {
			return dec.([]any), KindList
		}
		if kind == KindEmpty {
			return []any{}, KindEmpty
		}
		return []any{}, KindMalformed
	}
	return []any{}, KindMalformed
}

// decodeLiteral decodes a textual structural expression. It accepts JSON and
// Python-style literals (single-quoted strings, None/True/False keywords).
// Scalars are not structures and report KindMalformed.
func decodeLiteral(s string) (any, Kind) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, KindEmpty
	}

	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		if err := json.Unmarshal([]byte(pythonToJSON(s)), &out); err != nil {
			return nil, KindMalformed
		}
	}

	switch t := out.(type) {
	case map[string]any:
		return t, KindMap
	case []any:
		return t, KindList
	case nil:
		return nil, KindEmpty
	}
	return nil, KindMalformed
}

// pythonToJSON rewrites a Python literal expression into JSON: single-quoted
// strings become double-quoted (escaping embedded double quotes), and the
// bare keywords None/True/False become null/true/false. Content inside
// double-quoted strings is preserved untouched.
func pythonToJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	const (
		outside = iota
		inSingle
		inDouble
	)
	state := outside

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case outside:
			switch r {
			case '\'':
				state = inSingle
				b.WriteByte('"')
			case '"':
				state = inDouble
				b.WriteByte('"')
			default:
				if word, n := matchKeyword(runes, i); n > 0 {
					b.WriteString(word)
					i += n - 1
					continue
				}
				b.WriteRune(r)
			}
		case inSingle:
			switch r {
			case '\\':
				// \' unescapes to a plain quote in JSON; everything else
				// keeps its backslash.
				if i+1 < len(runes) && runes[i+1] == '\'' {
					b.WriteByte('\'')
					i++
					continue
				}
				b.WriteRune(r)
			case '\'':
				state = outside
				b.WriteByte('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
		case inDouble:
			if r == '\\' && i+1 < len(runes) {
				b.WriteRune(r)
				b.WriteRune(runes[i+1])
				i++
				continue
			}
			if r == '"' {
				state = outside
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchKeyword reports whether a Python keyword starts at runes[i] on a word
// boundary, returning its JSON spelling and consumed length.
func matchKeyword(runes []rune, i int) (string, int) {
	kw := [...]struct{ py, js string }{
		{"None", "null"},
		{"True", "true"},
		{"False", "false"},
	}
	for _, k := range kw {
		n := len(k.py)
		if i+n > len(runes) || string(runes[i:i+n]) != k.py {
			continue
		}
		if i > 0 && isWord(runes[i-1]) {
			continue
		}
		if i+n < len(runes) && isWord(runes[i+n]) {
			continue
		}
		return k.js, n
	}
	return "", 0
}

func isWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
