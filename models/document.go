package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawListingDocument is the embedded page state of one room page, decoded
// into generic maps and slices. Its shape is owned by Airbnb, so every read
// goes through Lookup and the typed accessors, which report a missing step
// instead of failing.
type RawListingDocument map[string]any

// Lookup walks path through nested maps (string keys) and slices (int
// indexes). ok is false as soon as a step is missing or has the wrong type.
func (d RawListingDocument) Lookup(path ...any) (any, bool) {
	var cur any = map[string]any(d)
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := asMap(cur)
			if !ok {
				return nil, false
			}
			next, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = next
		case int:
			s, ok := cur.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			cur = s[key]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Text returns the trimmed string at path. Empty strings count as missing.
func (d RawListingDocument) Text(path ...any) (string, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Number returns the numeric leaf at path. Numeric strings are accepted.
func (d RawListingDocument) Number(path ...any) (float64, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return 0, false
	}
	return AsNumber(v)
}

// Int returns the whole-number leaf at path.
func (d RawListingDocument) Int(path ...any) (int, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// Bool returns the boolean leaf at path.
func (d RawListingDocument) Bool(path ...any) (bool, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Slice returns the sequence at path.
func (d RawListingDocument) Slice(path ...any) ([]any, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Map returns the nested mapping at path as a document so lookups can continue from it.
func (d RawListingDocument) Map(path ...any) (RawListingDocument, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	return RawListingDocument(m), true
}

// AsDocument converts a sequence element into a document.
func AsDocument(v any) (RawListingDocument, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	return RawListingDocument(m), true
}

// AsString converts a scalar leaf into a trimmed non-empty string. Numbers are
// formatted, since ids are sometimes emitted as numbers.
func AsString(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// AsNumber converts a scalar leaf into a float64.
func AsNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// AsInt converts a scalar leaf into an int. Fractional values are rejected.
func AsInt(v any) (int, bool) {
	f, ok := AsNumber(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case RawListingDocument:
		return map[string]any(t), true
	default:
		return nil, false
	}
}
