// Package response turns the gateway's raw JSON payloads into typed,
// read-only views. Missing fields surface as explicit absence, never a
// panic.
package response

import (
	"strconv"
	"time"
)

// Payload is the raw JSON object decoded from a gateway response body.
type Payload map[string]any

// String returns the value at key when present and a string.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the value at key parsed as a decimal. The gateway encodes
// amounts as strings ("100.50") but some shapes carry JSON numbers; both
// are accepted.
func (p Payload) Float(key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case float64:
		return n, true
	}
	return 0, false
}

// Gateway timestamps come in a few flavors depending on the endpoint.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000 MST",
	"2006-01-02T15:04:05:000 MST",
	"2006-01-02T15:04:05",
}

// Time returns the value at key parsed as a timestamp.
func (p Payload) Time(key string) (time.Time, bool) {
	s, ok := p.String(key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// firstString walks keys in order and returns the first present string
// value. Fallback order is fixed per field, never data-dependent.
func (p Payload) firstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := p.String(key); ok {
			return s, true
		}
	}
	return "", false
}
