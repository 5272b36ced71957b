package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("brief must be a JSON object")

// Brief is a generated music brief.
//
// The API defines no schema, so a Brief holds the raw JSON object and exposes it through
// [gjson.Result] values. Iteration follows the document's own key order.
type Brief struct {
	raw []byte
}

// ParseBrief validates data as a single JSON object and returns it as a [Brief].
func ParseBrief(data []byte) (*Brief, error) {
	trimmed := bytes.TrimSpace(data)
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("invalid JSON: %w", errNotObject)
	}
	if !gjson.ParseBytes(trimmed).IsObject() {
		return nil, errNotObject
	}

	raw := make([]byte, len(trimmed))
	copy(raw, trimmed)
	return &Brief{raw: raw}, nil
}

// BriefFromResult builds a [Brief] from an already-parsed value, such as the result field of a stream envelope.
func BriefFromResult(r gjson.Result) (*Brief, error) {
	if !r.IsObject() {
		return nil, errNotObject
	}
	return ParseBrief([]byte(r.Raw))
}

// Raw returns a copy of the brief's JSON bytes.
func (b *Brief) Raw() []byte {
	out := make([]byte, len(b.raw))
	copy(out, b.raw)
	return out
}

// Value returns the whole brief as a parsed object.
func (b *Brief) Value() gjson.Result {
	return gjson.ParseBytes(b.raw)
}

// Keys returns the top-level keys in document order.
func (b *Brief) Keys() []string {
	var keys []string
	b.Each(func(key string, _ gjson.Result) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Len returns the number of top-level entries.
func (b *Brief) Len() int {
	n := 0
	b.Each(func(string, gjson.Result) bool {
		n++
		return true
	})
	return n
}

// Get returns the value stored under key, matched literally (no gjson path syntax).
func (b *Brief) Get(key string) (gjson.Result, bool) {
	var (
		found gjson.Result
		ok    bool
	)
	b.Each(func(k string, v gjson.Result) bool {
		if k == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Each calls fn for every top-level entry in document order until fn returns false.
func (b *Brief) Each(fn func(key string, value gjson.Result) bool) {
	gjson.ParseBytes(b.raw).ForEach(func(k, v gjson.Result) bool {
		return fn(k.String(), v)
	})
}

// MarshalJSON returns the brief exactly as received.
func (b *Brief) MarshalJSON() ([]byte, error) {
	if b == nil || len(b.raw) == 0 {
		return []byte("null"), nil
	}
	return b.Raw(), nil
}

// UnmarshalJSON replaces the brief with data, which must be a JSON object.
func (b *Brief) UnmarshalJSON(data []byte) error {
	parsed, err := ParseBrief(data)
	if err != nil {
		return err
	}
	b.raw = parsed.raw
	return nil
}
