// Package cells provides the insertion-ordered cell mapping used for board
// contents.
//
// Renderers iterate boards in insertion order, so Map keeps keys in the
// order they were first set. Its JSON form is an array of [key, value]
// pairs, which preserves that order and rejects duplicate keys on decode.
package cells

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

// Map is an insertion-ordered mapping from cell id to contents.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New returns an empty map.
func New[V any]() *Map[V] {
	return &Map[V]{values: map[string]V{}}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	v, ok := m.values[key]
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key.
func (m *Map[V]) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Map[V]) Each(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns an independent copy. Values are copied by assignment.
func (m *Map[V]) Clone() *Map[V] {
	out := &Map[V]{values: make(map[string]V, m.Len())}
	if m == nil {
		return out
	}
	out.keys = append(make([]string, 0, len(m.keys)), m.keys...)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys and values,
// regardless of order.
func Equal[V comparable](a, b *Map[V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Each(func(key string, value V) bool {
		other, ok := b.Get(key)
		equal = ok && other == value
		return equal
	})
	return equal
}

// MarshalJSON encodes the map as an array of [key, value] pairs.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, 0, m.Len())
	m.Each(func(key string, value V) bool {
		pairs = append(pairs, [2]any{key, value})
		return true
	})
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes an array of [key, value] pairs. Anything else,
// including duplicate keys, fails with MALFORMED_STATE.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformed("board must be an array of pairs", err)
	}
	out := Map[V]{values: make(map[string]V, len(raw))}
	for i, entry := range raw {
		var pair []json.RawMessage
		if err := json.Unmarshal(entry, &pair); err != nil || len(pair) != 2 {
			return malformed(fmt.Sprintf("board entry %d is not a pair", i), err)
		}
		var key string
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return malformed(fmt.Sprintf("board entry %d key is not a string", i), err)
		}
		if bytes.Equal(bytes.TrimSpace(pair[1]), []byte("null")) {
			return malformed(fmt.Sprintf("board entry %s has no value", key), nil)
		}
		var value V
		if err := json.Unmarshal(pair[1], &value); err != nil {
			return malformed(fmt.Sprintf("board entry %s value", key), err)
		}
		if out.Has(key) {
			return malformed(fmt.Sprintf("board key %s is duplicated", key), nil)
		}
		out.Set(key, value)
	}
	*m = out
	return nil
}

func malformed(message string, cause error) error {
	if cause == nil {
		return apperrors.New(apperrors.CodeMalformedState, message)
	}
	return apperrors.Wrap(apperrors.CodeMalformedState, message, cause)
}
