package model

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Meta is an insertion-ordered bag of untyped values attached to items and
// components. A nil *Meta behaves like an empty map for every read; writes
// need a non-nil *Meta, from NewMeta or a zero Meta value.
type Meta struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewMeta builds a Meta from alternating key/value arguments. Keys that are
// not strings are skipped.
func NewMeta(kv ...any) *Meta {
	meta := &Meta{m: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			meta.m.Set(k, kv[i+1])
		}
	}
	return meta
}

// Set stores value under key, keeping the key's original position if it
// already exists. Set panics on a nil *Meta.
func (m *Meta) Set(key string, value any) {
	if m.m == nil {
		m.m = orderedmap.New[string, any]()
	}
	m.m.Set(key, value)
}

// Get returns the raw value stored under key.
func (m *Meta) Get(key string) (any, bool) {
	if m == nil || m.m == nil {
		return nil, false
	}
	return m.m.Get(key)
}

// Len returns the number of keys.
func (m *Meta) Len() int {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Keys returns the keys in insertion order.
func (m *Meta) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, m.m.Len())
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// String returns the value under key if it is a string, else def.
func (m *Meta) String(key, def string) string {
	if v, ok := m.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Float returns the value under key as a float64 if it is numeric, else def.
func (m *Meta) Float(key string, def float64) float64 {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return def
}

// Bool returns the value under key if it is a bool, else def.
func (m *Meta) Bool(key string, def bool) bool {
	if v, ok := m.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Clone returns a shallow copy that preserves key order.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	out := &Meta{m: orderedmap.New[string, any]()}
	if m.m == nil {
		return out
	}
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		out.m.Set(p.Key, p.Value)
	}
	return out
}

// MetaEqual compares two Meta values key by key. Key order is ignored.
// A nil Meta equals an empty one.
func MetaEqual(a, b *Meta) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		other, ok := b.Get(p.Key)
		if !ok || !cmp.Equal(p.Value, other) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the keys in insertion order.
func (m *Meta) MarshalJSON() ([]byte, error) {
	if m == nil || m.m == nil {
		return []byte("{}"), nil
	}
	return m.m.MarshalJSON()
}
