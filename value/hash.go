package value

import (
	"reflect"
	"slices"
	"strings"
)

// Mapping is a key/value container
type Mapping interface {
	Len() int
	// Keys returns keys in a stable order
	Keys() []any
	Get(key any) (any, bool)
}

var (
	_ Mapping = (*Hash)(nil)
	_ Mapping = reflectMap{}
)

// Hash is an insertion-ordered mapping. Keys must be comparable.
type Hash struct {
	keys []any
	vals map[any]any
}

// NewHash builds a Hash from alternating keys and values
func NewHash(kvs ...any) *Hash {
	if len(kvs)%2 != 0 {
		panic("value.NewHash: odd number of arguments")
	}
	h := &Hash{vals: make(map[any]any, len(kvs)/2)}
	for i := 0; i < len(kvs); i += 2 {
		h.Set(kvs[i], kvs[i+1])
	}
	return h
}

func (h *Hash) Set(key, v any) {
	if h.vals == nil {
		h.vals = make(map[any]any)
	}
	if _, ok := h.vals[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.vals[key] = v
}

func (h *Hash) Len() int { return len(h.keys) }

func (h *Hash) Keys() []any { return slices.Clone(h.keys) }

func (h *Hash) Get(key any) (any, bool) {
	if h == nil || h.vals == nil {
		return nil, false
	}
	v, ok := h.vals[key]
	return v, ok
}

// reflectMap adapts a native Go map, ordering keys by their inspected form
type reflectMap struct {
	rv reflect.Value
}

func (m reflectMap) Len() int { return m.rv.Len() }

func (m reflectMap) Keys() []any {
	keys := make([]any, 0, m.rv.Len())
	for _, k := range m.rv.MapKeys() {
		keys = append(keys, k.Interface())
	}
	slices.SortFunc(keys, func(a, b any) int {
		return strings.Compare(Inspect(a), Inspect(b))
	})
	return keys
}

func (m reflectMap) Get(key any) (any, bool) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !kv.Type().AssignableTo(m.rv.Type().Key()) {
		return nil, false
	}
	v := m.rv.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// AsMapping returns v as a Mapping if it is mapping-like
func AsMapping(v any) (Mapping, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case *Hash:
		return v, v != nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	return reflectMap{rv: rv}, true
}
