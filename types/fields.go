package types

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

// Fields is an immutable collection of named entries, iterated in name order.
// The zero value is an empty collection.
type Fields[V any] struct {
	m *immutable.SortedMap[string, V]
}

// FieldsOf copies entries into a new Fields
func FieldsOf[V any](entries map[string]V) Fields[V] {
	var f Fields[V]
	for name, v := range entries {
		f = f.With(name, v)
	}
	return f
}

// With returns a copy of f where name is bound to v
func (f Fields[V]) With(name string, v V) Fields[V] {
	m := f.m
	if m == nil {
		m = immutable.NewSortedMap[string, V](immutable.NewComparer(""))
	}
	return Fields[V]{m: m.Set(name, v)}
}

func (f Fields[V]) Len() int {
	if f.m == nil {
		return 0
	}
	return f.m.Len()
}

func (f Fields[V]) Get(name string) (v V, ok bool) {
	if f.m == nil {
		return v, false
	}
	return f.m.Get(name)
}

func (f Fields[V]) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// All iterates over the entries of f in name order
func (f Fields[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if f.m == nil {
			return
		}
		itr := f.m.Iterator()
		for !itr.Done() {
			name, v, ok := itr.Next()
			if !ok || !yield(name, v) {
				return
			}
		}
	}
}

// Names returns the sorted names in f
func (f Fields[V]) Names() []string {
	names := make([]string, 0, f.Len())
	for name := range f.All() {
		names = append(names, name)
	}
	return names
}
