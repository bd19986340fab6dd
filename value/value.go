// Package value classifies the Go values handed to the checker into the small closed
// set of runtime shapes that type descriptors talk about: scalars, array-like,
// mapping-like and lazy sequences, plus class objects, instances and doubles.
package value

import (
	"iter"
	"reflect"
)

// Class names assigned to values which do not carry their own class
const (
	NilClass    = "NilClass"
	TrueClass   = "TrueClass"
	FalseClass  = "FalseClass"
	Integer     = "Integer"
	Float       = "Float"
	String      = "String"
	SymbolClass = "Symbol"
	Array       = "Array"
	HashClass   = "Hash"
	RangeClass  = "Range"
	Enum        = "Enumerator"
	Class       = "Class"
	ModuleClass = "Module"
	Exception   = "Exception"
	DoubleClass = "Double"
)

// Symbol is an interned name, as opposed to a String
type Symbol string

// Module is a class or module object itself, not an instance of it
type Module struct {
	Name     string
	IsModule bool
}

// Object is an instance of a user class
type Object struct {
	Class string
	// Ivars is only used when inspecting the object
	Ivars map[string]any
}

// Double is a stand-in supplied in place of a real dependency, typically by a
// mocking library
type Double struct {
	Name string
}

type Range struct {
	Begin, End any
	Exclusive  bool
}

// Enumerator is a possibly unbounded sequence.
// Result is the value the enumeration evaluates to once exhausted,
// and is meaningless when Infinite is set.
type Enumerator struct {
	Each     iter.Seq[any]
	Infinite bool
	Result   any
}

// Enumerate returns the Enumerator of a slice, which evaluates to the slice itself
func Enumerate(xs []any) *Enumerator {
	return &Enumerator{
		Each: func(yield func(any) bool) {
			for _, x := range xs {
				if !yield(x) {
					return
				}
			}
		},
		Result: xs,
	}
}

// Loop returns an infinite Enumerator yielding gen(0), gen(1), ...
func Loop(gen func(i int) any) *Enumerator {
	return &Enumerator{
		Each: func(yield func(any) bool) {
			for i := 0; ; i++ {
				if !yield(gen(i)) {
					return
				}
			}
		},
		Infinite: true,
	}
}

// ClassOf returns the name of the class v is a direct instance of
func ClassOf(v any) string {
	switch v := v.(type) {
	case nil:
		return NilClass
	case bool:
		if v {
			return TrueClass
		}
		return FalseClass
	case string:
		return String
	case Symbol:
		return SymbolClass
	case Module:
		if v.IsModule {
			return ModuleClass
		}
		return Class
	case *Object:
		if v == nil {
			return NilClass
		}
		return v.Class
	case Double:
		return DoubleClass
	case Range:
		return RangeClass
	case *Enumerator:
		return Enum
	case *Hash:
		return HashClass
	case error:
		return Exception
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map:
		return HashClass
	case reflect.String:
		return String
	default:
		return reflect.TypeOf(v).String()
	}
}

// AsArray returns the elements of an array-like value
func AsArray(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}

// AsEnumerator returns v as a lazy sequence
func AsEnumerator(v any) (*Enumerator, bool) {
	e, ok := v.(*Enumerator)
	return e, ok && e != nil
}

// IsDouble reports whether v is a stand-in object
func IsDouble(v any) bool {
	_, ok := v.(Double)
	return ok
}
