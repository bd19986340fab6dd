// Package types holds the structural type descriptors values are checked against.
// Descriptors are immutable once built and never reference each other cyclically:
// recursive named types go through AliasType and are resolved by name.
package types

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"github.com/cottand/sigtest/value"
)

// Type is a structural type descriptor
type Type interface {
	ShowIn(outerPrecedence uint16) string
	String() string
	Hash() uint64
}

// NullaryType is a Type with no inner types
type NullaryType interface {
	Type
	isNullaryType()
}

const (
	unionPrecedence    uint16 = 20
	optionalPrecedence uint16 = 30
)

var (
	_ Type = (*UnionType)(nil)
	_ Type = (*TupleType)(nil)
	_ Type = (*RecordType)(nil)
	_ Type = (*GenericType)(nil)
	_ Type = (*InterfaceType)(nil)
	_ Type = (*OptionalType)(nil)

	_ NullaryType = (*NominalType)(nil)
	_ NullaryType = (*SingletonType)(nil)
	_ NullaryType = (*SelfType)(nil)
	_ NullaryType = (*UntypedType)(nil)
	_ NullaryType = (*BottomType)(nil)
	_ NullaryType = (*LiteralType)(nil)
	_ NullaryType = (*AliasType)(nil)
	_ NullaryType = (*BoolType)(nil)
	_ NullaryType = (*NilType)(nil)
	_ NullaryType = (*VoidType)(nil)
	_ NullaryType = (*VariableType)(nil)
	_ NullaryType = (*ClassType)(nil)
)

func TypeString(t Type) string {
	return t.ShowIn(0)
}

func hashOf(tag string, parts ...uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tag))
	arr := make([]byte, 0, 8*len(parts))
	for _, p := range parts {
		arr = binary.LittleEndian.AppendUint64(arr, p)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Equal compares types structurally
func Equal(a, b Type) bool {
	return a.Hash() == b.Hash()
}

type UnionType struct {
	Members []Type
}

// Union builds a UnionType, flattening nested unions and dropping repeated members.
// A union of a single type is that type.
func Union(members ...Type) Type {
	var flat []Type
	seen := make(map[uint64]struct{}, len(members))
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*UnionType); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		if _, ok := seen[t.Hash()]; ok {
			return
		}
		seen[t.Hash()] = struct{}{}
		flat = append(flat, t)
	}
	for _, m := range members {
		add(m)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &UnionType{Members: flat}
}

func (t *UnionType) ShowIn(outerPrecedence uint16) string {
	shown := make([]string, len(t.Members))
	for i, m := range t.Members {
		shown[i] = m.ShowIn(unionPrecedence)
	}
	return parensIf(strings.Join(shown, " | "), outerPrecedence > unionPrecedence)
}
func (t *UnionType) String() string { return TypeString(t) }
func (t *UnionType) Hash() uint64   { return hashOf("UnionType", hashes(t.Members)...) }

type TupleType struct {
	Elements []Type
}

func Tuple(elems ...Type) *TupleType { return &TupleType{Elements: elems} }

func (t *TupleType) ShowIn(uint16) string {
	shown := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		shown[i] = e.ShowIn(0)
	}
	return "[" + strings.Join(shown, ", ") + "]"
}
func (t *TupleType) String() string { return TypeString(t) }
func (t *TupleType) Hash() uint64   { return hashOf("TupleType", hashes(t.Elements)...) }

// RecordType is a mapping with known keys.
// Keys not in Required or Optional must conform to Rest, and are rejected if Rest is nil.
type RecordType struct {
	Required Fields[Type]
	Optional Fields[Type]
	Rest     Type
}

func Record(required, optional map[string]Type, rest Type) *RecordType {
	return &RecordType{
		Required: FieldsOf(required),
		Optional: FieldsOf(optional),
		Rest:     rest,
	}
}

func (t *RecordType) ShowIn(uint16) string {
	var shown []string
	for name, ft := range t.Required.All() {
		shown = append(shown, name+": "+ft.ShowIn(0))
	}
	for name, ft := range t.Optional.All() {
		shown = append(shown, "?"+name+": "+ft.ShowIn(0))
	}
	if t.Rest != nil {
		shown = append(shown, "**"+t.Rest.ShowIn(0))
	}
	if len(shown) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(shown, ", ") + " }"
}
func (t *RecordType) String() string { return TypeString(t) }
func (t *RecordType) Hash() uint64 {
	var parts []uint64
	for name, ft := range t.Required.All() {
		parts = append(parts, hashString(name), ft.Hash())
	}
	parts = append(parts, 0)
	for name, ft := range t.Optional.All() {
		parts = append(parts, hashString(name), ft.Hash())
	}
	if t.Rest != nil {
		parts = append(parts, t.Rest.Hash())
	}
	return hashOf("RecordType", parts...)
}

// ContainerKind is the capability a GenericType requires of a value
type ContainerKind uint8

const (
	_ ContainerKind = iota
	// ArrayKind is indexable and takes the element type
	ArrayKind
	// HashKind is a mapping and takes the key and value types
	HashKind
	// EnumeratorKind is a lazy sequence and takes the element and result types
	EnumeratorKind
	// RangeKind takes the type of both bounds
	RangeKind
)

func (k ContainerKind) String() string {
	switch k {
	case ArrayKind:
		return value.Array
	case HashKind:
		return value.HashClass
	case EnumeratorKind:
		return value.Enum
	case RangeKind:
		return value.RangeClass
	default:
		return "invalid"
	}
}

// Arity is the number of type arguments k expects
func (k ContainerKind) Arity() int {
	switch k {
	case HashKind, EnumeratorKind:
		return 2
	default:
		return 1
	}
}

type GenericType struct {
	Kind ContainerKind
	Args []Type
}

func Array(elem Type) *GenericType { return &GenericType{Kind: ArrayKind, Args: []Type{elem}} }
func Hash(key, val Type) *GenericType {
	return &GenericType{Kind: HashKind, Args: []Type{key, val}}
}
func Enumerator(elem, result Type) *GenericType {
	return &GenericType{Kind: EnumeratorKind, Args: []Type{elem, result}}
}
func Range(bound Type) *GenericType { return &GenericType{Kind: RangeKind, Args: []Type{bound}} }

// Arg returns the i-th type argument, or Untyped when it was not given
func (t *GenericType) Arg(i int) Type {
	if i < len(t.Args) {
		return t.Args[i]
	}
	return Untyped
}

func (t *GenericType) ShowIn(uint16) string {
	shown := make([]string, len(t.Args))
	for i, a := range t.Args {
		shown[i] = a.ShowIn(0)
	}
	return t.Kind.String() + "[" + strings.Join(shown, ", ") + "]"
}
func (t *GenericType) String() string { return TypeString(t) }
func (t *GenericType) Hash() uint64 {
	return hashOf("GenericType", append([]uint64{uint64(t.Kind)}, hashes(t.Args)...)...)
}

// InterfaceType is satisfied by values whose class has every method in Methods with
// a compatible arity. Method bodies are never checked.
type InterfaceType struct {
	// Name is empty for anonymous interfaces
	Name    string
	Methods Fields[[]MethodType]
}

func Interface(name string, methods map[string][]MethodType) *InterfaceType {
	return &InterfaceType{Name: name, Methods: FieldsOf(methods)}
}

func (t *InterfaceType) ShowIn(uint16) string {
	if t.Name != "" {
		return t.Name
	}
	var shown []string
	for name, overloads := range t.Methods.All() {
		shown = append(shown, "def "+name+": "+ShowOverloads(overloads))
	}
	return "interface { " + strings.Join(shown, "; ") + " }"
}
func (t *InterfaceType) String() string { return TypeString(t) }
func (t *InterfaceType) Hash() uint64 {
	parts := []uint64{hashString(t.Name)}
	for name, overloads := range t.Methods.All() {
		parts = append(parts, hashString(name))
		for _, mt := range overloads {
			parts = append(parts, mt.Hash())
		}
	}
	return hashOf("InterfaceType", parts...)
}

type OptionalType struct {
	Inner Type
}

func Optional(inner Type) *OptionalType { return &OptionalType{Inner: inner} }

func (t *OptionalType) ShowIn(uint16) string { return t.Inner.ShowIn(optionalPrecedence) + "?" }
func (t *OptionalType) String() string       { return TypeString(t) }
func (t *OptionalType) Hash() uint64         { return hashOf("OptionalType", t.Inner.Hash()) }

func parensIf(s string, cond bool) string {
	if cond {
		return "(" + s + ")"
	}
	return s
}

func hashes(ts []Type) []uint64 {
	hs := make([]uint64, len(ts))
	for i, t := range ts {
		hs[i] = t.Hash()
	}
	return hs
}
