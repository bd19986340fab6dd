package types

import (
	"github.com/cottand/sigtest/value"
)

// NominalType is satisfied by instances of Name or of any class having Name as an ancestor
type NominalType struct {
	Name string
}

func Nominal(name string) *NominalType { return &NominalType{Name: name} }

func (t *NominalType) ShowIn(uint16) string { return t.Name }
func (t *NominalType) String() string       { return t.Name }
func (t *NominalType) Hash() uint64         { return hashOf("NominalType", hashString(t.Name)) }
func (*NominalType) isNullaryType()         {}

// SingletonType is satisfied only by the class or module object Name itself
type SingletonType struct {
	Name string
}

func Singleton(name string) *SingletonType { return &SingletonType{Name: name} }

func (t *SingletonType) ShowIn(uint16) string { return "singleton(" + t.Name + ")" }
func (t *SingletonType) String() string       { return TypeString(t) }
func (t *SingletonType) Hash() uint64         { return hashOf("SingletonType", hashString(t.Name)) }
func (*SingletonType) isNullaryType()         {}

// AliasType refers to a named type which is expanded when matching
type AliasType struct {
	Name string
}

func Alias(name string) *AliasType { return &AliasType{Name: name} }

func (t *AliasType) ShowIn(uint16) string { return t.Name }
func (t *AliasType) String() string       { return t.Name }
func (t *AliasType) Hash() uint64         { return hashOf("AliasType", hashString(t.Name)) }
func (*AliasType) isNullaryType()         {}

// VariableType is a type parameter of a generic method, and is not checked
type VariableType struct {
	Name string
}

func Var(name string) *VariableType { return &VariableType{Name: name} }

func (t *VariableType) ShowIn(uint16) string { return t.Name }
func (t *VariableType) String() string       { return t.Name }
func (t *VariableType) Hash() uint64         { return hashOf("VariableType", hashString(t.Name)) }
func (*VariableType) isNullaryType()         {}

type LiteralType struct {
	Value any
}

func Literal(v any) *LiteralType { return &LiteralType{Value: v} }

func (t *LiteralType) ShowIn(uint16) string { return value.Inspect(t.Value) }
func (t *LiteralType) String() string       { return TypeString(t) }
func (t *LiteralType) Hash() uint64 {
	return hashOf("LiteralType", hashString(value.ClassOf(t.Value)), hashString(value.Inspect(t.Value)))
}
func (*LiteralType) isNullaryType() {}

// base types without parameters

type SelfType struct{}
type UntypedType struct{}
type BottomType struct{}
type BoolType struct{}
type NilType struct{}
type VoidType struct{}

// ClassType is satisfied by any class object
type ClassType struct{}

var (
	Self    = &SelfType{}
	Untyped = &UntypedType{}
	Bottom  = &BottomType{}
	Bool    = &BoolType{}
	Nil     = &NilType{}
	Void    = &VoidType{}
	Class   = &ClassType{}
)

func (*SelfType) ShowIn(uint16) string    { return "self" }
func (*UntypedType) ShowIn(uint16) string { return "untyped" }
func (*BottomType) ShowIn(uint16) string  { return "bot" }
func (*BoolType) ShowIn(uint16) string    { return "bool" }
func (*NilType) ShowIn(uint16) string     { return "nil" }
func (*VoidType) ShowIn(uint16) string    { return "void" }
func (*ClassType) ShowIn(uint16) string   { return "Class" }

func (t *SelfType) String() string    { return TypeString(t) }
func (t *UntypedType) String() string { return TypeString(t) }
func (t *BottomType) String() string  { return TypeString(t) }
func (t *BoolType) String() string    { return TypeString(t) }
func (t *NilType) String() string     { return TypeString(t) }
func (t *VoidType) String() string    { return TypeString(t) }
func (t *ClassType) String() string   { return TypeString(t) }

func (*SelfType) Hash() uint64    { return hashOf("SelfType") }
func (*UntypedType) Hash() uint64 { return hashOf("UntypedType") }
func (*BottomType) Hash() uint64  { return hashOf("BottomType") }
func (*BoolType) Hash() uint64    { return hashOf("BoolType") }
func (*NilType) Hash() uint64     { return hashOf("NilType") }
func (*VoidType) Hash() uint64    { return hashOf("VoidType") }
func (*ClassType) Hash() uint64   { return hashOf("ClassType") }

func (*SelfType) isNullaryType()    {}
func (*UntypedType) isNullaryType() {}
func (*BottomType) isNullaryType()  {}
func (*BoolType) isNullaryType()    {}
func (*NilType) isNullaryType()     {}
func (*VoidType) isNullaryType()    {}
func (*ClassType) isNullaryType()   {}
