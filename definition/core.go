package definition

import (
	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/value"
)

func method(ret types.Type, params ...types.Type) []types.MethodType {
	return []types.MethodType{{Function: types.Fn(ret, params...)}}
}

// eachMethod is `() { (elem) -> void } -> self`
func eachMethod(elem ...types.Type) []types.MethodType {
	return []types.MethodType{{
		Function: types.Fn(types.Self),
		Block:    &types.Block{Required: true, Type: types.Fn(types.Void, elem...)},
	}}
}

// Core returns a Registry holding the core class hierarchy every program shares.
// Callers add their own classes on top of it.
func Core() *Registry {
	var (
		integer = types.Nominal(value.Integer)
		str     = types.Nominal(value.String)
		boolean = types.Bool
	)
	r := NewRegistry()
	r.AddClass(ClassDecl{Name: "BasicObject", Methods: map[string][]types.MethodType{
		"==":            method(boolean, types.Untyped),
		"!":             method(boolean),
		"__id__":        method(integer),
		"equal?":        method(boolean, types.Untyped),
		"instance_eval": {{Function: types.Fn(types.Untyped), Block: &types.Block{Type: types.Fn(types.Untyped, types.Self)}}},
	}})
	r.AddClass(ClassDecl{Name: "Kernel", IsModule: true, Methods: map[string][]types.MethodType{
		"class":       method(types.Class),
		"inspect":     method(str),
		"to_s":        method(str),
		"is_a?":       method(boolean, types.Nominal(value.ModuleClass)),
		"respond_to?": method(boolean, types.Union(types.Nominal(value.SymbolClass), str)),
		"nil?":        method(boolean),
		"hash":        method(integer),
		"freeze":      method(types.Self),
		"frozen?":     method(boolean),
		"dup":         method(types.Self),
	}})
	r.AddClass(ClassDecl{Name: "Object", Super: "BasicObject", Includes: []string{"Kernel"}})
	r.AddClass(ClassDecl{Name: "Comparable", IsModule: true, Methods: map[string][]types.MethodType{
		"<":        method(boolean, types.Untyped),
		">":        method(boolean, types.Untyped),
		"between?": method(boolean, types.Untyped, types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: "Enumerable", IsModule: true, Methods: map[string][]types.MethodType{
		"to_a":  method(types.Array(types.Untyped)),
		"count": method(integer),
		"first": method(types.Untyped),
		"map":   {{Function: types.Fn(types.Array(types.Untyped)), Block: &types.Block{Required: true, Type: types.Fn(types.Untyped, types.Untyped)}}},
	}})
	r.AddClass(ClassDecl{Name: "Numeric", Super: "Object", Includes: []string{"Comparable"}, Methods: map[string][]types.MethodType{
		"+":        method(types.Self, types.Nominal("Numeric")),
		"-":        method(types.Self, types.Nominal("Numeric")),
		"zero?":    method(boolean),
		"integer?": method(boolean),
	}})
	r.AddClass(ClassDecl{Name: value.Integer, Super: "Numeric", Methods: map[string][]types.MethodType{
		"to_int": method(integer),
		"to_i":   method(integer),
		"to_f":   method(types.Nominal(value.Float)),
		"times":  eachMethod(integer),
		"succ":   method(integer),
	}})
	r.AddClass(ClassDecl{Name: value.Float, Super: "Numeric", Methods: map[string][]types.MethodType{
		"to_i":  method(integer),
		"to_f":  method(types.Nominal(value.Float)),
		"round": method(integer),
	}})
	r.AddClass(ClassDecl{Name: value.String, Super: "Object", Includes: []string{"Comparable"}, Methods: map[string][]types.MethodType{
		"to_str": method(str),
		"to_sym": method(types.Nominal(value.SymbolClass)),
		"size":   method(integer),
		"+":      method(str, str),
		"*":      method(str, integer),
	}})
	r.AddClass(ClassDecl{Name: value.SymbolClass, Super: "Object", Includes: []string{"Comparable"}, Methods: map[string][]types.MethodType{
		"to_sym":  method(types.Nominal(value.SymbolClass)),
		"to_proc": method(types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: value.NilClass, Super: "Object", Methods: map[string][]types.MethodType{
		"to_a": method(types.Tuple()),
	}})
	r.AddClass(ClassDecl{Name: value.TrueClass, Super: "Object", Methods: map[string][]types.MethodType{
		"&": method(boolean, types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: value.FalseClass, Super: "Object", Methods: map[string][]types.MethodType{
		"&": method(types.Literal(false), types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: value.Array, Super: "Object", Includes: []string{"Enumerable"}, Methods: map[string][]types.MethodType{
		"each": eachMethod(types.Untyped),
		"size": method(integer),
		"[]":   method(types.Untyped, integer),
		"<<":   method(types.Self, types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: value.HashClass, Super: "Object", Includes: []string{"Enumerable"}, Methods: map[string][]types.MethodType{
		"each": eachMethod(types.Untyped, types.Untyped),
		"size": method(integer),
		"[]":   method(types.Untyped, types.Untyped),
		"keys": method(types.Array(types.Untyped)),
	}})
	r.AddClass(ClassDecl{Name: value.RangeClass, Super: "Object", Includes: []string{"Enumerable"}, Methods: map[string][]types.MethodType{
		"begin": method(types.Untyped),
		"end":   method(types.Untyped),
		"each":  eachMethod(types.Untyped),
	}})
	r.AddClass(ClassDecl{Name: value.Enum, Super: "Object", Includes: []string{"Enumerable"}, Methods: map[string][]types.MethodType{
		"each": eachMethod(types.Untyped),
		"next": method(types.Untyped),
		"size": method(types.Optional(integer)),
	}})
	r.AddClass(ClassDecl{Name: value.ModuleClass, Super: "Object", Methods: map[string][]types.MethodType{
		"name":      method(types.Optional(str)),
		"ancestors": method(types.Array(types.Nominal(value.ModuleClass))),
	}})
	r.AddClass(ClassDecl{Name: value.Class, Super: value.ModuleClass, Methods: map[string][]types.MethodType{
		"new":        {{Function: types.Function{RestPositionals: &types.Param{Type: types.Untyped}, Return: types.Untyped}}},
		"superclass": method(types.Optional(types.Class)),
	}})
	r.AddClass(ClassDecl{Name: value.Exception, Super: "Object", Methods: map[string][]types.MethodType{
		"message": method(str),
	}})
	r.AddClass(ClassDecl{Name: "StandardError", Super: value.Exception})
	r.AddClass(ClassDecl{Name: "RuntimeError", Super: "StandardError"})
	r.AddClass(ClassDecl{Name: "ArgumentError", Super: "StandardError"})
	r.AddClass(ClassDecl{Name: "TypeError", Super: "StandardError"})
	return r
}
