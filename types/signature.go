package types

import (
	"strings"
)

// Param is a positional or rest parameter. Name is optional and only used in diagnostics.
type Param struct {
	Type Type
	Name string
}

func P(t Type) Param { return Param{Type: t} }

func (p Param) String() string {
	if p.Name == "" {
		return p.Type.ShowIn(0)
	}
	return p.Type.ShowIn(0) + " " + p.Name
}

// Function is the shape of parameters and result of a method or a block
type Function struct {
	RequiredPositionals []Param
	OptionalPositionals []Param
	RestPositionals     *Param
	// TrailingPositionals come after the rest parameter
	TrailingPositionals []Param
	RequiredKeywords    Fields[Type]
	OptionalKeywords    Fields[Type]
	RestKeywords        *Param
	Return              Type
}

// HasKeywords reports whether f accepts any keyword argument
func (f Function) HasKeywords() bool {
	return f.RequiredKeywords.Len() > 0 || f.OptionalKeywords.Len() > 0 || f.RestKeywords != nil
}

// PositionalRange is the number of positional arguments f accepts.
// max is -1 when f has a rest parameter.
func (f Function) PositionalRange() (min, max int) {
	min = len(f.RequiredPositionals) + len(f.TrailingPositionals)
	if f.RestPositionals != nil {
		return min, -1
	}
	return min, min + len(f.OptionalPositionals)
}

func (f Function) ShowIn(uint16) string {
	return f.showParams() + " -> " + f.returnType().ShowIn(0)
}

func (f Function) returnType() Type {
	if f.Return == nil {
		return Void
	}
	return f.Return
}

func (f Function) showParams() string {
	var params []string
	for _, p := range f.RequiredPositionals {
		params = append(params, p.String())
	}
	for _, p := range f.OptionalPositionals {
		params = append(params, "?"+p.String())
	}
	if f.RestPositionals != nil {
		params = append(params, "*"+f.RestPositionals.String())
	}
	for _, p := range f.TrailingPositionals {
		params = append(params, p.String())
	}
	for name, t := range f.RequiredKeywords.All() {
		params = append(params, name+": "+t.ShowIn(0))
	}
	for name, t := range f.OptionalKeywords.All() {
		params = append(params, "?"+name+": "+t.ShowIn(0))
	}
	if f.RestKeywords != nil {
		params = append(params, "**"+f.RestKeywords.String())
	}
	return "(" + strings.Join(params, ", ") + ")"
}

func (f Function) String() string { return f.ShowIn(0) }

func (f Function) Hash() uint64 {
	var parts []uint64
	for _, ps := range [][]Param{f.RequiredPositionals, f.OptionalPositionals, f.TrailingPositionals} {
		for _, p := range ps {
			parts = append(parts, p.Type.Hash())
		}
		parts = append(parts, 0)
	}
	if f.RestPositionals != nil {
		parts = append(parts, f.RestPositionals.Type.Hash())
	}
	for name, t := range f.RequiredKeywords.All() {
		parts = append(parts, hashString(name), t.Hash())
	}
	parts = append(parts, 0)
	for name, t := range f.OptionalKeywords.All() {
		parts = append(parts, hashString(name), t.Hash())
	}
	if f.RestKeywords != nil {
		parts = append(parts, f.RestKeywords.Type.Hash())
	}
	if f.Return != nil {
		parts = append(parts, f.Return.Hash())
	}
	return hashOf("Function", parts...)
}

// Block is the signature of the block a method accepts
type Block struct {
	Required bool
	Type     Function
}

func (b *Block) String() string {
	s := "{ " + b.Type.String() + " }"
	if !b.Required {
		return "?" + s
	}
	return s
}

// MethodType is one overload of a method
type MethodType struct {
	TypeParams []string
	Function
	Block *Block
}

func (mt MethodType) String() string {
	sb := strings.Builder{}
	if len(mt.TypeParams) > 0 {
		sb.WriteString("[" + strings.Join(mt.TypeParams, ", ") + "] ")
	}
	sb.WriteString(mt.showParams())
	if mt.Block != nil {
		sb.WriteString(" " + mt.Block.String())
	}
	sb.WriteString(" -> " + mt.returnType().ShowIn(0))
	return sb.String()
}

func (mt MethodType) Hash() uint64 {
	parts := []uint64{mt.Function.Hash()}
	for _, tp := range mt.TypeParams {
		parts = append(parts, hashString(tp))
	}
	if mt.Block != nil {
		required := uint64(0)
		if mt.Block.Required {
			required = 1
		}
		parts = append(parts, required, mt.Block.Type.Hash())
	}
	return hashOf("MethodType", parts...)
}

// ShowOverloads prints overloads the way they are declared, separated by '|'
func ShowOverloads(overloads []MethodType) string {
	shown := make([]string, len(overloads))
	for i, mt := range overloads {
		shown[i] = mt.String()
	}
	return strings.Join(shown, " | ")
}

// Fn is a Function taking only required positionals
func Fn(ret Type, required ...Type) Function {
	params := make([]Param, len(required))
	for i, t := range required {
		params[i] = P(t)
	}
	return Function{RequiredPositionals: params, Return: ret}
}
