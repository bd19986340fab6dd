package check

import (
	"slices"

	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/value"
)

// Value reports whether v conforms to t.
// Values nested deeper than the depth ceiling do not conform.
func (c *Checker) Value(v any, t types.Type) bool {
	ok, _ := c.MatchValue(v, t)
	return ok
}

// MatchValue is like Value, but reports a sigerr.NewRecursionLimit when matching
// gave up at the depth ceiling
func (c *Checker) MatchValue(v any, t types.Type) (bool, error) {
	ok, overflow := c.matchAt("", v, t)
	if overflow != nil {
		return false, overflow
	}
	return ok, nil
}

// matchAt matches v, attributing a depth overflow to method
func (c *Checker) matchAt(method string, v any, t types.Type) (bool, sigerr.CheckError) {
	m := &matcher{Checker: c}
	ok := m.match(v, t, 0)
	if m.overflow != nil {
		m.overflow.Method = method
		return false, sigerr.New(*m.overflow)
	}
	return ok, nil
}

// matcher carries the state of matching one value
type matcher struct {
	*Checker
	overflow *sigerr.NewRecursionLimit
}

func (m *matcher) match(v any, t types.Type, depth int) bool {
	if m.overflow != nil {
		return false
	}
	if depth > m.cfg.MaxDepth {
		m.overflow = &sigerr.NewRecursionLimit{Type: t, Depth: depth}
		m.logger.Warn("recursion limit reached while matching", "type", slogType(t), "depth", depth)
		return false
	}
	if value.IsDouble(v) && m.cfg.Doubles != DoubleStrict {
		if m.cfg.Doubles == DoubleLax {
			m.logger.Warn("accepting double without checking it", "double", value.Inspect(v), "type", slogType(t))
		}
		return true
	}
	next := depth + 1

	switch t := t.(type) {
	case *types.UntypedType, *types.VoidType, *types.VariableType:
		return true
	case *types.BottomType:
		return false
	case *types.NilType:
		return v == nil
	case *types.BoolType:
		_, ok := v.(bool)
		return ok
	case *types.LiteralType:
		return value.Equal(v, t.Value)
	case *types.NominalType:
		return m.isA(v, t.Name)
	case *types.SingletonType:
		mod, ok := v.(value.Module)
		return ok && mod.Name == t.Name
	case *types.ClassType:
		mod, ok := v.(value.Module)
		return ok && !mod.IsModule
	case *types.SelfType:
		return m.isSelf(v)
	case *types.OptionalType:
		return v == nil || m.match(v, t.Inner, next)
	case *types.UnionType:
		return slices.ContainsFunc(t.Members, func(member types.Type) bool {
			return m.match(v, member, next)
		})
	case *types.TupleType:
		elems, ok := value.AsArray(v)
		if !ok || len(elems) != len(t.Elements) {
			return false
		}
		for i, elem := range elems {
			if !m.match(elem, t.Elements[i], next) {
				return false
			}
		}
		return true
	case *types.RecordType:
		return m.matchRecord(v, t, next)
	case *types.GenericType:
		return m.matchGeneric(v, t, next)
	case *types.InterfaceType:
		return m.matchInterface(v, t)
	case *types.AliasType:
		return m.matchAlias(v, t, next)
	default:
		m.logger.Warn("unknown type descriptor, not matching", "type", slogType(t))
		return false
	}
}

// ownerOf is the name the Provider knows v's methods and ancestry by
func ownerOf(v any) string {
	if mod, ok := v.(value.Module); ok {
		return definition.SingletonName(mod.Name)
	}
	return value.ClassOf(v)
}

func (m *matcher) isA(v any, name string) bool {
	return slices.Contains(m.cfg.Defs.AncestorsOf(ownerOf(v)), name)
}

func (m *matcher) isSelf(v any) bool {
	self := m.cfg.Self
	if self.Class == "" {
		return true
	}
	if !self.Singleton {
		return m.isA(v, self.Class)
	}
	mod, ok := v.(value.Module)
	return ok && m.isA(mod, definition.SingletonName(self.Class))
}

// fieldOf looks up a record field, addressed either by a Symbol or a String key
func fieldOf(mp value.Mapping, name string) (any, bool) {
	if v, ok := mp.Get(value.Symbol(name)); ok {
		return v, true
	}
	return mp.Get(name)
}

func fieldName(key any) (string, bool) {
	switch key := key.(type) {
	case value.Symbol:
		return string(key), true
	case string:
		return key, true
	default:
		return "", false
	}
}

func (m *matcher) matchRecord(v any, t *types.RecordType, depth int) bool {
	mp, ok := value.AsMapping(v)
	if !ok {
		return false
	}
	for name, ft := range t.Required.All() {
		fv, ok := fieldOf(mp, name)
		if !ok || !m.match(fv, ft, depth) {
			return false
		}
	}
	for name, ft := range t.Optional.All() {
		if fv, ok := fieldOf(mp, name); ok && !m.match(fv, ft, depth) {
			return false
		}
	}
	for _, key := range mp.Keys() {
		if name, ok := fieldName(key); ok && (t.Required.Has(name) || t.Optional.Has(name)) {
			continue
		}
		if t.Rest == nil {
			return false
		}
		fv, _ := mp.Get(key)
		if !m.match(fv, t.Rest, depth) {
			return false
		}
	}
	return true
}

func (m *matcher) matchGeneric(v any, t *types.GenericType, depth int) bool {
	policy := m.cfg.Sampling
	switch t.Kind {
	case types.ArrayKind:
		elems, ok := value.AsArray(v)
		return ok && policy.All(len(elems), func(i int) bool {
			return m.match(elems[i], t.Arg(0), depth)
		})
	case types.HashKind:
		mp, ok := value.AsMapping(v)
		if !ok {
			return false
		}
		keys := mp.Keys()
		return policy.All(len(keys), func(i int) bool {
			val, _ := mp.Get(keys[i])
			return m.match(keys[i], t.Arg(0), depth) && m.match(val, t.Arg(1), depth)
		})
	case types.RangeKind:
		r, ok := v.(value.Range)
		// nil bounds are endless or beginless ranges
		return ok &&
			(r.Begin == nil || m.match(r.Begin, t.Arg(0), depth)) &&
			(r.End == nil || m.match(r.End, t.Arg(0), depth))
	case types.EnumeratorKind:
		return m.matchEnumerator(v, t, depth)
	default:
		return false
	}
}

// matchEnumerator consumes no more of the sequence than the sampling policy allows.
// The result of the enumeration is only checked when it was run to the end.
func (m *matcher) matchEnumerator(v any, t *types.GenericType, depth int) bool {
	e, ok := value.AsEnumerator(v)
	if !ok {
		return false
	}
	head, exhausted := m.cfg.Sampling.Head(e.Each, e.Infinite)
	for _, elem := range head {
		if !m.match(elem, t.Arg(0), depth) {
			return false
		}
	}
	switch {
	case e.Infinite:
		return neverReturns(t.Arg(1))
	case exhausted:
		return m.match(e.Result, t.Arg(1), depth)
	default:
		return true
	}
}

// neverReturns reports whether t is a valid result for an enumeration which never ends
func neverReturns(t types.Type) bool {
	switch t.(type) {
	case *types.BottomType, *types.UntypedType, *types.VoidType, *types.VariableType:
		return true
	default:
		return false
	}
}

// matchInterface only checks that methods exist with a compatible arity, and never
// looks into what they return
func (m *matcher) matchInterface(v any, t *types.InterfaceType) bool {
	members := m.cfg.Defs.MembersOf(ownerOf(v))
	for name, wanted := range t.Methods.All() {
		have, ok := members.Get(name)
		if !ok {
			m.logger.Debug("interface method missing", "method", name, "interface", slogType(t), "class", ownerOf(v))
			return false
		}
		if !anyCompatible(have, wanted) {
			m.logger.Debug("interface method has incompatible arity", "method", name, "interface", slogType(t), "class", ownerOf(v))
			return false
		}
	}
	return true
}

func anyCompatible(have, wanted []types.MethodType) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, h := range have {
			if arityCompatible(h.Function, w.Function) {
				return true
			}
		}
	}
	return false
}

// arityCompatible reports whether have accepts the smallest call wanted allows:
// its required positionals and its required keywords
func arityCompatible(have, wanted types.Function) bool {
	wantedMin, _ := wanted.PositionalRange()
	haveMin, haveMax := have.PositionalRange()
	if wantedMin < haveMin || (haveMax >= 0 && wantedMin > haveMax) {
		return false
	}
	for name := range have.RequiredKeywords.All() {
		if !wanted.RequiredKeywords.Has(name) {
			return false
		}
	}
	for name := range wanted.RequiredKeywords.All() {
		if !have.RequiredKeywords.Has(name) && !have.OptionalKeywords.Has(name) && have.RestKeywords == nil {
			return false
		}
	}
	return true
}

// matchAlias expands a named type. Names the Provider does not know as types are
// taken to be class names.
func (m *matcher) matchAlias(v any, t *types.AliasType, depth int) bool {
	if aliases, ok := m.cfg.Defs.(definition.AliasProvider); ok {
		if expanded, ok := aliases.Alias(t.Name); ok {
			return m.match(v, expanded, depth)
		}
	}
	return m.isA(v, t.Name)
}
