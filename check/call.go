package check

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/util"
	"github.com/xtgo/set"
)

// site is where diagnostics get attributed to
type site struct {
	method  string
	mt      types.MethodType
	inBlock bool
}

func (s site) block() site {
	s.inBlock = true
	return s
}

// Args validates the arguments of a call of method against mt
func (c *Checker) Args(method string, mt types.MethodType, args call.Arguments) *sigerr.Errors {
	return c.args(site{method: method, mt: mt}, mt.Function, args)
}

// Return validates what a call of method produced against mt.
// Only a returned value can be wrong: raising or breaking out is consistent with any type.
func (c *Checker) Return(method string, mt types.MethodType, inv call.Invocation) *sigerr.Errors {
	return c.ret(site{method: method, mt: mt}, mt.Function, inv)
}

// Block validates one invocation of the block given to a call of method.
// It is an error for mt not to declare a block.
func (c *Checker) Block(method string, mt types.MethodType, inv call.Invocation) *sigerr.Errors {
	s := site{method: method, mt: mt}
	if mt.Block == nil {
		return (*sigerr.Errors)(nil).With(sigerr.New(sigerr.NewUnexpectedBlock{Method: method, MethodType: mt}))
	}
	return c.args(s.block(), mt.Block.Type, inv.Args).
		Merge(c.ret(s.block(), mt.Block.Type, inv))
}

// MethodCall validates a whole call against a single method type
func (c *Checker) MethodCall(method string, mt types.MethodType, trace call.Trace) *sigerr.Errors {
	s := site{method: method, mt: mt}
	return c.dispatch(s, trace).Merge(c.outcome(s, trace))
}

// dispatch checks the parts of a call that decide which overload it was meant for:
// its arguments and whether a block was given
func (c *Checker) dispatch(s site, trace call.Trace) *sigerr.Errors {
	errs := c.args(s, s.mt.Function, trace.Call.Args)
	blockGiven := trace.BlockGiven || len(trace.Blocks) > 0
	switch {
	case s.mt.Block == nil && blockGiven:
		errs = errs.With(sigerr.New(sigerr.NewUnexpectedBlock{Method: s.method, MethodType: s.mt}))
	case s.mt.Block != nil && s.mt.Block.Required && !blockGiven:
		errs = errs.With(sigerr.New(sigerr.NewMissingBlock{Method: s.method, MethodType: s.mt}))
	}
	return errs
}

// outcome checks what the call and its block invocations produced
func (c *Checker) outcome(s site, trace call.Trace) *sigerr.Errors {
	errs := c.ret(s, s.mt.Function, trace.Call)
	if s.mt.Block == nil {
		return errs
	}
	for _, inv := range trace.Blocks {
		errs = errs.
			Merge(c.args(s.block(), s.mt.Block.Type, inv.Args)).
			Merge(c.ret(s.block(), s.mt.Block.Type, inv))
	}
	return errs
}

func (c *Checker) arity(s site, detail string) sigerr.CheckError {
	return sigerr.New(sigerr.NewArity{Method: s.method, MethodType: s.mt, InBlock: s.inBlock, Detail: detail})
}

// param matches one argument, appending to errs when it does not conform
func (c *Checker) param(s site, errs *sigerr.Errors, v any, p types.Param, position string) *sigerr.Errors {
	ok, overflow := c.matchAt(s.method, v, p.Type)
	switch {
	case overflow != nil:
		return errs.With(overflow)
	case !ok:
		return errs.With(sigerr.New(sigerr.NewArgumentType{
			Method:     s.method,
			MethodType: s.mt,
			InBlock:    s.inBlock,
			Position:   position,
			Param:      p,
			Value:      v,
		}))
	default:
		return errs
	}
}

func positionOf(i int) string {
	return "#" + strconv.Itoa(i)
}

func (c *Checker) args(s site, fn types.Function, args call.Arguments) *sigerr.Errors {
	errs := c.positionals(s, fn, args.Positional)
	return errs.Merge(c.keywords(s, fn, args.Keywords))
}

// positionals assigns arguments to required parameters first, then trailing ones,
// then optional ones, and the remainder to the rest parameter
func (c *Checker) positionals(s site, fn types.Function, given []any) *sigerr.Errors {
	var errs *sigerr.Errors
	n := len(given)
	min, max := fn.PositionalRange()
	if n < min || (max >= 0 && n > max) {
		errs = errs.With(c.arity(s, fmt.Sprintf("%d positional arguments given", n)))
	}

	required := fn.RequiredPositionals
	for i := 0; i < len(required) && i < n; i++ {
		errs = c.param(s, errs, given[i], required[i], positionOf(i))
	}
	if n < min {
		return errs
	}
	trailingFrom := n - len(fn.TrailingPositionals)
	for j, p := range fn.TrailingPositionals {
		errs = c.param(s, errs, given[trailingFrom+j], p, positionOf(trailingFrom+j))
	}
	for i := len(required); i < trailingFrom; i++ {
		j := i - len(required)
		switch {
		case j < len(fn.OptionalPositionals):
			errs = c.param(s, errs, given[i], fn.OptionalPositionals[j], positionOf(i))
		case fn.RestPositionals != nil:
			errs = c.param(s, errs, given[i], *fn.RestPositionals, positionOf(i))
		}
	}
	return errs
}

func (c *Checker) keywords(s site, fn types.Function, given map[string]any) *sigerr.Errors {
	var errs *sigerr.Errors
	givenNames := sortedKeys(given)
	declared := slices.Sorted(util.ConcatIter(
		slices.Values(fn.RequiredKeywords.Names()),
		slices.Values(fn.OptionalKeywords.Names()),
	))
	declared = declared[:set.Uniq(sort.StringSlice(declared))]

	for _, name := range difference(fn.RequiredKeywords.Names(), givenNames) {
		errs = errs.With(c.arity(s, fmt.Sprintf("missing required keyword `%s`", name)))
	}
	for _, name := range givenNames {
		t, ok := fn.RequiredKeywords.Get(name)
		if !ok {
			t, ok = fn.OptionalKeywords.Get(name)
		}
		if ok {
			errs = c.param(s, errs, given[name], types.Param{Type: t, Name: name}, name)
		}
	}
	for _, name := range difference(givenNames, declared) {
		if fn.RestKeywords == nil {
			errs = errs.With(c.arity(s, fmt.Sprintf("unexpected keyword `%s`", name)))
			continue
		}
		errs = c.param(s, errs, given[name], *fn.RestKeywords, name)
	}
	return errs
}

func (c *Checker) ret(s site, fn types.Function, inv call.Invocation) *sigerr.Errors {
	v, returned := inv.ReturnValue()
	if !returned || fn.Return == nil {
		return nil
	}
	returnErr := sigerr.New(sigerr.NewReturnType{
		Method:     s.method,
		MethodType: s.mt,
		InBlock:    s.inBlock,
		Type:       fn.Return,
		Value:      v,
	})
	// a method declared never to return did
	if _, ok := fn.Return.(*types.BottomType); ok {
		return (*sigerr.Errors)(nil).With(returnErr)
	}
	ok, overflow := c.matchAt(s.method, v, fn.Return)
	switch {
	case overflow != nil:
		return (*sigerr.Errors)(nil).With(overflow)
	case !ok:
		return (*sigerr.Errors)(nil).With(returnErr)
	default:
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// difference returns the names in a which are not in b. Both must be sorted and unique.
func difference(a, b []string) []string {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)
	n := set.Diff(data, len(a))
	return data[:n]
}
