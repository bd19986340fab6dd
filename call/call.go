// Package call describes an already-intercepted method call: what it was given,
// how it finished, and every invocation of the block it was passed
package call

import (
	"maps"
	"slices"
)

// Outcome is how an invocation finished: Returned, Raised or Broke
type Outcome interface {
	isOutcome()
}

var (
	_ Outcome = Returned{}
	_ Outcome = Raised{}
	_ Outcome = Broke{}
)

// Returned means the invocation produced Value normally
type Returned struct {
	Value any
}

// Raised means the invocation ended with an exception, so no value was produced
type Raised struct {
	Err error
}

// Broke means the invocation exited non-locally (a break out of a block), so no value was produced
type Broke struct{}

func (Returned) isOutcome() {}
func (Raised) isOutcome()   {}
func (Broke) isOutcome()    {}

type Arguments struct {
	Positional []any
	Keywords   map[string]any
}

// Args builds Arguments holding only positionals
func Args(positional ...any) Arguments {
	return Arguments{Positional: positional}
}

// WithKeywords returns a copy of a with the given keyword arguments
func (a Arguments) WithKeywords(kw map[string]any) Arguments {
	a.Keywords = kw
	return a
}

// KeywordNames returns the supplied keyword names in sorted order
func (a Arguments) KeywordNames() []string {
	return slices.Sorted(maps.Keys(a.Keywords))
}

// Invocation is one call of a method or of a block
type Invocation struct {
	Args    Arguments
	Outcome Outcome
}

func Return(args Arguments, v any) Invocation {
	return Invocation{Args: args, Outcome: Returned{Value: v}}
}

func Raise(args Arguments, err error) Invocation {
	return Invocation{Args: args, Outcome: Raised{Err: err}}
}

func Break(args Arguments) Invocation {
	return Invocation{Args: args, Outcome: Broke{}}
}

// ReturnValue returns the produced value, if the invocation returned one
func (i Invocation) ReturnValue() (any, bool) {
	r, ok := i.Outcome.(Returned)
	return r.Value, ok
}

// Trace is the record of one intercepted method call
type Trace struct {
	MethodName string
	Call       Invocation
	// Blocks holds each invocation of the block passed to the call, in order
	Blocks     []Invocation
	BlockGiven bool
}
