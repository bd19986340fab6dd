package check

import (
	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
)

// OverloadedCall validates a call against every overload of method.
//
// Overloads whose arguments (and block presence) fit the call are candidates.
// With no candidate, the result is a single UnresolvedOverloading error. Otherwise the
// first candidate, in declaration order, whose result also conforms wins; if none does,
// the errors of the first candidate are reported.
//
// A single overload is checked directly with MethodCall.
func (c *Checker) OverloadedCall(method string, overloads []types.MethodType, trace call.Trace) *sigerr.Errors {
	switch len(overloads) {
	case 0:
		c.logger.Debug("no signature to check call against", "method", method)
		return nil
	case 1:
		return c.MethodCall(method, overloads[0], trace)
	}

	var candidates []site
	for _, mt := range overloads {
		s := site{method: method, mt: mt}
		if errs := c.dispatch(s, trace); errs.HasError() {
			c.logger.Debug("overload is not a candidate", "method", method, "overload", mt.String(), "errors", errs)
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		c.logger.Debug("no overload accepts call", "method", method)
		return (*sigerr.Errors)(nil).With(sigerr.New(sigerr.NewUnresolvedOverloading{
			Method:      method,
			MethodTypes: overloads,
		}))
	}

	var first *sigerr.Errors
	for i, s := range candidates {
		errs := c.outcome(s, trace)
		if !errs.HasError() {
			return nil
		}
		if i == 0 {
			first = errs
		}
	}
	return first
}
