package check_test

import (
	"errors"
	"testing"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/sample"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trace(inv call.Invocation, blocks ...call.Invocation) call.Trace {
	return call.Trace{MethodName: "m", Call: inv, Blocks: blocks, BlockGiven: len(blocks) > 0}
}

func checkOne(mt types.MethodType, tr call.Trace) []sigerr.ErrCode {
	c := check.New(check.Config{Self: check.Receiver{Class: "Foo"}, Sampling: sample.Exhaustive})
	return c.Call(tr, []types.MethodType{mt}).Codes()
}

func TestPositionalArguments(t *testing.T) {
	mt := types.MethodType{Function: types.Fn(str, integer)}

	assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(1), "1"))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, trace(call.Return(call.Args("1"), "1"))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, trace(call.Return(call.Args(1, 2), "1"))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, trace(call.Return(call.Args(), "1"))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ReturnType}, checkOne(mt, trace(call.Return(call.Args(1), 1))))
	assert.Equal(t,
		[]sigerr.ErrCode{sigerr.ArgumentType, sigerr.ReturnType},
		checkOne(mt, trace(call.Return(call.Args("1"), 1))),
	)
}

func TestErrorsNameTheMethod(t *testing.T) {
	mt := types.MethodType{Function: types.Fn(str, integer)}
	c := check.New(check.Config{Self: check.Receiver{Class: "Foo"}})
	errs := c.Call(trace(call.Return(call.Args("1"), "1")), []types.MethodType{mt})
	require.Equal(t, 1, errs.Len())

	var argErr sigerr.NewArgumentType
	require.True(t, errors.As(errs.Errors()[0], &argErr))
	assert.Equal(t, "Foo#m", argErr.Method)
	assert.Equal(t, "#0", argErr.Position)
	assert.Equal(t, "1", argErr.Value)
	assert.Contains(t, argErr.Error(), "[Foo#m] ArgumentTypeError")
}

func TestNeverReturns(t *testing.T) {
	mt := types.MethodType{Function: types.Fn(types.Bottom)}

	assert.Equal(t, []sigerr.ErrCode{sigerr.ReturnType}, checkOne(mt, trace(call.Return(call.Args(), "5"))))
	assert.Empty(t, checkOne(mt, trace(call.Raise(call.Args(), errors.New("boom")))))
	assert.Empty(t, checkOne(mt, trace(call.Break(call.Args()))))
}

func TestRaisingSkipsReturnType(t *testing.T) {
	mt := types.MethodType{Function: types.Fn(str, integer)}
	assert.Empty(t, checkOne(mt, trace(call.Raise(call.Args(1), errors.New("boom")))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, trace(call.Raise(call.Args("1"), errors.New("boom")))))
}

func TestKeywords(t *testing.T) {
	mt := types.MethodType{Function: types.Function{
		RequiredKeywords: types.FieldsOf(map[string]types.Type{"foo": integer}),
		OptionalKeywords: types.FieldsOf(map[string]types.Type{"bar": str}),
		RestKeywords:     &types.Param{Type: symbol},
		Return:           str,
	}}
	kw := func(kw map[string]any) call.Trace {
		return trace(call.Return(call.Args().WithKeywords(kw), "1"))
	}

	assert.Empty(t, checkOne(mt, kw(map[string]any{"foo": 31, "baz": value.Symbol("baz")})))
	assert.Empty(t, checkOne(mt, kw(map[string]any{"foo": 31, "bar": "bar"})))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, kw(map[string]any{"foo": "foo"})))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, kw(map[string]any{"bar": "bar"})))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, kw(map[string]any{"foo": 1, "baz": 2})))

	t.Run("undeclared keywords without a rest", func(t *testing.T) {
		closed := mt
		closed.RestKeywords = nil
		assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(closed, kw(map[string]any{"foo": 1, "baz": value.Symbol("baz")})))
		assert.Equal(t,
			[]sigerr.ErrCode{sigerr.Arity, sigerr.Arity},
			checkOne(closed, kw(map[string]any{"foo": 1, "a": 1, "b": 2})),
		)
	})
}

func TestOptionalParameters(t *testing.T) {
	// (?String, ?encoding: String) -> untyped
	mt := types.MethodType{Function: types.Function{
		OptionalPositionals: []types.Param{types.P(str)},
		OptionalKeywords:    types.FieldsOf(map[string]types.Type{"encoding": str}),
		Return:              types.Untyped,
	}}
	assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(), nil))))
	assert.Empty(t, checkOne(mt, trace(call.Return(call.Args("x").WithKeywords(map[string]any{"encoding": "utf-8"}), nil))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, trace(call.Return(call.Args(1), nil))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, trace(call.Return(call.Args("x", "y"), nil))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, trace(call.Return(call.Args().WithKeywords(map[string]any{"encoding": 1}), nil))))

	// (parent: untyped, type: untyped) -> void
	required := types.MethodType{Function: types.Function{
		RequiredKeywords: types.FieldsOf(map[string]types.Type{"parent": types.Untyped, "type": types.Untyped}),
	}}
	assert.Empty(t, checkOne(required, trace(call.Return(call.Args().WithKeywords(map[string]any{"parent": nil, "type": nil}), 1))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(required, trace(call.Return(call.Args().WithKeywords(map[string]any{"parent": nil}), 1))))
}

func TestRestParameters(t *testing.T) {
	// (Integer?, *String) -> void
	mt := types.MethodType{Function: types.Function{
		RequiredPositionals: []types.Param{types.P(types.Optional(integer))},
		RestPositionals:     &types.Param{Type: str},
	}}
	assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(nil), nil))))
	assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(1, "a", "b"), nil))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType}, checkOne(mt, trace(call.Return(call.Args(1, 2), nil))))
	assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, trace(call.Return(call.Args(), nil))))

	t.Run("trailing", func(t *testing.T) {
		// (Integer, *String, Symbol) -> void
		mt := types.MethodType{Function: types.Function{
			RequiredPositionals: []types.Param{types.P(integer)},
			RestPositionals:     &types.Param{Type: str},
			TrailingPositionals: []types.Param{types.P(symbol)},
		}}
		assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(1, value.Symbol("a")), nil))))
		assert.Empty(t, checkOne(mt, trace(call.Return(call.Args(1, "x", "y", value.Symbol("a")), nil))))
		assert.Equal(t, []sigerr.ErrCode{sigerr.Arity}, checkOne(mt, trace(call.Return(call.Args(1), nil))))

		c := check.New(check.Config{})
		errs := c.MethodCall("Foo#m", mt, trace(call.Return(call.Args(1, "x"), nil)))
		require.Equal(t, 1, errs.Len())
		var argErr sigerr.NewArgumentType
		require.ErrorAs(t, errs.Errors()[0], &argErr)
		assert.Equal(t, "#1", argErr.Position)
	})
}

func TestBlocks(t *testing.T) {
	// (Integer) { (String) -> Integer } -> String
	mt := types.MethodType{
		Function: types.Fn(str, integer),
		Block:    &types.Block{Required: true, Type: types.Fn(integer, str)},
	}

	t.Run("well typed", func(t *testing.T) {
		tr := trace(call.Return(call.Args(1), "1"), call.Return(call.Args("a"), 1), call.Return(call.Args("b"), 2))
		assert.Empty(t, checkOne(mt, tr))
	})

	t.Run("block arguments and result", func(t *testing.T) {
		c := check.New(check.Config{})
		tr := trace(call.Return(call.Args(1), "1"), call.Return(call.Args(1), 1), call.Return(call.Args("a"), "a"))
		errs := c.MethodCall("Foo#m", mt, tr)
		assert.Equal(t, []sigerr.ErrCode{sigerr.BlockArgumentType, sigerr.BlockReturnType}, errs.Codes())

		var argErr sigerr.NewArgumentType
		require.ErrorAs(t, errs.Errors()[0], &argErr)
		assert.True(t, argErr.InBlock)
	})

	t.Run("block arity", func(t *testing.T) {
		tr := trace(call.Return(call.Args(1), "1"), call.Return(call.Args("a", "b"), 1))
		assert.Equal(t, []sigerr.ErrCode{sigerr.BlockArity}, checkOne(mt, tr))
	})

	t.Run("breaking out of the block", func(t *testing.T) {
		tr := trace(call.Break(call.Args(1)), call.Break(call.Args("a")))
		assert.Empty(t, checkOne(mt, tr))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, []sigerr.ErrCode{sigerr.MissingBlock}, checkOne(mt, trace(call.Return(call.Args(1), "1"))))

		optional := mt
		optional.Block = &types.Block{Type: mt.Block.Type}
		assert.Empty(t, checkOne(optional, trace(call.Return(call.Args(1), "1"))))
	})

	t.Run("given but never called", func(t *testing.T) {
		tr := trace(call.Return(call.Args(1), "1"))
		tr.BlockGiven = true
		assert.Empty(t, checkOne(mt, tr))
	})

	t.Run("unexpected", func(t *testing.T) {
		plain := types.MethodType{Function: types.Fn(str, integer)}
		tr := trace(call.Return(call.Args(1), "1"), call.Return(call.Args(), nil))
		assert.Equal(t, []sigerr.ErrCode{sigerr.UnexpectedBlock}, checkOne(plain, tr))

		c := check.New(check.Config{})
		assert.Equal(t,
			[]sigerr.ErrCode{sigerr.UnexpectedBlock},
			c.Block("Foo#m", plain, call.Return(call.Args(), nil)).Codes(),
		)
	})

	t.Run("each invocation on its own", func(t *testing.T) {
		c := check.New(check.Config{})
		assert.Empty(t, c.Block("Foo#m", mt, call.Return(call.Args("a"), 1)).Codes())
		assert.Equal(t, []sigerr.ErrCode{sigerr.BlockReturnType}, c.Block("Foo#m", mt, call.Return(call.Args("a"), "1")).Codes())
	})
}

func TestArgsAndReturnSeparately(t *testing.T) {
	c := check.New(check.Config{})
	mt := types.MethodType{Function: types.Fn(str, integer)}

	assert.False(t, c.Args("Foo#m", mt, call.Args(1)).HasError())
	assert.True(t, c.Args("Foo#m", mt, call.Args(nil)).HasError())
	assert.False(t, c.Return("Foo#m", mt, call.Return(call.Args(1), "s")).HasError())
	assert.True(t, c.Return("Foo#m", mt, call.Return(call.Args(1), nil)).HasError())
}

func TestRecursionLimitInCall(t *testing.T) {
	c := check.New(check.Config{MaxDepth: 5, Sampling: sample.Exhaustive})
	var v any = 1
	var typ types.Type = integer
	for range 10 {
		v = []any{v}
		typ = types.Array(typ)
	}
	mt := types.MethodType{Function: types.Fn(types.Untyped, typ)}
	errs := c.MethodCall("Foo#m", mt, trace(call.Return(call.Args(v), nil)))
	assert.Equal(t, []sigerr.ErrCode{sigerr.RecursionLimit}, errs.Codes())
	assert.Contains(t, errs.Errors()[0].Error(), "Foo#m")
}
