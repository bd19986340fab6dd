package check_test

import (
	"testing"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverloadResolution(t *testing.T) {
	// () -> String | (Integer) -> String
	overloads := []types.MethodType{
		{Function: types.Fn(str)},
		{Function: types.Fn(str, integer)},
	}
	c := check.New(check.Config{Self: check.Receiver{Class: "Foo"}})

	t.Run("first overload", func(t *testing.T) {
		assert.Empty(t, c.Call(trace(call.Return(call.Args(), "foo")), overloads).Codes())
	})

	t.Run("second overload", func(t *testing.T) {
		assert.Empty(t, c.Call(trace(call.Return(call.Args(3), "30")), overloads).Codes())
	})

	t.Run("single candidate with a wrong result", func(t *testing.T) {
		errs := c.Call(trace(call.Return(call.Args(3), 30)), overloads)
		require.Equal(t, []sigerr.ErrCode{sigerr.ReturnType}, errs.Codes())

		var retErr sigerr.NewReturnType
		require.ErrorAs(t, errs.Errors()[0], &retErr)
		assert.Equal(t, overloads[1].Hash(), retErr.MethodType.Hash())
	})

	t.Run("no candidate", func(t *testing.T) {
		errs := c.Call(trace(call.Return(call.Args(3, 4), "foo")), overloads)
		require.Equal(t, []sigerr.ErrCode{sigerr.UnresolvedOverloading}, errs.Codes())
		assert.Contains(t, errs.Errors()[0].Error(), "[Foo#m]")
		assert.Contains(t, errs.Errors()[0].Error(), "() -> String | (Integer) -> String")
	})
}

func TestOverloadAmbiguousCandidates(t *testing.T) {
	// (Integer) -> String | (Integer) -> Integer
	overloads := []types.MethodType{
		{Function: types.Fn(str, integer)},
		{Function: types.Fn(integer, integer)},
	}
	c := check.New(check.Config{})

	assert.Empty(t, c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(1), "1"))).Codes())
	assert.Empty(t, c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(1), 1))).Codes())

	errs := c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(1), nil)))
	require.Equal(t, []sigerr.ErrCode{sigerr.ReturnType}, errs.Codes())
	var retErr sigerr.NewReturnType
	require.ErrorAs(t, errs.Errors()[0], &retErr)
	assert.Equal(t, overloads[0].Hash(), retErr.MethodType.Hash(), "the first candidate is reported")
}

func TestOverloadsByBlock(t *testing.T) {
	// () -> String | () { () -> void } -> Integer
	overloads := []types.MethodType{
		{Function: types.Fn(str)},
		{Function: types.Fn(integer), Block: &types.Block{Required: true, Type: types.Fn(types.Void)}},
	}
	c := check.New(check.Config{})

	assert.Empty(t, c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(), "s"))).Codes())
	assert.Empty(t, c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(), 1), call.Return(call.Args(), nil))).Codes())
	assert.Equal(t,
		[]sigerr.ErrCode{sigerr.ReturnType},
		c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args(), "s"), call.Return(call.Args(), nil))).Codes(),
	)
}

func TestSingleOverloadReportsEverything(t *testing.T) {
	c := check.New(check.Config{})
	overloads := []types.MethodType{{Function: types.Fn(str, integer)}}

	errs := c.OverloadedCall("Foo#m", overloads, trace(call.Return(call.Args("1"), 1)))
	assert.Equal(t, []sigerr.ErrCode{sigerr.ArgumentType, sigerr.ReturnType}, errs.Codes())
}

func TestNoOverloads(t *testing.T) {
	c := check.New(check.Config{})
	assert.False(t, c.OverloadedCall("Foo#m", nil, trace(call.Return(call.Args(1), 1))).HasError())
}

func TestCheckCall(t *testing.T) {
	overloads := []types.MethodType{{Function: types.Fn(str, integer)}}
	cfg := check.Config{Self: check.Receiver{Class: "Foo", Singleton: true}}

	errs := check.CheckCall(trace(call.Return(call.Args(1), 1)), overloads, cfg)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Errors()[0].Error(), "[Foo.m]")

	assert.True(t, check.CheckValue("s", str, cfg))
}
