package sigerr_test

import (
	"log/slog"
	"testing"

	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strToInt = types.MethodType{Function: types.Fn(types.Nominal("Integer"), types.Nominal("String"))}

func TestMessages(t *testing.T) {
	cases := []struct {
		err      sigerr.CheckError
		code     sigerr.ErrCode
		expected string
	}{
		{
			sigerr.New(sigerr.NewArity{Method: "Foo#bar", MethodType: strToInt, Detail: "2 positional arguments given"}),
			sigerr.Arity,
			"[Foo#bar] ArityError: expected method type (String) -> Integer (2 positional arguments given)",
		},
		{
			sigerr.New(sigerr.NewArgumentType{Method: "Foo#bar", MethodType: strToInt, Position: "#0", Param: types.P(types.Nominal("String")), Value: 1}),
			sigerr.ArgumentType,
			"[Foo#bar] ArgumentTypeError: expected `String` (#0) but given `1`",
		},
		{
			sigerr.New(sigerr.NewReturnType{Method: "Foo#bar", MethodType: strToInt, InBlock: true, Type: types.Nominal("Integer"), Value: "1"}),
			sigerr.BlockReturnType,
			"[Foo#bar] BlockReturnTypeError: expected `Integer` but returns `\"1\"`",
		},
		{
			sigerr.New(sigerr.NewUnresolvedOverloading{Method: "Foo.baz", MethodTypes: []types.MethodType{strToInt, {Function: types.Fn(types.Nil)}}}),
			sigerr.UnresolvedOverloading,
			"[Foo.baz] UnresolvedOverloadingError: couldn't find a suitable overloading among `(String) -> Integer | () -> nil`",
		},
		{
			sigerr.New(sigerr.NewInvalidSampleSize{Input: "-1"}),
			sigerr.InvalidSampleSize,
			"sample size should be a positive integer: `-1`",
		},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code())
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestFormatWithCode(t *testing.T) {
	err := sigerr.New(sigerr.NewMissingBlock{Method: "Foo#each", MethodType: strToInt})
	assert.Equal(t, "(E007) [Foo#each] MissingBlockError: required block is missing for `(String) -> Integer`", sigerr.FormatWithCode(err))
}

func TestRecursionLimitWithoutMethod(t *testing.T) {
	err := sigerr.NewRecursionLimit{Type: types.Alias("a"), Depth: 101}
	assert.Equal(t, "RecursionLimitExceeded: gave up matching `a` after 101 nested types", err.Error())
	err.Method = "Foo#bar"
	assert.Equal(t, "[Foo#bar] RecursionLimitExceeded: gave up matching `a` after 101 nested types", err.Error())
}

func TestErrorsAccumulate(t *testing.T) {
	var errs *sigerr.Errors
	assert.False(t, errs.HasError())
	assert.Equal(t, 0, errs.Len())
	assert.Empty(t, errs.Codes())
	assert.Nil(t, errs.Merge(nil))

	errs = errs.With(sigerr.New(sigerr.NewUnexpectedBlock{Method: "Foo#bar"}))
	other := (*sigerr.Errors)(nil).With(sigerr.New(sigerr.NewMissingBlock{Method: "Foo#baz"}))
	errs = errs.Merge(other).Merge(nil)

	require.True(t, errs.HasError())
	assert.Equal(t, []sigerr.ErrCode{sigerr.UnexpectedBlock, sigerr.MissingBlock}, errs.Codes())

	group := errs.LogValue()
	require.Equal(t, slog.KindGroup, group.Kind())
	assert.Len(t, group.Group(), 2)
}

func TestTypeError(t *testing.T) {
	err := &sigerr.TypeError{Errors: []sigerr.CheckError{
		sigerr.New(sigerr.NewMissingBlock{Method: "Foo#a", MethodType: strToInt}),
		sigerr.New(sigerr.NewUnexpectedBlock{Method: "Foo#b", MethodType: strToInt}),
	}}
	assert.Equal(t,
		"type error detected: [[Foo#a] MissingBlockError: required block is missing for `(String) -> Integer`, "+
			"[Foo#b] UnexpectedBlockError: unexpected block is given for `(String) -> Integer`]",
		err.Error(),
	)
}
