package call_test

import (
	"errors"
	"testing"

	"github.com/cottand/sigtest/call"
	"github.com/stretchr/testify/assert"
)

func TestReturnValue(t *testing.T) {
	v, ok := call.Return(call.Args(1), "1").ReturnValue()
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = call.Raise(call.Args(1), errors.New("boom")).ReturnValue()
	assert.False(t, ok)

	_, ok = call.Break(call.Args()).ReturnValue()
	assert.False(t, ok)
}

func TestKeywordNamesAreSorted(t *testing.T) {
	args := call.Args().WithKeywords(map[string]any{"foo": 1, "baz": 2, "bar": 3})
	assert.Equal(t, []string{"bar", "baz", "foo"}, args.KeywordNames())
	assert.Empty(t, call.Args(1, 2).KeywordNames())
}
