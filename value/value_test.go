package value_test

import (
	"math"
	"testing"

	"github.com/cottand/sigtest/value"
	"github.com/stretchr/testify/assert"
)

func TestEqualNumbers(t *testing.T) {
	assert.True(t, value.Equal(3, int64(3)))
	assert.True(t, value.Equal(uint8(3), 3))
	assert.True(t, value.Equal(3.0, 3))
	assert.True(t, value.Equal(3, 3.0))
	assert.False(t, value.Equal(3, 4))
	assert.False(t, value.Equal(3, "3"))

	t.Run("unsigned values beyond int64", func(t *testing.T) {
		huge := uint64(math.MaxUint64)
		assert.False(t, value.Equal(huge, -1))
		assert.False(t, value.Equal(-1, huge))
		assert.False(t, value.Equal(uint64(math.MaxInt64)+1, int64(math.MinInt64)))
		assert.True(t, value.Equal(huge, huge))
		assert.True(t, value.Equal(uint64(math.MaxInt64), int64(math.MaxInt64)))
	})
}

func TestNilObjects(t *testing.T) {
	var obj *value.Object
	assert.NotPanics(t, func() {
		assert.Equal(t, value.NilClass, value.ClassOf(obj))
		assert.Equal(t, "nil", value.Inspect(obj))
	})
	assert.Equal(t, "Foo", value.ClassOf(&value.Object{Class: "Foo"}))
	assert.Equal(t, "#<Foo>", value.Inspect(&value.Object{Class: "Foo"}))
}
