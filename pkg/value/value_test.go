package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil is falsey", nil, false},
		{"false is falsey", false, false},
		{"true is truthy", true, true},
		{"zero is truthy", 0.0, true},
		{"empty string is truthy", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsTruthy(c.v))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, false))
	assert.False(t, Equal(1.0, "1"))
	assert.True(t, Equal(1.0, 1.0))
	assert.False(t, Equal(1.0, 2.0))
	assert.True(t, Equal("a", "a"))
	assert.True(t, Equal(true, true))
	assert.False(t, Equal(true, false))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "nil", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "1", Stringify(1.0))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "hello", Stringify("hello"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", TypeName(nil))
	assert.Equal(t, "number", TypeName(1.0))
	assert.Equal(t, "string", TypeName("x"))
	assert.Equal(t, "boolean", TypeName(true))
}

// TestClock_ReachableOnlyAsAGoCallable exercises spec.md §1's reserved
// native-callable extension point: clock has no call-expression syntax
// to invoke it from Lox source, so the only way to reach it is the way
// embedding Go code would — resolve it as a Value and call it directly.
func TestClock_ReachableOnlyAsAGoCallable(t *testing.T) {
	c := Clock()
	assert.Equal(t, "clock", c.Name)
	assert.Equal(t, 0, c.Arity)

	result, err := c.Call(nil)
	assert.NoError(t, err)
	seconds, ok := result.(float64)
	assert.True(t, ok)
	assert.Greater(t, seconds, 0.0)
}

func TestNative_String(t *testing.T) {
	assert.Equal(t, "<native fn clock>", Clock().String())
}
