package value

import "time"

// Clock returns the reserved "clock" native: it takes no arguments
// and yields the current Unix time in fractional seconds, mirroring
// the clock() primitive Crafting Interpreters' Lox reserves for
// benchmarking. Grounded on the teacher's primitives.go date/time
// helpers and archevan-glox's GlobalFunctionClock, both of which wrap
// a single stdlib time call behind a native callable.
func Clock() Native {
	return Native{
		Name:  "clock",
		Arity: 0,
		Fn: func(args []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	}
}
