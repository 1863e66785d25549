package interpreter

import "github.com/kristofer/lox/pkg/environment"

// RuntimeError is the same shape pkg/environment uses for undefined-
// variable failures. Aliasing it here (rather than redeclaring an
// identical struct) means a lookup miss and an operator-dispatch
// failure are indistinguishable to a caller that just wants to know
// "was this a runtime error" — both satisfy the same type.
type RuntimeError = environment.RuntimeError

// breakControl is the sentinel spec.md §4.4/§9 calls for: a value that
// satisfies error so it can travel through the same exec/eval return
// channel as a real failure, but that only the While case ever
// inspects. It must never reach Interpret's caller.
type breakControl struct{}

func (breakControl) Error() string { return "break" }
