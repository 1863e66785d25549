// Package environment implements the lexically scoped variable chain
// the interpreter evaluates names against.
//
// An Environment is a name→value map plus an optional pointer to the
// enclosing scope. The global environment's enclosing is nil; every
// block introduces a new Environment that points at (but never owns
// exclusively — several inner scopes can share one enclosing) the
// scope that was current when the block started. Grounded on
// original_source/src/environment.rs's define/get/assign shape,
// extended with the enclosing chain spec.md §3/§4.3 describe (the
// kept Rust source predates that extension and has no enclosing
// field at all).
package environment

import (
	"fmt"

	"github.com/kristofer/lox/pkg/token"
	"github.com/kristofer/lox/pkg/value"
)

// Environment is one lexical scope.
type Environment struct {
	values    map[string]value.Value
	enclosing *Environment
}

// New creates a global environment with no enclosing scope.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// NewEnclosed creates a scope nested inside enclosing. enclosing must
// not be nil; use New for the global scope.
func NewEnclosed(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), enclosing: enclosing}
}

// Define binds name to value in this scope, unconditionally. Defining
// a name already present in this scope overwrites it silently — this
// is the one operation that never consults the enclosing chain.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get resolves name against this scope, then its enclosing scope, and
// so on up the chain. It fails only once the chain is exhausted.
func (e *Environment) Get(name token.Token) (value.Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign updates the nearest scope in the chain (starting at this
// one) that already defines name. It never creates a new binding —
// assigning to an unknown name fails the same way Get does.
func (e *Environment) Assign(name token.Token, v value.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// RuntimeError reports a failed Get or Assign. It is the same shape
// pkg/interpreter uses for every other runtime failure, so a lookup
// miss three scopes deep surfaces identically to an operator-dispatch
// error at the call site that reports it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.Token.Where(), e.Message)
}
