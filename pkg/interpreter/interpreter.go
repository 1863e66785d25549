// Package interpreter evaluates a parsed lox program.
//
// An Interpreter owns exactly one mutable "current environment"
// pointer and one loop-nesting counter (spec.md §3/§4.4). Both are
// touched only by the Interpreter itself — there is no concurrency
// here, so neither needs synchronization. exec and eval are the two
// dispatch points; each is a single exhaustive type switch over
// pkg/ast's closed Stmt/Expr variants rather than a Visitor, per
// spec.md §9's explicit direction and grounded on
// other_examples/1c709b42_archevan-glox__interpreter.go.go's
// interface{}-valued, switch-dispatched evaluator.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/kristofer/lox/pkg/ast"
	"github.com/kristofer/lox/pkg/environment"
	"github.com/kristofer/lox/pkg/token"
	"github.com/kristofer/lox/pkg/value"
)

// Interpreter executes statements against a lexically scoped
// environment chain. Construct one with New and reuse it across REPL
// turns — globals, and any top-level var bindings, persist between
// calls to Interpret.
type Interpreter struct {
	globals       *environment.Environment
	env           *environment.Environment
	loopNestDepth int
	out           io.Writer
}

// New creates an Interpreter with a fresh global environment seeded
// with the reserved "clock" native (pkg/value.Clock), printing to
// os.Stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput is New, but Print statements write to out instead of
// os.Stdout — tests use this to capture program output without
// touching the real standard streams.
func NewWithOutput(out io.Writer) *Interpreter {
	globals := environment.New()
	globals.Define("clock", value.Clock())
	return &Interpreter{globals: globals, env: globals, out: out}
}

// Interpret executes stmts in source order. It stops at the first
// runtime error — reporting it through report and returning false —
// or returns true once every statement has completed. A program that
// failed to scan or parse should never reach here; spec.md §7 puts
// that refusal on the driver, not the interpreter.
func (it *Interpreter) Interpret(stmts []ast.Stmt, report func(error)) bool {
	for _, stmt := range stmts {
		if err := it.exec(stmt); err != nil {
			report(err)
			return false
		}
	}
	return true
}

func (it *Interpreter) exec(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := it.eval(s.Expr)
		return err

	case *ast.Print:
		v, err := it.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.out, value.Stringify(v))
		return nil

	case *ast.Var:
		var v value.Value
		if s.Init != nil {
			var err error
			v, err = it.eval(s.Init)
			if err != nil {
				return err
			}
		}
		it.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.Block:
		return it.execBlock(s.Stmts, environment.NewEnclosed(it.env))

	case *ast.If:
		cond, err := it.eval(s.Cond)
		if err != nil {
			return err
		}
		if value.IsTruthy(cond) {
			return it.exec(s.Then)
		}
		if s.Else != nil {
			return it.exec(s.Else)
		}
		return nil

	case *ast.While:
		it.loopNestDepth++
		defer func() { it.loopNestDepth-- }()
		for {
			cond, err := it.eval(s.Cond)
			if err != nil {
				return err
			}
			if !value.IsTruthy(cond) {
				return nil
			}
			if err := it.exec(s.Body); err != nil {
				if _, isBreak := err.(breakControl); isBreak {
					return nil
				}
				return err
			}
		}

	case *ast.Break:
		if it.loopNestDepth == 0 {
			return &RuntimeError{Token: s.Keyword, Message: "break outside of while/for loop"}
		}
		return breakControl{}

	default:
		return fmt.Errorf("interpreter: unhandled statement type %T", stmt)
	}
}

// execBlock swaps in env, runs stmts, and restores the previous
// environment on every exit path — normal completion, a propagated
// runtime error, or a Break control signal alike — per spec.md §4.4's
// Block contract and the invariant in §8 that current_env before a
// block equals current_env after, regardless of success or failure.
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()

	for _, stmt := range stmts {
		if err := it.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) eval(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return it.eval(e.Inner)

	case *ast.Variable:
		return it.env.Get(e.Name)

	case *ast.Assign:
		v, err := it.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if err := it.env.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Logical:
		left, err := it.eval(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Type == token.Or {
			if value.IsTruthy(left) {
				return left, nil
			}
		} else {
			if !value.IsTruthy(left) {
				return left, nil
			}
		}
		return it.eval(e.Right)

	case *ast.Unary:
		right, err := it.eval(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Type {
		case token.Minus:
			n, ok := right.(float64)
			if !ok {
				return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a number."}
			}
			return -n, nil
		case token.Bang:
			return !value.IsTruthy(right), nil
		}
		return nil, fmt.Errorf("interpreter: unhandled unary operator %s", e.Op.Type)

	case *ast.Binary:
		left, err := it.eval(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := it.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return applyBinary(e.Op, left, right)

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression type %T", expr)
	}
}

// applyBinary dispatches left op right directly to a (Value, error)
// result, per spec.md §9's instruction to avoid the reference source's
// ArithmeticError sentinel — there is no intermediate "illegal
// expression" value constructed anywhere short of the final return;
// an unsupported combination returns the error directly. The table
// below is spec.md §4.4's operand-type matrix verbatim.
func applyBinary(op token.Token, left, right value.Value) (value.Value, error) {
	if op.Type == token.EqualEqual && (left == nil || right == nil) {
		return value.Equal(left, right), nil
	}
	if op.Type == token.BangEqual && (left == nil || right == nil) {
		return !value.Equal(left, right), nil
	}

	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			switch op.Type {
			case token.Minus:
				return l - r, nil
			case token.Slash:
				return l / r, nil
			case token.Star:
				return l * r, nil
			case token.Plus:
				return l + r, nil
			case token.Greater:
				return l > r, nil
			case token.GreaterEqual:
				return l >= r, nil
			case token.Less:
				return l < r, nil
			case token.LessEqual:
				return l <= r, nil
			case token.EqualEqual:
				return value.Equal(l, r), nil
			case token.BangEqual:
				return !value.Equal(l, r), nil
			}
		}
		if r, ok := right.(string); ok && op.Type == token.Plus {
			return value.Stringify(l) + r, nil
		}

	case string:
		if r, ok := right.(string); ok {
			switch op.Type {
			case token.Plus:
				return l + r, nil
			case token.EqualEqual:
				return value.Equal(l, r), nil
			case token.BangEqual:
				return !value.Equal(l, r), nil
			}
		}
		if r, ok := right.(float64); ok && op.Type == token.Plus {
			return l + value.Stringify(r), nil
		}

	case bool:
		if r, ok := right.(bool); ok {
			switch op.Type {
			case token.EqualEqual:
				return value.Equal(l, r), nil
			case token.BangEqual:
				return !value.Equal(l, r), nil
			}
		}
	}

	return nil, &RuntimeError{Token: op, Message: "Illegal expression."}
}
