// Package parser implements the lox recursive-descent parser.
//
// The parser is responsible for converting a stream of tokens (from
// pkg/scanner) into an Abstract Syntax Tree (AST) of pkg/ast nodes. It
// performs syntactic analysis to ensure the token stream follows the
// grammar rules of the language, and rewrites a few surface forms —
// assignment targets, for loops — into simpler AST shapes along the
// way.
//
// Parser Architecture:
//
// The parser uses a recursive descent parsing strategy, which means:
//  1. Each grammar rule corresponds to a parsing function
//  2. The parser looks ahead via peek/check to decide what to parse
//  3. Functions call each other recursively to handle nested structures
//
// Unlike a streaming two-token lexer window, this parser holds the
// entire token slice in memory and walks it with a single cursor
// (current). That buffered-slice style — grounded on
// original_source/src/parser.rs — is what makes the assignment-target
// rewrite and the for-loop desugaring straightforward: both need to
// look at tokens already consumed (previous()) without re-lexing.
//
// Grammar (spec.md §4.2):
//
//	program     := declaration* Eof
//	declaration := varDecl | statement
//	varDecl     := "var" IDENTIFIER ( "=" expression )? ";"
//	statement   := exprStmt | printStmt | ifStmt | whileStmt
//	             | forStmt | breakStmt | block
//	exprStmt    := expression ";"
//	printStmt   := "print" expression ";"
//	ifStmt      := "if" "(" expression ")" statement ( "else" statement )?
//	whileStmt   := "while" "(" expression ")" statement
//	forStmt     := "for" "(" (varDecl | exprStmt | ";")
//	                   expression? ";" expression? ")" statement
//	breakStmt   := "break" ";"
//	block       := "{" declaration* "}"
//
//	expression  := assignment
//	assignment  := IDENTIFIER "=" assignment | logic_or
//	logic_or    := logic_and ( "or" logic_and )*
//	logic_and   := equality ( "and" equality )*
//	equality    := comparison ( ( "!=" | "==" ) comparison )*
//	comparison  := term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        := factor ( ( "-" | "+" ) factor )*
//	factor      := unary ( ( "/" | "*" ) unary )*
//	unary       := ( "!" | "-" ) unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil"
//	             | "(" expression ")" | IDENTIFIER
//
// Error Handling:
//
// The parser never stops at the first syntax error. Each one is
// reported immediately through the report callback and accumulated
// into a *multierror.Error, and the parser enters panic-mode recovery
// (synchronize) to skip ahead to a token that plausibly starts the
// next statement, so one malformed statement does not hide every
// error after it.
package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/kristofer/lox/pkg/ast"
	"github.com/kristofer/lox/pkg/token"
)

// Parser turns a token stream into a slice of statements. It is
// stateful and single-use: create a new one per source file or REPL
// line.
type Parser struct {
	tokens  []token.Token
	current int
}

// New creates a Parser over tokens. tokens must be Eof-terminated, as
// pkg/scanner always produces.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Error is a syntax error anchored to the offending token. It renders
// itself fully, matching spec.md §6's diagnostic format.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.Token.Where(), e.Message)
}

// Parse runs the parser to completion, reporting every syntax error it
// recovers from through report and returning the accumulated statement
// list alongside a combined error (nil if there were none).
//
// The returned statement slice is always a best-effort one: a
// statement that failed to parse is simply omitted, not replaced by a
// placeholder, since a caller that receives a non-nil error is
// expected to abort before interpreting anything.
func (p *Parser) Parse(report func(error)) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	var errs *multierror.Error

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			report(err)
			errs = multierror.Append(errs, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, errs.ErrorOrNil()
}

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.Var) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name, Init: init}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Break):
		return p.breakStatement()
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.Print{Expr: expr}, nil
}

func (p *Parser) breakStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(token.Semicolon, "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return &ast.Break{Keyword: keyword}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// forStatement desugars the C-style for loop into the While/Block
// shapes spec.md §4.2 calls for: the AST that results from parsing a
// for loop contains no "for" node at all, only the pieces it expands
// into.
//
//	for (init; cond; incr) body
//
// becomes
//
//	{ init; while (cond) { body; incr; } }
//
// with cond defaulting to the literal `true` when omitted, and the
// increment/initializer clauses simply absent from the desugared block
// when omitted.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer, err = p.varDecl()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.Expression{Expr: increment}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}
	if initializer != nil {
		body = &ast.Block{Stmts: []ast.Stmt{initializer, body}}
	}
	return body, nil
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.Expression{Expr: expr}, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment parses the left-hand side first, then rewrites the
// result: if the next token is "=", the left operand must turn out to
// be a bare Variable, which becomes the Assign target. Anything else on
// the left is a syntax error anchored at the "=" that does NOT consume
// it — the offending expression has already been fully parsed, so
// swallowing more tokens here would only confuse recovery.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.check(token.Equal) {
		v, ok := expr.(*ast.Variable)
		if !ok {
			return nil, &Error{Token: p.peek(), Message: "Invalid assignment target."}
		}
		p.advance()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: v.Name, Value: value}, nil
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}, nil
	case p.match(token.True):
		return &ast.Literal{Value: true}, nil
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}, nil
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: expr}, nil
	}
	return nil, &Error{Token: p.peek(), Message: "Expect expression."}
}

// match advances past and returns true if the current token has any of
// the given types, leaving the cursor unchanged otherwise.
func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, &Error{Token: p.peek(), Message: message}
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.Eof
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// synchronize discards tokens until it reaches one that plausibly
// starts a new statement, so a single malformed statement does not
// cascade into a wall of spurious follow-on errors. It always consumes
// at least the token that caused the error.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
