package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/lox/pkg/token"
)

func noReport(t *testing.T) func(int, string) {
	return func(line int, msg string) {
		t.Fatalf("unexpected report at line %d: %s", line, msg)
	}
}

func TestScanTokens_Punctuation(t *testing.T) {
	tokens, err := New("(){},.-+;*").ScanTokens(noReport(t))
	require.NoError(t, err)

	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Eof,
	}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		assert.Equalf(t, typ, tokens[i].Type, "token %d", i)
	}
}

func TestScanTokens_OneOrTwoCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"!", token.Bang}, {"!=", token.BangEqual},
		{"=", token.Equal}, {"==", token.EqualEqual},
		{"<", token.Less}, {"<=", token.LessEqual},
		{">", token.Greater}, {">=", token.GreaterEqual},
	}
	for _, tt := range tests {
		tokens, err := New(tt.input).ScanTokens(noReport(t))
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, tt.want, tokens[0].Type)
		assert.Equal(t, tt.input, tokens[0].Lexeme)
	}
}

func TestScanTokens_Number(t *testing.T) {
	tokens, err := New("123 45.67").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Number, tokens[0].Type)
	assert.Equal(t, 123.0, tokens[0].Literal)
	assert.Equal(t, token.Number, tokens[1].Type)
	assert.Equal(t, 45.67, tokens[1].Literal)
}

func TestScanTokens_NegativeIsTwoTokens(t *testing.T) {
	// spec.md §4.1: '-' is always its own token, never folded into the
	// following number — -5 lexes as MINUS, NUMBER(5), unlike the
	// teacher's lexer.
	tokens, err := New("-5").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Minus, tokens[0].Type)
	assert.Equal(t, token.Number, tokens[1].Type)
	assert.Equal(t, 5.0, tokens[1].Literal)
}

func TestScanTokens_String(t *testing.T) {
	tokens, err := New(`"hello, world"`).ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.String, tokens[0].Type)
	assert.Equal(t, "hello, world", tokens[0].Literal)
}

func TestScanTokens_StringSpanningLines(t *testing.T) {
	var reports []string
	tokens, err := New("\"a\nb\" 1").ScanTokens(func(_ int, msg string) {
		reports = append(reports, msg)
	})
	require.NoError(t, err)
	assert.Empty(t, reports)
	require.Len(t, tokens, 3)
	assert.Equal(t, "a\nb", tokens[0].Literal)
	// the line the trailing "1" is on should have advanced past the
	// embedded newline
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	var reports []string
	_, err := New(`"oops`).ScanTokens(func(_ int, msg string) {
		reports = append(reports, msg)
	})
	require.Error(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Unterminated string.", reports[0])
}

func TestScanTokens_LineComment(t *testing.T) {
	tokens, err := New("1 // a comment\n2").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScanTokens_Keywords(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while break"
	tokens, err := New(input).ScanTokens(noReport(t))
	require.NoError(t, err)

	want := []token.Type{
		token.And, token.Class, token.Else, token.False, token.For,
		token.Fun, token.If, token.Nil, token.Or, token.Print,
		token.Return, token.Super, token.This, token.True, token.Var,
		token.While, token.Break, token.Eof,
	}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		assert.Equalf(t, typ, tokens[i].Type, "token %d (%q)", i, tokens[i].Lexeme)
	}
}

func TestScanTokens_IdentifierNotKeyword(t *testing.T) {
	tokens, err := New("printer").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.Identifier, tokens[0].Type)
}

func TestScanTokens_IllegalCharacterAccumulatesAndContinues(t *testing.T) {
	var reports []string
	tokens, err := New("1 @ 2 $ 3").ScanTokens(func(_ int, msg string) {
		reports = append(reports, msg)
	})
	require.Error(t, err)
	assert.Len(t, reports, 2)
	// scanning continues past each bad character: all three numbers
	// still show up in the token stream.
	var nums int
	for _, tok := range tokens {
		if tok.Type == token.Number {
			nums++
		}
	}
	assert.Equal(t, 3, nums)
}

func TestScanTokens_LineNumbersAreOneBasedAndMonotonic(t *testing.T) {
	tokens, err := New("1\n2\n3").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}

func TestScanTokens_AlwaysEOFTerminated(t *testing.T) {
	tokens, err := New("").ScanTokens(noReport(t))
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Eof, tokens[0].Type)
}
