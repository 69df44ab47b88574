package lexer

import (
	"testing"

	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/pipeline"
	"github.com/susumulang/susumu/internal/token"
)

func TestArrowTokens(t *testing.T) {
	input := "5 -> add <- 3 <= 4 < - >"
	want := []token.TokenType{
		token.NUMBER, token.ARROW, token.IDENT, token.L_ARROW,
		token.NUMBER, token.LT_EQ, token.NUMBER, token.LT,
		token.MINUS, token.GT, token.EOF,
	}
	assertTokenTypes(t, input, want)
}

func TestKeywords(t *testing.T) {
	input := "i ei e match when fe while in mut true false null return error _"
	want := []token.TokenType{
		token.COND_IF, token.COND_ELSE_IF, token.COND_ELSE, token.MATCH,
		token.WHEN, token.FOREACH, token.WHILE, token.IN, token.MUT,
		token.TRUE, token.FALSE, token.NULL, token.RETURN, token.ERROR,
		token.UNDERSCORE, token.EOF,
	}
	assertTokenTypes(t, input, want)
}

func TestIdentifiersAreNotKeywords(t *testing.T) {
	// Prefixes of keywords and constructor names stay identifiers.
	input := "if error2 success some matched item"
	want := []token.TokenType{
		token.IDENT, token.IDENT, token.IDENT, token.IDENT,
		token.IDENT, token.IDENT, token.EOF,
	}
	assertTokenTypes(t, input, want)
}

func TestOperatorsAndDelimiters(t *testing.T) {
	input := "( ) { } [ ] , : . @ + * / = == != >="
	want := []token.TokenType{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.COLON,
		token.DOT, token.AT, token.PLUS, token.ASTERISK, token.SLASH,
		token.ASSIGN, token.EQ, token.NOT_EQ, token.GT_EQ, token.EOF,
	}
	assertTokenTypes(t, input, want)
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"42", 42},
		{"3.14", 3.14},
		{"0", 0},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Fatalf("%q: expected number token, got %s", tt.input, tok.Type)
		}
		if tok.Literal.(float64) != tt.value {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.value, tok.Literal)
		}
	}
}

func TestDotAfterNumberIsPropertyAccess(t *testing.T) {
	// "3.14" is one number; "3.x" is a number, a dot, and an identifier.
	assertTokenTypes(t, "3.x", []token.TokenType{
		token.NUMBER, token.DOT, token.IDENT, token.EOF,
	})
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected string token, got %s", tok.Type)
	}
	if tok.Lexeme != "hello world" {
		t.Errorf("expected lexeme without quotes, got %q", tok.Lexeme)
	}
}

func TestLineComments(t *testing.T) {
	assertTokenTypes(t, "1 // the rest is ignored\n2", []token.TokenType{
		token.NUMBER, token.COMMENT, token.NEWLINE, token.NUMBER, token.EOF,
	})
}

func TestNewlinesAreTokens(t *testing.T) {
	assertTokenTypes(t, "a\n\nb", []token.TokenType{
		token.IDENT, token.NEWLINE, token.NEWLINE, token.IDENT, token.EOF,
	})
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\n  bb")
	first := l.NextToken()
	if first.Line != 1 || first.Column != 1 {
		t.Errorf("expected 1:1, got %d:%d", first.Line, first.Column)
	}
	l.NextToken() // newline
	second := l.NextToken()
	if second.Line != 2 || second.Column != 3 {
		t.Errorf("expected 2:3, got %d:%d", second.Line, second.Column)
	}
}

func TestUnterminatedStringDiagnostic(t *testing.T) {
	ctx := NewLexerProcessor().Process(pipeline.NewPipelineContext(`x = "oops`))
	if !ctx.HasErrors() {
		t.Fatal("expected a lexer error")
	}
	if ctx.Errors[0].Code != diagnostics.ErrL002 {
		t.Errorf("expected L002, got %s", ctx.Errors[0].Code)
	}
}

func TestUnexpectedCharacterDiagnostic(t *testing.T) {
	ctx := NewLexerProcessor().Process(pipeline.NewPipelineContext("a ~ b"))
	if !ctx.HasErrors() {
		t.Fatal("expected a lexer error")
	}
	if ctx.Errors[0].Code != diagnostics.ErrL001 {
		t.Errorf("expected L001, got %s", ctx.Errors[0].Code)
	}
}

func assertTokenTypes(t *testing.T, input string, want []token.TokenType) {
	t.Helper()
	l := New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("input %q token %d: expected %s, got %s (%q)", input, i, w, tok.Type, tok.Lexeme)
		}
	}
}
