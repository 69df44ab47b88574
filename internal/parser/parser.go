package parser

import (
	"fmt"

	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/pipeline"
	"github.com/susumulang/susumu/internal/token"
	"github.com/susumulang/susumu/internal/typesystem"
)

const maxParseDepth = 1000

// Parser consumes a token stream and produces an ast.Program, running
// advisory type inference on arrow chains as it goes. Parsing aborts on
// the first structural error; type warnings accumulate separately.
type Parser struct {
	tokens []token.Token
	pos    int

	ctx     *pipeline.PipelineContext
	typeEnv *typesystem.Env
	depth   int
}

func New(tokens []token.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		typeEnv: typesystem.NewBuiltinEnv(),
	}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	if p.pos+offset >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.peek()
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.TokenType, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorWithSuggestion(diagnostics.ErrP002, message)
}

func (p *Parser) skipNewlinesAndComments() {
	for p.match(token.NEWLINE) || p.match(token.COMMENT) {
	}
}

// peekPastNewlines returns the first non-newline, non-comment token type
// at or after the current position, without consuming anything.
func (p *Parser) peekPastNewlines() token.TokenType {
	pos := p.pos
	for pos < len(p.tokens) {
		t := p.tokens[pos].Type
		if t != token.NEWLINE && t != token.COMMENT {
			return t
		}
		pos++
	}
	return token.EOF
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxParseDepth {
		return p.errorAt(diagnostics.ErrP001, p.peek(), "expression nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorAt(code diagnostics.ErrorCode, tok token.Token, message string) *diagnostics.DiagnosticError {
	return diagnostics.NewError(code, tok, message)
}

// errorWithSuggestion reports the offending token, the previous token as
// context, and a syntax hint keyed on what was found.
func (p *Parser) errorWithSuggestion(code diagnostics.ErrorCode, message string) *diagnostics.DiagnosticError {
	cur := p.peek()
	prev := p.previous()

	detail, suggestion := describeUnexpected(cur, prev, message)
	err := diagnostics.NewErrorWithSuggestion(code, cur, detail, suggestion)
	err.Message = fmt.Sprintf("%s (previous token '%s' at %d:%d)", err.Message, prev.Lexeme, prev.Line, prev.Column)
	return err
}

func describeUnexpected(cur, prev token.Token, message string) (string, string) {
	switch cur.Type {
	case token.LBRACE:
		if prev.Type == token.ARROW {
			return "block expression after '->' arrow",
				"blocks after arrows should contain expressions: expr -> { stmt1; stmt2 }"
		}
		return "unexpected '{'",
			"use '{key: value}' for objects or '{ expr1; expr2 }' for blocks"
	case token.RBRACE:
		return "unexpected '}' with no matching opening brace",
			"check that every '{' has a matching '}'"
	case token.ARROW:
		return "unexpected '->' arrow",
			"arrows flow data: value -> function or value -> function <- args"
	case token.L_ARROW:
		return "unexpected '<-' arrow",
			"backward arrows provide convergent input: main -> func <- arg1 <- arg2"
	case token.EOF:
		return "unexpected end of file",
			"the expression appears incomplete; check for missing closing braces"
	case token.IDENT:
		return fmt.Sprintf("unexpected identifier '%s': %s", cur.Lexeme, message),
			"check spelling and ensure the name is defined"
	default:
		return fmt.Sprintf("%s, found '%s'", message, cur.Lexeme), ""
	}
}

func (p *Parser) addWarnings(warnings []typesystem.Warning) {
	if p.ctx == nil {
		return
	}
	for _, w := range warnings {
		err := &diagnostics.DiagnosticError{
			Code:       diagnostics.ErrT001,
			Message:    w.Message,
			Suggestion: w.Suggestion,
			Line:       w.Line,
			Column:     w.Column,
		}
		p.ctx.AddWarning(err)
	}
}
