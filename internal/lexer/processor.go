package lexer

import (
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/pipeline"
	"github.com/susumulang/susumu/internal/token"
)

// LexerProcessor is the pipeline stage that turns source text into tokens.
type LexerProcessor struct{}

func NewLexerProcessor() *LexerProcessor {
	return &LexerProcessor{}
}

func (p *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			msg := "unexpected character '" + tok.Lexeme + "'"
			code := diagnostics.ErrL001
			if s, ok := tok.Literal.(string); ok {
				msg = s
				code = diagnostics.ErrL002
			}
			ctx.AddError(diagnostics.NewError(code, tok, msg))
			tok = token.Token{Type: token.EOF, Line: tok.Line, Column: tok.Column}
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.Tokens = tokens
	return ctx
}
