package parser

import (
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/pipeline"
)

// ParserProcessor turns ctx.Tokens into an AST. Parsing stops at the
// first error; the partial AST is discarded.
type ParserProcessor struct{}

func NewParserProcessor() *ParserProcessor {
	return &ParserProcessor{}
}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}

	p := New(ctx.Tokens)
	p.ctx = ctx
	program, err := p.ParseProgram()
	if err != nil {
		if diag, ok := err.(*diagnostics.DiagnosticError); ok {
			ctx.AddError(diag)
		} else {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, p.peek(), err.Error()))
		}
		return ctx
	}

	program.File = ctx.FilePath
	ctx.AstRoot = program
	return ctx
}
