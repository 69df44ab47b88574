package evaluator

import (
	"io"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/pipeline"
	"github.com/susumulang/susumu/internal/token"
)

// EvaluatorProcessor executes ctx.AstRoot and stores the final value in
// ctx.Result.
type EvaluatorProcessor struct {
	Out io.Writer

	// SearchPaths are extra module directories registered before
	// execution.
	SearchPaths []string
}

func NewEvaluatorProcessor(out io.Writer) *EvaluatorProcessor {
	return &EvaluatorProcessor{Out: out}
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.AstRoot == nil {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	ev := New()
	if ep.Out != nil {
		ev.Out = ep.Out
	}
	for _, path := range ep.SearchPaths {
		ev.Loader.RegisterSearchPath(path)
	}

	result, err := ev.Execute(program)
	if err != nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrE001, token.Token{}, err.Error()))
		return ctx
	}
	ctx.Result = result
	return ctx
}
