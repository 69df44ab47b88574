package pipeline

import (
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/token"
)

// PipelineContext is the shared state threaded through processing stages.
// Each stage reads what the previous stage produced and fills in its own
// output; diagnostics accumulate across all stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	Tokens  []token.Token
	AstRoot interface{}
	Result  interface{}

	Errors []*diagnostics.DiagnosticError

	// Warnings are advisory diagnostics (type inference); they never
	// stop the pipeline.
	Warnings []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

func (c *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}

func (c *PipelineContext) AddWarning(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Warnings = append(c.Warnings, err)
}

func (c *PipelineContext) HasErrors() bool {
	return len(c.Errors) > 0
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages after a failed stage still run so that
// callers collect diagnostics from every stage, but stages are expected to
// no-op when their input is missing.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
