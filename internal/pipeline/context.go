package pipeline

import (
	"github.com/datalang/dlc/internal/analyzer"
	"github.com/datalang/dlc/internal/ast"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/token"
)

// PipelineContext holds all the data passed between pipeline stages.
// Grounded on the teacher's internal/pipeline context (carried in the fuller
// mcgru/funxy fork as internal/pipeline/context.go), trimmed to DataLang's
// four fixed phases — no symbol table/type map/trait bookkeeping lives here
// since the analyzer owns its own scope chain and type map internally.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	Tokens  []token.Token
	AstRoot *ast.Program
	An      *analyzer.Analyzer
	IR      string

	Diags []diagnostics.Diagnostic
}

// NewPipelineContext creates and initializes a new PipelineContext.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any accumulated diagnostic is Severity Error.
// EmitProcessor checks it to skip IR emission; the other phases always run.
func (c *PipelineContext) HasErrors() bool {
	for _, d := range c.Diags {
		if d.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}
