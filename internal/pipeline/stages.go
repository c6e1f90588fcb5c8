package pipeline

import (
	"github.com/datalang/dlc/internal/analyzer"
	"github.com/datalang/dlc/internal/codegen"
	"github.com/datalang/dlc/internal/lexer"
	"github.com/datalang/dlc/internal/parser"
)

// LexProcessor tokenizes ctx.SourceCode, grounded on the teacher's
// internal/lexer processor stage.
type LexProcessor struct{}

func (LexProcessor) Process(ctx *PipelineContext) *PipelineContext {
	tokens, diags := lexer.New(ctx.SourceCode).Tokenize()
	ctx.Tokens = tokens
	ctx.Diags = append(ctx.Diags, diags...)
	return ctx
}

// ParseProcessor builds ctx.AstRoot from ctx.Tokens, grounded on the
// teacher's internal/parser/processor.go ParserProcessor.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	prog, diags := parser.Parse(ctx.Tokens)
	ctx.AstRoot = prog
	ctx.Diags = append(ctx.Diags, diags...)
	return ctx
}

// AnalyzeProcessor type-checks ctx.AstRoot, grounded on the teacher's
// internal/analyzer/processor.go AnalyzerProcessor.
type AnalyzeProcessor struct{}

func (AnalyzeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	an, diags := analyzer.Analyze(ctx.AstRoot)
	ctx.An = an
	ctx.Diags = append(ctx.Diags, diags...)
	return ctx
}

// EmitProcessor lowers ctx.AstRoot to LLVM IR, but only when no earlier
// phase recorded an error (spec §9 "IR emission runs only when earlier
// phases produced no errors").
type EmitProcessor struct{}

func (EmitProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	ctx.IR = codegen.Emit(ctx.AstRoot, ctx.An)
	return ctx
}

// Standard builds the fixed lex->parse->analyze->emit pipeline every dlc
// invocation runs.
func Standard() *Pipeline {
	return New(LexProcessor{}, ParseProcessor{}, AnalyzeProcessor{}, EmitProcessor{})
}
