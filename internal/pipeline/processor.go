package pipeline

// Processor is one stage of the compile pipeline, grounded on the teacher's
// internal/parser/processor.go / internal/analyzer/processor.go
// ParserProcessor/AnalyzerProcessor{}.Process(ctx) pattern: a stateless
// struct whose Process method consumes and returns the shared context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
