// Package pipeline chains the compiler's four fixed phases (lex, parse,
// analyze, emit) into one ordered run over a shared PipelineContext.
//
// Grounded on the teacher's internal/pipeline/pipeline.go Pipeline{processors}
// / Run(ctx) shape.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Every phase runs regardless of earlier errors, so a single
		// invocation reports parse and semantic diagnostics together.
	}
	return ctx
}
