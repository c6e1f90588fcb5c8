package pipeline_test

import (
	"strings"
	"testing"

	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/pipeline"
)

func run(t *testing.T, src string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	return pipeline.Standard().Run(ctx)
}

func TestPipelineEmitsIRForValidProgram(t *testing.T) {
	ctx := run(t, `fn add(a: Int, b: Int) -> Int { return a + b; }`)
	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diags)
	}
	if !strings.Contains(ctx.IR, "@add") {
		t.Fatalf("expected emitted IR to define @add, got:\n%s", ctx.IR)
	}
}

func TestPipelineSkipsEmitOnParseError(t *testing.T) {
	ctx := run(t, `let = 1;`)
	if !ctx.HasErrors() {
		t.Fatalf("expected a parse-error diagnostic")
	}
	if ctx.IR != "" {
		t.Fatalf("expected IR emission to be skipped after a parse error, got:\n%s", ctx.IR)
	}
}

func TestPipelineSkipsEmitOnAnalysisError(t *testing.T) {
	ctx := run(t, `let x: Int = "not an int";`)
	if !ctx.HasErrors() {
		t.Fatalf("expected an analyzer diagnostic")
	}
	if ctx.IR != "" {
		t.Fatalf("expected IR emission to be skipped after an analysis error, got:\n%s", ctx.IR)
	}
}

func TestPipelineCollectsDiagnosticsFromEveryPhase(t *testing.T) {
	// One parse error (the first let) and one analyzer error (the second).
	ctx := run(t, `let = 1; let y: Int = true;`)
	var errs []diagnostics.Diagnostic
	for _, d := range ctx.Diags {
		if d.Severity == diagnostics.Error {
			errs = append(errs, d)
		}
	}
	if len(errs) < 2 {
		t.Fatalf("expected a parse error and an analyzer error, got: %v", ctx.Diags)
	}
}
