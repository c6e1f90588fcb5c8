package codegen_test

import (
	"strings"
	"testing"

	"github.com/datalang/dlc/internal/analyzer"
	"github.com/datalang/dlc/internal/codegen"
	"github.com/datalang/dlc/internal/lexer"
	"github.com/datalang/dlc/internal/parser"
)

// compile runs the full lex/parse/analyze/emit pipeline and fails the test
// on any diagnostic, the way the teacher's vm_test.go parse/runVM helpers do.
func compile(t *testing.T, src string) string {
	t.Helper()
	tokens, lexDiags := lexer.New(src).Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("lexer error: %v", lexDiags[0])
	}
	prog, parseDiags := parser.Parse(tokens)
	if len(parseDiags) > 0 {
		t.Fatalf("parser error: %v", parseDiags[0])
	}
	an, analyzeDiags := analyzer.Analyze(prog)
	for _, d := range analyzeDiags {
		if !strings.Contains(d.Message, "unused") {
			t.Fatalf("analyzer error: %v", d)
		}
	}
	return codegen.Emit(prog, an)
}

func requireContains(t *testing.T, ir, substr string) {
	t.Helper()
	if !strings.Contains(ir, substr) {
		t.Fatalf("expected IR to contain %q, got:\n%s", substr, ir)
	}
}

func TestEmitPreambleDeclaresRuntimeCollaborators(t *testing.T) {
	ir := compile(t, `let x: Int = 1;`)
	for _, sym := range []string{
		"@datalang_load", "@datalang_save", "@datalang_select", "@datalang_groupby",
		"@datalang_df_filter_numeric", "@datalang_df_filter_string",
		"@datalang_df_column_double", "@datalang_print_dataframe",
		"@datalang_df_create", "@datalang_df_add_row",
		"@datalang_format_int", "@datalang_format_float", "@datalang_format_bool",
		"@datalang_free_dataframe", "@__str_concat",
	} {
		requireContains(t, ir, sym)
	}
}

func TestEmitFnDeclBasic(t *testing.T) {
	ir := compile(t, `fn add(a: Int, b: Int) -> Int { return a + b; }`)
	requireContains(t, ir, "define i64 @add(i64 %p.a, i64 %p.b) {")
	requireContains(t, ir, "= add i64")
	requireContains(t, ir, "ret i64")
}

func TestEmitMainRenamedToUserMain(t *testing.T) {
	ir := compile(t, `fn main() { let x: Int = 1; }`)
	requireContains(t, ir, "@user_main")
	requireContains(t, ir, "define i32 @main() {")
}

func TestEmitIfElseLabels(t *testing.T) {
	ir := compile(t, `fn pick(n: Int) -> Int {
		if n > 0 {
			return 1;
		} else {
			return 0;
		}
	}`)
	requireContains(t, ir, "br i1")
	requireContains(t, ir, "icmp sgt")
}

func TestEmitForLoopOverArray(t *testing.T) {
	ir := compile(t, `fn main() {
		let xs: [Int] = [1, 2, 3];
		for v in xs {
			print(v);
		}
	}`)
	requireContains(t, ir, "extractvalue {i64, i64*}")
	requireContains(t, ir, "icmp slt i64")
	requireContains(t, ir, "call void @print_int")
}

func TestEmitStringLiteralInterning(t *testing.T) {
	ir := compile(t, `fn main() { print("hi"); print("hi"); }`)
	requireContains(t, ir, `@.str.0 = private unnamed_addr constant [3 x i8] c"hi\00"`)
	if strings.Count(ir, "@.str.0") < 2 {
		t.Fatalf("expected the duplicate string literal to be interned to a single global, got:\n%s", ir)
	}
	if strings.Contains(ir, "@.str.1") {
		t.Fatalf("expected only one interned string global, got:\n%s", ir)
	}
}

func TestEmitPrintDispatchesOnType(t *testing.T) {
	ir := compile(t, `fn main() { print(1); print(1.5); print(true); print("s"); }`)
	requireContains(t, ir, "call void @print_int(i64")
	requireContains(t, ir, "call void @print_float(double")
	requireContains(t, ir, "call void @print_bool(i1")
	requireContains(t, ir, "call void @print_string(i8*")
}

func TestEmitAggregateBuiltinCall(t *testing.T) {
	ir := compile(t, `fn main() { let xs: [Int] = [1, 2, 3]; let total: Int = sum(xs); }`)
	requireContains(t, ir, "call i64 @sum({i64, i64*}")
}

func TestEmitLoadSave(t *testing.T) {
	ir := compile(t, `fn main() {
		let df: DataFrame = load("in.csv");
		save(df, "out.csv");
	}`)
	requireContains(t, ir, "call i8* @datalang_load(i8*")
	requireContains(t, ir, "call void @datalang_save(i8*")
}

func TestEmitImplicitReturnFallsBackToZeroValue(t *testing.T) {
	// This function does not return on every path; the analyzer already
	// flags that as an error, but the emitter's own fallback (spec §4.E
	// "Emitter never panics") is exercised directly here rather than through
	// the diagnostic-clean compile() helper.
	src := `fn maybe(n: Int) -> Int { if n > 0 { return n; } }`
	tokens, _ := lexer.New(src).Tokenize()
	prog, _ := parser.Parse(tokens)
	an, _ := analyzer.Analyze(prog)
	ir := codegen.Emit(prog, an)
	requireContains(t, ir, "ret i64 0")
}
