package analyzer_test

import (
	"testing"

	"github.com/datalang/dlc/internal/analyzer"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/lexer"
	"github.com/datalang/dlc/internal/parser"
	"github.com/datalang/dlc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) (*analyzer.Analyzer, []diagnostics.Diagnostic) {
	t.Helper()
	tokens, lexDiags := lexer.New(src).Tokenize()
	require.Empty(t, lexDiags)
	prog, parseDiags := parser.Parse(tokens)
	require.Empty(t, parseDiags)
	return analyzer.Analyze(prog)
}

func errorMessages(diags []diagnostics.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			out = append(out, d.Message)
		}
	}
	return out
}

func TestAnalyzeLetInference(t *testing.T) {
	_, diags := analyze(t, `let x = 1 + 2.0;`)
	require.Empty(t, errorMessages(diags))
}

func TestAnalyzeLetDeclaredTypeMismatch(t *testing.T) {
	_, diags := analyze(t, `let x: Int = "hi";`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
}

func TestAnalyzeForwardReference(t *testing.T) {
	_, diags := analyze(t, `
		fn main() -> Int { return helper(); }
		fn helper() -> Int { return 1; }
	`)
	require.Empty(t, errorMessages(diags))
}

func TestAnalyzeDuplicateFunctionDecl(t *testing.T) {
	_, diags := analyze(t, `
		fn f() -> Int { return 1; }
		fn f() -> Int { return 2; }
	`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "already declared")
}

func TestAnalyzeMissingReturnOnAllPaths(t *testing.T) {
	_, diags := analyze(t, `
		fn f(x: Bool) -> Int {
			if x {
				return 1;
			}
		}
	`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "all paths")
}

func TestAnalyzeReturnOnAllPathsWithElseIf(t *testing.T) {
	_, diags := analyze(t, `
		fn classify(x: Int) -> Int {
			if x > 0 {
				return 1;
			} else if x < 0 {
				return -1;
			} else {
				return 0;
			}
		}
	`)
	require.Empty(t, errorMessages(diags))
}

func TestAnalyzeUndefinedName(t *testing.T) {
	_, diags := analyze(t, `let y = x + 1;`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "undefined name")
}

func TestAnalyzeArityMismatch(t *testing.T) {
	_, diags := analyze(t, `
		fn add(a: Int, b: Int) -> Int { return a + b; }
		let r = add(1);
	`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "expects 2 argument")
}

func TestAnalyzeModuloRequiresInt(t *testing.T) {
	_, diags := analyze(t, `let x = 1.0 % 2.0;`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
}

func TestAnalyzeForOverNonArray(t *testing.T) {
	_, diags := analyze(t, `
		fn f() {
			for i in 5 {
				print(i);
			}
		}
	`)
	errs := errorMessages(diags)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "must be an array")
}

func TestAnalyzeRangeProducesArrayInt(t *testing.T) {
	a, diags := analyze(t, `let r = 1..10;`)
	require.Empty(t, errorMessages(diags))
	sym, ok := a.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, types.Array{Elem: types.TInt}, sym.Type)
}

func TestAnalyzeUnusedVariableWarning(t *testing.T) {
	_, diags := analyze(t, `
		fn f() {
			let unused = 1;
		}
	`)
	var sawWarning bool
	for _, d := range diags {
		if d.Severity == diagnostics.Warning {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning, "declaring but never using a local should warn")
}

func TestAnalyzeDataFieldAccess(t *testing.T) {
	_, diags := analyze(t, `
		data Point { x: Int; y: Int; }
		fn f() {
			let p: Point = makePoint();
			let v = p.x;
		}
		fn makePoint() -> Point { return makePoint(); }
	`)
	// Unknown field would be an error; known field access must not be.
	for _, d := range errorMessages(diags) {
		assert.NotContains(t, d, "has no field")
	}
}

func TestAnalyzePrintAcceptsAnyPrimitive(t *testing.T) {
	_, diags := analyze(t, `
		fn f() {
			print(1);
			print(1.5);
			print("s");
			print(true);
		}
	`)
	require.Empty(t, errorMessages(diags))
}

func TestAnalyzeAggregateBuiltins(t *testing.T) {
	a, diags := analyze(t, `let total = sum([1, 2, 3]);`)
	require.Empty(t, errorMessages(diags))
	sym, ok := a.Lookup("total")
	require.True(t, ok)
	assert.Equal(t, types.TInt, sym.Type)
}

func TestUnifyOccursCheck(t *testing.T) {
	v := types.Fresh()
	arr := types.Array{Elem: v}
	_, err := types.Unify(v, arr)
	require.Error(t, err)
}

func TestUnifyComposesSubstitutions(t *testing.T) {
	v1 := types.Fresh()
	s, err := types.Unify(types.Array{Elem: v1}, types.Array{Elem: types.TInt})
	require.NoError(t, err)
	applied := v1.Apply(s)
	assert.Equal(t, types.TInt, applied)
}
