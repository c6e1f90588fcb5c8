package analyzer

import (
	"github.com/datalang/dlc/internal/config"
	"github.com/datalang/dlc/internal/symbols"
	"github.com/datalang/dlc/internal/types"
)

// PrintFuncName re-exports config.PrintFuncName for callers that only import
// the analyzer package.
const PrintFuncName = config.PrintFuncName

// declareBuiltins installs print/sum/min/max/count/mean into the global
// scope before Phase 2 begins, per spec §4.D.
func (a *Analyzer) declareBuiltins() {
	declare := func(name string, params []types.Type, ret types.Type) {
		a.global.Declare(&symbols.Symbol{
			Name: name, Kind: symbols.FunctionSymbol,
			Type:       types.Function{Params: params, Return: ret},
			ParamTypes: params, Initialized: true, Used: true,
		})
	}
	// print is polymorphic; its single param slot is a fresh var purely for
	// arity bookkeeping — analyzePrintCall special-cases the actual check.
	declare(PrintFuncName, []types.Type{types.Fresh()}, types.TVoid)
	declare(config.SumFuncName, []types.Type{types.Array{Elem: types.TInt}}, types.TInt)
	declare(config.MinFuncName, []types.Type{types.Array{Elem: types.TInt}}, types.TInt)
	declare(config.MaxFuncName, []types.Type{types.Array{Elem: types.TInt}}, types.TInt)
	declare(config.CountFuncName, []types.Type{types.Array{Elem: types.TInt}}, types.TInt)
	declare(config.MeanFuncName, []types.Type{types.Array{Elem: types.TInt}}, types.TFloat)
}
