// Package config holds free-standing compiler constants, grounded on the
// teacher's internal/config/constants.go (Version, SourceFileExtensions,
// IsTestMode free-function style instead of a struct-and-getter API).
package config

// Version is the current dlc version. Set at build time via
// -ldflags "-X github.com/datalang/dlc/internal/config.Version=...".
var Version = "0.1.0"

const SourceFileExt = ".datalang"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".datalang", ".dl"}

// HasSourceExt returns true if the path ends with any recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is set by cmd/dlc when DLC_TEST_MODE=1, or directly by tests.
// Diagnostic banners omit the compile-session uuid when true, so golden
// fixtures stay deterministic.
var IsTestMode = false

// Built-in function names, declared by the analyzer before Phase 2 begins
// (spec §4.D "Built-in functions").
const (
	PrintFuncName = "print"
	SumFuncName   = "sum"
	MinFuncName   = "min"
	MaxFuncName   = "max"
	CountFuncName = "count"
	MeanFuncName  = "mean"
)

// MainFuncName is the source-level entry point, renamed to UserMainFuncName
// in emitted IR so the module can define its own wrapper `main` (spec §4.E).
const (
	MainFuncName     = "main"
	UserMainFuncName = "user_main"
)
