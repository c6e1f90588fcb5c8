// Command dlc is the DataLang compiler front-end: it reads one source file,
// runs it through the lex/parse/analyze/emit pipeline, and writes the
// resulting LLVM textual IR.
//
// Grounded on the teacher's cmd/funxy/main.go manual os.Args dispatch style
// (handleXxx() bool chain, readInputFromArgs, a single runPipeline entry
// point) trimmed to the one thing DataLang's pipeline actually does —
// compile a file to IR — since the teacher's REPL/eval/bytecode-bundle/
// self-contained-binary/module-loader machinery has no DataLang analogue.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datalang/dlc/internal/config"
	"github.com/datalang/dlc/internal/diagnostics"
	"github.com/datalang/dlc/internal/journal"
	"github.com/datalang/dlc/internal/pipeline"
	"github.com/datalang/dlc/internal/report"
)

func handleHelp(args []string) bool {
	if len(args) < 2 {
		return false
	}
	switch args[1] {
	case "-help", "--help", "help":
	default:
		return false
	}
	fmt.Println(usage())
	return true
}

func handleVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	switch args[1] {
	case "-version", "--version", "version":
	default:
		return false
	}
	fmt.Printf("dlc %s\n", config.Version)
	return true
}

func handleHistory(args []string) bool {
	if len(args) < 2 || args[1] != "history" {
		return false
	}
	j, err := journal.Open(journalPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %s\n", err)
		os.Exit(1)
	}
	defer j.Close()

	records, err := j.Recent(context.Background(), 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %s\n", err)
		os.Exit(1)
	}
	for _, r := range records {
		status := "ok"
		if !r.Succeeded {
			status = "failed"
		}
		fmt.Printf("%s  %-8s  %d error(s), %d warning(s)  %s\n",
			r.CompiledAt.Format("2006-01-02 15:04:05"), status, r.ErrorCount, r.WarningCount, r.FilePath)
	}
	return true
}

func usage() string {
	return strings.TrimSpace(`
Usage: dlc <source-file> [-o <output.ll>]
       dlc --check <source-file>
       dlc history
       dlc -version

Compiles a DataLang source file to LLVM textual IR.
With no -o, IR is written to stdout.
--check runs the pipeline and prints diagnostics only, writing no IR;
it exits 0 iff the file has no error-severity diagnostics.
`)
}

func journalPath() string {
	if p := os.Getenv("DLC_JOURNAL"); p != "" {
		return p
	}
	return "dlc.journal.db"
}

// parseArgs extracts the source path, an optional -o output path, and the
// --check flag from a plain, flag-package-free argument list (spec §9
// "ambient CLI"; SPEC_FULL §6 "dlc --check <source>").
func parseArgs(args []string) (sourcePath, outputPath string, checkMode bool, ok bool) {
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return "", "", false, false
			}
			outputPath = args[i+1]
			i++
		case "--check":
			checkMode = true
		default:
			if sourcePath == "" {
				sourcePath = args[i]
			}
		}
	}
	return sourcePath, outputPath, checkMode, sourcePath != ""
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // re-panic to get a stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("DLC_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	args := os.Args
	if handleHelp(args) {
		return
	}
	if handleVersion(args) {
		return
	}
	if handleHistory(args) {
		return
	}

	sourcePath, outputPath, checkMode, ok := parseArgs(args)
	if !ok {
		fmt.Println(usage())
		os.Exit(1)
	}

	projectCfg, err := config.LoadProjectConfig("dlc.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dlc.yaml: %s\n", err)
		os.Exit(1)
	}

	if sourcePath != "-" && !config.HasSourceExt(sourcePath) {
		fmt.Fprintf(os.Stderr, "Error: %s is not a recognized DataLang source file (expected one of %s)\n",
			sourcePath, strings.Join(config.SourceFileExtensions, ", "))
		os.Exit(1)
	}

	src, err := readSource(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", sourcePath, err)
		os.Exit(1)
	}

	printer := report.NewWithColorPreference(os.Stderr, projectCfg.Color)
	printer.Banner(sourcePath)

	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = sourcePath
	ctx = pipeline.Standard().Run(ctx)

	if projectCfg.WarningsAsErrors {
		promoteWarningsToErrors(ctx)
	}

	printer.Diagnostics(ctx.Diags)
	printer.Summary(ctx.Diags)

	errCount, warnCount := countSeverities(ctx)
	if j, err := journal.Open(journalPath()); err == nil {
		_ = j.Append(context.Background(), sourcePath, errCount, warnCount)
		j.Close()
	}

	if ctx.HasErrors() {
		os.Exit(1)
	}

	// --check is a diagnostics-only dev-server mode (SPEC_FULL §5/§6): the
	// pipeline already ran above, so diagnostics are reported; no IR is
	// written and the exit code (already 0 here, since HasErrors is false)
	// is the only other signal it gives.
	if checkMode {
		return
	}

	if outputPath == "" && projectCfg.Output != "" {
		outputPath = projectCfg.Output
	}
	if outputPath == "" {
		fmt.Print(ctx.IR)
		return
	}
	if err := os.WriteFile(outputPath, []byte(ctx.IR), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", outputPath, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
}

// promoteWarningsToErrors applies dlc.yaml's warnings_as_errors setting,
// failing the build on diagnostics that would otherwise just be reported.
func promoteWarningsToErrors(ctx *pipeline.PipelineContext) {
	for i := range ctx.Diags {
		if ctx.Diags[i].Severity == diagnostics.Warning {
			ctx.Diags[i].Severity = diagnostics.Error
		}
	}
}

func countSeverities(ctx *pipeline.PipelineContext) (errors, warnings int) {
	for _, d := range ctx.Diags {
		if d.Severity.String() == "Error" {
			errors++
		} else {
			warnings++
		}
	}
	return
}
