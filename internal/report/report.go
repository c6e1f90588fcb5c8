// Package report prints a compile's accumulated diagnostics to a terminal,
// banner first.
//
// Grounded on the teacher's internal/evaluator/builtins_term.go color-level
// detection (NO_COLOR, TERM=dumb, COLORTERM truecolor/256color probing via
// github.com/mattn/go-isatty) and, for the compile-session identifier in the
// banner, on github.com/google/uuid the way the fuller funxy fork
// (mcgru/funxy's internal/evaluator/builtins_uuid.go) actually calls it —
// the teacher's own go.mod carries google/uuid only as an indirect/test-
// fixture dependency, never invoked from its own source.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/datalang/dlc/internal/config"
	"github.com/datalang/dlc/internal/diagnostics"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorBold   = "\x1b[1m"
	colorReset  = "\x1b[0m"
)

// supportsColor mirrors the teacher's detectColorLevel NO_COLOR/TERM=dumb/tty
// checks, collapsed to a boolean since the banner only ever needs "some
// color or none".
func supportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes diagnostics and compile banners to an output stream.
type Printer struct {
	Out   io.Writer
	color bool
}

// New creates a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{Out: out, color: supportsColor(out)}
}

// NewWithColorPreference creates a Printer honoring a dlc.yaml "color"
// setting ("always" or "never") that overrides the automatic tty/NO_COLOR
// detection New uses; any other value falls back to that detection.
func NewWithColorPreference(out io.Writer, preference string) *Printer {
	switch preference {
	case "always":
		return &Printer{Out: out, color: true}
	case "never":
		return &Printer{Out: out, color: false}
	default:
		return New(out)
	}
}

// Banner writes the "dlc vX.Y.Z compiling <file>" header. The compile-session
// uuid is omitted under config.IsTestMode so golden fixtures stay
// deterministic.
func (p *Printer) Banner(filePath string) {
	if config.IsTestMode {
		fmt.Fprintf(p.Out, "dlc %s compiling %s\n", config.Version, filePath)
		return
	}
	session := uuid.New()
	fmt.Fprintf(p.Out, "dlc %s compiling %s [session %s]\n", config.Version, filePath, session)
}

// Diagnostics prints every diagnostic in order, colorized by severity when
// the output stream supports it (spec §9 "diagnostic policy").
func (p *Printer) Diagnostics(diags []diagnostics.Diagnostic) {
	for _, d := range diags {
		p.diagnostic(d)
	}
}

func (p *Printer) diagnostic(d diagnostics.Diagnostic) {
	color, reset := "", ""
	if p.color {
		reset = colorReset
		if d.Severity == diagnostics.Error {
			color = colorBold + colorRed
		} else {
			color = colorBold + colorYellow
		}
	}
	fmt.Fprintf(p.Out, "%s%s%s\n", color, d.String(), reset)
	if d.Context != "" {
		fmt.Fprintf(p.Out, "    %s\n", d.Context)
		p.printCaret(d.Column)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(p.Out, "    suggestion: %s\n", d.Suggestion)
	}
}

func (p *Printer) printCaret(column int) {
	if column < 1 {
		return
	}
	pad := make([]byte, column+3)
	for i := range pad {
		pad[i] = ' '
	}
	fmt.Fprintf(p.Out, "%s^\n", pad)
}

// Summary writes a trailing "N error(s), M warning(s)" line.
func (p *Printer) Summary(diags []diagnostics.Diagnostic) {
	errs, warns := 0, 0
	for _, d := range diags {
		if d.Severity == diagnostics.Error {
			errs++
		} else {
			warns++
		}
	}
	fmt.Fprintf(p.Out, "%d error(s), %d warning(s)\n", errs, warns)
}
