// Package diagnostics defines the plain diagnostic value shared by every
// compiler phase. Grounded on the teacher's cmd/lsp/diagnostics.go
// DiagnosticError{Token, Code, File} shape, trimmed to what spec.md's
// Diagnostic record needs and stripped of the LSP-protocol bits.
package diagnostics

import "fmt"

// Severity distinguishes an error (fails the compile) from a warning
// (reported but does not fail it).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "Aviso"
	}
	return "Error"
}

// Diagnostic is a single reported problem: severity, source position, a
// human-readable message, and optional context for display.
type Diagnostic struct {
	Severity   Severity
	Line       int
	Column     int
	Message    string
	Lexeme     string // the offending lexeme, shown as "near '...'"
	Context    string // the full source line, for caret display
	Suggestion string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s [line %d, column %d]: %s", d.Severity, d.Line, d.Column, d.Message)
	if d.Lexeme != "" {
		s += fmt.Sprintf(" near '%s'", d.Lexeme)
	}
	return s
}

// Bag collects diagnostics for one compiler phase.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Errorf(line, col int, lexeme, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Error, Line: line, Column: col, Lexeme: lexeme, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) Warnf(line, col int, lexeme, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Warning, Line: line, Column: col, Lexeme: lexeme, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.items {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

func (b *Bag) WarningCount() int {
	n := 0
	for _, d := range b.items {
		if d.Severity == Warning {
			n++
		}
	}
	return n
}
