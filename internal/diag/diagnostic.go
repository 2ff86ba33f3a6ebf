// Package diag implements the diagnostic model shared by the parser and
// type checker: an accumulating, ordered list of Diagnostics keyed by
// severity and source location. Rendering a diagnostic with source
// context (caret pointers, color) is a CLI concern and deliberately
// not provided here beyond the one-line Format helper.
package diag

import (
	"fmt"

	"github.com/jot-lang/jot/internal/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal error"
	default:
		return "diagnostic"
	}
}

// Diagnostic is one reported problem, tied to the source position it
// was raised at.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
}

// Format renders a single-line "file:line:col: severity: message" form.
// It takes a path resolver (typically a *source.Manager.Resolve) so it
// never needs to import the source package itself.
func (d Diagnostic) Format(resolvePath func(fileID int) string) string {
	path := resolvePath(d.Pos.File)
	return fmt.Sprintf("%s:%s: %s: %s", path, d.Pos, d.Severity, d.Message)
}

// Engine accumulates Diagnostics in report order and tracks how many
// of each severity have been seen, so callers can cheaply ask "did
// anything go wrong" without rescanning the list.
type Engine struct {
	diagnostics []Diagnostic
	counts      [Fatal + 1]int
}

// NewEngine returns an empty Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Add appends a Diagnostic to the engine.
func (e *Engine) Add(d Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
	e.counts[d.Severity]++
}

// Report is a convenience wrapper around Add.
func (e *Engine) Report(sev Severity, pos token.Position, format string, args ...any) {
	e.Add(Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Diagnostics returns all reported diagnostics, in report order.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diagnostics
}

// Count returns how many diagnostics of severity sev have been
// reported.
func (e *Engine) Count(sev Severity) int {
	return e.counts[sev]
}

// HasErrors reports whether any Error or Fatal diagnostic was
// reported.
func (e *Engine) HasErrors() bool {
	return e.counts[Error] > 0 || e.counts[Fatal] > 0
}

// Reset clears all accumulated diagnostics, for reuse across
// compilation units.
func (e *Engine) Reset() {
	e.diagnostics = e.diagnostics[:0]
	e.counts = [Fatal + 1]int{}
}
