package parser

import "github.com/jot-lang/jot/internal/diag"

// abortParse is the sentinel panicked with to unwind parsing of the
// current compilation unit, all the way back to ParseCompilationUnit.
// Unlike a statement-level panic-mode recovery that resynchronizes at
// the next statement boundary, a fatal parse error here means the
// token stream can no longer be trusted to contain recognizable
// structure (an unterminated block, a declaration missing its name),
// so the whole unit is abandoned rather than salvaged piecemeal.
type abortParse struct{}

// fatal reports a Fatal diagnostic at the current token and unwinds
// parsing of the whole compilation unit.
func (p *Parser) fatal(format string, args ...any) {
	p.ctx.Diagnostics.Report(diag.Fatal, p.cur.Pos(), format, args...)
	panic(abortParse{})
}

// errorf reports a non-fatal Error diagnostic at the current token
// without unwinding; parsing continues from wherever the caller
// resumes it.
func (p *Parser) errorf(format string, args ...any) {
	p.ctx.Diagnostics.Report(diag.Error, p.cur.Pos(), format, args...)
}

// warnf reports a Warning diagnostic at the current token.
func (p *Parser) warnf(format string, args ...any) {
	p.ctx.Diagnostics.Report(diag.Warning, p.cur.Pos(), format, args...)
}
