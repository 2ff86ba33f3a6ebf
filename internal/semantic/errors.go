package semantic

import (
	"github.com/jot-lang/jot/internal/diag"
	"github.com/jot-lang/jot/internal/token"
)

// abortCheck is the sentinel panicked to unwind checking to the
// compilation-unit boundary on a fatal semantic error, mirroring the
// parser's abortParse.
type abortCheck struct{}

func (c *Checker) fatal(pos token.Position, format string, args ...any) {
	c.ctx.Diagnostics.Report(diag.Fatal, pos, format, args...)
	panic(abortCheck{})
}

func (c *Checker) errorf(pos token.Position, format string, args ...any) {
	c.ctx.Diagnostics.Report(diag.Error, pos, format, args...)
}

func (c *Checker) warnf(pos token.Position, format string, args ...any) {
	c.ctx.Diagnostics.Report(diag.Warning, pos, format, args...)
}
