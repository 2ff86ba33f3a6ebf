package cmd

import (
	"fmt"
	"io"

	"github.com/jot-lang/jot/internal/compiler"
)

// reportDiagnostics prints every diagnostic the pipeline has
// accumulated so far, resolving each one's file id back to a path
// through the pipeline's own source.Manager.
func reportDiagnostics(p *compiler.Pipeline, w io.Writer) {
	for _, d := range p.Diagnostics.Diagnostics() {
		fmt.Fprintln(w, d.Format(p.Sources.Resolve))
	}
}
