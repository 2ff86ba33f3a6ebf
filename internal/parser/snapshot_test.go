package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestParseCompilationUnitSnapshot snapshots the printed form of a
// representative program's AST, the way the teacher's fixture suite
// snapshots interpreter output, so a grammar regression shows up as a
// diff against a committed string instead of a handwritten assertion
// for every node shape.
func TestParseCompilationUnitSnapshot(t *testing.T) {
	p, ctx := newTestParser(`struct Point {
		x: int32;
		y: int32;
	}

	enum Color: int8 {
		Red, Green, Blue
	}

	fun distance(a: Point, b: Point) -> int32 {
		var dx: int32 = a.x - b.x;
		return dx;
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}

	snaps.MatchSnapshot(t, unit.String())
}
