// Package backend defines the boundary between a checked compilation
// unit and whatever turns it into machine code. An actual LLVM-based
// emitter lives outside this module; Stub exists so the pipeline and
// its CLI are real and driveable end to end.
package backend

import (
	"fmt"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/semantic"
)

// Emitter consumes a fully type-checked compilation unit and produces
// whatever target artifact it is responsible for. ctx gives access to
// the struct/enum/function declarations the unit depends on.
type Emitter interface {
	EmitModule(unit *ast.CompilationUnit, ctx *semantic.Context) error
}

// Stub is an Emitter that performs no code generation. It exists so
// `jot compile` has a concrete, callable backend to wire without
// pulling in an actual code generator.
type Stub struct{}

func (Stub) EmitModule(unit *ast.CompilationUnit, ctx *semantic.Context) error {
	return fmt.Errorf("jot: native code generation is not part of this build (%d top-level statements checked, 0 emitted)", len(unit.Statements))
}
