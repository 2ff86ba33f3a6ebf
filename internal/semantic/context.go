// Package semantic implements the Context shared across one
// compilation, its scoped Symbol Table, and the tree-walking type
// checker that mutates the AST's type slots in place.
package semantic

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/diag"
	"github.com/jot-lang/jot/internal/source"
	"github.com/jot-lang/jot/internal/types"
)

// Context is the single piece of state threaded through parsing and
// checking for one compilation: the registered struct/enum/alias
// declarations, the fixity table the parser consults to rewrite call
// syntax, and the shared diagnostic sink.
type Context struct {
	Sources     *source.Manager
	Diagnostics *diag.Engine
	Aliases     *types.AliasTable

	Structs       map[string]*types.Struct
	Enums         map[string]*types.Enum
	TypeAliases   map[string]types.Type
	Functions     map[string]*ast.FunDecl
	Fixity        map[string]ast.Fixity

	// CurrentStructUnknownFields counts the *Self pointer placeholders
	// emitted for the struct currently being parsed; the parser's
	// self-reference patch must bring it back to exactly zero once the
	// struct's own type exists.
	CurrentStructUnknownFields int
}

// NewContext returns an empty Context wired to the given source
// manager and diagnostic sink, with the built-in primitive alias
// table populated.
func NewContext(sources *source.Manager, diagnostics *diag.Engine) *Context {
	return &Context{
		Sources:     sources,
		Diagnostics: diagnostics,
		Aliases:     types.NewAliasTable(),
		Structs:     make(map[string]*types.Struct),
		Enums:       make(map[string]*types.Enum),
		TypeAliases: make(map[string]types.Type),
		Functions:   make(map[string]*ast.FunDecl),
		Fixity:      make(map[string]ast.Fixity),
	}
}

// LookupType resolves a bare type name against structs, enums, and
// type aliases declared so far, in that order.
func (c *Context) LookupType(name string) (types.Type, bool) {
	if s, ok := c.Structs[name]; ok {
		return s, true
	}
	if e, ok := c.Enums[name]; ok {
		return e, true
	}
	if t, ok := c.TypeAliases[name]; ok {
		return t, true
	}
	return nil, false
}

// RegisterFixity records how a user-declared function may be called.
func (c *Context) RegisterFixity(name string, fixity ast.Fixity) {
	c.Fixity[name] = fixity
}

// FixityOf returns the recorded call-syntax role for name, or
// ast.FixityNone if it was never declared with prefix/infix/postfix.
func (c *Context) FixityOf(name string) ast.Fixity {
	return c.Fixity[name]
}
