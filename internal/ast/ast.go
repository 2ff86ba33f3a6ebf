// Package ast defines the statement and expression node family the
// parser builds and the type checker mutates in place.
package ast

import (
	"bytes"
	"strings"

	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a node that produces a value. GetType/SetType expose
// the slot the type checker fills in during its tree walk; every
// expression starts with a nil Type and must have a non-nil one by
// the time checking finishes.
type Expression interface {
	Node
	expressionNode()
	GetType() types.Type
	SetType(types.Type)
	// IsConstant reports whether this expression can be evaluated at
	// compile time. Used to validate global variable initializers.
	IsConstant() bool
}

// Statement is a node that performs an action rather than producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// CompilationUnit is one parsed source file, plus the files it
// transitively pulled in via load/import, expanded into a single
// top-level statement list in inclusion order.
type CompilationUnit struct {
	Path       string
	Statements []Statement
}

func (c *CompilationUnit) TokenLiteral() string {
	if len(c.Statements) > 0 {
		return c.Statements[0].TokenLiteral()
	}
	return ""
}

func (c *CompilationUnit) String() string {
	var out bytes.Buffer
	for _, s := range c.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (c *CompilationUnit) Pos() token.Position {
	if len(c.Statements) > 0 {
		return c.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func joinStrings(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func exprsToNodes(exprs []Expression) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
