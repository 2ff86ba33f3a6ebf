package ast_test

import (
	"testing"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

func TestIdentifierString(t *testing.T) {
	id := &ast.Identifier{Value: "x"}
	if id.String() != "x" {
		t.Fatalf("expected %q, got %q", "x", id.String())
	}
}

func TestBinaryString(t *testing.T) {
	b := &ast.Binary{
		Left:     &ast.Identifier{Value: "a"},
		Operator: "+",
		Right:    &ast.Identifier{Value: "b"},
	}
	if b.String() != "(a + b)" {
		t.Fatalf("expected %q, got %q", "(a + b)", b.String())
	}
}

func TestForEachStringUsesColonForm(t *testing.T) {
	f := &ast.ForEach{
		Var:        "x",
		Collection: &ast.Identifier{Value: "xs"},
		Body:       &ast.Block{},
	}
	want := "for x: xs "
	if got := f.String(); got[:len(want)] != want {
		t.Fatalf("expected ForEach.String() to start with %q, got %q", want, got)
	}
}

func TestEnumAccessString(t *testing.T) {
	ea := &ast.EnumAccess{EnumName: "Color", ElementName: "Green"}
	if ea.String() != "Color::Green" {
		t.Fatalf("expected %q, got %q", "Color::Green", ea.String())
	}
	if !ea.IsConstant() {
		t.Fatalf("expected an enum access to be constant")
	}
}

func TestDotDefaultFieldIndex(t *testing.T) {
	d := &ast.Dot{Receiver: &ast.Identifier{Value: "p"}, Field: "x", FieldIndex: -1}
	if d.FieldIndex != -1 {
		t.Fatalf("expected a freshly parsed Dot to carry FieldIndex -1, got %d", d.FieldIndex)
	}
}

func TestFixityString(t *testing.T) {
	cases := map[ast.Fixity]string{
		ast.FixityNone:    "none",
		ast.FixityPrefix:  "prefix",
		ast.FixityInfix:   "infix",
		ast.FixityPostfix: "postfix",
	}
	for fixity, want := range cases {
		if got := fixity.String(); got != want {
			t.Fatalf("expected %v to stringify to %q, got %q", fixity, want, got)
		}
	}
}

func TestArrayLiteralIsConstantRequiresAllElementsConstant(t *testing.T) {
	constArr := &ast.ArrayLiteral{Elements: []ast.Expression{
		&ast.IntegerLiteral{Value: 1},
		&ast.IntegerLiteral{Value: 2},
	}}
	if !constArr.IsConstant() {
		t.Fatalf("expected an all-literal array to be constant")
	}

	nonConstArr := &ast.ArrayLiteral{Elements: []ast.Expression{
		&ast.IntegerLiteral{Value: 1},
		&ast.Identifier{Value: "x"},
	}}
	if nonConstArr.IsConstant() {
		t.Fatalf("expected an array containing an identifier not to be constant")
	}
}

func TestTypedExprGetSetType(t *testing.T) {
	id := &ast.Identifier{Value: "x"}
	if id.GetType() != nil {
		t.Fatalf("expected a freshly parsed identifier's type to be nil")
	}
	i32 := &types.Number{NumKind: types.Int32}
	id.SetType(i32)
	if id.GetType() != types.Type(i32) {
		t.Fatalf("expected GetType to return the type set by SetType")
	}
}

func TestCompilationUnitPosFallsBackWhenEmpty(t *testing.T) {
	unit := &ast.CompilationUnit{}
	pos := unit.Pos()
	if pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("expected an empty unit's Pos to default to 1:1, got %s", pos)
	}
	_ = token.Position{}
}
