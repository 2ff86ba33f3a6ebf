package parser

import (
	"testing"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/diag"
	"github.com/jot-lang/jot/internal/lexer"
	"github.com/jot-lang/jot/internal/semantic"
	"github.com/jot-lang/jot/internal/source"
	"github.com/jot-lang/jot/internal/types"
)

func newTestParser(input string) (*Parser, *semantic.Context) {
	sources := source.NewManager()
	fileID := sources.Register("test.jot")
	diagnostics := diag.NewEngine()
	ctx := semantic.NewContext(sources, diagnostics)
	l := lexer.New(fileID, input)
	return New(fileID, l, ctx, nil), ctx
}

func TestParseVarDeclWithTypeAndInitializer(t *testing.T) {
	p, _ := newTestParser(`var x: int32 = 5;`)
	unit := p.ParseCompilationUnit("test.jot")

	if len(unit.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(unit.Statements))
	}
	decl, ok := unit.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", unit.Statements[0])
	}
	if decl.Name != "x" {
		t.Fatalf("expected name x, got %s", decl.Name)
	}
	if _, ok := decl.Declared.(*types.Number); !ok {
		t.Fatalf("expected declared type *types.Number, got %T", decl.Declared)
	}
	if _, ok := decl.Initializer.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected integer literal initializer, got %T", decl.Initializer)
	}
}

func TestParseStructSelfReference(t *testing.T) {
	p, ctx := newTestParser(`struct Node {
		value: int32;
		next: *Node;
	}`)
	unit := p.ParseCompilationUnit("test.jot")

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	if ctx.CurrentStructUnknownFields != 0 {
		t.Fatalf("self-reference patch left %d unresolved field(s)", ctx.CurrentStructUnknownFields)
	}

	decl, ok := unit.Statements[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", unit.Statements[0])
	}

	nodeType, ok := ctx.Structs["Node"]
	if !ok {
		t.Fatalf("Node was not registered in the context")
	}

	nextField := decl.Fields[1]
	ptr, ok := nextField.Type.(*types.Pointer)
	if !ok {
		t.Fatalf("expected next field to be a pointer, got %T", nextField.Type)
	}
	if ptr.Base != types.Type(nodeType) {
		t.Fatalf("self-reference pointer was not patched to the Node struct type")
	}
}

func TestParseGenericStructInstantiation(t *testing.T) {
	p, ctx := newTestParser(`struct Box<T> {
		value: T;
	}
	var b: Box<int32>;`)
	unit := p.ParseCompilationUnit("test.jot")

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}

	decl, ok := unit.Statements[1].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", unit.Statements[1])
	}
	generic, ok := decl.Declared.(*types.GenericStruct)
	if !ok {
		t.Fatalf("expected *types.GenericStruct, got %T", decl.Declared)
	}
	if generic.Base.Name != "Box" || len(generic.TypeArgs) != 1 {
		t.Fatalf("unexpected generic instantiation: %+v", generic)
	}
}

func TestParseGenericArityMismatchIsFatal(t *testing.T) {
	p, ctx := newTestParser(`struct Pair<A, B> { a: A; b: B; }
	var p: Pair<int32>;`)
	p.ParseCompilationUnit("test.jot")

	if ctx.Diagnostics.Count(diag.Fatal) == 0 {
		t.Fatalf("expected a fatal diagnostic for the arity mismatch")
	}
}

func TestParseCompoundAssignDesugars(t *testing.T) {
	p, _ := newTestParser(`fun f() { var x: int32 = 1; x += 2; }`)
	unit := p.ParseCompilationUnit("test.jot")

	fn := unit.Statements[0].(*ast.FunDecl)
	stmt := fn.Body.Statements[1].(*ast.ExpressionStatement)
	assign, ok := stmt.Expression.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt.Expression)
	}
	bin, ok := assign.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("expected desugared *ast.Binary, got %T", assign.Value)
	}
	if bin.Operator != "+" {
		t.Fatalf("expected desugared operator '+', got %q", bin.Operator)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	p, ctx := newTestParser(`fun f(x: int32) -> int32 {
		if x == 1 {
			return 1;
		} else if x == 2 {
			return 2;
		} else {
			return 0;
		}
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}

	fn := unit.Statements[0].(*ast.FunDecl)
	ifStmt, ok := fn.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body.Statements[0])
	}
	elseIf, ok := ifStmt.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected else-if to be *ast.If, got %T", ifStmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("expected final else to be *ast.Block, got %T", elseIf.Else)
	}
}

func TestParseForEachOverArray(t *testing.T) {
	p, ctx := newTestParser(`fun f(xs: [3]int32) {
		for x: xs {
			value_size(x);
		}
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	if _, ok := fn.Body.Statements[0].(*ast.ForEach); !ok {
		t.Fatalf("expected *ast.ForEach, got %T", fn.Body.Statements[0])
	}
}

func TestParseCastExpression(t *testing.T) {
	p, ctx := newTestParser(`fun f(x: int32) -> *void {
		return cast(*void) x;
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	cast, ok := ret.Value.(*ast.Cast)
	if !ok {
		t.Fatalf("expected *ast.Cast, got %T", ret.Value)
	}
	if _, ok := cast.TargetType.(*types.Pointer); !ok {
		t.Fatalf("expected cast target *void pointer, got %T", cast.TargetType)
	}
}

func TestParsePrefixFunctionFixity(t *testing.T) {
	p, ctx := newTestParser(`prefix fun negate(x: int32) -> int32 { return 0 - x; }`)
	p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	if ctx.FixityOf("negate") != ast.FixityPrefix {
		t.Fatalf("expected negate to be registered with prefix fixity")
	}
}

func TestParseInfixAndPostfixFunctionCalls(t *testing.T) {
	p, ctx := newTestParser(`infix fun plus(a: int32, b: int32) -> int32 { return a + b; }
	postfix fun doubled(a: int32) -> int32 { return a * 2; }
	fun f(x: int32, y: int32) -> int32 { return x plus y doubled; }`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}

	// Postfix-call binds tighter than infix-call, so `y doubled` groups
	// first: plus(x, doubled(y)).
	fn := unit.Statements[2].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	outer, ok := ret.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer *ast.Call, got %T", ret.Value)
	}
	outerCallee := outer.Callee.(*ast.Identifier)
	if outerCallee.Value != "plus" || len(outer.Args) != 2 {
		t.Fatalf("expected infix call to plus with 2 args, got %+v", outer)
	}
	inner, ok := outer.Args[1].(*ast.Call)
	if !ok {
		t.Fatalf("expected inner *ast.Call, got %T", outer.Args[1])
	}
	innerCallee := inner.Callee.(*ast.Identifier)
	if innerCallee.Value != "doubled" || len(inner.Args) != 1 {
		t.Fatalf("expected postfix call to doubled with 1 arg, got %+v", inner)
	}
}

func TestParseEnumDecl(t *testing.T) {
	p, ctx := newTestParser(`enum Color { Red, Green, Blue }`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	decl := unit.Statements[0].(*ast.EnumDecl)
	if len(decl.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(decl.Elements))
	}
	if _, ok := ctx.Enums["Color"]; !ok {
		t.Fatalf("Color was not registered in the context")
	}
}

func TestParseEnumWithExplicitUnderlyingType(t *testing.T) {
	p, ctx := newTestParser(`enum Flag: int8 { On = 1, Off = 0 }`)
	p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	flag := ctx.Enums["Flag"]
	if flag.Element.NumKind != types.Int8 {
		t.Fatalf("expected int8 underlying type, got %s", flag.Element)
	}
}

func TestParseEnumAccess(t *testing.T) {
	p, ctx := newTestParser(`enum Color { Red, Green, Blue }
	fun f() -> Color { return Color::Green; }`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[1].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	access, ok := ret.Value.(*ast.EnumAccess)
	if !ok {
		t.Fatalf("expected *ast.EnumAccess, got %T", ret.Value)
	}
	if access.EnumName != "Color" || access.ElementName != "Green" {
		t.Fatalf("unexpected enum access: %+v", access)
	}
}

func TestParseForRangeAndForever(t *testing.T) {
	p, ctx := newTestParser(`fun f() {
		for i: 0..10 {
			continue;
		}
		for {
			break;
		}
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	rangeStmt, ok := fn.Body.Statements[0].(*ast.ForRange)
	if !ok {
		t.Fatalf("expected *ast.ForRange, got %T", fn.Body.Statements[0])
	}
	if rangeStmt.Var != "i" {
		t.Fatalf("expected range variable %q, got %q", "i", rangeStmt.Var)
	}
	if _, ok := fn.Body.Statements[1].(*ast.Forever); !ok {
		t.Fatalf("expected *ast.Forever, got %T", fn.Body.Statements[1])
	}
}

func TestParseBreakWithRedundantLevel(t *testing.T) {
	p, ctx := newTestParser(`fun f() {
		for {
			break 1;
		}
	}`)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	forever := fn.Body.Statements[0].(*ast.Forever)
	brk := forever.Body.Statements[0].(*ast.Break)
	if brk.Level == nil || brk.Level.Value != 1 {
		t.Fatalf("expected break level 1, got %+v", brk.Level)
	}
}
