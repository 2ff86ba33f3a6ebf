package semantic_test

import (
	"testing"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/diag"
	"github.com/jot-lang/jot/internal/lexer"
	"github.com/jot-lang/jot/internal/parser"
	"github.com/jot-lang/jot/internal/semantic"
	"github.com/jot-lang/jot/internal/source"
	"github.com/jot-lang/jot/internal/types"
)

// checkSource parses and then checks input in one shot, returning the
// resulting unit and the Context its diagnostics were reported into.
func checkSource(input string) (*ast.CompilationUnit, *semantic.Context) {
	sources := source.NewManager()
	fileID := sources.Register("test.jot")
	diagnostics := diag.NewEngine()
	ctx := semantic.NewContext(sources, diagnostics)
	l := lexer.New(fileID, input)
	p := parser.New(fileID, l, ctx, nil)
	unit := p.ParseCompilationUnit("test.jot")
	if ctx.Diagnostics.HasErrors() {
		return unit, ctx
	}
	semantic.NewChecker(ctx).Check(unit)
	return unit, ctx
}

func TestCheckVarDeclInfersTypeFromInitializer(t *testing.T) {
	unit, ctx := checkSource(`var x = 5;`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	decl := unit.Statements[0].(*ast.VarDecl)
	if decl.Initializer.GetType() == nil {
		t.Fatalf("initializer type was not resolved")
	}
}

func TestCheckVarDeclTypeMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`var x: int32 = "hello";`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected a diagnostic for a declared/initializer type mismatch")
	}
}

func TestCheckVarDeclNullInfersPointerBase(t *testing.T) {
	unit, ctx := checkSource(`struct Node { value: int32; }
	var n: *Node = null;`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	decl := unit.Statements[1].(*ast.VarDecl)
	null := decl.Initializer.(*ast.NullLiteral)
	nullType := null.GetType().(*types.Null)
	ptr, ok := nullType.Base.(*types.Pointer)
	if !ok {
		t.Fatalf("expected null's base to be inferred to *Node, got %T", nullType.Base)
	}
	if _, ok := ptr.Base.(*types.Struct); !ok {
		t.Fatalf("expected inferred pointer base to be the Node struct, got %T", ptr.Base)
	}
}

func TestCheckGlobalConstantInitializerRequired(t *testing.T) {
	_, ctx := checkSource(`fun one() -> int32 { return 1; }
	var x: int32 = one();`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a non-constant global initializer")
	}
}

func TestCheckFunDeclBindsParamsAndChecksReturn(t *testing.T) {
	_, ctx := checkSource(`fun add(a: int32, b: int32) -> int32 { return a + b; }`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
}

func TestCheckReturnTypeMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun broken() -> int32 { return true; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for returning a bool where int32 is expected")
	}
}

func TestCheckVoidFunctionRejectsReturnValue(t *testing.T) {
	_, ctx := checkSource(`fun log(x: int32) { return x; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error returning a value from a void function")
	}
}

func TestCheckEnumImplicitValues(t *testing.T) {
	unit, ctx := checkSource(`enum Color { Red, Green, Blue }`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	_ = unit
	colorType := ctx.Enums["Color"]
	want := map[string]int64{"Red": 0, "Green": 1, "Blue": 2}
	for name, v := range want {
		if colorType.Values[name] != v {
			t.Fatalf("expected %s = %d, got %d", name, v, colorType.Values[name])
		}
	}
}

func TestCheckEnumMixedExplicitImplicitIsFatal(t *testing.T) {
	_, ctx := checkSource(`enum Flag { On = 1, Off }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for mixing explicit and implicit enum values")
	}
}

func TestCheckEnumDuplicateValueIsFatal(t *testing.T) {
	_, ctx := checkSource(`enum Flag { On = 1, Off = 1 }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for duplicate enum values")
	}
}

func TestCheckEnumInt1MoreThanTwoElementsIsFatal(t *testing.T) {
	_, ctx := checkSource(`enum Tri: int1 { A, B, C }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for an int1 enum with more than two elements")
	}
}

func TestCheckEnumAccessResolvesElement(t *testing.T) {
	unit, ctx := checkSource(`enum Color { Red, Green, Blue }
	fun pick() -> Color { return Color::Green; }`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[1].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	elemType, ok := ret.Value.GetType().(*types.EnumElement)
	if !ok {
		t.Fatalf("expected *types.EnumElement, got %T", ret.Value.GetType())
	}
	if elemType.EnumName != "Color" || elemType.Name != "Green" {
		t.Fatalf("expected Color.Green, got %s.%s", elemType.EnumName, elemType.Name)
	}
}

func TestCheckForEachBindsArrayElementType(t *testing.T) {
	_, ctx := checkSource(`fun sum() -> int32 {
		var xs = [1, 2, 3];
		var total: int32 = 0;
		for x: xs {
			total = total + x;
		}
		return total;
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
}

func TestCheckForRangeRequiresMatchingBoundTypes(t *testing.T) {
	_, ctx := checkSource(`fun f() {
		for i: 0..10 {
		}
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
}

func TestCheckBreakOutsideLoopIsError(t *testing.T) {
	_, ctx := checkSource(`fun f() { break; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for break outside of a loop")
	}
}

func TestCheckBreakLevelExceedingDepthIsError(t *testing.T) {
	_, ctx := checkSource(`fun f() {
		for {
			break 2;
		}
	}`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a break level exceeding loop nesting depth")
	}
}

func TestCheckSwitchDuplicateCaseValueIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun f(x: int32) {
		switch x {
			case 1:
			case 1:
		}
	}`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a duplicate switch case value")
	}
}

func TestCheckCallArgumentCountMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun add(a: int32, b: int32) -> int32 { return a + b; }
	fun use() -> int32 { return add(1); }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a call with too few arguments")
	}
}

func TestCheckCallNullArgumentInfersPointerParam(t *testing.T) {
	unit, ctx := checkSource(`struct Node { value: int32; }
	fun use(n: *Node) { }
	fun caller() { use(null); }`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	caller := unit.Statements[2].(*ast.FunDecl)
	exprStmt := caller.Body.Statements[0].(*ast.ExpressionStatement)
	call := exprStmt.Expression.(*ast.Call)
	null := call.Args[0].(*ast.NullLiteral)
	if _, ok := null.GetType().(*types.Null).Base.(*types.Pointer); !ok {
		t.Fatalf("expected the null argument's base to be inferred to a pointer type")
	}
}

func TestCheckInitializeExprArgumentCountMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`struct Point { x: int32; y: int32; }
	fun f() { var p = Point{1}; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for an initializer with too few arguments")
	}
}

func TestCheckInitializeExprFieldTypeMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`struct Point { x: int32; y: int32; }
	fun f() { var p = Point{1, true}; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for an initializer argument type not matching its field")
	}
}

func TestCheckDotFillsFieldIndex(t *testing.T) {
	unit, ctx := checkSource(`struct Point { x: int32; y: int32; }
	fun f() -> int32 {
		var p = Point{1, 2};
		return p.y;
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[1].(*ast.FunDecl)
	ret := fn.Body.Statements[1].(*ast.Return)
	dot := ret.Value.(*ast.Dot)
	if dot.FieldIndex != 1 {
		t.Fatalf("expected field index 1 for y, got %d", dot.FieldIndex)
	}
}

func TestCheckIfExprBranchTypeMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun f() -> int32 {
		return if 1 10 else true;
	}`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for if-expression branches with differing types")
	}
}

func TestCheckIfExprResolvesToSharedBranchType(t *testing.T) {
	unit, ctx := checkSource(`fun f() -> int32 {
		return if 1 10 else 20;
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	ifExpr := ret.Value.(*ast.IfExpr)
	if _, ok := ifExpr.GetType().(*types.Number); !ok {
		t.Fatalf("expected the if-expression's type to resolve to a number, got %T", ifExpr.GetType())
	}
}

func TestCheckSwitchExprMissingDefaultIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun f() -> int32 {
		return switch 1 { 1 -> 10; 2 -> 20; };
	}`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf(`expected a "Switch expression must has a default case" diagnostic`)
	}
}

func TestCheckSwitchExprBranchTypeMismatchIsFatal(t *testing.T) {
	_, ctx := checkSource(`fun f() -> int32 {
		return switch 1 { 1 -> 10; else -> true; };
	}`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for a switch-expression default not matching its case type")
	}
}

func TestCheckSwitchExprWithDefaultResolvesType(t *testing.T) {
	unit, ctx := checkSource(`fun f() -> int32 {
		return switch 1 { 1 -> 10; 2 -> 20; else -> 0; };
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	switchExpr := ret.Value.(*ast.SwitchExpr)
	if _, ok := switchExpr.GetType().(*types.Number); !ok {
		t.Fatalf("expected the switch-expression's type to resolve to a number, got %T", switchExpr.GetType())
	}
}

func TestCheckLambdaCarriesPointerToFunctionType(t *testing.T) {
	unit, ctx := checkSource(`fun f() {
		var add = { (a: int32, b: int32) int32 -> return a + b; };
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
	fn := unit.Statements[0].(*ast.FunDecl)
	decl := fn.Body.Statements[0].(*ast.VarDecl)
	ptr, ok := decl.Initializer.GetType().(*types.Pointer)
	if !ok {
		t.Fatalf("expected the lambda's type to be a pointer, got %T", decl.Initializer.GetType())
	}
	if _, ok := ptr.Base.(*types.Function); !ok {
		t.Fatalf("expected the pointer's base to be a function type, got %T", ptr.Base)
	}
}

func TestCheckLambdaCapturesEnclosingScope(t *testing.T) {
	_, ctx := checkSource(`fun f() {
		var total: int32 = 0;
		var add = { (x: int32) int32 -> return total + x; };
	}`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ctx.Diagnostics.Diagnostics())
	}
}
