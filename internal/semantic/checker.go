package semantic

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/types"
)

// Checker walks a CompilationUnit depth-first, resolving and mutating
// every expression's type slot in place, the same mutate-in-place
// contract as the parser's self-reference patch. A fatal error
// unwinds to Check's boundary via abortCheck, leaving whatever was
// already resolved as a best-effort result.
type Checker struct {
	ctx   *Context
	scope *SymbolTable

	// returnTypeStack tracks the return type of the function currently
	// being checked, so a nested Return statement can validate against
	// it without threading it through every statement visit.
	returnTypeStack []types.Type

	// loopDepth counts enclosing Forever/ForEach/ForRange/While loops,
	// so Break/Continue can validate an explicit level against it.
	loopDepth int
}

// NewChecker returns a Checker operating over ctx's global scope.
func NewChecker(ctx *Context) *Checker {
	return &Checker{ctx: ctx, scope: NewSymbolTable()}
}

// Check type-checks every top-level statement in unit, mutating its
// AST in place. It recovers from a fatal abort so a caller always gets
// back whatever diagnostics were reported rather than a panic.
func (c *Checker) Check(unit *ast.CompilationUnit) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortCheck); !ok {
				panic(r)
			}
		}
	}()

	for _, stmt := range unit.Statements {
		c.checkTopLevel(stmt)
	}
}

func (c *Checker) checkTopLevel(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s, true)
	case *ast.FunDecl:
		c.checkFunDecl(s)
	case *ast.EnumDecl:
		c.checkEnumDecl(s)
	case *ast.StructDecl, *ast.TypeAliasDecl, *ast.Load, *ast.Import:
		// Already fully registered into the Context by the parser;
		// nothing further to resolve at the type level.
	default:
		c.checkStatement(stmt)
	}
}

func (c *Checker) checkBlock(block *ast.Block) {
	outer := c.scope
	c.scope = NewEnclosedSymbolTable(outer)
	for _, stmt := range block.Statements {
		c.checkStatement(stmt)
	}
	c.scope = outer
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s, false)
	case *ast.EnumDecl:
		c.checkEnumDecl(s)
	case *ast.TypeAliasDecl, *ast.StructDecl:
		// Registered into the Context at parse time; nothing further
		// to check.
	case *ast.ExpressionStatement:
		if s.Expression != nil {
			c.checkExpression(s.Expression)
		}
	case *ast.Block:
		c.checkBlock(s)
	case *ast.If:
		c.checkIf(s)
	case *ast.While:
		c.checkWhile(s)
	case *ast.Forever:
		c.checkForever(s)
	case *ast.ForEach:
		c.checkForEach(s)
	case *ast.ForRange:
		c.checkForRange(s)
	case *ast.Switch:
		c.checkSwitch(s)
	case *ast.Return:
		c.checkReturn(s)
	case *ast.Break:
		c.checkBreak(s)
	case *ast.Continue:
		c.checkContinue(s)
	case *ast.Defer:
		c.checkDefer(s)
	default:
		c.fatal(stmt.Pos(), "internal error: unchecked statement type %T", stmt)
	}
}

// checkVarDecl implements the FieldDeclaration rules: a present
// declared type and initializer must agree (with Null-to-Pointer
// inference), a missing declared type is inferred from the
// initializer, and a global's initializer must be compile-time
// constant. Redefinition in the current scope is fatal.
func (c *Checker) checkVarDecl(v *ast.VarDecl, isGlobal bool) {
	declaredType := v.Declared
	var initType types.Type
	if v.Initializer != nil {
		initType = c.checkExpression(v.Initializer)
	}

	switch {
	case declaredType != nil && initType != nil:
		if nullType, ok := initType.(*types.Null); ok {
			ptr, isPtr := declaredType.(*types.Pointer)
			if !isPtr {
				c.fatal(v.Pos(), "cannot initialize non-pointer variable %q with null", v.Name)
			}
			types.InferNullBase(nullType, ptr)
		} else if !types.Equals(declaredType, initType) {
			c.fatal(v.Pos(), "variable %q declared as %s but initialized with %s", v.Name, declaredType, initType)
		}
	case declaredType == nil:
		declaredType = initType
	}

	if isGlobal && v.Initializer != nil && !v.Initializer.IsConstant() {
		c.errorf(v.Pos(), "global variable %q must have a compile-time constant initializer", v.Name)
	}

	if _, exists := c.scope.ResolveLocal(v.Name); exists {
		c.fatal(v.Pos(), "%q is already declared in this scope", v.Name)
	}
	c.scope.Define(v.Name, declaredType)
}

// checkFunDecl builds the function's Function type (the FunDecl itself
// is already recorded into Context.Functions by the parser), defines its name in the
// enclosing scope, and — for a function with a body — opens a new
// scope with each parameter bound, pushes the return type, checks the
// body, and pops.
func (c *Checker) checkFunDecl(f *ast.FunDecl) {
	paramTypes := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		paramTypes[i] = p.Type
	}
	fnType := &types.Function{
		Parameters:     paramTypes,
		Return:         f.Return,
		Varargs:        f.Varargs,
		VarargsElement: f.VarargsElement,
	}
	if _, exists := c.scope.ResolveLocal(f.Name); !exists {
		c.scope.DefineReadOnly(f.Name, fnType)
	}

	if f.Body == nil {
		return
	}

	outer := c.scope
	c.scope = NewEnclosedSymbolTable(outer)
	for _, p := range f.Params {
		c.scope.Define(p.Name, p.Type)
	}

	c.returnTypeStack = append(c.returnTypeStack, f.Return)
	for _, stmt := range f.Body.Statements {
		c.checkStatement(stmt)
	}
	c.returnTypeStack = c.returnTypeStack[:len(c.returnTypeStack)-1]

	c.scope = outer
}

// checkEnumDecl resolves each element to a concrete integer value
// (explicit literal or implicit successor), rejecting a declaration
// that mixes the two styles, duplicate values, and an int1 underlying
// type with more than two elements.
func (c *Checker) checkEnumDecl(e *ast.EnumDecl) {
	enumType, ok := c.ctx.Enums[e.Name]
	if !ok {
		c.fatal(e.Pos(), "internal error: enum %q was not registered during parsing", e.Name)
	}
	enumType.Values = make(map[string]int64, len(e.Elements))

	hasExplicit, hasImplicit := false, false
	seen := make(map[int64]string, len(e.Elements))
	next := int64(0)

	for i, name := range e.Elements {
		value := next
		if valueExpr := e.Values[i]; valueExpr != nil {
			hasExplicit = true
			lit, ok := valueExpr.(*ast.IntegerLiteral)
			if !ok {
				c.fatal(valueExpr.Pos(), "enum %q element %q: explicit value must be an integer literal", e.Name, name)
			}
			value = lit.Value
		} else {
			hasImplicit = true
		}

		if other, dup := seen[value]; dup {
			c.fatal(e.Pos(), "enum %q: elements %q and %q share value %d", e.Name, other, name, value)
		}
		seen[value] = name
		enumType.Values[name] = value
		next = value + 1
	}

	if hasExplicit && hasImplicit {
		c.fatal(e.Pos(), "enum %q must assign explicit values to either all elements or none", e.Name)
	}
	if enumType.Element.NumKind == types.Int1 && len(e.Elements) > 2 {
		c.fatal(e.Pos(), "enum %q has an int1 underlying type, which permits at most two elements", e.Name)
	}
}
