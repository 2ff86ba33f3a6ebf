package semantic

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/types"
)

func isNumber(t types.Type) bool {
	_, ok := t.(*types.Number)
	return ok
}

func isIntegerNumber(t types.Type) bool {
	n, ok := t.(*types.Number)
	return ok && !n.NumKind.IsFloat()
}

// checkExpression resolves e's type, storing it into e's own Type
// slot via SetType before returning it. A node visited again (e.g. a
// subtree shared by a desugared compound assignment) is resolved
// again from scratch; the stored type is not consulted.
func (c *Checker) checkExpression(e ast.Expression) types.Type {
	t := c.resolveExpression(e)
	e.SetType(t)
	return t
}

func (c *Checker) resolveExpression(e ast.Expression) types.Type {
	switch expr := e.(type) {
	case *ast.Identifier:
		return c.checkIdentifier(expr)
	case *ast.IntegerLiteral:
		return &types.Number{NumKind: types.Int32}
	case *ast.FloatLiteral:
		return &types.Number{NumKind: types.Float64}
	case *ast.StringLiteral:
		return &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	case *ast.CharLiteral:
		return &types.Number{NumKind: types.UInt8}
	case *ast.BoolLiteral:
		return &types.Number{NumKind: types.Int1}
	case *ast.NullLiteral:
		return &types.Null{Base: &types.None{}}
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(expr)
	case *ast.InitializeExpr:
		return c.checkInitializeExpr(expr)
	case *ast.IfExpr:
		return c.checkIfExpr(expr)
	case *ast.SwitchExpr:
		return c.checkSwitchExpr(expr)
	case *ast.Lambda:
		return c.checkLambda(expr)
	case *ast.Unary:
		return c.checkUnary(expr)
	case *ast.IncDec:
		return c.checkIncDec(expr)
	case *ast.Binary:
		return c.checkBinary(expr)
	case *ast.Shift:
		return c.checkShift(expr)
	case *ast.Comparison:
		return c.checkComparison(expr)
	case *ast.Logical:
		return c.checkLogical(expr)
	case *ast.Assign:
		return c.checkAssign(expr)
	case *ast.Call:
		return c.checkCall(expr)
	case *ast.Dot:
		return c.checkDot(expr)
	case *ast.Index:
		return c.checkIndex(expr)
	case *ast.Cast:
		return c.checkCast(expr)
	case *ast.TypeSize:
		return &types.Number{NumKind: types.UInt64}
	case *ast.ValueSize:
		c.checkExpression(expr.Value)
		return &types.Number{NumKind: types.UInt64}
	case *ast.EnumAccess:
		return c.checkEnumAccess(expr)
	case *ast.Grouped:
		return c.checkExpression(expr.Inner)
	default:
		c.fatal(e.Pos(), "internal error: unchecked expression type %T", e)
		return &types.Void{}
	}
}

func (c *Checker) checkIdentifier(id *ast.Identifier) types.Type {
	if sym, ok := c.scope.Resolve(id.Value); ok {
		return sym.Type
	}
	if fn, ok := c.ctx.Functions[id.Value]; ok {
		paramTypes := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
		}
		return &types.Function{
			Parameters:     paramTypes,
			Return:         fn.Return,
			Varargs:        fn.Varargs,
			VarargsElement: fn.VarargsElement,
		}
	}
	c.fatal(id.Pos(), "undefined name %q", id.Value)
	return &types.Void{}
}

func (c *Checker) checkArrayLiteral(l *ast.ArrayLiteral) types.Type {
	if len(l.Elements) == 0 {
		c.fatal(l.Pos(), "array literal must have at least one element to infer its element type")
	}
	elemType := c.checkExpression(l.Elements[0])
	for _, el := range l.Elements[1:] {
		t := c.checkExpression(el)
		if !types.Equals(t, elemType) {
			c.fatal(el.Pos(), "array literal element type %s does not match earlier element type %s", t, elemType)
		}
	}
	return &types.Array{Element: elemType, Size: len(l.Elements)}
}

// checkInitializeExpr matches each positional argument against the
// declared struct's fields in declaration order, with the same arity
// and type-matching rules as a non-varargs Call.
func (c *Checker) checkInitializeExpr(i *ast.InitializeExpr) types.Type {
	st, ok := c.ctx.Structs[i.Name]
	if !ok {
		c.fatal(i.Pos(), "undefined struct %q", i.Name)
	}
	if len(i.Args) != len(st.Fields) {
		c.fatal(i.Pos(), "struct %q initializer expects %d arguments, got %d", i.Name, len(st.Fields), len(i.Args))
	}
	for idx, arg := range i.Args {
		argType := c.checkExpression(arg)
		matchParameter(c, arg, argType, st.Fields[idx].Type)
	}
	return st
}

// checkIfExpr requires a number condition and both branches to share
// one type, which becomes the expression's own type.
func (c *Checker) checkIfExpr(e *ast.IfExpr) types.Type {
	condType := c.checkExpression(e.Condition)
	if !isNumber(condType) {
		c.fatal(e.Condition.Pos(), "if expression condition must be a number, got %s", condType)
	}
	thenType := c.checkExpression(e.Then)
	elseType := c.checkExpression(e.Else)
	if !types.Equals(thenType, elseType) {
		c.fatal(e.Pos(), "if expression branches must share one type, expected %s but got %s", thenType, elseType)
	}
	return thenType
}

// checkSwitchExpr requires every case value to match the argument's
// type, every case result and the default arm to share one type, and
// a default arm to be present; a missing default is fatal since the
// expression must always produce a value.
func (c *Checker) checkSwitchExpr(s *ast.SwitchExpr) types.Type {
	argType := c.checkExpression(s.Value)
	_, isEnumElem := argType.(*types.EnumElement)
	if !isIntegerNumber(argType) && !isEnumElem {
		c.fatal(s.Value.Pos(), "switch argument must be an integer or enum value, got %s", argType)
	}

	if len(s.Cases) == 0 {
		c.fatal(s.Pos(), "switch expression must have at least one case and a default case")
	}

	seen := make(map[string]bool)
	for i, cs := range s.Cases {
		for _, v := range cs.Values {
			valType := c.checkExpression(v)
			if !types.Equals(valType, argType) {
				c.fatal(v.Pos(), "switch case type must match argument type %s but got %s in case number %d", argType, valType, i+1)
			}
			key := v.String()
			if seen[key] {
				c.fatal(v.Pos(), "duplicate switch case value %s", key)
			}
			seen[key] = true
		}
	}

	expected := c.checkExpression(s.Cases[0].Result)
	for _, cs := range s.Cases[1:] {
		resultType := c.checkExpression(cs.Result)
		if !types.Equals(expected, resultType) {
			c.fatal(s.Pos(), "switch expression cases must share one type, expected %s but got %s", expected, resultType)
		}
	}

	if s.Default == nil {
		c.fatal(s.Pos(), "Switch expression must has a default case")
	}
	defaultType := c.checkExpression(s.Default)
	if !types.Equals(expected, defaultType) {
		c.fatal(s.Pos(), "switch expression default value must match case type %s but got %s", expected, defaultType)
	}

	return expected
}

// checkLambda binds its explicit parameters in a new scope chained off
// the current one, so names from the enclosing scope remain visible
// (the implicit-capture rule), pushes Return onto the return-type
// stack the same way a function body does, and carries a Pointer to
// the Function type built from Params/Return.
func (c *Checker) checkLambda(l *ast.Lambda) types.Type {
	paramTypes := make([]types.Type, len(l.Params))
	for i, p := range l.Params {
		paramTypes[i] = p.Type
	}
	fnType := &types.Function{Parameters: paramTypes, Return: l.Return}

	c.returnTypeStack = append(c.returnTypeStack, l.Return)
	outer := c.scope
	c.scope = NewEnclosedSymbolTable(outer)
	for _, p := range l.Params {
		c.scope.Define(p.Name, p.Type)
	}
	for _, stmt := range l.Body.Statements {
		c.checkStatement(stmt)
	}
	c.scope = outer
	c.returnTypeStack = c.returnTypeStack[:len(c.returnTypeStack)-1]

	return &types.Pointer{Base: fnType}
}

func (c *Checker) checkUnary(u *ast.Unary) types.Type {
	operandType := c.checkExpression(u.Operand)
	switch u.Operator {
	case "-", "~":
		if !isNumber(operandType) {
			c.fatal(u.Pos(), "operator %q requires a number operand, got %s", u.Operator, operandType)
		}
		return operandType
	case "!":
		if !isNumber(operandType) {
			c.fatal(u.Pos(), "operator ! requires a number operand, got %s", operandType)
		}
		return &types.Number{NumKind: types.Int1}
	case "&":
		return &types.Pointer{Base: operandType}
	case "*":
		ptr, ok := operandType.(*types.Pointer)
		if !ok {
			c.fatal(u.Pos(), "operator * requires a pointer operand, got %s", operandType)
		}
		return ptr.Base
	default:
		c.fatal(u.Pos(), "internal error: unknown unary operator %q", u.Operator)
		return &types.Void{}
	}
}

func (c *Checker) checkIncDec(i *ast.IncDec) types.Type {
	operandType := c.checkExpression(i.Operand)
	if !isNumber(operandType) {
		c.fatal(i.Pos(), "operator %q requires a number operand, got %s", i.Operator, operandType)
	}
	return operandType
}

// checkBinary requires both operands to be the same Number type; the
// result carries that type forward.
func (c *Checker) checkBinary(b *ast.Binary) types.Type {
	leftType := c.checkExpression(b.Left)
	rightType := c.checkExpression(b.Right)
	if !isNumber(leftType) || !isNumber(rightType) || !types.Equals(leftType, rightType) {
		c.fatal(b.Pos(), "operator %q requires matching number operands, got %s and %s", b.Operator, leftType, rightType)
	}
	return leftType
}

// checkShift's result follows the left operand's Number kind; the
// right operand (the shift amount) only needs to be an integer.
func (c *Checker) checkShift(s *ast.Shift) types.Type {
	leftType := c.checkExpression(s.Left)
	rightType := c.checkExpression(s.Right)
	if !isNumber(leftType) {
		c.fatal(s.Pos(), "operator %q requires a number left operand, got %s", s.Operator, leftType)
	}
	if !isIntegerNumber(rightType) {
		c.fatal(s.Pos(), "operator %q requires an integer shift amount, got %s", s.Operator, rightType)
	}
	return leftType
}

func (c *Checker) checkComparison(cmp *ast.Comparison) types.Type {
	leftType := c.checkExpression(cmp.Left)
	rightType := c.checkExpression(cmp.Right)
	if nullType, isNull := rightType.(*types.Null); isNull {
		if ptr, isPtr := leftType.(*types.Pointer); isPtr {
			types.InferNullBase(nullType, ptr)
		}
	} else if nullType, isNull := leftType.(*types.Null); isNull {
		if ptr, isPtr := rightType.(*types.Pointer); isPtr {
			types.InferNullBase(nullType, ptr)
		}
	} else if !types.Equals(leftType, rightType) {
		c.fatal(cmp.Pos(), "cannot compare %s and %s", leftType, rightType)
	}
	return &types.Number{NumKind: types.Int1}
}

func (c *Checker) checkLogical(l *ast.Logical) types.Type {
	leftType := c.checkExpression(l.Left)
	rightType := c.checkExpression(l.Right)
	if !isNumber(leftType) || !isNumber(rightType) {
		c.fatal(l.Pos(), "operator %q requires number operands, got %s and %s", l.Operator, leftType, rightType)
	}
	return &types.Number{NumKind: types.Int1}
}

func (c *Checker) checkAssign(a *ast.Assign) types.Type {
	targetType := c.checkExpression(a.Target)
	valueType := c.checkExpression(a.Value)
	if nullType, isNull := valueType.(*types.Null); isNull {
		ptr, isPtr := targetType.(*types.Pointer)
		if !isPtr {
			c.fatal(a.Pos(), "cannot assign null to non-pointer target of type %s", targetType)
		}
		types.InferNullBase(nullType, ptr)
		return targetType
	}
	if !types.Equals(targetType, valueType) {
		c.fatal(a.Pos(), "cannot assign %s to target of type %s", valueType, targetType)
	}
	return targetType
}

// checkCall resolves the callee to a Function type and matches its
// arguments against the declared parameters, applying Null-to-Pointer
// inference per argument. Varargs trailing arguments are checked
// against VarargsElement unless it is Void (unconstrained).
func (c *Checker) checkCall(call *ast.Call) types.Type {
	calleeType := c.checkExpression(call.Callee)
	fn, ok := calleeType.(*types.Function)
	if !ok {
		c.fatal(call.Pos(), "cannot call a value of type %s", calleeType)
	}

	if len(call.Args) < len(fn.Parameters) || (!fn.Varargs && len(call.Args) != len(fn.Parameters)) {
		c.fatal(call.Pos(), "call expects %d arguments, got %d", len(fn.Parameters), len(call.Args))
	}

	for i, arg := range call.Args {
		argType := c.checkExpression(arg)
		var want types.Type
		switch {
		case i < len(fn.Parameters):
			want = fn.Parameters[i]
		case fn.Varargs:
			if _, isVoid := fn.VarargsElement.(*types.Void); isVoid {
				continue
			}
			want = fn.VarargsElement
		default:
			continue
		}
		matchParameter(c, arg, argType, want)
	}

	if fn.Return == nil {
		return &types.Void{}
	}
	return fn.Return
}

// matchParameter is the shared arity/type-matching helper used by call
// checking and InitializeExpr field checking: it applies
// Null-to-Pointer inference and otherwise requires exact type
// equality, reporting a fatal error through c on mismatch.
func matchParameter(c *Checker, arg ast.Expression, got, want types.Type) {
	if nullType, isNull := got.(*types.Null); isNull {
		ptr, isPtr := want.(*types.Pointer)
		if !isPtr {
			c.fatal(arg.Pos(), "cannot pass null where %s is expected", want)
		}
		types.InferNullBase(nullType, ptr)
		return
	}
	if !types.Equals(got, want) {
		c.fatal(arg.Pos(), "argument type %s does not match parameter type %s", got, want)
	}
}

// checkDot resolves Receiver; a Struct (directly or through a pointer)
// yields the named field's type and fills FieldIndex, while an Enum
// receiver yields the referenced EnumElement's type instead.
func (c *Checker) checkDot(d *ast.Dot) types.Type {
	receiverType := c.checkExpression(d.Receiver)

	target := receiverType
	if ptr, ok := receiverType.(*types.Pointer); ok {
		target = ptr.Base
	}

	switch t := target.(type) {
	case *types.Struct:
		field, idx, ok := t.FieldByName(d.Field)
		if !ok {
			c.fatal(d.Pos(), "struct %q has no field %q", t.Name, d.Field)
		}
		d.FieldIndex = idx
		return field.Type
	case *types.Enum:
		if _, ok := t.Values[d.Field]; !ok {
			c.fatal(d.Pos(), "enum %q has no element %q", t.Name, d.Field)
		}
		return &types.EnumElement{EnumName: t.Name, Name: d.Field}
	default:
		c.fatal(d.Pos(), "cannot access field %q on %s", d.Field, receiverType)
		return &types.Void{}
	}
}

func (c *Checker) checkIndex(idx *ast.Index) types.Type {
	receiverType := c.checkExpression(idx.Receiver)
	indexType := c.checkExpression(idx.IndexExp)
	if !isIntegerNumber(indexType) {
		c.fatal(idx.IndexExp.Pos(), "index must be an integer, got %s", indexType)
	}
	switch t := receiverType.(type) {
	case *types.Array:
		return t.Element
	case *types.Pointer:
		return t.Base
	default:
		c.fatal(idx.Pos(), "cannot index into %s", receiverType)
		return &types.Void{}
	}
}

func (c *Checker) checkCast(cast *ast.Cast) types.Type {
	valueType := c.checkExpression(cast.Value)
	if !types.Castable(valueType, cast.TargetType) {
		c.fatal(cast.Pos(), "cannot cast %s to %s", valueType, cast.TargetType)
	}
	if types.Equals(valueType, cast.TargetType) {
		c.warnf(cast.Pos(), "redundant cast: expression is already of type %s", cast.TargetType)
	}
	return cast.TargetType
}

func (c *Checker) checkEnumAccess(ea *ast.EnumAccess) types.Type {
	enumType, ok := c.ctx.Enums[ea.EnumName]
	if !ok {
		c.fatal(ea.Pos(), "undefined enum %q", ea.EnumName)
	}
	if _, ok := enumType.Values[ea.ElementName]; !ok {
		c.fatal(ea.Pos(), "enum %q has no element %q", ea.EnumName, ea.ElementName)
	}
	return &types.EnumElement{EnumName: ea.EnumName, Name: ea.ElementName}
}
