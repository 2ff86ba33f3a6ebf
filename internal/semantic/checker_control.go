package semantic

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

func (c *Checker) checkIf(s *ast.If) {
	condType := c.checkExpression(s.Condition)
	if !isNumber(condType) {
		c.fatal(s.Condition.Pos(), "if condition must be a number type, got %s", condType)
	}
	c.checkBlock(s.Then)
	if s.Else != nil {
		c.checkStatement(s.Else)
	}
}

func (c *Checker) checkWhile(s *ast.While) {
	condType := c.checkExpression(s.Condition)
	if !isNumber(condType) {
		c.fatal(s.Condition.Pos(), "while condition must be a number type, got %s", condType)
	}
	c.loopDepth++
	c.checkBlock(s.Body)
	c.loopDepth--
}

func (c *Checker) checkForever(s *ast.Forever) {
	c.loopDepth++
	c.checkBlock(s.Body)
	c.loopDepth--
}

// checkForEach binds the loop variable to the collection's element
// type: an Array's Element, or a Pointer's Base (iterating the single
// pointee as a one-element view), per the open-question decision
// recorded for element typing. Any other collection type is fatal.
func (c *Checker) checkForEach(s *ast.ForEach) {
	collType := c.checkExpression(s.Collection)

	var elemType types.Type
	switch t := collType.(type) {
	case *types.Array:
		elemType = t.Element
	case *types.Pointer:
		elemType = t.Base
	default:
		c.fatal(s.Collection.Pos(), "for-each collection must be an array or pointer, got %s", collType)
	}
	s.VarType = elemType

	outer := c.scope
	c.scope = NewEnclosedSymbolTable(outer)
	c.scope.Define(s.Var, elemType)
	c.loopDepth++
	for _, stmt := range s.Body.Statements {
		c.checkStatement(stmt)
	}
	c.loopDepth--
	c.scope = outer
}

// checkForRange requires Start and End to be the same Number type; an
// optional Step must match that type too. The range variable is bound
// to Start's type for the body.
func (c *Checker) checkForRange(s *ast.ForRange) {
	startType := c.checkExpression(s.Start)
	endType := c.checkExpression(s.End)
	if !isNumber(startType) || !isNumber(endType) || !types.Equals(startType, endType) {
		c.fatal(s.Pos(), "for-range bounds must be the same number type, got %s and %s", startType, endType)
	}
	if s.Step != nil {
		stepType := c.checkExpression(s.Step)
		if !types.Equals(stepType, startType) {
			c.fatal(s.Step.Pos(), "for-range step must match the range's type %s, got %s", startType, stepType)
		}
	}
	s.VarType = startType

	outer := c.scope
	c.scope = NewEnclosedSymbolTable(outer)
	c.scope.Define(s.Var, startType)
	c.loopDepth++
	for _, stmt := range s.Body.Statements {
		c.checkStatement(stmt)
	}
	c.loopDepth--
	c.scope = outer
}

// checkSwitch implements the statement form: the argument must be an
// integer Number or EnumElement, each case value must be a number or
// enum-access literal, and duplicate case values are fatal.
func (c *Checker) checkSwitch(s *ast.Switch) {
	argType := c.checkExpression(s.Value)
	_, isEnumElem := argType.(*types.EnumElement)
	if !isIntegerNumber(argType) && !isEnumElem {
		c.fatal(s.Value.Pos(), "switch argument must be an integer or enum value, got %s", argType)
	}

	seen := make(map[string]bool)
	sawDefault := false
	for _, cs := range s.Cases {
		if len(cs.Values) == 0 {
			sawDefault = true
		}
		for _, v := range cs.Values {
			switch v.(type) {
			case *ast.IntegerLiteral, *ast.EnumAccess:
			default:
				c.fatal(v.Pos(), "switch case value must be an integer literal or enum access, got %s", v)
			}
			valType := c.checkExpression(v)
			if !types.Equals(valType, argType) {
				c.fatal(v.Pos(), "switch case value type %s does not match argument type %s", valType, argType)
			}
			key := v.String()
			if seen[key] {
				c.fatal(v.Pos(), "duplicate switch case value %s", key)
			}
			seen[key] = true
		}
		c.checkBlock(cs.Body)
	}
	_ = sawDefault
}

// checkReturn enforces the Void/non-Void return contract and applies
// Null-to-Pointer inference on the returned value.
func (c *Checker) checkReturn(s *ast.Return) {
	if len(c.returnTypeStack) == 0 {
		c.fatal(s.Pos(), "return statement outside of a function")
	}
	want := c.returnTypeStack[len(c.returnTypeStack)-1]

	if _, isVoid := want.(*types.Void); isVoid {
		if s.Value != nil {
			c.fatal(s.Pos(), "function returns void, cannot return a value")
		}
		return
	}
	if s.Value == nil {
		c.fatal(s.Pos(), "function must return a value of type %s", want)
	}

	gotType := c.checkExpression(s.Value)
	if nullType, ok := gotType.(*types.Null); ok {
		ptr, isPtr := want.(*types.Pointer)
		if !isPtr {
			c.fatal(s.Value.Pos(), "cannot return null from a function returning %s", want)
		}
		types.InferNullBase(nullType, ptr)
		return
	}
	if !types.Equals(gotType, want) {
		c.fatal(s.Value.Pos(), "return type %s does not match function return type %s", gotType, want)
	}
}

func (c *Checker) checkBreak(s *ast.Break) {
	c.checkLoopLevel(s.Pos(), "break", s.Level)
}

func (c *Checker) checkContinue(s *ast.Continue) {
	c.checkLoopLevel(s.Pos(), "continue", s.Level)
}

func (c *Checker) checkLoopLevel(pos token.Position, keyword string, level *ast.IntegerLiteral) {
	if c.loopDepth == 0 {
		c.errorf(pos, "%s outside of a loop", keyword)
	}
	if level == nil {
		return
	}
	if level.Value <= 0 {
		c.errorf(pos, "%s level must be a positive integer, got %d", keyword, level.Value)
		return
	}
	if level.Value == 1 {
		c.warnf(pos, "%s 1 is the same as bare %s, the explicit level is redundant", keyword, keyword)
	}
	if int(level.Value) > c.loopDepth {
		c.errorf(pos, "%s %d exceeds the current loop nesting depth of %d", keyword, level.Value, c.loopDepth)
	}
}

func (c *Checker) checkDefer(s *ast.Defer) {
	if s.Call == nil {
		return
	}
	c.checkExpression(s.Call)
}
