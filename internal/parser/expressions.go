package parser

import (
	"strconv"

	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// parseExpression is the Pratt-parsing entry point: parse a prefix
// expression, then keep folding in infix/postfix operators whose
// precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec precedence) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.fatal("no prefix parse rule for %s (%q)", p.cur.Kind, p.cur.Literal)
	}
	left := prefix()

	for !p.curIs(token.Semicolon) && minPrec < p.peekPrecedenceAtCur() {
		if p.curIs(token.Ident) {
			switch p.ctx.FixityOf(p.cur.Literal) {
			case ast.FixityInfix:
				left = p.parseInfixCall(left)
				continue
			case ast.FixityPostfix:
				left = p.parsePostfixCall(left)
				continue
			}
		}
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

// peekPrecedenceAtCur reports the precedence of the current token
// when it is being considered as an infix/postfix operator continuing
// the expression already parsed into `left`. An identifier registered
// with infix or postfix fixity binds at its own dedicated precedence
// tier rather than whatever precedences[token.Ident] would give (it
// isn't in that table at all, since plain identifiers never continue
// an expression on their own).
func (p *Parser) peekPrecedenceAtCur() precedence {
	if p.curIs(token.Ident) {
		switch p.ctx.FixityOf(p.cur.Literal) {
		case ast.FixityInfix:
			return infixCallPrec
		case ast.FixityPostfix:
			return postfixCallPrec
		}
	}
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return lowest
}

// parseInfixCall rewrites `left name right` into Call(name, [left,
// right]) when name was declared `infix fun`.
func (p *Parser) parseInfixCall(left ast.Expression) ast.Expression {
	tok := p.cur
	p.advance()
	right := p.parseExpression(infixCallPrec)
	callee := &ast.Identifier{Token: tok, Value: tok.Literal}
	return &ast.Call{Token: tok, Callee: callee, Args: []ast.Expression{left, right}}
}

// parsePostfixCall rewrites `left name` into Call(name, [left]) when
// name was declared `postfix fun`.
func (p *Parser) parsePostfixCall(left ast.Expression) ast.Expression {
	tok := p.cur
	p.advance()
	callee := &ast.Identifier{Token: tok, Value: tok.Literal}
	return &ast.Call{Token: tok, Callee: callee, Args: []ast.Expression{left}}
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.cur
	name := tok.Literal

	// A name declared `prefix fun` is parsed as a prefix operator here,
	// rather than as a plain value reference.
	if p.ctx.FixityOf(name) == ast.FixityPrefix {
		p.advance()
		operand := p.parseExpression(unaryPrec)
		callee := &ast.Identifier{Token: tok, Value: name}
		return &ast.Call{Token: tok, Callee: callee, Args: []ast.Expression{operand}}
	}

	if !p.noStructLiteral && p.peekIs(token.LBrace) {
		if _, ok := p.ctx.Structs[name]; ok {
			return p.parseInitializeExpr(tok)
		}
	}

	p.advance()
	return &ast.Identifier{Token: tok, Value: name}
}

// parseInitializeExpr parses `StructName { arg0, arg1, ... }`: a
// struct value built from positional arguments, matched against the
// struct's fields in declaration order by the checker.
func (p *Parser) parseInitializeExpr(nameTok token.Token) ast.Expression {
	p.advance() // identifier
	p.expect(token.LBrace)

	lit := &ast.InitializeExpr{Token: nameTok, Name: nameTok.Literal}
	for !p.curIs(token.RBrace) {
		lit.Args = append(lit.Args, p.parseExpression(lowest))
		if p.curIs(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBrace)
	return lit
}

// parseIfExpression parses the expression form of if: `if cond
// then-expr else else-expr`, both branches bare expressions with a
// mandatory else, since the result must always carry a value.
func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.cur
	p.advance() // 'if'
	cond := p.parseExpression(lowest)
	then := p.parseExpression(lowest)
	p.expect(token.Else)
	elseExpr := p.parseExpression(lowest)
	return &ast.IfExpr{Token: tok, Condition: cond, Then: then, Else: elseExpr}
}

// parseSwitchExpression parses the expression form of switch:
// `switch arg { (vals -> result;)* (else -> default;)? }`. Whether a
// default arm is required is left to the checker; only the structural
// rule that at most one default exists is enforced here.
func (p *Parser) parseSwitchExpression() ast.Expression {
	tok := p.cur
	p.advance() // 'switch'
	arg := p.parseExpression(lowest)
	p.expect(token.LBrace)

	sw := &ast.SwitchExpr{Token: tok, Value: arg}
	for !p.curIs(token.RBrace) {
		if p.curIs(token.Else) {
			p.advance()
			p.expect(token.Arrow)
			if sw.Default != nil {
				p.fatal("switch expression may only have one default case")
			}
			sw.Default = p.parseExpression(lowest)
			p.expect(token.Semicolon)
			continue
		}

		var c ast.SwitchExprCase
		c.Values = append(c.Values, p.parseExpression(lowest))
		for p.curIs(token.Comma) {
			p.advance()
			c.Values = append(c.Values, p.parseExpression(lowest))
		}
		p.expect(token.Arrow)
		c.Result = p.parseExpression(lowest)
		p.expect(token.Semicolon)
		sw.Cases = append(sw.Cases, c)
	}
	p.expect(token.RBrace)
	return sw
}

// parseLambdaExpression parses a brace-delimited lambda value. The
// `(params) returnType ->` prefix is optional as a unit; when it is
// omitted the lambda takes no parameters and returns void.
func (p *Parser) parseLambdaExpression() ast.Expression {
	tok := p.cur
	p.expect(token.LBrace)

	lambda := &ast.Lambda{Token: tok, Return: &types.Void{}}
	if p.curIs(token.LParen) {
		p.advance()
		for !p.curIs(token.RParen) {
			paramTok := p.expect(token.Ident)
			p.expect(token.Colon)
			paramType := p.parseType()
			lambda.Params = append(lambda.Params, ast.Param{Name: paramTok.Literal, Type: paramType})
			if p.curIs(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RParen)
		lambda.Return = p.parseType()
		p.expect(token.Arrow)
	}

	lambda.Body = &ast.Block{Token: p.cur}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		lambda.Body.Statements = append(lambda.Body.Statements, p.parseStatement())
	}
	p.expect(token.RBrace)
	return lambda
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q: %s", tok.Literal, err)
	}
	p.advance()
	return &ast.IntegerLiteral{Token: tok, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cur
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf("invalid float literal %q: %s", tok.Literal, err)
	}
	p.advance()
	return &ast.FloatLiteral{Token: tok, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	var value byte
	if len(tok.Literal) > 0 {
		value = tok.Literal[0]
	}
	return &ast.CharLiteral{Token: tok, Value: value}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Kind == token.True}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	return &ast.NullLiteral{Token: tok}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.cur
	p.advance() // '('
	inner := p.parseExpression(lowest)
	p.expect(token.RParen)
	return &ast.Grouped{Token: tok, Inner: inner}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.cur
	p.advance() // '['
	lit := &ast.ArrayLiteral{Token: tok}
	for !p.curIs(token.RBracket) {
		lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBracket)
	return lit
}

// lvalueTargetOK reports whether e is one of the expression forms
// that may appear on the left of an Assign or as the operand of
// ++/--: a bare identifier, a field access, or an index.
func lvalueTargetOK(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Dot, *ast.Index:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.cur
	operator := tok.Literal
	p.advance()
	operand := p.parseExpression(unaryPrec)
	return &ast.Unary{Token: tok, Operator: operator, Operand: operand}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.cur
	operator := tok.Literal
	p.advance()
	operand := p.parseExpression(unaryPrec)
	if !lvalueTargetOK(operand) {
		p.errorf("%s may only apply to a variable, field, or index expression", operator)
	}
	return &ast.IncDec{Token: tok, Operator: operator, Operand: operand, Prefix: true}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	tok := p.cur
	operator := tok.Literal
	if !lvalueTargetOK(left) {
		p.errorf("%s may only apply to a variable, field, or index expression", operator)
	}
	p.advance()
	return &ast.IncDec{Token: tok, Operator: operator, Operand: left, Prefix: false}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	operator := tok.Literal
	prec := precedences[tok.Kind]
	p.advance()
	right := p.parseExpression(prec)
	return &ast.Binary{Token: tok, Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseShift(left ast.Expression) ast.Expression {
	tok := p.cur
	operator := tok.Literal
	prec := precedences[tok.Kind]
	p.advance()
	right := p.parseExpression(prec)
	return &ast.Shift{Token: tok, Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseComparison(left ast.Expression) ast.Expression {
	tok := p.cur
	operator := tok.Literal
	prec := precedences[tok.Kind]
	p.advance()
	right := p.parseExpression(prec)
	return &ast.Comparison{Token: tok, Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseLogical(left ast.Expression) ast.Expression {
	tok := p.cur
	operator := tok.Literal
	prec := precedences[tok.Kind]
	p.advance()
	right := p.parseExpression(prec)
	return &ast.Logical{Token: tok, Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseAssign(left ast.Expression) ast.Expression {
	tok := p.cur
	if !lvalueTargetOK(left) {
		p.errorf("left side of assignment must be a variable, field, or index expression")
	}
	p.advance()
	value := p.parseExpression(assignPrec - 1) // right-associative
	return &ast.Assign{Token: tok, Target: left, Value: value}
}

// parseCompoundAssign desugars `lhs op= rhs` into
// Assign(lhs, Binary(op, lhs, rhs)) at parse time, per the supplemented
// compound-assignment feature: the checker only ever sees plain
// Assign and Binary nodes.
func (p *Parser) parseCompoundAssign(left ast.Expression) ast.Expression {
	tok := p.cur
	if !lvalueTargetOK(left) {
		p.errorf("left side of assignment must be a variable, field, or index expression")
	}
	binOpKind, _ := token.BinaryOpForCompoundAssign(tok.Kind)
	binOpLiteral := binOpKind.String()

	p.advance()
	rhs := p.parseExpression(assignPrec - 1)

	desugaredRight := &ast.Binary{Token: tok, Left: left, Operator: binOpLiteral, Right: rhs}
	return &ast.Assign{Token: tok, Target: left, Value: desugaredRight}
}

// parseCall parses Callee(args...), plus an optional trailing
// `{ ... }` block that attaches as a final lambda argument.
func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // '('
	call := &ast.Call{Token: tok, Callee: callee}
	for !p.curIs(token.RParen) {
		call.Args = append(call.Args, p.parseExpression(lowest))
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	if p.curIs(token.LBrace) {
		call.Args = append(call.Args, p.parseLambdaExpression())
	}
	return call
}

func (p *Parser) parseIndex(receiver ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // '['
	idx := p.parseExpression(lowest)
	p.expect(token.RBracket)
	return &ast.Index{Token: tok, Receiver: receiver, IndexExp: idx}
}

func (p *Parser) parseDot(receiver ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // '.'
	field := p.expect(token.Ident)
	return &ast.Dot{Token: tok, Receiver: receiver, Field: field.Literal, FieldIndex: -1}
}

// parseEnumAccess parses Name::Elem once Name has already been parsed
// as an identifier and the parser is sitting on '::'. Name must name a
// registered enum; this is the only form in which a bare identifier is
// allowed to refer to a type rather than a value.
func (p *Parser) parseEnumAccess(left ast.Expression) ast.Expression {
	tok := p.cur
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.fatal("left side of '::' must be an enum name")
	}
	if _, ok := p.ctx.Enums[ident.Value]; !ok {
		p.fatal("%q is not a registered enum", ident.Value)
	}
	p.advance() // '::'
	elemTok := p.expect(token.Ident)
	return &ast.EnumAccess{Token: tok, EnumName: ident.Value, ElementName: elemTok.Literal}
}

func (p *Parser) parseCastExpression() ast.Expression {
	tok := p.cur
	p.advance() // 'cast'
	p.expect(token.LParen)
	target := p.parseType()
	p.expect(token.RParen)
	value := p.parseExpression(unaryPrec)
	return &ast.Cast{Token: tok, TargetType: target, Value: value}
}

func (p *Parser) parseTypeSizeExpression() ast.Expression {
	tok := p.cur
	p.advance() // 'type_size'
	p.expect(token.LParen)
	target := p.parseType()
	p.expect(token.RParen)
	return &ast.TypeSize{Token: tok, TargetType: target}
}

func (p *Parser) parseValueSizeExpression() ast.Expression {
	tok := p.cur
	p.advance() // 'value_size'
	p.expect(token.LParen)
	value := p.parseExpression(lowest)
	p.expect(token.RParen)
	return &ast.ValueSize{Token: tok, Value: value}
}
