package parser

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(token.LBrace)
	block := &ast.Block{Token: tok}
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBrace)
	return block
}

// parseCondition parses an expression with struct-literal parsing
// suppressed, so `if x {` never mistakes `{` for the start of a
// struct literal rather than the if's body.
func (p *Parser) parseCondition() ast.Expression {
	prev := p.noStructLiteral
	p.noStructLiteral = true
	defer func() { p.noStructLiteral = prev }()
	return p.parseExpression(lowest)
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.Var:
		return p.parseVarDecl()
	case token.Type:
		return p.parseTypeAliasDecl()
	case token.Struct, token.Packed:
		return p.parseStructDecl()
	case token.Enum:
		return p.parseEnumDecl()
	case token.Fun, token.Extern, token.Prefix, token.Infix, token.Postfix:
		return p.parseFunDecl()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Switch:
		return p.parseSwitch()
	case token.Break:
		return p.parseBreak()
	case token.Continue:
		return p.parseContinue()
	case token.Defer:
		return p.parseDefer()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(lowest)
	p.expect(token.Semicolon)
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur
	p.advance() // 'return'
	ret := &ast.Return{Token: tok}
	if !p.curIs(token.Semicolon) {
		ret.Value = p.parseExpression(lowest)
	}
	p.expect(token.Semicolon)
	return ret
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.cur
	p.advance() // 'if'
	cond := p.parseCondition()
	then := p.parseBlock()

	ifStmt := &ast.If{Token: tok, Condition: cond, Then: then}
	if p.curIs(token.Else) {
		p.advance()
		if p.curIs(token.If) {
			ifStmt.Else = p.parseIf()
		} else {
			ifStmt.Else = p.parseBlock()
		}
	}
	return ifStmt
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.cur
	p.advance() // 'while'
	cond := p.parseCondition()
	body := p.parseBlock()
	return &ast.While{Token: tok, Condition: cond, Body: body}
}

// parseFor dispatches the three for-statement forms: `for { body }`
// (Forever), `for [name:] start..end[: step] { body }` (ForRange), and
// `for [name:] expr { body }` (ForEach). The optional `name:` prefix
// binds the element/range variable; it defaults to "it".
func (p *Parser) parseFor() ast.Statement {
	tok := p.cur
	p.advance() // 'for'

	if p.curIs(token.LBrace) {
		return &ast.Forever{Token: tok, Body: p.parseBlock()}
	}

	varName := "it"
	if p.curIs(token.Ident) && p.peekIs(token.Colon) {
		varName = p.cur.Literal
		p.advance() // ident
		p.advance() // ':'
	}

	first := p.parseCondition()

	if p.curIs(token.DotDot) {
		p.advance()
		end := p.parseCondition()
		var step ast.Expression
		if p.curIs(token.Colon) {
			p.advance()
			step = p.parseCondition()
		}
		body := p.parseBlock()
		return &ast.ForRange{Token: tok, Var: varName, Start: first, End: end, Step: step, Body: body}
	}

	body := p.parseBlock()
	return &ast.ForEach{Token: tok, Var: varName, Collection: first, Body: body}
}

func (p *Parser) parseSwitch() ast.Statement {
	tok := p.cur
	p.advance() // 'switch'
	value := p.parseCondition()
	p.expect(token.LBrace)

	sw := &ast.Switch{Token: tok, Value: value}
	for !p.curIs(token.RBrace) {
		var c ast.SwitchCase
		if !p.curIs(token.Ident) || (p.cur.Literal != "case" && p.cur.Literal != "default") {
			p.fatal("expected 'case' or 'default' inside switch, got %s (%q)", p.cur.Kind, p.cur.Literal)
		}
		if p.cur.Literal == "default" {
			p.advance()
			p.expect(token.Colon)
		} else {
			p.advance() // 'case'
			c.Values = append(c.Values, p.parseExpression(lowest))
			for p.curIs(token.Comma) {
				p.advance()
				c.Values = append(c.Values, p.parseExpression(lowest))
			}
			p.expect(token.Colon)
		}
		c.Body = &ast.Block{Token: p.cur}
		for !p.curIs(token.RBrace) && !(p.curIs(token.Ident) && (p.cur.Literal == "case" || p.cur.Literal == "default")) {
			c.Body.Statements = append(c.Body.Statements, p.parseStatement())
		}
		sw.Cases = append(sw.Cases, c)
	}
	p.expect(token.RBrace)
	return sw
}

func (p *Parser) parseBreak() ast.Statement {
	tok := p.cur
	p.advance()
	stmt := &ast.Break{Token: tok}
	if p.curIs(token.Int) {
		stmt.Level = p.parseIntegerLiteral().(*ast.IntegerLiteral)
	}
	p.expect(token.Semicolon)
	return stmt
}

func (p *Parser) parseContinue() ast.Statement {
	tok := p.cur
	p.advance()
	stmt := &ast.Continue{Token: tok}
	if p.curIs(token.Int) {
		stmt.Level = p.parseIntegerLiteral().(*ast.IntegerLiteral)
	}
	p.expect(token.Semicolon)
	return stmt
}

func (p *Parser) parseDefer() ast.Statement {
	tok := p.cur
	p.advance() // 'defer'
	expr := p.parseExpression(lowest)
	call, ok := expr.(*ast.Call)
	if !ok {
		p.errorf("defer requires a call expression")
	}
	p.expect(token.Semicolon)
	return &ast.Defer{Token: tok, Call: call}
}
