package parser

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.cur
	p.advance() // 'var'
	nameTok := p.expect(token.Ident)

	decl := &ast.VarDecl{Token: tok, Name: nameTok.Literal}

	if p.curIs(token.Colon) {
		p.advance()
		decl.Declared = p.parseType()
	}
	if p.curIs(token.Equal) {
		p.advance()
		decl.Initializer = p.parseExpression(lowest)
	}
	if decl.Declared == nil && decl.Initializer == nil {
		p.errorf("variable %q needs either a type annotation or an initializer", decl.Name)
	}
	p.expect(token.Semicolon)
	return decl
}

func (p *Parser) parseTypeAliasDecl() ast.Statement {
	tok := p.cur
	p.advance() // 'type'
	nameTok := p.expect(token.Ident)
	p.expect(token.Equal)
	underlying := p.parseType()
	p.expect(token.Semicolon)

	p.ctx.TypeAliases[nameTok.Literal] = underlying
	return &ast.TypeAliasDecl{Token: tok, Name: nameTok.Literal, Underlying: underlying}
}

// parseStructDecl parses `[packed] struct Name[<T, U>] { field: Type; ... }`.
// Self-referential *Name fields are parsed as placeholder pointers,
// patched to the real Struct value once all fields are parsed; the
// struct is registered into the Context after that.
func (p *Parser) parseStructDecl() ast.Statement {
	tok := p.cur
	isPacked := false
	if p.curIs(token.Packed) {
		isPacked = true
		p.advance()
		p.expect(token.Struct)
	} else {
		p.advance() // 'struct'
	}

	nameTok := p.expect(token.Ident)
	name := nameTok.Literal

	var genericParams []string
	if p.curIs(token.Less) {
		p.advance()
		for !p.curIs(token.Greater) {
			genericParams = append(genericParams, p.expect(token.Ident).Literal)
			if p.curIs(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.Greater)
	}

	structType := &types.Struct{
		Name:          name,
		FieldIndex:    make(map[string]int),
		IsPacked:      isPacked,
		IsGeneric:     len(genericParams) > 0,
		GenericParams: genericParams,
	}

	prevStructName := p.currentStructName
	prevPending := p.pendingSelfPointers
	prevUnknown := p.ctx.CurrentStructUnknownFields
	p.currentStructName = name
	p.pendingSelfPointers = nil
	p.ctx.CurrentStructUnknownFields = 0
	defer func() {
		p.currentStructName = prevStructName
		p.pendingSelfPointers = prevPending
	}()

	// Generic parameter names resolve to GenericParameter types while the
	// struct's fields are parsed; any alias they shadow is restored after.
	shadowed := make(map[string]types.Type)
	for _, param := range genericParams {
		shadowed[param] = p.ctx.TypeAliases[param]
		p.ctx.TypeAliases[param] = &types.GenericParameter{Name: param}
	}
	defer func() {
		for param, prev := range shadowed {
			if prev == nil {
				delete(p.ctx.TypeAliases, param)
			} else {
				p.ctx.TypeAliases[param] = prev
			}
		}
	}()

	decl :=&ast.StructDecl{Token: tok, Name: name, IsPacked: isPacked, GenericParams: genericParams}

	p.expect(token.LBrace)
	for !p.curIs(token.RBrace) {
		fieldTok := p.expect(token.Ident)
		p.expect(token.Colon)
		fieldType := p.parseType()
		p.expect(token.Semicolon)

		structType.FieldIndex[fieldTok.Literal] = len(structType.Fields)
		structType.Fields = append(structType.Fields, types.Field{Name: fieldTok.Literal, Type: fieldType})
		decl.Fields = append(decl.Fields, ast.StructField{Name: fieldTok.Literal, Type: fieldType})
	}
	p.expect(token.RBrace)

	// The struct's own type now exists: patch every *Self placeholder
	// emitted while its fields were being parsed.
	for _, placeholder := range p.pendingSelfPointers {
		placeholder.Base = structType
		p.ctx.CurrentStructUnknownFields--
	}
	if p.ctx.CurrentStructUnknownFields != 0 {
		p.fatal("internal error: %d unresolved self-reference(s) in struct %q", p.ctx.CurrentStructUnknownFields, name)
	}
	p.ctx.CurrentStructUnknownFields = prevUnknown

	p.ctx.Structs[name] = structType
	return decl
}

// parseEnumDecl parses `enum Name [: IntegerType] { Elem [= value], ... }`.
// The underlying integer type defaults to int32 when omitted.
func (p *Parser) parseEnumDecl() ast.Statement {
	tok := p.cur
	p.advance() // 'enum'
	nameTok := p.expect(token.Ident)
	name := nameTok.Literal

	underlying := &types.Number{NumKind: types.Int32}
	if p.curIs(token.Colon) {
		p.advance()
		t := p.parseType()
		n, ok := t.(*types.Number)
		if !ok {
			p.fatal("enum %q underlying type must be an integer type, got %s", name, t)
		}
		underlying = n
	}

	enumType := &types.Enum{Name: name, Element: underlying}
	decl := &ast.EnumDecl{Token: tok, Name: name, Underlying: enumType.Element}

	p.expect(token.LBrace)
	for !p.curIs(token.RBrace) {
		elemTok := p.expect(token.Ident)
		enumType.Elements = append(enumType.Elements, elemTok.Literal)
		decl.Elements = append(decl.Elements, elemTok.Literal)

		var value ast.Expression
		if p.curIs(token.Equal) {
			p.advance()
			value = p.parseExpression(lowest)
		}
		decl.Values = append(decl.Values, value)

		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RBrace)

	p.ctx.Enums[name] = enumType
	return decl
}

// parseFunDecl parses `[prefix|infix|postfix] (fun|extern fun) name(params) [-> Type] (block | ;)`.
func (p *Parser) parseFunDecl() ast.Statement {
	tok := p.cur
	fixity := ast.FixityNone
	switch p.cur.Kind {
	case token.Prefix:
		fixity = ast.FixityPrefix
		p.advance()
	case token.Infix:
		fixity = ast.FixityInfix
		p.advance()
	case token.Postfix:
		fixity = ast.FixityPostfix
		p.advance()
	}

	isExtern := false
	if p.curIs(token.Extern) {
		isExtern = true
		p.advance()
	}
	p.expect(token.Fun)

	nameTok := p.expect(token.Ident)
	decl := &ast.FunDecl{Token: tok, Name: nameTok.Literal, IsExtern: isExtern, Fixity: fixity}

	p.expect(token.LParen)
	for !p.curIs(token.RParen) {
		if p.curIs(token.Varargs) {
			p.advance()
			decl.Varargs = true
			switch {
			case p.curIs(token.Ident) && p.cur.Literal == "Any":
				p.advance()
				decl.VarargsElement = &types.Void{}
			case !p.curIs(token.RParen):
				decl.VarargsElement = p.parseType()
			default:
				decl.VarargsElement = &types.Void{}
			}
			break
		}
		paramTok := p.expect(token.Ident)
		p.expect(token.Colon)
		paramType := p.parseType()
		decl.Params = append(decl.Params, ast.Param{Name: paramTok.Literal, Type: paramType})
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)

	switch fixity {
	case ast.FixityPrefix, ast.FixityPostfix:
		if len(decl.Params) != 1 {
			p.errorf("%s function %q must declare exactly one parameter, got %d", fixity, decl.Name, len(decl.Params))
		}
	case ast.FixityInfix:
		if len(decl.Params) != 2 {
			p.errorf("infix function %q must declare exactly two parameters, got %d", decl.Name, len(decl.Params))
		}
	}

	if p.curIs(token.Arrow) {
		p.advance()
		decl.Return = p.parseType()
		if _, isArray := decl.Return.(*types.Array); isArray {
			p.errorf("function %q cannot return a fixed-size array type, return a pointer instead", decl.Name)
		}
	} else {
		decl.Return = &types.Void{}
	}

	switch {
	case isExtern:
		p.expect(token.Semicolon)
	case p.curIs(token.Equal):
		// `= expr;` sugar for a single-expression function body.
		eqTok := p.cur
		p.advance()
		value := p.parseExpression(lowest)
		p.expect(token.Semicolon)
		decl.Body = &ast.Block{Token: eqTok, Statements: []ast.Statement{&ast.Return{Token: eqTok, Value: value}}}
	default:
		decl.Body = p.parseBlock()
	}

	if fixity != ast.FixityNone {
		p.ctx.RegisterFixity(decl.Name, fixity)
	}
	p.ctx.Functions[decl.Name] = decl
	return decl
}
