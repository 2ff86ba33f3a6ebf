package parser

import (
	"strconv"

	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// parseType parses a type annotation: a primitive keyword, a pointer,
// a fixed-size array, a bare struct/enum/alias name, or a generic
// struct instantiation Name<Arg, ...>.
func (p *Parser) parseType() types.Type {
	switch {
	case p.curIs(token.Star):
		p.advance()
		if p.curIs(token.Ident) && p.cur.Literal == p.currentStructName && p.currentStructName != "" {
			return p.parseSelfPointer()
		}
		return &types.Pointer{Base: p.parseType()}

	case p.curIs(token.LBracket):
		p.advance() // '['
		sizeTok := p.expect(token.Int)
		size, err := strconv.Atoi(sizeTok.Literal)
		if err != nil {
			p.errorf("invalid array size %q: %s", sizeTok.Literal, err)
		}
		p.expect(token.RBracket)
		return &types.Array{Element: p.parseType(), Size: size}

	case p.cur.Kind.IsPrimitiveTypeName():
		kind := p.cur.Kind
		p.advance()
		t, ok := p.ctx.Aliases.Resolve(kind)
		if !ok {
			p.fatal("internal error: unregistered primitive type %s", kind)
		}
		return t

	case p.curIs(token.Ident):
		return p.parseNamedType()

	default:
		p.fatal("expected a type, got %s (%q)", p.cur.Kind, p.cur.Literal)
		return nil
	}
}

// parseSelfPointer handles `*Self` where Self names the struct
// currently being declared: the struct's own type doesn't exist yet,
// so a placeholder Pointer-to-None is emitted and recorded for the
// self-reference patch to fill in once the struct's fields are all
// parsed (see parseStructDecl).
func (p *Parser) parseSelfPointer() types.Type {
	p.advance() // the struct's own name
	placeholder := &types.Pointer{Base: &types.None{}}
	p.pendingSelfPointers = append(p.pendingSelfPointers, placeholder)
	p.ctx.CurrentStructUnknownFields++
	return placeholder
}

func (p *Parser) parseNamedType() types.Type {
	nameTok := p.expect(token.Ident)
	name := nameTok.Literal

	base, ok := p.ctx.LookupType(name)
	if !ok {
		if name == p.currentStructName {
			// A bare (non-pointer) self-reference has no finite
			// representation; only *Self is legal.
			p.fatal("struct %q cannot contain itself by value, use *%s", name, name)
		}
		p.fatal("unknown type %q", name)
		return nil
	}

	if !p.curIs(token.Less) {
		return base
	}

	structBase, isStruct := base.(*types.Struct)
	if !isStruct || !structBase.IsGeneric {
		p.fatal("%q is not a generic type", name)
	}

	p.advance() // '<'
	var args []types.Type
	for !p.curIs(token.Greater) {
		args = append(args, p.parseType())
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.Greater)

	if len(args) != len(structBase.GenericParams) {
		p.fatal("%q expects %d type argument(s), got %d", name, len(structBase.GenericParams), len(args))
	}
	return &types.GenericStruct{Base: structBase, TypeArgs: args}
}
