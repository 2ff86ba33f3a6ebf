// Package parser implements a recursive-descent, Pratt-precedence
// parser that turns a token stream into a *ast.CompilationUnit,
// expanding load directives inline (import directives are kept as
// ast.Import nodes and not expanded) and registering every
// struct, enum and function declaration it sees into a shared
// *semantic.Context as it goes.
package parser

import (
	"github.com/jot-lang/jot/internal/ast"
	"github.com/jot-lang/jot/internal/lexer"
	"github.com/jot-lang/jot/internal/semantic"
	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// precedence orders how tightly an infix or postfix operator binds.
type precedence int

const (
	lowest precedence = iota
	assignPrec
	logicalOrPrec
	logicalAndPrec
	equalityPrec
	comparisonPrec
	shiftPrec
	additivePrec
	multiplicativePrec
	enumAccessPrec
	infixCallPrec // user-declared infix functions
	unaryPrec
	postfixPrec
	callPrec
	postfixCallPrec // user-declared postfix functions
)

var precedences = map[token.Kind]precedence{
	token.Equal:          assignPrec,
	token.PlusEqual:      assignPrec,
	token.MinusEqual:     assignPrec,
	token.StarEqual:      assignPrec,
	token.SlashEqual:     assignPrec,
	token.PercentEqual:   assignPrec,
	token.PipePipe:       logicalOrPrec,
	token.AmpAmp:         logicalAndPrec,
	token.EqualEqual:     equalityPrec,
	token.BangEqual:      equalityPrec,
	token.Less:           comparisonPrec,
	token.Greater:        comparisonPrec,
	token.LessEqual:      comparisonPrec,
	token.GreaterEqual:   comparisonPrec,
	token.LessLess:       shiftPrec,
	token.GreaterGreater: shiftPrec,
	token.Plus:           additivePrec,
	token.Minus:          additivePrec,
	token.Pipe:           additivePrec,
	token.Caret:          additivePrec,
	token.Star:           multiplicativePrec,
	token.Slash:          multiplicativePrec,
	token.Percent:        multiplicativePrec,
	token.Amp:            multiplicativePrec,
	token.ColonColon:     enumAccessPrec,
	token.PlusPlus:       postfixPrec,
	token.MinusMinus:     postfixPrec,
	token.LParen:         callPrec,
	token.LBracket:       callPrec,
	token.Dot:            callPrec,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Loader resolves a load/import path to the source text of the file
// it names, so the parser can splice it in without owning any file
// I/O itself.
type Loader interface {
	Load(path string) (fileID int, source string, err error)
}

// Parser consumes one file's token stream (plus, transitively, any
// file it load/imports) and builds a *ast.CompilationUnit.
type Parser struct {
	ctx    *semantic.Context
	loader Loader
	lex    *lexer.Lexer
	fileID int

	cur  token.Token
	peek token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn

	loadedPaths map[string]bool

	// noStructLiteral suppresses `Name{...}` struct-literal parsing
	// while parsing the condition of if/while/switch or the collection
	// of a for-each, so that the opening brace of the following block
	// is never mistaken for one, mirroring the same composite-literal
	// restriction C-family grammars with brace-delimited blocks need.
	noStructLiteral bool

	// currentStructName and pendingSelfPointers track the self-reference
	// patch while parsing one struct's field list; see types.go.
	currentStructName   string
	pendingSelfPointers []*types.Pointer
}

// New returns a Parser reading fileID's source through lex, sharing
// ctx with every other file pulled in via load/import through loader.
func New(fileID int, lex *lexer.Lexer, ctx *semantic.Context, loader Loader) *Parser {
	p := &Parser{
		ctx:         ctx,
		loader:      loader,
		lex:         lex,
		fileID:      fileID,
		loadedPaths: make(map[string]bool),
	}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.Ident:      p.parseIdentifier,
		token.Int:        p.parseIntegerLiteral,
		token.Float:      p.parseFloatLiteral,
		token.String:     p.parseStringLiteral,
		token.Char:       p.parseCharLiteral,
		token.True:       p.parseBoolLiteral,
		token.False:      p.parseBoolLiteral,
		token.Null:       p.parseNullLiteral,
		token.LParen:     p.parseGroupedExpression,
		token.LBracket:   p.parseArrayLiteral,
		token.Minus:      p.parseUnary,
		token.Bang:       p.parseUnary,
		token.Tilde:      p.parseUnary,
		token.Star:       p.parseUnary,
		token.Amp:        p.parseUnary,
		token.PlusPlus:   p.parsePrefixIncDec,
		token.MinusMinus: p.parsePrefixIncDec,
		token.Cast:       p.parseCastExpression,
		token.TypeSize:   p.parseTypeSizeExpression,
		token.ValueSize:  p.parseValueSizeExpression,
		token.If:         p.parseIfExpression,
		token.Switch:     p.parseSwitchExpression,
		token.LBrace:     p.parseLambdaExpression,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.Plus:           p.parseBinary,
		token.Minus:          p.parseBinary,
		token.Star:           p.parseBinary,
		token.Slash:          p.parseBinary,
		token.Percent:        p.parseBinary,
		token.Amp:            p.parseBinary,
		token.Pipe:           p.parseBinary,
		token.Caret:          p.parseBinary,
		token.LessLess:       p.parseShift,
		token.GreaterGreater: p.parseShift,
		token.EqualEqual:     p.parseComparison,
		token.BangEqual:      p.parseComparison,
		token.Less:           p.parseComparison,
		token.Greater:        p.parseComparison,
		token.LessEqual:      p.parseComparison,
		token.GreaterEqual:   p.parseComparison,
		token.AmpAmp:         p.parseLogical,
		token.PipePipe:       p.parseLogical,
		token.Equal:          p.parseAssign,
		token.PlusEqual:      p.parseCompoundAssign,
		token.MinusEqual:     p.parseCompoundAssign,
		token.StarEqual:      p.parseCompoundAssign,
		token.SlashEqual:     p.parseCompoundAssign,
		token.PercentEqual:   p.parseCompoundAssign,
		token.LParen:         p.parseCall,
		token.LBracket:       p.parseIndex,
		token.Dot:            p.parseDot,
		token.ColonColon:     p.parseEnumAccess,
		token.PlusPlus:       p.parsePostfixIncDec,
		token.MinusMinus:     p.parsePostfixIncDec,
	}

	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) peekPrecedence() precedence {
	if pr, ok := precedences[p.peek.Kind]; ok {
		return pr
	}
	return lowest
}

// expect advances past the current token if it has kind k, reporting
// a fatal diagnostic and unwinding otherwise.
func (p *Parser) expect(k token.Kind) token.Token {
	if !p.curIs(k) {
		p.fatal("expected %s, got %s (%q)", k, p.cur.Kind, p.cur.Literal)
	}
	tok := p.cur
	p.advance()
	return tok
}

// ParseCompilationUnit parses the file this Parser was built over,
// inlining load/import targets in encounter order, and returns the
// resulting unit. A fatal error anywhere aborts the rest of the file;
// whatever was parsed before the abort is still returned, alongside
// whatever diagnostics were already reported.
func (p *Parser) ParseCompilationUnit(path string) (unit *ast.CompilationUnit) {
	unit = &ast.CompilationUnit{Path: path}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortParse); !ok {
				panic(r)
			}
		}
	}()

	for !p.curIs(token.EOF) {
		stmts := p.parseTopLevelDeclaration()
		unit.Statements = append(unit.Statements, stmts...)
	}
	return unit
}

// parseTopLevelDeclaration parses one top-level form. A load directive
// expands to the statements of the file it names (returned directly,
// without an enclosing Load marker node, since the splice already
// represents the directive's effect). An import directive is not
// expanded: it returns a single ast.Import node, and no file is read
// for it. Everything else returns a single-element slice.
func (p *Parser) parseTopLevelDeclaration() []ast.Statement {
	switch p.cur.Kind {
	case token.Load:
		return p.parseLoadDirective()
	case token.Import:
		return []ast.Statement{p.parseImportDirective()}
	case token.Var:
		return []ast.Statement{p.parseVarDecl()}
	case token.Type:
		return []ast.Statement{p.parseTypeAliasDecl()}
	case token.Struct, token.Packed:
		return []ast.Statement{p.parseStructDecl()}
	case token.Enum:
		return []ast.Statement{p.parseEnumDecl()}
	case token.Fun, token.Extern, token.Prefix, token.Infix, token.Postfix:
		return []ast.Statement{p.parseFunDecl()}
	default:
		return []ast.Statement{p.parseStatement()}
	}
}

func (p *Parser) parseLoadDirective() []ast.Statement {
	tok := p.cur
	p.advance() // 'load'
	pathTok := p.expect(token.String)
	p.expect(token.Semicolon)

	if p.loadedPaths[pathTok.Literal] {
		return nil
	}
	p.loadedPaths[pathTok.Literal] = true

	if p.loader == nil {
		p.errorf("load %q: no loader configured for this parse", pathTok.Literal)
		return []ast.Statement{&ast.Load{Token: tok, Path: pathTok.Literal}}
	}
	fileID, src, err := p.loader.Load(pathTok.Literal)
	if err != nil {
		p.errorf("load %q: %s", pathTok.Literal, err)
		return []ast.Statement{&ast.Load{Token: tok, Path: pathTok.Literal}}
	}

	sub := New(fileID, lexer.New(fileID, src), p.ctx, p.loader)
	sub.loadedPaths = p.loadedPaths
	subUnit := sub.ParseCompilationUnit(pathTok.Literal)
	return subUnit.Statements
}

func (p *Parser) parseImportDirective() ast.Statement {
	tok := p.cur
	p.advance() // 'import'
	pathTok := p.expect(token.String)

	alias := ""
	if p.curIs(token.Ident) && p.cur.Literal == "as" {
		p.advance()
		alias = p.expect(token.Ident).Literal
	}
	p.expect(token.Semicolon)
	return &ast.Import{Token: tok, Path: pathTok.Literal, Alias: alias}
}
