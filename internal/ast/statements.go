package ast

import (
	"bytes"
	"strings"

	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// Block is a brace-delimited statement list, the body of every
// function, loop and branch.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position  { return b.Token.Pos() }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps an expression used for its side effects
// (a bare call, an assignment, an increment).
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos() }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String() + ";"
	}
	return ";"
}

// Param is one declared function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FunDecl declares a function, whether it has a body or is an extern
// forward declaration. Fixity names the call-syntax role the parser
// recorded for this function (see the Context's fixity table); it is
// FixityNone for ordinary functions.
type FunDecl struct {
	Token          token.Token // the 'fun' or 'extern' token
	Name           string
	Params         []Param
	Varargs        bool
	VarargsElement types.Type
	Return         types.Type
	Body           *Block // nil for extern declarations
	IsExtern       bool
	Fixity         Fixity
}

func (f *FunDecl) statementNode()       {}
func (f *FunDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunDecl) Pos() token.Position  { return f.Token.Pos() }
func (f *FunDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	prefix := "fun "
	if f.IsExtern {
		prefix = "extern fun "
	}
	sig := prefix + f.Name + "(" + strings.Join(params, ", ") + ")"
	if f.Return != nil {
		sig += " -> " + f.Return.String()
	}
	if f.Body == nil {
		return sig + ";"
	}
	return sig + " " + f.Body.String()
}

// Fixity classifies how a user-declared function may be called,
// recorded by the parser from the prefix/infix/postfix declaration
// keywords and consulted while parsing later call sites.
type Fixity int

const (
	FixityNone Fixity = iota
	FixityPrefix
	FixityInfix
	FixityPostfix
)

func (f Fixity) String() string {
	switch f {
	case FixityPrefix:
		return "prefix"
	case FixityInfix:
		return "infix"
	case FixityPostfix:
		return "postfix"
	default:
		return "none"
	}
}

// StructField is one declared field of a StructDecl.
type StructField struct {
	Name string
	Type types.Type
}

// StructDecl declares a (possibly generic) struct type.
type StructDecl struct {
	Token         token.Token
	Name          string
	Fields        []StructField
	IsPacked      bool
	GenericParams []string
}

func (s *StructDecl) statementNode()       {}
func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() token.Position  { return s.Token.Pos() }
func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct " + s.Name)
	if len(s.GenericParams) > 0 {
		out.WriteString("<" + strings.Join(s.GenericParams, ", ") + ">")
	}
	out.WriteString(" {\n")
	for _, f := range s.Fields {
		out.WriteString("  " + f.Name + ": " + f.Type.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// EnumDecl declares an enum type and its ordered elements.
type EnumDecl struct {
	Token       token.Token
	Name        string
	Elements    []string
	Values      []Expression // parallel to Elements; nil entries take the default successor value
	Underlying  types.Type
}

func (e *EnumDecl) statementNode()       {}
func (e *EnumDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EnumDecl) Pos() token.Position  { return e.Token.Pos() }
func (e *EnumDecl) String() string {
	return "enum " + e.Name + " {" + strings.Join(e.Elements, ", ") + "}"
}

// TypeAliasDecl declares `type Name = Underlying;`.
type TypeAliasDecl struct {
	Token      token.Token
	Name       string
	Underlying types.Type
}

func (t *TypeAliasDecl) statementNode()       {}
func (t *TypeAliasDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TypeAliasDecl) Pos() token.Position  { return t.Token.Pos() }
func (t *TypeAliasDecl) String() string {
	return "type " + t.Name + " = " + t.Underlying.String() + ";"
}

// VarDecl declares a variable, with an optional explicit type and an
// optional initializer; at least one of the two must be present.
type VarDecl struct {
	Token       token.Token
	Name        string
	Declared    types.Type // explicit annotation, nil if inferred
	Initializer Expression // nil if the declaration has no initializer
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos() }
func (v *VarDecl) String() string {
	s := "var " + v.Name
	if v.Declared != nil {
		s += ": " + v.Declared.String()
	}
	if v.Initializer != nil {
		s += " = " + v.Initializer.String()
	}
	return s + ";"
}

// Return returns from the enclosing function, optionally with a
// value.
type Return struct {
	Token token.Token
	Value Expression // nil for a bare `return;`
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() token.Position  { return r.Token.Pos() }
func (r *Return) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// If is an if/else-if/else chain. Else is either a *Block or a nested
// *If (else if), or nil.
type If struct {
	Token     token.Token
	Condition Expression
	Then      *Block
	Else      Statement
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() token.Position  { return i.Token.Pos() }
func (i *If) String() string {
	s := "if " + i.Condition.String() + " " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// While is a condition-guarded loop.
type While struct {
	Token     token.Token
	Condition Expression
	Body      *Block
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() token.Position  { return w.Token.Pos() }
func (w *While) String() string       { return "while " + w.Condition.String() + " " + w.Body.String() }

// Forever is `for { body }`: an unconditional loop, exited only by
// break, return, or an enclosing defer unwinding past it.
type Forever struct {
	Token token.Token
	Body  *Block
}

func (f *Forever) statementNode()       {}
func (f *Forever) TokenLiteral() string { return f.Token.Literal }
func (f *Forever) Pos() token.Position  { return f.Token.Pos() }
func (f *Forever) String() string       { return "for " + f.Body.String() }

// ForEach iterates Collection, binding each element to Var (default
// "it" when no `name:` prefix is given). Var's bound type follows the
// collection's element type for Array, or the pointed-to type for
// Pointer (the open-question decision recorded in SPEC_FULL.md §13).
type ForEach struct {
	Token      token.Token
	Var        string
	VarType    types.Type // filled in by the type checker
	Collection Expression
	Body       *Block
}

func (f *ForEach) statementNode()       {}
func (f *ForEach) TokenLiteral() string { return f.Token.Literal }
func (f *ForEach) Pos() token.Position  { return f.Token.Pos() }
func (f *ForEach) String() string {
	return "for " + f.Var + ": " + f.Collection.String() + " " + f.Body.String()
}

// ForRange iterates Var across [Start, End), stepping by Step (1 when
// nil). Start, End, and Step must share a single Number type, which
// becomes Var's bound type.
type ForRange struct {
	Token   token.Token
	Var     string
	VarType types.Type
	Start   Expression
	End     Expression
	Step    Expression // nil if omitted
	Body    *Block
}

func (f *ForRange) statementNode()       {}
func (f *ForRange) TokenLiteral() string { return f.Token.Literal }
func (f *ForRange) Pos() token.Position  { return f.Token.Pos() }
func (f *ForRange) String() string {
	s := "for " + f.Var + ": " + f.Start.String() + ".." + f.End.String()
	if f.Step != nil {
		s += ": " + f.Step.String()
	}
	return s + " " + f.Body.String()
}

// SwitchCase is one `case Value: Body` arm of a Switch.
type SwitchCase struct {
	Values []Expression // one or more matched values; empty means default
	Body   *Block
}

// Switch dispatches on Value against its Cases in order; a Case with
// no Values is the default arm.
type Switch struct {
	Token token.Token
	Value Expression
	Cases []SwitchCase
}

func (s *Switch) statementNode()       {}
func (s *Switch) TokenLiteral() string { return s.Token.Literal }
func (s *Switch) Pos() token.Position  { return s.Token.Pos() }
func (s *Switch) String() string {
	var out bytes.Buffer
	out.WriteString("switch " + s.Value.String() + " {\n")
	for _, c := range s.Cases {
		if len(c.Values) == 0 {
			out.WriteString("  default: ")
		} else {
			vals := make([]string, len(c.Values))
			for i, v := range c.Values {
				vals[i] = v.String()
			}
			out.WriteString("  case " + strings.Join(vals, ", ") + ": ")
		}
		out.WriteString(c.Body.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// Break exits the nearest enclosing loop. Level is the
// optional explicit nesting count (`break 1;`), nil for a bare
// `break;`; the two spell the same thing, and the checker warns when
// Level is the redundant literal 1.
type Break struct {
	Token token.Token
	Level *IntegerLiteral
}

func (b *Break) statementNode()       {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) Pos() token.Position  { return b.Token.Pos() }
func (b *Break) String() string {
	if b.Level != nil {
		return "break " + b.Level.String() + ";"
	}
	return "break;"
}

// Continue skips to the next iteration of the nearest enclosing loop.
// Level mirrors Break's.
type Continue struct {
	Token token.Token
	Level *IntegerLiteral
}

func (c *Continue) statementNode()       {}
func (c *Continue) TokenLiteral() string { return c.Token.Literal }
func (c *Continue) Pos() token.Position  { return c.Token.Pos() }
func (c *Continue) String() string {
	if c.Level != nil {
		return "continue " + c.Level.String() + ";"
	}
	return "continue;"
}

// Defer schedules Call to run when the enclosing function returns.
type Defer struct {
	Token token.Token
	Call  *Call
}

func (d *Defer) statementNode()       {}
func (d *Defer) TokenLiteral() string { return d.Token.Literal }
func (d *Defer) Pos() token.Position  { return d.Token.Pos() }
func (d *Defer) String() string       { return "defer " + d.Call.String() + ";" }

// Load records a `load "path";` directive. When the load succeeds the
// parser splices the loaded file's statements into the statement
// stream and emits no Load node; a Load node appears in a
// CompilationUnit only when no loader was configured or the load
// failed.
type Load struct {
	Token token.Token
	Path  string
}

func (l *Load) statementNode()       {}
func (l *Load) TokenLiteral() string { return l.Token.Literal }
func (l *Load) Pos() token.Position  { return l.Token.Pos() }
func (l *Load) String() string       { return "load \"" + l.Path + "\";" }

// Import is the module-level counterpart to Load; Alias is "" when the
// import was not given an explicit alias.
type Import struct {
	Token token.Token
	Path  string
	Alias string
}

func (i *Import) statementNode()       {}
func (i *Import) TokenLiteral() string { return i.Token.Literal }
func (i *Import) Pos() token.Position  { return i.Token.Pos() }
func (i *Import) String() string {
	if i.Alias != "" {
		return "import \"" + i.Path + "\" as " + i.Alias + ";"
	}
	return "import \"" + i.Path + "\";"
}
