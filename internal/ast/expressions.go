package ast

import (
	"bytes"

	"github.com/jot-lang/jot/internal/token"
	"github.com/jot-lang/jot/internal/types"
)

// typedExpr gives every expression its Type slot and the
// GetType/SetType pair the type checker uses, so each concrete node
// only has to declare the fields specific to it.
type typedExpr struct {
	Type types.Type
}

func (e *typedExpr) GetType() types.Type  { return e.Type }
func (e *typedExpr) SetType(t types.Type) { e.Type = t }

// IsConstant defaults to false; literal and constant-folding-eligible
// nodes override it.
func (e *typedExpr) IsConstant() bool { return false }

// Identifier names a variable, function, struct, or enum element.
type Identifier struct {
	typedExpr
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() token.Position    { return i.Token.Pos() }

// IntegerLiteral is a whole-number literal; the type checker always
// types it as int32, whatever type the context expects.
type IntegerLiteral struct {
	typedExpr
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) String() string       { return l.Token.Literal }
func (l *IntegerLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *IntegerLiteral) IsConstant() bool     { return true }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	typedExpr
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) String() string       { return l.Token.Literal }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *FloatLiteral) IsConstant() bool     { return true }

// StringLiteral is a quoted string literal, its escapes already
// resolved by the lexer.
type StringLiteral struct {
	typedExpr
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *StringLiteral) IsConstant() bool     { return true }

// CharLiteral is a single-quoted character literal.
type CharLiteral struct {
	typedExpr
	Token token.Token
	Value byte
}

func (l *CharLiteral) expressionNode()      {}
func (l *CharLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *CharLiteral) String() string       { return "'" + string(l.Value) + "'" }
func (l *CharLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *CharLiteral) IsConstant() bool     { return true }

// BoolLiteral is a true/false literal.
type BoolLiteral struct {
	typedExpr
	Token token.Token
	Value bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLiteral) String() string       { return l.Token.Literal }
func (l *BoolLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *BoolLiteral) IsConstant() bool     { return true }

// NullLiteral is the null literal; the type checker gives it a
// *types.Null whose Base starts as *types.None and is patched in place
// to the pointer type the null is first used against.
type NullLiteral struct {
	typedExpr
	Token token.Token
}

func (l *NullLiteral) expressionNode()      {}
func (l *NullLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *NullLiteral) String() string       { return "null" }
func (l *NullLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *NullLiteral) IsConstant() bool     { return true }

// ArrayLiteral is a bracketed list of element expressions.
type ArrayLiteral struct {
	typedExpr
	Token    token.Token // the '[' token
	Elements []Expression
}

func (l *ArrayLiteral) expressionNode()      {}
func (l *ArrayLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ArrayLiteral) Pos() token.Position  { return l.Token.Pos() }
func (l *ArrayLiteral) String() string {
	return "[" + joinStrings(exprsToNodes(l.Elements), ", ") + "]"
}
func (l *ArrayLiteral) IsConstant() bool {
	for _, e := range l.Elements {
		if !e.IsConstant() {
			return false
		}
	}
	return true
}

// InitializeExpr constructs a struct value from positional arguments,
// matched against the struct's fields in declaration order with the
// same arity and type rules as Call: StructName { arg0, arg1, ... }.
type InitializeExpr struct {
	typedExpr
	Token token.Token // the struct name token
	Name  string
	Args  []Expression
}

func (i *InitializeExpr) expressionNode()      {}
func (i *InitializeExpr) TokenLiteral() string { return i.Token.Literal }
func (i *InitializeExpr) Pos() token.Position  { return i.Token.Pos() }
func (i *InitializeExpr) String() string {
	return i.Name + "{" + joinStrings(exprsToNodes(i.Args), ", ") + "}"
}
func (i *InitializeExpr) IsConstant() bool {
	for _, a := range i.Args {
		if !a.IsConstant() {
			return false
		}
	}
	return true
}

// IfExpr is the expression form of if: both branches are bare
// expressions, and an else branch is mandatory since the expression
// must always produce a value.
type IfExpr struct {
	typedExpr
	Token     token.Token // the 'if' token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *IfExpr) expressionNode()      {}
func (e *IfExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpr) Pos() token.Position  { return e.Token.Pos() }
func (e *IfExpr) String() string {
	return "if " + e.Condition.String() + " " + e.Then.String() + " else " + e.Else.String()
}
func (e *IfExpr) IsConstant() bool {
	return e.Condition.IsConstant() && e.Then.IsConstant() && e.Else.IsConstant()
}

// SwitchExprCase is one `values -> result;` arm of a SwitchExpr.
type SwitchExprCase struct {
	Values []Expression
	Result Expression
}

// SwitchExpr is the expression form of switch: every case's result and
// the mandatory default must share one type, which becomes the
// expression's own type. Unlike the Switch statement, a SwitchExpr
// without a default arm is a checker error, since the expression must
// always produce a value.
type SwitchExpr struct {
	typedExpr
	Token   token.Token // the 'switch' token
	Value   Expression
	Cases   []SwitchExprCase
	Default Expression // nil if the source omitted the default arm
}

func (s *SwitchExpr) expressionNode()      {}
func (s *SwitchExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchExpr) Pos() token.Position  { return s.Token.Pos() }
func (s *SwitchExpr) String() string {
	var out bytes.Buffer
	out.WriteString("switch " + s.Value.String() + " {\n")
	for _, c := range s.Cases {
		out.WriteString("  " + joinStrings(exprsToNodes(c.Values), ", ") + " -> " + c.Result.String() + ";\n")
	}
	if s.Default != nil {
		out.WriteString("  else -> " + s.Default.String() + ";\n")
	}
	out.WriteString("}")
	return out.String()
}
func (s *SwitchExpr) IsConstant() bool {
	if !s.Value.IsConstant() {
		return false
	}
	for _, c := range s.Cases {
		for _, v := range c.Values {
			if !v.IsConstant() {
				return false
			}
		}
		if !c.Result.IsConstant() {
			return false
		}
	}
	return s.Default == nil || s.Default.IsConstant()
}

// Lambda is an anonymous function value: `{ (params) returnType ->
// body }`, or the bare `{ body }` no-param/void-return form. It closes
// over its enclosing scope implicitly (captured names resolve through
// the checker's normal scope chain, with no explicit capture list in
// the syntax); its carried type is always a Pointer to a Function
// built from Params and Return.
type Lambda struct {
	typedExpr
	Token  token.Token // the '{' token
	Params []Param
	Return types.Type
	Body   *Block
}

func (l *Lambda) expressionNode()      {}
func (l *Lambda) TokenLiteral() string { return l.Token.Literal }
func (l *Lambda) Pos() token.Position  { return l.Token.Pos() }
func (l *Lambda) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	_, isVoidReturn := l.Return.(*types.Void)
	if len(l.Params) > 0 || !isVoidReturn {
		out.WriteString("(")
		for i, p := range l.Params {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(p.Name + ": " + p.Type.String())
		}
		out.WriteString(") ")
		if l.Return != nil {
			out.WriteString(l.Return.String())
		}
		out.WriteString(" -> ")
	}
	out.WriteString(l.Body.String())
	out.WriteString("}")
	return out.String()
}

// Unary is a prefix operator applied to an operand: -x !x ~x *x &x.
type Unary struct {
	typedExpr
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) Pos() token.Position  { return u.Token.Pos() }
func (u *Unary) String() string      { return "(" + u.Operator + u.Operand.String() + ")" }
func (u *Unary) IsConstant() bool    { return u.Operand.IsConstant() }

// IncDec is a prefix or postfix ++/-- applied to an l-value (Literal,
// Dot or Index target, per the parser's l-value restriction).
type IncDec struct {
	typedExpr
	Token    token.Token
	Operator string // "++" or "--"
	Operand  Expression
	Prefix   bool
}

func (i *IncDec) expressionNode()      {}
func (i *IncDec) TokenLiteral() string { return i.Token.Literal }
func (i *IncDec) Pos() token.Position  { return i.Token.Pos() }
func (i *IncDec) String() string {
	if i.Prefix {
		return i.Operator + i.Operand.String()
	}
	return i.Operand.String() + i.Operator
}

// Binary is a left-associative arithmetic or bitwise operation whose
// result type follows its operand types (+ - * / % & | ^).
type Binary struct {
	typedExpr
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) Pos() token.Position  { return b.Token.Pos() }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}
func (b *Binary) IsConstant() bool { return b.Left.IsConstant() && b.Right.IsConstant() }

// Shift is << or >>. It is kept as its own node, distinct from Binary,
// because its result type follows the left operand's Number kind
// (resolved in SPEC_FULL.md's open-question decision) rather than
// requiring both operands to share one type, as Binary does.
type Shift struct {
	typedExpr
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (s *Shift) expressionNode()      {}
func (s *Shift) TokenLiteral() string { return s.Token.Literal }
func (s *Shift) Pos() token.Position  { return s.Token.Pos() }
func (s *Shift) String() string {
	return "(" + s.Left.String() + " " + s.Operator + " " + s.Right.String() + ")"
}
func (s *Shift) IsConstant() bool { return s.Left.IsConstant() && s.Right.IsConstant() }

// Comparison is == != < > <= >=. The type checker always types it as
// int1 (boolean).
type Comparison struct {
	typedExpr
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (c *Comparison) expressionNode()      {}
func (c *Comparison) TokenLiteral() string { return c.Token.Literal }
func (c *Comparison) Pos() token.Position  { return c.Token.Pos() }
func (c *Comparison) String() string {
	return "(" + c.Left.String() + " " + c.Operator + " " + c.Right.String() + ")"
}
func (c *Comparison) IsConstant() bool { return c.Left.IsConstant() && c.Right.IsConstant() }

// Logical is && or ||, short-circuiting, always int1-typed.
type Logical struct {
	typedExpr
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (l *Logical) expressionNode()      {}
func (l *Logical) TokenLiteral() string { return l.Token.Literal }
func (l *Logical) Pos() token.Position  { return l.Token.Pos() }
func (l *Logical) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}
func (l *Logical) IsConstant() bool { return l.Left.IsConstant() && l.Right.IsConstant() }

// Assign is lhs = rhs. Compound assignments (+= etc.) are desugared by
// the parser into Assign(lhs, Binary(op, lhs, rhs)) before this node
// is ever built, so the checker only ever sees the plain form.
type Assign struct {
	typedExpr
	Token  token.Token
	Target Expression
	Value  Expression
}

func (a *Assign) expressionNode()      {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() token.Position  { return a.Token.Pos() }
func (a *Assign) String() string {
	return "(" + a.Target.String() + " = " + a.Value.String() + ")"
}

// Call invokes Callee with Args. Callee is usually an Identifier but
// may be any expression that resolves to a Function type.
type Call struct {
	typedExpr
	Token  token.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() token.Position  { return c.Token.Pos() }
func (c *Call) String() string {
	return c.Callee.String() + "(" + joinStrings(exprsToNodes(c.Args), ", ") + ")"
}

// Dot is receiver.field: a struct field access or, once the type
// checker resolves Receiver to an Enum, an enum element reference.
// FieldIndex is filled in by the type checker when Receiver resolves to
// a struct (directly or through a pointer); it stays -1 for enum
// element access, which has no backing field slot.
type Dot struct {
	typedExpr
	Token      token.Token
	Receiver   Expression
	Field      string
	FieldIndex int
}

func (d *Dot) expressionNode()      {}
func (d *Dot) TokenLiteral() string { return d.Token.Literal }
func (d *Dot) Pos() token.Position  { return d.Token.Pos() }
func (d *Dot) String() string       { return d.Receiver.String() + "." + d.Field }

// Index is receiver[index]: array or pointer element access.
type Index struct {
	typedExpr
	Token    token.Token // the '[' token
	Receiver Expression
	IndexExp Expression
}

func (i *Index) expressionNode()      {}
func (i *Index) TokenLiteral() string { return i.Token.Literal }
func (i *Index) Pos() token.Position  { return i.Token.Pos() }
func (i *Index) String() string       { return i.Receiver.String() + "[" + i.IndexExp.String() + "]" }

// IsConstant checks only the index operand, per the explicit
// open-question decision to leave this unrevisited until constant
// folding exists (out of scope here).
func (i *Index) IsConstant() bool { return i.IndexExp.IsConstant() }

// Cast is cast(TargetType) Value.
type Cast struct {
	typedExpr
	Token      token.Token
	TargetType types.Type
	Value      Expression
}

func (c *Cast) expressionNode()      {}
func (c *Cast) TokenLiteral() string { return c.Token.Literal }
func (c *Cast) Pos() token.Position  { return c.Token.Pos() }
func (c *Cast) String() string {
	return "cast(" + c.TargetType.String() + ") " + c.Value.String()
}
func (c *Cast) IsConstant() bool { return c.Value.IsConstant() }

// TypeSize is type_size(Type): the static byte size of a named type.
type TypeSize struct {
	typedExpr
	Token      token.Token
	TargetType types.Type
}

func (t *TypeSize) expressionNode()      {}
func (t *TypeSize) TokenLiteral() string { return t.Token.Literal }
func (t *TypeSize) Pos() token.Position  { return t.Token.Pos() }
func (t *TypeSize) String() string       { return "type_size(" + t.TargetType.String() + ")" }
func (t *TypeSize) IsConstant() bool     { return true }

// ValueSize is value_size(Value): the byte size of an expression's
// static type.
type ValueSize struct {
	typedExpr
	Token token.Token
	Value Expression
}

func (v *ValueSize) expressionNode()      {}
func (v *ValueSize) TokenLiteral() string { return v.Token.Literal }
func (v *ValueSize) Pos() token.Position  { return v.Token.Pos() }
func (v *ValueSize) String() string       { return "value_size(" + v.Value.String() + ")" }
func (v *ValueSize) IsConstant() bool     { return true }

// EnumAccess is Name::Elem: a reference to one member of a registered
// enum. Distinct from Dot so a bare enum member reference carries its
// declaring enum's name without resolving through a receiver value.
type EnumAccess struct {
	typedExpr
	Token       token.Token
	EnumName    string
	ElementName string
}

func (e *EnumAccess) expressionNode()      {}
func (e *EnumAccess) TokenLiteral() string { return e.Token.Literal }
func (e *EnumAccess) Pos() token.Position  { return e.Token.Pos() }
func (e *EnumAccess) String() string       { return e.EnumName + "::" + e.ElementName }
func (e *EnumAccess) IsConstant() bool     { return true }

// Grouped is a parenthesized expression, kept so the printed form
// round-trips grouping, even though it carries no semantics beyond its
// inner expression's.
type Grouped struct {
	typedExpr
	Token token.Token
	Inner Expression
}

func (g *Grouped) expressionNode()      {}
func (g *Grouped) TokenLiteral() string { return g.Token.Literal }
func (g *Grouped) Pos() token.Position  { return g.Token.Pos() }
func (g *Grouped) String() string       { return "(" + g.Inner.String() + ")" }
func (g *Grouped) IsConstant() bool     { return g.Inner.IsConstant() }
