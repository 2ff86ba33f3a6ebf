// Package types implements the closed type variant family the parser and
// type checker operate on: every concrete type a Jot program can mention
// is one of the variants defined here.
package types

// Kind discriminates the variants of Type. The switch in equals,
// castable and every type-checker visit is expected to be exhaustive
// over this set.
type Kind int

const (
	KindNumber Kind = iota
	KindPointer
	KindArray
	KindFunction
	KindStruct
	KindGenericStruct
	KindGenericParameter
	KindEnum
	KindEnumElement
	KindNone
	KindVoid
	KindNull
)

// Type is implemented by every member of the closed variant family.
// String returns the canonical printable literal used, among other
// things, as the equality key for Struct types.
type Type interface {
	Kind() Kind
	String() string
}

// NumberKind enumerates the primitive numeric representations.
type NumberKind int

const (
	Int1 NumberKind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
)

func (nk NumberKind) String() string {
	return numberKindNames[nk]
}

var numberKindNames = [...]string{
	Int1:    "int1",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	UInt8:   "uint8",
	UInt16:  "uint16",
	UInt32:  "uint32",
	UInt64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

// IsFloat reports whether nk is one of the floating-point kinds.
func (nk NumberKind) IsFloat() bool { return nk == Float32 || nk == Float64 }

// IsSigned reports whether nk is a signed integer kind. Floats are not
// considered signed integers for this predicate.
func (nk NumberKind) IsSigned() bool {
	switch nk {
	case Int1, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// Number is an integer or floating-point type of a fixed width.
type Number struct {
	NumKind NumberKind
}

func (n *Number) Kind() Kind     { return KindNumber }
func (n *Number) String() string { return n.NumKind.String() }

// Pointer is a pointer to Base. A Pointer whose Base is Void is the
// untyped "any pointer" used as the universal pointer target for
// casts.
type Pointer struct {
	Base Type
}

func (p *Pointer) Kind() Kind     { return KindPointer }
func (p *Pointer) String() string { return "*" + p.Base.String() }

// Array is a fixed-size sequence of Element. Size 0 means the size is
// not statically known (an incomplete array type used only transiently
// during parsing).
type Array struct {
	Element Type
	Size    int
}

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) String() string { return "[]" + a.Element.String() }

// Function describes a callable's signature. VarargsElement is only
// meaningful when Varargs is true, and names the type each trailing
// variadic argument is expected to match (Void means unconstrained).
type Function struct {
	Parameters     []Type
	Return         Type
	Varargs        bool
	VarargsElement Type
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	s := "fun("
	for i, p := range f.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	if f.Varargs {
		if len(f.Parameters) > 0 {
			s += ", "
		}
		s += "varargs"
	}
	s += ")"
	if f.Return != nil {
		s += " -> " + f.Return.String()
	}
	return s
}

// Field is one ordered member of a Struct.
type Field struct {
	Name string
	Type Type
}

// Struct is a named, ordered record type. FieldIndex mirrors Fields for
// O(1) name lookup and is kept in lockstep with it.
//
// IsGeneric records whether the struct was declared with generic
// parameters (struct Name<T, U> { ... }); GenericParams then holds
// their declared names in order. A concrete instantiation is a
// GenericStruct wrapping this Struct, never a second Struct.
type Struct struct {
	Name          string
	Fields        []Field
	FieldIndex    map[string]int
	IsPacked      bool
	IsGeneric     bool
	GenericParams []string
}

func (s *Struct) Kind() Kind { return KindStruct }

// String returns the bare struct name. Packedness and generic
// parameters deliberately do not participate in the printed literal:
// two structs with the same name are the same struct for equality
// purposes regardless of those attributes, matching how the struct's
// identity is established once at declaration time.
func (s *Struct) String() string { return s.Name }

// FieldByName returns the field named n and its index, or ok=false.
func (s *Struct) FieldByName(n string) (Field, int, bool) {
	idx, ok := s.FieldIndex[n]
	if !ok {
		return Field{}, 0, false
	}
	return s.Fields[idx], idx, true
}

// GenericStruct is a concrete instantiation of a generic Struct with
// actual type arguments substituted for its declared generic
// parameters.
type GenericStruct struct {
	Base     *Struct
	TypeArgs []Type
}

func (g *GenericStruct) Kind() Kind { return KindGenericStruct }

func (g *GenericStruct) String() string {
	s := g.Base.Name + "<"
	for i, arg := range g.TypeArgs {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ">"
}

// GenericParameter stands for an as-yet-unsubstituted type parameter
// inside the body of a generic struct declaration.
type GenericParameter struct {
	Name string
}

func (g *GenericParameter) Kind() Kind     { return KindGenericParameter }
func (g *GenericParameter) String() string { return g.Name }

// Enum is a named set of EnumElement values sharing one underlying
// Number representation. Values maps each element name to its integer
// value; it is populated by the type checker, which also enforces that
// a declaration is either fully explicit or fully implicit.
type Enum struct {
	Name     string
	Elements []string
	Element  *Number
	Values   map[string]int64
}

func (e *Enum) Kind() Kind     { return KindEnum }
func (e *Enum) String() string { return e.Name }

// EnumElement is the type of a single enum member reference
// (EnumName.ElementName), distinct from Enum itself so that a bare
// enum member expression carries its declaring enum's name without
// requiring the whole Enum to be reconstructed.
type EnumElement struct {
	EnumName string
	Name     string
}

func (e *EnumElement) Kind() Kind     { return KindEnumElement }
func (e *EnumElement) String() string { return e.EnumName + "." + e.Name }

// None is a placeholder type used only while a struct's own fields are
// still being parsed (see the self-reference patch in the parser); it
// must never survive into a fully parsed AST.
type None struct{}

func (n *None) Kind() Kind     { return KindNone }
func (n *None) String() string { return "<none>" }

// Void is the type of a function with no return value, and also the
// base of the universal pointer type used in casts.
type Void struct{}

func (v *Void) Kind() Kind     { return KindVoid }
func (v *Void) String() string { return "void" }

// Null is the type of the null literal. Base starts out as None and is
// mutated in place, once, to the pointer type it is first used
// against (assignment, argument, return, or comparison) — see
// InferNullBase.
type Null struct {
	Base Type
}

func (n *Null) Kind() Kind     { return KindNull }
func (n *Null) String() string { return "null" }

// NewVoidPointer returns the universal pointer type (*void) used as
// the target of Pointer<->Pointer casts.
func NewVoidPointer() *Pointer { return &Pointer{Base: &Void{}} }

// InferNullBase binds an as-yet-unresolved Null's base type to target
// the first time it is used against a concrete type. It is a no-op if
// n's base has already been resolved past None.
func InferNullBase(n *Null, target Type) {
	if _, stillUnresolved := n.Base.(*None); n.Base == nil || stillUnresolved {
		n.Base = target
	}
}
