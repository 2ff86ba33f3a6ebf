package types

// Equals reports whether a and b denote the same type, structurally.
// Struct identity is decided by the printed literal (the struct name),
// matching how the original compiler keyed struct equality off its
// type_literal() rather than pointer identity, since a struct type can
// be reached through multiple AST nodes referring back to one
// declaration. EnumElement types compare by enum name alone, and an
// EnumElement equals the Enum of that name, so an enum member value
// matches a variable, parameter or return type declared as the enum.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *Enum:
		if bt, ok := b.(*EnumElement); ok {
			return at.Name == bt.EnumName
		}
	case *EnumElement:
		if bt, ok := b.(*Enum); ok {
			return at.EnumName == bt.Name
		}
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch at := a.(type) {
	case *Number:
		return at.NumKind == b.(*Number).NumKind
	case *Pointer:
		return Equals(at.Base, b.(*Pointer).Base)
	case *Array:
		bt := b.(*Array)
		return at.Size == bt.Size && Equals(at.Element, bt.Element)
	case *Function:
		bt := b.(*Function)
		if len(at.Parameters) != len(bt.Parameters) {
			return false
		}
		if at.Varargs != bt.Varargs {
			return false
		}
		for i := range at.Parameters {
			if !Equals(at.Parameters[i], bt.Parameters[i]) {
				return false
			}
		}
		return Equals(at.Return, bt.Return)
	case *Struct:
		return at.String() == b.(*Struct).String()
	case *GenericStruct:
		bt := b.(*GenericStruct)
		if at.Base.String() != bt.Base.String() || len(at.TypeArgs) != len(bt.TypeArgs) {
			return false
		}
		for i := range at.TypeArgs {
			if !Equals(at.TypeArgs[i], bt.TypeArgs[i]) {
				return false
			}
		}
		return true
	case *GenericParameter:
		return at.Name == b.(*GenericParameter).Name
	case *Enum:
		return at.Name == b.(*Enum).Name
	case *EnumElement:
		bt := b.(*EnumElement)
		return at.EnumName == bt.EnumName
	case *None, *Void, *Null:
		return true
	default:
		return a.Kind() == b.Kind()
	}
}
