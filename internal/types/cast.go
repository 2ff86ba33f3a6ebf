package types

// Castable reports whether an explicit cast(to) from is permitted. The
// relation is one-way: Castable(a, b) says nothing about Castable(b, a).
//
// Void, None, Function, Enum and EnumElement never participate in a
// cast, in either direction. Two equal types are always castable (a
// no-op cast, reported separately as a redundant-cast warning by the
// type checker rather than rejected here).
func Castable(from, to Type) bool {
	if Equals(from, to) {
		return true
	}

	switch from.Kind() {
	case KindVoid, KindNone, KindFunction, KindEnum, KindEnumElement:
		return false
	}
	switch to.Kind() {
	case KindVoid, KindNone, KindFunction, KindEnum, KindEnumElement:
		return false
	}

	switch f := from.(type) {
	case *Number:
		switch to.Kind() {
		case KindNumber:
			return true
		case KindPointer:
			// An integer or float value may be boxed into a pointer of
			// any base type, void or typed (reinterpreted as an
			// address); the reverse direction, pointer to number, is
			// handled below under Pointer and is always legal too.
			return true
		default:
			return false
		}

	case *Pointer:
		switch t := to.(type) {
		case *Pointer:
			_, fromVoid := f.Base.(*Void)
			_, toVoid := t.Base.(*Void)
			return fromVoid || toVoid
		case *Number:
			return true
		default:
			return false
		}

	case *Array:
		t, ok := to.(*Pointer)
		if !ok {
			return false
		}
		return Equals(f.Element, t.Base)

	case *Null:
		_, ok := to.(*Pointer)
		return ok

	case *GenericStruct, *GenericParameter, *Struct:
		return false

	default:
		return false
	}
}
