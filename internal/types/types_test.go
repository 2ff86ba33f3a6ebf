package types_test

import (
	"testing"

	"github.com/jot-lang/jot/internal/types"
)

func TestEqualsNumberKind(t *testing.T) {
	a := &types.Number{NumKind: types.Int32}
	b := &types.Number{NumKind: types.Int32}
	c := &types.Number{NumKind: types.Int64}
	if !types.Equals(a, b) {
		t.Fatalf("expected two int32 Numbers to be equal")
	}
	if types.Equals(a, c) {
		t.Fatalf("expected int32 and int64 Numbers to differ")
	}
}

func TestEqualsPointerRecurses(t *testing.T) {
	a := &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	b := &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	c := &types.Pointer{Base: &types.Number{NumKind: types.Int8}}
	if !types.Equals(a, b) {
		t.Fatalf("expected pointers to equal bases to be equal")
	}
	if types.Equals(a, c) {
		t.Fatalf("expected pointers to differing bases to differ")
	}
}

func TestEqualsStructByName(t *testing.T) {
	a := &types.Struct{Name: "Point", Fields: []types.Field{{Name: "x", Type: &types.Number{NumKind: types.Int32}}}}
	b := &types.Struct{Name: "Point"}
	if !types.Equals(a, b) {
		t.Fatalf("expected structs with the same name to be equal regardless of field list")
	}
}

func TestFieldByNameReturnsIndex(t *testing.T) {
	s := &types.Struct{
		Name: "Point",
		Fields: []types.Field{
			{Name: "x", Type: &types.Number{NumKind: types.Int32}},
			{Name: "y", Type: &types.Number{NumKind: types.Int32}},
		},
		FieldIndex: map[string]int{"x": 0, "y": 1},
	}
	field, idx, ok := s.FieldByName("y")
	if !ok || idx != 1 || field.Name != "y" {
		t.Fatalf("expected to find field y at index 1, got %+v, %d, %v", field, idx, ok)
	}
	if _, _, ok := s.FieldByName("z"); ok {
		t.Fatalf("expected field z not to be found")
	}
}

func TestCastableNumberToNumberAndPointer(t *testing.T) {
	i32 := &types.Number{NumKind: types.Int32}
	f64 := &types.Number{NumKind: types.Float64}
	voidPtr := types.NewVoidPointer()
	if !types.Castable(i32, f64) {
		t.Fatalf("expected int32 to be castable to float64")
	}
	if !types.Castable(i32, voidPtr) {
		t.Fatalf("expected int32 to be castable to a pointer")
	}
}

func TestCastablePointerRequiresVoidOnOneSide(t *testing.T) {
	a := &types.Pointer{Base: &types.Number{NumKind: types.Int32}}
	b := &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	if types.Castable(a, b) {
		t.Fatalf("expected two differently-typed non-void pointers not to be castable")
	}
	if !types.Castable(a, types.NewVoidPointer()) {
		t.Fatalf("expected a typed pointer to be castable to *void")
	}
}

func TestCastableEnumNeverParticipates(t *testing.T) {
	e := &types.Enum{Name: "Color", Element: &types.Number{NumKind: types.Int32}}
	i32 := &types.Number{NumKind: types.Int32}
	if types.Castable(e, i32) || types.Castable(i32, e) {
		t.Fatalf("expected an Enum never to participate in a cast")
	}
}

func TestCastableArrayToMatchingPointer(t *testing.T) {
	arr := &types.Array{Element: &types.Number{NumKind: types.UInt8}, Size: 4}
	ptr := &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	if !types.Castable(arr, ptr) {
		t.Fatalf("expected an array to be castable to a pointer to its element type")
	}
}

func TestInferNullBaseOnlySetsOnce(t *testing.T) {
	n := &types.Null{Base: &types.None{}}
	target := &types.Pointer{Base: &types.Number{NumKind: types.Int32}}
	types.InferNullBase(n, target)
	if n.Base != types.Type(target) {
		t.Fatalf("expected null's base to be set to target")
	}

	other := &types.Pointer{Base: &types.Number{NumKind: types.UInt8}}
	types.InferNullBase(n, other)
	if n.Base != types.Type(target) {
		t.Fatalf("expected a second InferNullBase call to be a no-op once resolved")
	}
}
