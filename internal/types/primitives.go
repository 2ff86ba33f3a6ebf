package types

import "github.com/jot-lang/jot/internal/token"

// AliasTable resolves the reserved primitive type keywords (int32,
// float64, bool, ...) to their underlying Type. bool and char are true
// aliases: they resolve to the same *Number instance other code
// spelling int1/int8 would get, so a bool and an int1 are the same
// type for every purpose, exactly as aliases should be.
type AliasTable struct {
	byKeyword map[token.Kind]Type
}

// NewAliasTable builds the table of built-in primitive spellings.
func NewAliasTable() *AliasTable {
	t := &AliasTable{byKeyword: make(map[token.Kind]Type, 16)}

	num := func(k NumberKind) *Number { return &Number{NumKind: k} }

	t.byKeyword[token.Int1Type] = num(Int1)
	t.byKeyword[token.Int8Type] = num(Int8)
	t.byKeyword[token.Int16Type] = num(Int16)
	t.byKeyword[token.Int32Type] = num(Int32)
	t.byKeyword[token.Int64Type] = num(Int64)
	t.byKeyword[token.UInt8Type] = num(UInt8)
	t.byKeyword[token.UInt16Type] = num(UInt16)
	t.byKeyword[token.UInt32Type] = num(UInt32)
	t.byKeyword[token.UInt64Type] = num(UInt64)
	t.byKeyword[token.Float32Type] = num(Float32)
	t.byKeyword[token.Float64Type] = num(Float64)

	// Aliases: bool is int1, char/uchar are the 8-bit integer kinds.
	t.byKeyword[token.BoolType] = t.byKeyword[token.Int1Type]
	t.byKeyword[token.CharType] = t.byKeyword[token.Int8Type]
	t.byKeyword[token.UCharType] = t.byKeyword[token.UInt8Type]

	t.byKeyword[token.VoidType] = &Void{}

	return t
}

// Resolve returns the Type a primitive keyword Kind denotes, or
// ok=false if k isn't one of the reserved primitive spellings.
func (t *AliasTable) Resolve(k token.Kind) (Type, bool) {
	ty, ok := t.byKeyword[k]
	return ty, ok
}
