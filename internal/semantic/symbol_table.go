package semantic

import "github.com/jot-lang/jot/internal/types"

// Symbol is one entry in a SymbolTable: a named value with its
// resolved type and the mutability the declaration gave it.
type Symbol struct {
	Name     string
	Type     types.Type
	ReadOnly bool
}

// SymbolTable is a lexically scoped map from name to Symbol, chained
// to its enclosing scope so lookups fall through to outer declarations
// the way block scoping requires.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable returns an empty top-level scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable returns a new scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), outer: outer}
}

// Define adds a mutable symbol to the current scope.
func (s *SymbolTable) Define(name string, t types.Type) *Symbol {
	sym := &Symbol{Name: name, Type: t}
	s.symbols[name] = sym
	return sym
}

// DefineReadOnly adds an immutable symbol to the current scope.
func (s *SymbolTable) DefineReadOnly(name string, t types.Type) *Symbol {
	sym := &Symbol{Name: name, Type: t, ReadOnly: true}
	s.symbols[name] = sym
	return sym
}

// Resolve looks up name in this scope, then each enclosing scope in
// turn.
func (s *SymbolTable) Resolve(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	if !ok && s.outer != nil {
		return s.outer.Resolve(name)
	}
	return sym, ok
}

// ResolveLocal looks up name only in this exact scope, without
// falling through to outer scopes. Used to detect redeclaration
// within the same block.
func (s *SymbolTable) ResolveLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Outer returns the enclosing scope, or nil at the top level.
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}
