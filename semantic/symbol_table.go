package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/symbol"
)

type scope struct {
	defs      map[symbol.Symbol]*VarDef
	mayShadow bool
}

// SymbolTable resolves parameters and locals while a method body is analyzed. Fields and globals never live here.
type SymbolTable struct {
	scopes []scope
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// EnterScope pushes an empty scope. Names of a scope entered with mayShadow false may not be redefined by any scope
// nested inside it.
func (table *SymbolTable) EnterScope(mayShadow bool) {
	table.scopes = append(table.scopes, scope{defs: map[symbol.Symbol]*VarDef{}, mayShadow: mayShadow})
}

func (table *SymbolTable) LeaveScope() {
	if len(table.scopes) == 0 {
		panic("semantic: leave scope on empty symbol table")
	}
	table.scopes = table.scopes[:len(table.scopes)-1]
}

func (table *SymbolTable) Depth() int {
	return len(table.scopes)
}

// Lookup returns the innermost definition of name, or nil.
func (table *SymbolTable) Lookup(name symbol.Symbol) *VarDef {
	table.mustBeActive()
	for i := len(table.scopes) - 1; i >= 0; i-- {
		if def, ok := table.scopes[i].defs[name]; ok {
			return def
		}
	}
	return nil
}

// AddDef binds def in the current scope.
func (table *SymbolTable) AddDef(def *VarDef) error {
	table.mustBeActive()
	current := len(table.scopes) - 1
	if _, ok := table.scopes[current].defs[def.name]; ok {
		return table.duplicate(def)
	}
	for i := current - 1; i >= 0; i-- {
		if _, ok := table.scopes[i].defs[def.name]; ok && !table.scopes[i].mayShadow {
			return table.duplicate(def)
		}
	}
	table.scopes[current].defs[def.name] = def
	return nil
}

func (table *SymbolTable) duplicate(def *VarDef) error {
	var node ast.Node
	if def.decl != nil {
		node = def.decl
	}
	return makeSemanticError(DuplicateLocalDefinition, node, "variable '%s' is already defined in this scope", def.name)
}

func (table *SymbolTable) mustBeActive() {
	if len(table.scopes) == 0 {
		panic("semantic: symbol table used without a scope")
	}
}
