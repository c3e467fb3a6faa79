package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/symbol"
)

// Definition is what a name resolves to. Exactly four types implement it: *FieldDef, *MethodDef, *VarDef and
// *GlobalDef, so a type switch over them is exhaustive.
type Definition interface {
	Name() symbol.Symbol
	Type() Type
	// Decl returns the declaring node or nil for fabricated definitions.
	Decl() ast.Node
	IsLocal() bool
	IsExternal() bool
	aDefinition()
}

// ClassID and MethodID index the arenas of a Store. Owners are referenced by id so that definitions never hold
// pointers back up the ownership chain.
type ClassID int

type MethodID int

type ClassDef struct {
	id      ClassID
	name    symbol.Symbol
	decl    *ast.ClassDecl
	fields  []*FieldDef
	methods []*MethodDef
	entry   *MethodDef

	fieldIndex  map[symbol.Symbol]*FieldDef
	methodIndex map[symbol.Symbol]*MethodDef
}

func (c *ClassDef) ID() ClassID {
	return c.id
}

func (c *ClassDef) Name() symbol.Symbol {
	return c.name
}

// Decl returns nil for built-in classes.
func (c *ClassDef) Decl() *ast.ClassDecl {
	return c.decl
}

func (c *ClassDef) IsBuiltin() bool {
	return c.decl == nil
}

func (c *ClassDef) Type() Type {
	return Type{base: ClassBase, class: c}
}

// Fields returns the fields in declaration order.
func (c *ClassDef) Fields() []*FieldDef {
	return c.fields
}

// Methods returns the methods in declaration order, the entry point included.
func (c *ClassDef) Methods() []*MethodDef {
	return c.methods
}

func (c *ClassDef) Field(name symbol.Symbol) *FieldDef {
	return c.fieldIndex[name]
}

// Method looks up an instance method. The static entry point has a name space of its own and is never returned.
func (c *ClassDef) Method(name symbol.Symbol) *MethodDef {
	return c.methodIndex[name]
}

// EntryPoint returns the static entry point declared in this class, or nil.
func (c *ClassDef) EntryPoint() *MethodDef {
	return c.entry
}

type FieldDef struct {
	name  symbol.Symbol
	typ   Type
	owner ClassID
	decl  *ast.VarDecl
	index int
}

func (f *FieldDef) Name() symbol.Symbol { return f.name }
func (f *FieldDef) Type() Type          { return f.typ }
func (f *FieldDef) IsLocal() bool       { return false }
func (f *FieldDef) IsExternal() bool    { return f.decl == nil }
func (f *FieldDef) Owner() ClassID      { return f.owner }

// Index is the position of the field within its class, in declaration order.
func (f *FieldDef) Index() int { return f.index }

func (f *FieldDef) Decl() ast.Node {
	if f.decl == nil {
		return nil
	}
	return f.decl
}

type MethodDef struct {
	id     MethodID
	name   symbol.Symbol
	ret    Type
	params []*VarDef
	entry  bool
	owner  ClassID
	decl   ast.MethodDecl
}

func (m *MethodDef) ID() MethodID        { return m.id }
func (m *MethodDef) Name() symbol.Symbol { return m.name }
func (m *MethodDef) IsLocal() bool       { return false }
func (m *MethodDef) IsExternal() bool    { return m.decl == nil }
func (m *MethodDef) Owner() ClassID      { return m.owner }

// Type is the return type.
func (m *MethodDef) Type() Type { return m.ret }

// IsEntryPoint reports whether this is the static method that starts the program.
func (m *MethodDef) IsEntryPoint() bool { return m.entry }

func (m *MethodDef) Params() []*VarDef { return m.params }

func (m *MethodDef) Decl() ast.Node {
	if m.decl == nil {
		return nil
	}
	return m.decl
}

type VarDef struct {
	name   symbol.Symbol
	typ    Type
	method MethodID
	decl   *ast.VarDecl
	index  int
	param  bool
}

func (v *VarDef) Name() symbol.Symbol { return v.name }
func (v *VarDef) Type() Type          { return v.typ }
func (v *VarDef) IsLocal() bool       { return true }
func (v *VarDef) IsExternal() bool    { return false }
func (v *VarDef) Method() MethodID    { return v.method }
func (v *VarDef) IsParam() bool       { return v.param }

// Index is the parameter position for parameters and the declaration ordinal for locals.
func (v *VarDef) Index() int { return v.index }

func (v *VarDef) Decl() ast.Node {
	if v.decl == nil {
		return nil
	}
	return v.decl
}

// GlobalDef is a fabricated top-level binding such as System.
type GlobalDef struct {
	name symbol.Symbol
	typ  Type
}

func (g *GlobalDef) Name() symbol.Symbol { return g.name }
func (g *GlobalDef) Type() Type          { return g.typ }
func (g *GlobalDef) Decl() ast.Node      { return nil }
func (g *GlobalDef) IsLocal() bool       { return false }
func (g *GlobalDef) IsExternal() bool    { return true }

func (*FieldDef) aDefinition()  {}
func (*MethodDef) aDefinition() {}
func (*VarDef) aDefinition()    {}
func (*GlobalDef) aDefinition() {}

// Store owns every class, field, method, parameter and global definition of one program. It is written by the
// shallow declaration pass and read-only afterwards.
type Store struct {
	classes []*ClassDef
	methods []*MethodDef
	globals []*GlobalDef

	globalIndex map[symbol.Symbol]*GlobalDef
	classDecls  map[*ast.ClassDecl]*ClassDef
	methodDecls map[ast.MethodDecl]*MethodDef
	varDecls    map[*ast.VarDecl]Definition
}

func NewStore() *Store {
	return &Store{
		globalIndex: map[symbol.Symbol]*GlobalDef{},
		classDecls:  map[*ast.ClassDecl]*ClassDef{},
		methodDecls: map[ast.MethodDecl]*MethodDef{},
		varDecls:    map[*ast.VarDecl]Definition{},
	}
}

func (s *Store) Class(id ClassID) *ClassDef {
	return s.classes[id]
}

func (s *Store) Method(id MethodID) *MethodDef {
	return s.methods[id]
}

func (s *Store) Classes() []*ClassDef {
	return s.classes
}

func (s *Store) Methods() []*MethodDef {
	return s.methods
}

func (s *Store) Globals() []*GlobalDef {
	return s.globals
}

func (s *Store) Global(name symbol.Symbol) *GlobalDef {
	return s.globalIndex[name]
}

func (s *Store) ClassOf(decl *ast.ClassDecl) *ClassDef {
	return s.classDecls[decl]
}

func (s *Store) MethodOf(decl ast.MethodDecl) *MethodDef {
	return s.methodDecls[decl]
}

// DefOf returns the definition of a field or parameter declaration. Locals are only known to the body analysis.
func (s *Store) DefOf(decl *ast.VarDecl) Definition {
	return s.varDecls[decl]
}

func (s *Store) newClass(name symbol.Symbol, decl *ast.ClassDecl) *ClassDef {
	class := &ClassDef{
		id:          ClassID(len(s.classes)),
		name:        name,
		decl:        decl,
		fieldIndex:  map[symbol.Symbol]*FieldDef{},
		methodIndex: map[symbol.Symbol]*MethodDef{},
	}
	s.classes = append(s.classes, class)
	if decl != nil {
		s.classDecls[decl] = class
	}
	return class
}

// NewField adds a field to class. decl is nil for built-in fields.
func (s *Store) NewField(class *ClassDef, name symbol.Symbol, typ Type, decl *ast.VarDecl) (*FieldDef, error) {
	if _, ok := class.fieldIndex[name]; ok {
		return nil, s.duplicateMember(decl, "field '%s' has already been defined in '%s'", name, class.name)
	}
	field := &FieldDef{name: name, typ: typ, owner: class.id, decl: decl, index: len(class.fields)}
	class.fields = append(class.fields, field)
	class.fieldIndex[name] = field
	if decl != nil {
		s.varDecls[decl] = field
	}
	return field, nil
}

// NewMethod adds a method to class. decl is nil for built-in methods. Instance methods must have distinct names and a
// class has at most one entry point, which may share its name with an instance method.
func (s *Store) NewMethod(class *ClassDef, name symbol.Symbol, ret Type, entry bool, decl ast.MethodDecl) (*MethodDef, error) {
	var node ast.Node
	if decl != nil {
		node = decl
	}
	if entry && class.entry != nil {
		return nil, makeSemanticError(DuplicateMember, node, "entry point has already been defined in '%s'", class.name)
	}
	if _, ok := class.methodIndex[name]; ok && !entry {
		return nil, makeSemanticError(DuplicateMember, node, "method '%s' has already been defined in '%s'", name, class.name)
	}
	method := &MethodDef{
		id:    MethodID(len(s.methods)),
		name:  name,
		ret:   ret,
		entry: entry,
		owner: class.id,
		decl:  decl,
	}
	s.methods = append(s.methods, method)
	class.methods = append(class.methods, method)
	if entry {
		class.entry = method
	} else {
		class.methodIndex[name] = method
	}
	if decl != nil {
		s.methodDecls[decl] = method
	}
	return method, nil
}

// AddParameter appends a formal parameter to method. decl is nil for built-in methods and for the entry point.
func (s *Store) AddParameter(method *MethodDef, name symbol.Symbol, typ Type, decl *ast.VarDecl) *VarDef {
	param := &VarDef{
		name:   name,
		typ:    typ,
		method: method.id,
		decl:   decl,
		index:  len(method.params),
		param:  true,
	}
	method.params = append(method.params, param)
	if decl != nil {
		s.varDecls[decl] = param
	}
	return param
}

// NewGlobal registers an implicit global. A second global of the same name replaces nothing and is reported.
func (s *Store) NewGlobal(name symbol.Symbol, typ Type) (*GlobalDef, error) {
	if _, ok := s.globalIndex[name]; ok {
		return nil, makeSemanticError(DuplicateMember, nil, "global '%s' has already been defined", name)
	}
	global := &GlobalDef{name: name, typ: typ}
	s.globals = append(s.globals, global)
	s.globalIndex[name] = global
	return global, nil
}

func (s *Store) duplicateMember(decl *ast.VarDecl, format string, msg ...interface{}) error {
	if decl == nil {
		return makeSemanticError(DuplicateMember, nil, format, msg...)
	}
	return makeSemanticError(DuplicateMember, decl, format, msg...)
}

func newLocal(method *MethodDef, name symbol.Symbol, typ Type, decl *ast.VarDecl, index int) *VarDef {
	return &VarDef{name: name, typ: typ, method: method.id, decl: decl, index: index}
}
