package semantic

import (
	"strings"

	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/symbol"
)

type BaseKind uint8

const (
	InvalidBase BaseKind = iota
	IntBase
	BooleanBase
	VoidBase
	NullBase
	ClassBase
)

// Type is a (base, rank) pair. Types are plain values: two types are equal (==) iff they have the same base and the
// same rank, no matter how they were built.
type Type struct {
	base  BaseKind
	class *ClassDef // Only set for ClassBase.
	rank  int
}

var (
	tInt     = Type{base: IntBase}
	tBoolean = Type{base: BooleanBase}
	tVoid    = Type{base: VoidBase}
	tNull    = Type{base: NullBase}
)

// Primitive returns the scalar type of one of the four built-in bases.
func Primitive(kind BaseKind) Type {
	switch kind {
	case IntBase:
		return tInt
	case BooleanBase:
		return tBoolean
	case VoidBase:
		return tVoid
	case NullBase:
		return tNull
	}
	panic("semantic: no primitive type for base " + kind.String())
}

func (k BaseKind) String() string {
	switch k {
	case IntBase:
		return "int"
	case BooleanBase:
		return "boolean"
	case VoidBase:
		return "void"
	case NullBase:
		return "null"
	case ClassBase:
		return "class"
	}
	return "invalid"
}

func (t Type) Base() BaseKind {
	return t.base
}

// Class returns the class of a class-based type (scalar or array), nil otherwise.
func (t Type) Class() *ClassDef {
	return t.class
}

func (t Type) Rank() int {
	return t.rank
}

func (t Type) IsValid() bool {
	return t.base != InvalidBase
}

func (t Type) IsArray() bool {
	return t.rank > 0
}

// IsReference reports whether null may be assigned to a value of this type.
func (t Type) IsReference() bool {
	return t.IsArray() || t.base == ClassBase || t.base == NullBase
}

// IsObjRef reports whether t is a scalar class type, the only kind of type with members.
func (t Type) IsObjRef() bool {
	return !t.IsArray() && t.base == ClassBase
}

func (t Type) HasMembers() bool {
	return t.IsObjRef()
}

func (t Type) IsVoid() bool {
	return t.base == VoidBase
}

func (t Type) WithRank(rank int) Type {
	if rank < 0 {
		panic("semantic: negative rank")
	}
	t.rank = rank
	return t
}

// Subrank is the element type of an array type. It panics for scalars.
func (t Type) Subrank() Type {
	if t.rank == 0 {
		panic("semantic: subrank of scalar type " + t.String())
	}
	return t.WithRank(t.rank - 1)
}

func (t Type) Pure() Type {
	return t.WithRank(0)
}

func (t Type) String() string {
	var name string
	if t.base == ClassBase {
		name = t.class.Name().String()
	} else {
		name = t.base.String()
	}
	return name + strings.Repeat("[]", t.rank)
}

// TypeSystem maps class names to their definitions and turns type syntax into Types. Classes are registered by the
// shallow declaration pass only.
type TypeSystem struct {
	store   *Store
	classes map[symbol.Symbol]*ClassDef
}

func NewTypeSystem(store *Store) *TypeSystem {
	return &TypeSystem{store: store, classes: map[symbol.Symbol]*ClassDef{}}
}

func (ts *TypeSystem) Store() *Store {
	return ts.store
}

// NewClass registers a class type. decl is nil for built-in classes.
func (ts *TypeSystem) NewClass(name symbol.Symbol, decl *ast.ClassDecl) (*ClassDef, error) {
	if _, ok := ts.classes[name]; ok {
		if decl == nil {
			return nil, makeSemanticError(DuplicateClass, nil, "class '%s' already defined", name)
		}
		return nil, makeSemanticError(DuplicateClass, decl, "class '%s' already defined", name)
	}
	class := ts.store.newClass(name, decl)
	ts.classes[name] = class
	return class, nil
}

func (ts *TypeSystem) ResolveClass(name symbol.Symbol) (*ClassDef, bool) {
	class, ok := ts.classes[name]
	return class, ok
}

// Resolve converts a parsed type reference into a Type.
func (ts *TypeSystem) Resolve(typ *ast.Type) (Type, error) {
	switch typ.Primitive {
	case ast.IntType:
		return tInt.WithRank(typ.Rank), nil
	case ast.BooleanType:
		return tBoolean.WithRank(typ.Rank), nil
	case ast.VoidType:
		if typ.Rank > 0 {
			return Type{}, makeSemanticError(InvalidVoidUsage, typ, "array of type 'void' is not allowed")
		}
		return tVoid, nil
	}
	class, ok := ts.classes[typ.Class]
	if !ok {
		return Type{}, makeSemanticError(UnknownType, typ, "cannot resolve typename '%s'", typ.Class)
	}
	return class.Type().WithRank(typ.Rank), nil
}

// IsAssignable reports whether a value of type from may be stored where a value of type to is expected.
func (ts *TypeSystem) IsAssignable(from, to Type) bool {
	return from == to || (from == tNull && to.IsReference())
}

// Classes returns the registered classes in registration order.
func (ts *TypeSystem) Classes() []*ClassDef {
	return ts.store.Classes()
}

func (ts *TypeSystem) ClassCount() int {
	return len(ts.classes)
}
