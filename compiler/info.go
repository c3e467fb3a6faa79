package compiler

import (
	"github.com/hashicorp/go-multierror"

	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/semantic"
	"github.com/xiaobogaga/minijava/symbol"
)

// Info is everything code generation needs to know about a program that passed Check. It is read-only.
type Info struct {
	ts          *semantic.TypeSystem
	annotations *semantic.Annotations
	constants   map[ast.Expr]int64
	warnings    *multierror.Error
}

// Classes maps every class name, built-in ones included, to its definition.
func (info *Info) Classes() map[symbol.Symbol]*semantic.ClassDef {
	classes := make(map[symbol.Symbol]*semantic.ClassDef, info.ts.ClassCount())
	for _, class := range info.ts.Classes() {
		classes[class.Name()] = class
	}
	return classes
}

// ClassList returns the classes in registration order: built-ins first, then user classes as declared.
func (info *Info) ClassList() []*semantic.ClassDef {
	return info.ts.Classes()
}

func (info *Info) Store() *semantic.Store {
	return info.ts.Store()
}

// Types maps every expression to its type.
func (info *Info) Types() map[ast.Expr]semantic.Type {
	return info.annotations.Types
}

func (info *Info) TypeOf(expr ast.Expr) (semantic.Type, bool) {
	tp, ok := info.annotations.Types[expr]
	return tp, ok
}

// Refs maps every name use to what it names.
func (info *Info) Refs() map[*ast.VariableAccess]semantic.Definition {
	return info.annotations.Refs
}

// Defs maps every field, parameter and local declaration to its definition.
func (info *Info) Defs() map[*ast.VarDecl]semantic.Definition {
	return info.annotations.Defs
}

// Locals returns the local variables of method in declaration order, for stack slot layout.
func (info *Info) Locals(method *semantic.MethodDef) []*semantic.VarDef {
	return info.annotations.Locals[method]
}

// MethodOf returns the method called at an invocation site.
func (info *Info) MethodOf(call *ast.MethodInvocation) *semantic.MethodDef {
	return info.annotations.Methods[call]
}

// Constants maps every expression with a compile-time value to it. Booleans are 0 or 1.
func (info *Info) Constants() map[ast.Expr]int64 {
	return info.constants
}

// Globals lists the implicit globals such as System.
func (info *Info) Globals() []*semantic.GlobalDef {
	return info.ts.Store().Globals()
}

// Warnings returns the undefined constant results found while folding, as a *multierror.Error, or nil.
func (info *Info) Warnings() error {
	return info.warnings.ErrorOrNil()
}
