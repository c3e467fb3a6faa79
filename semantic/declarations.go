package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/symbol"
)

// DefaultEntryPoint is the name the entry point must have unless configured otherwise.
const DefaultEntryPoint = "main"

type DeclarationOptions struct {
	// EntryPoint is the required name of the entry point. Empty means DefaultEntryPoint.
	EntryPoint string
	// ExpectEntryPoint makes a program without an entry point an error.
	ExpectEntryPoint bool
}

// declarer is the shallow pass. It fills the type system and the definition store with the signatures of every
// class before any method body is looked at, so classes may refer to each other in any order.
type declarer struct {
	ts         *TypeSystem
	pool       *symbol.Pool
	opts       DeclarationOptions
	entryName  symbol.Symbol
	argsType   Type
	entryCount int
}

// DeclareProgram registers every class, field, method and parameter of prog. It fails on the first problem found.
func DeclareProgram(ts *TypeSystem, pool *symbol.Pool, prog *ast.Program, opts DeclarationOptions) error {
	if opts.EntryPoint == "" {
		opts.EntryPoint = DefaultEntryPoint
	}
	d := &declarer{ts: ts, pool: pool, opts: opts, entryName: pool.Normalize(opts.EntryPoint)}
	err := d.declareStringClass()
	if err != nil {
		return err
	}
	err = d.declareClassNames(prog)
	if err != nil {
		return err
	}
	for _, classDecl := range prog.Classes {
		err = d.declareClassMembers(classDecl)
		if err != nil {
			return err
		}
	}
	if d.entryCount == 0 && opts.ExpectEntryPoint {
		return makeSemanticError(MissingEntryPoint, prog, "no entry point '%s' defined", d.entryName)
	}
	return nil
}

func (d *declarer) declareStringClass() error {
	name := d.pool.Normalize(StringClassName)
	class, ok := d.ts.ResolveClass(name)
	if !ok {
		var err error
		class, err = d.ts.NewClass(name, nil)
		if err != nil {
			return err
		}
	}
	d.argsType = class.Type().WithRank(1)
	return nil
}

func (d *declarer) declareClassNames(prog *ast.Program) error {
	for _, classDecl := range prog.Classes {
		_, err := d.ts.NewClass(classDecl.Name, classDecl)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *declarer) declareClassMembers(classDecl *ast.ClassDecl) error {
	class := d.ts.Store().ClassOf(classDecl)
	for _, field := range classDecl.Fields {
		err := d.declareField(class, field)
		if err != nil {
			return err
		}
	}
	for _, method := range classDecl.Methods {
		err := d.declareMethod(class, method)
		if err != nil {
			return err
		}
	}
	for _, entry := range classDecl.MainMethods {
		err := d.declareEntryPoint(class, entry)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *declarer) declareField(class *ClassDef, decl *ast.VarDecl) error {
	tp, err := d.resolveVariableType(decl, "field")
	if err != nil {
		return err
	}
	_, err = d.ts.Store().NewField(class, decl.Name, tp, decl)
	return err
}

func (d *declarer) declareMethod(class *ClassDef, decl *ast.Method) error {
	ret, err := d.ts.Resolve(decl.ReturnType)
	if err != nil {
		return err
	}
	params := make([]Type, 0, len(decl.Params))
	for _, param := range decl.Params {
		tp, err := d.resolveVariableType(param, "parameter")
		if err != nil {
			return err
		}
		params = append(params, tp)
	}
	method, err := d.ts.Store().NewMethod(class, decl.Name, ret, false, decl)
	if err != nil {
		return err
	}
	for i, param := range decl.Params {
		d.ts.Store().AddParameter(method, param.Name, params[i], param)
	}
	return nil
}

func (d *declarer) declareEntryPoint(class *ClassDef, decl *ast.MainMethod) error {
	d.entryCount++
	if d.entryCount > 1 {
		return makeSemanticError(MultipleEntryPoints, decl, "entry point '%s' in class '%s' is not the only one",
			decl.Name, class.Name())
	}
	if decl.Name != d.entryName {
		return makeSemanticError(WrongEntryPointName, decl, "entry point must be named '%s', not '%s'", d.entryName,
			decl.Name)
	}
	method, err := d.ts.Store().NewMethod(class, decl.Name, tVoid, true, decl)
	if err != nil {
		return err
	}
	d.ts.Store().AddParameter(method, decl.ArgName, d.argsType, nil)
	return nil
}

// resolveVariableType resolves the type of a field or parameter, neither of which may be void.
func (d *declarer) resolveVariableType(decl *ast.VarDecl, what string) (Type, error) {
	tp, err := d.ts.Resolve(decl.Type)
	if err != nil {
		return Type{}, err
	}
	if tp.IsVoid() {
		return Type{}, makeSemanticError(InvalidVoidUsage, decl, "%s '%s' cannot have type 'void'", what, decl.Name)
	}
	return tp, nil
}
