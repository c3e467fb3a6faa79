package semantic

import (
	"fmt"

	"github.com/xiaobogaga/minijava/ast"
)

// Annotations are the results of Analyze, keyed by node identity. They are owned by the caller and written once per
// node.
type Annotations struct {
	Types   map[ast.Expr]Type
	Refs    map[*ast.VariableAccess]Definition
	Methods map[*ast.MethodInvocation]*MethodDef
	Defs    map[*ast.VarDecl]Definition
	// Locals lists the local variables of every analyzed method in declaration order. Parameters are not included.
	Locals map[*MethodDef][]*VarDef
}

func NewAnnotations() *Annotations {
	return &Annotations{
		Types:   map[ast.Expr]Type{},
		Refs:    map[*ast.VariableAccess]Definition{},
		Methods: map[*ast.MethodInvocation]*MethodDef{},
		Defs:    map[*ast.VarDecl]Definition{},
		Locals:  map[*MethodDef][]*VarDef{},
	}
}

// analysisContext is what a node needs to know about where it sits. It is passed by value and never modified.
type analysisContext struct {
	class  *ClassDef
	method *MethodDef
	static bool
}

type analyzer struct {
	ts      *TypeSystem
	a       *Annotations
	symbols *SymbolTable
	locals  []*VarDef
}

// Analyze resolves every name and computes the type of every expression in the method bodies of prog. DeclareProgram
// must have succeeded on the same type system before. The first violation found is returned.
func Analyze(ts *TypeSystem, prog *ast.Program, annotations *Annotations) error {
	an := &analyzer{ts: ts, a: annotations}
	for _, classDecl := range prog.Classes {
		class := ts.Store().ClassOf(classDecl)
		if class == nil {
			return fmt.Errorf("semantic: class '%s' was not declared", classDecl.Name)
		}
		for _, field := range classDecl.Fields {
			an.a.Defs[field] = ts.Store().DefOf(field)
		}
		for _, method := range classDecl.Methods {
			err := an.analyzeMethod(class, method, false)
			if err != nil {
				return err
			}
		}
		for _, entry := range classDecl.MainMethods {
			err := an.analyzeMethod(class, entry, true)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (an *analyzer) analyzeMethod(class *ClassDef, decl ast.MethodDecl, static bool) error {
	method := an.ts.Store().MethodOf(decl)
	if method == nil {
		return fmt.Errorf("semantic: method '%s' was not declared", decl.MethodName())
	}
	ctx := analysisContext{class: class, method: method, static: static}
	an.symbols = NewSymbolTable()
	an.locals = []*VarDef{}
	an.symbols.EnterScope(false)
	for _, param := range method.Params() {
		err := an.symbols.AddDef(param)
		if err != nil {
			return err
		}
		if param.decl != nil {
			an.a.Defs[param.decl] = param
		}
	}
	if body := decl.MethodBody(); body != nil {
		err := an.analyzeBlock(ctx, body)
		if err != nil {
			return err
		}
	}
	an.symbols.LeaveScope()
	an.a.Locals[method] = an.locals
	return nil
}

func (an *analyzer) analyzeBlock(ctx analysisContext, block *ast.Block) error {
	an.symbols.EnterScope(true)
	for _, stmt := range block.Body {
		err := an.analyzeBlockStmt(ctx, stmt)
		if err != nil {
			return err
		}
	}
	an.symbols.LeaveScope()
	return nil
}

func (an *analyzer) analyzeBlockStmt(ctx analysisContext, stmt ast.BlockStmt) error {
	switch s := stmt.(type) {
	case *ast.LocalVariableStatement:
		return an.analyzeLocalVariable(ctx, s)
	case ast.Stmt:
		return an.analyzeStmt(ctx, s)
	}
	panic(fmt.Sprintf("semantic: unexpected block statement %T", stmt))
}

func (an *analyzer) analyzeLocalVariable(ctx analysisContext, stmt *ast.LocalVariableStatement) error {
	decl := stmt.Decl
	tp, err := an.ts.Resolve(decl.Type)
	if err != nil {
		return err
	}
	if tp.IsVoid() {
		return makeSemanticError(InvalidVoidUsage, decl, "variable '%s' cannot have type 'void'", decl.Name)
	}
	local := newLocal(ctx.method, decl.Name, tp, decl, len(an.locals))
	err = an.symbols.AddDef(local)
	if err != nil {
		return err
	}
	an.locals = append(an.locals, local)
	an.a.Defs[decl] = local
	if stmt.Init == nil {
		return nil
	}
	initType, err := an.analyzeExpr(ctx, stmt.Init)
	if err != nil {
		return err
	}
	return an.checkAssignable(stmt.Init, initType, tp)
}

func (an *analyzer) analyzeStmt(ctx analysisContext, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := an.analyzeExpr(ctx, s.Expr)
		return err
	case *ast.Block:
		return an.analyzeBlock(ctx, s)
	case *ast.IfStatement:
		err := an.analyzeCondition(ctx, s.Cond)
		if err != nil {
			return err
		}
		err = an.analyzeNested(ctx, s.Then)
		if err != nil || s.Else == nil {
			return err
		}
		return an.analyzeNested(ctx, s.Else)
	case *ast.WhileStatement:
		err := an.analyzeCondition(ctx, s.Cond)
		if err != nil {
			return err
		}
		return an.analyzeNested(ctx, s.Body)
	case *ast.ReturnStatement:
		return an.analyzeReturn(ctx, s)
	case *ast.EmptyStatement:
		return nil
	}
	panic(fmt.Sprintf("semantic: unexpected statement %T", stmt))
}

// analyzeNested analyzes the body of an if or while. A body that is not a block still gets its own scope.
func (an *analyzer) analyzeNested(ctx analysisContext, stmt ast.Stmt) error {
	if block, ok := stmt.(*ast.Block); ok {
		return an.analyzeBlock(ctx, block)
	}
	an.symbols.EnterScope(true)
	err := an.analyzeStmt(ctx, stmt)
	if err != nil {
		return err
	}
	an.symbols.LeaveScope()
	return nil
}

func (an *analyzer) analyzeCondition(ctx analysisContext, cond ast.Expr) error {
	tp, err := an.analyzeExpr(ctx, cond)
	if err != nil {
		return err
	}
	if tp != tBoolean {
		return makeSemanticError(TypeMismatch, cond, "condition must have type 'boolean' but has type '%s'", tp)
	}
	return nil
}

func (an *analyzer) analyzeReturn(ctx analysisContext, stmt *ast.ReturnStatement) error {
	ret := ctx.method.Type()
	if ret.IsVoid() {
		if stmt.Value != nil {
			return makeSemanticError(TypeMismatch, stmt, "method '%s' has return type 'void' and cannot return a value",
				ctx.method.Name())
		}
		return nil
	}
	if stmt.Value == nil {
		return makeSemanticError(TypeMismatch, stmt, "method '%s' must return a value of type '%s'",
			ctx.method.Name(), ret)
	}
	tp, err := an.analyzeExpr(ctx, stmt.Value)
	if err != nil {
		return err
	}
	return an.checkAssignable(stmt.Value, tp, ret)
}

func (an *analyzer) analyzeExpr(ctx analysisContext, expr ast.Expr) (Type, error) {
	tp, err := an.exprType(ctx, expr)
	if err != nil {
		return Type{}, err
	}
	an.a.Types[expr] = tp
	return tp, nil
}

func (an *analyzer) exprType(ctx analysisContext, expr ast.Expr) (Type, error) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		if e.Op == ast.Assign {
			return an.analyzeAssignment(ctx, e)
		}
		return an.analyzeBinary(ctx, e)
	case *ast.UnaryExpr:
		target, err := an.analyzeExpr(ctx, e.Target)
		if err != nil {
			return Type{}, err
		}
		result, ok := resolveUnaryOperator(e.Op, target)
		if !ok {
			return Type{}, makeSemanticError(TypeMismatch, e, "operator '%s' cannot be applied to '%s'", e.Op, target)
		}
		return result, nil
	case *ast.ObjectInstantiation:
		class, ok := an.ts.ResolveClass(e.Class)
		if !ok {
			return Type{}, makeSemanticError(UnknownType, e, "cannot resolve typename '%s'", e.Class)
		}
		return class.Type(), nil
	case *ast.ArrayInstantiation:
		return an.analyzeArrayInstantiation(ctx, e)
	case *ast.ArrayAccess:
		return an.analyzeArrayAccess(ctx, e)
	case *ast.VariableAccess:
		return an.analyzeVariableAccess(ctx, e)
	case *ast.MethodInvocation:
		return an.analyzeInvocation(ctx, e)
	case *ast.ThisRef:
		if ctx.static {
			return Type{}, makeSemanticError(UnqualifiedAccessInStaticContext, e, "'this' cannot be used in a static context")
		}
		return ctx.class.Type(), nil
	case *ast.BooleanConstant:
		return tBoolean, nil
	case *ast.IntegerConstant:
		return tInt, nil
	case *ast.NullConstant:
		return tNull, nil
	}
	panic(fmt.Sprintf("semantic: unexpected expression %T", expr))
}

func (an *analyzer) analyzeAssignment(ctx analysisContext, e *ast.BinaryExpr) (Type, error) {
	switch e.LHS.(type) {
	case *ast.VariableAccess, *ast.ArrayAccess:
	default:
		return Type{}, makeSemanticError(NotAnLvalue, e.LHS, "left side of an assignment must be a variable or an array element")
	}
	lhs, err := an.analyzeExpr(ctx, e.LHS)
	if err != nil {
		return Type{}, err
	}
	rhs, err := an.analyzeExpr(ctx, e.RHS)
	if err != nil {
		return Type{}, err
	}
	err = an.checkAssignable(e.RHS, rhs, lhs)
	if err != nil {
		return Type{}, err
	}
	return lhs, nil
}

func (an *analyzer) analyzeBinary(ctx analysisContext, e *ast.BinaryExpr) (Type, error) {
	lhs, err := an.analyzeExpr(ctx, e.LHS)
	if err != nil {
		return Type{}, err
	}
	rhs, err := an.analyzeExpr(ctx, e.RHS)
	if err != nil {
		return Type{}, err
	}
	result, ok := resolveBinaryOperator(e.Op, lhs, rhs)
	if !ok {
		return Type{}, makeSemanticError(TypeMismatch, e, "operator '%s' cannot be applied to '%s' and '%s'", e.Op, lhs, rhs)
	}
	return result, nil
}

func (an *analyzer) analyzeArrayInstantiation(ctx analysisContext, e *ast.ArrayInstantiation) (Type, error) {
	tp, err := an.ts.Resolve(e.Type)
	if err != nil {
		return Type{}, err
	}
	if tp.IsVoid() {
		return Type{}, makeSemanticError(InvalidVoidUsage, e, "array of type 'void' is not allowed")
	}
	if !tp.IsArray() {
		return Type{}, makeSemanticError(TypeMismatch, e, "'%s' is not an array type", tp)
	}
	extent, err := an.analyzeExpr(ctx, e.Extent)
	if err != nil {
		return Type{}, err
	}
	if extent != tInt {
		return Type{}, makeSemanticError(TypeMismatch, e.Extent, "array extent must have type 'int' but has type '%s'", extent)
	}
	return tp, nil
}

func (an *analyzer) analyzeArrayAccess(ctx analysisContext, e *ast.ArrayAccess) (Type, error) {
	target, err := an.analyzeExpr(ctx, e.Target)
	if err != nil {
		return Type{}, err
	}
	if !target.IsArray() {
		return Type{}, makeSemanticError(TypeMismatch, e.Target, "expected an array but found type '%s'", target)
	}
	index, err := an.analyzeExpr(ctx, e.Index)
	if err != nil {
		return Type{}, err
	}
	if index != tInt {
		return Type{}, makeSemanticError(TypeMismatch, e.Index, "array index must have type 'int' but has type '%s'", index)
	}
	return target.Subrank(), nil
}

func (an *analyzer) analyzeVariableAccess(ctx analysisContext, e *ast.VariableAccess) (Type, error) {
	def, err := an.resolveVariable(ctx, e)
	if err != nil {
		return Type{}, err
	}
	an.a.Refs[e] = def
	return def.Type(), nil
}

// resolveVariable looks up target.name as a field, or a plain name as a local, then a field of the current class,
// then a global.
func (an *analyzer) resolveVariable(ctx analysisContext, e *ast.VariableAccess) (Definition, error) {
	if e.Target != nil {
		class, err := an.memberTarget(ctx, e.Target, "fields")
		if err != nil {
			return nil, err
		}
		field := class.Field(e.Name)
		if field == nil {
			return nil, makeSemanticError(NoSuchMember, e, "'%s' has no field '%s'", class.Name(), e.Name)
		}
		return field, nil
	}
	if local := an.symbols.Lookup(e.Name); local != nil {
		return local, nil
	}
	if field := ctx.class.Field(e.Name); field != nil {
		if ctx.static {
			return nil, makeSemanticError(UnqualifiedAccessInStaticContext, e,
				"field '%s' cannot be accessed from a static context", e.Name)
		}
		return field, nil
	}
	if global := an.ts.Store().Global(e.Name); global != nil {
		return global, nil
	}
	return nil, makeSemanticError(UnknownName, e, "no variable '%s' defined in current scope", e.Name)
}

func (an *analyzer) analyzeInvocation(ctx analysisContext, e *ast.MethodInvocation) (Type, error) {
	class := ctx.class
	if e.Target != nil {
		var err error
		class, err = an.memberTarget(ctx, e.Target, "methods")
		if err != nil {
			return Type{}, err
		}
	} else if ctx.static {
		return Type{}, makeSemanticError(UnqualifiedAccessInStaticContext, e,
			"method '%s' cannot be called from a static context", e.Name)
	}
	method := class.Method(e.Name)
	if method == nil {
		return Type{}, makeSemanticError(NoSuchMember, e, "'%s' has no method '%s'", class.Name(), e.Name)
	}
	args := make([]Type, 0, len(e.Args))
	for _, arg := range e.Args {
		tp, err := an.analyzeExpr(ctx, arg)
		if err != nil {
			return Type{}, err
		}
		args = append(args, tp)
	}
	params := method.Params()
	if len(params) != len(args) {
		return Type{}, makeSemanticError(Argument, e, "expected %d arguments in call to '%s' but found %d",
			len(params), method.Name(), len(args))
	}
	for i, param := range params {
		if !an.ts.IsAssignable(args[i], param.Type()) {
			return Type{}, makeSemanticError(Argument, e.Args[i], "expected type '%s' for argument %d in call to '%s' but found '%s'",
				param.Type(), i+1, method.Name(), args[i])
		}
	}
	an.a.Methods[e] = method
	return method.Type(), nil
}

// memberTarget analyzes the target of a field access or method call and returns the class whose members it exposes.
func (an *analyzer) memberTarget(ctx analysisContext, target ast.Expr, what string) (*ClassDef, error) {
	tp, err := an.analyzeExpr(ctx, target)
	if err != nil {
		return nil, err
	}
	if !tp.HasMembers() {
		return nil, makeSemanticError(NoSuchMember, target, "type '%s' has no %s", tp, what)
	}
	return tp.Class(), nil
}

func (an *analyzer) checkAssignable(node ast.Expr, from, to Type) error {
	if !an.ts.IsAssignable(from, to) {
		return makeSemanticError(TypeMismatch, node, "expected type '%s' but found '%s'", to, from)
	}
	return nil
}
