package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/symbol"
)

// factory builds syntax trees for tests. Every node gets its own line so positions in errors identify the node.
type factory struct {
	pool *symbol.Pool
	line int
}

func newFactory() *factory {
	return &factory{pool: symbol.NewPool()}
}

func (f *factory) sym(name string) symbol.Symbol {
	return f.pool.Normalize(name)
}

func (f *factory) at() ast.Loc {
	f.line++
	return ast.At(f.line, 1)
}

func (f *factory) intType(rank int) *ast.Type {
	return &ast.Type{Loc: f.at(), Primitive: ast.IntType, Rank: rank}
}

func (f *factory) boolType(rank int) *ast.Type {
	return &ast.Type{Loc: f.at(), Primitive: ast.BooleanType, Rank: rank}
}

func (f *factory) voidType(rank int) *ast.Type {
	return &ast.Type{Loc: f.at(), Primitive: ast.VoidType, Rank: rank}
}

func (f *factory) classType(name string, rank int) *ast.Type {
	return &ast.Type{Loc: f.at(), Class: f.sym(name), Rank: rank}
}

func (f *factory) varDecl(tp *ast.Type, name string) *ast.VarDecl {
	return &ast.VarDecl{Loc: f.at(), Type: tp, Name: f.sym(name)}
}

func (f *factory) intLit(literal string) *ast.IntegerConstant {
	return &ast.IntegerConstant{Loc: f.at(), Literal: literal}
}

func (f *factory) boolLit(value bool) *ast.BooleanConstant {
	return &ast.BooleanConstant{Loc: f.at(), Value: value}
}

func (f *factory) null() *ast.NullConstant {
	return &ast.NullConstant{Loc: f.at()}
}

func (f *factory) this() *ast.ThisRef {
	return &ast.ThisRef{Loc: f.at()}
}

func (f *factory) name(name string) *ast.VariableAccess {
	return &ast.VariableAccess{Loc: f.at(), Name: f.sym(name)}
}

func (f *factory) field(target ast.Expr, name string) *ast.VariableAccess {
	return &ast.VariableAccess{Loc: f.at(), Target: target, Name: f.sym(name)}
}

func (f *factory) call(target ast.Expr, name string, args ...ast.Expr) *ast.MethodInvocation {
	return &ast.MethodInvocation{Loc: f.at(), Target: target, Name: f.sym(name), Args: args}
}

func (f *factory) binary(op ast.BinaryOp, lhs, rhs ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Loc: f.at(), Op: op, LHS: lhs, RHS: rhs}
}

func (f *factory) assign(lhs, rhs ast.Expr) *ast.BinaryExpr {
	return f.binary(ast.Assign, lhs, rhs)
}

func (f *factory) unary(op ast.UnaryOp, target ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Loc: f.at(), Op: op, Target: target}
}

func (f *factory) newObject(name string) *ast.ObjectInstantiation {
	return &ast.ObjectInstantiation{Loc: f.at(), Class: f.sym(name)}
}

func (f *factory) newArray(tp *ast.Type, extent ast.Expr) *ast.ArrayInstantiation {
	return &ast.ArrayInstantiation{Loc: f.at(), Type: tp, Extent: extent}
}

func (f *factory) index(target, index ast.Expr) *ast.ArrayAccess {
	return &ast.ArrayAccess{Loc: f.at(), Target: target, Index: index}
}

func (f *factory) local(tp *ast.Type, name string, init ast.Expr) *ast.LocalVariableStatement {
	return &ast.LocalVariableStatement{Loc: f.at(), Decl: f.varDecl(tp, name), Init: init}
}

func (f *factory) exprStmt(expr ast.Expr) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Loc: f.at(), Expr: expr}
}

func (f *factory) block(body ...ast.BlockStmt) *ast.Block {
	return &ast.Block{Loc: f.at(), Body: body}
}

func (f *factory) ifStmt(cond ast.Expr, then, els ast.Stmt) *ast.IfStatement {
	return &ast.IfStatement{Loc: f.at(), Cond: cond, Then: then, Else: els}
}

func (f *factory) while(cond ast.Expr, body ast.Stmt) *ast.WhileStatement {
	return &ast.WhileStatement{Loc: f.at(), Cond: cond, Body: body}
}

func (f *factory) ret(value ast.Expr) *ast.ReturnStatement {
	return &ast.ReturnStatement{Loc: f.at(), Value: value}
}

func (f *factory) empty() *ast.EmptyStatement {
	return &ast.EmptyStatement{Loc: f.at()}
}

func (f *factory) method(ret *ast.Type, name string, params []*ast.VarDecl, body *ast.Block) *ast.Method {
	return &ast.Method{Loc: f.at(), Name: f.sym(name), ReturnType: ret, Params: params, Body: body}
}

func (f *factory) mainMethod(name, arg string, body *ast.Block) *ast.MainMethod {
	return &ast.MainMethod{Loc: f.at(), Name: f.sym(name), ArgName: f.sym(arg), Body: body}
}

func (f *factory) class(name string, fields []*ast.VarDecl, methods []*ast.Method, mains ...*ast.MainMethod) *ast.ClassDecl {
	return &ast.ClassDecl{Loc: f.at(), Name: f.sym(name), Fields: fields, Methods: methods, MainMethods: mains}
}

func (f *factory) program(classes ...*ast.ClassDecl) *ast.Program {
	return &ast.Program{Loc: f.at(), Classes: classes}
}

// withMain returns a program made of classes plus a class Main whose entry point has the given body.
func (f *factory) withMain(body *ast.Block, classes ...*ast.ClassDecl) *ast.Program {
	main := f.class("Main", nil, nil, f.mainMethod("main", "args", body))
	return f.program(append(classes, main)...)
}

// withMethod wraps a single instance method into a class Main with an empty entry point.
func (f *factory) withMethod(method *ast.Method, fields ...*ast.VarDecl) *ast.Program {
	main := f.class("Main", fields, []*ast.Method{method}, f.mainMethod("main", "args", f.block()))
	return f.program(main)
}

func declare(f *factory, prog *ast.Program) (*TypeSystem, error) {
	ts := NewTypeSystem(NewStore())
	err := RegisterBuiltins(ts, f.pool)
	if err != nil {
		return nil, err
	}
	err = DeclareProgram(ts, f.pool, prog, DeclarationOptions{ExpectEntryPoint: true})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func analyze(f *factory, prog *ast.Program) (*TypeSystem, *Annotations, error) {
	ts, err := declare(f, prog)
	if err != nil {
		return nil, nil, err
	}
	annotations := NewAnnotations()
	err = Analyze(ts, prog, annotations)
	return ts, annotations, err
}
