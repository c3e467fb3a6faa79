package ast

import "fmt"

// Inspect traverses the tree rooted at node in pre-order. If f returns false the children of that node are skipped.
// Nil children are never passed to f.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, c := range n.Classes {
			Inspect(c, f)
		}
	case *ClassDecl:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
		for _, m := range n.Methods {
			Inspect(m, f)
		}
		for _, m := range n.MainMethods {
			Inspect(m, f)
		}
	case *Method:
		inspectType(n.ReturnType, f)
		for _, p := range n.Params {
			Inspect(p, f)
		}
		inspectBlock(n.Body, f)
	case *MainMethod:
		inspectBlock(n.Body, f)
	case *VarDecl:
		inspectType(n.Type, f)
	case *Type, *ThisRef, *BooleanConstant, *IntegerConstant, *NullConstant, *ObjectInstantiation, *EmptyStatement:
	case *BinaryExpr:
		inspectExpr(n.LHS, f)
		inspectExpr(n.RHS, f)
	case *UnaryExpr:
		inspectExpr(n.Target, f)
	case *ArrayInstantiation:
		inspectType(n.Type, f)
		inspectExpr(n.Extent, f)
	case *ArrayAccess:
		inspectExpr(n.Target, f)
		inspectExpr(n.Index, f)
	case *VariableAccess:
		inspectExpr(n.Target, f)
	case *MethodInvocation:
		inspectExpr(n.Target, f)
		for _, arg := range n.Args {
			inspectExpr(arg, f)
		}
	case *LocalVariableStatement:
		Inspect(n.Decl, f)
		inspectExpr(n.Init, f)
	case *ExpressionStatement:
		inspectExpr(n.Expr, f)
	case *Block:
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *IfStatement:
		inspectExpr(n.Cond, f)
		inspectStmt(n.Then, f)
		inspectStmt(n.Else, f)
	case *WhileStatement:
		inspectExpr(n.Cond, f)
		inspectStmt(n.Body, f)
	case *ReturnStatement:
		inspectExpr(n.Value, f)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", node))
	}
}

// The helpers below keep typed nil pointers and nil interfaces from reaching f.

func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectStmt(s Stmt, f func(Node) bool) {
	if s != nil {
		Inspect(s, f)
	}
}

func inspectType(t *Type, f func(Node) bool) {
	if t != nil {
		Inspect(t, f)
	}
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b != nil {
		Inspect(b, f)
	}
}
