// Package ast defines the syntax tree consumed by semantic analysis.
package ast

import (
	"fmt"

	"github.com/xiaobogaga/minijava/symbol"
)

// In this file, we defined all ast nodes of the MiniJava language. The node set is closed: every interface below
// carries an unexported marker method, so only the types of this package implement it and every pass can switch
// over them exhaustively. Node identity is pointer identity, which is what the semantic annotations are keyed by.

// Position is a source location. The zero value is the unknown position.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Loc is embedded in every node and holds its position.
type Loc struct {
	Position Position
}

func (l Loc) Pos() Position {
	return l.Position
}

// At is a shorthand for building a Loc.
func At(line, column int) Loc {
	return Loc{Position: Position{Line: line, Column: column}}
}

type Node interface {
	Pos() Position
	aNode()
}

type Expr interface {
	Node
	aExpr()
}

// BlockStmt is anything that may appear directly in a block: a local variable statement or a Stmt.
type BlockStmt interface {
	Node
	aBlockStmt()
}

type Stmt interface {
	BlockStmt
	aStmt()
}

// MethodDecl is either an instance *Method or the entry point *MainMethod.
type MethodDecl interface {
	Node
	MethodName() symbol.Symbol
	MethodBody() *Block
	aMethodDecl()
}

type PrimitiveType int

const (
	NotPrimitive PrimitiveType = iota // Class names a user or built-in class.
	IntType
	BooleanType
	VoidType
)

func (p PrimitiveType) String() string {
	switch p {
	case IntType:
		return "int"
	case BooleanType:
		return "boolean"
	case VoidType:
		return "void"
	}
	return ""
}

// Type is a type reference as written in the source, e.g. int[][] or Foo.
type Type struct {
	Loc
	Primitive PrimitiveType
	Class     symbol.Symbol
	Rank      int
}

func (t *Type) String() string {
	name := t.Primitive.String()
	if t.Primitive == NotPrimitive {
		name = t.Class.String()
	}
	for i := 0; i < t.Rank; i++ {
		name += "[]"
	}
	return name
}

// VarDecl declares a field, a parameter or a local variable.
type VarDecl struct {
	Loc
	Type *Type
	Name symbol.Symbol
}

type BinaryOp int

const (
	Assign BinaryOp = iota
	LogicalOr
	LogicalAnd
	Equal
	NotEqual
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
	Plus
	Minus
	Multiply
	Divide
	Modulo
)

var binaryOpNames = [...]string{
	Assign:       "=",
	LogicalOr:    "||",
	LogicalAnd:   "&&",
	Equal:        "==",
	NotEqual:     "!=",
	LessThan:     "<",
	LessEqual:    "<=",
	GreaterThan:  ">",
	GreaterEqual: ">=",
	Plus:         "+",
	Minus:        "-",
	Multiply:     "*",
	Divide:       "/",
	Modulo:       "%",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "?"
	}
	return binaryOpNames[op]
}

type UnaryOp int

const (
	LogicalNot UnaryOp = iota
	Negate
)

func (op UnaryOp) String() string {
	switch op {
	case LogicalNot:
		return "!"
	case Negate:
		return "-"
	}
	return "?"
}

type BinaryExpr struct {
	Loc
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

type UnaryExpr struct {
	Loc
	Op     UnaryOp
	Target Expr
}

// ObjectInstantiation is new Class().
type ObjectInstantiation struct {
	Loc
	Class symbol.Symbol
}

// ArrayInstantiation is new T[Extent][]..., Type carries the full rank of the created array.
type ArrayInstantiation struct {
	Loc
	Type   *Type
	Extent Expr
}

type ArrayAccess struct {
	Loc
	Target Expr
	Index  Expr
}

// VariableAccess is a plain name (Target == nil) or a field access target.Name.
type VariableAccess struct {
	Loc
	Target Expr
	Name   symbol.Symbol
}

// MethodInvocation is name(args) (Target == nil) or target.name(args).
type MethodInvocation struct {
	Loc
	Target Expr
	Name   symbol.Symbol
	Args   []Expr
}

type ThisRef struct {
	Loc
}

type BooleanConstant struct {
	Loc
	Value bool
}

// IntegerConstant keeps the literal text; its value is only computed by constant folding.
type IntegerConstant struct {
	Loc
	Literal string
}

type NullConstant struct {
	Loc
}

type LocalVariableStatement struct {
	Loc
	Decl *VarDecl
	Init Expr // May be nil.
}

type ExpressionStatement struct {
	Loc
	Expr Expr
}

type Block struct {
	Loc
	Body []BlockStmt
}

type IfStatement struct {
	Loc
	Cond Expr
	Then Stmt
	Else Stmt // May be nil.
}

type WhileStatement struct {
	Loc
	Cond Expr
	Body Stmt
}

type ReturnStatement struct {
	Loc
	Value Expr // May be nil.
}

type EmptyStatement struct {
	Loc
}

// Method is an instance method.
type Method struct {
	Loc
	Name       symbol.Symbol
	ReturnType *Type
	Params     []*VarDecl
	Body       *Block
}

// MainMethod is the static entry point. Its single parameter has the fixed type String[] and is only named here.
type MainMethod struct {
	Loc
	Name    symbol.Symbol
	ArgName symbol.Symbol
	Body    *Block
}

type ClassDecl struct {
	Loc
	Name        symbol.Symbol
	Fields      []*VarDecl
	Methods     []*Method
	MainMethods []*MainMethod
}

type Program struct {
	Loc
	Classes []*ClassDecl
}

func (m *Method) MethodName() symbol.Symbol     { return m.Name }
func (m *Method) MethodBody() *Block            { return m.Body }
func (m *MainMethod) MethodName() symbol.Symbol { return m.Name }
func (m *MainMethod) MethodBody() *Block        { return m.Body }

func (*Type) aNode()                   {}
func (*VarDecl) aNode()                {}
func (*BinaryExpr) aNode()             {}
func (*UnaryExpr) aNode()              {}
func (*ObjectInstantiation) aNode()    {}
func (*ArrayInstantiation) aNode()     {}
func (*ArrayAccess) aNode()            {}
func (*VariableAccess) aNode()         {}
func (*MethodInvocation) aNode()       {}
func (*ThisRef) aNode()                {}
func (*BooleanConstant) aNode()        {}
func (*IntegerConstant) aNode()        {}
func (*NullConstant) aNode()           {}
func (*LocalVariableStatement) aNode() {}
func (*ExpressionStatement) aNode()    {}
func (*Block) aNode()                  {}
func (*IfStatement) aNode()            {}
func (*WhileStatement) aNode()         {}
func (*ReturnStatement) aNode()        {}
func (*EmptyStatement) aNode()         {}
func (*Method) aNode()                 {}
func (*MainMethod) aNode()             {}
func (*ClassDecl) aNode()              {}
func (*Program) aNode()                {}

func (*BinaryExpr) aExpr()          {}
func (*UnaryExpr) aExpr()           {}
func (*ObjectInstantiation) aExpr() {}
func (*ArrayInstantiation) aExpr()  {}
func (*ArrayAccess) aExpr()         {}
func (*VariableAccess) aExpr()      {}
func (*MethodInvocation) aExpr()    {}
func (*ThisRef) aExpr()             {}
func (*BooleanConstant) aExpr()     {}
func (*IntegerConstant) aExpr()     {}
func (*NullConstant) aExpr()        {}

func (*LocalVariableStatement) aBlockStmt() {}
func (*ExpressionStatement) aBlockStmt()    {}
func (*Block) aBlockStmt()                  {}
func (*IfStatement) aBlockStmt()            {}
func (*WhileStatement) aBlockStmt()         {}
func (*ReturnStatement) aBlockStmt()        {}
func (*EmptyStatement) aBlockStmt()         {}

func (*ExpressionStatement) aStmt() {}
func (*Block) aStmt()               {}
func (*IfStatement) aStmt()         {}
func (*WhileStatement) aStmt()      {}
func (*ReturnStatement) aStmt()     {}
func (*EmptyStatement) aStmt()      {}

func (*Method) aMethodDecl()     {}
func (*MainMethod) aMethodDecl() {}
