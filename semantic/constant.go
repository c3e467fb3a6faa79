package semantic

import (
	"fmt"
	"math"

	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/util"
)

// ProblemHandler is told about every expression whose value is undefined, like a division by zero or an int
// overflow. Returning an error stops folding and ExtractConstants returns that error.
type ProblemHandler func(node ast.Expr) error

// ExtractConstants folds the compile-time constant expressions below node. Only expressions whose value could be
// computed appear in the result; booleans map to 0 and 1. It must only be run on trees that passed Analyze. handler
// may be nil.
func ExtractConstants(node ast.Node, handler ProblemHandler) (map[ast.Expr]int64, error) {
	f := &folder{constants: map[ast.Expr]int64{}, handler: handler}
	err := f.foldNode(node)
	if err != nil {
		return nil, err
	}
	return f.constants, nil
}

type folder struct {
	constants map[ast.Expr]int64
	handler   ProblemHandler
}

// foldNode finds the outermost expressions below node and folds each of them.
func (f *folder) foldNode(node ast.Node) error {
	var err error
	ast.Inspect(node, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		if expr, ok := n.(ast.Expr); ok {
			err = f.fold(expr)
			return false
		}
		return true
	})
	return err
}

// fold computes the value of expr after folding all of its operands.
func (f *folder) fold(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.BooleanConstant:
		f.constants[e] = boolValue(e.Value)
	case *ast.IntegerConstant:
		value, err := parseLiteral(e, false)
		if err != nil {
			return err
		}
		f.constants[e] = value
	case *ast.UnaryExpr:
		if lit, ok := e.Target.(*ast.IntegerConstant); ok && e.Op == ast.Negate {
			return f.foldNegatedLiteral(e, lit)
		}
		err := f.fold(e.Target)
		if err != nil {
			return err
		}
		return f.foldUnary(e)
	case *ast.BinaryExpr:
		err := f.fold(e.LHS)
		if err != nil {
			return err
		}
		err = f.fold(e.RHS)
		if err != nil {
			return err
		}
		return f.foldBinary(e)
	case *ast.ArrayInstantiation:
		return f.fold(e.Extent)
	case *ast.ArrayAccess:
		err := f.fold(e.Target)
		if err != nil {
			return err
		}
		return f.fold(e.Index)
	case *ast.VariableAccess:
		if e.Target != nil {
			return f.fold(e.Target)
		}
	case *ast.MethodInvocation:
		if e.Target != nil {
			err := f.fold(e.Target)
			if err != nil {
				return err
			}
		}
		for _, arg := range e.Args {
			err := f.fold(arg)
			if err != nil {
				return err
			}
		}
	case *ast.ObjectInstantiation, *ast.ThisRef, *ast.NullConstant:
	default:
		panic(fmt.Sprintf("semantic: unexpected expression %T", expr))
	}
	return nil
}

// foldNegatedLiteral folds -literal, the only place where the literal 2147483648 is allowed. That literal is not
// recorded on its own since its value does not fit into 32 bits.
func (f *folder) foldNegatedLiteral(e *ast.UnaryExpr, lit *ast.IntegerConstant) error {
	value, err := parseLiteral(lit, true)
	if err != nil {
		return err
	}
	if value <= math.MaxInt32 {
		f.constants[lit] = value
	}
	f.constants[e] = -value
	return nil
}

func (f *folder) foldUnary(e *ast.UnaryExpr) error {
	value, ok := f.constants[e.Target]
	if !ok {
		return nil
	}
	switch e.Op {
	case ast.LogicalNot:
		f.constants[e] = boolValue(value == 0)
	case ast.Negate:
		return f.store(e, -value)
	}
	return nil
}

func (f *folder) foldBinary(e *ast.BinaryExpr) error {
	lhs, lok := f.constants[e.LHS]
	rhs, rok := f.constants[e.RHS]
	if rok && rhs == 0 && (e.Op == ast.Divide || e.Op == ast.Modulo) {
		// A zero divisor makes the result undefined whatever the dividend is.
		return f.problem(e)
	}
	if !lok || !rok {
		return nil
	}
	switch e.Op {
	case ast.Assign:
	case ast.LogicalOr:
		f.constants[e] = boolValue(lhs != 0 || rhs != 0)
	case ast.LogicalAnd:
		f.constants[e] = boolValue(lhs != 0 && rhs != 0)
	case ast.Equal:
		f.constants[e] = boolValue(lhs == rhs)
	case ast.NotEqual:
		f.constants[e] = boolValue(lhs != rhs)
	case ast.LessThan:
		f.constants[e] = boolValue(lhs < rhs)
	case ast.LessEqual:
		f.constants[e] = boolValue(lhs <= rhs)
	case ast.GreaterThan:
		f.constants[e] = boolValue(lhs > rhs)
	case ast.GreaterEqual:
		f.constants[e] = boolValue(lhs >= rhs)
	case ast.Plus:
		return f.store(e, lhs+rhs)
	case ast.Minus:
		return f.store(e, lhs-rhs)
	case ast.Multiply:
		return f.store(e, lhs*rhs)
	case ast.Divide:
		return f.store(e, lhs/rhs)
	case ast.Modulo:
		// Go's % truncates, so the result takes the sign of the dividend.
		return f.store(e, lhs%rhs)
	}
	return nil
}

// store records value for e if it fits into 32 bits, and reports e as a problem otherwise. Operands are always in
// 32 bit range, so no int64 operation here can overflow.
func (f *folder) store(e ast.Expr, value int64) error {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return f.problem(e)
	}
	f.constants[e] = value
	return nil
}

func (f *folder) problem(e ast.Expr) error {
	if f.handler == nil {
		return nil
	}
	return f.handler(e)
}

// CheckLiterals rejects every integer literal below node that does not fit into a 32 bit integer. It runs whether or
// not constants are folded.
func CheckLiterals(node ast.Node) error {
	negated := map[*ast.IntegerConstant]bool{}
	var err error
	ast.Inspect(node, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch e := n.(type) {
		case *ast.UnaryExpr:
			if lit, ok := e.Target.(*ast.IntegerConstant); ok && e.Op == ast.Negate {
				negated[lit] = true
			}
		case *ast.IntegerConstant:
			_, err = parseLiteral(e, negated[e])
		}
		return true
	})
	return err
}

func parseLiteral(node *ast.IntegerConstant, negated bool) (int64, error) {
	if !util.IsDecimalLiteral(node.Literal) {
		return 0, fmt.Errorf("semantic: malformed integer literal %q", node.Literal)
	}
	var maximum int64 = math.MaxInt32
	if negated {
		maximum++
	}
	var value int64
	for i := 0; i < len(node.Literal); i++ {
		value = value*10 + int64(node.Literal[i]-'0')
		if value > maximum {
			return 0, literalOverflow(node, negated)
		}
	}
	return value, nil
}

func literalOverflow(node *ast.IntegerConstant, negated bool) error {
	if node.Literal == "2147483648" {
		return makeSemanticError(LiteralOverflow, node,
			"integer literal %s is only allowed as the operand of unary minus", node.Literal)
	}
	if negated {
		return makeSemanticError(LiteralOverflow, node,
			"integer literal -%s is too small for a 32 bit integer", node.Literal)
	}
	return makeSemanticError(LiteralOverflow, node, "integer literal %s is too large for a 32 bit integer", node.Literal)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// UndefinedResultError describes a node reported to a ProblemHandler.
func UndefinedResultError(node ast.Expr) *Error {
	switch e := node.(type) {
	case *ast.BinaryExpr:
		if e.Op == ast.Divide || e.Op == ast.Modulo {
			return makeSemanticError(UndefinedResult, node, "'%s' by zero or overflow has an undefined result", e.Op)
		}
		return makeSemanticError(UndefinedResult, node, "'%s' overflows a 32 bit integer", e.Op)
	case *ast.UnaryExpr:
		return makeSemanticError(UndefinedResult, node, "'%s' overflows a 32 bit integer", e.Op)
	}
	return makeSemanticError(UndefinedResult, node, "expression has an undefined result")
}
