package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
)

// resolveBinaryOperator returns the result type of applying op to operands of the given types. ok is false when the
// operator does not accept them. Assignment is handled by the caller since it also needs an lvalue.
func resolveBinaryOperator(op ast.BinaryOp, lhs, rhs Type) (result Type, ok bool) {
	switch op {
	case ast.LogicalOr, ast.LogicalAnd:
		return tBoolean, lhs == tBoolean && rhs == tBoolean
	case ast.Equal, ast.NotEqual:
		if lhs == rhs && !lhs.IsVoid() {
			return tBoolean, true
		}
		return tBoolean, lhs.IsReference() && rhs.IsReference()
	case ast.LessThan, ast.LessEqual, ast.GreaterThan, ast.GreaterEqual:
		return tBoolean, lhs == tInt && rhs == tInt
	case ast.Plus, ast.Minus, ast.Multiply, ast.Divide, ast.Modulo:
		return tInt, lhs == tInt && rhs == tInt
	}
	return Type{}, false
}

func resolveUnaryOperator(op ast.UnaryOp, target Type) (result Type, ok bool) {
	switch op {
	case ast.LogicalNot:
		return tBoolean, target == tBoolean
	case ast.Negate:
		return tInt, target == tInt
	}
	return Type{}, false
}
