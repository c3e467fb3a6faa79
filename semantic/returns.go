package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
)

// CheckReturnPaths rejects every non-void instance method whose body can complete normally, i.e. where control may
// fall off the end without a return.
func CheckReturnPaths(prog *ast.Program) error {
	for _, class := range prog.Classes {
		for _, method := range class.Methods {
			if isVoidMethod(method) {
				continue
			}
			// A missing body is treated as an empty one.
			if method.Body == nil || canCompleteNormally(method.Body) {
				return makeSemanticError(NonReturningMethod, method,
					"control flow may reach the end of non-void method '%s'", method.Name)
			}
		}
	}
	return nil
}

func isVoidMethod(method *ast.Method) bool {
	return method.ReturnType != nil && method.ReturnType.Primitive == ast.VoidType && method.ReturnType.Rank == 0
}

func canCompleteNormally(stmt ast.BlockStmt) bool {
	switch s := stmt.(type) {
	case *ast.Block:
		if len(s.Body) == 0 {
			return true
		}
		return canCompleteNormally(s.Body[len(s.Body)-1])
	case *ast.ReturnStatement:
		return false
	case *ast.IfStatement:
		if s.Else == nil {
			return true
		}
		return canCompleteNormally(s.Then) || canCompleteNormally(s.Else)
	}
	return true
}
