package semantic

import (
	"github.com/xiaobogaga/minijava/ast"
)

// CheckEntryPointArgs rejects any unqualified use of the entry point's own parameter inside its body. The parameter
// is bound in the method scope, so no local can shadow it and a plain name match is enough.
func CheckEntryPointArgs(prog *ast.Program) error {
	for _, class := range prog.Classes {
		for _, entry := range class.MainMethods {
			err := checkArgsUsage(entry)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func checkArgsUsage(entry *ast.MainMethod) error {
	if entry.Body == nil {
		return nil
	}
	var err error
	ast.Inspect(entry.Body, func(node ast.Node) bool {
		if err != nil {
			return false
		}
		access, ok := node.(*ast.VariableAccess)
		if ok && access.Target == nil && access.Name == entry.ArgName {
			err = makeSemanticError(EntryPointArgsUsage, access, "usage of '%s' is forbidden", entry.ArgName)
			return false
		}
		return true
	})
	return err
}
