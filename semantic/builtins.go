package semantic

import (
	"strconv"

	"github.com/xiaobogaga/minijava/symbol"
)

// Names of the fabricated standard library. Dotted names cannot be written in source, so user classes never clash
// with them.
const (
	StringClassName      = "java.lang.String"
	SystemClassName      = "java.lang.System"
	PrintStreamClassName = "java.io.PrintStream"
	InputStreamClassName = "java.io.InputStream"
	SystemGlobalName     = "System"
)

type builtinMethod struct {
	name   string
	ret    BaseKind
	params []BaseKind
}

var printStreamMethods = []builtinMethod{
	{name: "println", ret: VoidBase, params: []BaseKind{IntBase}},
	{name: "write", ret: VoidBase, params: []BaseKind{IntBase}},
	{name: "flush", ret: VoidBase},
}

var inputStreamMethods = []builtinMethod{
	{name: "read", ret: IntBase},
}

// RegisterBuiltins fabricates the standard output and input classes and the System global. It must run before any
// user class is registered. java.lang.String is registered by the declaration pass either way.
func RegisterBuiltins(ts *TypeSystem, pool *symbol.Pool) error {
	printStream, err := ts.NewClass(pool.Normalize(PrintStreamClassName), nil)
	if err != nil {
		return err
	}
	err = addBuiltinMethods(ts.Store(), pool, printStream, printStreamMethods)
	if err != nil {
		return err
	}
	inputStream, err := ts.NewClass(pool.Normalize(InputStreamClassName), nil)
	if err != nil {
		return err
	}
	err = addBuiltinMethods(ts.Store(), pool, inputStream, inputStreamMethods)
	if err != nil {
		return err
	}
	system, err := ts.NewClass(pool.Normalize(SystemClassName), nil)
	if err != nil {
		return err
	}
	_, err = ts.Store().NewField(system, pool.Normalize("out"), printStream.Type(), nil)
	if err != nil {
		return err
	}
	_, err = ts.Store().NewField(system, pool.Normalize("in"), inputStream.Type(), nil)
	if err != nil {
		return err
	}
	_, err = ts.Store().NewGlobal(pool.Normalize(SystemGlobalName), system.Type())
	return err
}

func addBuiltinMethods(store *Store, pool *symbol.Pool, class *ClassDef, methods []builtinMethod) error {
	for _, m := range methods {
		method, err := store.NewMethod(class, pool.Normalize(m.name), Primitive(m.ret), false, nil)
		if err != nil {
			return err
		}
		for i, p := range m.params {
			store.AddParameter(method, pool.Normalize(paramName(i)), Primitive(p), nil)
		}
	}
	return nil
}

func paramName(i int) string {
	return "arg" + strconv.Itoa(i)
}
