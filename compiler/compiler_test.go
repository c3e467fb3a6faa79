package compiler

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/semantic"
	"github.com/xiaobogaga/minijava/symbol"
)

// counterProgram is
//
//	class Counter { int n; int next() { n = n + 1; return n; } }
//	class Main { public static void main(String[] args) { Counter c = new Counter(); System.out.println(c.next() + 6 / 2); } }
type counterProgram struct {
	pool    *symbol.Pool
	prog    *ast.Program
	next    *ast.Method
	entry   *ast.MainMethod
	call    *ast.MethodInvocation
	quot    *ast.BinaryExpr
	system  *ast.VariableAccess
	counter *ast.ClassDecl
}

func newCounterProgram() *counterProgram {
	pool := symbol.NewPool()
	p := &counterProgram{pool: pool}
	n := pool.Normalize("n")
	intType := func() *ast.Type { return &ast.Type{Loc: ast.At(1, 1), Primitive: ast.IntType} }

	inc := &ast.BinaryExpr{Loc: ast.At(2, 9), Op: ast.Assign,
		LHS: &ast.VariableAccess{Loc: ast.At(2, 9), Name: n},
		RHS: &ast.BinaryExpr{Loc: ast.At(2, 13), Op: ast.Plus,
			LHS: &ast.VariableAccess{Loc: ast.At(2, 13), Name: n},
			RHS: &ast.IntegerConstant{Loc: ast.At(2, 17), Literal: "1"}}}
	p.next = &ast.Method{Loc: ast.At(2, 3), Name: pool.Normalize("next"), ReturnType: intType(),
		Body: &ast.Block{Loc: ast.At(2, 20), Body: []ast.BlockStmt{
			&ast.ExpressionStatement{Loc: ast.At(2, 22), Expr: inc},
			&ast.ReturnStatement{Loc: ast.At(2, 30), Value: &ast.VariableAccess{Loc: ast.At(2, 37), Name: n}},
		}}}
	p.counter = &ast.ClassDecl{Loc: ast.At(1, 1), Name: pool.Normalize("Counter"),
		Fields:  []*ast.VarDecl{{Loc: ast.At(1, 17), Type: intType(), Name: n}},
		Methods: []*ast.Method{p.next}}

	c := pool.Normalize("c")
	p.call = &ast.MethodInvocation{Loc: ast.At(5, 20), Target: &ast.VariableAccess{Loc: ast.At(5, 20), Name: c},
		Name: pool.Normalize("next")}
	p.quot = &ast.BinaryExpr{Loc: ast.At(5, 31), Op: ast.Divide,
		LHS: &ast.IntegerConstant{Loc: ast.At(5, 31), Literal: "6"},
		RHS: &ast.IntegerConstant{Loc: ast.At(5, 35), Literal: "2"}}
	p.system = &ast.VariableAccess{Loc: ast.At(5, 5), Name: pool.Normalize("System")}
	printCall := &ast.MethodInvocation{Loc: ast.At(5, 5),
		Target: &ast.VariableAccess{Loc: ast.At(5, 12), Target: p.system, Name: pool.Normalize("out")},
		Name:   pool.Normalize("println"),
		Args:   []ast.Expr{&ast.BinaryExpr{Loc: ast.At(5, 20), Op: ast.Plus, LHS: p.call, RHS: p.quot}}}
	p.entry = &ast.MainMethod{Loc: ast.At(3, 3), Name: pool.Normalize("main"), ArgName: pool.Normalize("args"),
		Body: &ast.Block{Loc: ast.At(3, 40), Body: []ast.BlockStmt{
			&ast.LocalVariableStatement{Loc: ast.At(4, 5),
				Decl: &ast.VarDecl{Loc: ast.At(4, 5), Type: &ast.Type{Loc: ast.At(4, 5), Class: pool.Normalize("Counter")}, Name: c},
				Init: &ast.ObjectInstantiation{Loc: ast.At(4, 17), Class: pool.Normalize("Counter")}},
			&ast.ExpressionStatement{Loc: ast.At(5, 5), Expr: printCall},
		}}}
	main := &ast.ClassDecl{Loc: ast.At(3, 1), Name: pool.Normalize("Main"), MainMethods: []*ast.MainMethod{p.entry}}
	p.prog = &ast.Program{Loc: ast.At(1, 1), Classes: []*ast.ClassDecl{p.counter, main}}
	return p
}

func TestCheck(t *testing.T) {
	p := newCounterProgram()
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = cfg.NewLogger(&logs)

	info, err := Check(p.prog, p.pool, cfg)
	require.Nil(t, err)
	assert.Nil(t, info.Warnings())

	classes := info.Classes()
	assert.Contains(t, classes, p.pool.Normalize("Counter"))
	assert.Contains(t, classes, p.pool.Normalize(semantic.SystemClassName))
	assert.Contains(t, classes, p.pool.Normalize(semantic.StringClassName))
	list := info.ClassList()
	assert.True(t, list[0].IsBuiltin())
	assert.Equal(t, "Main", list[len(list)-1].Name().String())

	next := info.Store().MethodOf(p.next)
	assert.Equal(t, next, info.MethodOf(p.call))
	tp, ok := info.TypeOf(p.call)
	assert.True(t, ok)
	assert.Equal(t, "int", tp.String())
	assert.Equal(t, int64(3), info.Constants()[p.quot])

	require.Len(t, info.Globals(), 1)
	assert.Equal(t, semantic.Definition(info.Globals()[0]), info.Refs()[p.system])
	entry := info.Store().MethodOf(p.entry)
	require.Len(t, info.Locals(entry), 1)
	assert.Equal(t, "c", info.Locals(entry)[0].Name().String())
	assert.Empty(t, info.Locals(next))
	assert.Len(t, info.Defs(), 2)
	assert.NotEmpty(t, info.Types())

	assert.Contains(t, logs.String(), "phase=declarations")
	assert.Contains(t, logs.String(), "semantic analysis done")
}

func TestCheck_NoFolding(t *testing.T) {
	p := newCounterProgram()
	cfg := DefaultConfig()
	cfg.FoldConstants = false
	info, err := Check(p.prog, p.pool, cfg)
	require.Nil(t, err)
	assert.Empty(t, info.Constants())
}

func TestCheck_UndefinedConstants(t *testing.T) {
	p := newCounterProgram()
	p.quot.RHS.(*ast.IntegerConstant).Literal = "0"

	info, err := Check(p.prog, p.pool, nil)
	require.Nil(t, err)
	warnings := info.Warnings()
	require.NotNil(t, warnings)
	var merr *multierror.Error
	require.True(t, errors.As(warnings, &merr))
	require.Len(t, merr.Errors, 1)
	assert.True(t, errors.Is(merr.Errors[0], semantic.ErrUndefinedResult))
	assert.NotContains(t, info.Constants(), ast.Expr(p.quot))

	cfg := DefaultConfig()
	cfg.FailOnUndefinedConstant = true
	_, err = Check(p.prog, p.pool, cfg)
	assert.True(t, errors.Is(err, semantic.ErrUndefinedResult))
}

func TestCheck_Errors(t *testing.T) {
	testData := []struct {
		name   string
		modify func(p *counterProgram, cfg *Config)
		err    error
	}{
		{"non-returning method", func(p *counterProgram, cfg *Config) {
			p.next.Body.Body = p.next.Body.Body[:1]
		}, semantic.ErrNonReturningMethod},
		{"args used", func(p *counterProgram, cfg *Config) {
			p.entry.Body.Body = append(p.entry.Body.Body, &ast.ExpressionStatement{Loc: ast.At(6, 5),
				Expr: &ast.VariableAccess{Loc: ast.At(6, 5), Name: p.entry.ArgName}})
		}, semantic.ErrEntryPointArgsUsage},
		{"no builtins", func(p *counterProgram, cfg *Config) {
			cfg.Builtins = false
		}, semantic.ErrUnknownName},
		{"other entry point name", func(p *counterProgram, cfg *Config) {
			cfg.EntryPoint = "start"
		}, semantic.ErrWrongEntryPointName},
		{"literal overflow", func(p *counterProgram, cfg *Config) {
			p.quot.LHS.(*ast.IntegerConstant).Literal = "2147483648"
		}, semantic.ErrLiteralOverflow},
		{"literal overflow without folding", func(p *counterProgram, cfg *Config) {
			p.quot.LHS.(*ast.IntegerConstant).Literal = "99999999999"
			cfg.FoldConstants = false
		}, semantic.ErrLiteralOverflow},
		{"duplicate class", func(p *counterProgram, cfg *Config) {
			p.prog.Classes = append(p.prog.Classes, p.counter)
		}, semantic.ErrDuplicateClass},
	}
	for _, data := range testData {
		p := newCounterProgram()
		cfg := DefaultConfig()
		data.modify(p, cfg)
		info, err := Check(p.prog, p.pool, cfg)
		assert.Nil(t, info, data.name)
		assert.True(t, errors.Is(err, data.err), "%s: %v", data.name, err)
	}
}

func TestCheck_LibraryWithoutEntryPoint(t *testing.T) {
	p := newCounterProgram()
	p.prog.Classes = p.prog.Classes[:1]
	cfg := DefaultConfig()
	_, err := Check(p.prog, p.pool, cfg)
	assert.True(t, errors.Is(err, semantic.ErrMissingEntryPoint))

	cfg.ExpectEntryPoint = false
	info, err := Check(p.prog, p.pool, cfg)
	require.Nil(t, err)
	assert.Len(t, info.Constants(), 1)
}

func TestCheck_InvalidConfig(t *testing.T) {
	testData := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"unknown log level", func(cfg *Config) { cfg.LogLevel = "loud" }},
		{"entry point is not an identifier", func(cfg *Config) { cfg.EntryPoint = "1main" }},
		{"empty entry point", func(cfg *Config) { cfg.EntryPoint = "" }},
	}
	for _, data := range testData {
		p := newCounterProgram()
		cfg := DefaultConfig()
		data.modify(cfg)
		info, err := Check(p.prog, p.pool, cfg)
		assert.Nil(t, info, data.name)
		assert.NotNil(t, err, data.name)
		var semErr *semantic.Error
		assert.False(t, errors.As(err, &semErr), data.name)
	}
}
