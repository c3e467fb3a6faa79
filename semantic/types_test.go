package semantic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaobogaga/minijava/ast"
)

func TestType_Equality(t *testing.T) {
	f := newFactory()
	ts := NewTypeSystem(NewStore())
	foo, err := ts.NewClass(f.sym("Foo"), nil)
	require.Nil(t, err)

	assert.Equal(t, Primitive(IntBase).WithRank(2), tInt.WithRank(1).WithRank(2))
	assert.True(t, Primitive(IntBase).WithRank(2) == tInt.WithRank(3).Subrank())
	assert.True(t, foo.Type().WithRank(1) == foo.Type().WithRank(2).Subrank())
	assert.True(t, foo.Type() == foo.Type().WithRank(4).Pure())
	assert.False(t, tInt == tBoolean)
	assert.False(t, tInt == tInt.WithRank(1))

	resolved, err := ts.Resolve(f.classType("Foo", 1))
	assert.Nil(t, err)
	assert.True(t, resolved == foo.Type().WithRank(1))
}

func TestType_Predicates(t *testing.T) {
	f := newFactory()
	ts := NewTypeSystem(NewStore())
	foo, err := ts.NewClass(f.sym("Foo"), nil)
	require.Nil(t, err)

	testData := []struct {
		tp         Type
		reference  bool
		hasMembers bool
		str        string
	}{
		{tInt, false, false, "int"},
		{tInt.WithRank(1), true, false, "int[]"},
		{tBoolean, false, false, "boolean"},
		{tVoid, false, false, "void"},
		{tNull, true, false, "null"},
		{foo.Type(), true, true, "Foo"},
		{foo.Type().WithRank(2), true, false, "Foo[][]"},
	}
	for _, data := range testData {
		assert.Equal(t, data.reference, data.tp.IsReference(), data.str)
		assert.Equal(t, data.hasMembers, data.tp.HasMembers(), data.str)
		assert.Equal(t, data.str, data.tp.String())
	}
	assert.Equal(t, foo, foo.Type().WithRank(2).Class())
	assert.Panics(t, func() { tInt.Subrank() })
	assert.Panics(t, func() { tInt.WithRank(-1) })
	assert.Panics(t, func() { Primitive(ClassBase) })
}

func TestTypeSystem_NewClass(t *testing.T) {
	f := newFactory()
	ts := NewTypeSystem(NewStore())
	_, err := ts.NewClass(f.sym("A"), nil)
	assert.Nil(t, err)
	_, err = ts.NewClass(f.sym("B"), nil)
	assert.Nil(t, err)
	_, err = ts.NewClass(f.sym("A"), f.class("A", nil, nil))
	assert.True(t, errors.Is(err, ErrDuplicateClass))
	assert.Equal(t, 2, ts.ClassCount())
	assert.Len(t, ts.Classes(), 2)
}

func TestTypeSystem_Resolve(t *testing.T) {
	f := newFactory()
	ts := NewTypeSystem(NewStore())
	_, err := ts.NewClass(f.sym("Foo"), nil)
	require.Nil(t, err)

	testData := []struct {
		tp     *ast.Type
		expect string
		err    error
	}{
		{f.intType(0), "int", nil},
		{f.boolType(3), "boolean[][][]", nil},
		{f.voidType(0), "void", nil},
		{f.voidType(1), "", ErrInvalidVoidUsage},
		{f.classType("Foo", 1), "Foo[]", nil},
		{f.classType("Bar", 0), "", ErrUnknownType},
	}
	for _, data := range testData {
		tp, err := ts.Resolve(data.tp)
		if data.err != nil {
			assert.True(t, errors.Is(err, data.err), data.tp.String())
			continue
		}
		assert.Nil(t, err)
		assert.Equal(t, data.expect, tp.String())
	}
}

func TestTypeSystem_IsAssignable(t *testing.T) {
	f := newFactory()
	ts := NewTypeSystem(NewStore())
	foo, err := ts.NewClass(f.sym("Foo"), nil)
	require.Nil(t, err)
	bar, err := ts.NewClass(f.sym("Bar"), nil)
	require.Nil(t, err)

	all := []Type{tInt, tBoolean, tVoid, tNull, tInt.WithRank(1), tBoolean.WithRank(2), foo.Type(), bar.Type().WithRank(1)}
	for _, tp := range all {
		assert.True(t, ts.IsAssignable(tp, tp), tp.String())
		if tp.IsReference() {
			assert.True(t, ts.IsAssignable(tNull.WithRank(0), tp), tp.String())
		}
	}
	assert.False(t, ts.IsAssignable(tNull, tInt))
	assert.False(t, ts.IsAssignable(tNull, tBoolean))
	assert.False(t, ts.IsAssignable(foo.Type(), tNull))
	assert.False(t, ts.IsAssignable(foo.Type(), bar.Type()))
	assert.False(t, ts.IsAssignable(tInt, tInt.WithRank(1)))
}
