package object

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderNoneIsFalsyAndPrintsNone(t *testing.T) {
	h := None()
	assert.True(t, h.IsNone())
	assert.False(t, h.IsTrue())
	assert.Equal(t, "None", h.String())
}

func TestHolderTruthiness(t *testing.T) {
	assert.True(t, Own(Number(1)).IsTrue())
	assert.False(t, Own(Number(0)).IsTrue())
	assert.True(t, Own(String("x")).IsTrue())
	assert.False(t, Own(String("")).IsTrue())
	assert.True(t, Own(Bool(true)).IsTrue())
	assert.False(t, Own(Bool(false)).IsTrue())
}

func TestOutputContextWritesToWrappedWriter(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewOutputContext(&buf)
	_, err := ctx.Output().Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}

func TestDummyContextCapturesWithoutEscaping(t *testing.T) {
	ctx := NewDummyContext()
	_, err := ctx.Output().Write([]byte("captured"))
	require.NoError(t, err)
	assert.Equal(t, "captured", ctx.String())
}

func TestClassFindMethodSearchesAncestors(t *testing.T) {
	base := NewClass("Base", []*Method{{Name: "greet", Params: nil}}, nil)
	child := NewClass("Child", []*Method{{Name: "extra", Params: nil}}, base)

	m, ok := child.FindMethod("greet")
	require.True(t, ok)
	assert.Equal(t, "greet", m.Name)

	_, ok = child.FindMethod("missing")
	assert.False(t, ok)
}

func TestNewInstanceReturnsDistinctInstanceNotClass(t *testing.T) {
	cls := NewClass("Point", nil, nil)
	a := NewInstance(cls)
	b := NewInstance(cls)
	assert.NotSame(t, a, b)
	assert.Same(t, cls, a.Class)
}

func TestBindMethodBuildsFlatClosure(t *testing.T) {
	cls := NewClass("Adder", []*Method{{Name: "add", Params: []string{"x", "y"}}}, nil)
	inst := NewInstance(cls)

	_, closure, ok := inst.BindMethod("add", []Holder{Own(Number(1)), Own(Number(2))})
	require.True(t, ok)
	assert.Len(t, closure, 3)
	assert.Equal(t, Own(Number(1)), closure["x"])
	assert.Equal(t, Own(Number(2)), closure["y"])
	self, ok := closure["self"].Value().(*Instance)
	require.True(t, ok)
	assert.Same(t, inst, self)
}

func TestBindMethodRejectsArityMismatch(t *testing.T) {
	cls := NewClass("Adder", []*Method{{Name: "add", Params: []string{"x", "y"}}}, nil)
	inst := NewInstance(cls)

	_, _, ok := inst.BindMethod("add", []Holder{Own(Number(1))})
	assert.False(t, ok)
}
