package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythonic/mython/object"
)

func run(t *testing.T, n Node) (object.Holder, string) {
	t.Helper()
	var buf bytes.Buffer
	ctx := object.NewOutputContext(&buf)
	closure := object.Closure{}
	h := n.Execute(closure, ctx)
	return h, buf.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	// print 2 * 3 + 4
	expr := &Add{Lhs: Mult(NumericConst(2), NumericConst(3)), Rhs: NumericConst(4)}
	_, out := run(t, &Print{Args: []Node{expr}})
	assert.Equal(t, "10\n", out)
}

func TestStringConcatenation(t *testing.T) {
	expr := &Add{
		Lhs: &Add{Lhs: StringConst("hello"), Rhs: StringConst(" ")},
		Rhs: StringConst("world"),
	}
	_, out := run(t, &Print{Args: []Node{expr}})
	assert.Equal(t, "hello world\n", out)
}

func TestIfElseTruthiness(t *testing.T) {
	prog := &Compound{Stmts: []Node{
		&Assignment{Name: "x", Rv: NumericConst(0)},
		&IfElse{
			Cond: &VariableValue{Path: []string{"x"}},
			Then: &Print{Args: []Node{StringConst("t")}},
			Else: &Print{Args: []Node{StringConst("f")}},
		},
	}}
	_, out := run(t, prog)
	assert.Equal(t, "f\n", out)
}

func TestDivisionByZero(t *testing.T) {
	assert.Panics(t, func() {
		run(t, Div(NumericConst(1), NumericConst(0)))
	})
}

func TestVariableValueMissingIsFatal(t *testing.T) {
	assert.Panics(t, func() {
		run(t, &VariableValue{Path: []string{"nope"}})
	})
}

func TestAndOrDoNotShortCircuit(t *testing.T) {
	calls := 0
	sideEffect := &sideEffectNode{calls: &calls, value: object.Own(object.Bool(false))}

	h, _ := run(t, &And{Lhs: BoolConst(false), Rhs: sideEffect})
	assert.False(t, bool(h.Value().(object.Bool)))
	assert.Equal(t, 1, calls, "rhs of And must still be evaluated despite false lhs")
}

type sideEffectNode struct {
	calls *int
	value object.Holder
}

func (s *sideEffectNode) Execute(object.Closure, object.Context) object.Holder {
	*s.calls++
	return s.value
}

func TestClassMethodReturnAndDispatch(t *testing.T) {
	// class Point:
	//   def __init__(x, y): self.x = x; self.y = y
	//   def sum(): return self.x + self.y
	initBody := &MethodBody{Block: &Compound{Stmts: []Node{
		&FieldAssignment{Object: &VariableValue{Path: []string{"self"}}, Field: "x", Rv: &VariableValue{Path: []string{"x"}}},
		&FieldAssignment{Object: &VariableValue{Path: []string{"self"}}, Field: "y", Rv: &VariableValue{Path: []string{"y"}}},
	}}}
	sumBody := &MethodBody{Block: &Return{Expr: &Add{
		Lhs: &VariableValue{Path: []string{"self", "x"}},
		Rhs: &VariableValue{Path: []string{"self", "y"}},
	}}}

	classDef := &ClassDefinition{Name: "Point", Methods: []*MethodDef{
		{Name: "__init__", Params: []string{"x", "y"}, Body: initBody},
		{Name: "sum", Params: nil, Body: sumBody},
	}}

	prog := &Compound{Stmts: []Node{
		classDef,
		&Assignment{Name: "p", Rv: &NewInstance{ClassName: "Point", Args: []Node{NumericConst(3), NumericConst(4)}}},
		&Print{Args: []Node{&MethodCall{Object: &VariableValue{Path: []string{"p"}}, Name: "sum"}}},
	}}

	_, out := run(t, prog)
	assert.Equal(t, "7\n", out)
}

func TestNewInstanceReturnsInstanceNotClass(t *testing.T) {
	classDef := &ClassDefinition{Name: "Empty"}
	var buf bytes.Buffer
	ctx := object.NewOutputContext(&buf)
	closure := object.Closure{}
	classDef.Execute(closure, ctx)

	h := (&NewInstance{ClassName: "Empty"}).Execute(closure, ctx)
	_, isInstance := h.Value().(*object.Instance)
	assert.True(t, isInstance, "NewInstance must return the instance, not the class (source bug fixed per spec)")
}

func TestInheritanceOverride(t *testing.T) {
	greetA := &MethodBody{Block: &Return{Expr: StringConst("A")}}
	greetB := &MethodBody{Block: &Return{Expr: StringConst("B")}}

	classA := &ClassDefinition{Name: "A", Methods: []*MethodDef{{Name: "greet", Body: greetA}}}
	classB := &ClassDefinition{Name: "B", Parent: "A", Methods: []*MethodDef{{Name: "greet", Body: greetB}}}

	prog := &Compound{Stmts: []Node{
		classA,
		classB,
		&Print{Args: []Node{&MethodCall{Object: &NewInstance{ClassName: "B"}, Name: "greet"}}},
		&Print{Args: []Node{&MethodCall{Object: &NewInstance{ClassName: "A"}, Name: "greet"}}},
	}}

	_, out := run(t, prog)
	assert.Equal(t, "B\nA\n", out)
}

func TestMethodCallOnNonInstanceSilentlyReturnsNone(t *testing.T) {
	h, _ := run(t, &MethodCall{Object: NumericConst(5), Name: "whatever"})
	assert.True(t, h.IsNone())
}

func TestStringifyMatchesPrintTextMinusNewline(t *testing.T) {
	var buf bytes.Buffer
	ctx := object.NewOutputContext(&buf)
	closure := object.Closure{}

	h := (&Stringify{Arg: NumericConst(42)}).Execute(closure, ctx)
	str, ok := h.Value().(object.String)
	require.True(t, ok)

	buf.Reset()
	(&Print{Args: []Node{NumericConst(42)}}).Execute(closure, ctx)
	assert.Equal(t, string(str)+"\n", buf.String())
}

func TestStringifyNoneIsStringNone(t *testing.T) {
	var buf bytes.Buffer
	ctx := object.NewOutputContext(&buf)
	h := (&Stringify{Arg: NoneConst()}).Execute(object.Closure{}, ctx)
	assert.Equal(t, object.String("None"), h.Value())
}
