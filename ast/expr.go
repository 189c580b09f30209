package ast

import "github.com/mythonic/mython/object"

// VariableValue resolves a dotted name path: Path[0] in the current
// closure, then each subsequent name as a field of the previous
// ClassInstance value (spec.md §4.3). A bare variable reference is a
// one-element path.
type VariableValue struct {
	Path []string
}

func (v *VariableValue) Execute(closure object.Closure, ctx object.Context) object.Holder {
	h, ok := closure[v.Path[0]]
	if !ok {
		object.Fail("Cant find var")
	}
	for _, name := range v.Path[1:] {
		inst, ok := h.Value().(*object.Instance)
		if !ok {
			object.Fail("This isn't object")
		}
		h, ok = inst.Fields[name]
		if !ok {
			object.Fail("Cant find field")
		}
	}
	return h
}

// Add implements `+`: Number+Number sums, String+String concatenates,
// and a ClassInstance with a one-argument __add__ is dispatched to.
type Add struct{ Lhs, Rhs Node }

func (a *Add) Execute(closure object.Closure, ctx object.Context) object.Holder {
	lhs := a.Lhs.Execute(closure, ctx)
	rhs := a.Rhs.Execute(closure, ctx)

	if ln, ok := lhs.Value().(object.Number); ok {
		if rn, ok := rhs.Value().(object.Number); ok {
			return object.Own(ln + rn)
		}
	}
	if ls, ok := lhs.Value().(object.String); ok {
		if rs, ok := rhs.Value().(object.String); ok {
			return object.Own(ls + rs)
		}
	}
	if inst, ok := lhs.Value().(*object.Instance); ok {
		if res, ok := callMethod(inst, "__add__", []object.Holder{rhs}, ctx); ok {
			return res
		}
	}
	object.Fail("No __add__ method")
	panic("unreachable")
}

// arithOp is the shared shape of Sub/Mult/Div: both operands must be
// Number, combined with apply.
type arithOp struct {
	Lhs, Rhs Node
	apply    func(l, r object.Number) object.Holder
}

func (op *arithOp) Execute(closure object.Closure, ctx object.Context) object.Holder {
	lhs := op.Lhs.Execute(closure, ctx)
	rhs := op.Rhs.Execute(closure, ctx)
	ln, ok1 := lhs.Value().(object.Number)
	rn, ok2 := rhs.Value().(object.Number)
	if !ok1 || !ok2 {
		object.Fail("lhs or rhs not Number")
	}
	return op.apply(ln, rn)
}

// Sub implements `-` on two Numbers.
func Sub(lhs, rhs Node) Node {
	return &arithOp{Lhs: lhs, Rhs: rhs, apply: func(l, r object.Number) object.Holder {
		return object.Own(l - r)
	}}
}

// Mult implements `*` on two Numbers.
func Mult(lhs, rhs Node) Node {
	return &arithOp{Lhs: lhs, Rhs: rhs, apply: func(l, r object.Number) object.Holder {
		return object.Own(l * r)
	}}
}

// Div implements `/` on two Numbers; division by zero is a runtime error.
func Div(lhs, rhs Node) Node {
	return &arithOp{Lhs: lhs, Rhs: rhs, apply: func(l, r object.Number) object.Holder {
		if r == 0 {
			object.Fail("Division by zero")
		}
		return object.Own(l / r)
	}}
}

// And evaluates both sides unconditionally (no short-circuit — a
// preserved quirk of the source language, see spec.md §9) and returns
// Bool(lhs.IsTrue() && rhs.IsTrue()).
type And struct{ Lhs, Rhs Node }

func (a *And) Execute(closure object.Closure, ctx object.Context) object.Holder {
	lhs := a.Lhs.Execute(closure, ctx)
	rhs := a.Rhs.Execute(closure, ctx)
	return object.Own(object.Bool(lhs.IsTrue() && rhs.IsTrue()))
}

// Or evaluates both sides unconditionally, mirroring And.
type Or struct{ Lhs, Rhs Node }

func (o *Or) Execute(closure object.Closure, ctx object.Context) object.Holder {
	lhs := o.Lhs.Execute(closure, ctx)
	rhs := o.Rhs.Execute(closure, ctx)
	return object.Own(object.Bool(lhs.IsTrue() || rhs.IsTrue()))
}

// Not negates its argument's truthiness.
type Not struct{ Arg Node }

func (n *Not) Execute(closure object.Closure, ctx object.Context) object.Holder {
	return object.Own(object.Bool(!n.Arg.Execute(closure, ctx).IsTrue()))
}

// CompareOp identifies which comparator a Comparison node applies.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLess
	CmpGreater
	CmpLessOrEq
	CmpGreaterOrEq
)

// Comparison evaluates both sides and applies Op, per the equality/order
// rules of spec.md §4.2: natural order for Number/String/Bool, dispatch to
// __eq__/__lt__ for instances, None equal only to None.
type Comparison struct {
	Op       CompareOp
	Lhs, Rhs Node
}

func (c *Comparison) Execute(closure object.Closure, ctx object.Context) object.Holder {
	lhs := c.Lhs.Execute(closure, ctx)
	rhs := c.Rhs.Execute(closure, ctx)

	switch c.Op {
	case CmpEq:
		return object.Own(object.Bool(valuesEqual(lhs, rhs, ctx)))
	case CmpNotEq:
		return object.Own(object.Bool(!valuesEqual(lhs, rhs, ctx)))
	case CmpLess:
		return object.Own(object.Bool(valuesLess(lhs, rhs, ctx)))
	case CmpGreater:
		return object.Own(object.Bool(valuesLess(rhs, lhs, ctx)))
	case CmpLessOrEq:
		return object.Own(object.Bool(valuesLess(lhs, rhs, ctx) || valuesEqual(lhs, rhs, ctx)))
	case CmpGreaterOrEq:
		return object.Own(object.Bool(valuesLess(rhs, lhs, ctx) || valuesEqual(lhs, rhs, ctx)))
	}
	object.Fail("unknown comparator")
	panic("unreachable")
}

func valuesEqual(lhs, rhs object.Holder, ctx object.Context) bool {
	if lhs.IsNone() || rhs.IsNone() {
		return lhs.IsNone() && rhs.IsNone()
	}
	switch lv := lhs.Value().(type) {
	case object.Number:
		rv, ok := rhs.Value().(object.Number)
		if !ok {
			object.Fail("values not comparable")
		}
		return lv == rv
	case object.String:
		rv, ok := rhs.Value().(object.String)
		if !ok {
			object.Fail("values not comparable")
		}
		return lv == rv
	case object.Bool:
		rv, ok := rhs.Value().(object.Bool)
		if !ok {
			object.Fail("values not comparable")
		}
		return lv == rv
	case *object.Instance:
		if res, ok := callMethod(lv, "__eq__", []object.Holder{rhs}, ctx); ok {
			return res.IsTrue()
		}
		object.Fail("values not comparable")
	}
	object.Fail("values not comparable")
	panic("unreachable")
}

func valuesLess(lhs, rhs object.Holder, ctx object.Context) bool {
	switch lv := lhs.Value().(type) {
	case object.Number:
		rv, ok := rhs.Value().(object.Number)
		if !ok {
			object.Fail("values not comparable")
		}
		return lv < rv
	case object.String:
		rv, ok := rhs.Value().(object.String)
		if !ok {
			object.Fail("values not comparable")
		}
		return lv < rv
	case object.Bool:
		rv, ok := rhs.Value().(object.Bool)
		if !ok {
			object.Fail("values not comparable")
		}
		return !bool(lv) && bool(rv)
	case *object.Instance:
		if res, ok := callMethod(lv, "__lt__", []object.Holder{rhs}, ctx); ok {
			return res.IsTrue()
		}
		object.Fail("values not comparable")
	}
	object.Fail("values not comparable")
	panic("unreachable")
}

// MethodCall evaluates Object; if it is a ClassInstance that has a
// matching-arity method Name, evaluates Args left-to-right and dispatches.
// Otherwise it silently returns None — a preserved quirk of the source
// language (spec.md §9), not an error.
type MethodCall struct {
	Object Node
	Name   string
	Args   []Node
}

func (c *MethodCall) Execute(closure object.Closure, ctx object.Context) object.Holder {
	objHolder := c.Object.Execute(closure, ctx)
	inst, ok := objHolder.Value().(*object.Instance)
	if !ok {
		return object.None()
	}
	m, ok := inst.Class.FindMethod(c.Name)
	if !ok || len(m.Params) != len(c.Args) {
		return object.None()
	}
	args := evalArgs(c.Args, closure, ctx)
	res, ok := callMethod(inst, c.Name, args, ctx)
	if !ok {
		return object.None()
	}
	return res
}

// NewInstance allocates a fresh instance of the class bound to ClassName
// in the current closure, dispatching to __init__ when it is defined with
// as many parameters as there are Args (otherwise __init__ is skipped and
// Args are not evaluated). This
// implements the spec-mandated fix: the original source returns a holder
// sharing the Class itself, a bug this port corrects by returning the new
// instance (spec.md §4.3, §9).
type NewInstance struct {
	ClassName string
	Args      []Node
}

func (n *NewInstance) Execute(closure object.Closure, ctx object.Context) object.Holder {
	h, ok := closure[n.ClassName]
	if !ok {
		object.Fail("Cant find var")
	}
	cls, ok := h.Value().(*object.Class)
	if !ok {
		object.Fail("This isn't object")
	}
	inst := object.NewInstance(cls)
	if m, ok := cls.FindMethod("__init__"); ok && len(m.Params) == len(n.Args) {
		args := evalArgs(n.Args, closure, ctx)
		callMethod(inst, "__init__", args, ctx)
	}
	return object.Own(inst)
}

// Stringify evaluates Arg and renders it the way Print would, without the
// trailing newline, as a String. A ClassInstance's __str__ is invoked
// against a DummyContext so any print side effects inside __str__ do not
// escape to the real output sink — only the returned text matters here.
type Stringify struct{ Arg Node }

func (s *Stringify) Execute(closure object.Closure, ctx object.Context) object.Holder {
	h := s.Arg.Execute(closure, ctx)
	if h.IsNone() {
		return object.Own(object.String("None"))
	}
	return object.Own(object.String(textOf(h, object.NewDummyContext())))
}

func evalArgs(nodes []Node, closure object.Closure, ctx object.Context) []object.Holder {
	args := make([]object.Holder, len(nodes))
	for i, n := range nodes {
		args[i] = n.Execute(closure, ctx)
	}
	return args
}

func callMethod(inst *object.Instance, name string, args []object.Holder, ctx object.Context) (object.Holder, bool) {
	m, closure, ok := inst.BindMethod(name, args)
	if !ok {
		return object.Holder{}, false
	}
	return m.Body.Execute(closure, ctx), true
}

// textOf renders h the way Print does: the empty holder as "None", a
// ClassInstance via its zero-arg __str__ if present, everything else via
// Holder.String.
func textOf(h object.Holder, ctx object.Context) string {
	if h.IsNone() {
		return "None"
	}
	if inst, ok := h.Value().(*object.Instance); ok {
		if res, ok := callMethod(inst, "__str__", nil, ctx); ok {
			return res.String()
		}
	}
	return h.String()
}
