package ast

import "github.com/mythonic/mython/object"

// Assignment evaluates Rv and stores it into the current closure under
// Name, returning the stored holder.
type Assignment struct {
	Name string
	Rv   Node
}

func (a *Assignment) Execute(closure object.Closure, ctx object.Context) object.Holder {
	h := a.Rv.Execute(closure, ctx)
	closure[a.Name] = h
	return h
}

// FieldAssignment evaluates Object (must be a ClassInstance) and Rv, then
// stores Rv's value into the instance's field table under Field.
type FieldAssignment struct {
	Object Node
	Field  string
	Rv     Node
}

func (a *FieldAssignment) Execute(closure object.Closure, ctx object.Context) object.Holder {
	objHolder := a.Object.Execute(closure, ctx)
	inst, ok := objHolder.Value().(*object.Instance)
	if !ok {
		object.Fail("Cant find field")
	}
	h := a.Rv.Execute(closure, ctx)
	inst.Fields[a.Field] = h
	return h
}

// Print evaluates each of Args, writes their textual forms separated by
// single spaces to ctx's output sink, and terminates with one newline.
type Print struct {
	Args []Node
}

func (p *Print) Execute(closure object.Closure, ctx object.Context) object.Holder {
	w := ctx.Output()
	for i, arg := range p.Args {
		if i > 0 {
			w.Write([]byte(" "))
		}
		h := arg.Execute(closure, ctx)
		w.Write([]byte(textOf(h, ctx)))
	}
	w.Write([]byte("\n"))
	return object.None()
}

// Compound evaluates each of Stmts in order; its own value is always
// None — the value of a block is its side effects, not a result.
type Compound struct {
	Stmts []Node
}

func (c *Compound) Execute(closure object.Closure, ctx object.Context) object.Holder {
	for _, s := range c.Stmts {
		s.Execute(closure, ctx)
	}
	return object.None()
}

// IfElse evaluates Cond; if true, evaluates and returns Then's value,
// otherwise evaluates and returns Else's value if present, otherwise None.
type IfElse struct {
	Cond       Node
	Then, Else Node
}

func (i *IfElse) Execute(closure object.Closure, ctx object.Context) object.Holder {
	if i.Cond.Execute(closure, ctx).IsTrue() {
		return i.Then.Execute(closure, ctx)
	}
	if i.Else != nil {
		return i.Else.Execute(closure, ctx)
	}
	return object.None()
}

// Return evaluates Expr and raises an object.ReturnSignal carrying the
// result. The nearest enclosing MethodBody.Execute is the only place this
// is ever recovered (spec.md §7).
type Return struct {
	Expr Node
}

func (r *Return) Execute(closure object.Closure, ctx object.Context) object.Holder {
	panic(&object.ReturnSignal{Value: r.Expr.Execute(closure, ctx)})
}

// MethodBody wraps a method's statement block. It is the sole recover()
// site for object.ReturnSignal in the whole evaluator: if Body completes
// normally, the call's result is None; if Body raises a ReturnSignal,
// the signal's payload becomes the result. Any other panic (in practice,
// *object.RuntimeError) is re-raised untouched, so it is never mistaken
// for a normal return here.
type MethodBody struct {
	Block Node
}

func (mb *MethodBody) Execute(closure object.Closure, ctx object.Context) (result object.Holder) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(*object.ReturnSignal)
			if !ok {
				panic(r)
			}
			result = sig.Value
		}
	}()
	mb.Block.Execute(closure, ctx)
	return object.None()
}
