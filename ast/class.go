package ast

import "github.com/mythonic/mython/object"

// MethodDef is one `def` inside a class_def block: a name, its formal
// parameter names (not including "self"), and its body.
type MethodDef struct {
	Name   string
	Params []string
	Body   *MethodBody
}

// ClassDefinition builds an object.Class from Methods (resolving Parent
// through the current closure, if named) and binds it under Name in the
// current closure, per spec.md §4.3. Returns the holder it bound.
type ClassDefinition struct {
	Name    string
	Parent  string
	Methods []*MethodDef
}

func (c *ClassDefinition) Execute(closure object.Closure, ctx object.Context) object.Holder {
	var parent *object.Class
	if c.Parent != "" {
		h, ok := closure[c.Parent]
		if !ok {
			object.Fail("Cant find var")
		}
		parent, ok = h.Value().(*object.Class)
		if !ok {
			object.Fail("This isn't object")
		}
	}

	methods := make([]*object.Method, len(c.Methods))
	for i, md := range c.Methods {
		methods[i] = &object.Method{Name: md.Name, Params: md.Params, Body: md.Body}
	}

	cls := object.NewClass(c.Name, methods, parent)
	h := object.Own(cls)
	closure[c.Name] = h
	return h
}
