package object

import "fmt"

// Method is a single method definition: its formal parameter names and its
// body, stored as the narrow Statement interface so object never imports
// ast. Params does not include "self" — self is threaded separately by
// BindMethod.
type Method struct {
	Name   string
	Params []string
	Body   Statement
}

// Class is a Mython class: a name, its own methods in declaration order,
// and an optional parent to search when a method isn't found locally.
// Declaration order is kept (rather than just a map) because spec.md's
// class-definition node walks methods in source order when building one;
// lookup itself is by name and is insensitive to that order.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class

	byName map[string]*Method
}

// NewClass creates a class with the given methods, wiring up the by-name
// lookup index used by FindMethod.
func NewClass(name string, methods []*Method, parent *Class) *Class {
	c := &Class{Name: name, Methods: methods, Parent: parent}
	c.byName = make(map[string]*Method, len(methods))
	for _, m := range methods {
		c.byName[m.Name] = m
	}
	return c
}

func (*Class) Type() string { return "class" }

func (c *Class) String() string { return fmt.Sprintf("Class %s", c.Name) }

// FindMethod searches c, then its ancestor chain, for a method named name.
// It reports ok=false if no class in the chain defines it — spec.md's
// MethodCall treats this the same as calling on a non-instance: silent
// None, not an error (a preserved quirk, see spec.md §7 and DESIGN.md).
func (c *Class) FindMethod(name string) (*Method, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.byName[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Instance is a live Mython object: a reference to its Class plus its own
// mutable field set. Fields are created lazily on first assignment
// (FieldAssignment), matching spec.md §4.3's field-assignment semantics.
type Instance struct {
	Class  *Class
	Fields map[string]Holder
}

// NewInstance allocates a fresh, empty Instance of cls. This is the fixed
// behavior spec.md mandates: the original C++ NewInstance::Execute shares
// the Class itself (ObjectHolder::Share(cls_)), which is a bug the
// distilled spec explicitly requires this port to correct by returning a
// holder over a genuinely new instance.
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Fields: make(map[string]Holder)}
}

func (*Instance) Type() string { return "instance" }

func (in *Instance) String() string { return fmt.Sprintf("%s instance", in.Class.Name) }

// HasMethod reports whether in's class (or an ancestor) defines name.
func (in *Instance) HasMethod(name string) bool {
	_, ok := in.Class.FindMethod(name)
	return ok
}

// BindMethod looks up name on in's class chain and, if found, builds the
// fresh, flat Closure a call to it should execute against: self plus the
// positional arguments bound to the method's declared parameter names.
// Per spec.md §4.2/§5 this closure contains nothing else — no enclosing
// scope is merged in. ok is false if the method doesn't exist anywhere in
// the chain, or if argument count doesn't match the method's arity.
func (in *Instance) BindMethod(name string, args []Holder) (*Method, Closure, bool) {
	m, ok := in.Class.FindMethod(name)
	if !ok || len(args) != len(m.Params) {
		return nil, nil, false
	}
	closure := make(Closure, len(m.Params)+1)
	closure["self"] = Own(in)
	for i, p := range m.Params {
		closure[p] = args[i]
	}
	return m, closure, true
}
