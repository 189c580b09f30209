// Package object implements Mython's runtime value model: the tagged
// values a program manipulates, the holder that wraps them (including the
// representation of None as an empty holder), and the flat closures method
// bodies execute against.
//
// Value storage follows the teacher repository's approach of a small
// closed set of concrete Go types behind an interface, but ownership is
// resolved by Go's garbage collector rather than manual reference counting
// (spec.md §3.2's open question on cyclic instance graphs is resolved this
// way for the Go port — see DESIGN.md).
package object

import (
	"fmt"
	"io"
)

// Value is the interface every Mython runtime value implements. It exists
// only to give the small closed set of concrete types (Number, String,
// Bool, *Class, *Instance) a common type to be stored in a Holder.
type Value interface {
	// Type names the value's Mython-visible type.
	Type() string
}

// Number is Mython's sole numeric type: a 32-bit signed integer, per
// spec.md §3.1 (no floats, no bignum — overflow beyond int32 is a
// Non-goal).
type Number int32

func (Number) Type() string { return "number" }

// String is a Mython string value.
type String string

func (String) Type() string { return "string" }

// Bool is a Mython boolean value.
type Bool bool

func (Bool) Type() string { return "bool" }

// Holder wraps a Value. A Holder whose Value is nil represents Mython's
// None: absence of a value, not a distinct None case of Value, per
// spec.md §3.2.
type Holder struct {
	v Value
}

// Own wraps v in a new Holder. A nil v produces the None holder.
func Own(v Value) Holder { return Holder{v: v} }

// None is the canonical empty holder.
func None() Holder { return Holder{} }

// IsNone reports whether h holds no value.
func (h Holder) IsNone() bool { return h.v == nil }

// Value returns the wrapped Value, or nil if h IsNone.
func (h Holder) Value() Value { return h.v }

// IsTrue implements Mython's truthiness rule (spec.md §4.2): None is
// false, Bool is its own value, Number is true iff nonzero, String is true
// iff nonempty, and any object (Class/Instance) holder is true.
func (h Holder) IsTrue() bool {
	if h.IsNone() {
		return false
	}
	switch v := h.v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return v != 0
	case String:
		return v != ""
	default:
		return true
	}
}

// String renders h the way Print and Stringify do: "None" for an empty
// holder, the Go %v rendering of the underlying value otherwise. Class and
// Instance values implement fmt.Stringer themselves (see class.go).
func (h Holder) String() string {
	if h.IsNone() {
		return "None"
	}
	return fmt.Sprint(h.v)
}

func (n Number) String() string { return fmt.Sprintf("%d", int32(n)) }
func (s String) String() string { return string(s) }
func (b Bool) String() string {
	if bool(b) {
		return "True"
	}
	return "False"
}

// Closure is the set of names visible inside a method body: exactly self
// (if any) plus the declared parameters, per spec.md §4.2/§5. It is never
// chained to an enclosing scope.
type Closure map[string]Holder

// Statement is the narrow interface ast's node types implement so that
// object (which Class must reference, to hold method bodies) never needs
// to import ast. This breaks what would otherwise be an import cycle:
// object.Class holds object.Statement values; ast's concrete statement
// types satisfy Statement without object ever naming a type from ast.
type Statement interface {
	Execute(closure Closure, ctx Context) Holder
}

// Context is the narrow capability a Statement needs from its caller:
// somewhere to write Print/Stringify output. OutputContext and
// DummyContext (below) are the two implementations spec.md §6 calls for.
type Context interface {
	Output() io.Writer
}

// OutputContext wraps a real sink — the one passed to interp.Interpret.
type OutputContext struct {
	w io.Writer
}

// NewOutputContext wraps w as a Context.
func NewOutputContext(w io.Writer) *OutputContext { return &OutputContext{w: w} }

func (c *OutputContext) Output() io.Writer { return c.w }

// DummyContext owns its own in-memory buffer instead of writing to the
// real sink. Stringify (ast) uses one so that str(obj) can capture a
// nested Print's output as text rather than letting it escape to stdout —
// mirroring the original C++'s DummyContext.
type DummyContext struct {
	buf []byte
}

// NewDummyContext returns a fresh DummyContext with an empty buffer.
func NewDummyContext() *DummyContext { return &DummyContext{} }

func (c *DummyContext) Output() io.Writer { return (*dummyWriter)(c) }

// String returns everything written to c so far.
func (c *DummyContext) String() string { return string(c.buf) }

type dummyWriter DummyContext

func (w *dummyWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
