package object

import "fmt"

// RuntimeError is the value panicked for any evaluation-time failure:
// dotted access on a non-object, arithmetic on the wrong types,
// division by zero, an unresolved variable, and so on. It carries the
// exact short message strings spec.md and the original C++ source use
// ("Cant find var", "This isn't object", "No __add__ method", "lhs or rhs
// not Number", "Division by zero", "Cant find field"), so error output is
// unsurprising to anyone who has read the original.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

// Fail panics with a *RuntimeError built from format/args. Every ast node
// that can fail at runtime calls this rather than returning an error,
// since Execute's signature (closure, ctx) -> Holder has no room for one;
// object.Statement.Execute callers rely on the recover in interp.Interpret
// to turn this back into a Go error; ast.MethodBody re-raises it untouched
// (spec.md §7).
func Fail(format string, args ...interface{}) {
	panic(&RuntimeError{Msg: fmt.Sprintf(format, args...)})
}

// ReturnSignal is panicked by ast.Return to unwind out of whatever
// statement/block is currently executing, back to the enclosing
// ast.MethodBody, which is the sole recover() site for this type. Value is
// the holder the return statement evaluated.
type ReturnSignal struct {
	Value Holder
}
