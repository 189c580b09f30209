package ast

import "github.com/mythonic/mython/object"

// Literal wraps a constant value computed once at parse time. spec.md
// §4.3 lists NumericConst/StringConst/BoolConst/NoneConst as distinct
// catalogue entries, but all four just yield a fixed holder on Execute —
// the constructors below give each its spec name while sharing the one
// implementation.
type Literal struct {
	Value object.Holder
}

func (l *Literal) Execute(_ object.Closure, _ object.Context) object.Holder {
	return l.Value
}

// NumericConst yields a fixed Number.
func NumericConst(n int32) *Literal { return &Literal{Value: object.Own(object.Number(n))} }

// StringConst yields a fixed String.
func StringConst(s string) *Literal { return &Literal{Value: object.Own(object.String(s))} }

// BoolConst yields a fixed Bool.
func BoolConst(b bool) *Literal { return &Literal{Value: object.Own(object.Bool(b))} }

// NoneConst yields the canonical None holder.
func NoneConst() *Literal { return &Literal{Value: object.None()} }
