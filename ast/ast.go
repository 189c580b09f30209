// Package ast defines the Abstract Syntax Tree Mython programs are parsed
// into and the single-method `Execute` contract every node satisfies
// (spec.md §3.5, §4.3). Concrete node types are grouped by role across the
// files in this package: literal.go (constants), expr.go (expressions),
// stmt.go (statements), class.go (class/method machinery).
//
// Every node type here implements object.Statement, so it can be stored
// inside an object.Class's Method.Body without object importing ast.
package ast

import "github.com/mythonic/mython/object"

// Node is satisfied by every AST node. It is the same shape as
// object.Statement; ast keeps its own name for it since node types are
// documented and constructed here, while object only needs the narrow
// capability to execute one.
type Node interface {
	Execute(closure object.Closure, ctx object.Context) object.Holder
}

// Program is the root node: the top-level statements of a Mython source
// file, executed in order against the program's top-level closure.
type Program struct {
	Body *Compound
}

func (p *Program) Execute(closure object.Closure, ctx object.Context) object.Holder {
	return p.Body.Execute(closure, ctx)
}
