// Package interp wires Mython's lexer, parser, and AST evaluator behind
// one entry point: Interpret(source, out). It is the ambient "public API"
// a consuming Go program imports, and the seam cmd/mython and the test
// suite both call through (spec.md §6, SPEC_FULL.md §6).
package interp

import (
	"io"
	"strings"

	"github.com/mythonic/mython/lexer"
	"github.com/mythonic/mython/object"
	"github.com/mythonic/mython/parser"
)

// Interpret lexes, parses, and evaluates source, writing any `print`
// output to out. It converts the two panic-carried failure channels
// spec.md §7 describes — *lexer.LexerError and *object.RuntimeError —
// into a returned error; a parser error is returned as-is. Nothing else
// is recovered: an unexpected panic (a bug in this interpreter, not in
// the Mython program) still propagates to the caller.
func Interpret(source string, out io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *lexer.LexerError:
				err = e
			case *object.RuntimeError:
				err = e
			default:
				panic(r)
			}
		}
	}()

	prog, perr := parser.Parse(source)
	if perr != nil {
		return perr
	}

	ctx := object.NewOutputContext(out)
	prog.Execute(object.Closure{}, ctx)
	return nil
}

// InterpretString is a convenience wrapper that captures output as a
// string instead of requiring the caller to supply a sink — handy for
// tests and for callers that just want the printed text back.
func InterpretString(source string) (string, error) {
	var sb strings.Builder
	err := Interpret(source, &sb)
	return sb.String(), err
}
