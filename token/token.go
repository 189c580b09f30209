// Package token defines the tagged-variant token model Mython's lexer
// produces and its parser consumes.
package token

import "fmt"

// Kind identifies which variant of Token is in play. Number, Id, String,
// and Char carry a payload (see Token); the rest are singletons.
type Kind int

const (
	Illegal Kind = iota
	Eof

	// valued
	Number // Num
	Id     // Str
	String // Str
	Char   // Str[0]

	// keywords
	Class
	Return
	If
	Else
	Def
	Print
	And
	Or
	Not
	None
	True
	False

	// structural
	Newline
	Indent
	Dedent

	// punctuation
	Minus
	Star
	Slash
	Plus
	Bang
	Less
	Greater
	Assign
	Colon
	LParen
	RParen
	Comma
	Dot

	// two-character comparisons
	Eq
	NotEq
	LessOrEq
	GreaterOrEq
)

var names = map[Kind]string{
	Illegal:     "Illegal",
	Eof:         "Eof",
	Number:      "Number",
	Id:          "Id",
	String:      "String",
	Char:        "Char",
	Class:       "Class",
	Return:      "Return",
	If:          "If",
	Else:        "Else",
	Def:         "Def",
	Print:       "Print",
	And:         "And",
	Or:          "Or",
	Not:         "Not",
	None:        "None",
	True:        "True",
	False:       "False",
	Newline:     "Newline",
	Indent:      "Indent",
	Dedent:      "Dedent",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	Plus:        "Plus",
	Bang:        "Bang",
	Less:        "Less",
	Greater:     "Greater",
	Assign:      "Assign",
	Colon:       "Colon",
	LParen:      "LParen",
	RParen:      "RParen",
	Comma:       "Comma",
	Dot:         "Dot",
	Eq:          "Eq",
	NotEq:       "NotEq",
	LessOrEq:    "LessOrEq",
	GreaterOrEq: "GreaterOrEq",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps a lexeme to the singleton Kind it denotes.
var keywords = map[string]Kind{
	"class":  Class,
	"return": Return,
	"if":     If,
	"else":   Else,
	"def":    Def,
	"print":  Print,
	"and":    And,
	"or":     Or,
	"not":    Not,
	"None":   None,
	"True":   True,
	"False":  False,
}

// Lookup returns the keyword Kind for lexeme, or Id if lexeme is not a
// keyword.
func Lookup(lexeme string) Kind {
	if k, ok := keywords[lexeme]; ok {
		return k
	}
	return Id
}

// Token is a tagged variant: Kind says which case is active, and only the
// matching payload field is meaningful. Num holds Number's payload, Str
// holds Id/String/Char's payload (Char uses the first byte of Str).
type Token struct {
	Kind Kind
	Num  int32
	Str  string

	Line int
	Col  int
}

// Equal compares two tokens by variant and, for valued variants, payload.
// Position is not part of equality.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Number:
		return t.Num == o.Num
	case Id, String, Char:
		return t.Str == o.Str
	default:
		return true
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("Number(%d)", t.Num)
	case Id, String, Char:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Str)
	default:
		return t.Kind.String()
	}
}
