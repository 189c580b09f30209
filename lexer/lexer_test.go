package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mythonic/mython/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var out []token.Token
	for {
		tok := l.Current()
		out = append(out, tok)
		if tok.Kind == token.Eof {
			break
		}
		l.Next()
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

// ignorePos drops Line/Col from comparisons; most tests only care about the
// Kind/Num/Str shape of the stream.
var ignorePos = cmpopts.IgnoreFields(token.Token{}, "Line", "Col")

func TestSimpleAssignmentAndNewline(t *testing.T) {
	toks := tokenize(t, "x = 1\n")
	want := []token.Token{
		{Kind: token.Id, Str: "x"},
		{Kind: token.Assign},
		{Kind: token.Number, Num: 1},
		{Kind: token.Newline},
		{Kind: token.Eof},
	}
	if diff := cmp.Diff(want, toks, ignorePos); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLeadingBlankLinesSuppressed(t *testing.T) {
	toks := tokenize(t, "\n\n  \nx = 1\n")
	want := []token.Kind{token.Id, token.Assign, token.Number, token.Newline, token.Eof}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestIndentDedent(t *testing.T) {
	src := "if True:\n  x = 1\ny = 2\n"
	toks := tokenize(t, src)
	want := []token.Kind{
		token.If, token.True, token.Colon, token.Newline,
		token.Indent,
		token.Id, token.Assign, token.Number, token.Newline,
		token.Dedent,
		token.Id, token.Assign, token.Number, token.Newline,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiLevelDedent(t *testing.T) {
	src := "if True:\n  if True:\n    x = 1\ny = 2\n"
	toks := tokenize(t, src)
	want := []token.Kind{
		token.If, token.True, token.Colon, token.Newline,
		token.Indent,
		token.If, token.True, token.Colon, token.Newline,
		token.Indent,
		token.Id, token.Assign, token.Number, token.Newline,
		token.Dedent, token.Dedent,
		token.Id, token.Assign, token.Number, token.Newline,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestOddIndentIsFatal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic on odd indent, got none")
		}
		if _, ok := r.(*LexerError); !ok {
			t.Fatalf("expected *LexerError, got %T (%v)", r, r)
		}
	}()
	tokenize(t, "if True:\n   x = 1\n")
}

func TestUnclosedIndentAtEOFDedentsAndTerminates(t *testing.T) {
	src := "if True:\n  x = 1"
	toks := tokenize(t, src)
	want := []token.Kind{
		token.If, token.True, token.Colon, token.Newline,
		token.Indent,
		token.Id, token.Assign, token.Number,
		token.Dedent, token.Newline,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(t, `x = "a\nb\tc\\d\'e\"f"`+"\n")
	if toks[2].Kind != token.String {
		t.Fatalf("expected String token, got %s", toks[2].Kind)
	}
	want := "a\nb\tc\\d'e\"f"
	if toks[2].Str != want {
		t.Fatalf("decoded string = %q, want %q", toks[2].Str, want)
	}
}

func TestStringDropsRawNewline(t *testing.T) {
	toks := tokenize(t, "x = 'a\nb'\n")
	if toks[2].Kind != token.String {
		t.Fatalf("expected String token, got %s", toks[2].Kind)
	}
	if toks[2].Str != "ab" {
		t.Fatalf("decoded string = %q, want %q", toks[2].Str, "ab")
	}
}

func TestUnknownEscapeIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown escape, got none")
		}
	}()
	tokenize(t, `x = "a\qb"`+"\n")
}

func TestTwoCharComparisons(t *testing.T) {
	toks := tokenize(t, "a == b != c <= d >= e < f > g\n")
	want := []token.Kind{
		token.Id, token.Eq, token.Id, token.NotEq, token.Id, token.LessOrEq,
		token.Id, token.GreaterOrEq, token.Id, token.Less, token.Id,
		token.Greater, token.Id, token.Newline, token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordsNotTreatedAsIdentifiers(t *testing.T) {
	toks := tokenize(t, "class Foo:\n  def bar():\n    return None\n")
	want := []token.Kind{
		token.Class, token.Id, token.Colon, token.Newline,
		token.Indent,
		token.Def, token.Id, token.LParen, token.RParen, token.Colon, token.Newline,
		token.Indent,
		token.Return, token.None, token.Newline,
		token.Dedent, token.Dedent,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentOnlyLineSkipped(t *testing.T) {
	toks := tokenize(t, "x = 1\n# a comment\ny = 2\n")
	want := []token.Kind{
		token.Id, token.Assign, token.Number, token.Newline,
		token.Id, token.Assign, token.Number, token.Newline,
		token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kind stream mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberOverflowIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on integer overflow, got none")
		}
	}()
	tokenize(t, "x = 99999999999\n")
}
