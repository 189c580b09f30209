// Package lexer turns Mython source text into a token stream, resolving
// indentation into explicit Indent/Dedent tokens.
//
// The character-stream discipline (single-character putback via a peek
// buffer) and the overall Current()/Next() shape follow the teacher
// repository's lexer/lexer.go. Indentation bookkeeping follows spec.md
// §4.1.1: rather than re-injecting spaces into the input on a multi-level
// dedent (as the original C++ source does via input_.putback), a small
// pending-token queue is used, per spec.md §9's design note.
package lexer

import (
	"fmt"

	"github.com/mythonic/mython/token"
)

// LexerError is raised (via panic, mirroring the original's throw) on bad
// indentation, an unknown string escape, or a malformed integer literal.
// It is always fatal to the lexer.
type LexerError struct {
	Msg  string
	Line int
	Col  int
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("lexer error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func fail(line, col int, format string, args ...interface{}) {
	panic(&LexerError{Msg: fmt.Sprintf(format, args...), Line: line, Col: col})
}

const indentUnit = 2

// Lexer is a single-pass, single-character-lookahead tokenizer.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	col     int

	openIndent  int
	atLineStart bool

	pending []token.Token

	current  token.Token
	lastReal token.Kind // kind of the last token actually emitted, for newline suppression
	atEOF    bool
	eofDone  bool
}

// New creates a Lexer over input and primes Current() with the first token.
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		col:         0,
		atLineStart: true,
	}
	l.readChar()
	l.current = l.advance()
	return l
}

// Current returns the most recently produced token without advancing.
func (l *Lexer) Current() token.Token { return l.current }

// Next advances the lexer and returns the new current token. Past Eof, it
// keeps returning Eof.
func (l *Lexer) Next() token.Token {
	l.current = l.advance()
	return l.current
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// advance produces the next raw token, draining the pending queue first.
func (l *Lexer) advance() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		l.lastReal = tok.Kind
		return tok
	}

	if l.atEOF {
		if l.eofDone {
			return token.Token{Kind: token.Eof, Line: l.line, Col: l.col}
		}
		return l.emitEOFSequence()
	}

	if l.atLineStart {
		l.atLineStart = false
		if tok, ok := l.handleIndentation(); ok {
			l.lastReal = tok.Kind
			return tok
		}
	}

	return l.lexOne()
}

// handleIndentation skips blank and comment-only lines, then compares the
// next real line's leading space count to the established indent width,
// queueing Indent/Dedent tokens per spec.md §4.1.1. It returns ok=false
// when there is nothing to emit and normal lexing of the line should
// proceed (the leading spaces have already been consumed).
func (l *Lexer) handleIndentation() (token.Token, bool) {
	for {
		startLine, startCol := l.line, l.col
		spaces := 0
		for l.ch == ' ' || l.ch == '\t' {
			spaces++
			l.readChar()
		}

		switch {
		case l.ch == 0:
			return token.Token{}, false
		case l.ch == '\n' || l.ch == '\r':
			l.skipNewlineRaw()
			continue
		case l.ch == '#':
			l.skipComment()
			if l.ch == '\n' || l.ch == '\r' {
				l.skipNewlineRaw()
			}
			continue
		}

		if spaces%indentUnit != 0 {
			fail(startLine, startCol, "Bad indent")
		}

		switch {
		case spaces == l.openIndent:
			return token.Token{}, false
		case spaces > l.openIndent:
			l.openIndent = spaces
			return token.Token{Kind: token.Indent, Line: startLine, Col: startCol}, true
		default:
			levels := (l.openIndent - spaces) / indentUnit
			l.openIndent -= indentUnit
			for i := 1; i < levels; i++ {
				l.pending = append(l.pending, token.Token{Kind: token.Dedent, Line: startLine, Col: startCol})
				l.openIndent -= indentUnit
			}
			return token.Token{Kind: token.Dedent, Line: startLine, Col: startCol}, true
		}
	}
}

func (l *Lexer) skipNewlineRaw() {
	if l.ch == '\r' {
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
		}
	} else {
		l.readChar()
	}
	l.line++
	l.col = 0
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.readChar()
	}
}

// emitEOFSequence builds and starts draining the terminal Dedent*/Newline?/Eof
// sequence described in spec.md §4.1.1.
func (l *Lexer) emitEOFSequence() token.Token {
	var seq []token.Token
	for l.openIndent > 0 {
		seq = append(seq, token.Token{Kind: token.Dedent, Line: l.line, Col: l.col})
		l.openIndent -= indentUnit
	}
	if l.lastReal != token.Newline {
		seq = append(seq, token.Token{Kind: token.Newline, Line: l.line, Col: l.col})
	}
	l.eofDone = true
	if len(seq) == 0 {
		return token.Token{Kind: token.Eof, Line: l.line, Col: l.col}
	}
	l.pending = seq
	tok := l.pending[0]
	l.pending = l.pending[1:]
	l.lastReal = tok.Kind
	return tok
}

func (l *Lexer) lexOne() token.Token {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	line, col := l.line, l.col
	var tok token.Token
	tok.Line, tok.Col = line, col

	switch {
	case l.ch == 0:
		l.atEOF = true
		return l.advance()

	case l.ch == '\n' || l.ch == '\r':
		suppress := l.lastReal == token.Newline || l.lastReal == token.Illegal
		l.skipNewlineRaw()
		l.atLineStart = true
		if suppress {
			return l.advance()
		}
		tok.Kind = token.Newline
		l.lastReal = token.Newline
		return tok

	case l.ch == '#':
		l.skipComment()
		return l.lexOne()

	case l.ch == '\'' || l.ch == '"':
		tok.Kind = token.String
		tok.Str = l.readString(line, col)
		l.lastReal = token.String
		return tok

	case isPunct(l.ch):
		tok = l.readPunct(line, col)
		l.lastReal = tok.Kind
		return tok

	default:
		tok = l.readRun(line, col)
		l.lastReal = tok.Kind
		return tok
	}
}

func isPunct(c byte) bool {
	switch c {
	case '-', '*', '/', '+', '!', '<', '>', '=', ':', '(', ')', ',', '.':
		return true
	}
	return false
}

func (l *Lexer) readPunct(line, col int) token.Token {
	c := l.ch
	l.readChar()
	two := l.ch
	switch c {
	case '=':
		if two == '=' {
			l.readChar()
			return token.Token{Kind: token.Eq, Line: line, Col: col}
		}
		return token.Token{Kind: token.Assign, Line: line, Col: col}
	case '!':
		if two == '=' {
			l.readChar()
			return token.Token{Kind: token.NotEq, Line: line, Col: col}
		}
		return token.Token{Kind: token.Bang, Line: line, Col: col}
	case '<':
		if two == '=' {
			l.readChar()
			return token.Token{Kind: token.LessOrEq, Line: line, Col: col}
		}
		return token.Token{Kind: token.Less, Line: line, Col: col}
	case '>':
		if two == '=' {
			l.readChar()
			return token.Token{Kind: token.GreaterOrEq, Line: line, Col: col}
		}
		return token.Token{Kind: token.Greater, Line: line, Col: col}
	case '-':
		return token.Token{Kind: token.Minus, Line: line, Col: col}
	case '*':
		return token.Token{Kind: token.Star, Line: line, Col: col}
	case '/':
		return token.Token{Kind: token.Slash, Line: line, Col: col}
	case '+':
		return token.Token{Kind: token.Plus, Line: line, Col: col}
	case ':':
		return token.Token{Kind: token.Colon, Line: line, Col: col}
	case '(':
		return token.Token{Kind: token.LParen, Line: line, Col: col}
	case ')':
		return token.Token{Kind: token.RParen, Line: line, Col: col}
	case ',':
		return token.Token{Kind: token.Comma, Line: line, Col: col}
	case '.':
		return token.Token{Kind: token.Dot, Line: line, Col: col}
	}
	return token.Token{Kind: token.Char, Str: string(c), Line: line, Col: col}
}

// isRunTerminator reports whether c ends an identifier/number run, per
// spec.md §4.1.5. Note '<' and '>' are deliberately absent: they only route
// to punctuation handling when they open a token (see lexOne's dispatch
// order), matching the literal terminator set the spec gives.
func isRunTerminator(c byte) bool {
	switch c {
	case ' ', '\t', '=', '\n', '\r', ':', '*', '-', '/', '+', '!', '#', '(', ')', ',', '.', 0:
		return true
	}
	return false
}

func (l *Lexer) readRun(line, col int) token.Token {
	start := l.pos
	for !isRunTerminator(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]

	if kind := token.Lookup(lexeme); kind != token.Id {
		return token.Token{Kind: kind, Line: line, Col: col}
	}

	if isAllDigits(lexeme) {
		n, err := parseInt32(lexeme)
		if err != nil {
			fail(line, col, "invalid integer literal %q", lexeme)
		}
		return token.Token{Kind: token.Number, Num: n, Line: line, Col: col}
	}

	return token.Token{Kind: token.Id, Str: lexeme, Line: line, Col: col}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseInt32(s string) (int32, error) {
	var v int64
	for i := 0; i < len(s); i++ {
		v = v*10 + int64(s[i]-'0')
		if v > (1<<31 - 1) {
			return 0, fmt.Errorf("integer literal out of range: %q", s)
		}
	}
	return int32(v), nil
}

func (l *Lexer) readString(line, col int) string {
	quote := l.ch
	l.readChar()
	var out []byte
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == quote {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '\'':
				out = append(out, '\'')
			case '"':
				out = append(out, '"')
			default:
				fail(l.line, l.col, "unknown escape sequence \\%c", l.ch)
			}
			l.readChar()
			continue
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}
	return string(out)
}
