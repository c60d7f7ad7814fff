// Package lexer implements NTL's hand-written lexer (§4.2): a deterministic
// scan over UTF-8 source that produces a token.Tokens stream terminated by
// an EOF sentinel. The overall shape (a mutable position/line/column
// cursor, per-character dispatch, and a thin Tokenize entry point) is
// grounded on the teacher's scanner.Scanner / lexer.Tokenize split
// (scanner/scanner.go, lexer/lexer.go), adapted from YAML's indentation
// state machine to NTL's C-family token grammar.
package lexer

import (
	"fmt"
	"strings"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// Lexer holds the scanner's mutable state while processing a given text.
type Lexer struct {
	file   string
	src    []rune
	pos    int
	line   int
	column int
}

// New creates a Lexer over src, associated with file for diagnostic
// locations (file may be empty for anonymous/REPL input).
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: []rune(src), line: 1, column: 1}
}

// Tokenize lexes src in full and returns its token stream. On the first
// lex failure it returns a single lex-phase Diagnostic and aborts, per
// §4.2's "Failure" clause.
func Tokenize(file, src string) (token.Tokens, *diagnostic.Diagnostic) {
	l := New(file, src)
	return l.Scan()
}

func (l *Lexer) errorf(pos token.Position, code diagnostic.Code, format string, args ...interface{}) *diagnostic.Diagnostic {
	return &diagnostic.Diagnostic{
		Phase:    diagnostic.PhaseLex,
		Severity: diagnostic.Error,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
		File:     l.file,
		Line:     pos.Line,
		Column:   pos.Column,
		Source:   string(l.src),
	}
}

// Scan consumes the whole source and returns the full token list, or a
// single diagnostic on the first failure.
func (l *Lexer) Scan() (token.Tokens, *diagnostic.Diagnostic) {
	var tokens token.Tokens
	for {
		l.skipWhitespaceAndComments()
		if l.atEOF() {
			tokens = append(tokens, &token.Token{Type: token.EOF, Position: l.pos0()})
			return tokens, nil
		}
		tk, err := l.next()
		if err != nil {
			return nil, err
		}
		if tk != nil {
			tokens = append(tokens, tk)
		}
	}
}

func (l *Lexer) pos0() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) || l.pos+offset < 0 {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) current() rune { return l.peekAt(0) }

func (l *Lexer) advance() rune {
	c := l.current()
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func isIdentStart(c rune) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		c := l.current()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for !l.atEOF() && l.current() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			for !l.atEOF() && !(l.current() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			if !l.atEOF() {
				l.advance()
				l.advance()
			}
		case c == '#':
			for !l.atEOF() && l.current() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() (*token.Token, *diagnostic.Diagnostic) {
	start := l.pos0()
	c := l.current()

	switch {
	case isIdentStart(c):
		return l.scanIdentifier(start), nil
	case isDigit(c):
		return l.scanNumber(start)
	case c == '"':
		return l.scanDoubleQuoted(start)
	case c == '\'':
		return l.scanSingleQuoted(start)
	case c == '`':
		return l.scanTemplate(start)
	}

	if tk := l.scanOperatorOrPunct(start); tk != nil {
		return tk, nil
	}

	l.advance()
	return nil, l.errorf(start, diagnostic.CodeUnexpectedChar, "unexpected character %q", c)
}

func (l *Lexer) scanIdentifier(start token.Position) *token.Token {
	var b strings.Builder
	for !l.atEOF() && isIdentCont(l.current()) {
		b.WriteRune(l.advance())
	}
	name := b.String()
	typ := token.Identifier
	if token.IsKeyword(name) {
		typ = token.Keyword
	}
	return &token.Token{Type: typ, Value: name, Raw: name, Position: start}
}

func (l *Lexer) scanOperatorOrPunct(start token.Position) *token.Token {
	remaining := string(l.src[l.pos:])
	for _, op := range token.MultiCharOperators {
		if strings.HasPrefix(remaining, op) {
			for range op {
				l.advance()
			}
			return &token.Token{Type: token.Operator, Value: op, Raw: op, Position: start}
		}
	}
	c := l.current()
	if token.SingleCharOperators[c] {
		l.advance()
		return &token.Token{Type: token.Operator, Value: string(c), Raw: string(c), Position: start}
	}
	if token.PunctuationChars[c] {
		l.advance()
		return &token.Token{Type: token.Punctuation, Value: string(c), Raw: string(c), Position: start}
	}
	return nil
}
