package lexer

import (
	"strconv"
	"strings"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// scanSingleQuoted scans a '...' string. Single-quoted strings never expand
// embedded expressions (§4.2).
func (l *Lexer) scanSingleQuoted(start token.Position) (*token.Token, *diagnostic.Diagnostic) {
	l.advance() // opening '
	var value strings.Builder
	var raw strings.Builder
	for {
		if l.atEOF() {
			return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated string literal")
		}
		c := l.current()
		if c == '\'' {
			l.advance()
			break
		}
		if c == '\\' {
			raw.WriteRune(l.advance())
			if l.atEOF() {
				return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated string literal")
			}
			e := l.advance()
			raw.WriteRune(e)
			value.WriteRune(decodeSimpleEscape(e))
			continue
		}
		raw.WriteRune(c)
		value.WriteRune(l.advance())
	}
	return &token.Token{Type: token.String, Value: value.String(), Raw: raw.String(), Position: start}, nil
}

func decodeSimpleEscape(e rune) rune {
	switch e {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '"':
		return '"'
	case '\'':
		return '\''
	default:
		return e
	}
}

// scanDoubleQuoted scans a "..." string, supporting \xHH, \uHHHH, \u{...},
// the standard escapes, and `{ ... }` embedded expressions with
// brace-depth tracking. If any embedded expression is found the result is
// a Template token whose Parts alternate between literal chunks and raw
// expression spans (§4.2, §3's Token field description).
func (l *Lexer) scanDoubleQuoted(start token.Position) (*token.Token, *diagnostic.Diagnostic) {
	l.advance() // opening "
	var parts []token.TemplatePart
	var lit strings.Builder
	var raw strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			parts = append(parts, token.TemplatePart{Kind: token.PartLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for {
		if l.atEOF() {
			return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated string literal")
		}
		c := l.current()
		switch {
		case c == '"':
			l.advance()
			if len(parts) == 0 {
				return &token.Token{Type: token.String, Value: lit.String(), Raw: raw.String(), Position: start}, nil
			}
			flushLiteral()
			return &token.Token{Type: token.Template, Parts: parts, Raw: raw.String(), Position: start}, nil
		case c == '\\':
			raw.WriteRune(l.advance())
			r, err := l.scanEscapeSequence(start)
			if err != nil {
				return nil, err
			}
			lit.WriteRune(r)
		case c == '{':
			exprStart := l.pos
			depth := 0
			l.advance()
			depth++
			for depth > 0 {
				if l.atEOF() {
					return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated embedded expression")
				}
				switch l.current() {
				case '{':
					depth++
				case '}':
					depth--
				}
				l.advance()
			}
			span := string(l.src[exprStart+1 : l.pos-1])
			flushLiteral()
			parts = append(parts, token.TemplatePart{Kind: token.PartExpr, Source: span})
			raw.WriteString(string(l.src[exprStart:l.pos]))
		default:
			raw.WriteRune(c)
			lit.WriteRune(l.advance())
		}
	}
}

// scanTemplate scans a `...` backtick template literal with `${ ... }`
// embedded expressions (§4.2).
func (l *Lexer) scanTemplate(start token.Position) (*token.Token, *diagnostic.Diagnostic) {
	l.advance() // opening `
	var parts []token.TemplatePart
	var lit strings.Builder
	var raw strings.Builder

	flushLiteral := func() {
		parts = append(parts, token.TemplatePart{Kind: token.PartLiteral, Text: lit.String()})
		lit.Reset()
	}

	for {
		if l.atEOF() {
			return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated template literal")
		}
		c := l.current()
		switch {
		case c == '`':
			l.advance()
			flushLiteral()
			return &token.Token{Type: token.Template, Parts: parts, Raw: raw.String(), Position: start}, nil
		case c == '\\':
			raw.WriteRune(l.advance())
			r, err := l.scanEscapeSequence(start)
			if err != nil {
				return nil, err
			}
			lit.WriteRune(r)
		case c == '$' && l.peekAt(1) == '{':
			l.advance()
			l.advance()
			exprStart := l.pos
			depth := 1
			for depth > 0 {
				if l.atEOF() {
					return nil, l.errorf(start, diagnostic.CodeUnterminated, "unterminated embedded expression")
				}
				switch l.current() {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth > 0 {
					l.advance()
				}
			}
			span := string(l.src[exprStart:l.pos])
			l.advance() // closing }
			flushLiteral()
			parts = append(parts, token.TemplatePart{Kind: token.PartExpr, Source: span})
			raw.WriteString("${" + span + "}")
		default:
			raw.WriteRune(c)
			lit.WriteRune(l.advance())
		}
	}
}

// scanEscapeSequence decodes the character(s) following a backslash already
// consumed by the caller: the standard escapes plus \xHH, \uHHHH, \u{...}.
func (l *Lexer) scanEscapeSequence(start token.Position) (rune, *diagnostic.Diagnostic) {
	if l.atEOF() {
		return 0, l.errorf(start, diagnostic.CodeUnterminated, "unterminated escape sequence")
	}
	e := l.advance()
	switch e {
	case 'x':
		return l.readHexEscape(start, 2)
	case 'u':
		if l.current() == '{' {
			l.advance()
			var hex strings.Builder
			for !l.atEOF() && l.current() != '}' {
				hex.WriteRune(l.advance())
			}
			if l.atEOF() {
				return 0, l.errorf(start, diagnostic.CodeUnterminated, "unterminated \\u{...} escape")
			}
			l.advance() // closing }
			n, perr := strconv.ParseInt(hex.String(), 16, 32)
			if perr != nil {
				return 0, l.errorf(start, diagnostic.CodeUnexpectedChar, "invalid \\u{...} escape")
			}
			return rune(n), nil
		}
		return l.readHexEscape(start, 4)
	default:
		return decodeSimpleEscape(e), nil
	}
}

func (l *Lexer) readHexEscape(start token.Position, n int) (rune, *diagnostic.Diagnostic) {
	var hex strings.Builder
	for i := 0; i < n; i++ {
		if l.atEOF() || !isHexDigit(l.current()) {
			return 0, l.errorf(start, diagnostic.CodeUnexpectedChar, "invalid hex escape sequence")
		}
		hex.WriteRune(l.advance())
	}
	val, err := strconv.ParseInt(hex.String(), 16, 32)
	if err != nil {
		return 0, l.errorf(start, diagnostic.CodeUnexpectedChar, "invalid hex escape sequence")
	}
	return rune(val), nil
}
