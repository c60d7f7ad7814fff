package lexer

import (
	"strings"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// scanNumber implements §4.2's number literal grammar: hex/binary/octal
// prefixes, decimal with optional fraction and exponent, underscore digit
// separators (stripped), and an optional trailing `n` bigint suffix.
func (l *Lexer) scanNumber(start token.Position) (*token.Token, *diagnostic.Diagnostic) {
	var raw strings.Builder

	readDigits := func(valid func(rune) bool) {
		for !l.atEOF() {
			c := l.current()
			if c == '_' {
				l.advance()
				continue
			}
			if !valid(c) {
				break
			}
			raw.WriteRune(l.advance())
		}
	}

	if l.current() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		raw.WriteRune(l.advance())
		raw.WriteRune(l.advance())
		readDigits(isHexDigit)
	} else if l.current() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		raw.WriteRune(l.advance())
		raw.WriteRune(l.advance())
		readDigits(func(c rune) bool { return c == '0' || c == '1' })
	} else if l.current() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		raw.WriteRune(l.advance())
		raw.WriteRune(l.advance())
		readDigits(func(c rune) bool { return c >= '0' && c <= '7' })
	} else {
		readDigits(isDigit)
		if l.current() == '.' && isDigit(l.peekAt(1)) {
			raw.WriteRune(l.advance())
			readDigits(isDigit)
		}
		if l.current() == 'e' || l.current() == 'E' {
			save := l.pos
			exp := string(l.advance())
			if l.current() == '+' || l.current() == '-' {
				exp += string(l.advance())
			}
			if isDigit(l.current()) {
				raw.WriteString(exp)
				readDigits(isDigit)
			} else {
				l.pos = save
			}
		}
	}

	isBigInt := false
	if l.current() == 'n' {
		l.advance()
		isBigInt = true
	}

	value := raw.String()
	typ := token.Number
	if isBigInt {
		typ = token.BigIntNumber
	}
	return &token.Token{Type: typ, Value: value, Raw: value, IsBigInt: isBigInt, Position: start}, nil
}
