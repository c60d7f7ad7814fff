// Package parser implements NTL's recursive-descent parser (§4.3): a single
// forward pass over a token.Tokens stream producing an *ast.File. The
// overall shape (a mutable cursor type carrying an index into the token
// slice, a thin Parse entry point, and errors.Wrapf-style diagnostic
// propagation) is grounded on the teacher's parser.parser/context split
// (parser/parser.go, parser/builtins.go), generalized from yomlette's flat
// YAML token dispatch to NTL's full statement/expression/type grammar.
package parser

import (
	"fmt"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/lexer"
	"github.com/ntl-lang/ntlc/token"
)

// parser holds the cursor over a token stream and the source file identity
// used to stamp diagnostics.
type parser struct {
	file   string
	src    string
	tokens token.Tokens
	pos    int
}

func newParser(file, src string, tokens token.Tokens) *parser {
	return &parser{file: file, src: src, tokens: tokens}
}

// current returns the token at the cursor; past the end of the stream it
// keeps returning the trailing EOF sentinel.
func (p *parser) current() *token.Token {
	if p.pos >= len(p.tokens) {
		return &token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

// peek looks offset tokens ahead of the cursor without consuming anything.
func (p *parser) peek(offset int) *token.Token {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return &token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

func (p *parser) advance() *token.Token {
	tk := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tk
}

// check reports whether the current token has the given type and (if
// non-empty) value, without consuming it.
func (p *parser) check(typ token.Type, value string) bool {
	// The lexer emits ':' as a single-character operator, so a request for
	// punctuation ':' is matched against that operator token.
	if typ == token.Punctuation && value == ":" {
		typ = token.Operator
	}
	return p.current().Is(typ, value)
}

func (p *parser) checkKeyword(kw string) bool {
	return p.check(token.Keyword, kw)
}

func (p *parser) checkPunct(v string) bool {
	return p.check(token.Punctuation, v)
}

func (p *parser) checkOp(v string) bool {
	return p.check(token.Operator, v)
}

// eatIf consumes and returns true if the current token matches, otherwise
// leaves the cursor untouched and returns false.
func (p *parser) eatIf(typ token.Type, value string) bool {
	if p.check(typ, value) {
		p.advance()
		return true
	}
	return false
}

// eat consumes a token of the given type/value or raises a parse
// diagnostic at the current token's location.
func (p *parser) eat(typ token.Type, value string) (*token.Token, error) {
	if !p.check(typ, value) {
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected %s, found %s", describe(typ, value), describe(p.current().Type, p.current().Value))
	}
	return p.advance(), nil
}

// eatSemi consumes an optional trailing `;`; NTL statements never require
// one.
func (p *parser) eatSemi() {
	p.eatIf(token.Punctuation, ";")
}

// isLineEnd reports whether the current token starts on a later source
// line than prevLine, used by `return`'s same-line expression heuristic.
func (p *parser) isLineEnd(prevLine int) bool {
	return p.current().Position.Line > prevLine
}

func describe(typ token.Type, value string) string {
	if value != "" {
		return fmt.Sprintf("%s %q", typ, value)
	}
	return typ.String()
}

func (p *parser) errorf(code diagnostic.Code, format string, args ...interface{}) error {
	pos := p.current().Position
	return &diagnostic.Diagnostic{
		Phase:    diagnostic.PhaseParse,
		Severity: diagnostic.Error,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
		File:     p.file,
		Line:     pos.Line,
		Column:   pos.Column,
		Source:   p.src,
	}
}

func (p *parser) wrapf(err error, format string, args ...interface{}) error {
	return diagnostic.Wrapf(err, format, args...)
}

// parseProgram parses the whole token stream as a sequence of top-level
// statements, stopping at EOF.
func (p *parser) parseProgram() (*ast.File, error) {
	file := &ast.File{Name: p.file}
	for !p.check(token.EOF, "") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse top-level statement")
		}
		file.Stmts = append(file.Stmts, stmt)
	}
	return file, nil
}

// ParseTokens parses an already-lexed token stream into an *ast.File.
func ParseTokens(file, src string, tokens token.Tokens) (*ast.File, error) {
	p := newParser(file, src, tokens)
	f, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ParseSource lexes and parses src in one step.
func ParseSource(file, src string) (*ast.File, error) {
	tokens, lexErr := lexer.Tokenize(file, src)
	if lexErr != nil {
		return nil, lexErr
	}
	return ParseTokens(file, src, tokens)
}

// ParseExprSource lexes and parses src as a single standalone expression,
// used to re-parse a template literal's embedded `${...}` spans (§4.2,
// §4.3) lazily from their raw captured source.
func ParseExprSource(file, src string) (ast.Expr, error) {
	tokens, lexErr := lexer.Tokenize(file, src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := newParser(file, src, tokens)
	return p.parseExpr()
}
