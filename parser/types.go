package parser

import (
	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// parseType parses a full type expression: union/intersection over postfix
// (array/optional) over primary type forms (§4.3's "Type expressions are
// parsed as a separate grammar").
func (p *parser) parseType() (*ast.TypeNode, error) {
	return p.parseUnionType()
}

func (p *parser) parseUnionType() (*ast.TypeNode, error) {
	first, err := p.parseIntersectionType()
	if err != nil {
		return nil, err
	}
	if !p.checkOp("|") {
		return first, nil
	}
	members := []*ast.TypeNode{first}
	for p.eatIf(token.Operator, "|") {
		m, err := p.parseIntersectionType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse union type member")
		}
		members = append(members, m)
	}
	t := ast.NewType(ast.TUnion, first.Pos())
	t.Members = members
	return t, nil
}

func (p *parser) parseIntersectionType() (*ast.TypeNode, error) {
	first, err := p.parsePostfixType()
	if err != nil {
		return nil, err
	}
	if !p.checkOp("&") {
		return first, nil
	}
	members := []*ast.TypeNode{first}
	for p.eatIf(token.Operator, "&") {
		m, err := p.parsePostfixType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse intersection type member")
		}
		members = append(members, m)
	}
	t := ast.NewType(ast.TIntersection, first.Pos())
	t.Members = members
	return t, nil
}

func (p *parser) parsePostfixType() (*ast.TypeNode, error) {
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for {
		if p.checkPunct("[") && p.peek(1).Is(token.Punctuation, "]") {
			pos := p.current().Position
			p.advance()
			p.advance()
			arr := ast.NewType(ast.TArray, pos)
			arr.Elem = t
			t = arr
			continue
		}
		if p.checkOp("?") {
			p.advance()
			t.Optional = true
			continue
		}
		break
	}
	return t, nil
}

func (p *parser) parsePrimaryType() (*ast.TypeNode, error) {
	tk := p.current()
	pos := tk.Position

	switch {
	case p.checkKeyword("typeof"):
		p.advance()
		inner, err := p.parsePostfixType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse typeof type operand")
		}
		t := ast.NewType(ast.TTypeOf, pos)
		t.Inner = inner
		return t, nil
	case p.checkKeyword("keyof"):
		p.advance()
		inner, err := p.parsePostfixType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse keyof type operand")
		}
		t := ast.NewType(ast.TKeyOf, pos)
		t.Inner = inner
		return t, nil
	case p.checkKeyword("infer"):
		p.advance()
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected identifier after infer")
		}
		t := ast.NewType(ast.TInfer, pos)
		t.Name = name.Value
		return t, nil
	case p.checkPunct("("):
		return p.parseFunctionOrParenType()
	case p.checkPunct("{"):
		return p.parseObjectType()
	case p.checkPunct("["):
		return p.parseTupleType()
	case p.checkKeyword("void"):
		p.advance()
		return ast.NewType(ast.TVoid, pos), nil
	case p.checkKeyword("null"):
		p.advance()
		return ast.NewType(ast.TNullType, pos), nil
	case p.checkKeyword("undefined"):
		p.advance()
		return ast.NewType(ast.TUndefinedType, pos), nil
	case tk.Type == token.String:
		p.advance()
		t := ast.NewType(ast.TLiteral, pos)
		t.LiteralValue = quoteLiteral(tk.Value)
		return t, nil
	case tk.Type == token.Number || tk.Type == token.BigIntNumber:
		p.advance()
		t := ast.NewType(ast.TLiteral, pos)
		t.LiteralValue = tk.Value
		return t, nil
	case tk.Type == token.Identifier || tk.Type == token.Keyword:
		return p.parseNamedType()
	}
	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "unexpected token %s in type expression", describe(tk.Type, tk.Value))
}

var primitiveTypeNames = map[string]bool{
	"any": true, "never": true, "unknown": true,
	"number": true, "string": true, "boolean": true, "bigint": true, "symbol": true, "object": true,
}

// parseNamedType parses a qualified name, optionally followed by a generic
// argument list (`Name<T, U>`).
func (p *parser) parseNamedType() (*ast.TypeNode, error) {
	pos := p.current().Position
	first, err := p.advanceAsTypeName()
	if err != nil {
		return nil, err
	}
	path := []string{first}
	for p.checkPunct(".") && p.peek(1).Type == token.Identifier {
		p.advance()
		path = append(path, p.advance().Value)
	}

	name := path[len(path)-1]
	if len(path) == 1 && primitiveTypeNames[name] {
		switch name {
		case "any":
			return ast.NewType(ast.TAny, pos), nil
		case "never":
			return ast.NewType(ast.TNever, pos), nil
		case "unknown":
			return ast.NewType(ast.TUnknown, pos), nil
		default:
			t := ast.NewType(ast.TPrimitive, pos)
			t.Name = name
			return t, nil
		}
	}

	if !p.checkOp("<") {
		if len(path) > 1 {
			t := ast.NewType(ast.TQualified, pos)
			t.Path = path
			return t, nil
		}
		t := ast.NewType(ast.TClassRef, pos)
		t.Name = name
		return t, nil
	}

	args, err := p.parseGenericArgs()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse generic argument list for %s", name)
	}
	t := ast.NewType(ast.TGeneric, pos)
	t.Name, t.Path, t.Args = name, path, args
	return t, nil
}

// advanceAsTypeName accepts an identifier, or a reserved word used
// positionally as a type name, as the next path segment.
func (p *parser) advanceAsTypeName() (string, error) {
	tk := p.current()
	if tk.Type != token.Identifier && tk.Type != token.Keyword {
		return "", p.errorf(diagnostic.CodeUnexpectedToken, "expected type name, found %s", describe(tk.Type, tk.Value))
	}
	return p.advance().Value, nil
}

// parseGenericArgs consumes `< T, U >`, tracking bracket depth so nested
// generics (`Map<string, Array<number>>`) split a closing `>>`/`>>>`
// operator token back into the right number of individual `>`s.
func (p *parser) parseGenericArgs() ([]*ast.TypeNode, error) {
	if _, err := p.eat(token.Operator, "<"); err != nil {
		return nil, err
	}
	var args []*ast.TypeNode
	depth := 1
	for depth > 0 {
		t, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse generic argument")
		}
		args = append(args, t)
		if p.eatIf(token.Punctuation, ",") {
			continue
		}
		if p.consumeGenericClose(&depth) {
			break
		}
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected , or > in generic argument list")
	}
	return args, nil
}

// consumeGenericClose consumes one level of `>` from the current token,
// splitting a merged `>>`/`>>>` shift-style operator token if necessary.
func (p *parser) consumeGenericClose(depth *int) bool {
	tk := p.current()
	switch {
	case tk.Is(token.Operator, ">"):
		p.advance()
		*depth--
		return *depth == 0
	case tk.Is(token.Operator, ">>"):
		p.splitOperatorToken(">", ">")
		p.advance()
		*depth -= 2
		return *depth <= 0
	case tk.Is(token.Operator, ">>>"):
		p.splitOperatorToken(">", ">>")
		p.advance()
		*depth -= 3
		return *depth <= 0
	}
	return false
}

// splitOperatorToken rewrites the current token into head, reinserting the
// remainder as a synthetic token immediately after it, so a lexer that
// greedily matched a shift operator doesn't defeat nested-generic parsing.
func (p *parser) splitOperatorToken(head, rest string) {
	tk := p.current()
	remainder := &token.Token{Type: token.Operator, Value: rest, Raw: rest, Position: token.Position{Line: tk.Position.Line, Column: tk.Position.Column + len(head)}}
	replaced := &token.Token{Type: token.Operator, Value: head, Raw: head, Position: tk.Position}
	rebuilt := make(token.Tokens, 0, len(p.tokens)+1)
	rebuilt = append(rebuilt, p.tokens[:p.pos]...)
	rebuilt = append(rebuilt, replaced, remainder)
	rebuilt = append(rebuilt, p.tokens[p.pos+1:]...)
	p.tokens = rebuilt
}

func (p *parser) parseFunctionOrParenType() (*ast.TypeNode, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "("); err != nil {
		return nil, err
	}
	var params []ast.FunctionTypeParam
	for !p.checkPunct(")") {
		name := ""
		if p.current().Type == token.Identifier && p.peek(1).Is(token.Operator, ":") {
			name = p.advance().Value
			p.advance()
		}
		t, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse function type parameter")
		}
		params = append(params, ast.FunctionTypeParam{Name: name, Type: *t})
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, ")"); err != nil {
		return nil, err
	}
	if !p.checkOp("->") && !p.checkOp("=>") {
		if len(params) == 1 && params[0].Name == "" {
			pt := params[0].Type
			return &pt, nil
		}
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected -> or => after function type parameter list")
	}
	p.advance()
	ret, err := p.parseType()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse function type return type")
	}
	t := ast.NewType(ast.TFunction, pos)
	t.Params, t.Ret = params, ret
	return t, nil
}

func (p *parser) parseObjectType() (*ast.TypeNode, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var fields []ast.ObjectTypeField
	for !p.checkPunct("}") {
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected object type field name")
		}
		optional := p.eatIf(token.Operator, "?")
		if _, err := p.eat(token.Punctuation, ":"); err != nil {
			return nil, err
		}
		ft, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse object type field %s", name.Value)
		}
		fields = append(fields, ast.ObjectTypeField{Name: name.Value, Type: *ft, Optional: optional})
		if !p.eatIf(token.Punctuation, ";") && !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	t := ast.NewType(ast.TObject, pos)
	t.Fields = fields
	return t, nil
}

func (p *parser) parseTupleType() (*ast.TypeNode, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "["); err != nil {
		return nil, err
	}
	var elems []*ast.TypeNode
	for !p.checkPunct("]") {
		et, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse tuple element type")
		}
		elems = append(elems, et)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "]"); err != nil {
		return nil, err
	}
	t := ast.NewType(ast.TTuple, pos)
	t.Elems = elems
	return t, nil
}

func quoteLiteral(s string) string { return "\"" + s + "\"" }
