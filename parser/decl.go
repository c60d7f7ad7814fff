package parser

import (
	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// parseVarStmt parses `var|val|let|const` bindings, including the
// comma-separated multi-declaration form (`val a = 1, b = 2`) and
// destructuring targets (§4.3).
func (p *parser) parseVarStmt() (ast.Stmt, error) {
	pos := p.current().Position
	isConst := p.current().Value != "var" && p.current().Value != "let"
	p.advance()

	first, err := p.parseOneVarDecl(isConst)
	if err != nil {
		return nil, err
	}
	if !p.checkPunct(",") {
		p.eatSemi()
		return first, nil
	}
	decls := []*ast.VarDecl{first}
	for p.eatIf(token.Punctuation, ",") {
		d, err := p.parseOneVarDecl(isConst)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	p.eatSemi()
	return ast.NewMultiVarDecl(pos, decls), nil
}

func (p *parser) parseOneVarDecl(isConst bool) (*ast.VarDecl, error) {
	pos := p.current().Position
	name, pattern, err := p.parseBindingTarget()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse variable binding target")
	}
	var typ *ast.TypeNode
	if p.eatIf(token.Punctuation, ":") {
		typ, err = p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse variable type annotation")
		}
	}
	var init ast.Expr
	if p.eatIf(token.Operator, "=") {
		init, err = p.parseAssignExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse variable initializer")
		}
	}
	return ast.NewVarDecl(pos, name, pattern, typ, init, isConst), nil
}

// parseImmutableDecl parses `immutable val NAME = INIT` (§4.6 freezes the
// initializer after construction).
func (p *parser) parseImmutableDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	if !p.checkKeyword("val") && !p.checkKeyword("const") && !p.checkKeyword("let") && !p.checkKeyword("var") {
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected a variable keyword after immutable")
	}
	inner, err := p.parseVarStmt()
	if err != nil {
		return nil, err
	}
	decl, ok := inner.(*ast.VarDecl)
	if !ok {
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "immutable does not support multiple bindings")
	}
	return ast.NewImmutableDecl(pos, decl), nil
}

// parseFnDecl parses a named function declaration, including an optional
// generic parameter list and decorator prefix already consumed by the
// caller.
func (p *parser) parseFnDecl(decorators []*ast.Decorator, async bool) (ast.Stmt, error) {
	pos := p.current().Position
	p.advance() // fn
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected function name")
	}
	decl := ast.NewFnDecl(pos, name.Value, async)
	decl.Decorators = decorators
	decl.Generator = p.eatIf(token.Operator, "*")

	if p.checkOp("<") {
		typeParams, err := p.parseTypeParamList()
		if err != nil {
			return nil, err
		}
		decl.TypeParams = typeParams
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse parameters for %s", name.Value)
	}
	decl.Params = params

	if p.eatIf(token.Punctuation, ":") {
		retType, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse return type for %s", name.Value)
		}
		decl.ReturnType = retType
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse body for %s", name.Value)
	}
	decl.Body = body
	return decl, nil
}

// parseTypeParamList parses `<T, U extends V>`; bounds are parsed and
// discarded since the inferer does not check generic constraints (§9 Open
// Question, SPEC_FULL scope: generics are erased at codegen).
func (p *parser) parseTypeParamList() ([]string, error) {
	if _, err := p.eat(token.Operator, "<"); err != nil {
		return nil, err
	}
	var names []string
	depth := 1
	for depth > 0 {
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected type parameter name")
		}
		names = append(names, name.Value)
		if p.checkKeyword("extends") {
			p.advance()
			if _, err := p.parseType(); err != nil {
				return nil, p.wrapf(err, "failed to parse type parameter bound")
			}
		}
		if p.eatIf(token.Punctuation, ",") {
			continue
		}
		if p.consumeGenericClose(&depth) {
			break
		}
		return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected , or > in type parameter list")
	}
	return names, nil
}

// parseClassDecl parses a (possibly abstract) class declaration: an
// optional `extends` base expression, an optional `implements` list, a
// generic parameter list, and a member list (§4.3, §4.6).
func (p *parser) parseClassDecl(decorators []*ast.Decorator) (ast.Stmt, error) {
	pos := p.current().Position
	abstract := p.eatIf(token.Keyword, "abstract")
	p.advance() // class
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected class name")
	}
	decl := ast.NewClassDecl(pos, name.Value, abstract)
	decl.Decorators = decorators

	if p.checkOp("<") {
		typeParams, err := p.parseTypeParamList()
		if err != nil {
			return nil, err
		}
		decl.TypeParams = typeParams
	}

	if p.checkKeyword("extends") {
		p.advance()
		base, err := p.parseCallMemberChain()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse base class expression")
		}
		decl.Extends = base
	}

	if p.checkKeyword("implements") {
		p.advance()
		for {
			n, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected interface name after implements")
			}
			decl.Implements = append(decl.Implements, n.Value)
			if p.checkOp("<") {
				if _, err := p.parseGenericArgs(); err != nil {
					return nil, err
				}
			}
			if !p.eatIf(token.Punctuation, ",") {
				break
			}
		}
	}

	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	for !p.checkPunct("}") {
		m, err := p.parseClassMember()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse class member in %s", name.Value)
		}
		decl.Members = append(decl.Members, m)
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseClassMember parses one field, method, getter, setter, or `init`
// constructor member, along with its decorator/visibility/modifier
// prefixes (§4.3, §4.6 lowers `init` to `constructor`).
func (p *parser) parseClassMember() (*ast.ClassMember, error) {
	pos := p.current().Position

	decorators, err := p.parseDecoratorList()
	if err != nil {
		return nil, err
	}

	var static, readonly, abstract, override bool
	visibility := ""
loop:
	for {
		switch {
		case p.checkKeyword("static"):
			static = true
			p.advance()
		case p.checkKeyword("readonly"):
			readonly = true
			p.advance()
		case p.checkKeyword("abstract"):
			abstract = true
			p.advance()
		case p.checkKeyword("override"):
			override = true
			p.advance()
		case p.checkKeyword("private"), p.checkKeyword("public"), p.checkKeyword("protected"):
			visibility = p.advance().Value
		default:
			break loop
		}
	}

	accessor := ""
	if (p.checkKeyword("get") || p.checkKeyword("set")) && !p.peek(1).Is(token.Punctuation, "(") {
		accessor = p.advance().Value
	}

	isInit := p.checkKeyword("init")
	name, err := p.advanceAsTypeName()
	if err != nil {
		return nil, p.wrapf(err, "expected class member name")
	}

	kind := ast.MemberField
	switch {
	case isInit:
		kind = ast.MemberInit
	case accessor == "get":
		kind = ast.MemberGetter
	case accessor == "set":
		kind = ast.MemberSetter
	case p.checkPunct("(") || p.checkOp("<"):
		kind = ast.MemberMethod
	}

	member := ast.NewClassMember(pos, kind, name)
	member.Static, member.Readonly, member.Abstract, member.Override = static, readonly, abstract, override
	member.Visibility = visibility
	member.Decorators = decorators

	if kind == ast.MemberField {
		if p.eatIf(token.Operator, "?") {
			// optional field marker
		}
		if p.eatIf(token.Punctuation, ":") {
			t, err := p.parseType()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse type for field %s", name)
			}
			member.Type = t
		}
		if p.eatIf(token.Operator, "=") {
			init, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse initializer for field %s", name)
			}
			member.Init = init
		}
		p.eatSemi()
		return member, nil
	}

	if p.checkOp("<") {
		if _, err := p.parseTypeParamList(); err != nil {
			return nil, err
		}
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse parameters for %s", name)
	}
	member.Params = params

	if p.eatIf(token.Punctuation, ":") {
		t, err := p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse return type for %s", name)
		}
		member.Type = t
	}

	if abstract {
		p.eatSemi()
		return member, nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse body for %s", name)
	}
	member.Body = body
	return member, nil
}

func (p *parser) parseInterfaceMemberList() ([]ast.InterfaceMember, error) {
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var members []ast.InterfaceMember
	for !p.checkPunct("}") {
		name, err := p.advanceAsTypeName()
		if err != nil {
			return nil, p.wrapf(err, "expected interface member name")
		}
		m := ast.InterfaceMember{Name: name}
		if p.checkPunct("(") {
			m.Method = true
			params, err := p.parseParamList()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse parameters for %s", name)
			}
			m.Params = params
			if p.eatIf(token.Punctuation, ":") {
				ret, err := p.parseType()
				if err != nil {
					return nil, p.wrapf(err, "failed to parse return type for %s", name)
				}
				m.Ret = ret
			}
		} else {
			p.eatIf(token.Operator, "?")
			if p.eatIf(token.Punctuation, ":") {
				t, err := p.parseType()
				if err != nil {
					return nil, p.wrapf(err, "failed to parse type for %s", name)
				}
				m.Type = t
			}
		}
		members = append(members, m)
		p.eatIf(token.Punctuation, ";")
		p.eatIf(token.Punctuation, ",")
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *parser) parseInterfaceDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected interface name")
	}
	decl := ast.NewInterfaceDecl(pos, name.Value)
	if p.checkOp("<") {
		typeParams, err := p.parseTypeParamList()
		if err != nil {
			return nil, err
		}
		decl.TypeParams = typeParams
	}
	if p.checkKeyword("extends") {
		p.advance()
		for {
			n, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected base interface name")
			}
			decl.Extends = append(decl.Extends, n.Value)
			if !p.eatIf(token.Punctuation, ",") {
				break
			}
		}
	}
	members, err := p.parseInterfaceMemberList()
	if err != nil {
		return nil, err
	}
	decl.Members = members
	return decl, nil
}

func (p *parser) parseTraitDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected trait name")
	}
	decl := ast.NewTraitDecl(pos, name.Value)
	members, err := p.parseInterfaceMemberList()
	if err != nil {
		return nil, err
	}
	decl.Members = members
	return decl, nil
}

// parseTypeAlias parses `type Name<T> = <type>`, recognizing the
// algebraic sum-type shape `Name(fields) | Name2(fields) | ...` as a
// special case (§4.3: "type X = Ok(T) | Err(string)").
func (p *parser) parseTypeAlias() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected type alias name")
	}
	decl := ast.NewTypeAlias(pos, name.Value)
	if p.checkOp("<") {
		typeParams, err := p.parseTypeParamList()
		if err != nil {
			return nil, err
		}
		decl.TypeParams = typeParams
	}
	if _, err := p.eat(token.Operator, "="); err != nil {
		return nil, p.wrapf(err, "expected = in type alias")
	}

	if p.current().Type == token.Identifier && p.peek(1).Is(token.Punctuation, "(") {
		variants, err := p.parseAlgebraicVariants()
		if err != nil {
			return nil, err
		}
		decl.Variants = variants
		return decl, nil
	}

	t, err := p.parseType()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse type alias body")
	}
	decl.Type = t
	return decl, nil
}

func (p *parser) parseAlgebraicVariants() ([]ast.AlgebraicVariant, error) {
	var variants []ast.AlgebraicVariant
	for {
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected variant name")
		}
		variant := ast.AlgebraicVariant{Name: name.Value}
		if p.eatIf(token.Punctuation, "(") {
			for !p.checkPunct(")") {
				t, err := p.parseType()
				if err != nil {
					return nil, p.wrapf(err, "failed to parse field type for variant %s", name.Value)
				}
				variant.Fields = append(variant.Fields, t)
				if !p.eatIf(token.Punctuation, ",") {
					break
				}
			}
			if _, err := p.eat(token.Punctuation, ")"); err != nil {
				return nil, err
			}
		}
		variants = append(variants, variant)
		if !p.eatIf(token.Operator, "|") {
			break
		}
	}
	return variants, nil
}

func (p *parser) parseEnumDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected enum name")
	}
	decl := ast.NewEnumDecl(pos, name.Value)
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	for !p.checkPunct("}") {
		memberName, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected enum member name")
		}
		member := ast.EnumMember{Name: memberName.Value}
		if p.eatIf(token.Operator, "=") {
			val, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse value for enum member %s", memberName.Value)
			}
			member.Value = val
		}
		decl.Members = append(decl.Members, member)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *parser) parseNamespaceDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected namespace name")
	}
	fullName := name.Value
	for p.eatIf(token.Punctuation, ".") {
		part, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected identifier in dotted namespace name")
		}
		fullName += "." + part.Value
	}
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.checkPunct("}") {
		s, err := p.parseStmt()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse statement in namespace %s", fullName)
		}
		body = append(body, s)
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return ast.NewNamespaceDecl(pos, fullName, body), nil
}

func (p *parser) parseMacroDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected macro name")
	}
	decl := ast.NewMacroDecl(pos, name.Value)
	params, err := p.parseParamList()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse parameters for macro %s", name.Value)
	}
	decl.Params = params
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse body for macro %s", name.Value)
	}
	decl.Body = body
	return decl, nil
}

func (p *parser) parseUsingDecl() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, p.wrapf(err, "expected using binding name")
	}
	if _, err := p.eat(token.Operator, "="); err != nil {
		return nil, p.wrapf(err, "expected = in using declaration")
	}
	init, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse using initializer")
	}
	p.eatSemi()
	return ast.NewUsingDecl(pos, name.Value, init), nil
}

func (p *parser) parseDeclareStmt() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	inner, err := p.parseStmt()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse declared statement")
	}
	return ast.NewDeclareStmt(pos, inner), nil
}
