package parser

import (
	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// parseStmt dispatches on the leading keyword (§4.3: "Statement-level entry
// dispatches on the leading keyword; expression statements fall through.").
func (p *parser) parseStmt() (ast.Stmt, error) {
	if p.checkOp("@") {
		return p.parseDecoratedDecl()
	}

	switch {
	case p.checkKeyword("var"), p.checkKeyword("val"), p.checkKeyword("let"), p.checkKeyword("const"):
		return p.parseVarStmt()
	case p.checkKeyword("immutable"):
		return p.parseImmutableDecl()
	case p.checkKeyword("fn"):
		return p.parseFnDecl(nil, false)
	case p.checkKeyword("async") && p.peek(1).Is(token.Keyword, "fn"):
		p.advance()
		return p.parseFnDecl(nil, true)
	case p.checkKeyword("class"), p.checkKeyword("abstract") && p.peek(1).Is(token.Keyword, "class"):
		return p.parseClassDecl(nil)
	case p.checkKeyword("interface"):
		return p.parseInterfaceDecl()
	case p.checkKeyword("trait"):
		return p.parseTraitDecl()
	case p.checkKeyword("type"):
		return p.parseTypeAlias()
	case p.checkKeyword("enum"):
		return p.parseEnumDecl()
	case p.checkKeyword("namespace"), p.checkKeyword("module"):
		return p.parseNamespaceDecl()
	case p.checkKeyword("macro"):
		return p.parseMacroDecl()
	case p.checkKeyword("using"):
		return p.parseUsingDecl()
	case p.checkKeyword("declare"):
		return p.parseDeclareStmt()
	case p.checkKeyword("require") && p.peek(1).Is(token.Punctuation, "(") && p.peek(2).Is(token.Keyword, "ntl"):
		return p.parseNTLRequireStmt()
	case p.checkKeyword("if"):
		return p.parseIf()
	case p.checkKeyword("unless"):
		return p.parseUnless()
	case p.checkKeyword("while"):
		return p.parseWhile()
	case p.checkKeyword("do"):
		return p.parseDoWhile()
	case p.checkKeyword("for"):
		return p.parseFor()
	case p.checkKeyword("loop"):
		return p.parseLoop()
	case p.checkKeyword("return"):
		return p.parseReturn()
	case p.checkKeyword("throw"), p.checkKeyword("raise"):
		return p.parseThrow()
	case p.checkKeyword("try"):
		return p.parseTry()
	case p.checkKeyword("match"):
		return p.parseMatch()
	case p.checkKeyword("break"):
		return p.parseBreak()
	case p.checkKeyword("continue"):
		return p.parseContinue()
	case p.checkKeyword("ifset"):
		return p.parseIfSet()
	case p.checkKeyword("spawn"):
		return p.parseSpawn()
	case p.checkKeyword("select"):
		return p.parseSelect()
	case p.checkKeyword("import"):
		return p.parseImport()
	case p.checkKeyword("export"):
		return p.parseExport()
	case p.checkPunct("{"):
		return p.parseBlock()
	}
	return p.parseExprStmt()
}

// parseDecoratedDecl parses a run of `@name(args)` decorators binding to
// the following function, async function, or class declaration (§4.3).
func (p *parser) parseDecoratedDecl() (ast.Stmt, error) {
	decorators, err := p.parseDecoratorList()
	if err != nil {
		return nil, err
	}
	switch {
	case p.checkKeyword("fn"):
		return p.parseFnDecl(decorators, false)
	case p.checkKeyword("async") && p.peek(1).Is(token.Keyword, "fn"):
		p.advance()
		return p.parseFnDecl(decorators, true)
	case p.checkKeyword("class"), p.checkKeyword("abstract") && p.peek(1).Is(token.Keyword, "class"):
		return p.parseClassDecl(decorators)
	}
	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "decorators must precede a function or class declaration")
}

func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.eat(token.Punctuation, "{")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.checkPunct("}") && !p.check(token.EOF, "") {
		s, err := p.parseStmt()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse statement in block")
		}
		stmts = append(stmts, s)
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return ast.NewBlock(open.Position, stmts), nil
}

func (p *parser) parseExprStmt() (ast.Stmt, error) {
	pos := p.current().Position
	x, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse expression statement")
	}
	p.eatSemi()
	return ast.NewExprStmt(pos, x), nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse if condition")
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse if body")
	}
	stmt := ast.NewIf(pos, cond, then)
	for p.checkKeyword("elif") || (p.checkKeyword("else") && p.peek(1).Is(token.Keyword, "if")) {
		if p.checkKeyword("elif") {
			p.advance()
		} else {
			p.advance()
			p.advance()
		}
		elifCond, err := p.parseExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse elif condition")
		}
		elifBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse elif body")
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{Cond: elifCond, Then: elifBody})
	}
	if p.checkKeyword("else") {
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse else body")
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

func (p *parser) parseUnless() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse unless condition")
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse unless body")
	}
	stmt := ast.NewUnless(pos, cond, then)
	if p.checkKeyword("else") {
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse unless else body")
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse while condition")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse while body")
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *parser) parseDoWhile() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse do-while body")
	}
	if _, err := p.eat(token.Keyword, "while"); err != nil {
		return nil, p.wrapf(err, "expected while after do block")
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse do-while condition")
	}
	p.eatSemi()
	return ast.NewDoWhile(pos, body, cond), nil
}

// parseFor parses both `for x [, idx] of iterable { ... }` and
// `for k in obj { ... }`; the loop variable may be destructured in the
// `of` form.
func (p *parser) parseFor() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	isConst := !p.eatIf(token.Keyword, "var")
	if p.checkKeyword("let") || p.checkKeyword("val") || p.checkKeyword("const") {
		isConst = p.current().Value != "let"
		p.advance()
	}

	name, pattern, err := p.parseBindingTarget()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse for-loop variable")
	}

	switch {
	case p.checkKeyword("of"):
		p.advance()
		iterable, err := p.parseExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse for-of iterable")
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse for-of body")
		}
		return ast.NewForOf(pos, name, pattern, iterable, body, isConst), nil
	case p.checkKeyword("in"):
		p.advance()
		obj, err := p.parseExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse for-in object")
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse for-in body")
		}
		return ast.NewForIn(pos, name, obj, body), nil
	}
	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "expected of or in in for loop")
}

func (p *parser) parseLoop() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse loop body")
	}
	return ast.NewLoop(pos, body), nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	pos := p.current().Position
	tk := p.advance()
	if p.checkPunct(";") || p.checkPunct("}") || p.isLineEnd(tk.Position.Line) {
		p.eatSemi()
		return ast.NewReturn(pos, nil), nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse return value")
	}
	p.eatSemi()
	return ast.NewReturn(pos, val), nil
}

func (p *parser) parseThrow() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	val, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse throw value")
	}
	p.eatSemi()
	return ast.NewThrow(pos, val), nil
}

func (p *parser) parseTry() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse try body")
	}
	stmt := ast.NewTry(pos, body)
	if p.checkKeyword("catch") {
		p.advance()
		if p.eatIf(token.Punctuation, "(") {
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected catch parameter name")
			}
			stmt.CatchParam = name.Value
			if _, err := p.eat(token.Punctuation, ")"); err != nil {
				return nil, err
			}
		}
		catchBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse catch body")
		}
		stmt.CatchBody = catchBody
	}
	if p.checkKeyword("finally") {
		p.advance()
		finallyBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse finally body")
		}
		stmt.Finally = finallyBody
	}
	return stmt, nil
}

// parseMatch parses `match SUBJECT { case PAT [| PAT...] [when GUARD] =>
// BODY ... }`. `default`/`else` are interchangeable catch-all keywords;
// an expression body is normalized into a one-statement block (§4.3).
func (p *parser) parseMatch() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	subject, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse match subject")
	}
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	stmt := ast.NewMatch(pos, subject)
	for !p.checkPunct("}") {
		c, err := p.parseMatchCase()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse match case")
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseMatchCase() (ast.MatchCase, error) {
	isDefault := false
	var patterns []*ast.MatchPattern

	switch {
	case p.checkKeyword("default"), p.checkKeyword("else"):
		p.advance()
		isDefault = true
	case p.checkKeyword("case"):
		p.advance()
		pat, err := p.parseMatchPattern()
		if err != nil {
			return ast.MatchCase{}, err
		}
		patterns = append(patterns, pat)
		for p.eatIf(token.Operator, "|") {
			pat, err := p.parseMatchPattern()
			if err != nil {
				return ast.MatchCase{}, err
			}
			patterns = append(patterns, pat)
		}
	default:
		return ast.MatchCase{}, p.errorf(diagnostic.CodeUnexpectedToken, "expected case, default, or else in match body")
	}

	var guard ast.Expr
	if p.checkKeyword("when") {
		p.advance()
		g, err := p.parseExpr()
		if err != nil {
			return ast.MatchCase{}, p.wrapf(err, "failed to parse when guard")
		}
		guard = g
	}

	if _, err := p.eat(token.Operator, "=>"); err != nil {
		return ast.MatchCase{}, p.wrapf(err, "expected => in match case")
	}

	var body *ast.Block
	if p.checkPunct("{") {
		b, err := p.parseBlock()
		if err != nil {
			return ast.MatchCase{}, err
		}
		body = b
	} else {
		pos := p.current().Position
		x, err := p.parseAssignExpr()
		if err != nil {
			return ast.MatchCase{}, p.wrapf(err, "failed to parse match case expression body")
		}
		body = ast.NewBlock(pos, []ast.Stmt{ast.NewExprStmt(pos, x)})
	}
	p.eatIf(token.Punctuation, ",")

	return ast.MatchCase{Patterns: patterns, Guard: guard, Body: body, IsDefault: isDefault}, nil
}

func (p *parser) parseBreak() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	label := ""
	if p.current().Type == token.Identifier && !p.isLineEnd(p.peek(-1).Position.Line) {
		label = p.advance().Value
	}
	p.eatSemi()
	return ast.NewBreak(pos, label), nil
}

func (p *parser) parseContinue() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	label := ""
	if p.current().Type == token.Identifier && !p.isLineEnd(p.peek(-1).Position.Line) {
		label = p.advance().Value
	}
	p.eatSemi()
	return ast.NewContinue(pos, label), nil
}

// parseIfSet parses `ifset X [as y] { ... } [else { ... }]` (GLOSSARY
// "ifset"); the alias is optional (§9 open question).
func (p *parser) parseIfSet() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse ifset scrutinee")
	}
	alias := ""
	if p.checkKeyword("as") {
		p.advance()
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected alias name after as")
		}
		alias = name.Value
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse ifset body")
	}
	stmt := ast.NewIfSet(pos, scrutinee, alias, then)
	if p.checkKeyword("else") {
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse ifset else body")
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

func (p *parser) parseSpawn() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	val, err := p.parseExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse spawn expression")
	}
	p.eatSemi()
	return ast.NewSpawn(pos, val), nil
}

// parseSelect parses `select { case v = ch.receive() => body ... }`.
func (p *parser) parseSelect() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	stmt := ast.NewSelect(pos)
	for !p.checkPunct("}") {
		c, err := p.parseSelectCase()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse select case")
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseSelectCase() (ast.SelectCase, error) {
	isDefault := false
	var bindingName string
	var channel ast.Expr

	switch {
	case p.checkKeyword("default"), p.checkKeyword("else"):
		p.advance()
		isDefault = true
	case p.checkKeyword("case"):
		p.advance()
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return ast.SelectCase{}, p.wrapf(err, "expected binding name in select case")
		}
		bindingName = name.Value
		if _, err := p.eat(token.Operator, "="); err != nil {
			return ast.SelectCase{}, err
		}
		ch, err := p.parseExpr()
		if err != nil {
			return ast.SelectCase{}, p.wrapf(err, "failed to parse select channel expression")
		}
		channel = ch
	default:
		return ast.SelectCase{}, p.errorf(diagnostic.CodeUnexpectedToken, "expected case, default, or else in select body")
	}

	if _, err := p.eat(token.Operator, "=>"); err != nil {
		return ast.SelectCase{}, p.wrapf(err, "expected => in select case")
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.SelectCase{}, p.wrapf(err, "failed to parse select case body")
	}
	return ast.SelectCase{BindingName: bindingName, Channel: channel, Body: body, IsDefault: isDefault}, nil
}

func (p *parser) parseImport() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	stmt := ast.NewImport(pos)

	if p.current().Type == token.Identifier {
		stmt.Default = p.advance().Value
		p.eatIf(token.Punctuation, ",")
	}
	if p.checkOp("*") {
		p.advance()
		if _, err := p.eat(token.Keyword, "as"); err != nil {
			return nil, p.wrapf(err, "expected as after * in import")
		}
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, err
		}
		stmt.Namespace = name.Value
	} else if p.checkPunct("{") {
		p.advance()
		for !p.checkPunct("}") {
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected identifier in import specifier list")
			}
			spec := ast.ImportSpecifier{Name: name.Value}
			if p.checkKeyword("as") {
				p.advance()
				alias, err := p.eat(token.Identifier, "")
				if err != nil {
					return nil, err
				}
				spec.Alias = alias.Value
			}
			stmt.Specifiers = append(stmt.Specifiers, spec)
			if !p.eatIf(token.Punctuation, ",") {
				break
			}
		}
		if _, err := p.eat(token.Punctuation, "}"); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(token.Keyword, "from"); err != nil {
		return nil, p.wrapf(err, "expected from in import statement")
	}
	src, err := p.eat(token.String, "")
	if err != nil {
		return nil, p.wrapf(err, "expected module source string")
	}
	stmt.Source = src.Value
	p.eatSemi()
	return stmt, nil
}

func (p *parser) parseExport() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	if p.checkKeyword("default") {
		p.advance()
		decl, err := p.parseStmt()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse default export")
		}
		stmt := ast.NewExport(pos)
		stmt.Decl, stmt.Default = decl, true
		return stmt, nil
	}
	if p.checkPunct("{") {
		p.advance()
		var names []ast.ImportSpecifier
		for !p.checkPunct("}") {
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected identifier in export specifier list")
			}
			spec := ast.ImportSpecifier{Name: name.Value}
			if p.checkKeyword("as") {
				p.advance()
				alias, err := p.eat(token.Identifier, "")
				if err != nil {
					return nil, err
				}
				spec.Alias = alias.Value
			}
			names = append(names, spec)
			if !p.eatIf(token.Punctuation, ",") {
				break
			}
		}
		if _, err := p.eat(token.Punctuation, "}"); err != nil {
			return nil, err
		}
		stmt := ast.NewExport(pos)
		stmt.Names = names
		if p.checkKeyword("from") {
			p.advance()
			src, err := p.eat(token.String, "")
			if err != nil {
				return nil, p.wrapf(err, "expected module source string")
			}
			stmt.Source = src.Value
		}
		p.eatSemi()
		return stmt, nil
	}
	decl, err := p.parseStmt()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse exported declaration")
	}
	stmt := ast.NewExport(pos)
	stmt.Decl = decl
	return stmt, nil
}

// parseNTLRequireStmt parses the top-level `require(ntl, name, ...)`
// built-in module import form (§6).
func (p *parser) parseNTLRequireStmt() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance()
	p.advance()
	if _, err := p.eat(token.Keyword, "ntl"); err != nil {
		return nil, p.wrapf(err, "expected ntl as the first argument of require(...)")
	}
	var modules []string
	for p.eatIf(token.Punctuation, ",") {
		name, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected module name in require(ntl, ...)")
		}
		modules = append(modules, name.Value)
	}
	if _, err := p.eat(token.Punctuation, ")"); err != nil {
		return nil, err
	}
	p.eatSemi()
	return ast.NewNTLRequire(pos, modules), nil
}
