package parser

import (
	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

// parseExpr parses a full expression at assignment precedence, the top of
// the ladder described in §4.3.
func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignExpr()
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, "&&=": true, "||=": true, "??=": true,
}

func (p *parser) parseAssignExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseTernaryExpr()
	if err != nil {
		return nil, err
	}
	tk := p.current()
	if tk.Type == token.Operator && assignOps[tk.Value] {
		op := p.advance().Value
		right, err := p.parseAssignExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse right-hand side of %s", op)
		}
		out := &ast.AssignExpr{Op: op, Target: left, Value: right}
		out.SetPos(pos)
		return out, nil
	}
	return left, nil
}

func (p *parser) parseTernaryExpr() (ast.Expr, error) {
	pos := p.current().Position
	cond, err := p.parsePipelineExpr()
	if err != nil {
		return nil, err
	}
	if !p.checkOp("?") {
		return cond, nil
	}
	p.advance()
	then, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse ternary then-branch")
	}
	if _, err := p.eat(token.Punctuation, ":"); err != nil {
		return nil, p.wrapf(err, "expected : in ternary expression")
	}
	els, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse ternary else-branch")
	}
	out := &ast.TernaryExpr{Cond: cond, Then: then, Else: els}
	out.SetPos(pos)
	return out, nil
}

func (p *parser) parsePipelineExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseNullishExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("|>") {
		p.advance()
		right, err := p.parseNullishExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse pipeline right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "|>", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

func (p *parser) parseNullishExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("??") {
		p.advance()
		right, err := p.parseLogicalOrExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse ?? right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "??", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

func (p *parser) parseLogicalOrExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseLogicalAndExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("||") {
		p.advance()
		right, err := p.parseLogicalAndExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse || right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "||", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

func (p *parser) parseLogicalAndExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseBitOrExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("&&") {
		p.advance()
		right, err := p.parseBitOrExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse && right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "&&", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

// parseBitOrExpr handles `|`. The lexer never produces a bare "|" token for
// `||`/`|>`, those are matched greedily as their own multi-character
// operators, so no extra lookahead is needed here beyond the token value
// check (§4.2's MultiCharOperators table).
func (p *parser) parseBitOrExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseBitXorExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("|") {
		p.advance()
		right, err := p.parseBitXorExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse | right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "|", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

func (p *parser) parseBitXorExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseBitAndExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("^") {
		p.advance()
		right, err := p.parseBitAndExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse ^ right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "^", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

// parseBitAndExpr handles `&`; see parseBitOrExpr's note on why `&&` never
// collides with it at the token level.
func (p *parser) parseBitAndExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseEqualityExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("&") {
		p.advance()
		right, err := p.parseEqualityExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse & right-hand side")
		}
		bin := &ast.BinaryExpr{Op: "&", X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

var equalityOps = map[string]bool{"===": true, "!==": true, "==": true, "!=": true}

func (p *parser) parseEqualityExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseRelationalExpr()
	if err != nil {
		return nil, err
	}
	for p.current().Type == token.Operator && equalityOps[p.current().Value] {
		op := p.advance().Value
		right, err := p.parseRelationalExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
		}
		bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

var relationalOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

func (p *parser) parseRelationalExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseShiftExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.current().Type == token.Operator && relationalOps[p.current().Value]:
			op := p.advance().Value
			right, err := p.parseShiftExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
			}
			bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
			bin.SetPos(pos)
			left = bin
		case p.checkKeyword("instanceof"), p.checkKeyword("in"), p.checkKeyword("of"):
			op := p.advance().Value
			right, err := p.parseShiftExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
			}
			bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
			bin.SetPos(pos)
			left = bin
		default:
			return left, nil
		}
	}
}

var shiftOps = map[string]bool{"<<": true, ">>": true, ">>>": true}

func (p *parser) parseShiftExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseAdditiveExpr()
	if err != nil {
		return nil, err
	}
	for p.current().Type == token.Operator && shiftOps[p.current().Value] {
		op := p.advance().Value
		right, err := p.parseAdditiveExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
		}
		bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

func (p *parser) parseAdditiveExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseMultiplicativeExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOp("+") || p.checkOp("-") {
		op := p.advance().Value
		right, err := p.parseMultiplicativeExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
		}
		bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

var multiplicativeOps = map[string]bool{"*": true, "/": true, "%": true, "**": true}

func (p *parser) parseMultiplicativeExpr() (ast.Expr, error) {
	pos := p.current().Position
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for p.current().Type == token.Operator && multiplicativeOps[p.current().Value] {
		op := p.advance().Value
		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse %s right-hand side", op)
		}
		bin := &ast.BinaryExpr{Op: op, X: left, Y: right}
		bin.SetPos(pos)
		left = bin
	}
	return left, nil
}

var unaryOpSpellings = map[string]ast.UnaryOp{
	"!": ast.OpNot, "~": ast.OpBitNot, "-": ast.OpNeg, "+": ast.OpPos,
	"++": ast.OpPreIncr, "--": ast.OpPreDecr,
}

func (p *parser) parseUnaryExpr() (ast.Expr, error) {
	tk := p.current()
	pos := tk.Position
	switch {
	case tk.Type == token.Operator && unaryOpSpellings[tk.Value] != "":
		op := unaryOpSpellings[p.advance().Value]
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse unary operand")
		}
		out := &ast.UnaryExpr{Op: op, X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("typeof"):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse typeof operand")
		}
		out := &ast.UnaryExpr{Op: ast.OpTypeof, X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("void"):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse void operand")
		}
		out := &ast.UnaryExpr{Op: ast.OpVoid, X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("delete"):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse delete operand")
		}
		out := &ast.UnaryExpr{Op: ast.OpDelete, X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("await"):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse await operand")
		}
		out := &ast.AwaitExpr{X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("yield"):
		p.advance()
		delegate := p.eatIf(token.Operator, "*")
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse yield operand")
		}
		out := &ast.YieldExpr{X: x, Delegate: delegate}
		out.SetPos(pos)
		return out, nil
	case p.checkOp("..."):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse spread operand")
		}
		out := &ast.SpreadExpr{X: x}
		out.SetPos(pos)
		return out, nil
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() (ast.Expr, error) {
	pos := p.current().Position
	x, err := p.parseCallMemberChain()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.checkOp("++"):
			p.advance()
			out := &ast.UnaryExpr{Op: ast.OpPostIncr, X: x}
			out.SetPos(pos)
			x = out
		case p.checkOp("--"):
			p.advance()
			out := &ast.UnaryExpr{Op: ast.OpPostDecr, X: x}
			out.SetPos(pos)
			x = out
		case p.checkKeyword("as"):
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse type after as")
			}
			out := &ast.BinaryExpr{Op: "as", X: x, Type: t}
			out.SetPos(pos)
			x = out
		case p.checkKeyword("satisfies"):
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse type after satisfies")
			}
			out := &ast.BinaryExpr{Op: "satisfies", X: x, Type: t}
			out.SetPos(pos)
			x = out
		default:
			return x, nil
		}
	}
}

// parseCallMemberChain parses a primary expression followed by any
// sequence of `.member`, `?.member`, `[computed]`, `?.[computed]`, `(args)`,
// `?.(args)`, and `::method` suffixes.
func (p *parser) parseCallMemberChain() (ast.Expr, error) {
	pos := p.current().Position
	x, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.checkPunct("."):
			p.advance()
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected property name after .")
			}
			out := &ast.MemberExpr{Object: x, Property: ast.NewIdentifier(name.Position, name.Value)}
			out.SetPos(pos)
			x = out
		case p.checkOp("?."):
			p.advance()
			switch {
			case p.checkPunct("("):
				args, spread, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				out := &ast.CallExpr{Callee: x, Args: args, Spread: spread, Optional: true}
				out.SetPos(pos)
				x = out
			case p.checkPunct("["):
				p.advance()
				idx, err := p.parseExpr()
				if err != nil {
					return nil, p.wrapf(err, "failed to parse optional computed member")
				}
				if _, err := p.eat(token.Punctuation, "]"); err != nil {
					return nil, err
				}
				out := &ast.MemberExpr{Object: x, Property: idx, Computed: true, Optional: true}
				out.SetPos(pos)
				x = out
			default:
				name, err := p.eat(token.Identifier, "")
				if err != nil {
					return nil, p.wrapf(err, "expected property name after ?.")
				}
				out := &ast.MemberExpr{Object: x, Property: ast.NewIdentifier(name.Position, name.Value), Optional: true}
				out.SetPos(pos)
				x = out
			}
		case p.checkPunct("["):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse computed member")
			}
			if _, err := p.eat(token.Punctuation, "]"); err != nil {
				return nil, err
			}
			out := &ast.MemberExpr{Object: x, Property: idx, Computed: true}
			out.SetPos(pos)
			x = out
		case p.checkPunct("("):
			args, spread, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			out := &ast.CallExpr{Callee: x, Args: args, Spread: spread}
			out.SetPos(pos)
			x = out
		case p.checkOp("::"):
			p.advance()
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected method name after ::")
			}
			out := &ast.BindingExpr{Object: x, Method: name.Value}
			out.SetPos(pos)
			x = out
		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgList() ([]ast.Expr, []bool, error) {
	if _, err := p.eat(token.Punctuation, "("); err != nil {
		return nil, nil, err
	}
	var args []ast.Expr
	var spread []bool
	for !p.checkPunct(")") {
		isSpread := p.eatIf(token.Operator, "...")
		arg, err := p.parseAssignExpr()
		if err != nil {
			return nil, nil, p.wrapf(err, "failed to parse call argument")
		}
		args = append(args, arg)
		spread = append(spread, isSpread)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, ")"); err != nil {
		return nil, nil, err
	}
	return args, spread, nil
}

func (p *parser) parsePrimaryExpr() (ast.Expr, error) {
	tk := p.current()
	pos := tk.Position

	switch {
	case tk.Type == token.Number:
		p.advance()
		out := &ast.NumberLit{Value: tk.Value}
		out.SetPos(pos)
		return out, nil
	case tk.Type == token.BigIntNumber:
		p.advance()
		out := &ast.NumberLit{Value: tk.Value, IsBigInt: true}
		out.SetPos(pos)
		return out, nil
	case tk.Type == token.String:
		p.advance()
		out := &ast.StringLit{Value: tk.Value}
		out.SetPos(pos)
		return out, nil
	case tk.Type == token.Template:
		return p.parseTemplateLiteral()
	case p.checkKeyword("true"):
		p.advance()
		out := &ast.BoolLit{Value: true}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("false"):
		p.advance()
		out := &ast.BoolLit{Value: false}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("null"):
		p.advance()
		out := &ast.NullLit{}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("undefined"):
		p.advance()
		out := &ast.UndefinedLit{}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("this"):
		p.advance()
		out := &ast.ThisExpr{}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("super"):
		p.advance()
		out := &ast.SuperExpr{}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("new"):
		return p.parseNewExpr()
	case p.checkKeyword("have"):
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse have operand")
		}
		out := &ast.HaveExpr{X: x}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("channel") && p.peek(1).Is(token.Punctuation, "("):
		p.advance()
		p.advance()
		if _, err := p.eat(token.Punctuation, ")"); err != nil {
			return nil, err
		}
		out := &ast.ChannelCreateExpr{}
		out.SetPos(pos)
		return out, nil
	case p.checkKeyword("require") && p.peek(1).Is(token.Punctuation, "("):
		return p.parseRequireExpr()
	case p.checkKeyword("async"):
		return p.parseAsyncExprHead()
	case p.checkKeyword("fn"):
		return p.parseFunctionExpr(false)
	case p.checkOp("@"):
		return p.parseDecoratedExpr()
	case tk.Type == token.Identifier:
		return p.parseIdentOrArrow()
	case p.checkPunct("["):
		return p.parseArrayLit()
	case p.checkPunct("{"):
		return p.parseObjectLit()
	case p.checkPunct("("):
		return p.parseParenOrArrow()
	}
	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "unexpected token %s in expression", describe(tk.Type, tk.Value))
}

func (p *parser) parseIdentOrArrow() (ast.Expr, error) {
	name := p.current()
	if p.peek(1).Is(token.Operator, "=>") {
		p.advance()
		p.advance()
		param := &ast.Param{Name: name.Value}
		return p.parseArrowBody([]*ast.Param{param}, nil, false)
	}
	p.advance()
	return ast.NewIdentifier(name.Position, name.Value), nil
}

func (p *parser) parseRequireExpr() (ast.Expr, error) {
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
	out := &ast.RequireExpr{Modules: modules}
	out.SetPos(pos)
	return out, nil
}

func (p *parser) parseNewExpr() (ast.Expr, error) {
	pos := p.current().Position
	p.advance()
	callee, err := p.parseNamedExprPath()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse constructor name after new")
	}
	var args []ast.Expr
	if p.checkPunct("(") {
		args, _, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
	}
	out := &ast.NewExpr{Callee: callee, Args: args}
	out.SetPos(pos)
	return out, nil
}

// parseNamedExprPath parses an identifier followed by any run of plain
// `.member` accesses, used for `new X.Y.Z(...)`'s callee.
func (p *parser) parseNamedExprPath() (ast.Expr, error) {
	name, err := p.eat(token.Identifier, "")
	if err != nil {
		return nil, err
	}
	var x ast.Expr = ast.NewIdentifier(name.Position, name.Value)
	for p.checkPunct(".") {
		p.advance()
		member, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, err
		}
		out := &ast.MemberExpr{Object: x, Property: ast.NewIdentifier(member.Position, member.Value)}
		out.SetPos(name.Position)
		x = out
	}
	return x, nil
}

func (p *parser) parseDecoratedExpr() (ast.Expr, error) {
	pos := p.current().Position
	decorators, err := p.parseDecoratorList()
	if err != nil {
		return nil, err
	}
	x, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse decorated expression")
	}
	out := &ast.DecoratedExpr{Decorators: decorators, X: x}
	out.SetPos(pos)
	return out, nil
}

// parseDecoratorList consumes a run of `@name(args)` prefixes.
func (p *parser) parseDecoratorList() ([]*ast.Decorator, error) {
	var decorators []*ast.Decorator
	for p.checkOp("@") {
		pos := p.current().Position
		p.advance()
		callee, err := p.parseNamedExprPath()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse decorator name")
		}
		var args []ast.Expr
		if p.checkPunct("(") {
			args, _, err = p.parseArgList()
			if err != nil {
				return nil, err
			}
		}
		decorators = append(decorators, ast.NewDecorator(pos, callee, args))
	}
	return decorators, nil
}

func (p *parser) parseArrayLit() (ast.Expr, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "["); err != nil {
		return nil, err
	}
	var elems []ast.Expr
	for !p.checkPunct("]") {
		if p.checkPunct(",") {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		el, err := p.parseAssignExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse array element")
		}
		elems = append(elems, el)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "]"); err != nil {
		return nil, err
	}
	out := &ast.ArrayLit{Elements: elems}
	out.SetPos(pos)
	return out, nil
}

func (p *parser) parseObjectLit() (ast.Expr, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var props []ast.ObjectProp
	for !p.checkPunct("}") {
		prop, err := p.parseObjectProp()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse object property")
		}
		props = append(props, prop)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	out := &ast.ObjectLit{Props: props}
	out.SetPos(pos)
	return out, nil
}

func (p *parser) parseObjectProp() (ast.ObjectProp, error) {
	if p.eatIf(token.Operator, "...") {
		x, err := p.parseAssignExpr()
		if err != nil {
			return ast.ObjectProp{}, p.wrapf(err, "failed to parse spread property value")
		}
		return ast.ObjectProp{Kind: ast.PropSpread, Value: x}, nil
	}

	accessor := ""
	if (p.checkKeyword("get") || p.checkKeyword("set")) && !p.peek(1).Is(token.Operator, ":") && !p.peek(1).Is(token.Punctuation, ",") && !p.peek(1).Is(token.Punctuation, "}") {
		accessor = p.advance().Value
	}

	var key string
	var computed ast.Expr
	switch {
	case p.checkPunct("["):
		p.advance()
		k, err := p.parseAssignExpr()
		if err != nil {
			return ast.ObjectProp{}, p.wrapf(err, "failed to parse computed property key")
		}
		if _, err := p.eat(token.Punctuation, "]"); err != nil {
			return ast.ObjectProp{}, err
		}
		computed = k
	case p.current().Type == token.String:
		key = p.advance().Value
	case p.current().Type == token.Number:
		key = p.advance().Value
	default:
		name, err := p.advanceAsTypeName()
		if err != nil {
			return ast.ObjectProp{}, p.wrapf(err, "expected property key")
		}
		key = name
	}

	switch {
	case accessor == "get":
		params, body, err := p.parseMethodTail()
		if err != nil {
			return ast.ObjectProp{}, err
		}
		return ast.ObjectProp{Kind: ast.PropGetter, Key: key, Computed: computed, Params: params, Body: body}, nil
	case accessor == "set":
		params, body, err := p.parseMethodTail()
		if err != nil {
			return ast.ObjectProp{}, err
		}
		return ast.ObjectProp{Kind: ast.PropSetter, Key: key, Computed: computed, Params: params, Body: body}, nil
	case p.checkPunct("("):
		params, body, err := p.parseMethodTail()
		if err != nil {
			return ast.ObjectProp{}, err
		}
		return ast.ObjectProp{Kind: ast.PropMethod, Key: key, Computed: computed, Params: params, Body: body}, nil
	case p.eatIf(token.Punctuation, ":"):
		val, err := p.parseAssignExpr()
		if err != nil {
			return ast.ObjectProp{}, p.wrapf(err, "failed to parse property value for %s", key)
		}
		return ast.ObjectProp{Kind: ast.PropPlain, Key: key, Computed: computed, Value: val}, nil
	default:
		return ast.ObjectProp{Kind: ast.PropShorthand, Key: key, Value: ast.NewIdentifier(p.current().Position, key)}, nil
	}
}

func (p *parser) parseMethodTail() ([]*ast.Param, *ast.Block, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, p.wrapf(err, "failed to parse method body")
	}
	return params, body, nil
}

// isArrowAhead scans forward from the current `(` token tracking bracket
// depth to find its matching `)`, then reports whether that is immediately
// followed by `=>` (§4.3's arrow-function disambiguation).
func (p *parser) isArrowAhead() bool {
	depth := 0
	i := p.pos
	for i < len(p.tokens) {
		tk := p.tokens[i]
		switch {
		case tk.Is(token.Punctuation, "(") || tk.Is(token.Punctuation, "[") || tk.Is(token.Punctuation, "{"):
			depth++
		case tk.Is(token.Punctuation, ")") || tk.Is(token.Punctuation, "]") || tk.Is(token.Punctuation, "}"):
			depth--
			if depth == 0 {
				next := i + 1
				return next < len(p.tokens) && p.tokens[next].Is(token.Operator, "=>")
			}
		case tk.Type == token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *parser) parseAsyncExprHead() (ast.Expr, error) {
	pos := p.current().Position
	if p.peek(1).Is(token.Keyword, "fn") {
		p.advance()
		return p.parseFunctionExpr(true)
	}
	if p.peek(1).Type == token.Identifier && p.peek(2).Is(token.Operator, "=>") {
		p.advance()
		name := p.advance()
		p.advance()
		param := &ast.Param{Name: name.Value}
		arrow, err := p.parseArrowBody([]*ast.Param{param}, nil, true)
		if err != nil {
			return nil, err
		}
		if a, ok := arrow.(*ast.ArrowFunction); ok {
			a.SetPos(pos)
		}
		return arrow, nil
	}
	if p.peek(1).Is(token.Punctuation, "(") {
		save := p.pos
		p.advance()
		if p.isArrowAhead() {
			params, retType, err := p.parseArrowParams()
			if err != nil {
				return nil, err
			}
			arrow, err := p.parseArrowBody(params, retType, true)
			if err != nil {
				return nil, err
			}
			if a, ok := arrow.(*ast.ArrowFunction); ok {
				a.SetPos(pos)
			}
			return arrow, nil
		}
		p.pos = save
	}
	name := p.advance()
	return ast.NewIdentifier(name.Position, name.Value), nil
}

func (p *parser) parseParenOrArrow() (ast.Expr, error) {
	pos := p.current().Position
	if p.isArrowAhead() {
		params, retType, err := p.parseArrowParams()
		if err != nil {
			return nil, err
		}
		arrow, err := p.parseArrowBody(params, retType, false)
		if err != nil {
			return nil, err
		}
		if a, ok := arrow.(*ast.ArrowFunction); ok {
			a.SetPos(pos)
		}
		return arrow, nil
	}

	p.advance() // (
	first, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse parenthesized expression")
	}
	if p.checkPunct(",") {
		exprs := []ast.Expr{first}
		for p.eatIf(token.Punctuation, ",") {
			e, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse sequence expression element")
			}
			exprs = append(exprs, e)
		}
		if _, err := p.eat(token.Punctuation, ")"); err != nil {
			return nil, err
		}
		out := &ast.SequenceExpr{Exprs: exprs}
		out.SetPos(pos)
		return out, nil
	}
	if _, err := p.eat(token.Punctuation, ")"); err != nil {
		return nil, err
	}
	return first, nil
}

// parseArrowParams parses `(params) [: RetType]` for an arrow function
// already confirmed by isArrowAhead to be followed by `=>`.
func (p *parser) parseArrowParams() ([]*ast.Param, *ast.TypeNode, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, nil, err
	}
	var retType *ast.TypeNode
	if p.eatIf(token.Punctuation, ":") {
		retType, err = p.parseType()
		if err != nil {
			return nil, nil, p.wrapf(err, "failed to parse arrow function return type")
		}
	}
	return params, retType, nil
}

func (p *parser) parseArrowBody(params []*ast.Param, retType *ast.TypeNode, async bool) (ast.Expr, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Operator, "=>"); err != nil {
		return nil, p.wrapf(err, "expected => in arrow function")
	}
	arrow := &ast.ArrowFunction{Params: params, ReturnType: retType, Async: async}
	arrow.SetPos(pos)
	if p.checkPunct("{") {
		body, err := p.parseBlock()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse arrow function body")
		}
		arrow.Body = body
		return arrow, nil
	}
	expr, err := p.parseAssignExpr()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse arrow function expression body")
	}
	arrow.ExprBody = expr
	return arrow, nil
}

func (p *parser) parseFunctionExpr(async bool) (ast.Expr, error) {
	pos := p.current().Position
	p.advance() // fn
	name := ""
	if p.current().Type == token.Identifier {
		name = p.advance().Value
	}
	generator := p.eatIf(token.Operator, "*")
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var retType *ast.TypeNode
	if p.eatIf(token.Punctuation, ":") {
		retType, err = p.parseType()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse function return type")
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, p.wrapf(err, "failed to parse function body")
	}
	out := &ast.FunctionExpr{Name: name, Params: params, ReturnType: retType, Body: body, Async: async, Generator: generator}
	out.SetPos(pos)
	return out, nil
}

// parseParamList parses `(p0, p1, ...rest)` including destructuring
// patterns, type annotations, defaults, and a trailing rest parameter.
func (p *parser) parseParamList() ([]*ast.Param, error) {
	if _, err := p.eat(token.Punctuation, "("); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for !p.checkPunct(")") {
		param := &ast.Param{}
		if p.eatIf(token.Operator, "...") {
			param.Rest = true
		}
		name, pattern, err := p.parseBindingTarget()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse parameter")
		}
		param.Name, param.Pattern = name, pattern
		if p.eatIf(token.Operator, "?") {
			// optional parameter marker; type remains as declared (or any)
		}
		if p.eatIf(token.Punctuation, ":") {
			t, err := p.parseType()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse parameter type")
			}
			param.Type = t
		}
		if p.eatIf(token.Operator, "=") {
			def, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse parameter default value")
			}
			param.Default = def
		}
		params = append(params, param)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseTemplateLiteral re-parses each embedded-expression span the lexer
// captured as a raw TemplatePart.Source (§4.2), lazily lexing and parsing
// it as a standalone expression.
func (p *parser) parseTemplateLiteral() (ast.Expr, error) {
	tk := p.advance()
	lit := &ast.TemplateLit{}
	lit.SetPos(tk.Position)
	for _, part := range tk.Parts {
		if part.Kind == token.PartLiteral {
			lit.Parts = append(lit.Parts, ast.TemplatePart{Literal: part.Text})
			continue
		}
		expr, err := ParseExprSource(p.file, part.Source)
		if err != nil {
			return nil, p.wrapf(err, "failed to parse template expression")
		}
		lit.Parts = append(lit.Parts, ast.TemplatePart{Expr: expr})
	}
	return lit, nil
}
