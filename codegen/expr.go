package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/modules"
)

// precedence mirrors §4.3's operator ladder; higher binds tighter. Used to
// decide when a child expression needs parens under its parent (§4.6: "only
// when the child's precedence is strictly lower than the parent's").
const (
	precSequence = iota
	precAssign
	precTernary
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precCall
	precPrimary
)

var binaryPrec = map[string]int{
	"??": precNullish, "||": precOr, "&&": precAnd,
	"|": precBitOr, "^": precBitXor, "&": precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"instanceof": precRelational, "in": precRelational, "as": precRelational, "satisfies": precRelational,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

func exprPrecedence(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.SequenceExpr:
		return precSequence
	case *ast.AssignExpr:
		return precAssign
	case *ast.TernaryExpr:
		return precTernary
	case *ast.BinaryExpr:
		if n.Op == "|>" {
			return precCall
		}
		if p, ok := binaryPrec[n.Op]; ok {
			return p
		}
		return precAdditive
	case *ast.UnaryExpr:
		switch n.Op {
		case ast.OpPostIncr, ast.OpPostDecr:
			return precPostfix
		default:
			return precUnary
		}
	case *ast.AwaitExpr, *ast.YieldExpr:
		return precUnary
	case *ast.CallExpr, *ast.NewExpr, *ast.MemberExpr, *ast.BindingExpr:
		return precCall
	case *ast.SpreadExpr:
		return precAssign
	default:
		return precPrimary
	}
}

func (e *emitter) exprParens(parentPrec int, child ast.Expr) string {
	s := e.expr(child)
	if exprPrecedence(child) < parentPrec {
		return "(" + s + ")"
	}
	return s
}

func (e *emitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.NumberLit:
		if n.IsBigInt {
			return n.Value + "n"
		}
		return n.Value
	case *ast.StringLit:
		return strconv.Quote(n.Value)
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "null"
	case *ast.UndefinedLit:
		return "undefined"
	case *ast.ThisExpr:
		return "this"
	case *ast.SuperExpr:
		return "super"
	case *ast.Identifier:
		return n.Name
	case *ast.TemplateLit:
		return e.templateLit(n)
	case *ast.ArrayLit:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			if el == nil {
				parts[i] = ""
				continue
			}
			parts[i] = e.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLit:
		return e.objectLit(n)
	case *ast.FunctionExpr:
		return e.functionExpr(n)
	case *ast.ArrowFunction:
		return e.arrowFunction(n)
	case *ast.MemberExpr:
		return e.memberExpr(n)
	case *ast.CallExpr:
		return e.callExpr(n)
	case *ast.NewExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = e.expr(a)
		}
		return fmt.Sprintf("new %s(%s)", e.exprParens(precCall, n.Callee), strings.Join(args, ", "))
	case *ast.UnaryExpr:
		return e.unaryExpr(n)
	case *ast.BinaryExpr:
		return e.binaryExpr(n)
	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", e.expr(n.Target), n.Op, e.exprParens(precAssign, n.Value))
	case *ast.TernaryExpr:
		return fmt.Sprintf("%s ? %s : %s",
			e.exprParens(precTernary+1, n.Cond), e.exprParens(precAssign, n.Then), e.exprParens(precAssign, n.Else))
	case *ast.AwaitExpr:
		return "await " + e.exprParens(precUnary, n.X)
	case *ast.YieldExpr:
		if n.Delegate {
			return "yield* " + e.exprParens(precUnary, n.X)
		}
		return "yield " + e.exprParens(precUnary, n.X)
	case *ast.SpreadExpr:
		return "..." + e.exprParens(precAssign, n.X)
	case *ast.SequenceExpr:
		parts := make([]string, len(n.Exprs))
		for i, ex := range n.Exprs {
			parts[i] = e.expr(ex)
		}
		return strings.Join(parts, ", ")
	case *ast.ChannelCreateExpr:
		e.usesChannel = true
		return "__ntlChannel()"
	case *ast.BindingExpr:
		obj := e.exprParens(precCall, n.Object)
		return fmt.Sprintf("%s.%s.bind(%s)", obj, n.Method, obj)
	case *ast.HaveExpr:
		v := e.expr(n.X)
		return fmt.Sprintf("(%s !== null && %s !== undefined)", v, v)
	case *ast.RequireExpr:
		return e.requireExpr(n)
	case *ast.DecoratedExpr:
		result := e.expr(n.X)
		for i := len(n.Decorators) - 1; i >= 0; i-- {
			d := n.Decorators[i]
			result = fmt.Sprintf("%s(%s%s)", e.expr(d.Callee), result, argsSuffix(d.Args, e))
		}
		return result
	}
	return ""
}

func (e *emitter) requireExpr(n *ast.RequireExpr) string {
	parts := make([]string, len(n.Modules))
	for i, m := range n.Modules {
		path, err := modules.Resolve(m)
		if err != nil {
			parts[i] = fmt.Sprintf("require(%q)", m)
			continue
		}
		parts[i] = fmt.Sprintf("require(%q)", path)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e *emitter) templateLit(n *ast.TemplateLit) string {
	var sb strings.Builder
	sb.WriteString("`")
	for _, p := range n.Parts {
		if p.Expr != nil {
			sb.WriteString("${")
			sb.WriteString(e.expr(p.Expr))
			sb.WriteString("}")
			continue
		}
		sb.WriteString(p.Literal)
	}
	sb.WriteString("`")
	return sb.String()
}

func (e *emitter) objectLit(n *ast.ObjectLit) string {
	if len(n.Props) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(n.Props))
	for _, p := range n.Props {
		key := p.Key
		if p.Computed != nil {
			key = "[" + e.expr(p.Computed) + "]"
		}
		switch p.Kind {
		case ast.PropShorthand:
			parts = append(parts, p.Key)
		case ast.PropSpread:
			parts = append(parts, "..."+e.expr(p.Value))
		case ast.PropMethod:
			parts = append(parts, fmt.Sprintf("%s(%s) %s", key, e.paramList(p.Params), e.blockString(p.Body)))
		case ast.PropGetter:
			parts = append(parts, fmt.Sprintf("get %s(%s) %s", key, e.paramList(p.Params), e.blockString(p.Body)))
		case ast.PropSetter:
			parts = append(parts, fmt.Sprintf("set %s(%s) %s", key, e.paramList(p.Params), e.blockString(p.Body)))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s", key, e.expr(p.Value)))
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// blockString renders a block as a single-line `{ ... }` body used inside
// object-literal method shorthand, where the statement emitter's
// newline-per-line style would otherwise misindent mid-expression.
func (e *emitter) blockString(b *ast.Block) string {
	inner := &emitter{indentLevel: 0, usesChannel: e.usesChannel}
	for _, s := range b.Stmts {
		inner.stmt(s)
	}
	e.usesChannel = e.usesChannel || inner.usesChannel
	lines := strings.TrimRight(inner.sb.String(), "\n")
	if lines == "" {
		return "{}"
	}
	return "{\n" + lines + "\n}"
}

func (e *emitter) functionExpr(n *ast.FunctionExpr) string {
	asyncKw, gen := "", ""
	if n.Async {
		asyncKw = "async "
	}
	if n.Generator {
		gen = "*"
	}
	return fmt.Sprintf("%sfunction%s %s(%s) %s", asyncKw, gen, n.Name, e.paramList(n.Params), e.blockString(n.Body))
}

func (e *emitter) arrowFunction(n *ast.ArrowFunction) string {
	asyncKw := ""
	if n.Async {
		asyncKw = "async "
	}
	body := ""
	if n.Body != nil {
		body = e.blockString(n.Body)
	} else {
		body = e.exprParens(precAssign, n.ExprBody)
	}
	return fmt.Sprintf("%s(%s) => %s", asyncKw, e.paramList(n.Params), body)
}

func (e *emitter) memberExpr(n *ast.MemberExpr) string {
	obj := e.exprParens(precCall, n.Object)
	if n.Computed {
		op := "["
		if n.Optional {
			op = "?.["
		}
		return fmt.Sprintf("%s%s%s]", obj, op, e.expr(n.Property))
	}
	sep := "."
	if n.Optional {
		sep = "?."
	}
	id, _ := n.Property.(*ast.Identifier)
	name := ""
	if id != nil {
		name = id.Name
	} else {
		name = e.expr(n.Property)
	}
	return obj + sep + name
}

func (e *emitter) callExpr(n *ast.CallExpr) string {
	callee := e.exprParens(precCall, n.Callee)
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		s := e.expr(a)
		if i < len(n.Spread) && n.Spread[i] {
			s = "..." + s
		}
		parts[i] = s
	}
	sep := "("
	if n.Optional {
		sep = "?.("
	}
	return fmt.Sprintf("%s%s%s)", callee, sep, strings.Join(parts, ", "))
}

func (e *emitter) unaryExpr(n *ast.UnaryExpr) string {
	switch n.Op {
	case ast.OpPostIncr:
		return e.exprParens(precPostfix, n.X) + "++"
	case ast.OpPostDecr:
		return e.exprParens(precPostfix, n.X) + "--"
	case ast.OpPreIncr:
		return "++" + e.exprParens(precUnary, n.X)
	case ast.OpPreDecr:
		return "--" + e.exprParens(precUnary, n.X)
	case ast.OpTypeof, ast.OpVoid, ast.OpDelete:
		return string(n.Op) + " " + e.exprParens(precUnary, n.X)
	default:
		return string(n.Op) + e.exprParens(precUnary, n.X)
	}
}

func (e *emitter) binaryExpr(n *ast.BinaryExpr) string {
	if n.Op == "|>" {
		return fmt.Sprintf("(%s)(%s)", e.expr(n.Y), e.expr(n.X))
	}
	if n.Op == "as" || n.Op == "satisfies" {
		// both erase to a plain value at runtime; the annotation only
		// informs the type inferer (§4.5).
		return e.exprParens(precRelational, n.X)
	}
	prec := binaryPrec[n.Op]
	left := e.exprParens(prec, n.X)
	right := e.exprParens(prec+1, n.Y)
	return fmt.Sprintf("%s %s %s", left, n.Op, right)
}
