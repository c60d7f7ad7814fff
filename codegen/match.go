package codegen

import (
	"fmt"
	"strings"

	"github.com/ntl-lang/ntlc/ast"
)

// matchStmt lowers a match statement to an if/else-if cascade over a fresh
// subject binding (§4.6): each case's patterns compile to a boolean
// predicate plus a set of const-binding lines for any names the pattern
// captures.
func (e *emitter) matchStmt(n *ast.Match) {
	e.matchSeq++
	subject := fmt.Sprintf("__match%d", e.matchSeq)
	e.line(fmt.Sprintf("const %s = %s;", subject, e.expr(n.Subject)))

	first := true
	for _, c := range n.Cases {
		if c.IsDefault {
			continue
		}
		cond := e.casePredicate(subject, c)
		kw := "if"
		if !first {
			kw = "} else if"
		}
		first = false
		e.line(fmt.Sprintf("%s (%s) {", kw, cond))
		e.indentLevel++
		for _, bind := range e.caseBindings(subject, c) {
			e.line(bind)
		}
		e.indentLevel--
		for _, s := range c.Body.Stmts {
			e.stmt(s)
		}
	}
	for _, c := range n.Cases {
		if !c.IsDefault {
			continue
		}
		if first {
			e.line("{")
		} else {
			e.line("} else {")
		}
		e.indentBlock(c.Body)
		first = false
	}
	if !first {
		e.line("}")
	}
}

func (e *emitter) casePredicate(subject string, c ast.MatchCase) string {
	alts := make([]string, len(c.Patterns))
	for i, p := range c.Patterns {
		cond, _ := e.matchPatternPredicate(subject, p)
		alts[i] = cond
	}
	combined := strings.Join(alts, " || ")
	if len(alts) > 1 {
		combined = "(" + combined + ")"
	}
	if c.Guard != nil {
		combined = fmt.Sprintf("%s && (%s)", combined, e.expr(c.Guard))
	}
	return combined
}

func (e *emitter) caseBindings(subject string, c ast.MatchCase) []string {
	if len(c.Patterns) == 0 {
		return nil
	}
	_, binds := e.matchPatternPredicate(subject, c.Patterns[0])
	return binds
}

// matchPatternPredicate compiles a single match pattern against subject
// into a boolean JS expression plus the const-declaration lines for any
// names it binds, recursing structurally for variant/array/object shapes.
func (e *emitter) matchPatternPredicate(subject string, p *ast.MatchPattern) (string, []string) {
	switch p.Kind {
	case ast.MPWildcard:
		return "true", nil
	case ast.MPBinding:
		if p.BindingName == "" || p.BindingName == "_" {
			return "true", nil
		}
		return "true", []string{fmt.Sprintf("const %s = %s;", p.BindingName, subject)}
	case ast.MPLiteral:
		return fmt.Sprintf("%s === %s", subject, e.expr(p.LiteralValue)), nil
	case ast.MPEnumVal:
		return fmt.Sprintf("%s === %s", subject, strings.Join(p.EnumPath, ".")), nil
	case ast.MPVariant:
		conds := []string{fmt.Sprintf("%s && %s._tag === %q", subject, subject, p.VariantName)}
		var binds []string
		for i, f := range p.VariantFields {
			childSubject := fmt.Sprintf("%s._%d", subject, i)
			c, b := e.matchPatternPredicate(childSubject, f)
			if c != "true" {
				conds = append(conds, c)
			}
			binds = append(binds, b...)
		}
		return strings.Join(conds, " && "), binds
	case ast.MPArray:
		conds := []string{fmt.Sprintf("Array.isArray(%s) && %s.length === %d", subject, subject, len(p.ArrayItems))}
		var binds []string
		for i, item := range p.ArrayItems {
			childSubject := fmt.Sprintf("%s[%d]", subject, i)
			c, b := e.matchPatternPredicate(childSubject, item)
			if c != "true" {
				conds = append(conds, c)
			}
			binds = append(binds, b...)
		}
		return strings.Join(conds, " && "), binds
	case ast.MPObject:
		conds := []string{fmt.Sprintf("%s && typeof %s === \"object\"", subject, subject)}
		var binds []string
		for _, prop := range p.ObjectProps {
			childSubject := fmt.Sprintf("%s.%s", subject, prop.Key)
			c, b := e.matchPatternPredicate(childSubject, prop.Pattern)
			if c != "true" {
				conds = append(conds, c)
			}
			binds = append(binds, b...)
		}
		return strings.Join(conds, " && "), binds
	}
	return "true", nil
}

// selectStmt lowers `select { case v = ch.receive() => ... }` to a
// Promise.race over tagged case results (§4.6, §5).
func (e *emitter) selectStmt(n *ast.Select) {
	e.selectSeq++
	resultVar := fmt.Sprintf("__select%d", e.selectSeq)

	var racing []ast.SelectCase
	var def *ast.SelectCase
	for i := range n.Cases {
		c := n.Cases[i]
		if c.IsDefault {
			def = &c
			continue
		}
		racing = append(racing, c)
	}

	e.line(fmt.Sprintf("const %s = await Promise.race([", resultVar))
	e.indentLevel++
	for i, c := range racing {
		e.line(fmt.Sprintf("%s.then((v) => ({ __case: %d, v })),", e.expr(c.Channel), i))
	}
	e.indentLevel--
	e.line("]);")

	for i, c := range racing {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		e.line(fmt.Sprintf("%s (%s.__case === %d) {", kw, resultVar, i))
		e.indentLevel++
		if c.BindingName != "" {
			e.line(fmt.Sprintf("const %s = %s.v;", c.BindingName, resultVar))
		}
		e.indentLevel--
		for _, s := range c.Body.Stmts {
			e.stmt(s)
		}
	}
	if def != nil {
		if len(racing) > 0 {
			e.line("} else {")
		} else {
			e.line("{")
		}
		e.indentBlock(def.Body)
	}
	if len(racing) > 0 || def != nil {
		e.line("}")
	}
}
