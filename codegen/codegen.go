// Package codegen lowers an NTL *ast.File to portable CommonJS JavaScript
// (§4.6): a two-space-indented newline stream, one construct at a time. The
// driver performs a second textual pass over the emitted CommonJS to
// produce an ES-module target; codegen itself only ever emits CommonJS. It
// is grounded on the teacher's ast.Dump tree-walk (ast/print.go),
// generalized from a read-only dump into a tree-walk that produces source
// text instead of a debug listing.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/modules"
)

type emitter struct {
	sb          strings.Builder
	indentLevel int
	matchSeq    int
	selectSeq   int
	ifSetSeq    int
	usesChannel bool
}

func (e *emitter) writeIndent() {
	e.sb.WriteString(strings.Repeat("  ", e.indentLevel))
}

func (e *emitter) line(s string) {
	e.writeIndent()
	e.sb.WriteString(s)
	e.sb.WriteString("\n")
}

func (e *emitter) indentBlock(b *ast.Block) {
	if b == nil {
		return
	}
	e.indentLevel++
	for _, s := range b.Stmts {
		e.stmt(s)
	}
	e.indentLevel--
}

// channelPrelude backs `channel()` (§4.6, §9: "lifted to a dedicated
// runtime primitive rather than expanded inline"). Emitted once, at the top
// of the file, only when the source actually constructs a channel.
const channelPrelude = `function __ntlChannel() {
  const queue = [];
  const waiters = [];
  return {
    send(v) {
      if (waiters.length > 0) {
        waiters.shift()(v);
      } else {
        queue.push(v);
      }
    },
    receive() {
      if (queue.length > 0) {
        return Promise.resolve(queue.shift());
      }
      return new Promise((resolve) => waiters.push(resolve));
    },
  };
}
`

// Generate renders f as CommonJS JavaScript source (§4.6).
func Generate(f *ast.File) (string, error) {
	e := &emitter{}
	for _, st := range f.Stmts {
		e.stmt(st)
	}
	if e.usesChannel {
		return channelPrelude + "\n" + e.sb.String(), nil
	}
	return e.sb.String(), nil
}

func (e *emitter) stmt(st ast.Stmt) {
	switch n := st.(type) {
	case *ast.VarDecl:
		e.line(e.varDeclLine(n))
	case *ast.MultiVarDecl:
		for _, d := range n.Decls {
			e.stmt(d)
		}
	case *ast.ImmutableDecl:
		e.stmt(n.Decl)
		e.line(fmt.Sprintf("Object.freeze(%s);", n.Decl.Name))
	case *ast.FnDecl:
		e.fnDecl(n)
	case *ast.ClassDecl:
		e.classDecl(n)
	case *ast.InterfaceDecl, *ast.TraitDecl, *ast.TypeAlias, *ast.DeclareStmt, *ast.MacroDecl:
		// elided at codegen (§4.6: "interface / trait / type alias / declare")
	case *ast.EnumDecl:
		e.enumDecl(n)
	case *ast.NamespaceDecl:
		e.namespaceDecl(n)
	case *ast.UsingDecl:
		e.line(fmt.Sprintf("const %s = %s;", n.Name, e.expr(n.Init)))
	case *ast.NTLRequire:
		for _, m := range n.Modules {
			path, err := modules.Resolve(m)
			if err != nil {
				e.line(fmt.Sprintf("const %s = require(%q); // unresolved NTL module", m, m))
				continue
			}
			e.line(fmt.Sprintf("const %s = require(%q);", m, path))
		}
	case *ast.Import:
		e.importStmt(n)
	case *ast.Export:
		e.exportStmt(n)
	case *ast.Block:
		e.line("{")
		e.indentBlock(n)
		e.line("}")
	case *ast.If:
		e.ifStmt(n)
	case *ast.Unless:
		e.line(fmt.Sprintf("if (!(%s)) {", e.expr(n.Cond)))
		e.indentBlock(n.Then)
		if n.Else != nil {
			e.line("} else {")
			e.indentBlock(n.Else)
		}
		e.line("}")
	case *ast.While:
		e.line(fmt.Sprintf("while (%s) {", e.expr(n.Cond)))
		e.indentBlock(n.Body)
		e.line("}")
	case *ast.DoWhile:
		e.line("do {")
		e.indentBlock(n.Body)
		e.line(fmt.Sprintf("} while (%s);", e.expr(n.Cond)))
	case *ast.ForOf:
		kw := "let"
		if n.Const {
			kw = "const"
		}
		target := n.Name
		if n.Pattern != nil {
			target = e.patternTarget(n.Pattern)
		}
		e.line(fmt.Sprintf("for (%s %s of %s) {", kw, target, e.expr(n.Iterable)))
		e.indentBlock(n.Body)
		e.line("}")
	case *ast.ForIn:
		e.line(fmt.Sprintf("for (const %s in %s) {", n.Name, e.expr(n.Object)))
		e.indentBlock(n.Body)
		e.line("}")
	case *ast.Loop:
		e.line("while (true) {")
		e.indentBlock(n.Body)
		e.line("}")
	case *ast.Return:
		if n.Value != nil {
			e.line(fmt.Sprintf("return %s;", e.expr(n.Value)))
		} else {
			e.line("return;")
		}
	case *ast.Throw:
		e.line(fmt.Sprintf("throw %s;", e.expr(n.Value)))
	case *ast.Try:
		e.tryStmt(n)
	case *ast.Match:
		e.matchStmt(n)
	case *ast.Break:
		if n.Label != "" {
			e.line("break " + n.Label + ";")
		} else {
			e.line("break;")
		}
	case *ast.Continue:
		if n.Label != "" {
			e.line("continue " + n.Label + ";")
		} else {
			e.line("continue;")
		}
	case *ast.ExprStmt:
		e.line(e.expr(n.X) + ";")
	case *ast.IfSet:
		e.ifSetStmt(n)
	case *ast.Spawn:
		e.line(fmt.Sprintf("Promise.resolve().then(() => %s);", e.expr(n.Value)))
	case *ast.Select:
		e.selectStmt(n)
	}
}

func (e *emitter) varDeclLine(n *ast.VarDecl) string {
	kw := "let"
	if n.Const {
		kw = "const"
	}
	target := n.Name
	if n.Pattern != nil {
		target = e.patternTarget(n.Pattern)
	}
	if n.Init == nil {
		return fmt.Sprintf("%s %s;", kw, target)
	}
	return fmt.Sprintf("%s %s = %s;", kw, target, e.expr(n.Init))
}

func (e *emitter) ifStmt(n *ast.If) {
	e.line(fmt.Sprintf("if (%s) {", e.expr(n.Cond)))
	e.indentBlock(n.Then)
	for _, ei := range n.ElseIfs {
		e.line(fmt.Sprintf("} else if (%s) {", e.expr(ei.Cond)))
		e.indentBlock(ei.Then)
	}
	if n.Else != nil {
		e.line("} else {")
		e.indentBlock(n.Else)
	}
	e.line("}")
}

func (e *emitter) ifSetStmt(n *ast.IfSet) {
	name := n.Alias
	if name == "" {
		e.ifSetSeq++
		name = fmt.Sprintf("__ifset%d", e.ifSetSeq)
	}
	e.line(fmt.Sprintf("const %s = %s;", name, e.expr(n.Scrutinee)))
	cond := fmt.Sprintf("%s !== null && %s !== undefined", name, name)
	e.line(fmt.Sprintf("if (%s) {", cond))
	e.indentBlock(n.Then)
	if n.Else != nil {
		e.line("} else {")
		e.indentBlock(n.Else)
	}
	e.line("}")
}

func (e *emitter) tryStmt(n *ast.Try) {
	e.line("try {")
	e.indentBlock(n.Body)
	if n.CatchBody != nil {
		param := n.CatchParam
		if param == "" {
			e.line("} catch {")
		} else {
			e.line(fmt.Sprintf("} catch (%s) {", param))
		}
		e.indentBlock(n.CatchBody)
	}
	if n.Finally != nil {
		e.line("} finally {")
		e.indentBlock(n.Finally)
	}
	e.line("}")
}

func (e *emitter) enumDecl(n *ast.EnumDecl) {
	e.line(fmt.Sprintf("const %s = Object.freeze({", n.Name))
	e.indentLevel++
	next := 0
	for _, m := range n.Members {
		var valStr string
		if m.Value != nil {
			valStr = e.expr(m.Value)
			if nl, ok := m.Value.(*ast.NumberLit); ok {
				if iv, err := strconv.Atoi(nl.Value); err == nil {
					next = iv + 1
				}
			}
		} else {
			valStr = strconv.Itoa(next)
			next++
		}
		e.line(fmt.Sprintf("%s: %s,", m.Name, valStr))
	}
	e.indentLevel--
	e.line("});")
}

func (e *emitter) namespaceDecl(n *ast.NamespaceDecl) {
	e.line(fmt.Sprintf("const %s = (() => {", n.Name))
	e.indentLevel++
	names := make([]string, 0, len(n.Body))
	for _, s := range n.Body {
		e.stmt(s)
		if name := declName(s); name != "" {
			names = append(names, name)
		}
	}
	parts := make([]string, len(names))
	for i, nm := range names {
		parts[i] = fmt.Sprintf("%s", nm)
	}
	e.line(fmt.Sprintf("return { %s };", strings.Join(parts, ", ")))
	e.indentLevel--
	e.line("})();")
}

func (e *emitter) importStmt(n *ast.Import) {
	if n.Namespace != "" {
		e.line(fmt.Sprintf("const %s = require(%q);", n.Namespace, n.Source))
		return
	}
	if n.Default != "" && len(n.Specifiers) == 0 {
		e.line(fmt.Sprintf("const %s = require(%q);", n.Default, n.Source))
		return
	}
	parts := make([]string, 0, len(n.Specifiers))
	for _, s := range n.Specifiers {
		if s.Alias != "" && s.Alias != s.Name {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Name, s.Alias))
		} else {
			parts = append(parts, s.Name)
		}
	}
	e.line(fmt.Sprintf("const { %s } = require(%q);", strings.Join(parts, ", "), n.Source))
}

func (e *emitter) exportStmt(n *ast.Export) {
	if n.Decl != nil {
		e.stmt(n.Decl)
		name := declName(n.Decl)
		if name == "" {
			return
		}
		if n.Default {
			e.line(fmt.Sprintf("module.exports = %s;", name))
		} else {
			e.line(fmt.Sprintf("module.exports.%s = %s;", name, name))
		}
		return
	}
	for _, nm := range n.Names {
		exported := nm.Alias
		if exported == "" {
			exported = nm.Name
		}
		e.line(fmt.Sprintf("module.exports.%s = %s;", exported, nm.Name))
	}
}

func declName(st ast.Stmt) string {
	switch n := st.(type) {
	case *ast.FnDecl:
		return n.Name
	case *ast.ClassDecl:
		return n.Name
	case *ast.VarDecl:
		return n.Name
	case *ast.EnumDecl:
		return n.Name
	case *ast.NamespaceDecl:
		return n.Name
	case *ast.MacroDecl:
		return n.Name
	case *ast.ImmutableDecl:
		return n.Decl.Name
	}
	return ""
}

func (e *emitter) patternTarget(p *ast.Pattern) string {
	switch p.Kind {
	case ast.PatternObject:
		parts := make([]string, 0, len(p.ObjectKeys))
		for _, prop := range p.ObjectKeys {
			if prop.Nested != nil {
				parts = append(parts, fmt.Sprintf("%s: %s", prop.Key, e.patternTarget(prop.Nested)))
				continue
			}
			if prop.Rest {
				parts = append(parts, "..."+prop.Key)
				continue
			}
			if prop.Alias != "" && prop.Alias != prop.Key {
				parts = append(parts, fmt.Sprintf("%s: %s", prop.Key, prop.Alias))
			} else {
				parts = append(parts, prop.Key)
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case ast.PatternArray:
		parts := make([]string, 0, len(p.ArrayItems))
		for _, item := range p.ArrayItems {
			switch {
			case item.Hole:
				parts = append(parts, "")
			case item.Rest:
				parts = append(parts, "..."+item.Name)
			case item.Nested != nil:
				parts = append(parts, e.patternTarget(item.Nested))
			default:
				parts = append(parts, item.Name)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return p.Name
	}
}

func (e *emitter) paramList(params []*ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Name
		if p.Pattern != nil {
			name = e.patternTarget(p.Pattern)
		}
		if p.Rest {
			parts = append(parts, "..."+name)
			continue
		}
		if p.Default != nil {
			parts = append(parts, fmt.Sprintf("%s = %s", name, e.expr(p.Default)))
			continue
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

func argsSuffix(args []ast.Expr, e *emitter) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.expr(a)
	}
	return ", " + strings.Join(parts, ", ")
}

func (e *emitter) fnDecl(n *ast.FnDecl) {
	asyncKw := ""
	if n.Async {
		asyncKw = "async "
	}
	gen := ""
	if n.Generator {
		gen = "*"
	}
	e.line(fmt.Sprintf("%sfunction%s %s(%s) {", asyncKw, gen, n.Name, e.paramList(n.Params)))
	e.indentBlock(n.Body)
	e.line("}")
	for i := len(n.Decorators) - 1; i >= 0; i-- {
		d := n.Decorators[i]
		e.line(fmt.Sprintf("%s = %s(%s%s);", n.Name, e.expr(d.Callee), n.Name, argsSuffix(d.Args, e)))
	}
}

func (e *emitter) classDecl(n *ast.ClassDecl) {
	header := "class " + n.Name
	if n.Extends != nil {
		header += " extends " + e.expr(n.Extends)
	}
	e.line(header + " {")
	e.indentLevel++
	for _, m := range n.Members {
		e.classMember(m)
	}
	e.indentLevel--
	e.line("}")
	for i := len(n.Decorators) - 1; i >= 0; i-- {
		d := n.Decorators[i]
		e.line(fmt.Sprintf("%s = %s(%s%s);", n.Name, e.expr(d.Callee), n.Name, argsSuffix(d.Args, e)))
	}
}

func (e *emitter) classMember(m *ast.ClassMember) {
	prefix := ""
	if m.Static {
		prefix = "static "
	}
	switch m.Kind {
	case ast.MemberField:
		if m.Init != nil {
			e.line(fmt.Sprintf("%s%s = %s;", prefix, m.Name, e.expr(m.Init)))
		} else {
			e.line(fmt.Sprintf("%s%s;", prefix, m.Name))
		}
	case ast.MemberInit:
		e.methodLine(prefix+"constructor", m)
	case ast.MemberMethod:
		e.methodLine(prefix+m.Name, m)
	case ast.MemberGetter:
		e.methodLine(prefix+"get "+m.Name, m)
	case ast.MemberSetter:
		e.methodLine(prefix+"set "+m.Name, m)
	}
}

func (e *emitter) methodLine(header string, m *ast.ClassMember) {
	e.line(fmt.Sprintf("%s(%s) {", header, e.paramList(m.Params)))
	e.indentBlock(m.Body)
	e.line("}")
}
