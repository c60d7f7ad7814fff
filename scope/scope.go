// Package scope implements NTL's two-pass scope analyzer (§4.4): a hoist
// pass that pre-declares function/class/enum/macro/namespace names ahead
// of their use, followed by a visit pass that walks every statement and
// expression, pushing a fresh scope for each block, function body, class
// body, catch clause, match arm, and for-loop header. It is grounded on
// the teacher's two-phase template-parsing walk (parser/parser_template.go's
// New()-then-Parse() split), generalized from a flat template namespace to
// NTL's nested lexical scope chain.
package scope

import (
	"fmt"
	"sort"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
)

// Kind distinguishes why a name is bound, used only for diagnostics and
// the `this`/`super` exemption.
type Kind int

const (
	KindVar Kind = iota
	KindFunc
	KindClass
	KindEnum
	KindMacro
	KindNamespace
	KindParam
	KindImport
	KindBuiltin
	KindCatch
	KindMatchBinding
	KindIfSetAlias
	KindUsing
	KindRequireModule
)

// Binding is one declared name within a Scope.
type Binding struct {
	Name  string
	Kind  Kind
	Line  int
	Const bool
}

// Scope is one lexical scope frame; lookups walk the parent chain.
type Scope struct {
	parent   *Scope
	bindings map[string]*Binding
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: map[string]*Binding{}}
}

func (s *Scope) declare(b *Binding) *Binding {
	if existing, ok := s.bindings[b.Name]; ok {
		return existing
	}
	s.bindings[b.Name] = b
	return nil
}

func (s *Scope) lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// allNames collects every name visible from s, nearest scope first, used
// to build the similar-name suggestion list for UNDEF_VAR/UNDEF_FUNC.
func (s *Scope) allNames() []Binding {
	var out []Binding
	seen := map[string]bool{}
	for sc := s; sc != nil; sc = sc.parent {
		names := make([]string, 0, len(sc.bindings))
		for n := range sc.bindings {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, *sc.bindings[n])
		}
	}
	return out
}

// Analyzer accumulates diagnostics across the hoist and visit passes.
type Analyzer struct {
	file  string
	src   string
	diags diagnostic.List
}

// Check runs both passes over f and returns every accumulated diagnostic;
// the pipeline aborts before codegen if the result HasErrors (§4.4).
func Check(file, src string, f *ast.File) diagnostic.List {
	a := &Analyzer{file: file, src: src}
	root := newScope(nil)
	declareBuiltins(root)
	a.block(root, f.Stmts)
	return a.diags
}

func (a *Analyzer) errorf(code diagnostic.Code, line, col int, format string, args ...interface{}) {
	a.diags = append(a.diags, &diagnostic.Diagnostic{
		Phase: diagnostic.PhaseScope, Severity: diagnostic.Error,
		Code: code, File: a.file, Line: line, Column: col, Source: a.src,
		Message: fmt.Sprintf(format, args...),
	})
}

// block runs the hoist pass over stmts (pre-declaring function, class,
// enum, macro, and namespace names at this scope level) then the visit
// pass in source order (§4.4).
func (a *Analyzer) block(s *Scope, stmts []ast.Stmt) {
	a.hoist(s, stmts)
	for _, st := range stmts {
		a.visitStmt(s, st)
	}
}

func (a *Analyzer) hoist(s *Scope, stmts []ast.Stmt) {
	for _, st := range stmts {
		switch d := unwrapExport(st).(type) {
		case *ast.FnDecl:
			a.declareNamed(s, d.Name, KindFunc, d.Pos().Line, true)
		case *ast.ClassDecl:
			a.declareNamed(s, d.Name, KindClass, d.Pos().Line, true)
		case *ast.EnumDecl:
			a.declareNamed(s, d.Name, KindEnum, d.Pos().Line, true)
		case *ast.MacroDecl:
			a.declareNamed(s, d.Name, KindMacro, d.Pos().Line, true)
		case *ast.NamespaceDecl:
			a.declareNamed(s, d.Name, KindNamespace, d.Pos().Line, true)
		case *ast.DeclareStmt:
			a.hoist(s, []ast.Stmt{d.Inner})
		}
	}
}

func unwrapExport(st ast.Stmt) ast.Stmt {
	if ex, ok := st.(*ast.Export); ok && ex.Decl != nil {
		return ex.Decl
	}
	return st
}

func (a *Analyzer) declareNamed(s *Scope, name string, kind Kind, line int, isConst bool) {
	if name == "" {
		return
	}
	if existing := s.declare(&Binding{Name: name, Kind: kind, Line: line, Const: isConst}); existing != nil {
		a.errorf(diagnostic.CodeDuplicateDecl, line, 1, "%s is already declared at line %d", name, existing.Line)
	}
}

func (a *Analyzer) declarePattern(s *Scope, p *ast.Pattern, kind Kind, isConst bool) {
	if p == nil {
		return
	}
	line := p.Pos().Line
	switch p.Kind {
	case ast.PatternObject:
		for _, prop := range p.ObjectKeys {
			if prop.Nested != nil {
				a.declarePattern(s, prop.Nested, kind, isConst)
				continue
			}
			name := prop.Alias
			if name == "" {
				name = prop.Key
			}
			a.declareNamed(s, name, kind, line, isConst)
			if prop.DefaultVal != nil {
				a.visitExpr(s, prop.DefaultVal)
			}
		}
	case ast.PatternArray:
		for _, item := range p.ArrayItems {
			if item.Hole {
				continue
			}
			if item.Nested != nil {
				a.declarePattern(s, item.Nested, kind, isConst)
				continue
			}
			a.declareNamed(s, item.Name, kind, line, isConst)
			if item.DefaultVal != nil {
				a.visitExpr(s, item.DefaultVal)
			}
		}
	}
}

func (a *Analyzer) declareParams(s *Scope, params []*ast.Param) {
	for _, p := range params {
		if p.Pattern != nil {
			a.declarePattern(s, p.Pattern, KindParam, false)
		} else {
			a.declareNamed(s, p.Name, KindParam, 0, false)
		}
		if p.Default != nil {
			a.visitExpr(s, p.Default)
		}
	}
}

func (a *Analyzer) declareMatchPattern(s *Scope, mp *ast.MatchPattern) {
	if mp == nil {
		return
	}
	switch mp.Kind {
	case ast.MPBinding:
		a.declareNamed(s, mp.BindingName, KindMatchBinding, mp.Pos().Line, true)
	case ast.MPVariant:
		for _, f := range mp.VariantFields {
			a.declareMatchPattern(s, f)
		}
	case ast.MPArray:
		for _, it := range mp.ArrayItems {
			a.declareMatchPattern(s, it)
		}
	case ast.MPObject:
		for _, prop := range mp.ObjectProps {
			a.declareMatchPattern(s, prop.Pattern)
		}
	}
}

func (a *Analyzer) visitStmt(s *Scope, st ast.Stmt) {
	switch n := st.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			a.visitExpr(s, n.Init)
		}
		if n.Pattern != nil {
			a.declarePattern(s, n.Pattern, KindVar, n.Const)
		} else {
			a.declareNamed(s, n.Name, KindVar, n.Pos().Line, n.Const)
		}
	case *ast.MultiVarDecl:
		for _, d := range n.Decls {
			a.visitStmt(s, d)
		}
	case *ast.ImmutableDecl:
		a.visitStmt(s, n.Decl)
	case *ast.FnDecl:
		fnScope := newScope(s)
		a.declareParams(fnScope, n.Params)
		a.block(fnScope, n.Body.Stmts)
	case *ast.ClassDecl:
		if n.Extends != nil {
			a.visitExpr(s, n.Extends)
		}
		for _, m := range n.Members {
			a.visitClassMember(s, m)
		}
	case *ast.InterfaceDecl, *ast.TraitDecl, *ast.TypeAlias, *ast.EnumDecl:
		// purely type-level or already hoisted; no value-scope body to visit
	case *ast.MacroDecl:
		macroScope := newScope(s)
		a.declareParams(macroScope, n.Params)
		a.block(macroScope, n.Body.Stmts)
	case *ast.NamespaceDecl:
		nsScope := newScope(s)
		a.block(nsScope, n.Body)
	case *ast.UsingDecl:
		a.visitExpr(s, n.Init)
		a.declareNamed(s, n.Name, KindUsing, n.Pos().Line, true)
	case *ast.DeclareStmt:
		a.visitStmt(s, n.Inner)
	case *ast.NTLRequire:
		for _, m := range n.Modules {
			a.declareNamed(s, m, KindRequireModule, n.Pos().Line, true)
		}
	case *ast.Import:
		if n.Default != "" {
			a.declareNamed(s, n.Default, KindImport, n.Pos().Line, false)
		}
		if n.Namespace != "" {
			a.declareNamed(s, n.Namespace, KindImport, n.Pos().Line, false)
		}
		for _, spec := range n.Specifiers {
			name := spec.Alias
			if name == "" {
				name = spec.Name
			}
			a.declareNamed(s, name, KindImport, n.Pos().Line, false)
		}
	case *ast.Export:
		if n.Decl != nil {
			a.visitStmt(s, n.Decl)
		}
	case *ast.Block:
		a.block(newScope(s), n.Stmts)
	case *ast.If:
		a.visitExpr(s, n.Cond)
		a.block(newScope(s), n.Then.Stmts)
		for _, ei := range n.ElseIfs {
			a.visitExpr(s, ei.Cond)
			a.block(newScope(s), ei.Then.Stmts)
		}
		if n.Else != nil {
			a.block(newScope(s), n.Else.Stmts)
		}
	case *ast.Unless:
		a.visitExpr(s, n.Cond)
		a.block(newScope(s), n.Then.Stmts)
		if n.Else != nil {
			a.block(newScope(s), n.Else.Stmts)
		}
	case *ast.While:
		a.visitExpr(s, n.Cond)
		a.block(newScope(s), n.Body.Stmts)
	case *ast.DoWhile:
		a.block(newScope(s), n.Body.Stmts)
		a.visitExpr(s, n.Cond)
	case *ast.ForOf:
		a.visitExpr(s, n.Iterable)
		loopScope := newScope(s)
		if n.Pattern != nil {
			a.declarePattern(loopScope, n.Pattern, KindVar, n.Const)
		} else {
			a.declareNamed(loopScope, n.Name, KindVar, n.Pos().Line, n.Const)
		}
		a.block(loopScope, n.Body.Stmts)
	case *ast.ForIn:
		a.visitExpr(s, n.Object)
		loopScope := newScope(s)
		a.declareNamed(loopScope, n.Name, KindVar, n.Pos().Line, true)
		a.block(loopScope, n.Body.Stmts)
	case *ast.Loop:
		a.block(newScope(s), n.Body.Stmts)
	case *ast.Return:
		if n.Value != nil {
			a.visitExpr(s, n.Value)
		}
	case *ast.Throw:
		a.visitExpr(s, n.Value)
	case *ast.Try:
		a.block(newScope(s), n.Body.Stmts)
		if n.CatchBody != nil {
			catchScope := newScope(s)
			if n.CatchParam != "" {
				a.declareNamed(catchScope, n.CatchParam, KindCatch, n.Pos().Line, true)
			}
			a.block(catchScope, n.CatchBody.Stmts)
		}
		if n.Finally != nil {
			a.block(newScope(s), n.Finally.Stmts)
		}
	case *ast.Match:
		a.visitExpr(s, n.Subject)
		for _, c := range n.Cases {
			caseScope := newScope(s)
			for _, pat := range c.Patterns {
				a.declareMatchPattern(caseScope, pat)
			}
			if c.Guard != nil {
				a.visitExpr(caseScope, c.Guard)
			}
			a.block(caseScope, c.Body.Stmts)
		}
	case *ast.Break, *ast.Continue:
		// no expression content
	case *ast.ExprStmt:
		a.visitExpr(s, n.X)
	case *ast.IfSet:
		a.visitExpr(s, n.Scrutinee)
		thenScope := newScope(s)
		if n.Alias != "" {
			a.declareNamed(thenScope, n.Alias, KindIfSetAlias, n.Pos().Line, true)
		}
		a.block(thenScope, n.Then.Stmts)
		if n.Else != nil {
			a.block(newScope(s), n.Else.Stmts)
		}
	case *ast.Spawn:
		a.visitExpr(s, n.Value)
	case *ast.Select:
		for _, c := range n.Cases {
			caseScope := newScope(s)
			if c.Channel != nil {
				a.visitExpr(s, c.Channel)
			}
			if c.BindingName != "" {
				a.declareNamed(caseScope, c.BindingName, KindVar, n.Pos().Line, true)
			}
			a.block(caseScope, c.Body.Stmts)
		}
	}
}

func (a *Analyzer) visitClassMember(s *Scope, m *ast.ClassMember) {
	for _, d := range m.Decorators {
		a.visitExpr(s, d.Callee)
		for _, arg := range d.Args {
			a.visitExpr(s, arg)
		}
	}
	switch m.Kind {
	case ast.MemberField:
		if m.Init != nil {
			a.visitExpr(s, m.Init)
		}
	default:
		if m.Body == nil {
			return
		}
		methodScope := newScope(s)
		a.declareParams(methodScope, m.Params)
		a.block(methodScope, m.Body.Stmts)
	}
}

func (a *Analyzer) visitExpr(s *Scope, x ast.Expr) {
	if x == nil {
		return
	}
	switch n := x.(type) {
	case *ast.Identifier:
		a.resolveUse(s, n)
	case *ast.ArrayLit:
		for _, e := range n.Elements {
			a.visitExpr(s, e)
		}
	case *ast.ObjectLit:
		for _, prop := range n.Props {
			if prop.Computed != nil {
				a.visitExpr(s, prop.Computed)
			}
			switch prop.Kind {
			case ast.PropMethod, ast.PropGetter, ast.PropSetter:
				methodScope := newScope(s)
				a.declareParams(methodScope, prop.Params)
				a.block(methodScope, prop.Body.Stmts)
			default:
				if prop.Value != nil {
					a.visitExpr(s, prop.Value)
				}
			}
		}
	case *ast.FunctionExpr:
		fnScope := newScope(s)
		a.declareParams(fnScope, n.Params)
		a.block(fnScope, n.Body.Stmts)
	case *ast.ArrowFunction:
		fnScope := newScope(s)
		a.declareParams(fnScope, n.Params)
		if n.Body != nil {
			a.block(fnScope, n.Body.Stmts)
		} else {
			a.visitExpr(fnScope, n.ExprBody)
		}
	case *ast.MemberExpr:
		a.visitExpr(s, n.Object)
		if n.Computed {
			a.visitExpr(s, n.Property)
		}
	case *ast.CallExpr:
		a.visitExpr(s, n.Callee)
		for _, arg := range n.Args {
			a.visitExpr(s, arg)
		}
	case *ast.NewExpr:
		a.visitExpr(s, n.Callee)
		for _, arg := range n.Args {
			a.visitExpr(s, arg)
		}
	case *ast.UnaryExpr:
		a.visitExpr(s, n.X)
	case *ast.BinaryExpr:
		a.visitExpr(s, n.X)
		a.visitExpr(s, n.Y)
	case *ast.AssignExpr:
		a.visitExpr(s, n.Value)
		a.visitExpr(s, n.Target)
		if id, ok := n.Target.(*ast.Identifier); ok {
			if b, found := s.lookup(id.Name); found && b.Const {
				a.errorf(diagnostic.CodeConstReassign, n.Pos().Line, n.Pos().Column, "cannot assign to %s, it is declared const", id.Name)
			}
		}
	case *ast.TernaryExpr:
		a.visitExpr(s, n.Cond)
		a.visitExpr(s, n.Then)
		a.visitExpr(s, n.Else)
	case *ast.AwaitExpr:
		a.visitExpr(s, n.X)
	case *ast.YieldExpr:
		a.visitExpr(s, n.X)
	case *ast.SpreadExpr:
		a.visitExpr(s, n.X)
	case *ast.SequenceExpr:
		for _, e := range n.Exprs {
			a.visitExpr(s, e)
		}
	case *ast.BindingExpr:
		a.visitExpr(s, n.Object)
	case *ast.HaveExpr:
		a.visitExpr(s, n.X)
	case *ast.DecoratedExpr:
		for _, d := range n.Decorators {
			a.visitExpr(s, d.Callee)
			for _, arg := range d.Args {
				a.visitExpr(s, arg)
			}
		}
		a.visitExpr(s, n.X)
	case *ast.TemplateLit:
		for _, part := range n.Parts {
			if part.Expr != nil {
				a.visitExpr(s, part.Expr)
			}
		}
	}
}

// resolveUse emits UNDEF_VAR (or UNDEF_FUNC for the `print`/`println`
// special case) when name is not visible from s (§4.4).
func (a *Analyzer) resolveUse(s *Scope, id *ast.Identifier) {
	if id.Name == "this" || id.Name == "super" || id.Name == "_" {
		return
	}
	if _, ok := s.lookup(id.Name); ok {
		return
	}

	code := diagnostic.CodeUndefVar
	if id.Name == "print" || id.Name == "println" {
		code = diagnostic.CodeUndefFunc
	}

	line, col := id.Pos().Line, id.Pos().Column
	d := &diagnostic.Diagnostic{
		Phase: diagnostic.PhaseScope, Severity: diagnostic.Error,
		Code: code, File: a.file, Line: line, Column: col, Source: a.src,
		Message:     "undeclared name " + id.Name,
		Similar:     nearestSimilar(s, id.Name, 3),
		Suggestions: suggestionsFor(id.Name),
	}
	if code == diagnostic.CodeUndefFunc {
		d.Suggestions = []string{
			"use console.log/console.error instead of " + id.Name,
			"define an alias: const " + id.Name + " = console.log",
			"import the project logger module",
		}
		d.Example = &diagnostic.Example{Bad: id.Name + "(\"hello\")", Good: "console.log(\"hello\")"}
	}
	a.diags = append(a.diags, d)
}

func suggestionsFor(name string) []string {
	return []string{
		"declare " + name + " with var/val/let/const before use",
		"pass " + name + " in as a parameter",
		"check for a typo in " + name,
	}
}

// nearestSimilar returns up to max in-scope names worth suggesting for name,
// nearest scope first, via diagnostic.NearestNames's threshold/prefix-suffix
// filter (§4.1) rather than an unconditional nearest-by-distance list.
func nearestSimilar(s *Scope, name string, max int) []diagnostic.SimilarName {
	names := s.allNames()
	candidates := make([]diagnostic.Candidate, 0, len(names))
	for _, b := range names {
		candidates = append(candidates, diagnostic.Candidate{Name: b.Name, Line: b.Line})
	}
	out := diagnostic.NearestNames(name, candidates)
	if len(out) > max {
		out = out[:max]
	}
	return out
}
