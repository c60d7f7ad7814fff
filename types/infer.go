package types

import (
	"fmt"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
)

// Inferer walks an *ast.File assigning every expression a Type, accumulating
// diagnostics; strict escalates assignability misses on declarations and
// plain assignments to errors (§4.5).
type Inferer struct {
	file   string
	src    string
	strict bool
	diags  diagnostic.List
}

// Infer runs the type inferer over f and returns every accumulated
// diagnostic (§4.7: "abort on errors, preserve warnings").
func Infer(file, src string, f *ast.File, strict bool) diagnostic.List {
	in := &Inferer{file: file, src: src, strict: strict}
	root := NewEnv(nil)
	declareBuiltins(root)
	in.hoistDecls(root, f.Stmts)
	for _, st := range f.Stmts {
		in.inferStmt(root, st)
	}
	return in.diags
}

func (in *Inferer) warnf(code diagnostic.Code, line, col int, format string, args ...interface{}) {
	in.diags = append(in.diags, &diagnostic.Diagnostic{
		Phase: diagnostic.PhaseType, Severity: diagnostic.Warning,
		Code: code, File: in.file, Line: line, Column: col, Source: in.src,
		Message: fmt.Sprintf(format, args...),
	})
}

func (in *Inferer) errorf(code diagnostic.Code, line, col int, format string, args ...interface{}) {
	sev := diagnostic.Warning
	if in.strict {
		sev = diagnostic.Error
	}
	in.diags = append(in.diags, &diagnostic.Diagnostic{
		Phase: diagnostic.PhaseType, Severity: sev,
		Code: code, File: in.file, Line: line, Column: col, Source: in.src,
		Message: fmt.Sprintf(format, args...),
	})
}

// fromAnnotation normalizes a parsed ast.TypeNode into a canonical Type;
// unsupported/advanced forms (keyof, typeof, infer, intersection, qualified
// generics) degrade to Any rather than failing the pipeline.
func fromAnnotation(tn *ast.TypeNode) *Type {
	if tn == nil {
		return Any
	}
	switch tn.TKind {
	case ast.TAny, ast.TUnknown:
		return Any
	case ast.TNever:
		return Never
	case ast.TVoid:
		return Void
	case ast.TNullType:
		return Null
	case ast.TUndefinedType:
		return Undefined
	case ast.TPrimitive:
		switch tn.Name {
		case "number":
			return Number
		case "string":
			return String
		case "boolean":
			return Boolean
		case "bigint":
			return Bigint
		default:
			return Any
		}
	case ast.TLiteral:
		return &Type{Kind: KLiteral, LiteralValue: tn.LiteralValue}
	case ast.TArray:
		return Array(fromAnnotation(tn.Elem))
	case ast.TTuple:
		elems := make([]*Type, len(tn.Elems))
		for i, e := range tn.Elems {
			elems[i] = fromAnnotation(e)
		}
		return &Type{Kind: KTuple, Elems: elems}
	case ast.TObject:
		fields := make([]Field, len(tn.Fields))
		for i, f := range tn.Fields {
			fields[i] = Field{Name: f.Name, Type: fromAnnotation(&f.Type), Optional: f.Optional}
		}
		return Object(fields...)
	case ast.TFunction:
		params := make([]Param, len(tn.Params))
		for i, p := range tn.Params {
			params[i] = Param{Name: p.Name, Type: fromAnnotation(&p.Type)}
		}
		return Function(fromAnnotation(tn.Ret), params...)
	case ast.TClassRef, ast.TQualified, ast.TGeneric:
		return Any
	case ast.TUnion:
		members := make([]*Type, len(tn.Members))
		for i, m := range tn.Members {
			members[i] = fromAnnotation(m)
		}
		return Union(members...)
	default:
		return Any
	}
}

// hoistDecls pre-populates env with every function/class/enum declared in
// stmts so forward references typecheck, mirroring the scope analyzer's
// hoist pass.
func (in *Inferer) hoistDecls(env *Env, stmts []ast.Stmt) {
	for _, st := range stmts {
		switch d := unwrapExport(st).(type) {
		case *ast.FnDecl:
			env.Define(d.Name, in.functionType(d))
		case *ast.ClassDecl:
			env.Define(d.Name, in.classType(d))
		case *ast.EnumDecl:
			env.Define(d.Name, in.enumType(d))
		case *ast.DeclareStmt:
			in.hoistDecls(env, []ast.Stmt{d.Inner})
		}
	}
}

func unwrapExport(st ast.Stmt) ast.Stmt {
	if ex, ok := st.(*ast.Export); ok && ex.Decl != nil {
		return ex.Decl
	}
	return st
}

func (in *Inferer) functionType(d *ast.FnDecl) *Type {
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		params[i] = Param{Name: p.Name, Type: fromAnnotation(p.Type)}
	}
	return Function(fromAnnotation(d.ReturnType), params...)
}

func (in *Inferer) classType(d *ast.ClassDecl) *Type {
	var fields []Field
	for _, m := range d.Members {
		switch m.Kind {
		case ast.MemberField:
			fields = append(fields, Field{Name: m.Name, Type: fromAnnotation(m.Type)})
		case ast.MemberMethod, ast.MemberInit:
			params := make([]Param, len(m.Params))
			for i, p := range m.Params {
				params[i] = Param{Name: p.Name, Type: fromAnnotation(p.Type)}
			}
			name := m.Name
			if m.Kind == ast.MemberInit {
				name = "constructor"
			}
			fields = append(fields, Field{Name: name, Type: Function(fromAnnotation(nil), params...)})
		case ast.MemberGetter:
			fields = append(fields, Field{Name: m.Name, Type: fromAnnotation(m.Type)})
		}
	}
	return Class(d.Name, fields...)
}

func (in *Inferer) enumType(d *ast.EnumDecl) *Type {
	var fields []Field
	for _, m := range d.Members {
		fields = append(fields, Field{Name: m.Name, Type: Number})
	}
	return Object(fields...)
}

func (in *Inferer) inferStmt(env *Env, st ast.Stmt) {
	switch n := st.(type) {
	case *ast.VarDecl:
		in.inferVarDecl(env, n)
	case *ast.MultiVarDecl:
		for _, d := range n.Decls {
			in.inferVarDecl(env, d)
		}
	case *ast.ImmutableDecl:
		in.inferVarDecl(env, n.Decl)
	case *ast.FnDecl:
		fnEnv := NewEnv(env)
		for _, p := range n.Params {
			fnEnv.Define(p.Name, fromAnnotation(p.Type))
		}
		for _, s2 := range n.Body.Stmts {
			in.inferStmt(fnEnv, s2)
		}
	case *ast.ClassDecl:
		classEnv := NewEnv(env)
		self, _ := env.Lookup(n.Name)
		classEnv.Define("this", self)
		for _, m := range n.Members {
			in.inferClassMember(classEnv, m)
		}
	case *ast.MacroDecl:
		macroEnv := NewEnv(env)
		for _, p := range n.Params {
			macroEnv.Define(p.Name, fromAnnotation(p.Type))
		}
		for _, s2 := range n.Body.Stmts {
			in.inferStmt(macroEnv, s2)
		}
	case *ast.NamespaceDecl:
		nsEnv := NewEnv(env)
		in.hoistDecls(nsEnv, n.Body)
		for _, s2 := range n.Body {
			in.inferStmt(nsEnv, s2)
		}
	case *ast.UsingDecl:
		env.Define(n.Name, in.inferExpr(env, n.Init))
	case *ast.DeclareStmt:
		in.inferStmt(env, n.Inner)
	case *ast.Import:
		if n.Default != "" {
			env.Define(n.Default, Any)
		}
		if n.Namespace != "" {
			env.Define(n.Namespace, Any)
		}
		for _, spec := range n.Specifiers {
			name := spec.Alias
			if name == "" {
				name = spec.Name
			}
			env.Define(name, Any)
		}
	case *ast.NTLRequire:
		for _, m := range n.Modules {
			env.Define(m, Any)
		}
	case *ast.Export:
		if n.Decl != nil {
			in.inferStmt(env, n.Decl)
		}
	case *ast.Block:
		blockEnv := NewEnv(env)
		for _, s2 := range n.Stmts {
			in.inferStmt(blockEnv, s2)
		}
	case *ast.If:
		in.inferExpr(env, n.Cond)
		in.inferBlock(env, n.Then)
		for _, ei := range n.ElseIfs {
			in.inferExpr(env, ei.Cond)
			in.inferBlock(env, ei.Then)
		}
		if n.Else != nil {
			in.inferBlock(env, n.Else)
		}
	case *ast.Unless:
		in.inferExpr(env, n.Cond)
		in.inferBlock(env, n.Then)
		if n.Else != nil {
			in.inferBlock(env, n.Else)
		}
	case *ast.While:
		in.inferExpr(env, n.Cond)
		in.inferBlock(env, n.Body)
	case *ast.DoWhile:
		in.inferBlock(env, n.Body)
		in.inferExpr(env, n.Cond)
	case *ast.ForOf:
		elemT := Any
		if it := in.inferExpr(env, n.Iterable); it.Kind == KArray {
			elemT = it.Elem
		}
		loopEnv := NewEnv(env)
		if n.Pattern != nil {
			for _, name := range n.Pattern.Names() {
				loopEnv.Define(name, Any)
			}
		} else {
			loopEnv.Define(n.Name, elemT)
		}
		for _, s2 := range n.Body.Stmts {
			in.inferStmt(loopEnv, s2)
		}
	case *ast.ForIn:
		in.inferExpr(env, n.Object)
		loopEnv := NewEnv(env)
		loopEnv.Define(n.Name, String)
		for _, s2 := range n.Body.Stmts {
			in.inferStmt(loopEnv, s2)
		}
	case *ast.Loop:
		in.inferBlock(env, n.Body)
	case *ast.Return:
		if n.Value != nil {
			in.inferExpr(env, n.Value)
		}
	case *ast.Throw:
		in.inferExpr(env, n.Value)
	case *ast.Try:
		in.inferBlock(env, n.Body)
		if n.CatchBody != nil {
			catchEnv := NewEnv(env)
			if n.CatchParam != "" {
				catchEnv.Define(n.CatchParam, Any)
			}
			for _, s2 := range n.CatchBody.Stmts {
				in.inferStmt(catchEnv, s2)
			}
		}
		if n.Finally != nil {
			in.inferBlock(env, n.Finally)
		}
	case *ast.Match:
		in.inferExpr(env, n.Subject)
		for _, c := range n.Cases {
			caseEnv := NewEnv(env)
			for _, pat := range c.Patterns {
				for _, name := range pat.BoundNames() {
					caseEnv.Define(name, Any)
				}
			}
			if c.Guard != nil {
				in.inferExpr(caseEnv, c.Guard)
			}
			for _, s2 := range c.Body.Stmts {
				in.inferStmt(caseEnv, s2)
			}
		}
	case *ast.ExprStmt:
		in.inferExpr(env, n.X)
	case *ast.IfSet:
		scrutineeT := in.inferExpr(env, n.Scrutinee)
		thenEnv := NewEnv(env)
		if n.Alias != "" {
			thenEnv.Define(n.Alias, scrutineeT.NonNullable())
		}
		for _, s2 := range n.Then.Stmts {
			in.inferStmt(thenEnv, s2)
		}
		if n.Else != nil {
			in.inferBlock(env, n.Else)
		}
	case *ast.Spawn:
		in.inferExpr(env, n.Value)
	case *ast.Select:
		for _, c := range n.Cases {
			caseEnv := NewEnv(env)
			if c.Channel != nil {
				in.inferExpr(env, c.Channel)
			}
			if c.BindingName != "" {
				caseEnv.Define(c.BindingName, Any)
			}
			for _, s2 := range c.Body.Stmts {
				in.inferStmt(caseEnv, s2)
			}
		}
	}
}

func (in *Inferer) inferBlock(env *Env, b *ast.Block) {
	blockEnv := NewEnv(env)
	for _, s := range b.Stmts {
		in.inferStmt(blockEnv, s)
	}
}

func (in *Inferer) inferClassMember(env *Env, m *ast.ClassMember) {
	if m.Init != nil {
		in.inferExpr(env, m.Init)
	}
	if m.Body == nil {
		return
	}
	methodEnv := NewEnv(env)
	for _, p := range m.Params {
		methodEnv.Define(p.Name, fromAnnotation(p.Type))
	}
	for _, s := range m.Body.Stmts {
		in.inferStmt(methodEnv, s)
	}
}

// inferVarDecl implements §4.5's variable-declaration rule: infer from the
// initializer when present, else the annotation, else any; when both are
// present, check assignability and prefer the annotation's declared type.
func (in *Inferer) inferVarDecl(env *Env, d *ast.VarDecl) {
	var declared *Type
	if d.Type != nil {
		declared = fromAnnotation(d.Type)
	}
	var inferred *Type
	if d.Init != nil {
		inferred = in.inferExpr(env, d.Init)
	}

	result := Any
	switch {
	case declared != nil && inferred != nil:
		if !Assignable(declared, inferred) {
			in.errorf(diagnostic.CodeTypeMismatch, d.Pos().Line, d.Pos().Column,
				"cannot assign %s to declared type %s", inferred.Print(), declared.Print())
		}
		result = declared
	case declared != nil:
		result = declared
	case inferred != nil:
		result = inferred
	}

	if d.Pattern != nil {
		for _, name := range d.Pattern.Names() {
			env.Define(name, Any)
		}
		return
	}
	env.Define(d.Name, result)
}

// inferExpr implements §4.5's per-node expression rules.
func (in *Inferer) inferExpr(env *Env, x ast.Expr) *Type {
	if x == nil {
		return Any
	}
	switch n := x.(type) {
	case *ast.NumberLit:
		if n.IsBigInt {
			return Bigint
		}
		return Number
	case *ast.StringLit:
		return String
	case *ast.BoolLit:
		return Boolean
	case *ast.NullLit:
		return Null
	case *ast.UndefinedLit:
		return Undefined
	case *ast.ThisExpr:
		if t, ok := env.Lookup("this"); ok {
			return t
		}
		return Any
	case *ast.SuperExpr:
		return Any
	case *ast.Identifier:
		if t, ok := env.Lookup(n.Name); ok {
			return t
		}
		in.warnf(diagnostic.CodeUndefVar, n.Pos().Line, n.Pos().Column, "no inferred type for %s", n.Name)
		return Any
	case *ast.ArrayLit:
		var members []*Type
		for _, e := range n.Elements {
			if e == nil {
				continue
			}
			members = append(members, in.inferExpr(env, e))
		}
		return Array(Union(members...))
	case *ast.ObjectLit:
		var fields []Field
		for _, prop := range n.Props {
			switch prop.Kind {
			case ast.PropMethod, ast.PropGetter, ast.PropSetter:
				fields = append(fields, Field{Name: prop.Key, Type: Any})
			case ast.PropSpread:
				// unknown shape contributed at runtime; no field to add
			default:
				valT := Any
				if prop.Value != nil {
					valT = in.inferExpr(env, prop.Value)
				}
				fields = append(fields, Field{Name: prop.Key, Type: valT})
			}
		}
		return Object(fields...)
	case *ast.FunctionExpr:
		return in.inferFunctionLike(env, n.Params, n.ReturnType, n.Body, nil)
	case *ast.ArrowFunction:
		return in.inferFunctionLike(env, n.Params, n.ReturnType, n.Body, n.ExprBody)
	case *ast.MemberExpr:
		return in.inferMember(env, n)
	case *ast.CallExpr:
		calleeT := in.inferExpr(env, n.Callee)
		for _, a := range n.Args {
			in.inferExpr(env, a)
		}
		if calleeT != nil && calleeT.Kind == KFunction {
			return calleeT.Ret
		}
		return Any
	case *ast.NewExpr:
		calleeT := in.inferExpr(env, n.Callee)
		for _, a := range n.Args {
			in.inferExpr(env, a)
		}
		if calleeT != nil && calleeT.Kind == KClass {
			return calleeT
		}
		return Any
	case *ast.UnaryExpr:
		return in.inferUnary(env, n)
	case *ast.BinaryExpr:
		return in.inferBinary(env, n)
	case *ast.AssignExpr:
		return in.inferAssign(env, n)
	case *ast.TernaryExpr:
		in.inferExpr(env, n.Cond)
		return Union(in.inferExpr(env, n.Then), in.inferExpr(env, n.Else))
	case *ast.AwaitExpr:
		in.inferExpr(env, n.X)
		return Any
	case *ast.YieldExpr:
		if n.X != nil {
			in.inferExpr(env, n.X)
		}
		return Any
	case *ast.SpreadExpr:
		in.inferExpr(env, n.X)
		return Any
	case *ast.SequenceExpr:
		var last *Type = Any
		for _, e := range n.Exprs {
			last = in.inferExpr(env, e)
		}
		return last
	case *ast.ChannelCreateExpr:
		return Any
	case *ast.BindingExpr:
		in.inferExpr(env, n.Object)
		return Any
	case *ast.HaveExpr:
		in.inferExpr(env, n.X)
		return Boolean
	case *ast.RequireExpr:
		return Any
	case *ast.DecoratedExpr:
		for _, d := range n.Decorators {
			in.inferExpr(env, d.Callee)
			for _, a := range d.Args {
				in.inferExpr(env, a)
			}
		}
		return in.inferExpr(env, n.X)
	case *ast.TemplateLit:
		for _, part := range n.Parts {
			if part.Expr != nil {
				in.inferExpr(env, part.Expr)
			}
		}
		return String
	}
	return Any
}

func (in *Inferer) inferFunctionLike(env *Env, params []*ast.Param, ret *ast.TypeNode, body *ast.Block, exprBody ast.Expr) *Type {
	fnEnv := NewEnv(env)
	typedParams := make([]Param, len(params))
	for i, p := range params {
		pt := fromAnnotation(p.Type)
		typedParams[i] = Param{Name: p.Name, Type: pt}
		fnEnv.Define(p.Name, pt)
	}
	retT := fromAnnotation(ret)
	if body != nil {
		for _, s := range body.Stmts {
			in.inferStmt(fnEnv, s)
		}
	} else if exprBody != nil {
		bodyT := in.inferExpr(fnEnv, exprBody)
		if ret == nil {
			retT = bodyT
		}
	}
	return Function(retT, typedParams...)
}

func (in *Inferer) inferMember(env *Env, n *ast.MemberExpr) *Type {
	objT := in.inferExpr(env, n.Object)
	if n.Computed {
		in.inferExpr(env, n.Property)
		if objT != nil && objT.Kind == KArray {
			return objT.Elem
		}
		return Any
	}
	prop, ok := n.Property.(*ast.Identifier)
	if !ok {
		return Any
	}
	switch {
	case objT == nil:
		return Any
	case objT.Kind == KArray:
		if t, ok := arrayFieldType(prop.Name); ok {
			return t
		}
		return Any
	case objT.Kind == KString:
		if t, ok := stringFieldType(prop.Name); ok {
			return t
		}
		return Any
	case objT.Kind == KObject || objT.Kind == KClass:
		if t, ok := objT.Field(prop.Name); ok {
			return t
		}
		return Any
	default:
		return Any
	}
}

func (in *Inferer) inferUnary(env *Env, n *ast.UnaryExpr) *Type {
	xT := in.inferExpr(env, n.X)
	switch n.Op {
	case ast.OpTypeof:
		return String
	case ast.OpNot, ast.OpDelete:
		return Boolean
	case ast.OpVoid:
		return Void
	case ast.OpNeg, ast.OpPos, ast.OpBitNot:
		return Number
	case ast.OpPreIncr, ast.OpPreDecr, ast.OpPostIncr, ast.OpPostDecr:
		return Number
	default:
		return xT
	}
}

func (in *Inferer) inferBinary(env *Env, n *ast.BinaryExpr) *Type {
	xT := in.inferExpr(env, n.X)
	if n.Op == "as" || n.Op == "satisfies" {
		return fromAnnotation(n.Type)
	}
	yT := in.inferExpr(env, n.Y)
	switch n.Op {
	case "+":
		if xT.Kind == KString || yT.Kind == KString {
			return String
		}
		return Number
	case "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>":
		return Number
	case "<", ">", "<=", ">=", "==", "===", "!=", "!==", "instanceof", "in":
		return Boolean
	case "&&", "||":
		return Union(xT, yT)
	case "??":
		return Union(xT.NonNullable(), yT)
	case "|>":
		if yT != nil && yT.Kind == KFunction {
			return yT.Ret
		}
		return Any
	default:
		return Any
	}
}

func (in *Inferer) inferAssign(env *Env, n *ast.AssignExpr) *Type {
	valT := in.inferExpr(env, n.Value)
	targetT := in.inferExpr(env, n.Target)
	if n.Op == "=" {
		if id, ok := n.Target.(*ast.Identifier); ok {
			if declared, found := env.Lookup(id.Name); found {
				if !Assignable(declared, valT) {
					in.errorf(diagnostic.CodeTypeMismatch, n.Pos().Line, n.Pos().Column,
						"cannot assign %s to %s of type %s", valT.Print(), id.Name, declared.Print())
				}
			}
		}
		return valT
	}
	return targetT
}
