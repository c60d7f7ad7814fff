package ast

import "github.com/ntl-lang/ntlc/token"

// Param is one function/method parameter: either a simple name or a
// destructuring pattern, with an optional type annotation and default.
type Param struct {
	Name    string
	Pattern *Pattern
	Type    *TypeNode
	Default Expr
	Rest    bool
	IsThis  bool // the synthetic `this` parameter inside class bodies
}

// Decorator is a `@name(args)` prefix attached to a following function,
// async function, or class declaration (§4.3, §4.6).
type Decorator struct {
	position token.Position
	Callee   Expr
	Args     []Expr
}

func (d *Decorator) Pos() token.Position { return d.position }

// NewDecorator constructs a Decorator at pos.
func NewDecorator(pos token.Position, callee Expr, args []Expr) *Decorator {
	return &Decorator{position: pos, Callee: callee, Args: args}
}

// VarDecl is a single `var|val|let|const` binding, optionally destructured.
type VarDecl struct {
	base
	Name    string
	Pattern *Pattern
	Type    *TypeNode
	Init    Expr
	Const   bool // val/const vs var/let
}

func (*VarDecl) stmtNode() {}

func NewVarDecl(pos token.Position, name string, pattern *Pattern, typ *TypeNode, init Expr, isConst bool) *VarDecl {
	return &VarDecl{base: newBase(KindVarDecl, pos), Name: name, Pattern: pattern, Type: typ, Init: init, Const: isConst}
}

// MultiVarDecl is `val a = 1, b = 2`.
type MultiVarDecl struct {
	base
	Decls []*VarDecl
}

func (*MultiVarDecl) stmtNode() {}

func NewMultiVarDecl(pos token.Position, decls []*VarDecl) *MultiVarDecl {
	return &MultiVarDecl{base: newBase(KindMultiVarDecl, pos), Decls: decls}
}

// FnDecl is a named function declaration.
type FnDecl struct {
	base
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType *TypeNode
	Body       *Block
	Async      bool
	Generator  bool
	Decorators []*Decorator
}

func (*FnDecl) stmtNode() {}

func NewFnDecl(pos token.Position, name string, async bool) *FnDecl {
	return &FnDecl{base: newBase(KindFnDecl, pos), Name: name, Async: async}
}

// ClassMemberKind distinguishes class body members.
type ClassMemberKind int

const (
	MemberField ClassMemberKind = iota
	MemberMethod
	MemberGetter
	MemberSetter
	MemberInit // `init` constructor method, lowered to `constructor`
)

// ClassMember is one member of a class body (§4.6 lowers `init` to
// `constructor`); class members are a flat list (no nested scopes beyond
// each member's own body).
type ClassMember struct {
	position   token.Position
	Kind       ClassMemberKind
	Name       string
	Static     bool
	Readonly   bool
	Visibility string // "", "private", "public", "protected"
	Abstract   bool
	Override   bool
	Type       *TypeNode // field type annotation
	Init       Expr      // field initializer
	Params     []*Param  // method/init/getter/setter params
	Body       *Block    // method/init/getter/setter body
	Decorators []*Decorator
}

func (m *ClassMember) Pos() token.Position { return m.position }

// NewClassMember constructs a ClassMember at pos; the parser fills in the
// remaining exported fields afterward.
func NewClassMember(pos token.Position, kind ClassMemberKind, name string) *ClassMember {
	return &ClassMember{position: pos, Kind: kind, Name: name}
}

// ClassDecl declares a class, optionally extending a base and implementing
// interfaces.
type ClassDecl struct {
	base
	Name       string
	TypeParams []string
	Extends    Expr
	Implements []string
	Abstract   bool
	Members    []*ClassMember
	Decorators []*Decorator
}

func (*ClassDecl) stmtNode() {}

func NewClassDecl(pos token.Position, name string, abstract bool) *ClassDecl {
	return &ClassDecl{base: newBase(KindClassDecl, pos), Name: name, Abstract: abstract}
}

// InterfaceMember is one member signature of an interface or trait body.
type InterfaceMember struct {
	Name   string
	Type   *TypeNode // field type, or function type for methods
	Method bool
	Params []*Param
	Ret    *TypeNode
}

// InterfaceDecl declares a structural interface; elided at codegen (§4.6).
type InterfaceDecl struct {
	base
	Name       string
	TypeParams []string
	Extends    []string
	Members    []InterfaceMember
}

func (*InterfaceDecl) stmtNode() {}

func NewInterfaceDecl(pos token.Position, name string) *InterfaceDecl {
	return &InterfaceDecl{base: newBase(KindInterfaceDecl, pos), Name: name}
}

// TraitDecl declares a trait; elided at codegen (§4.6).
type TraitDecl struct {
	base
	Name    string
	Members []InterfaceMember
}

func (*TraitDecl) stmtNode() {}

func NewTraitDecl(pos token.Position, name string) *TraitDecl {
	return &TraitDecl{base: newBase(KindTraitDecl, pos), Name: name}
}

// AlgebraicVariant is one `Name(fields...)` arm of an algebraic sum type
// (§4.3: "type X = Ok(T) | Err(string)").
type AlgebraicVariant struct {
	Name   string
	Fields []*TypeNode
}

// TypeAlias declares `type Name<T> = <type>` or an algebraic sum type.
// Elided at codegen unless it is algebraic, in which case it only informs
// the type inferer and match-pattern lowering, and still emits nothing
// (§4.6: "type alias ... elided").
type TypeAlias struct {
	base
	Name       string
	TypeParams []string
	Type       *TypeNode
	Variants   []AlgebraicVariant // non-nil for algebraic sum types
}

func (*TypeAlias) stmtNode() {}

func NewTypeAlias(pos token.Position, name string) *TypeAlias {
	return &TypeAlias{base: newBase(KindTypeAlias, pos), Name: name}
}

// EnumMember is one `Name` or `Name = value` entry of an enum.
type EnumMember struct {
	Name  string
	Value Expr // nil when auto-numbered (§4.6)
}

// EnumDecl declares an enum, lowered to a frozen object (§4.6).
type EnumDecl struct {
	base
	Name    string
	Members []EnumMember
}

func (*EnumDecl) stmtNode() {}

func NewEnumDecl(pos token.Position, name string) *EnumDecl {
	return &EnumDecl{base: newBase(KindEnumDecl, pos), Name: name}
}

// NamespaceDecl groups a block of declarations under a dotted name.
type NamespaceDecl struct {
	base
	Name string
	Body []Stmt
}

func (*NamespaceDecl) stmtNode() {}

func NewNamespaceDecl(pos token.Position, name string, body []Stmt) *NamespaceDecl {
	return &NamespaceDecl{base: newBase(KindNamespaceDecl, pos), Name: name, Body: body}
}

// MacroDecl declares a compile-time macro.
type MacroDecl struct {
	base
	Name   string
	Params []*Param
	Body   *Block
}

func (*MacroDecl) stmtNode() {}

func NewMacroDecl(pos token.Position, name string) *MacroDecl {
	return &MacroDecl{base: newBase(KindMacroDecl, pos), Name: name}
}

// ImmutableDecl wraps a `val` declaration whose initializer is deep-frozen
// at construction (§4.6: "followed by Object.freeze(X)").
type ImmutableDecl struct {
	base
	Decl *VarDecl
}

func (*ImmutableDecl) stmtNode() {}

func NewImmutableDecl(pos token.Position, decl *VarDecl) *ImmutableDecl {
	return &ImmutableDecl{base: newBase(KindImmutableDecl, pos), Decl: decl}
}

// UsingDecl declares a `using` resource-scoped binding.
type UsingDecl struct {
	base
	Name string
	Init Expr
}

func (*UsingDecl) stmtNode() {}

func NewUsingDecl(pos token.Position, name string, init Expr) *UsingDecl {
	return &UsingDecl{base: newBase(KindUsingDecl, pos), Name: name, Init: init}
}

// DeclareStmt wraps an ambient `declare ...` statement; elided at codegen.
type DeclareStmt struct {
	base
	Inner Stmt
}

func (*DeclareStmt) stmtNode() {}

func NewDeclareStmt(pos token.Position, inner Stmt) *DeclareStmt {
	return &DeclareStmt{base: newBase(KindDeclareStmt, pos), Inner: inner}
}

// NTLRequire is the dedicated `require(ntl, name, ...)` import form (§6's
// "NTL built-in module resolution").
type NTLRequire struct {
	base
	Modules []string
}

func (*NTLRequire) stmtNode() {}

func NewNTLRequire(pos token.Position, modules []string) *NTLRequire {
	return &NTLRequire{base: newBase(KindNTLRequire, pos), Modules: modules}
}
