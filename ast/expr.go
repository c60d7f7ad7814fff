package ast

import "github.com/ntl-lang/ntlc/token"

// NumberLit is a numeric literal; IsBigInt marks a trailing-`n` literal.
type NumberLit struct {
	base
	Value    string
	IsBigInt bool
}

func (*NumberLit) exprNode() {}

type StringLit struct {
	base
	Value string
}

func (*StringLit) exprNode() {}

type BoolLit struct {
	base
	Value bool
}

func (*BoolLit) exprNode() {}

type NullLit struct{ base }

func (*NullLit) exprNode() {}

type UndefinedLit struct{ base }

func (*UndefinedLit) exprNode() {}

// TemplatePart is one literal-or-expression piece of a parsed template
// literal; Expr is non-nil for embedded-expression parts, re-parsed by the
// parser from the lexer's raw TemplatePart.Source span (§3, §4.2).
type TemplatePart struct {
	Literal string
	Expr    Expr
}

// TemplateLit is a backtick (or double-quoted-with-braces) template
// literal with embedded expressions.
type TemplateLit struct {
	base
	Parts []TemplatePart
}

func (*TemplateLit) exprNode() {}

type ThisExpr struct{ base }

func (*ThisExpr) exprNode() {}

type SuperExpr struct{ base }

func (*SuperExpr) exprNode() {}

// Identifier is a reference to a declared name.
type Identifier struct {
	base
	Name string
}

func (*Identifier) exprNode() {}

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{base: newBase(KindIdentifier, pos), Name: name}
}

// ArrayLit is `[e0, e1, ...rest]`; a nil element represents an elision
// hole.
type ArrayLit struct {
	base
	Elements []Expr
}

func (*ArrayLit) exprNode() {}

// ObjectPropKind distinguishes the property forms of an object literal.
type ObjectPropKind int

const (
	PropPlain ObjectPropKind = iota
	PropShorthand
	PropSpread
	PropMethod
	PropGetter
	PropSetter
)

// ObjectProp is one entry of an ObjectLit.
type ObjectProp struct {
	Kind     ObjectPropKind
	Key      string
	Computed Expr // non-nil when the key is `[expr]`
	Value    Expr
	Params   []*Param // PropMethod/PropGetter/PropSetter
	Body     *Block
}

type ObjectLit struct {
	base
	Props []ObjectProp
}

func (*ObjectLit) exprNode() {}

// FunctionExpr is an anonymous/named `function` expression.
type FunctionExpr struct {
	base
	Name       string
	Params     []*Param
	ReturnType *TypeNode
	Body       *Block
	Async      bool
	Generator  bool
}

func (*FunctionExpr) exprNode() {}

// ArrowFunction is `(params) => expr` or `(params) => { ... }`. ExprBody is
// set (and Body nil) when the arrow's right-hand side is a bare expression.
type ArrowFunction struct {
	base
	Params     []*Param
	ReturnType *TypeNode
	Body       *Block
	ExprBody   Expr
	Async      bool
}

func (*ArrowFunction) exprNode() {}

// MemberExpr is `a.b`, `a[b]`, `a?.b`, or `a?.[b]`.
type MemberExpr struct {
	base
	Object   Expr
	Property Expr // Identifier for `.b`, arbitrary expr for `[b]`
	Computed bool
	Optional bool
}

func (*MemberExpr) exprNode() {}

// CallExpr is `f(args)` or `f?.(args)`; Spread marks which args are
// `...expr` spreads (parallel to Args).
type CallExpr struct {
	base
	Callee   Expr
	Args     []Expr
	Spread   []bool
	Optional bool
}

func (*CallExpr) exprNode() {}

// NewExpr is `new X.Y(args)`.
type NewExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*NewExpr) exprNode() {}

// UnaryOp enumerates §4.3's unary operator set.
type UnaryOp string

const (
	OpNot      UnaryOp = "!"
	OpBitNot   UnaryOp = "~"
	OpNeg      UnaryOp = "-"
	OpPos      UnaryOp = "+"
	OpTypeof   UnaryOp = "typeof"
	OpVoid     UnaryOp = "void"
	OpDelete   UnaryOp = "delete"
	OpPreIncr  UnaryOp = "++pre"
	OpPreDecr  UnaryOp = "--pre"
	OpPostIncr UnaryOp = "++post"
	OpPostDecr UnaryOp = "--post"
)

type UnaryExpr struct {
	base
	Op UnaryOp
	X  Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr covers every binary operator of §4.3's precedence ladder,
// including `??`, `|>`, `instanceof`, `as`, `satisfies`, `in`. `as`/
// `satisfies` store their right-hand type in Type rather than Y.
type BinaryExpr struct {
	base
	Op   string
	X, Y Expr
	Type *TypeNode // populated for "as"/"satisfies"
}

func (*BinaryExpr) exprNode() {}

// AssignExpr covers `=` and every compound assignment operator.
type AssignExpr struct {
	base
	Op     string
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

type TernaryExpr struct {
	base
	Cond, Then, Else Expr
}

func (*TernaryExpr) exprNode() {}

type AwaitExpr struct {
	base
	X Expr
}

func (*AwaitExpr) exprNode() {}

// YieldExpr is `yield expr` or `yield* expr` (Delegate).
type YieldExpr struct {
	base
	X        Expr
	Delegate bool
}

func (*YieldExpr) exprNode() {}

type SpreadExpr struct {
	base
	X Expr
}

func (*SpreadExpr) exprNode() {}

// SequenceExpr is a comma expression `(a, b, c)`.
type SequenceExpr struct {
	base
	Exprs []Expr
}

func (*SequenceExpr) exprNode() {}

// ChannelCreateExpr is `channel()` (§4.6, §9 design note: lifted to a
// dedicated runtime primitive rather than expanded inline).
type ChannelCreateExpr struct{ base }

func (*ChannelCreateExpr) exprNode() {}

// BindingExpr is `obj::method`, a bound-method reference.
type BindingExpr struct {
	base
	Object Expr
	Method string
}

func (*BindingExpr) exprNode() {}

// HaveExpr is a runtime truthiness check for non-null/undefined
// (GLOSSARY/§3: "have").
type HaveExpr struct {
	base
	X Expr
}

func (*HaveExpr) exprNode() {}

// RequireExpr is the dedicated `require(ntl, name, ...)` expression form
// when used as a value rather than a top-level NTLRequire statement.
type RequireExpr struct {
	base
	Modules []string
}

func (*RequireExpr) exprNode() {}

// DecoratedExpr wraps a single child expression with a decorator, lowered
// at codegen time as reverse application (§4.6).
type DecoratedExpr struct {
	base
	Decorators []*Decorator
	X          Expr
}

func (*DecoratedExpr) exprNode() {}
