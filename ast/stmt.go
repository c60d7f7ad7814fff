package ast

import "github.com/ntl-lang/ntlc/token"

// Block is `{ ... }`, a list of statements introducing a new lexical scope.
type Block struct {
	base
	Stmts []Stmt
}

func (*Block) stmtNode() {}

func NewBlock(pos token.Position, stmts []Stmt) *Block {
	return &Block{base: newBase(KindBlock, pos), Stmts: stmts}
}

// ElseIf is one `elif`/`else if` clause of an If.
type ElseIf struct {
	Cond Expr
	Then *Block
}

// If is `if C { ... } elif C2 { ... } else { ... }`.
type If struct {
	base
	Cond    Expr
	Then    *Block
	ElseIfs []ElseIf
	Else    *Block
}

func (*If) stmtNode() {}

func NewIf(pos token.Position, cond Expr, then *Block) *If {
	return &If{base: newBase(KindIf, pos), Cond: cond, Then: then}
}

// Unless lowers to `if (!(C))` (§4.6).
type Unless struct {
	base
	Cond Expr
	Then *Block
	Else *Block
}

func (*Unless) stmtNode() {}

func NewUnless(pos token.Position, cond Expr, then *Block) *Unless {
	return &Unless{base: newBase(KindUnless, pos), Cond: cond, Then: then}
}

type While struct {
	base
	Cond Expr
	Body *Block
}

func (*While) stmtNode() {}

func NewWhile(pos token.Position, cond Expr, body *Block) *While {
	return &While{base: newBase(KindWhile, pos), Cond: cond, Body: body}
}

type DoWhile struct {
	base
	Body *Block
	Cond Expr
}

func (*DoWhile) stmtNode() {}

func NewDoWhile(pos token.Position, body *Block, cond Expr) *DoWhile {
	return &DoWhile{base: newBase(KindDoWhile, pos), Body: body, Cond: cond}
}

// ForOf is `for x of iterable { ... }`; Pattern is non-nil when the
// loop variable is destructured.
type ForOf struct {
	base
	Name     string
	Pattern  *Pattern
	Iterable Expr
	Body     *Block
	Const    bool
}

func (*ForOf) stmtNode() {}

func NewForOf(pos token.Position, name string, pattern *Pattern, iterable Expr, body *Block, isConst bool) *ForOf {
	return &ForOf{base: newBase(KindForOf, pos), Name: name, Pattern: pattern, Iterable: iterable, Body: body, Const: isConst}
}

// ForIn is `for k in obj { ... }`.
type ForIn struct {
	base
	Name   string
	Object Expr
	Body   *Block
}

func (*ForIn) stmtNode() {}

func NewForIn(pos token.Position, name string, object Expr, body *Block) *ForIn {
	return &ForIn{base: newBase(KindForIn, pos), Name: name, Object: object, Body: body}
}

// Loop lowers to `while (true) { ... }` (§4.6).
type Loop struct {
	base
	Body *Block
}

func (*Loop) stmtNode() {}

func NewLoop(pos token.Position, body *Block) *Loop {
	return &Loop{base: newBase(KindLoop, pos), Body: body}
}

type Return struct {
	base
	Value Expr // nil for bare `return`
}

func (*Return) stmtNode() {}

func NewReturn(pos token.Position, value Expr) *Return {
	return &Return{base: newBase(KindReturn, pos), Value: value}
}

type Throw struct {
	base
	Value Expr
}

func (*Throw) stmtNode() {}

func NewThrow(pos token.Position, value Expr) *Throw {
	return &Throw{base: newBase(KindThrow, pos), Value: value}
}

// Try is `try { ... } catch (e) { ... } finally { ... }`; CatchBody may be
// nil if there is no catch clause (a warning case per §7).
type Try struct {
	base
	Body       *Block
	CatchParam string
	CatchBody  *Block
	Finally    *Block
}

func (*Try) stmtNode() {}

func NewTry(pos token.Position, body *Block) *Try {
	return &Try{base: newBase(KindTry, pos), Body: body}
}

// MatchCase is one `case PAT [| PAT...] [when GUARD] => body` arm. Bodies
// are normalized to a Block at parse time regardless of source shape
// (design note: "normalize to a block during parse").
type MatchCase struct {
	Patterns  []*MatchPattern
	Guard     Expr
	Body      *Block
	IsDefault bool // `default`/`else` catch-all
}

// Match is NTL's pattern-matching statement (§4.6 lowers it to an
// if/else-if cascade over a fresh subject binding).
type Match struct {
	base
	Subject Expr
	Cases   []MatchCase
}

func (*Match) stmtNode() {}

func NewMatch(pos token.Position, subject Expr) *Match {
	return &Match{base: newBase(KindMatch, pos), Subject: subject}
}

type Break struct {
	base
	Label string
}

func (*Break) stmtNode() {}

func NewBreak(pos token.Position, label string) *Break {
	return &Break{base: newBase(KindBreak, pos), Label: label}
}

type Continue struct {
	base
	Label string
}

func (*Continue) stmtNode() {}

func NewContinue(pos token.Position, label string) *Continue {
	return &Continue{base: newBase(KindContinue, pos), Label: label}
}

type ExprStmt struct {
	base
	X Expr
}

func (*ExprStmt) stmtNode() {}

func NewExprStmt(pos token.Position, x Expr) *ExprStmt {
	return &ExprStmt{base: newBase(KindExprStmt, pos), X: x}
}

// IfSet is `ifset X as y { ... } else { ... }` (§4.6, GLOSSARY "ifset").
// Alias is empty when no `as y` binding was given (§9 Open Question: the
// consequent body then sees the original expression unnarrowed).
type IfSet struct {
	base
	Scrutinee Expr
	Alias     string
	Then      *Block
	Else      *Block
}

func (*IfSet) stmtNode() {}

func NewIfSet(pos token.Position, scrutinee Expr, alias string, then *Block) *IfSet {
	return &IfSet{base: newBase(KindIfSet, pos), Scrutinee: scrutinee, Alias: alias, Then: then}
}

// Spawn schedules Value on the microtask queue without awaiting it (§5,
// §4.6: `Promise.resolve().then(() => E)`).
type Spawn struct {
	base
	Value Expr
}

func (*Spawn) stmtNode() {}

func NewSpawn(pos token.Position, value Expr) *Spawn {
	return &Spawn{base: newBase(KindSpawn, pos), Value: value}
}

// SelectCase is one `case v = ch.receive() => body` arm of a Select.
type SelectCase struct {
	BindingName string
	Channel     Expr
	Body        *Block
	IsDefault   bool
}

// Select chooses the first-resolving case among several channel receives
// (§4.6, §5: implemented via Promise.race).
type Select struct {
	base
	Cases []SelectCase
}

func (*Select) stmtNode() {}

func NewSelect(pos token.Position) *Select {
	return &Select{base: newBase(KindSelect, pos)}
}

// ImportSpecifier is one `{ name as alias }` entry of an import clause.
type ImportSpecifier struct {
	Name  string
	Alias string
}

// Import covers default, namespace, and named-specifier imports.
type Import struct {
	base
	Default    string
	Namespace  string
	Specifiers []ImportSpecifier
	Source     string
}

func (*Import) stmtNode() {}

func NewImport(pos token.Position) *Import {
	return &Import{base: newBase(KindImport, pos)}
}

// Export wraps a declaration or re-export.
type Export struct {
	base
	Decl    Stmt
	Default bool
	Names   []ImportSpecifier
	Source  string // re-export "from" source, if any
}

func (*Export) stmtNode() {}

func NewExport(pos token.Position) *Export {
	return &Export{base: newBase(KindExport, pos)}
}
