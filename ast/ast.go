// Package ast defines NTL's abstract syntax tree (§3). Every node carries a
// common header (Kind, Line, Column); the AST is a strict tree with no
// cycles, owned read-only by every stage after the parser. The node-kind
// tagging and the Dump/print helpers below are grounded on the teacher's
// ast package (ast/print.go's typed dump), generalized from yomlette's
// closed YAML node set to NTL's full declaration/statement/expression set.
package ast

import "github.com/ntl-lang/ntlc/token"

// Kind tags the concrete type of a Node.
type Kind int

//go:generate stringer -type=Kind
const (
	KindInvalid Kind = iota

	// Declarations
	KindVarDecl
	KindMultiVarDecl
	KindFnDecl
	KindClassDecl
	KindInterfaceDecl
	KindTraitDecl
	KindTypeAlias
	KindEnumDecl
	KindNamespaceDecl
	KindMacroDecl
	KindImmutableDecl
	KindUsingDecl
	KindDeclareStmt
	KindNTLRequire

	// Statements
	KindBlock
	KindIf
	KindUnless
	KindWhile
	KindDoWhile
	KindForOf
	KindForIn
	KindLoop
	KindReturn
	KindThrow
	KindTry
	KindMatch
	KindBreak
	KindContinue
	KindExprStmt
	KindIfSet
	KindSpawn
	KindSelect
	KindImport
	KindExport

	// Expressions
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindNullLit
	KindUndefinedLit
	KindTemplateLit
	KindThisExpr
	KindSuperExpr
	KindIdentifier
	KindArrayLit
	KindObjectLit
	KindFunctionExpr
	KindArrowFunction
	KindMemberExpr
	KindCallExpr
	KindNewExpr
	KindUnaryExpr
	KindBinaryExpr
	KindAssignExpr
	KindTernaryExpr
	KindAwaitExpr
	KindYieldExpr
	KindSpreadExpr
	KindSequenceExpr
	KindChannelCreateExpr
	KindBindingExpr
	KindHaveExpr
	KindRequireExpr
	KindDecoratedExpr
)

var kindNames = map[Kind]string{
	KindInvalid: "Invalid",

	KindVarDecl:       "VarDecl",
	KindMultiVarDecl:  "MultiVarDecl",
	KindFnDecl:        "FnDecl",
	KindClassDecl:     "ClassDecl",
	KindInterfaceDecl: "InterfaceDecl",
	KindTraitDecl:     "TraitDecl",
	KindTypeAlias:     "TypeAlias",
	KindEnumDecl:      "EnumDecl",
	KindNamespaceDecl: "NamespaceDecl",
	KindMacroDecl:     "MacroDecl",
	KindImmutableDecl: "ImmutableDecl",
	KindUsingDecl:     "UsingDecl",
	KindDeclareStmt:   "DeclareStmt",
	KindNTLRequire:    "NTLRequire",

	KindBlock:    "Block",
	KindIf:       "If",
	KindUnless:   "Unless",
	KindWhile:    "While",
	KindDoWhile:  "DoWhile",
	KindForOf:    "ForOf",
	KindForIn:    "ForIn",
	KindLoop:     "Loop",
	KindReturn:   "Return",
	KindThrow:    "Throw",
	KindTry:      "Try",
	KindMatch:    "Match",
	KindBreak:    "Break",
	KindContinue: "Continue",
	KindExprStmt: "ExprStmt",
	KindIfSet:    "IfSet",
	KindSpawn:    "Spawn",
	KindSelect:   "Select",
	KindImport:   "Import",
	KindExport:   "Export",

	KindNumberLit:         "NumberLit",
	KindStringLit:         "StringLit",
	KindBoolLit:           "BoolLit",
	KindNullLit:           "NullLit",
	KindUndefinedLit:      "UndefinedLit",
	KindTemplateLit:       "TemplateLit",
	KindThisExpr:          "ThisExpr",
	KindSuperExpr:         "SuperExpr",
	KindIdentifier:        "Identifier",
	KindArrayLit:          "ArrayLit",
	KindObjectLit:         "ObjectLit",
	KindFunctionExpr:      "FunctionExpr",
	KindArrowFunction:     "ArrowFunction",
	KindMemberExpr:        "MemberExpr",
	KindCallExpr:          "CallExpr",
	KindNewExpr:           "NewExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindAssignExpr:        "AssignExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindAwaitExpr:         "AwaitExpr",
	KindYieldExpr:         "YieldExpr",
	KindSpreadExpr:        "SpreadExpr",
	KindSequenceExpr:      "SequenceExpr",
	KindChannelCreateExpr: "ChannelCreateExpr",
	KindBindingExpr:       "BindingExpr",
	KindHaveExpr:          "HaveExpr",
	KindRequireExpr:       "RequireExpr",
	KindDecoratedExpr:     "DecoratedExpr",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Node is the common interface every AST node satisfies: a kind tag and a
// source location. Declarations and statements additionally satisfy Stmt;
// expressions additionally satisfy Expr.
type Node interface {
	Kind() Kind
	Pos() token.Position
}

// base embeds the common Line/Column header shared by every node (§3:
// "every node has a defined kind, line, and column").
type base struct {
	kind Kind
	pos  token.Position
}

func (b base) Kind() Kind          { return b.kind }
func (b base) Pos() token.Position { return b.pos }

// SetPos stamps the source location of a node built via a bare composite
// literal rather than one of the NewX constructors (mainly expressions,
// whose productions build the node first and only know the right-hand side
// once parsing finishes). Safe to call before the node escapes to an Expr/
// Stmt value; every later stage treats the tree as read-only.
func (b *base) SetPos(pos token.Position) { b.pos = pos }

func newBase(k Kind, pos token.Position) base { return base{kind: k, pos: pos} }

// Stmt is any node usable as a statement (includes all declarations).
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any node usable as an expression.
type Expr interface {
	Node
	exprNode()
}

// File is the root of a parsed source file: a flat list of top-level
// statements, in source order.
type File struct {
	Name  string
	Stmts []Stmt
}
