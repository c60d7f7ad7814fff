package parser

import (
	"testing"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValDecl(t *testing.T) {
	f, err := ParseSource("", "val x = 1 + 2")
	require.NoError(t, err)
	require.Len(t, f.Stmts, 1)
	decl, ok := f.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	assert.True(t, decl.Const)
}

func TestParseVarDeclIsMutable(t *testing.T) {
	f, err := ParseSource("", "var y = 1")
	require.NoError(t, err)
	decl, ok := f.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.False(t, decl.Const)
}

func TestParseFnDecl(t *testing.T) {
	f, err := ParseSource("", `fn greet(name) {
  return name
}`)
	require.NoError(t, err)
	require.Len(t, f.Stmts, 1)
	fn, ok := f.Stmts[0].(*ast.FnDecl)
	require.True(t, ok)
	assert.Equal(t, "greet", fn.Name)
	assert.False(t, fn.Async)
}

func TestParseClassDeclWithInitMethod(t *testing.T) {
	f, err := ParseSource("", `class Point {
  init(x, y) {
    this.x = x
    this.y = y
  }
}`)
	require.NoError(t, err)
	cls, ok := f.Stmts[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", cls.Name)
	require.Len(t, cls.Members, 1)
	assert.Equal(t, "init", cls.Members[0].Name)
}

func TestParseEnumDecl(t *testing.T) {
	f, err := ParseSource("", `enum Color {
  Red
  Green
  Blue
}`)
	require.NoError(t, err)
	enum, ok := f.Stmts[0].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Equal(t, "Color", enum.Name)
	assert.Len(t, enum.Members, 3)
}

func TestParseNTLRequire(t *testing.T) {
	f, err := ParseSource("", `require(ntl, fs, crypto)`)
	require.NoError(t, err)
	req, ok := f.Stmts[0].(*ast.NTLRequire)
	require.True(t, ok)
	assert.Equal(t, []string{"fs", "crypto"}, req.Modules)
}

func TestParseUnexpectedTokenIsDiagnostic(t *testing.T) {
	_, err := ParseSource("", "val = 1")
	require.Error(t, err)
}

func TestParseExprSourceParsesStandaloneExpression(t *testing.T) {
	e, err := ParseExprSource("", "1 + 2 * 3")
	require.NoError(t, err)
	bin, ok := e.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}
