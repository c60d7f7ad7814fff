package scope_test

import (
	"testing"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/parser"
	"github.com/ntl-lang/ntlc/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src string) diagnostic.List {
	t.Helper()
	f, err := parser.ParseSource("test.ntl", src)
	require.NoError(t, err)
	return scope.Check("test.ntl", src, f)
}

func TestUndeclaredVariableReported(t *testing.T) {
	diags := check(t, `val x = y + 1`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUndefVar, diags[0].Code)
}

func TestDeclaredVariableResolves(t *testing.T) {
	diags := check(t, `val x = 1
val y = x + 1`)
	assert.False(t, diags.HasErrors())
}

func TestFunctionHoistedBeforeUse(t *testing.T) {
	diags := check(t, `
fn main() {
  helper()
}
fn helper() {
  return 1
}`)
	assert.False(t, diags.HasErrors())
}

func TestPrintEmitsUndefFuncWithFix(t *testing.T) {
	diags := check(t, `print("hi")`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUndefFunc, diags[0].Code)
	require.NotNil(t, diags[0].Example)
	assert.Equal(t, `console.log("hi")`, diags[0].Example.Good)
}

func TestBuiltinsNeverFlagged(t *testing.T) {
	diags := check(t, `console.log(Math.max(1, 2))`)
	assert.False(t, diags.HasErrors())
}

func TestConstReassignmentReported(t *testing.T) {
	diags := check(t, `
val x = 1
x = 2`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeConstReassign, diags[0].Code)
}

func TestDuplicateDeclarationReported(t *testing.T) {
	diags := check(t, `
fn f() {}
fn f() {}`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeDuplicateDecl, diags[0].Code)
}

func TestMatchBindingScopedToArm(t *testing.T) {
	diags := check(t, `
val pair = [1, 2]
match pair {
  case [a, b] => a + b
  default => 0
}`)
	assert.False(t, diags.HasErrors())
}

func TestForOfLoopVariableScoped(t *testing.T) {
	diags := check(t, `
val items = [1, 2, 3]
for item of items {
  console.log(item)
}`)
	assert.False(t, diags.HasErrors())
}

func TestCatchParamScopedToCatchBody(t *testing.T) {
	diags := check(t, `
try {
  throw "boom"
} catch (e) {
  console.log(e)
}`)
	assert.False(t, diags.HasErrors())
}

func TestSimilarNameSuggestionOffered(t *testing.T) {
	diags := check(t, `
val counter = 0
val x = countr + 1`)
	require.True(t, diags.HasErrors())
	require.NotEmpty(t, diags[0].Similar)
	assert.Equal(t, "counter", diags[0].Similar[0].Name)
}
