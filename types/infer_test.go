package types_test

import (
	"testing"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/parser"
	"github.com/ntl-lang/ntlc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infer(t *testing.T, src string, strict bool) diagnostic.List {
	t.Helper()
	f, err := parser.ParseSource("test.ntl", src)
	require.NoError(t, err)
	return types.Infer("test.ntl", src, f, strict)
}

func TestAssignableAnyIsBidirectional(t *testing.T) {
	assert.True(t, types.Assignable(types.Any, types.Number))
	assert.True(t, types.Assignable(types.Number, types.Any))
}

func TestAssignableNeverIsBottom(t *testing.T) {
	assert.True(t, types.Assignable(types.Number, types.Never))
}

func TestAssignableUnionTargetAnyMember(t *testing.T) {
	u := types.Union(types.Number, types.String)
	assert.True(t, types.Assignable(u, types.Number))
	assert.False(t, types.Assignable(u, types.Boolean))
}

func TestAssignableUnionSourceAllMembers(t *testing.T) {
	u := types.Union(types.Number, types.String)
	assert.True(t, types.Assignable(types.Union(types.Number, types.String, types.Boolean), u))
}

func TestAssignableStructuralObject(t *testing.T) {
	target := types.Object(types.Field{Name: "x", Type: types.Number})
	source := types.Object(
		types.Field{Name: "x", Type: types.Number},
		types.Field{Name: "y", Type: types.String},
	)
	assert.True(t, types.Assignable(target, source))
	assert.False(t, types.Assignable(source, target))
}

func TestVarDeclTypeMismatchStrict(t *testing.T) {
	diags := infer(t, `val x: string = 5`, true)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeTypeMismatch, diags[0].Code)
}

func TestVarDeclTypeMismatchNonStrictIsWarning(t *testing.T) {
	diags := infer(t, `val x: string = 5`, false)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.Warning, diags[0].Severity)
}

func TestBinaryPlusStringWidening(t *testing.T) {
	diags := infer(t, `val x = "a" + 1`, true)
	assert.False(t, diags.HasErrors())
}

func TestFunctionForwardReference(t *testing.T) {
	diags := infer(t, `
fn main() {
  val x = helper()
}
fn helper() {
  return 1
}`, true)
	assert.False(t, diags.HasErrors())
}
