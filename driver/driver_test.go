package driver_test

import (
	"testing"

	"github.com/ntl-lang/ntlc/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSourceSucceeds(t *testing.T) {
	res := driver.CompileSource("main.ntl", `val x = 1 + 2
console.log(x)`, driver.Options{})
	require.True(t, res.Success)
	assert.Contains(t, res.Code, "const x = 1 + 2;")
	assert.Contains(t, res.Code, "console.log(x);")
}

func TestCompileSourceScopeErrorAborts(t *testing.T) {
	res := driver.CompileSource("main.ntl", `console.log(undeclaredThing)`, driver.Options{})
	require.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
}

func TestCompileSourceStrictTypeMismatchAborts(t *testing.T) {
	res := driver.CompileSource("main.ntl", `val x: string = 5`, driver.Options{Strict: true})
	require.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
}

func TestCompileSourceNonStrictTypeMismatchWarnsOnly(t *testing.T) {
	res := driver.CompileSource("main.ntl", `val x: string = 5`, driver.Options{})
	require.True(t, res.Success)
	assert.NotEmpty(t, res.Warnings)
}

func TestCompileSourceESMRewrite(t *testing.T) {
	res := driver.CompileSource("main.ntl", `export fn greet() {
  return "hi"
}`, driver.Options{Target: driver.TargetESM})
	require.True(t, res.Success)
	assert.Contains(t, res.Code, "export { greet };")
	assert.NotContains(t, res.Code, "module.exports")
}

func TestCompileSourceMinifyStripsBlankLines(t *testing.T) {
	res := driver.CompileSource("main.ntl", `val x = 1

val y = 2`, driver.Options{Minify: true})
	require.True(t, res.Success)
	assert.NotContains(t, res.Code, "\n\n")
}

func TestCompileSourceStatsReflectSource(t *testing.T) {
	src := `val x = 1`
	res := driver.CompileSource("main.ntl", src, driver.Options{})
	require.True(t, res.Success)
	assert.Equal(t, len(src), res.Stats.SourceChars)
}

func TestCompileSourceDefaultsToNodeTarget(t *testing.T) {
	res := driver.CompileSource("main.ntl", `val x = 1`, driver.Options{})
	assert.Equal(t, driver.TargetNode, res.Target)
}
