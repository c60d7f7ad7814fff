package codegen_test

import (
	"strings"
	"testing"

	"github.com/ntl-lang/ntlc/codegen"
	"github.com/ntl-lang/ntlc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gen(t *testing.T, src string) string {
	t.Helper()
	f, err := parser.ParseSource("test.ntl", src)
	require.NoError(t, err)
	out, err := codegen.Generate(f)
	require.NoError(t, err)
	return out
}

func TestValLowersToConst(t *testing.T) {
	out := gen(t, `val x = 1`)
	assert.Contains(t, out, "const x = 1;")
}

func TestVarLowersToLet(t *testing.T) {
	out := gen(t, `var x = 1`)
	assert.Contains(t, out, "let x = 1;")
}

func TestImmutableValFreezes(t *testing.T) {
	out := gen(t, `immutable val cfg = { a: 1 }`)
	assert.Contains(t, out, "Object.freeze(cfg);")
}

func TestUnlessLowersToNegatedIf(t *testing.T) {
	out := gen(t, `unless ready {
  console.log("waiting")
}`)
	assert.Contains(t, out, "if (!(ready)) {")
}

func TestLoopLowersToWhileTrue(t *testing.T) {
	out := gen(t, `loop {
  break
}`)
	assert.Contains(t, out, "while (true) {")
}

func TestInitMethodLowersToConstructor(t *testing.T) {
	out := gen(t, `class Point {
  init(x, y) {
    this.x = x
    this.y = y
  }
}`)
	assert.Contains(t, out, "constructor(x, y) {")
}

func TestEnumLowersToFrozenObject(t *testing.T) {
	out := gen(t, `enum Color {
  Red
  Green
  Blue
}`)
	assert.Contains(t, out, "const Color = Object.freeze({")
	assert.Contains(t, out, "Red: 0,")
	assert.Contains(t, out, "Green: 1,")
	assert.Contains(t, out, "Blue: 2,")
}

func TestEnumRestartsNumberingAfterExplicitValue(t *testing.T) {
	out := gen(t, `enum Status {
  Pending
  Active = 5
  Done
}`)
	assert.Contains(t, out, "Pending: 0,")
	assert.Contains(t, out, "Active: 5,")
	assert.Contains(t, out, "Done: 6,")
}

func TestPipelineLowersToNestedCall(t *testing.T) {
	out := gen(t, `val x = 1 |> double`)
	assert.Contains(t, out, "(double)(1)")
}

func TestBinaryParensRespectPrecedence(t *testing.T) {
	out := gen(t, `val x = (1 + 2) * 3`)
	assert.Contains(t, out, "(1 + 2) * 3")
}

func TestBinaryOmitsUnnecessaryParens(t *testing.T) {
	out := gen(t, `val x = 1 + 2 * 3`)
	assert.Contains(t, out, "1 + 2 * 3")
	assert.NotContains(t, out, "(2 * 3)")
}

func TestIfSetWithAliasLowersToConstThenNullCheck(t *testing.T) {
	out := gen(t, `ifset findUser(id) as user {
  console.log(user)
}`)
	assert.Contains(t, out, "const user = findUser(id);")
	assert.Contains(t, out, "if (user !== null && user !== undefined) {")
}

func TestIfSetWithoutAliasLowersToSyntheticConstThenNullCheck(t *testing.T) {
	out := gen(t, `ifset nextItem() {
  console.log(1)
}`)
	assert.Contains(t, out, "const __ifset1 = nextItem();")
	assert.Contains(t, out, "if (__ifset1 !== null && __ifset1 !== undefined) {")
	assert.Equal(t, 1, strings.Count(out, "nextItem()"))
}

func TestSpawnLowersToMicrotask(t *testing.T) {
	out := gen(t, `spawn doWork()`)
	assert.Contains(t, out, "Promise.resolve().then(() => doWork());")
}

func TestNTLRequireLowersToRequireCalls(t *testing.T) {
	out := gen(t, `require(ntl, fs, crypto)`)
	assert.Contains(t, out, `const fs = require("ntl-runtime/fs.js");`)
	assert.Contains(t, out, `const crypto = require("ntl-runtime/crypto.js");`)
}

func TestMatchLowersToIfElseCascade(t *testing.T) {
	out := gen(t, `match shape {
  case Circle(r) => console.log(r)
  default => console.log("other")
}`)
	assert.Contains(t, out, "_tag === \"Circle\"")
	assert.Contains(t, out, "_0")
}

func TestChannelCreateEmitsPreludeOnce(t *testing.T) {
	out := gen(t, `val ch = channel()`)
	assert.Contains(t, out, "function __ntlChannel()")
	assert.Contains(t, out, "const ch = __ntlChannel();")
}

func TestInterfaceDeclElided(t *testing.T) {
	out := gen(t, `interface Shape {
  area(): number
}
val x = 1`)
	assert.NotContains(t, out, "Shape")
	assert.Contains(t, out, "const x = 1;")
}

func TestDecoratorsAppliedInReverseOrder(t *testing.T) {
	out := gen(t, `@logged
@cached
fn compute() {
  return 1
}`)
	assert.Contains(t, out, "compute = logged(compute);")
	assert.Contains(t, out, "compute = cached(compute);")
	assert.Less(t, strings.Index(out, "compute = cached(compute);"), strings.Index(out, "compute = logged(compute);"))
}
