package ast_test

import (
	"strings"
	"testing"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpFileRendersTopLevelDecl(t *testing.T) {
	f, err := parser.ParseSource("main.ntl", "val x = 1")
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, ast.DumpFile(&sb, f))
	out := sb.String()
	assert.Contains(t, out, "VarDecl")
	assert.Contains(t, out, "x")
}

func TestDumpSkipsNilNode(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, ast.Dump(&sb, nil))
	assert.Empty(t, sb.String())
}
