package main

import (
	"os"

	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/parser"
)

// dumpASTFor parses src and writes its AST dump (ast.DumpFile) to stdout,
// backing the check command's `--ast` flag.
func dumpASTFor(file, src string) error {
	f, err := parser.ParseSource(file, src)
	if err != nil {
		return err
	}
	return ast.DumpFile(os.Stdout, f)
}
