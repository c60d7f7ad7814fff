package main

import (
	"fmt"
	"os"

	"github.com/ntl-lang/ntlc/driver"
	"github.com/spf13/cobra"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var dumpAST bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "lex, parse, scope, and typecheck only (warnings unless --strict)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := driverOptions(flags)
			result := driver.CompileSource(args[0], string(src), opts)
			if !result.Success {
				printDiagnostics(result.Errors)
				os.Exit(1)
			}
			printDiagnostics(result.Warnings)
			if dumpAST {
				return dumpASTFor(args[0], string(src))
			}
			fmt.Println("OK")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the parsed AST instead of OK")
	return cmd
}
