package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dop251/goja"
	"github.com/ntl-lang/ntlc/driver"
	"github.com/spf13/cobra"
)

// bracketBalance tracks `{`, `(`, `[` depth across lines so the REPL can
// accept multi-line input before compiling a chunk (§6: "multi-line
// bracket-balanced input").
func bracketBalance(s string, depth int) int {
	for _, r := range s {
		switch r {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}
	return depth
}

func newReplCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactive prompt, each chunk compiled and run in a persistent host context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(flags)
			return nil
		},
	}
}

func runRepl(flags *globalFlags) {
	vm := newHostRuntime()
	opts := driverOptions(flags)
	opts.Target = driver.TargetCJS

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	depth := 0
	chunk := 0
	fmt.Print("ntl> ")
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteString("\n")
		depth = bracketBalance(line, depth)
		if depth > 0 {
			fmt.Print("...  ")
			continue
		}
		chunk++
		src := buf.String()
		buf.Reset()

		result := driver.CompileSource(fmt.Sprintf("repl#%d", chunk), src, opts)
		if !result.Success {
			printDiagnostics(result.Errors)
			fmt.Print("ntl> ")
			continue
		}
		printDiagnostics(result.Warnings)
		chunkName := fmt.Sprintf("repl#%d", chunk)
		v, err := vm.RunScript(chunkName, result.Code)
		if err != nil {
			raw := err.Error()
			if exc, ok := err.(*goja.Exception); ok {
				raw = exc.String()
			}
			printHostError(raw, chunkName)
		} else if !goja.IsUndefined(v) && !goja.IsNull(v) {
			fmt.Println(v)
		}
		fmt.Print("ntl> ")
	}
	fmt.Println()
}
