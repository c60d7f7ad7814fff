package main

import (
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/ntl-lang/ntlc/driver"
	"github.com/spf13/cobra"
)

// newHostRuntime builds an isolated goja VM with the console/require
// shims `run` and `repl` both need (§6: "execute in an isolated host
// context").
func newHostRuntime() *goja.Runtime {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	registry := require.NewRegistry()
	registry.Enable(vm)
	console.Enable(vm)
	return vm
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "compile then execute in an isolated host context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := driverOptions(flags)
			opts.Target = driver.TargetCJS
			result := driver.CompileSource(args[0], string(src), opts)
			if !result.Success {
				printDiagnostics(result.Errors)
				os.Exit(1)
			}
			printDiagnostics(result.Warnings)

			vm := newHostRuntime()
			if _, err := vm.RunScript(args[0], result.Code); err != nil {
				raw := err.Error()
				if exc, ok := err.(*goja.Exception); ok {
					raw = exc.String()
				}
				printHostError(raw, args[0])
				os.Exit(1)
			}
			return nil
		},
	}
}
