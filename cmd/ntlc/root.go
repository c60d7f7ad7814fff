package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the compiler's own release version, printed by `ntlc version`
// (§6).
const Version = "0.1.0"

type globalFlags struct {
	target      string
	strict      bool
	minify      bool
	obfuscate   bool
	noTreeShake bool
	credits     bool
	sourceMap   bool
	incremental bool
	out         string
	port        int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	var showVersion bool
	root := &cobra.Command{
		Use:           "ntlc",
		Short:         "NTL compiler",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("ntlc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
				return nil
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print the compiler version and host info")

	root.PersistentFlags().StringVar(&flags.target, "target", "node", "compile target: node|browser|deno|bun|esm|cjs")
	root.PersistentFlags().BoolVar(&flags.strict, "strict", false, "enable strict-mode type checking")
	root.PersistentFlags().BoolVar(&flags.minify, "minify", false, "strip blank lines and collapse whitespace in output")
	root.PersistentFlags().BoolVar(&flags.obfuscate, "obfuscate", false, "post-pass identifier obfuscation (out of scope for the core pipeline)")
	root.PersistentFlags().BoolVar(&flags.noTreeShake, "no-treeshake", false, "accepted but has no effect; no dead-export elimination is performed")
	root.PersistentFlags().BoolVar(&flags.credits, "credits", false, "accepted but has no effect; no credits header is emitted")
	root.PersistentFlags().BoolVar(&flags.sourceMap, "source-map", false, "emit a source map alongside output (not yet implemented)")
	root.PersistentFlags().BoolVar(&flags.incremental, "incremental", false, "accepted but has no effect; the compile cache is not kept across invocations")
	root.PersistentFlags().StringVarP(&flags.out, "out", "o", "", "output path; stdout if omitted")
	root.PersistentFlags().IntVar(&flags.port, "port", 8080, "port for the dev server")

	root.AddCommand(
		newRunCmd(flags),
		newBuildCmd(flags),
		newCheckCmd(flags),
		newWatchCmd(flags),
		newDevCmd(flags),
		newReplCmd(flags),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}
