// Command ntlc is the NTL compiler's command-line entry point (§6): run,
// build, check, watch, dev, repl, init, version, help. It is grounded on
// the teacher's cmd/yparse/yparse.go color-wiring (fatih/color +
// mattn/go-colorable), generalized from a one-shot YAML pretty-printer into
// a spf13/cobra multi-command compiler driver.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
