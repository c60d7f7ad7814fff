package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
)

// colorEnabled implements §6's Environment note: "A NO_COLOR variable (or a
// non-TTY output) disables ANSI coloring in diagnostics."
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// printDiagnostics renders every diagnostic in list to stderr using the
// six-region block layout (§7), colorized unless disabled.
func printDiagnostics(list diagnostic.List) {
	colored := colorEnabled()
	out := colorable.NewColorableStderr()
	for _, d := range list {
		var buf bytes.Buffer
		d.PrettyPrint(&diagnostic.Sink{Writer: &buf}, colored, true)
		fmt.Fprintln(out, buf.String())
	}
}

// printHostError translates a raw host-runtime error (§4.1) into an NTL
// diagnostic and renders it the same way a compile-phase diagnostic would
// print, so run/repl failures look like every other failure surface (§8
// scenario 5, §7's "Runtime (translation only)" row).
func printHostError(raw, file string) {
	d := diagnostic.TranslateHostError(raw, file, 0, 0)
	colored := colorEnabled()
	out := colorable.NewColorableStderr()
	var buf bytes.Buffer
	d.PrettyPrint(&diagnostic.Sink{Writer: &buf}, colored, false)
	fmt.Fprintln(out, buf.String())
}
