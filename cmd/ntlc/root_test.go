package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdRegistersAllSubcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "build", "check", "watch", "dev", "repl", "init", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmdPersistentFlagsMatchFlagTable(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"target", "strict", "minify", "obfuscate", "no-treeshake", "credits", "source-map", "incremental", "out", "port"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestBuildCmdRequiresExactlyOneArg(t *testing.T) {
	flags := &globalFlags{}
	cmd := newBuildCmd(flags)
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"main.ntl"}))
}
