package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ntl-lang/ntlc/driver"
	"github.com/ntl-lang/ntlc/project"
	"github.com/spf13/cobra"
)

func driverOptions(f *globalFlags) driver.Options {
	return driver.Options{
		Target: driver.Target(f.target),
		Strict: f.strict,
		Minify: f.minify,
	}
}

func newBuildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build FILE",
		Short: "compile a file or a project (ntl.json) to JavaScript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if strings.HasSuffix(path, "ntl.json") {
				return buildProject(path, flags)
			}
			return buildFile(path, flags)
		},
	}
}

func buildFile(path string, flags *globalFlags) error {
	var cache driver.Cache
	result, err := cache.CompileFile(path, driverOptions(flags))
	if err != nil {
		return err
	}
	if !result.Success {
		printDiagnostics(result.Errors)
		os.Exit(1)
	}
	printDiagnostics(result.Warnings)
	if flags.out != "" {
		return os.WriteFile(flags.out, []byte(result.Code), 0o644)
	}
	fmt.Print(result.Code)
	return nil
}

func buildProject(configPath string, flags *globalFlags) error {
	cfg, err := project.Load(configPath)
	if err != nil {
		return err
	}
	var cache driver.Cache
	result, err := cache.CompileProject(cfg)
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		if f.Result != nil && !f.Result.Success {
			fmt.Fprintf(os.Stderr, "FAIL %s\n", f.Src)
			printDiagnostics(f.Result.Errors)
			continue
		}
		fmt.Fprintf(os.Stderr, "OK   %s -> %s\n", f.Src, f.Dist)
	}
	fmt.Fprintf(os.Stderr, "%d succeeded, %d failed (%dms)\n", result.Succeeded, result.Failed, result.ElapsedMs)
	if result.Failed > 0 {
		os.Exit(1)
	}
	return nil
}
