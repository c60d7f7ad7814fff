package main

import (
	"fmt"

	"github.com/ntl-lang/ntlc/project"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "scaffold ntl.json, src/main.ntl, package.json, and .gitignore",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := project.Scaffold(dir, name); err != nil {
				return err
			}
			fmt.Println("scaffolded a new NTL project in", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name (default: directory name)")
	return cmd
}
