// Package cmd wires the CLI commands. This is the layer that turns a failed
// parse or download into a user-facing message; the parse core itself never
// reports errors.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tget/util"
)

var verbose bool

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tget",
		Short: "Download remote code templates",
		Long: `tget downloads a code template from GitHub, GitLab, Bitbucket or
sourcehut into a local directory.

Templates are named by a location string such as:

  user/repo
  gh:user/repo#v2
  gitlab:user/repo/examples/basic
  https://github.com/user/repo@feature/x`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.InitLogger(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(NewGetCmd())
	rootCmd.AddCommand(NewTemplatesCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
