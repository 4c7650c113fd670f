// messagesvc serves the message catalog over HTTP.
//
// Usage:
//
//	messagesvc [serve]
//	messagesvc seed [--file=<seed.yaml>] [--format=yaml|table]
//	messagesvc version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version   = "dev"
	commit    = ""
	buildTime = ""
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "messagesvc",
		Short: "Centralized catalog of system messages",
		Long: "messagesvc keeps a table of system messages keyed by code, each with a\n" +
			"technical, a user-facing and a general variant, and serves it over HTTP.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: runServe,
	}
	root.Version = version
	root.AddCommand(newServeCmd(), newSeedCmd(), newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
