// Command lox is the CLI entry point: `lox [script]` runs a file once,
// `lox` with no arguments starts an interactive REPL. Grounded on the
// teacher's cmd/smog/main.go driver, trimmed to the grammar spec.md §6
// actually defines (no subcommands, no flags) and rebuilt on
// spf13/cobra per opal-lang-opal/runtime/cli/harness.go's
// cobra.Command+RunE pattern.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/lox/pkg/lox"
)

func main() {
	os.Exit(run())
}

func run() int {
	exitCode := lox.ExitSuccess

	root := &cobra.Command{
		Use:           "lox [script]",
		Short:         "lox is a tree-walking interpreter for the Lox language",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := lox.New()
			if len(args) == 1 {
				exitCode = runner.RunFile(args[0])
				return nil
			}
			exitCode = runner.RunREPL()
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		lox.UsageError(os.Stderr)
		return lox.ExitUsageError
	}
	return exitCode
}
