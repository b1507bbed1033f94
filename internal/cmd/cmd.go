// Package cmd implements lox's CLI.
package cmd

import (
	"context"
	"fmt"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/lox/internal/lox"
	"go.followtheprocess.codes/lox/internal/syntax"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the lox CLI.
func Build(ctx context.Context) (*cli.Command, error) {
	var options lox.RunOptions

	return cli.New(
		"lox",
		cli.Short("A tree-walking interpreter for the Lox language"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Start an interactive session", "lox"),
		cli.Example("Execute a script", "lox ./demo.lox"),
		cli.Example("Check for syntax errors in a file", "lox check ./demo.lox"),
		cli.Example("Check for syntax errors in multiple files (recursively)", "lox check ./examples"),
		cli.Example("Dump a script's token stream as JSON", "lox tokens ./demo.lox"),
		cli.Allow(cli.AnyArgs()),
		cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logs"),
		cli.SubCommands(check(ctx), tokens(ctx)),
		cli.Run(func(cmd *cli.Command, args []string) error {
			app := lox.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			handler := syntax.ConsoleHandler(cmd.Stderr())

			switch len(args) {
			case 0:
				return app.REPL(ctx, handler)
			case 1:
				return app.Run(ctx, args[0], handler, options)
			default:
				return fmt.Errorf("expected at most one script argument, got %d: %w", len(args), lox.ErrUsage)
			}
		}),
	)
}
