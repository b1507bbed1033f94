package cmd

import (
	"context"
	"fmt"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/lox/internal/lox"
)

const tokensLong = `
Scans the given .lox file and writes the complete token stream to stdout
in the requested format, one of json (the default), yaml or toml.

Scanning never fails, invalid source produces Error tokens in the stream,
which makes the output useful for debugging bad input.
`

// tokens returns the tokens subcommand.
func tokens(ctx context.Context) func() (*cli.Command, error) {
	return func() (*cli.Command, error) {
		var options lox.TokensOptions

		return cli.New(
			"tokens",
			cli.Short("Dump a lox file's token stream"),
			cli.Long(tokensLong),
			cli.OptionalArg("path", "Path of the file to scan", ""),
			cli.Flag(&options.Format, "format", 'f', "json", "Output format, one of json, yaml or toml"),
			cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
			cli.Run(func(cmd *cli.Command, args []string) error {
				path := cmd.Arg("path")
				if path == "" {
					return fmt.Errorf("tokens requires a path argument: %w", lox.ErrUsage)
				}

				app := lox.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())

				return app.Tokens(ctx, path, options)
			}),
		)
	}
}
