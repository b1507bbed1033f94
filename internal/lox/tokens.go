package lox

import (
	"context"
	"fmt"
	"os"

	"go.followtheprocess.codes/lox/internal/format"
	"go.followtheprocess.codes/lox/internal/syntax/scanner"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// TokensOptions are the options passed to the tokens subcommand.
type TokensOptions struct {
	// Format is the export format, one of "json", "yaml" or "toml".
	Format string

	// Debug enables debug logging.
	Debug bool
}

// Tokens implements the tokens subcommand, scanning a file and exporting
// the token stream to stdout in the requested format.
func (l Lox) Tokens(ctx context.Context, path string, options TokensOptions) error {
	logger := l.logger.WithPrefix("lox.tokens").With("path", path, "format", options.Format)
	logger.Debug("Dumping token stream")

	var exporter format.Exporter

	switch options.Format {
	case "json", "":
		exporter = format.JSONExporter{}
	case "yaml":
		exporter = format.YAMLExporter{}
	case "toml":
		exporter = format.TOMLExporter{}
	default:
		return fmt.Errorf("unsupported format %q, expected one of json, yaml or toml: %w", options.Format, ErrUsage)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file: %w", err)
	}

	scan := scanner.New(path, src, nil)

	file := format.File{Name: path}

	for {
		tok := scan.Scan()

		file.Tokens = append(file.Tokens, format.Token{
			Kind:   tok.Kind.String(),
			Lexeme: string(src[tok.Start:tok.End]),
			Line:   tok.Line,
			Start:  tok.Start,
			End:    tok.End,
		})

		if tok.Is(token.EOF) {
			break
		}
	}

	logger.Debug("Scanned file successfully", "tokens", len(file.Tokens))

	return exporter.Export(l.stdout, file)
}
