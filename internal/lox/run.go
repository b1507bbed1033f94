package lox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
)

// RunOptions are the options passed to the run (root) command.
type RunOptions struct {
	// Debug enables debug logging.
	Debug bool
}

// Run executes a .lox script from a file.
//
// Parse and resolution errors are reported through the installed handler
// and surface as [ErrSyntax], runtime errors are written to stderr in the
// canonical format and surface as [ErrRuntime].
func (l Lox) Run(ctx context.Context, script string, handler syntax.ErrorHandler, options RunOptions) error {
	logger := l.logger.WithPrefix("lox.run").With("script", script)
	logger.Debug("Executing script")

	file, err := os.Open(script)
	if err != nil {
		return fmt.Errorf("could not open script: %w", err)
	}
	defer file.Close()

	start := time.Now()

	p, err := parser.New(script, file, handler)
	if err != nil {
		return fmt.Errorf("could not initialise the parser: %w", err)
	}

	program, err := p.Parse()
	if err != nil {
		return ErrSyntax
	}

	logger.Debug("Parsed script successfully", "statements", len(program.Statements), "took", time.Since(start))

	res := resolver.New(script, handler)

	resolution, err := res.Resolve(program)
	if err != nil {
		return ErrSyntax
	}

	logger.Debug("Resolved script successfully", "locals", len(resolution))

	interp := interpreter.New(l.stdout)

	if err := interp.Interpret(program, resolution); err != nil {
		l.reportRuntimeError(err)
		return ErrRuntime
	}

	return nil
}

// reportRuntimeError writes a runtime error to stderr in the canonical
// format: the message, then "[line N]" on its own line.
func (l Lox) reportRuntimeError(err error) {
	var runtimeErr *interpreter.RuntimeError
	if errors.As(err, &runtimeErr) {
		fmt.Fprintf(l.stderr, "%s\n[line %d]\n", runtimeErr.Msg, runtimeErr.Token.Line)
		return
	}

	fmt.Fprintln(l.stderr, err)
}
