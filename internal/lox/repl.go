package lox

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
)

// Styles.
const (
	// promptStyle is the style used to render the REPL prompt.
	promptStyle = hue.Cyan | hue.Bold

	// bannerStyle is the style used for the REPL welcome banner.
	bannerStyle = hue.BrightBlack | hue.Italic
)

// replName is the filename reported in REPL diagnostics.
const replName = "repl"

// REPL runs the interactive read-eval-print loop, executing one line at a
// time until stdin is exhausted.
//
// The interpreter, its globals and the expression ID space all persist
// across lines so variables and functions defined earlier in the session
// stay visible. Errors of any kind are reported and the loop continues.
func (l Lox) REPL(ctx context.Context, handler syntax.ErrorHandler) error {
	logger := l.logger.WithPrefix("lox.repl")
	logger.Debug("Starting REPL")

	fmt.Fprintln(l.stdout, bannerStyle.Text("lox "+l.version+", ctrl+d to exit"))

	interp := interpreter.New(l.stdout)
	scanner := bufio.NewScanner(l.stdin)

	nextID := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(l.stdout, promptStyle.Text("> "))

		if !scanner.Scan() {
			// EOF (or a read error), either way the session is over
			fmt.Fprintln(l.stdout)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := parser.New(replName, strings.NewReader(line), handler, parser.FirstID(nextID))
		if err != nil {
			return fmt.Errorf("could not initialise the parser: %w", err)
		}

		program, err := p.Parse()
		if err != nil {
			// Diagnostics already reported, keep the session going
			continue
		}

		nextID = program.NextID

		res := resolver.New(replName, handler)

		resolution, err := res.Resolve(program)
		if err != nil {
			continue
		}

		if err := interp.Interpret(program, resolution); err != nil {
			l.reportRuntimeError(err)
			continue
		}
	}
}
