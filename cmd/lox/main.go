package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"go.followtheprocess.codes/lox/internal/cmd"
	"go.followtheprocess.codes/lox/internal/lox"
	"go.followtheprocess.codes/msg"
)

// Exit codes per the sysexits convention: 64 for bad usage, 65 for programs
// that fail to parse or resolve, 70 for programs that fail at runtime.
const (
	exitUsage   = 64
	exitSyntax  = 65
	exitRuntime = 70
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	root, err := cmd.Build(ctx)
	if err != nil {
		msg.Error("%v", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, lox.ErrSyntax):
			// Diagnostics have already been reported through the handler
			os.Exit(exitSyntax)
		case errors.Is(err, lox.ErrRuntime):
			os.Exit(exitRuntime)
		case errors.Is(err, lox.ErrUsage):
			msg.Error("%v", err)
			os.Exit(exitUsage)
		default:
			msg.Error("%v", err)
			os.Exit(1)
		}
	}
}
