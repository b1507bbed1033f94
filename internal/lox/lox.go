// Package lox implements the functionality of the program, the CLI in
// package cmd is simply the entrypoint to exported functions and methods in
// this package.
package lox

import (
	"errors"
	"io"
	"time"

	"charm.land/log/v2"
)

// Sentinel errors signifying the broad category of a failed run, the
// entrypoint maps these onto the conventional sysexits codes.
var (
	// ErrSyntax means the program could not be parsed or resolved, the
	// detail has already been reported through the installed error handler.
	ErrSyntax = errors.New("syntax error")

	// ErrRuntime means evaluation failed, the detail has already been
	// written to stderr.
	ErrRuntime = errors.New("runtime error")

	// ErrUsage means the command line was invalid.
	ErrUsage = errors.New("usage error")
)

// Lox represents the lox program.
type Lox struct {
	stdin   io.Reader   // The REPL reads lines from here
	stdout  io.Writer   // Normal program output is written here
	stderr  io.Writer   // Logs and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // The version of the running binary
}

// New returns a new [Lox].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) Lox {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(stderr, log.Options{
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Prefix:          "lox",
		ReportTimestamp: true,
	})

	logger.SetStyles(defaultLogStyles())

	return Lox{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}
