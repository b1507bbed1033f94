package lox

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand, parsing and resolving files
// without executing them.
func (l Lox) Check(ctx context.Context, path string, handler syntax.ErrorHandler, options CheckOptions) error {
	logger := l.logger.WithPrefix("lox.check").With("path", path)
	logger.Debug("Checking path")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not get path info: %w", err)
	}

	var paths []string

	if info.IsDir() {
		logger.Debug("Path is a directory")

		err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if filepath.Ext(path) == ".lox" {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("could not walk %s: %w", path, err)
		}
	} else {
		logger.Debug("Path is a file")

		paths = []string{path}
	}

	logger.Debug("Checking lox files given by path", "number", len(paths))

	group := errgroup.Group{}

	for _, path := range paths {
		group.Go(func() error {
			return l.checkFile(path, handler)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		msg.Fsuccess(l.stdout, "%s is valid", path)
	}

	return nil
}

// checkFile runs a parse and resolve check on a single file.
func (l Lox) checkFile(path string, handler syntax.ErrorHandler) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	p, err := parser.New(path, file, handler)
	if err != nil {
		return fmt.Errorf("could not initialise the parser: %w", err)
	}

	program, err := p.Parse()
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	res := resolver.New(path, handler)

	// We don't actually care about the resolution, just that it resolves
	if _, err := res.Resolve(program); err != nil {
		return fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	return nil
}
