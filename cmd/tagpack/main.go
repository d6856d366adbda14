// tagpack inspects and produces files in the tagpack binary format.
//
//	tagpack check FILE        decode, re-encode and compare byte for byte
//	tagpack dump FILE         print the container as YAML
//	tagpack pack FILE.yaml    encode a YAML container to binary
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root, e := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}

	// Flag errors can happen before the configured logger exists
	logger := e.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			logger.Error(ee.err.Error())
		}
		return ee.code
	}

	logger.Error(err.Error())
	return 2
}
