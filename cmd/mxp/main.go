package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewCmdRoot(stdin, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var ce *cliError
		if errors.As(err, &ce) {
			fmt.Fprintf(stderr, FmtErrorWithCause, ce.msg, ce.err)
			return ce.code
		}
		// Anything not raised by a command is cobra rejecting the command line.
		fmt.Fprintf(stderr, FmtError, err)
		return ExitCodeUsageError
	}
	return ExitCodeSuccess
}

// cliError carries the exit code a command failed with
type cliError struct {
	code int
	msg  string
	err  error
}

func (e *cliError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

func newCLIError(code int, msg string, err error) error {
	if err == nil {
		err = errors.New(msg)
	}
	return &cliError{code: code, msg: msg, err: err}
}
