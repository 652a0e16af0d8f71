// Package commands implements the tryconstruct command line.
//
// Exit codes:
//
//	0   the document is valid
//	1   the document is invalid
//	2   usage error, unreadable input, or a lookup that could not be answered
//	130 interrupted before an outcome was reached
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

// Exit codes returned by Execute.
const (
	ExitValid       = 0
	ExitInvalid     = 1
	ExitError       = 2
	ExitInterrupted = 130
)

// exitError carries a non-zero exit code out of a command. Commands that have
// already written their output return it with a nil err.
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

type rootOptions struct {
	logLevel string
	logger   *slog.Logger
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitValid
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", exit.err)
		}
		return exit.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return ExitError
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tryconstruct",
		Short:         "Validate documents into sealed domain values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.logger = logging.New(opts.logLevel, "text", stderr)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(validateCmd(opts), fieldsCmd())
	return root
}
