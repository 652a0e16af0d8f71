package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/store/memory"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// Output formats.
const (
	formatJSON = "json"
	formatText = "text"
)

type validateOptions struct {
	kind           string
	taken          []string
	form           bool
	format         string
	maxConcurrency int
	lookupTimeout  time.Duration
}

func validateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [FILE|-]",
		Short: "Validate a document and print the outcome",
		Long: `Validate reads a JSON object (or, with --form, a URL-encoded form body)
from FILE, or from stdin when FILE is "-" or omitted, and prints the outcome.

Email uniqueness is checked against the addresses given with --taken.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			if !validKindName(opts.kind) {
				return &exitError{code: ExitError, err: fmt.Errorf("unknown --type %q", opts.kind)}
			}
			if opts.format != formatJSON && opts.format != formatText {
				return &exitError{code: ExitError, err: fmt.Errorf("unknown --format %q", opts.format)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root.logger, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.kind, "type", "t", "signup", "document type (signup, user, address)")
	f.StringSliceVar(&opts.taken, "taken", nil, "emails already registered, comma separated")
	f.BoolVar(&opts.form, "form", false, "read the input as a URL-encoded form body")
	f.StringVarP(&opts.format, "format", "o", formatJSON, "output format (json, text)")
	f.IntVar(&opts.maxConcurrency, "max-concurrency", 0, "maximum concurrent lookups (0 = unbounded)")
	f.DurationVar(&opts.lookupTimeout, "lookup-timeout", 0, "deadline for each lookup (0 = none)")

	return cmd
}

func runValidate(cmd *cobra.Command, logger *slog.Logger, opts *validateOptions, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	rec, err := decode(data, opts.form)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	k, err := lookupKind(opts.kind, memory.New(opts.taken...),
		validation.WithMaxConcurrency(opts.maxConcurrency),
		validation.WithLookupTimeout(opts.lookupTimeout),
	)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	ctx := cmd.Context()
	start := time.Now()
	report, err := k.run(ctx, rec)
	logger.DebugContext(ctx, "validation finished",
		slog.String("type", opts.kind),
		slog.Duration("elapsed", time.Since(start)),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, validation.ErrCancelled):
		report = validation.CancelledReport()
		if werr := writeReport(cmd.OutOrStdout(), opts.format, report); werr != nil {
			return &exitError{code: ExitError, err: werr}
		}
		return &exitError{code: ExitInterrupted}
	case err != nil:
		return &exitError{code: ExitError, err: err}
	}

	if err := writeReport(cmd.OutOrStdout(), opts.format, report); err != nil {
		return &exitError{code: ExitError, err: err}
	}
	if !report.OK {
		return &exitError{code: ExitInvalid}
	}
	return nil
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func decode(data []byte, form bool) (*validation.Record, error) {
	if !form {
		return validation.FromJSON(data)
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", validation.ErrShape, err)
	}
	return validation.FromValues(values)
}

func writeReport(w io.Writer, format string, r validation.Report) error {
	if format == formatText {
		return writeText(w, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, r validation.Report) error {
	var b strings.Builder
	switch {
	case r.Cancelled:
		b.WriteString("cancelled\n")
	case r.OK:
		b.WriteString("valid\n")
	default:
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "%s: %s\n", e.Field, e.Message)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
