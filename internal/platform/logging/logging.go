// Package logging builds the service's slog loggers and carries the
// request-scoped logger through context.
//
//	w, closeLog := logging.Output(os.Stderr, logging.RotatingFile{Path: "server.log", MaxSizeMB: 100})
//	defer closeLog()
//	logger := logging.New("info", "json", w)
//
// HTTP middleware stores a logger carrying the request and correlation IDs
// with WithLogger; everything below the handler logs through FromContext:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "saving signup failed",
//	    slog.String("operation", "Register"),
//	    slog.Any("error", err),
//	)
//
// Every handler New returns masks personal data and credentials; see
// PersonalFields and CredentialHeaders.
package logging

import (
	"context"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey struct{}

// New returns a logger writing to w. level is any name slog.Level accepts
// ("debug", "INFO", "warn", ...); anything else means info. format "text"
// selects the text handler, anything else JSON. At debug level records
// carry their source location.
func New(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// RotatingFile is a log file rotated by size. An empty Path means no file.
type RotatingFile struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Output returns w, teed into f when f.Path is set, and a function closing
// the file. The close function is never nil.
func Output(w io.Writer, f RotatingFile) (io.Writer, func() error) {
	if f.Path == "" {
		return w, func() error { return nil }
	}
	file := &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Compress:   f.Compress,
	}
	return io.MultiWriter(w, file), file.Close
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
