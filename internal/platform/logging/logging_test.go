package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		format  string
		log     func(*slog.Logger)
		want    []string
		wantNot []string
		empty   bool
	}{
		{
			name: "json", level: "info", format: "json",
			log:     func(l *slog.Logger) { l.Info("hello") },
			want:    []string{`"level":"INFO"`, `"msg":"hello"`},
			wantNot: []string{`"source"`},
		},
		{
			name: "text", level: "info", format: "text",
			log:  func(l *slog.Logger) { l.Info("hello") },
			want: []string{"level=INFO", "msg=hello"},
		},
		{
			name: "unknown format is json", level: "info", format: "xml",
			log:  func(l *slog.Logger) { l.Info("hello") },
			want: []string{`"level":"INFO"`},
		},
		{
			name: "debug adds source", level: "debug", format: "json",
			log:  func(l *slog.Logger) { l.Debug("trace") },
			want: []string{`"level":"DEBUG"`, `"source"`},
		},
		{
			name: "level is case insensitive", level: "DEBUG", format: "json",
			log:  func(l *slog.Logger) { l.Debug("trace") },
			want: []string{`"msg":"trace"`},
		},
		{
			name: "info drops debug", level: "info", format: "json",
			log:   func(l *slog.Logger) { l.Debug("trace") },
			empty: true,
		},
		{
			name: "error drops warn", level: "error", format: "json",
			log:   func(l *slog.Logger) { l.Warn("careful") },
			empty: true,
		},
		{
			name: "unknown level is info", level: "verbose", format: "json",
			log: func(l *slog.Logger) {
				l.Debug("dropped")
				l.Info("kept")
			},
			want:    []string{`"msg":"kept"`},
			wantNot: []string{"dropped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.log(logging.New(tt.level, tt.format, &buf))

			out := buf.String()
			if tt.empty && out != "" {
				t.Fatalf("output = %q, want nothing", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output = %q, want it to contain %q", out, w)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(out, w) {
					t.Errorf("output = %q, want no %q", out, w)
				}
			}
		})
	}
}

func TestRedaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
		masked bool
	}{
		{name: "email field", attr: slog.String("email", "ann@example.com"), secret: "ann@example.com", masked: true},
		{name: "street field", attr: slog.String("street", "12 Main St"), secret: "12 Main St", masked: true},
		{name: "password field", attr: slog.String("password", "hunter2"), secret: "hunter2", masked: true},
		{name: "secret prefix", attr: slog.String("secret_key", "s3cr3t-value"), secret: "s3cr3t-value", masked: true},
		{name: "authorization header", attr: slog.String("authorization", "Basic Zm9vOmJhcg=="), secret: "Zm9vOmJhcg==", masked: true},
		{name: "email in free text", attr: slog.String("message", "bob@example.org is already registered"), secret: "bob@example.org", masked: true},
		{name: "bearer token in free text", attr: slog.String("note", "sent Bearer eyJhbGciOiJSUzI1NiJ9"), secret: "eyJhbGciOiJSUzI1NiJ9", masked: true},
		{name: "city is kept", attr: slog.String("city", "Austin"), secret: "Austin"},
		{name: "path is kept", attr: slog.String("path", "/api/v1/signups"), secret: "/api/v1/signups"},
		{name: "version string is kept", attr: slog.String("version", "1.25.7"), secret: "1.25.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", "json", &buf).LogAttrs(context.Background(), slog.LevelInfo, "event", tt.attr)

			out := buf.String()
			if got := strings.Contains(out, tt.secret); got == tt.masked {
				t.Errorf("output = %q, contains %q = %v, want %v", out, tt.secret, got, !tt.masked)
			}
			if tt.masked && !strings.Contains(out, logging.Redacted) {
				t.Errorf("output = %q, want %s marker", out, logging.Redacted)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	first := logging.New("info", "json", &bytes.Buffer{})
	second := logging.New("debug", "json", &bytes.Buffer{})

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{name: "bare context", ctx: context.Background(), want: slog.Default()},
		{name: "stored", ctx: logging.WithLogger(context.Background(), first), want: first},
		{name: "overwritten", ctx: logging.WithLogger(logging.WithLogger(context.Background(), first), second), want: second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := logging.FromContext(tt.ctx); got != tt.want {
				t.Errorf("FromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestOutput_NoFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, closeFn := logging.Output(&buf, logging.RotatingFile{})

	if w != &buf {
		t.Error("Output() wrapped the writer, want it returned unchanged without a file path")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v, want nil", err)
	}
}

func TestOutput_TeesIntoFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.log")

	var buf bytes.Buffer
	w, closeFn := logging.Output(&buf, logging.RotatingFile{Path: path, MaxSizeMB: 1})

	logging.New("info", "json", w).Info("to both")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Errorf("file = %q, want it to contain the message", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("writer = %q, want it to contain the message", buf.String())
	}
}
