// Command server runs the signup HTTP service. The dependency graph is wired
// with samber/do; stopping the injector drains the server first, then closes
// the email directory, then flushes telemetry.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/tryconstruct/internal/adapters/http"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/store/memory"
	"github.com/jsamuelsen11/tryconstruct/internal/app"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/health"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/logging"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
	"github.com/jsamuelsen11/tryconstruct/internal/validation"
)

// shutdownTimeout bounds the whole stop sequence. Validations still running
// when it expires are cancelled.
const shutdownTimeout = 20 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv(config.EnvPrefix + "PROFILE")
	if profile == "" {
		return fmt.Errorf("%sPROFILE is required (e.g. local, prod)", config.EnvPrefix)
	}
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out, closeLog := logging.Output(os.Stderr, logging.RotatingFile{
		Path:       cfg.Log.File.Path,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	defer func() { _ = closeLog() }()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, out)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel)
	provide(injector)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		shutdown(injector, logger)
		return fmt.Errorf("wiring server: %w", err)
	}
	logger.Info("signup service ready",
		slog.String("profile", profile),
		slog.String("directory", cfg.Directory.Backend),
		slog.Int("max_concurrency", cfg.Validation.MaxConcurrency),
		slog.Duration("lookup_timeout", cfg.Validation.LookupTimeout),
	)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal", slog.Any("cause", context.Cause(ctx)))
	case err = <-serverErr:
		err = fmt.Errorf("server failed: %w", err)
	}

	shutdown(injector, logger)
	if err == nil {
		err = <-serverErr
	}
	logger.Info("shutdown complete")
	return err
}

// shutdown stops every service the injector built, dependents first.
func shutdown(injector *do.RootScope, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if report := injector.ShutdownWithContext(ctx); report != nil && !report.Succeed {
		logger.Error("shutdown incomplete", slog.String("error", report.Error()))
	}
}

func provide(i do.Injector) {
	do.Provide(i, func(i do.Injector) (*telemetry.Metrics, error) {
		return do.MustInvoke[*telemetry.Providers](i).Metrics, nil
	})

	do.Provide(i, func(i do.Injector) (*memory.Store, error) {
		return memory.New(do.MustInvoke[*config.Config](i).Directory.Seed...), nil
	})

	do.Provide(i, func(i do.Injector) (ports.HealthRegistry, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return health.New(health.WithCheckTimeout(cfg.Validation.LookupTimeout)), nil
	})

	do.Provide(i, func(i do.Injector) (*directoryBackend, error) {
		dir, err := newDirectory(context.Background(),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*memory.Store](i),
			do.MustInvoke[*telemetry.Metrics](i),
			do.MustInvoke[*slog.Logger](i),
		)
		if err != nil {
			return nil, err
		}
		do.MustInvoke[ports.HealthRegistry](i).Register(dir.checker)
		return dir, nil
	})

	do.Provide(i, func(i do.Injector) (ports.SignupService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return app.NewSignupService(
			do.MustInvoke[*directoryBackend](i).EmailDirectory,
			do.MustInvoke[*memory.Store](i),
			do.MustInvoke[*telemetry.Metrics](i),
			do.MustInvoke[*slog.Logger](i),
			validation.WithMaxConcurrency(cfg.Validation.MaxConcurrency),
			validation.WithLookupTimeout(cfg.Validation.LookupTimeout),
		), nil
	})

	do.Provide(i, func(i do.Injector) (nethttp.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return adapthttp.NewRouter(
			handlers.NewSignupHandler(do.MustInvoke[ports.SignupService](i)),
			handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(do.MustInvoke[*telemetry.Metrics](i)),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(
			do.MustInvoke[*config.Config](i).Server,
			do.MustInvoke[nethttp.Handler](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

// directoryBackend is the configured email directory together with its
// health checker and whatever must be released at shutdown.
type directoryBackend struct {
	ports.EmailDirectory
	checker ports.HealthChecker
	closer  io.Closer
}

// Shutdown releases the backend's connection, if it holds one.
func (d *directoryBackend) Shutdown() error {
	if d.closer == nil {
		return nil
	}
	if err := d.closer.Close(); err != nil {
		return fmt.Errorf("closing directory: %w", err)
	}
	return nil
}
