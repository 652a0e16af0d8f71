package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/tryconstruct/internal/adapters/clients/directory"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/store/memory"
	"github.com/jsamuelsen11/tryconstruct/internal/adapters/store/redis"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/config"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/httpclient"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/telemetry"
)

// newDirectory builds the email directory named by cfg.Directory.Backend.
// The memory backend is the signup store itself, so a registered email is
// taken for every later signup. Seed emails are loaded into Redis when that
// backend is chosen; the http backend owns its own data.
func newDirectory(
	ctx context.Context,
	cfg *config.Config,
	store *memory.Store,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) (*directoryBackend, error) {
	switch cfg.Directory.Backend {
	case config.DirectoryMemory:
		return &directoryBackend{EmailDirectory: store, checker: store}, nil

	case config.DirectoryHTTP:
		client := httpclient.New(&cfg.Client, directory.ServiceName,
			httpclient.WithMetrics(metrics),
			httpclient.WithLogger(logger),
		)
		dir := directory.NewClient(client, logger)
		return &directoryBackend{EmailDirectory: dir, checker: dir}, nil

	case config.DirectoryRedis:
		conn, err := redis.Connect(cfg.Directory.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis directory: %w", err)
		}
		dir := redis.NewDirectory(conn, cfg.Directory.RedisKey)
		if len(cfg.Directory.Seed) > 0 {
			if err := dir.Add(ctx, cfg.Directory.Seed...); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("seeding redis directory: %w", err)
			}
		}
		return &directoryBackend{EmailDirectory: dir, checker: dir, closer: conn}, nil

	default:
		return nil, fmt.Errorf("unknown directory backend %q", cfg.Directory.Backend)
	}
}
