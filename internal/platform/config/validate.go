package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate reports every invalid setting at once, each named by its key.
func (c *Config) Validate() error {
	var p problems

	p.check(c.Server.Port >= 1 && c.Server.Port <= 65535, "server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	p.check(c.Server.ReadTimeout > 0, "server.read_timeout", "must be positive")
	p.check(c.Server.WriteTimeout > 0, "server.write_timeout", "must be positive")

	p.oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
	p.oneOf("log.format", c.Log.Format, "json", "text")
	if c.Log.File.Path != "" {
		p.check(c.Log.File.MaxSizeMB >= 1, "log.file.max_size_mb", "must be at least 1, got %d", c.Log.File.MaxSizeMB)
	}

	p.absoluteURL("client.base_url", c.Client.BaseURL, "http", "https")
	p.check(c.Client.Timeout > 0, "client.timeout", "must be positive")
	p.check(c.Client.Retry.MaxAttempts >= 1, "client.retry.max_attempts", "must be at least 1, got %d", c.Client.Retry.MaxAttempts)
	p.check(c.Client.Retry.Multiplier > 0, "client.retry.multiplier", "must be positive, got %g", c.Client.Retry.Multiplier)
	p.check(c.Client.CircuitBreaker.MaxFailures >= 1, "client.circuit_breaker.max_failures",
		"must be at least 1, got %d", c.Client.CircuitBreaker.MaxFailures)
	p.check(c.Client.RateLimit.RequestsPerSecond >= 0, "client.rate_limit.requests_per_second",
		"must not be negative, got %g", c.Client.RateLimit.RequestsPerSecond)
	if c.Client.RateLimit.RequestsPerSecond > 0 {
		p.check(c.Client.RateLimit.BurstSize >= 1, "client.rate_limit.burst_size", "must be at least 1, got %d", c.Client.RateLimit.BurstSize)
	}

	if c.Telemetry.Enabled {
		p.oneOf("telemetry.exporter", c.Telemetry.Exporter, "stdout", "otlp")
		if c.Telemetry.Exporter == "otlp" {
			p.check(c.Telemetry.Endpoint != "", "telemetry.endpoint", "must be set for the otlp exporter")
		}
	}

	p.check(c.Validation.MaxConcurrency >= 0, "validation.max_concurrency", "must not be negative, got %d", c.Validation.MaxConcurrency)
	p.check(c.Validation.LookupTimeout >= 0, "validation.lookup_timeout", "must not be negative, got %s", c.Validation.LookupTimeout)

	p.oneOf("directory.backend", c.Directory.Backend, DirectoryMemory, DirectoryHTTP, DirectoryRedis)
	if c.Directory.Backend == DirectoryRedis {
		p.absoluteURL("directory.redis_url", c.Directory.RedisURL, "redis", "rediss")
		p.check(c.Directory.RedisKey != "", "directory.redis_key", "must be set for the redis backend")
	}

	return errors.Join(p...)
}

// problems collects one error per failed check.
type problems []error

func (p *problems) check(ok bool, key, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf("%s %s", key, fmt.Sprintf(format, args...)))
	}
}

func (p *problems) oneOf(key, got string, allowed ...string) {
	p.check(slices.Contains(allowed, got), key, "must be one of: %s; got %q", strings.Join(allowed, ", "), got)
}

func (p *problems) absoluteURL(key, raw string, schemes ...string) {
	if raw == "" {
		p.check(false, key, "must be set")
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		p.check(false, key, "is not a URL: %v", err)
		return
	}
	p.check(slices.Contains(schemes, u.Scheme) && u.Host != "", key,
		"must be an absolute %s URL, got %q", strings.Join(schemes, " or "), raw)
}
