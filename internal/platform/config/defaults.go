package config

import "github.com/knadh/koanf/maps"

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitRPS   = 50.0
	defaultRateLimitBurst = 10

	defaultLogFileMaxSizeMB  = 100
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAgeDays = 28

	defaultValidationMaxConcurrency = 8
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":             "info",
		"log.format":            "json",
		"log.file.path":         "",
		"log.file.max_size_mb":  defaultLogFileMaxSizeMB,
		"log.file.max_backups":  defaultLogFileMaxBackups,
		"log.file.max_age_days": defaultLogFileMaxAgeDays,
		"log.file.compress":     false,

		"client.base_url":                        "http://localhost:8081",
		"client.timeout":                         "30s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "10s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  defaultRateLimitRPS,
		"client.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "tryconstruct",

		"validation.max_concurrency": defaultValidationMaxConcurrency,
		"validation.lookup_timeout":  "2s",

		"directory.backend":   DirectoryMemory,
		"directory.redis_url": "",
		"directory.redis_key": "tryconstruct:emails",
		"directory.seed":      []string{},
	}
}

// defaultsProvider feeds defaults() to koanf as the lowest layer.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytes
}

func (defaultsProvider) Read() (map[string]any, error) {
	return maps.Unflatten(defaults(), "."), nil
}
