package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment override, e.g. APP_SERVER_PORT.
const EnvPrefix = "APP_"

const defaultConfigDir = "configs"

// listKeys take a comma-separated list when set from the environment.
var listKeys = map[string]bool{
	"directory.seed": true,
}

var errReadBytes = errors.New("defaults provider does not support ReadBytes")

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir reads base.yaml and the profile file from dir instead of
// ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// Load builds the configuration for profile. Later layers win:
//
//	defaults < {dir}/base.yaml < {dir}/{profile}.yaml < APP_* environment
//
// An environment variable names a key by replacing its dots with
// underscores, so APP_VALIDATION_LOOKUP_TIMEOUT sets
// validation.lookup_timeout. Keys are matched against those already loaded,
// which keeps underscores inside a key name from being read as nesting.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	if err := k.Load(defaultsProvider{}, nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.configDir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	keys := newEnvKeys(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{Prefix: EnvPrefix, TransformFunc: keys.transform}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for profile %q: %w", profile, err)
	}
	return &cfg, nil
}

// validateProfile rejects names that could escape the config directory.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a plain file name", profile)
	}
	return nil
}

// envKeys maps the underscore form of each known key to the key itself:
// "server_read_timeout" to "server.read_timeout".
type envKeys map[string]string

func newEnvKeys(known []string) envKeys {
	m := make(envKeys, len(known))
	for _, key := range known {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

// transform turns APP_SERVER_READ_TIMEOUT into server.read_timeout. Unknown
// names fall back to treating every underscore as nesting.
func (m envKeys) transform(name, value string) (string, any) {
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key, ok := m[name]
	if !ok {
		return strings.ReplaceAll(name, "_", "."), value
	}
	if listKeys[key] {
		return key, splitList(value)
	}
	return key, value
}

// splitList splits a comma-separated value, trimming blanks and dropping
// empty items.
func splitList(value string) []string {
	out := []string{}
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
