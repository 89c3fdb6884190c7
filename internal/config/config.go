// Package config resolves runtime settings from defaults, an optional YAML
// file and VITRINE_* environment variables. Command-line flags are applied on
// top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/vitrine/pkg/debounce"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/templates"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit path is given and it exists in the
// working directory.
const DefaultFile = "vitrine.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VITRINE_"

// Config is the resolved runtime configuration.
type Config struct {
	Debounce          time.Duration `mapstructure:"debounce"`
	AutoRun           bool          `mapstructure:"auto_run"`
	Wrap              bool          `mapstructure:"wrap"`
	Template          string        `mapstructure:"template"`
	Debug             bool          `mapstructure:"debug"`
	Metrics           bool          `mapstructure:"metrics"`
	OpenAPIValidation bool          `mapstructure:"openapi_validation"`
	HTTP              HTTPConfig    `mapstructure:"http"`
	Redis             RedisConfig   `mapstructure:"redis"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig configures the optional Redis display publisher.
// An empty URL disables it.
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Debounce:          debounce.DefaultDelay,
		AutoRun:           true,
		Wrap:              true,
		Template:          templates.Default,
		Metrics:           true,
		OpenAPIValidation: true,
		HTTP:              HTTPConfig{Addr: ":8080"},
		Redis:             RedisConfig{Channel: "vitrine:preview"},
	}
}

// Preferences extracts the session toggles.
func (c Config) Preferences() domain.Preferences {
	return domain.Preferences{AutoRun: c.AutoRun, Wrap: c.Wrap}
}

// Validate reports settings no component could start with.
func (c Config) Validate() error {
	var errs []error
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive, got %s", c.Debounce))
	}
	if c.Template != "" {
		if _, err := templates.Get(c.Template); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Redis.URL != "" && c.Redis.Channel == "" {
		errs = append(errs, errors.New("redis.channel is required when redis.url is set"))
	}
	return errors.Join(errs...)
}

// Load resolves the configuration. An empty path falls back to DefaultFile
// when present; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := decode(envValues(os.LookupEnv), &cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, cfg.Validate()
}

func decodeYAML(raw []byte, cfg *Config) error {
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return err
	}
	return decode(values, cfg)
}

func decode(values map[string]any, cfg *Config) error {
	if len(values) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// envKeys maps environment suffixes to configuration paths.
var envKeys = map[string][]string{
	"DEBOUNCE":           {"debounce"},
	"AUTO_RUN":           {"auto_run"},
	"WRAP":               {"wrap"},
	"TEMPLATE":           {"template"},
	"DEBUG":              {"debug"},
	"METRICS":            {"metrics"},
	"OPENAPI_VALIDATION": {"openapi_validation"},
	"HTTP_ADDR":          {"http", "addr"},
	"REDIS_URL":          {"redis", "url"},
	"REDIS_CHANNEL":      {"redis", "channel"},
}

// envValues builds a nested map shaped like the YAML file, so both sources
// share one decode path.
func envValues(lookup func(string) (string, bool)) map[string]any {
	values := map[string]any{}
	for suffix, path := range envKeys {
		v, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		m := values
		for _, key := range path[:len(path)-1] {
			next, ok := m[key].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[key] = next
			}
			m = next
		}
		m[path[len(path)-1]] = v
	}
	return values
}
