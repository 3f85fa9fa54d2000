package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read directly by the loader.
const (
	EnvPrefix = "CAREERDESK_"
	EnvConfig = EnvPrefix + "CONFIG"
	EnvDotenv = EnvPrefix + "DOTENV"
	EnvPort   = "PORT"

	defaultDotenv = ".env"
	// maxResults matches the search client's listing cap.
	maxResults = 5
	listSep    = ","
)

// reservedPaths are routes mounted next to the webhook.
var reservedPaths = map[string]struct{}{
	"/":             {},
	"/healthz":      {},
	"/metrics":      {},
	"/api-docs":     {},
	"/openapi.yaml": {},
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. .env file ($CAREERDESK_DOTENV or ./.env), never overriding real env
//  3. file (YAML) if CAREERDESK_CONFIG is set
//  4. env (prefix CAREERDESK_); PORT maps to addr when CAREERDESK_ADDR is unset
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	if err := loadDotenv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like CAREERDESK_SEARCH_TIMEOUT -> search_timeout (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if _, set := os.LookupEnv(EnvPrefix + "ADDR"); !set {
		if port := strings.TrimSpace(os.Getenv(EnvPort)); port != "" {
			cfg.Addr = ":" + port
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// unmarshalConf decodes durations and splits comma-separated env values such
// as CAREERDESK_CORS_ALLOWED_ORIGINS into slices.
func unmarshalConf(out *Config) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(listSep),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           out,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
}

func loadDotenv() error {
	path := os.Getenv(EnvDotenv)
	explicit := path != ""
	if !explicit {
		path = defaultDotenv
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !strings.HasPrefix(c.WebhookPath, "/"):
		return fmt.Errorf("%w: webhook_path must start with /", ErrInvalidConfig)
	case isReserved(c.WebhookPath):
		return fmt.Errorf("%w: webhook_path %q is reserved", ErrInvalidConfig, c.WebhookPath)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	case c.SearchTimeout <= 0:
		return fmt.Errorf("%w: search_timeout must be positive", ErrInvalidConfig)
	case c.SearchMaxResults < 1 || c.SearchMaxResults > maxResults:
		return fmt.Errorf("%w: search_max_results must be between 1 and %d", ErrInvalidConfig, maxResults)
	case c.SearchRatePerSec <= 0 || c.SearchBurst < 1:
		return fmt.Errorf("%w: search_rate_per_sec and search_burst must be positive", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	u, err := url.Parse(c.SearchBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: search_base_url must be an absolute http(s) URL", ErrInvalidConfig)
	}
	return nil
}

func isReserved(path string) bool {
	_, ok := reservedPaths[path]
	return ok
}
