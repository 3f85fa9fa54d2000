// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New(ctx) to build a Config with defaults.
//   - Functions accept context.Context as the first parameter.
//   - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WebhookPath is the fulfillment route.
	WebhookPath string `koanf:"webhook_path"`

	// SourceTag is echoed in the source field of every reply.
	SourceTag string `koanf:"source_tag"`

	// Timezone names the zone the eligibility year is read in. Interview
	// slots are always proposed at +05:30.
	Timezone string `koanf:"timezone"`

	// CORSAllowedOrigins lists allowed browser origins; "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// SearchBaseURL is the external listings search page.
	SearchBaseURL string `koanf:"search_base_url"`

	// SearchTimeout bounds one listings fetch.
	SearchTimeout time.Duration `koanf:"search_timeout"`

	// SearchMaxResults caps scraped listings per reply.
	SearchMaxResults int `koanf:"search_max_results"`

	// SearchRatePerSec and SearchBurst shape outbound fetches.
	SearchRatePerSec float64 `koanf:"search_rate_per_sec"`
	SearchBurst      int     `koanf:"search_burst"`

	// SearchUserAgent is sent with every listings fetch.
	SearchUserAgent string `koanf:"search_user_agent"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MetricsRefreshInterval sets how often system gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":8080",
		WebhookPath:            "/df-webhook",
		SourceTag:              "careers-demo-webhook",
		Timezone:               "Asia/Kolkata",
		CORSAllowedOrigins:     []string{"*"},
		SearchBaseURL:          "https://careers.example.com/search",
		SearchTimeout:          8 * time.Second,
		SearchMaxResults:       5,
		SearchRatePerSec:       5,
		SearchBurst:            5,
		SearchUserAgent:        "careerdesk-webhook/1.0",
		ShutdownTimeout:        10 * time.Second,
		MetricsRefreshInterval: 10 * time.Second,
	}
}
