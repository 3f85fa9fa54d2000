package config

import "errors"

// Errors returned by Load and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig wraps every rejected careerdesk setting.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading .env, YAML or env sources.
	ErrLoadConfig = errors.New("load config failed")
)
