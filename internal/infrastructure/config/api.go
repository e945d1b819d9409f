package config

import "time"

// APIConfig holds remote service client configuration.
type APIConfig struct {
	// Base URL for the market simulation API.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Minimum spacing between outbound dispatches. All remote calls share
	// one lane; this is the global throughput ceiling.
	DispatchInterval time.Duration `mapstructure:"dispatch_interval" validate:"required"`

	// Per-request transport timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}
