package config

import "time"

// DashboardConfig holds the web dashboard and leaderboard tracker
// configuration.
type DashboardConfig struct {
	// Enabled starts the HTTP/websocket server.
	Enabled bool `mapstructure:"enabled"`

	// Listen address, e.g. ":8080".
	Listen string `mapstructure:"listen"`

	// StaticDir serves the dashboard frontend bundle if non-empty.
	StaticDir string `mapstructure:"static_dir"`

	// LeaderboardInterval is how often the net-worth leaderboard is
	// polled and snapshotted.
	LeaderboardInterval time.Duration `mapstructure:"leaderboard_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Minimum level written to the terminal: trace, info, warning, error.
	Level string `mapstructure:"level" validate:"required,oneof=trace info warning error"`
}
