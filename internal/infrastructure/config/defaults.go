package config

import "time"

// SetDefaults fills in defaults for any unset values.
func SetDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.spacetraders.io"
	}
	if cfg.API.DispatchInterval == 0 {
		cfg.API.DispatchInterval = 510 * time.Millisecond
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "fleet.db"
	}

	if cfg.Trading.FuelSafetyFloor == 0 {
		cfg.Trading.FuelSafetyFloor = 1000
	}
	if cfg.Trading.LookaheadDepth == 0 {
		cfg.Trading.LookaheadDepth = 2
	}
	if cfg.Trading.ScoutShipType == "" {
		cfg.Trading.ScoutShipType = "JW-MK-I"
	}
	if cfg.Trading.LoanType == "" {
		cfg.Trading.LoanType = "STARTUP"
	}
	if cfg.Trading.ScoutShipyard == "" {
		cfg.Trading.ScoutShipyard = "OE-PM-TR"
	}
	if len(cfg.Trading.ScoutPosts) == 0 {
		cfg.Trading.ScoutPosts = []string{"OE-PM", "OE-NY", "OE-KO", "OE-UC", "OE-CR"}
	}
	if cfg.Trading.TraderShipType == "" {
		cfg.Trading.TraderShipType = "GR-MK-II"
	}
	if cfg.Trading.TraderShipyard == "" {
		cfg.Trading.TraderShipyard = "OE-NY"
	}

	if cfg.Dashboard.Listen == "" {
		cfg.Dashboard.Listen = ":8080"
	}
	if cfg.Dashboard.LeaderboardInterval == 0 {
		cfg.Dashboard.LeaderboardInterval = time.Minute
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
