package config

// TradingConfig tunes route planning and provisioning.
type TradingConfig struct {
	// FuelSafetyFloor rejects destinations whose fuel availability is
	// below this many units, to avoid stranding ships. A heuristic
	// threshold, not derived from any ship's actual need.
	FuelSafetyFloor int `mapstructure:"fuel_safety_floor" validate:"min=0"`

	// LookaheadDepth is the number of hops the route planner scores.
	LookaheadDepth int `mapstructure:"lookahead_depth" validate:"min=1"`

	// ScoutShipType is the cargo-less class excluded from trading.
	ScoutShipType string `mapstructure:"scout_ship_type" validate:"required"`

	// LoanType requested when bootstrapping an account.
	LoanType string `mapstructure:"loan_type" validate:"required"`

	// ScoutShipyard is where scouts are bought during provisioning.
	ScoutShipyard string `mapstructure:"scout_shipyard" validate:"required"`

	// ScoutPosts are the locations scouts are parked at.
	ScoutPosts []string `mapstructure:"scout_posts"`

	// First freighter bought during provisioning.
	TraderShipType string `mapstructure:"trader_ship_type"`
	TraderShipyard string `mapstructure:"trader_shipyard"`
}
