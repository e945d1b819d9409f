package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/fleetops"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
	"github.com/andrescamacho/spacetraders-fleet/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-fleet/internal/infrastructure/database"
)

// app holds the wired object graph shared by the CLI commands.
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	bus       *events.Bus
	logger    *common.Logger
	clock     shared.Clock
	collector *metrics.Collector
	client    *api.Client
	ledger    *trading.Ledger

	operators    *persistence.GormOperatorRepository
	leaderboards *persistence.GormLeaderboardRepository

	provisioner *fleetops.Provisioner
	cycle       *fleetops.Cycle
}

// buildApp loads configuration and wires every adapter to the fleet cycle.
// The stored credential, when present, seeds the API client; an empty or
// stale credential is healed by the provisioning flow on first rejection.
func buildApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	logger := common.NewLogger(cfg.Logging.Level, bus)
	clock := shared.NewRealClock()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	operators := persistence.NewGormOperatorRepository(db)
	leaderboards := persistence.NewGormLeaderboardRepository(db)

	token, err := operators.FindCredential(ctx, cfg.Operator.Username)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	collector := metrics.NewCollector()

	limiter := api.NewLimiter(cfg.API.DispatchInterval)
	client := api.NewClient(cfg.API.BaseURL, limiter, token, logger, collector)
	client.SetTimeout(cfg.API.Timeout)

	ledger := trading.NewLedger()
	memos := trading.NewPendingTrades()

	planner := trading.NewRoutePlanner(cfg.Trading.FuelSafetyFloor, cfg.Trading.LookaheadDepth)
	snapshot := fleetops.NewSnapshot(client, logger, bus)
	executor := fleetops.NewTradeExecutor(client, ledger, memos, bus, logger, clock, collector)

	provisioner := fleetops.NewProvisioner(client, client, operators, ledger, logger, fleetops.ProvisionConfig{
		Username:       cfg.Operator.Username,
		LoanType:       cfg.Trading.LoanType,
		ScoutShipType:  cfg.Trading.ScoutShipType,
		ScoutShipyard:  cfg.Trading.ScoutShipyard,
		ScoutPosts:     cfg.Trading.ScoutPosts,
		TraderShipType: cfg.Trading.TraderShipType,
		TraderShipyard: cfg.Trading.TraderShipyard,
	})

	cycle := fleetops.NewCycle(client, snapshot, planner, executor, ledger, bus, logger, clock,
		collector, provisioner, fleetops.CycleConfig{
			ScoutShipType:     cfg.Trading.ScoutShipType,
			CredentialInvalid: api.IsInvalidToken,
		})

	return &app{
		cfg:          cfg,
		db:           db,
		bus:          bus,
		logger:       logger,
		clock:        clock,
		collector:    collector,
		client:       client,
		ledger:       ledger,
		operators:    operators,
		leaderboards: leaderboards,
		provisioner:  provisioner,
		cycle:        cycle,
	}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.logger.LogError(err)
	}
}
