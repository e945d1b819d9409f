package fleetops

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

// Cycle is the outer planning loop: refresh fleet and market state, then
// plan and execute one trade per eligible ship. One cycle runs to
// completion before the next begins; ships are processed strictly in
// order because each trade mutates the shared ledger and the next ship's
// affordability check must see it.
type Cycle struct {
	gateway     Gateway
	snapshot    *Snapshot
	planner     *trading.RoutePlanner
	executor    *TradeExecutor
	ledger      *trading.Ledger
	bus         *events.Bus
	logger      *common.Logger
	clock       shared.Clock
	observer    CycleObserver
	provisioner *Provisioner

	// scoutType names the non-tradable scout class excluded from planning.
	scoutType string

	// credentialInvalid classifies the domain error that triggers
	// re-provisioning. Wired to the API adapter's classifier.
	credentialInvalid func(error) bool
}

type CycleConfig struct {
	ScoutShipType     string
	CredentialInvalid func(error) bool
}

func NewCycle(gateway Gateway, snapshot *Snapshot, planner *trading.RoutePlanner, executor *TradeExecutor,
	ledger *trading.Ledger, bus *events.Bus, logger *common.Logger, clock shared.Clock,
	observer CycleObserver, provisioner *Provisioner, cfg CycleConfig) *Cycle {
	credentialInvalid := cfg.CredentialInvalid
	if credentialInvalid == nil {
		credentialInvalid = func(error) bool { return false }
	}
	return &Cycle{
		gateway:           gateway,
		snapshot:          snapshot,
		planner:           planner,
		executor:          executor,
		ledger:            ledger,
		bus:               bus,
		logger:            logger,
		clock:             clock,
		observer:          observer,
		provisioner:       provisioner,
		scoutType:         cfg.ScoutShipType,
		credentialInvalid: credentialInvalid,
	}
}

// Run executes cycles until the context is cancelled. Cancellation is
// cooperative: it is checked between cycles, so an in-progress cycle
// finishes. An invalid-credential error triggers the provisioning flow;
// any other cycle-level error is logged and the next cycle retries
// naturally.
func (c *Cycle) Run(ctx context.Context) error {
	if account, err := c.gateway.GetAccount(ctx); err == nil {
		c.ledger.Record(account.Credits)
	} else if !c.credentialInvalid(err) {
		c.logger.LogError(err)
	}

	lastCredits := -1
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := c.RunCycle(ctx)
		switch {
		case err == nil:
		case c.credentialInvalid(err):
			c.logger.Warnf("[fleet] credential rejected, provisioning a new account")
			if provErr := c.provisioner.Provision(ctx); provErr != nil {
				c.logger.LogError(provErr)
			}
		case ctx.Err() != nil:
			return nil
		default:
			c.logger.LogError(err)
		}

		if credits := c.ledger.Credits(); credits != lastCredits {
			c.logger.Infof("[fleet] credits: %d", credits)
			lastCredits = credits
		}
	}
}

// RunCycle performs one full planning cycle. A failure in one ship's trade
// is caught, logged, and never aborts the rest of the fleet; only
// cycle-level failures (fleet or snapshot refresh) are returned.
func (c *Cycle) RunCycle(ctx context.Context) error {
	started := c.clock.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveCycle(c.clock.Now().Sub(started))
			c.observer.SetCredits(c.ledger.Credits())
		}
	}()

	ships, err := c.gateway.ListShips(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh fleet: %w", err)
	}

	c.bus.Publish(events.Event{Type: events.TypeInfo, Data: events.Info{
		Credits: c.ledger.Credits(),
		Ships:   ships,
	}})

	eligible := fleet.Eligible(ships, c.scoutType)
	if len(eligible) == 0 {
		return nil
	}

	systems := make(map[string]bool)
	for _, ship := range eligible {
		systems[market.SystemSymbol(ship.Location)] = true
	}

	c.logger.Infof("[fleet] refreshing markets")
	// The whole fleet feeds the snapshot: scouts parked at a location make
	// its market visible to every trader in the system.
	if err := c.snapshot.Refresh(ctx, ships, systems); err != nil {
		return err
	}

	for _, ship := range eligible {
		if err := c.planAndExecute(ctx, ship); err != nil {
			c.logger.LogError(err)
		}
	}
	return nil
}

func (c *Cycle) planAndExecute(ctx context.Context, ship *fleet.Ship) error {
	start := c.snapshot.Location(ship.Location)
	if start == nil {
		return shared.NewUnknownLocationError(ship.Location)
	}

	neighbors := c.snapshot.SystemMarkets(market.SystemSymbol(ship.Location))
	route := c.planner.BestRoute(ship, start, neighbors)
	if route == nil {
		// Market is saturated; nothing profitable anywhere.
		c.logger.Infof("[fleet] %s skipped route", ship.ID)
		return nil
	}

	return c.executor.Execute(ctx, ship, start, route)
}
