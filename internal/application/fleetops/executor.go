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

// TradeExecutor drives one ship through a planned route: sell the hold,
// top up fuel, buy the chosen good, submit the flight. Side effects are
// strictly ordered; selling funds the refuel, the refuel precedes the buy,
// and nothing flies before it is paid for.
type TradeExecutor struct {
	gateway  Gateway
	ledger   *trading.Ledger
	memos    *trading.PendingTrades
	bus      *events.Bus
	logger   *common.Logger
	clock    shared.Clock
	observer CycleObserver
}

func NewTradeExecutor(gateway Gateway, ledger *trading.Ledger, memos *trading.PendingTrades,
	bus *events.Bus, logger *common.Logger, clock shared.Clock, observer CycleObserver) *TradeExecutor {
	return &TradeExecutor{
		gateway:  gateway,
		ledger:   ledger,
		memos:    memos,
		bus:      bus,
		logger:   logger,
		clock:    clock,
		observer: observer,
	}
}

// Execute runs one ship's trade for this cycle. start must be the ship's
// refreshed market location and route the optimizer's decision for it.
func (e *TradeExecutor) Execute(ctx context.Context, ship *fleet.Ship, start *market.MarketLocation, route *trading.Route) error {
	destination := route.Destination
	fuelCost := trading.OutboundFuel(ship, &start.Location, &destination.Location)

	// Sell everything aboard. Fuel short of the outbound requirement stays
	// aboard and is topped up below instead of being resold and rebought.
	fuelAboard := 0
	proceeds := 0
	for _, cargo := range ship.Cargo {
		if cargo.Good == market.FuelGood && cargo.Quantity < fuelCost {
			fuelAboard = cargo.Quantity
			continue
		}
		total, err := e.placeChunked(ctx, ship, cargo.Good, cargo.Quantity, e.gateway.PlaceSellOrder)
		if err != nil {
			return fmt.Errorf("failed to sell %s: %w", cargo.Good, err)
		}
		proceeds += total
	}
	ship.Cargo = nil

	if memo := e.memos.Close(ship.ID); memo != nil {
		gain, elapsed := memo.RealizedGain(proceeds, e.clock.Now())
		e.logger.Infof("[fleet] %s made %d (%.1f/s) from %s",
			ship.ID, gain, float64(gain)/elapsed.Seconds(), memo.Good)
		if e.observer != nil {
			e.observer.ObserveTrade(memo.Good, gain)
		}
	}

	buyCount := 0
	if route.Good != nil {
		buyCount = (ship.MaxCargo - fuelCost) / route.Good.VolumePerUnit
		if route.Good.PricePerUnit > 0 {
			if affordable := e.ledger.Credits() / route.Good.PricePerUnit; affordable < buyCount {
				buyCount = affordable
			}
		}

		// Being unable to afford cargo is not an error; the ship just sits
		// out this cycle.
		if buyCount == 0 {
			e.logger.Infof("[fleet] %s cannot afford %s, skipping", ship.ID, route.Good.Symbol)
			return nil
		}

		// The route would lose money, so reposition without buying.
		if route.Gain <= 0 {
			buyCount = 0
		}
	}

	if shortfall := fuelCost - fuelAboard; shortfall > 0 {
		if _, err := e.placeChunked(ctx, ship, market.FuelGood, shortfall, e.gateway.PlaceBuyOrder); err != nil {
			return fmt.Errorf("failed to refuel: %w", err)
		}
	}

	if buyCount != 0 {
		totalCost, err := e.placeChunked(ctx, ship, route.Good.Symbol, buyCount, e.gateway.PlaceBuyOrder)
		if err != nil {
			return fmt.Errorf("failed to buy %s: %w", route.Good.Symbol, err)
		}
		e.memos.Open(ship.ID, route.Good.Symbol, totalCost, e.clock.Now())
		e.logger.Infof("[fleet] %s trip %s -> %s %s", ship.ID, start.Symbol, destination.Symbol, route.Good.Symbol)
	} else {
		e.logger.Infof("[fleet] %s trip %s -> %s", ship.ID, start.Symbol, destination.Symbol)
	}

	plan, err := e.gateway.SubmitFlightPlan(ctx, ship.ID, destination.Symbol)
	if err != nil {
		return fmt.Errorf("failed to submit flight plan: %w", err)
	}

	e.bus.Publish(events.Event{Type: events.TypeFlight, Data: events.Flight{
		From: start,
		To:   destination,
		Plan: plan,
		Ship: ship,
		Gain: route.Gain,
	}})
	return nil
}

// placeChunked splits an order into loading-speed-sized chunks so no single
// remote order exceeds the ship's per-order limit, and accumulates the
// totals. The chunk quantities always sum to the requested quantity. Each
// confirmed chunk's returned balance is recorded into the ledger.
func (e *TradeExecutor) placeChunked(ctx context.Context, ship *fleet.Ship, good string, quantity int,
	place func(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error)) (total int, err error) {
	for remaining := quantity; remaining > 0; {
		chunk := remaining
		if chunk > ship.LoadingSpeed {
			chunk = ship.LoadingSpeed
		}

		order, err := place(ctx, ship.ID, good, chunk)
		if err != nil {
			return total, err
		}

		total += order.Total
		e.ledger.Record(order.Credits)
		remaining -= chunk
	}
	return total, nil
}
