package fleetops

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/shared"
)

// Snapshot is the per-cycle cache of location and market data. Location
// records are immutable and cached for the whole run; marketplace listings
// are replaced on every refresh so all ships of a cycle plan against one
// consistent view.
type Snapshot struct {
	gateway Gateway
	logger  *common.Logger
	bus     *events.Bus

	// rawLocations survives across cycles: coordinates never change.
	rawLocations map[string]*market.Location

	// Rebuilt on every refresh.
	bySystem   map[string][]*market.MarketLocation
	byLocation map[string]*market.MarketLocation
}

func NewSnapshot(gateway Gateway, logger *common.Logger, bus *events.Bus) *Snapshot {
	return &Snapshot{
		gateway:      gateway,
		logger:       logger,
		bus:          bus,
		rawLocations: make(map[string]*market.Location),
		bySystem:     make(map[string][]*market.MarketLocation),
		byLocation:   make(map[string]*market.MarketLocation),
	}
}

// Refresh rebuilds the snapshot for one cycle. It visits the distinct
// locations currently occupied by the given ships, restricted to the
// requested systems, fetching each system's location list at most once per
// run and each occupied location's market exactly once per cycle. Every
// fetch completes before Refresh returns, so the optimizer never sees a
// partially populated snapshot.
func (s *Snapshot) Refresh(ctx context.Context, ships []*fleet.Ship, systems map[string]bool) error {
	var markets []*market.MarketLocation

	seen := make(map[string]bool)
	for _, ship := range ships {
		locSymbol := ship.Location
		if locSymbol == "" || seen[locSymbol] {
			continue
		}
		seen[locSymbol] = true

		sys := market.SystemSymbol(locSymbol)
		if !systems[sys] {
			continue
		}

		if _, known := s.rawLocations[locSymbol]; !known {
			locations, err := s.gateway.ListSystemLocations(ctx, sys)
			if err != nil {
				return fmt.Errorf("failed to refresh system %s: %w", sys, err)
			}
			for i := range locations {
				loc := locations[i]
				s.rawLocations[loc.Symbol] = &loc
			}
		}

		loc, ok := s.rawLocations[locSymbol]
		if !ok {
			return shared.NewUnknownLocationError(locSymbol)
		}

		listings, err := s.gateway.GetMarketplace(ctx, locSymbol)
		if err != nil {
			return fmt.Errorf("failed to refresh market at %s: %w", locSymbol, err)
		}

		markets = append(markets, &market.MarketLocation{
			Location:    *loc,
			Marketplace: listings,
		})
	}

	s.bus.Publish(events.Event{Type: events.TypeMarket, Data: events.Market(markets)})

	s.bySystem = make(map[string][]*market.MarketLocation)
	s.byLocation = make(map[string]*market.MarketLocation)
	for _, m := range markets {
		sys := market.SystemSymbol(m.Symbol)
		s.bySystem[sys] = append(s.bySystem[sys], m)
		s.byLocation[m.Symbol] = m
	}
	return nil
}

// Location returns the refreshed market location for a symbol, or nil if it
// was not part of this cycle's refresh.
func (s *Snapshot) Location(symbol string) *market.MarketLocation {
	return s.byLocation[symbol]
}

// SystemMarkets returns this cycle's market locations for a system.
func (s *Snapshot) SystemMarkets(system string) []*market.MarketLocation {
	return s.bySystem[system]
}
