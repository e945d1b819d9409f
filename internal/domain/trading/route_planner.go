package trading

import (
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
)

// Route is a single planning decision: fly to Destination, optionally
// carrying Good. Gain is the immediate edge's expected credits per second;
// the lookahead score used for ranking is never reported. A Route is
// consumed by one executor invocation and then discarded.
type Route struct {
	Destination *market.MarketLocation
	Good        *market.Good // nil means a pure repositioning move
	Gain        float64
}

// RoutePlanner scores candidate trade routes for one ship against a fixed
// market snapshot. It is a pure domain service: no I/O, deterministic for a
// given snapshot, safe to call repeatedly.
type RoutePlanner struct {
	fuelSafetyFloor int
	lookaheadDepth  int
}

// NewRoutePlanner creates a planner. fuelSafetyFloor is the minimum fuel
// availability a destination must list before it is considered reachable;
// lookaheadDepth is the number of hops scored (1 = greedy, 2 = default).
func NewRoutePlanner(fuelSafetyFloor, lookaheadDepth int) *RoutePlanner {
	if lookaheadDepth < 1 {
		lookaheadDepth = 1
	}
	return &RoutePlanner{
		fuelSafetyFloor: fuelSafetyFloor,
		lookaheadDepth:  lookaheadDepth,
	}
}

// BestRoute returns the highest-value route from start across neighbors
// (the other market locations of the ship's system), or nil when every
// candidate edge yields non-positive gain (saturated market).
func (p *RoutePlanner) BestRoute(ship *fleet.Ship, start *market.MarketLocation, neighbors []*market.MarketLocation) *Route {
	return p.bestRoute(ship, start, neighbors, p.lookaheadDepth)
}

func (p *RoutePlanner) bestRoute(ship *fleet.Ship, start *market.MarketLocation, neighbors []*market.MarketLocation, depth int) *Route {
	var best *Route
	bestGain := 0.0

	for _, end := range neighbors {
		if end.Symbol == start.Symbol {
			continue
		}

		good, gain, ok := p.scoreEdge(ship, start, end)
		if !ok {
			continue
		}

		totalGain := gain
		if depth > 1 {
			// Average the immediate gain with the best continuation from
			// the candidate destination. The continuation only influences
			// ranking; the reported gain stays local.
			continuation := 0.0
			if sub := p.bestRoute(ship, end, neighbors, depth-1); sub != nil {
				continuation = sub.Gain
			}
			totalGain = (gain + continuation) / 2
		}

		if totalGain > bestGain {
			best = &Route{
				Destination: end,
				Good:        good,
				Gain:        gain,
			}
			bestGain = totalGain
		}
	}

	return best
}

// scoreEdge scores the single flight start->end. It returns the most
// profitable good to carry (nil when the move would be pure repositioning)
// and the expected gain in credits per second. ok is false when the edge is
// rejected outright because the destination is fuel-starved: flying there
// risks stranding the ship.
func (p *RoutePlanner) scoreEdge(ship *fleet.Ship, start, end *market.MarketLocation) (best *market.Good, gain float64, ok bool) {
	time := TravelTime(ship.Speed, &start.Location, &end.Location)
	fuel := OutboundFuel(ship, &start.Location, &end.Location)
	fuelCost := fuel * start.FuelPrice()
	freeCargo := ship.MaxCargo - fuel

	for i := range end.Marketplace {
		item := &end.Marketplace[i]

		if item.Symbol == market.FuelGood && item.QuantityAvailable < p.fuelSafetyFloor {
			return nil, 0, false
		}

		source := start.Listing(item.Symbol)
		if source == nil || item.VolumePerUnit < 1 {
			continue
		}

		// Skip goods the source cannot supply a full hold of.
		if source.QuantityAvailable*item.VolumePerUnit < freeCargo {
			continue
		}

		units := freeCargo / item.VolumePerUnit
		g := (float64(units*(item.SellPrice-source.PurchasePrice)) - float64(fuelCost)) / float64(time)

		if g > gain {
			best = item
			gain = g
		}
	}

	return best, gain, true
}
