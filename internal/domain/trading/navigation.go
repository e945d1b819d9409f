package trading

import (
	"math"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
)

const (
	// flightTimeOffset is the fixed overhead added to every flight,
	// regardless of distance.
	flightTimeOffset = 30

	// defaultFuelDivider converts distance into fuel burn for ship classes
	// without a specific entry in the table below.
	defaultFuelDivider = 7.5
)

// TravelTime estimates the seconds a flight takes for a ship of the given
// speed.
func TravelTime(speed int, from, to *market.Location) int {
	d := float64(market.Distance(from, to))
	return int(math.Round(d*3/float64(speed))) + flightTimeOffset
}

// FuelCost estimates the fuel a flight consumes. Heavier hulls burn less
// per unit distance but pay a larger penalty for planetary takeoff. The
// constants were measured against the live service, not derived.
func FuelCost(shipType string, from, to *market.Location) int {
	divider := defaultFuelDivider
	penalty := 0
	fromPlanet := from.IsPlanet()

	switch shipType {
	case "HM-MK-III":
		divider = 10
		if fromPlanet {
			penalty = 1
		}
	case "GR-MK-III":
		if fromPlanet {
			penalty = 4
		}
	case "GR-MK-II":
		if fromPlanet {
			penalty = 3
		}
	default:
		if fromPlanet {
			penalty = 2
		}
	}

	d := float64(market.Distance(from, to))
	return int(math.Round(d/divider)) + penalty + 1
}

// OutboundFuel is the fuel requirement for a ship's next flight, used both
// for route scoring and for the refuel step of execution.
func OutboundFuel(ship *fleet.Ship, from, to *market.Location) int {
	return FuelCost(ship.Type, from, to)
}
