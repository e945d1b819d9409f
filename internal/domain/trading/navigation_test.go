package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

func TestTravelTime(t *testing.T) {
	from := &market.Location{X: 0, Y: 0}
	to := &market.Location{X: 6, Y: 8} // distance 10

	// round(10*3/2) + 30
	assert.Equal(t, 45, trading.TravelTime(2, from, to))

	// zero distance still pays the fixed overhead
	assert.Equal(t, 30, trading.TravelTime(2, from, from))
}

func TestFuelCost_ByShipClass(t *testing.T) {
	planet := &market.Location{Type: "PLANET", X: 0, Y: 0}
	moon := &market.Location{Type: "MOON", X: 0, Y: 0}
	to := &market.Location{X: 12, Y: 16} // distance 20

	tests := []struct {
		name     string
		shipType string
		from     *market.Location
		want     int
	}{
		{"heavy freighter burns less per distance", "HM-MK-III", planet, 4},
		{"heavy freighter off-planet", "HM-MK-III", moon, 3},
		{"gravager mk3 takeoff penalty", "GR-MK-III", planet, 8},
		{"gravager mk2 takeoff penalty", "GR-MK-II", planet, 7},
		{"gravager mk2 off-planet", "GR-MK-II", moon, 4},
		{"unknown class default", "EM-MK-I", planet, 6},
		{"unknown class off-planet", "EM-MK-I", moon, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trading.FuelCost(tt.shipType, tt.from, to))
		})
	}
}

func TestOutboundFuel_UsesShipType(t *testing.T) {
	ship := &fleet.Ship{Type: "GR-MK-II"}
	planet := &market.Location{Type: "PLANET", X: 0, Y: 0}
	to := &market.Location{X: 12, Y: 16}

	assert.Equal(t, trading.FuelCost("GR-MK-II", planet, to), trading.OutboundFuel(ship, planet, to))
}
