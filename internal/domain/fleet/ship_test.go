package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
)

func TestStationed(t *testing.T) {
	docked := &fleet.Ship{ID: "s1", Location: "OE-PM"}
	inTransit := &fleet.Ship{ID: "s2", Location: ""}

	assert.True(t, docked.Stationed())
	assert.False(t, inTransit.Stationed())
}

func TestFuelAboard(t *testing.T) {
	ship := &fleet.Ship{
		Cargo: []fleet.Cargo{
			{Good: "METALS", Quantity: 40},
			{Good: "FUEL", Quantity: 7},
		},
	}
	assert.Equal(t, 7, ship.FuelAboard("FUEL"))

	empty := &fleet.Ship{}
	assert.Equal(t, 0, empty.FuelAboard("FUEL"))
}

func TestEligible_FiltersScoutsAndTransit(t *testing.T) {
	ships := []*fleet.Ship{
		{ID: "trader", Type: "GR-MK-II", Location: "OE-PM"},
		{ID: "scout", Type: "JW-MK-I", Location: "OE-NY"},
		{ID: "flying", Type: "GR-MK-II", Location: ""},
	}

	eligible := fleet.Eligible(ships, "JW-MK-I")

	assert.Len(t, eligible, 1)
	assert.Equal(t, "trader", eligible[0].ID)
}

func TestEligible_EmptyFleet(t *testing.T) {
	assert.Empty(t, fleet.Eligible(nil, "JW-MK-I"))
}
