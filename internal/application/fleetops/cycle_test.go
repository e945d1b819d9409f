package fleetops_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/fleetops"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

func tradingSystem(gateway *fakeGateway) {
	gateway.systems["OE"] = []market.Location{
		{Symbol: "OE-A", Type: "MOON", X: 0, Y: 0},
		{Symbol: "OE-B", Type: "MOON", X: 30, Y: 40},
	}
	gateway.markets["OE-A"] = []market.Good{
		{Symbol: market.FuelGood, VolumePerUnit: 1, PricePerUnit: 2, PurchasePrice: 2, SellPrice: 1, QuantityAvailable: 5000},
		{Symbol: "METALS", VolumePerUnit: 1, PricePerUnit: 11, PurchasePrice: 10, SellPrice: 8, QuantityAvailable: 1000},
	}
	gateway.markets["OE-B"] = []market.Good{
		{Symbol: market.FuelGood, VolumePerUnit: 1, PricePerUnit: 2, PurchasePrice: 2, SellPrice: 1, QuantityAvailable: 5000},
		{Symbol: "METALS", VolumePerUnit: 1, PricePerUnit: 31, PurchasePrice: 32, SellPrice: 30, QuantityAvailable: 1000},
	}
}

func newCycleFixture(gateway *fakeGateway) (*fleetops.Cycle, *trading.Ledger, *fakeObserver) {
	bus := events.NewBus()
	logger := quietLogger()
	clock := shared.NewMockClock(time.Time{})
	ledger := trading.NewLedger()
	memos := trading.NewPendingTrades()
	observer := &fakeObserver{}

	snapshot := fleetops.NewSnapshot(gateway, logger, bus)
	planner := trading.NewRoutePlanner(1000, 2)
	executor := fleetops.NewTradeExecutor(gateway, ledger, memos, bus, logger, clock, observer)
	provisioner := fleetops.NewProvisioner(gateway, &fakeTokenSink{}, &fakeCredentialStore{},
		ledger, logger, fleetops.ProvisionConfig{Username: "op", LoanType: "STARTUP"})

	cycle := fleetops.NewCycle(gateway, snapshot, planner, executor, ledger, bus, logger, clock,
		observer, provisioner, fleetops.CycleConfig{ScoutShipType: "JW-MK-I"})
	return cycle, ledger, observer
}

type fakeTokenSink struct{ token string }

func (s *fakeTokenSink) SetToken(token string) { s.token = token }

type fakeCredentialStore struct {
	username string
	token    string
}

func (s *fakeCredentialStore) SaveCredential(ctx context.Context, username, token string) error {
	s.username = username
	s.token = token
	return nil
}

func TestRunCycle_PlansAndExecutesTrade(t *testing.T) {
	gateway := newFakeGateway()
	tradingSystem(gateway)
	gateway.ships = []*fleet.Ship{
		{ID: "s1", Type: "GR-MK-II", Speed: 3, MaxCargo: 50, LoadingSpeed: 25, Location: "OE-A"},
		{ID: "scout", Type: "JW-MK-I", Location: "OE-B"},
	}
	cycle, ledger, observer := newCycleFixture(gateway)
	ledger.Record(100000)
	gateway.credits = 100000

	err := cycle.RunCycle(context.Background())
	require.NoError(t, err)

	// The scout's parked market was fetched even though it cannot trade.
	assert.Equal(t, []string{"OE-A", "OE-B"}, gateway.marketCalls)

	// Only the trader flew.
	require.Len(t, gateway.flights, 1)
	assert.Equal(t, "s1", gateway.flights[0].ShipID)
	assert.Equal(t, "OE-B", gateway.flights[0].Good)

	assert.Equal(t, 1, observer.cycles)
	require.NotEmpty(t, observer.credits)
	assert.Equal(t, ledger.Credits(), observer.credits[len(observer.credits)-1])
}

func TestRunCycle_SystemLocationsFetchedOncePerRun(t *testing.T) {
	gateway := newFakeGateway()
	tradingSystem(gateway)
	gateway.ships = []*fleet.Ship{
		{ID: "s1", Type: "GR-MK-II", Speed: 3, MaxCargo: 50, LoadingSpeed: 25, Location: "OE-A"},
	}
	cycle, ledger, _ := newCycleFixture(gateway)
	ledger.Record(100000)

	require.NoError(t, cycle.RunCycle(context.Background()))
	require.NoError(t, cycle.RunCycle(context.Background()))

	// Coordinates never change, so the system list is cached for the run;
	// markets are refreshed every cycle.
	assert.Equal(t, []string{"OE"}, gateway.systemCalls)
	assert.Equal(t, []string{"OE-A", "OE-A"}, gateway.marketCalls)
}

func TestRunCycle_ShipFailureDoesNotAbortFleet(t *testing.T) {
	gateway := newFakeGateway()
	tradingSystem(gateway)
	gateway.ships = []*fleet.Ship{
		{ID: "s1", Type: "GR-MK-II", Speed: 3, MaxCargo: 50, LoadingSpeed: 25, Location: "OE-A"},
		{ID: "s2", Type: "GR-MK-II", Speed: 3, MaxCargo: 50, LoadingSpeed: 25, Location: "OE-A"},
	}
	gateway.flightPlanErr = func(shipID string) error {
		if shipID == "s1" {
			return errors.New("flight rejected")
		}
		return nil
	}
	cycle, ledger, _ := newCycleFixture(gateway)
	ledger.Record(100000)
	gateway.credits = 100000

	err := cycle.RunCycle(context.Background())
	require.NoError(t, err)

	// s1's failure was logged and swallowed; s2 still flew.
	require.Len(t, gateway.flights, 1)
	assert.Equal(t, "s2", gateway.flights[0].ShipID)
}

func TestRunCycle_FleetRefreshFailureReturnsError(t *testing.T) {
	gateway := newFakeGateway()
	gateway.listShipsErr = func() error { return errors.New("service unavailable") }
	cycle, _, _ := newCycleFixture(gateway)

	err := cycle.RunCycle(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh fleet")
}

func TestRunCycle_NoEligibleShipsIsNoop(t *testing.T) {
	gateway := newFakeGateway()
	tradingSystem(gateway)
	gateway.ships = []*fleet.Ship{
		{ID: "scout", Type: "JW-MK-I", Location: "OE-A"},
		{ID: "flying", Type: "GR-MK-II", Location: ""},
	}
	cycle, _, _ := newCycleFixture(gateway)

	err := cycle.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Empty(t, gateway.marketCalls)
	assert.Empty(t, gateway.flights)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	gateway := newFakeGateway()
	cycle, ledger, _ := newCycleFixture(gateway)
	gateway.credits = 42000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cycle.Run(ctx)

	require.NoError(t, err)
	// The initial balance sync still happened.
	assert.Equal(t, 42000, ledger.Credits())
}

func TestRun_InvalidCredentialTriggersProvisioning(t *testing.T) {
	gateway := newFakeGateway()
	tradingSystem(gateway)
	gateway.loanFund = 170000

	credErr := errors.New("token rejected")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gateway.listShipsErr = func() error {
		// Fail once, then stop the loop after provisioning runs.
		cancel()
		return credErr
	}

	bus := events.NewBus()
	logger := quietLogger()
	clock := shared.NewMockClock(time.Time{})
	ledger := trading.NewLedger()
	memos := trading.NewPendingTrades()
	sink := &fakeTokenSink{}
	store := &fakeCredentialStore{}

	snapshot := fleetops.NewSnapshot(gateway, logger, bus)
	planner := trading.NewRoutePlanner(1000, 2)
	executor := fleetops.NewTradeExecutor(gateway, ledger, memos, bus, logger, clock, nil)
	provisioner := fleetops.NewProvisioner(gateway, sink, store, ledger, logger, fleetops.ProvisionConfig{
		Username:      "op",
		LoanType:      "STARTUP",
		ScoutShipType: "JW-MK-I",
		ScoutShipyard: "OE-A",
		ScoutPosts:    []string{"OE-A"},
	})
	cycle := fleetops.NewCycle(gateway, snapshot, planner, executor, ledger, bus, logger, clock,
		nil, provisioner, fleetops.CycleConfig{
			ScoutShipType:     "JW-MK-I",
			CredentialInvalid: func(err error) bool { return errors.Is(err, credErr) },
		})

	err := cycle.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, "claimed-token", sink.token)
	assert.Equal(t, "op", store.username)
	assert.Equal(t, "claimed-token", store.token)
}
