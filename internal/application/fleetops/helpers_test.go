package fleetops_test

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

// orderCall records one buy or sell dispatched through the fake gateway.
type orderCall struct {
	ShipID   string
	Good     string
	Quantity int
}

// fakeGateway implements the gateway ports with programmable responses and
// full call recording.
type fakeGateway struct {
	account  *fleet.Account
	ships    []*fleet.Ship
	systems  map[string][]market.Location
	markets  map[string][]market.Good
	credits  int
	token    string
	shipSeq  int
	loanFund int

	listShipsErr  func() error
	flightPlanErr func(shipID string) error

	systemCalls []string
	marketCalls []string
	buys        []orderCall
	sells       []orderCall
	flights     []orderCall // Good field carries the destination
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		systems: make(map[string][]market.Location),
		markets: make(map[string][]market.Good),
		token:   "claimed-token",
		credits: 100000,
	}
}

func (f *fakeGateway) GetAccount(ctx context.Context) (*fleet.Account, error) {
	if f.account == nil {
		return &fleet.Account{Username: "op", Credits: f.credits}, nil
	}
	return f.account, nil
}

func (f *fakeGateway) ListShips(ctx context.Context) ([]*fleet.Ship, error) {
	if f.listShipsErr != nil {
		if err := f.listShipsErr(); err != nil {
			return nil, err
		}
	}
	return f.ships, nil
}

func (f *fakeGateway) ListSystemLocations(ctx context.Context, system string) ([]market.Location, error) {
	f.systemCalls = append(f.systemCalls, system)
	return f.systems[system], nil
}

func (f *fakeGateway) GetMarketplace(ctx context.Context, location string) ([]market.Good, error) {
	f.marketCalls = append(f.marketCalls, location)
	goods, ok := f.markets[location]
	if !ok {
		return nil, fmt.Errorf("no market at %s", location)
	}
	return goods, nil
}

func (f *fakeGateway) SubmitFlightPlan(ctx context.Context, shipID, destination string) (*fleet.FlightPlan, error) {
	if f.flightPlanErr != nil {
		if err := f.flightPlanErr(shipID); err != nil {
			return nil, err
		}
	}
	f.flights = append(f.flights, orderCall{ShipID: shipID, Good: destination})
	return &fleet.FlightPlan{ID: "fp-" + shipID, ShipID: shipID, Destination: destination}, nil
}

func (f *fakeGateway) PlaceBuyOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error) {
	f.buys = append(f.buys, orderCall{ShipID: shipID, Good: good, Quantity: quantity})
	total := quantity * f.unitPrice(good)
	f.credits -= total
	return &trading.OrderResult{
		Good: good, Quantity: quantity, PricePerUnit: f.unitPrice(good),
		Total: total, Credits: f.credits,
	}, nil
}

func (f *fakeGateway) PlaceSellOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error) {
	f.sells = append(f.sells, orderCall{ShipID: shipID, Good: good, Quantity: quantity})
	total := quantity * f.unitPrice(good)
	f.credits += total
	return &trading.OrderResult{
		Good: good, Quantity: quantity, PricePerUnit: f.unitPrice(good),
		Total: total, Credits: f.credits,
	}, nil
}

func (f *fakeGateway) ClaimAccount(ctx context.Context, username string) (string, error) {
	return f.token, nil
}

func (f *fakeGateway) RequestLoan(ctx context.Context, loanType string) (int, error) {
	f.credits += f.loanFund
	return f.credits, nil
}

func (f *fakeGateway) PurchaseShip(ctx context.Context, shipType, location string) (*fleet.Ship, int, error) {
	f.shipSeq++
	f.credits -= 10000
	ship := &fleet.Ship{
		ID: fmt.Sprintf("bought-%d", f.shipSeq), Type: shipType, Location: location,
		Speed: 1, MaxCargo: 50, LoadingSpeed: 25,
	}
	return ship, f.credits, nil
}

// unitPrice is a flat per-good price table keyed by first letter, enough
// for chunk totals to sum deterministically.
func (f *fakeGateway) unitPrice(good string) int {
	if good == market.FuelGood {
		return 2
	}
	return 10
}

// fakeObserver records cycle observer callbacks.
type fakeObserver struct {
	cycles  int
	credits []int
	trades  []orderCall // Quantity field carries the realized gain
}

func (o *fakeObserver) ObserveCycle(d time.Duration) { o.cycles++ }

func (o *fakeObserver) SetCredits(credits int) { o.credits = append(o.credits, credits) }
func (o *fakeObserver) ObserveTrade(good string, realizedGain int) {
	o.trades = append(o.trades, orderCall{Good: good, Quantity: realizedGain})
}

func quietLogger() *common.Logger {
	return common.NewTestLogger(io.Discard)
}
