package fleetops

import (
	"context"
	"time"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

// Gateway is the remote command capability the fleet cycle consumes. The
// API adapter implements it; tests substitute fakes.
type Gateway interface {
	GetAccount(ctx context.Context) (*fleet.Account, error)
	ListShips(ctx context.Context) ([]*fleet.Ship, error)
	ListSystemLocations(ctx context.Context, system string) ([]market.Location, error)
	GetMarketplace(ctx context.Context, location string) ([]market.Good, error)
	SubmitFlightPlan(ctx context.Context, shipID, destination string) (*fleet.FlightPlan, error)
	PlaceBuyOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error)
	PlaceSellOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error)
}

// ProvisionGateway is the wider capability the re-provisioning flow needs
// on top of Gateway.
type ProvisionGateway interface {
	Gateway
	ClaimAccount(ctx context.Context, username string) (string, error)
	RequestLoan(ctx context.Context, loanType string) (int, error)
	PurchaseShip(ctx context.Context, shipType, location string) (*fleet.Ship, int, error)
}

// TokenSink receives a freshly claimed credential so subsequent gateway
// calls authenticate with it.
type TokenSink interface {
	SetToken(token string)
}

// CredentialStore durably records the operator's current credential.
type CredentialStore interface {
	SaveCredential(ctx context.Context, username, token string) error
}

// CycleObserver receives cycle-level measurements. Implemented by the
// metrics collector; a nil observer disables measurement.
type CycleObserver interface {
	ObserveCycle(d time.Duration)
	SetCredits(credits int)
	ObserveTrade(good string, realizedGain int)
}
