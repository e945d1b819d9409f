package fleetops

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

// ProvisionConfig describes how a fresh account is bootstrapped.
type ProvisionConfig struct {
	// Username is the operator identity to claim the account under.
	Username string

	// LoanType is the starting loan (the service offers only STARTUP).
	LoanType string

	// ScoutShipType is the cheap cargo-less class bought first.
	ScoutShipType string

	// ScoutShipyard is where scouts are bought.
	ScoutShipyard string

	// ScoutPosts are the locations scouts are parked at. A parked scout
	// keeps its location's market visible to the whole fleet.
	ScoutPosts []string

	// TraderShipType and TraderShipyard describe the first real freighter.
	TraderShipType string
	TraderShipyard string
}

// Provisioner rebuilds an account from nothing: claim a credential,
// persist it, take the starting loan, spread scouts over the market
// locations, and buy the first freighter. Invoked when the remote service
// rejects the current credential.
type Provisioner struct {
	gateway Gateway
	full    ProvisionGateway
	tokens  TokenSink
	store   CredentialStore
	ledger  *trading.Ledger
	logger  *common.Logger
	cfg     ProvisionConfig
}

func NewProvisioner(gateway ProvisionGateway, tokens TokenSink, store CredentialStore,
	ledger *trading.Ledger, logger *common.Logger, cfg ProvisionConfig) *Provisioner {
	return &Provisioner{
		gateway: gateway,
		full:    gateway,
		tokens:  tokens,
		store:   store,
		ledger:  ledger,
		logger:  logger,
		cfg:     cfg,
	}
}

// Provision runs the full bootstrap. Each step's returned balance is
// recorded into the ledger as the new truth.
func (p *Provisioner) Provision(ctx context.Context) error {
	p.logger.Infof("[provision] claiming account %s", p.cfg.Username)
	token, err := p.full.ClaimAccount(ctx, p.cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to claim account: %w", err)
	}
	p.tokens.SetToken(token)
	if err := p.store.SaveCredential(ctx, p.cfg.Username, token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	credits, err := p.full.RequestLoan(ctx, p.cfg.LoanType)
	if err != nil {
		return fmt.Errorf("failed to request loan: %w", err)
	}
	p.ledger.Record(credits)

	locations, err := p.locationIndex(ctx, market.SystemSymbol(p.cfg.ScoutShipyard))
	if err != nil {
		return err
	}

	for _, post := range p.cfg.ScoutPosts {
		if err := p.deployScout(ctx, locations, post); err != nil {
			// A single failed scout is not fatal; the fleet just sees one
			// market less until the next provisioning pass.
			p.logger.LogError(err)
		}
	}

	if p.cfg.TraderShipType != "" {
		_, balance, err := p.full.PurchaseShip(ctx, p.cfg.TraderShipType, p.cfg.TraderShipyard)
		if err != nil {
			return fmt.Errorf("failed to buy trader: %w", err)
		}
		p.ledger.Record(balance)
		p.logger.Infof("[provision] bought %s at %s", p.cfg.TraderShipType, p.cfg.TraderShipyard)
	}
	return nil
}

// deployScout buys one scout at the shipyard and flies it to its post.
func (p *Provisioner) deployScout(ctx context.Context, locations map[string]*market.Location, post string) error {
	scout, balance, err := p.full.PurchaseShip(ctx, p.cfg.ScoutShipType, p.cfg.ScoutShipyard)
	if err != nil {
		return fmt.Errorf("failed to buy scout: %w", err)
	}
	p.ledger.Record(balance)

	if post == p.cfg.ScoutShipyard {
		return nil
	}

	from, to := locations[p.cfg.ScoutShipyard], locations[post]
	if from == nil || to == nil {
		return fmt.Errorf("scout post %s not found in system", post)
	}

	fuel := trading.FuelCost(scout.Type, from, to)
	order, err := p.gateway.PlaceBuyOrder(ctx, scout.ID, market.FuelGood, fuel)
	if err != nil {
		return fmt.Errorf("failed to fuel scout: %w", err)
	}
	p.ledger.Record(order.Credits)

	if _, err := p.gateway.SubmitFlightPlan(ctx, scout.ID, post); err != nil {
		return fmt.Errorf("failed to dispatch scout to %s: %w", post, err)
	}
	p.logger.Infof("[provision] scout %s dispatched to %s", scout.ID, post)
	return nil
}

func (p *Provisioner) locationIndex(ctx context.Context, system string) (map[string]*market.Location, error) {
	locations, err := p.gateway.ListSystemLocations(ctx, system)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations of %s: %w", system, err)
	}
	index := make(map[string]*market.Location, len(locations))
	for i := range locations {
		index[locations[i].Symbol] = &locations[i]
	}
	return index, nil
}
