package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/trading"
)

const (
	defaultBaseURL = "https://api.spacetraders.io"
	defaultTimeout = 30 * time.Second
)

// RequestObserver receives the outcome of every dispatched request.
// Implemented by the metrics collector; nil disables observation.
type RequestObserver interface {
	ObserveRequest(method, operation string, err error)
}

// Client is the typed gateway to the remote market simulation. Every call
// funnels through the shared Limiter, so the fleet cycle, the dashboard
// leaderboard poller, and any CLI query all share one dispatch lane.
//
// The client never retries: transport failures and domain errors surface
// to the caller, and the next fleet cycle is the retry policy.
type Client struct {
	httpClient *http.Client
	limiter    *Limiter
	baseURL    string
	logger     *common.Logger
	observer   RequestObserver

	mu    sync.RWMutex
	token string
}

// NewClient creates a gateway using the given dispatch limiter. logger and
// observer may be nil.
func NewClient(baseURL string, limiter *Limiter, token string, logger *common.Logger, observer RequestObserver) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    limiter,
		baseURL:    baseURL,
		logger:     logger,
		observer:   observer,
		token:      token,
	}
}

// SetTimeout overrides the per-request transport timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetToken replaces the credential used for authenticated calls. Called by
// the provisioning flow after claiming a fresh account.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClaimAccount registers a new account for the username and returns its
// credential. The only unauthenticated operation.
func (c *Client) ClaimAccount(ctx context.Context, username string) (string, error) {
	var response struct {
		Token string `json:"token"`
	}
	path := fmt.Sprintf("/users/%s/claim", url.PathEscape(username))
	if err := c.request(ctx, "POST", "claim-account", path, nil, false, &response); err != nil {
		return "", fmt.Errorf("failed to claim account: %w", err)
	}
	return response.Token, nil
}

// GetAccount fetches the operator's account summary, including the
// authoritative credit balance.
func (c *Client) GetAccount(ctx context.Context) (*fleet.Account, error) {
	var response struct {
		User fleet.Account `json:"user"`
	}
	if err := c.request(ctx, "GET", "get-account", "/my/account", nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &response.User, nil
}

// ListShips fetches the whole fleet.
func (c *Client) ListShips(ctx context.Context) ([]*fleet.Ship, error) {
	var response struct {
		Ships []*fleet.Ship `json:"ships"`
	}
	if err := c.request(ctx, "GET", "list-ships", "/my/ships", nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}
	return response.Ships, nil
}

// GetLocation fetches a single location.
func (c *Client) GetLocation(ctx context.Context, symbol string) (*market.Location, error) {
	var response struct {
		Location market.Location `json:"location"`
	}
	path := fmt.Sprintf("/locations/%s", url.PathEscape(symbol))
	if err := c.request(ctx, "GET", "get-location", path, nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", symbol, err)
	}
	return &response.Location, nil
}

// ListSystemLocations fetches every location of a system.
func (c *Client) ListSystemLocations(ctx context.Context, system string) ([]market.Location, error) {
	var response struct {
		Locations []market.Location `json:"locations"`
	}
	path := fmt.Sprintf("/systems/%s/locations", url.PathEscape(system))
	if err := c.request(ctx, "GET", "list-system-locations", path, nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to list locations of %s: %w", system, err)
	}
	return response.Locations, nil
}

// GetMarketplace fetches the current marketplace listings at a location.
func (c *Client) GetMarketplace(ctx context.Context, location string) ([]market.Good, error) {
	var response struct {
		Marketplace []market.Good `json:"marketplace"`
	}
	path := fmt.Sprintf("/locations/%s/marketplace", url.PathEscape(location))
	if err := c.request(ctx, "GET", "get-marketplace", path, nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to get marketplace at %s: %w", location, err)
	}
	return response.Marketplace, nil
}

// SubmitFlightPlan starts a flight to the destination and returns the
// confirmed plan.
func (c *Client) SubmitFlightPlan(ctx context.Context, shipID, destination string) (*fleet.FlightPlan, error) {
	var response struct {
		FlightPlan fleet.FlightPlan `json:"flightPlan"`
	}
	query := url.Values{"shipId": {shipID}, "destination": {destination}}
	if err := c.request(ctx, "POST", "submit-flight-plan", "/my/flight-plans", query, true, &response); err != nil {
		return nil, fmt.Errorf("failed to submit flight plan: %w", err)
	}
	return &response.FlightPlan, nil
}

// PlaceBuyOrder places a single purchase order. Quantity must not exceed
// the ship's loading speed; chunking larger orders is the caller's job.
func (c *Client) PlaceBuyOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error) {
	return c.placeOrder(ctx, "place-buy-order", "/my/purchase-orders", shipID, good, quantity)
}

// PlaceSellOrder places a single sell order, with the same quantity limit
// as PlaceBuyOrder.
func (c *Client) PlaceSellOrder(ctx context.Context, shipID, good string, quantity int) (*trading.OrderResult, error) {
	return c.placeOrder(ctx, "place-sell-order", "/my/sell-orders", shipID, good, quantity)
}

func (c *Client) placeOrder(ctx context.Context, op, path, shipID, good string, quantity int) (*trading.OrderResult, error) {
	var response struct {
		Credits int `json:"credits"`
		Order   struct {
			Good         string `json:"good"`
			Quantity     int    `json:"quantity"`
			PricePerUnit int    `json:"pricePerUnit"`
			Total        int    `json:"total"`
		} `json:"order"`
	}
	query := url.Values{
		"shipId":   {shipID},
		"good":     {good},
		"quantity": {fmt.Sprintf("%d", quantity)},
	}
	if err := c.request(ctx, "POST", op, path, query, true, &response); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &trading.OrderResult{
		Good:         response.Order.Good,
		Quantity:     response.Order.Quantity,
		PricePerUnit: response.Order.PricePerUnit,
		Total:        response.Order.Total,
		Credits:      response.Credits,
	}, nil
}

// RequestLoan takes out a loan and returns the new credit balance.
func (c *Client) RequestLoan(ctx context.Context, loanType string) (int, error) {
	var response struct {
		Credits int `json:"credits"`
	}
	query := url.Values{"type": {loanType}}
	if err := c.request(ctx, "POST", "request-loan", "/my/loans", query, true, &response); err != nil {
		return 0, fmt.Errorf("failed to request loan: %w", err)
	}
	return response.Credits, nil
}

// PurchaseShip buys a ship of the given type at a shipyard location and
// returns the new ship plus the post-purchase credit balance.
func (c *Client) PurchaseShip(ctx context.Context, shipType, location string) (*fleet.Ship, int, error) {
	var response struct {
		Credits int        `json:"credits"`
		Ship    fleet.Ship `json:"ship"`
	}
	query := url.Values{"type": {shipType}, "location": {location}}
	if err := c.request(ctx, "POST", "purchase-ship", "/my/ships", query, true, &response); err != nil {
		return nil, 0, fmt.Errorf("failed to purchase ship: %w", err)
	}
	return &response.Ship, response.Credits, nil
}

// GetLeaderboard fetches the net-worth leaderboard.
func (c *Client) GetLeaderboard(ctx context.Context) ([]fleet.LeaderboardEntry, error) {
	var response struct {
		NetWorth []fleet.LeaderboardEntry `json:"netWorth"`
	}
	if err := c.request(ctx, "GET", "get-leaderboard", "/game/leaderboard/net-worth", nil, true, &response); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return response.NetWorth, nil
}

// request dispatches one remote call through the limiter lane. The remote
// service reports domain errors as an {error:{code,message}} envelope, so
// the body is decoded twice: once for the envelope, once for the result.
func (c *Client) request(ctx context.Context, method, operation, path string, query url.Values, authed bool, result any) (err error) {
	defer func() {
		if c.observer != nil {
			c.observer.ObserveRequest(method, operation, err)
		}
	}()

	if err = c.limiter.Acquire(ctx); err != nil {
		return fmt.Errorf("dispatch not admitted: %w", err)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.currentToken())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("transport error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.logger != nil {
		c.logger.Tracef("[API] %s %s", method, fullURL)
	}

	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err = json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err)
	}
	if envelope.Error != nil {
		if c.logger != nil {
			c.logger.Errorf("[API] %d %s", envelope.Error.Code, envelope.Error.Message)
		}
		return envelope.Error
	}

	if result != nil {
		if err = json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
