// Package api implements the typed HTTP client for the AgriMarket backend.
// Every call carries a correlation ID, authenticated calls carry the bearer
// token, and non-success responses are reduced to a single human-readable
// message via APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Canzo32/farmer-web/internal/logging"
	"github.com/Canzo32/farmer-web/internal/types"
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for a locally running backend.
func DefaultConfig(baseURL string) Config {
	if baseURL == "" {
		baseURL = "http://localhost:8000/api"
	}
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// Client talks to the marketplace backend. Safe for concurrent use; the
// token is guarded because the dashboard refresh issues parallel requests.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client with default settings.
func New(baseURL string) *Client {
	return NewWithConfig(DefaultConfig(baseURL))
}

// NewWithConfig creates a client with custom settings.
func NewWithConfig(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SetToken installs the bearer token used on authenticated requests.
// An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues a request and decodes the response into out (when non-nil).
// Non-2xx responses come back as *APIError with fallback applied.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, fallback string) error {
	log := logging.Get("api")

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debugw("request complete",
		"method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data, fallback)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a token and profile. The token is NOT
// installed on the client; that is the session controller's decision.
func (c *Client) Login(ctx context.Context, in types.LoginInput) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &resp, "Login failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its first token and profile.
func (c *Client) Register(ctx context.Context, in types.RegisterInput) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &resp, "Registration failed"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me resolves the profile behind the installed token.
func (c *Client) Me(ctx context.Context) (*types.UserProfile, error) {
	var user types.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, "Could not validate credentials"); err != nil {
		return nil, err
	}
	return &user, nil
}

// CatalogQuery narrows ListProduce server-side. Zero values are omitted;
// the interactive marketplace filters locally and leaves this empty.
type CatalogQuery struct {
	Category types.Category
	Region   types.Region
	Search   string
}

func (q CatalogQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", string(q.Category))
	}
	if q.Region != "" {
		v.Set("region", string(q.Region))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListProduce fetches the available catalog.
func (c *Client) ListProduce(ctx context.Context, q CatalogQuery) ([]types.ProduceListing, error) {
	var listings []types.ProduceListing
	if err := c.do(ctx, http.MethodGet, "/produce"+q.encode(), nil, &listings, "Failed to load produce"); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetProduce fetches a single listing by ID.
func (c *Client) GetProduce(ctx context.Context, id string) (*types.ProduceListing, error) {
	var listing types.ProduceListing
	if err := c.do(ctx, http.MethodGet, "/produce/"+id, nil, &listing, "Produce not found"); err != nil {
		return nil, err
	}
	return &listing, nil
}

// FarmerProduce fetches every listing belonging to a farmer.
func (c *Client) FarmerProduce(ctx context.Context, farmerID string) ([]types.ProduceListing, error) {
	var listings []types.ProduceListing
	if err := c.do(ctx, http.MethodGet, "/produce/farmer/"+farmerID, nil, &listings, "Failed to load produce"); err != nil {
		return nil, err
	}
	return listings, nil
}

// CreateProduce posts a new listing.
func (c *Client) CreateProduce(ctx context.Context, in types.ProduceCreate) (*types.ProduceListing, error) {
	var listing types.ProduceListing
	if err := c.do(ctx, http.MethodPost, "/produce", in, &listing, "Failed to create produce listing"); err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateProduce replaces an owned listing's fields.
func (c *Client) UpdateProduce(ctx context.Context, id string, in types.ProduceCreate) (*types.ProduceListing, error) {
	var listing types.ProduceListing
	if err := c.do(ctx, http.MethodPut, "/produce/"+id, in, &listing, "Failed to update produce listing"); err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListOrders fetches the caller's orders (buyer or farmer side).
func (c *Client) ListOrders(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, "Failed to load orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order for a listing.
func (c *Client) CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error) {
	var order types.Order
	if err := c.do(ctx, http.MethodPost, "/orders", in, &order, "Error placing order"); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus advances an order's backend-owned status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status types.OrderStatus) (*types.Order, error) {
	var order types.Order
	path := "/orders/" + id + "/status?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodPut, path, nil, &order, "Failed to update order"); err != nil {
		return nil, err
	}
	return &order, nil
}

// DashboardStats fetches the role-dependent aggregate counters.
func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats, "Failed to load stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}
