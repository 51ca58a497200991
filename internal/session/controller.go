// Package session implements the client session and view controller: it
// owns the current view, the authenticated session, and the backend-fed
// caches, and mediates every network call the UI triggers.
package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Canzo32/farmer-web/internal/api"
	"github.com/Canzo32/farmer-web/internal/logging"
	"github.com/Canzo32/farmer-web/internal/types"
)

// View is the screen currently presented to the user.
type View string

const (
	ViewHome        View = "home"
	ViewLogin       View = "login"
	ViewRegister    View = "register"
	ViewDashboard   View = "dashboard"
	ViewAddProduce  View = "add-produce"
	ViewMarketplace View = "marketplace"
)

// Order preflight failures. These never reach the network.
var (
	ErrLoginRequired = errors.New("Please login to place an order")
	ErrBuyersOnly    = errors.New("Only buyers can place orders")
)

// Backend is the slice of the API client the controller needs. The real
// *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	SetToken(token string)
	Login(ctx context.Context, in types.LoginInput) (*types.AuthResponse, error)
	Register(ctx context.Context, in types.RegisterInput) (*types.AuthResponse, error)
	Me(ctx context.Context) (*types.UserProfile, error)
	ListProduce(ctx context.Context, q api.CatalogQuery) ([]types.ProduceListing, error)
	FarmerProduce(ctx context.Context, farmerID string) ([]types.ProduceListing, error)
	CreateProduce(ctx context.Context, in types.ProduceCreate) (*types.ProduceListing, error)
	UpdateProduce(ctx context.Context, id string, in types.ProduceCreate) (*types.ProduceListing, error)
	ListOrders(ctx context.Context) ([]types.Order, error)
	CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status types.OrderStatus) (*types.Order, error)
	DashboardStats(ctx context.Context) (*types.DashboardStats, error)
}

// TokenStore abstracts the persisted credential slot.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Controller holds all mutable application state. State transitions are
// serialized by the UI runtime; the mutex exists because operations run in
// command goroutines while the render loop reads snapshots.
type Controller struct {
	client Backend
	tokens TokenStore

	mu      sync.RWMutex
	view    View
	user    *types.UserProfile
	token   string
	loading bool

	// Backend-authoritative caches, refreshed wholesale on view entry.
	stats      types.DashboardStats
	orders     []types.Order
	myProduce  []types.ProduceListing
	allProduce []types.ProduceListing
	filtered   []types.ProduceListing
	filters    Filters
}

// NewController wires the controller to its collaborators. The initial
// view is home with an empty session.
func NewController(client Backend, tokens TokenStore) *Controller {
	return &Controller{
		client: client,
		tokens: tokens,
		view:   ViewHome,
	}
}

// View returns the current screen.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// User returns the authenticated profile, or nil.
func (c *Controller) User() *types.UserProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Authenticated reports whether a session is populated.
func (c *Controller) Authenticated() bool {
	return c.User() != nil
}

// Loading reports whether a form submission is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Navigate requests a view transition. Transitions are unconditional except
// entering the dashboard, which is a no-op without a populated session.
func (c *Controller) Navigate(v View) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v == ViewDashboard && c.user == nil {
		return c.view
	}
	c.view = v
	return c.view
}

func (c *Controller) setLoading(on bool) {
	c.mu.Lock()
	c.loading = on
	c.mu.Unlock()
}

// ResolveSession restores a persisted session at startup. Any failure,
// from a missing profile to a dead network, forces a logout so a token
// never outlives its user.
func (c *Controller) ResolveSession(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		logging.Get("session").Warnw("failed to read stored token", "err", err)
		return nil
	}
	if token == "" {
		return nil
	}

	c.client.SetToken(token)
	user, err := c.client.Me(ctx)
	if err != nil {
		logging.Get("session").Infow("stored token rejected, logging out", "err", err)
		c.Logout()
		return err
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	return nil
}

// Login authenticates and, on success, persists the token and lands on the
// dashboard. The loading flag covers the request on every path.
func (c *Controller) Login(ctx context.Context, in types.LoginInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.client.Login(ctx, in)
	if err != nil {
		return err
	}
	c.adoptSession(resp)
	return nil
}

// Register creates an account with the same contract as Login.
func (c *Controller) Register(ctx context.Context, in types.RegisterInput) error {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.client.Register(ctx, in)
	if err != nil {
		return err
	}
	c.adoptSession(resp)
	return nil
}

// adoptSession installs a fresh token+user pair and moves to the dashboard.
func (c *Controller) adoptSession(resp *types.AuthResponse) {
	c.client.SetToken(resp.AccessToken)
	if err := c.tokens.Save(resp.AccessToken); err != nil {
		// A session that does not survive restart is still a session.
		logging.Get("session").Warnw("failed to persist token", "err", err)
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	user := resp.User
	c.user = &user
	c.view = ViewDashboard
	c.mu.Unlock()
}

// Logout clears the session, removes the persisted token and returns home.
// Idempotent: calling it logged out only resets the view.
func (c *Controller) Logout() {
	c.client.SetToken("")
	if err := c.tokens.Clear(); err != nil {
		logging.Get("session").Warnw("failed to clear stored token", "err", err)
	}

	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.view = ViewHome
	c.stats = types.DashboardStats{}
	c.orders = nil
	c.myProduce = nil
	c.mu.Unlock()
}

// CreateProduceListing validates the form, posts the listing and returns
// to the dashboard on success. On failure the caller stays on the form.
func (c *Controller) CreateProduceListing(ctx context.Context, in types.ProduceInput) error {
	payload, err := in.Parsed()
	if err != nil {
		return err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	if _, err := c.client.CreateProduce(ctx, payload); err != nil {
		return err
	}

	c.mu.Lock()
	c.view = ViewDashboard
	c.mu.Unlock()
	return nil
}

// UpdateProduceListing edits an owned listing in place.
func (c *Controller) UpdateProduceListing(ctx context.Context, id string, in types.ProduceInput) error {
	payload, err := in.Parsed()
	if err != nil {
		return err
	}
	_, err = c.client.UpdateProduce(ctx, id, payload)
	return err
}

// LoadDashboard refreshes the dashboard caches. Stats and orders are
// fetched concurrently with no mutual ordering; the farmer listing fetch
// only starts once both resolve. Each fetch populates its cache
// independently, so one failure never empties a sibling's data: failures
// are logged and swallowed.
func (c *Controller) LoadDashboard(ctx context.Context) {
	log := logging.Get("session")

	var g errgroup.Group
	g.Go(func() error {
		stats, err := c.client.DashboardStats(ctx)
		if err != nil {
			log.Warnw("dashboard stats fetch failed", "err", err)
			return nil
		}
		c.mu.Lock()
		c.stats = *stats
		c.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		orders, err := c.client.ListOrders(ctx)
		if err != nil {
			log.Warnw("orders fetch failed", "err", err)
			return nil
		}
		c.mu.Lock()
		c.orders = orders
		c.mu.Unlock()
		return nil
	})
	_ = g.Wait()

	user := c.User()
	if user == nil || user.Role != types.RoleFarmer {
		return
	}
	listings, err := c.client.FarmerProduce(ctx, user.ID)
	if err != nil {
		log.Warnw("farmer produce fetch failed", "err", err)
		return
	}
	c.mu.Lock()
	c.myProduce = listings
	c.mu.Unlock()
}

// Stats returns the dashboard counters cache.
func (c *Controller) Stats() types.DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Orders returns the order cache.
func (c *Controller) Orders() []types.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// MyProduce returns the farmer listing cache.
func (c *Controller) MyProduce() []types.ProduceListing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.ProduceListing, len(c.myProduce))
	copy(out, c.myProduce)
	return out
}

// LoadMarketplace refreshes the catalog wholesale and re-derives the
// filtered view under the current criteria.
func (c *Controller) LoadMarketplace(ctx context.Context) error {
	listings, err := c.client.ListProduce(ctx, api.CatalogQuery{})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.allProduce = listings
	c.filtered = Filter(c.allProduce, c.filters)
	c.mu.Unlock()
	return nil
}

// ApplyFilters replaces the current criteria and recomputes the filtered
// catalog locally. No network call is involved.
func (c *Controller) ApplyFilters(f Filters) {
	c.mu.Lock()
	c.filters = f
	c.filtered = Filter(c.allProduce, f)
	c.mu.Unlock()
}

// CurrentFilters returns the active criteria.
func (c *Controller) CurrentFilters() Filters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// Catalog returns the unfiltered marketplace cache.
func (c *Controller) Catalog() []types.ProduceListing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.ProduceListing, len(c.allProduce))
	copy(out, c.allProduce)
	return out
}

// FilteredCatalog returns the locally filtered marketplace view.
func (c *Controller) FilteredCatalog() []types.ProduceListing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.ProduceListing, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// PlaceOrder posts an order for a listing. Unauthenticated or non-buyer
// callers are rejected before any request is issued. The listing quantity
// is not decremented locally; the next catalog refresh reflects it.
func (c *Controller) PlaceOrder(ctx context.Context, produceID string, quantity int) error {
	user := c.User()
	if user == nil {
		return ErrLoginRequired
	}
	if user.Role != types.RoleBuyer {
		return ErrBuyersOnly
	}
	if quantity <= 0 {
		quantity = 1
	}

	_, err := c.client.CreateOrder(ctx, types.OrderCreate{
		ProduceID: produceID,
		Quantity:  quantity,
	})
	return err
}

// AdvanceOrder moves an order to a new backend-owned status, e.g. a farmer
// confirming a pending order from the dashboard.
func (c *Controller) AdvanceOrder(ctx context.Context, orderID string, status types.OrderStatus) error {
	if c.User() == nil {
		return ErrLoginRequired
	}
	_, err := c.client.UpdateOrderStatus(ctx, orderID, status)
	return err
}
