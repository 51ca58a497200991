package main

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Canzo32/farmer-web/cmd/agrimarket/ui"
	"github.com/Canzo32/farmer-web/internal/api"
	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

// stubBackend serves canned data so app flows run without a server.
type stubBackend struct {
	authResp *types.AuthResponse
	authErr  error
	listings []types.ProduceListing
	orders   []types.Order
	stats    types.DashboardStats
}

func (s *stubBackend) SetToken(string) {}

func (s *stubBackend) Login(ctx context.Context, in types.LoginInput) (*types.AuthResponse, error) {
	return s.authResp, s.authErr
}

func (s *stubBackend) Register(ctx context.Context, in types.RegisterInput) (*types.AuthResponse, error) {
	return s.authResp, s.authErr
}

func (s *stubBackend) Me(ctx context.Context) (*types.UserProfile, error) {
	if s.authResp == nil {
		return nil, s.authErr
	}
	u := s.authResp.User
	return &u, nil
}

func (s *stubBackend) ListProduce(ctx context.Context, q api.CatalogQuery) ([]types.ProduceListing, error) {
	return s.listings, nil
}

func (s *stubBackend) FarmerProduce(ctx context.Context, farmerID string) ([]types.ProduceListing, error) {
	return nil, nil
}

func (s *stubBackend) CreateProduce(ctx context.Context, in types.ProduceCreate) (*types.ProduceListing, error) {
	return &types.ProduceListing{Title: in.Title}, nil
}

func (s *stubBackend) UpdateProduce(ctx context.Context, id string, in types.ProduceCreate) (*types.ProduceListing, error) {
	return &types.ProduceListing{ID: id}, nil
}

func (s *stubBackend) ListOrders(ctx context.Context) ([]types.Order, error) {
	return s.orders, nil
}

func (s *stubBackend) CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error) {
	return &types.Order{ProduceID: in.ProduceID, Quantity: in.Quantity}, nil
}

func (s *stubBackend) UpdateOrderStatus(ctx context.Context, id string, status types.OrderStatus) (*types.Order, error) {
	return &types.Order{ID: id, Status: status}, nil
}

func (s *stubBackend) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	stats := s.stats
	return &stats, nil
}

type nullTokenStore struct{ token string }

func (s *nullTokenStore) Load() (string, error) { return s.token, nil }
func (s *nullTokenStore) Save(token string) error {
	s.token = token
	return nil
}
func (s *nullTokenStore) Clear() error {
	s.token = ""
	return nil
}

func newTestApp(backend session.Backend) appModel {
	styles := ui.DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return appModel{
		controller:  session.NewController(backend, &nullTokenStore{}),
		styles:      styles,
		spinner:     sp,
		home:        ui.NewHomePageModel(styles),
		login:       ui.NewLoginPageModel(styles),
		register:    ui.NewRegisterPageModel(styles),
		dashboard:   ui.NewDashboardPageModel(styles),
		produceForm: ui.NewProduceFormPageModel(styles),
		marketplace: ui.NewMarketplacePageModel(styles),
	}
}

// pump runs a command tree and returns the produced messages.
func pump(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, pump(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds application messages back into the model, chasing
// follow-up commands until the model settles. Runtime plumbing such as
// spinner ticks and cursor blinks is dropped so no timers run.
func deliver(t *testing.T, model tea.Model, msgs []tea.Msg) tea.Model {
	t.Helper()
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]

		switch msg.(type) {
		case ui.NavigateMsg, ui.LogoutMsg, ui.LoginSubmitMsg, ui.RegisterSubmitMsg,
			ui.ProduceSubmitMsg, ui.OrderRequestMsg, ui.ConfirmOrderMsg, ui.FiltersChangedMsg,
			sessionResolvedMsg, authResultMsg, dashboardLoadedMsg, marketplaceLoadedMsg,
			produceSavedMsg, orderPlacedMsg, orderConfirmedMsg:
		default:
			continue
		}

		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		msgs = append(msgs, pump(cmd)...)
	}
	return model
}

func sized(t *testing.T, model tea.Model) tea.Model {
	t.Helper()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return model
}

func buyerSession() *types.AuthResponse {
	return &types.AuthResponse{
		AccessToken: "tok-1",
		TokenType:   "bearer",
		User:        types.UserProfile{ID: "u1", Name: "Ama", Role: types.RoleBuyer},
	}
}

func TestDashboardShortcutRequiresLogin(t *testing.T) {
	var model tea.Model = sized(t, newTestApp(&stubBackend{}))

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	model = deliver(t, model, pump(cmd))

	app := model.(appModel)
	if app.controller.View() != session.ViewHome {
		t.Fatalf("expected to stay on home, got %s", app.controller.View())
	}
	if !strings.Contains(app.View(), "Please login to view your dashboard") {
		t.Errorf("expected the login prompt in the footer")
	}
}

func TestLoginSubmitLandsOnDashboard(t *testing.T) {
	backend := &stubBackend{
		authResp: buyerSession(),
		stats:    types.DashboardStats{TotalOrders: 2},
	}
	var model tea.Model = sized(t, newTestApp(backend))

	model = deliver(t, model, []tea.Msg{ui.LoginSubmitMsg{Input: types.LoginInput{
		Email:    "ama@example.com",
		Password: "secret",
	}}})

	app := model.(appModel)
	if app.controller.View() != session.ViewDashboard {
		t.Fatalf("expected dashboard after login, got %s", app.controller.View())
	}
	view := app.View()
	if !strings.Contains(view, "Welcome, Ama!") {
		t.Errorf("expected dashboard greeting:\n%s", view)
	}
	if !strings.Contains(view, "Hi, Ama (buyer)") {
		t.Errorf("expected header session info")
	}
}

func TestLoginFailureShowsInlineError(t *testing.T) {
	backend := &stubBackend{authErr: &api.APIError{StatusCode: 401, Detail: "Incorrect email or password"}}
	var model tea.Model = sized(t, newTestApp(backend))

	model, cmd := model.Update(ui.NavigateMsg{Target: session.ViewLogin})
	model = deliver(t, model, pump(cmd))
	model = deliver(t, model, []tea.Msg{ui.LoginSubmitMsg{Input: types.LoginInput{
		Email:    "ama@example.com",
		Password: "wrong",
	}}})

	app := model.(appModel)
	if app.controller.View() != session.ViewLogin {
		t.Fatalf("expected to stay on login, got %s", app.controller.View())
	}
	if !strings.Contains(app.View(), "Incorrect email or password") {
		t.Errorf("expected backend detail on the form")
	}
}

func TestOrderWhileLoggedOutRedirectsToLogin(t *testing.T) {
	var model tea.Model = sized(t, newTestApp(&stubBackend{}))

	model, cmd := model.Update(ui.NavigateMsg{Target: session.ViewMarketplace})
	model = deliver(t, model, pump(cmd))
	model = deliver(t, model, []tea.Msg{ui.OrderRequestMsg{ProduceID: "p1", Title: "Mango"}})

	app := model.(appModel)
	if app.controller.View() != session.ViewLogin {
		t.Fatalf("expected redirect to login, got %s", app.controller.View())
	}
	if !strings.Contains(app.View(), "Please login to place an order") {
		t.Errorf("expected the preflight message in the footer")
	}
}

func TestFiltersChangedNarrowsMarketplace(t *testing.T) {
	backend := &stubBackend{listings: []types.ProduceListing{
		{ID: "p1", Title: "Mango", Category: types.CategoryFruits},
		{ID: "p2", Title: "Maize", Category: types.CategoryGrains},
	}}
	var model tea.Model = sized(t, newTestApp(backend))

	model, cmd := model.Update(ui.NavigateMsg{Target: session.ViewMarketplace})
	model = deliver(t, model, pump(cmd))
	model = deliver(t, model, []tea.Msg{ui.FiltersChangedMsg{
		Filters: session.Filters{Category: types.CategoryGrains},
	}})

	app := model.(appModel)
	filtered := app.controller.FilteredCatalog()
	if len(filtered) != 1 || filtered[0].Title != "Maize" {
		t.Fatalf("expected Maize only, got %+v", filtered)
	}
	if !strings.Contains(app.View(), "Showing 1 of 2 listings") {
		t.Errorf("expected filtered count in the marketplace view")
	}
}

func TestEscReturnsHome(t *testing.T) {
	backend := &stubBackend{authResp: buyerSession()}
	var model tea.Model = sized(t, newTestApp(backend))

	model, cmd := model.Update(ui.NavigateMsg{Target: session.ViewMarketplace})
	model = deliver(t, model, pump(cmd))

	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = deliver(t, model, pump(cmd))
	app := model.(appModel)
	if app.controller.View() != session.ViewHome {
		t.Fatalf("expected home after escape, got %s", app.controller.View())
	}
}

func TestLogoutShortcut(t *testing.T) {
	backend := &stubBackend{authResp: buyerSession()}
	var model tea.Model = sized(t, newTestApp(backend))

	model = deliver(t, model, []tea.Msg{ui.LoginSubmitMsg{Input: types.LoginInput{
		Email:    "ama@example.com",
		Password: "secret",
	}}})

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	model = deliver(t, model, pump(cmd))

	app := model.(appModel)
	if app.controller.Authenticated() {
		t.Fatalf("expected the session to be cleared")
	}
	if app.controller.View() != session.ViewHome {
		t.Fatalf("expected home after logout, got %s", app.controller.View())
	}
	if !strings.Contains(app.View(), "Logged out.") {
		t.Errorf("expected logout notice")
	}
}
