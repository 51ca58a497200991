// This file implements the interactive marketplace interface using bubbletea.
// The root model hosts the session controller and routes page intents into
// controller operations; pages never touch the network directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Canzo32/farmer-web/cmd/agrimarket/config"
	"github.com/Canzo32/farmer-web/cmd/agrimarket/ui"
	"github.com/Canzo32/farmer-web/internal/api"
	"github.com/Canzo32/farmer-web/internal/auth"
	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

// appModel is the root model for the interactive client.
type appModel struct {
	controller *session.Controller
	styles     ui.Styles
	spinner    spinner.Model

	// Pages
	home        ui.HomePageModel
	login       ui.LoginPageModel
	register    ui.RegisterPageModel
	dashboard   ui.DashboardPageModel
	produceForm ui.ProduceFormPageModel
	marketplace ui.MarketplacePageModel

	// Transient screen state
	notice  string
	errMsg  string
	busy    bool
	width   int
	height  int
	ready   bool
}

// Messages for tea updates
type (
	sessionResolvedMsg struct{ err error }
	authResultMsg      struct{ err error }
	dashboardLoadedMsg struct{}
	marketplaceLoadedMsg struct{ err error }
	produceSavedMsg    struct{ err error }
	orderPlacedMsg     struct {
		title string
		err   error
	}
	orderConfirmedMsg struct{ err error }
)

// initApp builds the root model and its collaborators.
func initApp(cfg config.Config) appModel {
	styles := ui.DefaultStyles()
	if cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	client := api.NewWithConfig(api.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
	})
	dir, _ := config.Dir()
	controller := session.NewController(client, auth.NewTokenStore(dir))

	return appModel{
		controller:  controller,
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

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.resolveSessionCmd(),
	)
}

func (m appModel) resolveSessionCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.controller.ResolveSession(context.Background())
		return sessionResolvedMsg{err: err}
	}
}

func (m appModel) loadDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		m.controller.LoadDashboard(context.Background())
		return dashboardLoadedMsg{}
	}
}

func (m appModel) loadMarketplaceCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.controller.LoadMarketplace(context.Background())
		return marketplaceLoadedMsg{err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.home.SetSize(msg.Width, msg.Height)
		m.login.SetSize(msg.Width, msg.Height)
		m.register.SetSize(msg.Width, msg.Height)
		m.dashboard.SetSize(msg.Width, msg.Height)
		m.produceForm.SetSize(msg.Width, msg.Height)
		m.marketplace.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	// Page intents
	case ui.NavigateMsg:
		return m.navigate(msg.Target)

	case ui.LogoutMsg:
		m.controller.Logout()
		m.notice = "Logged out."
		m.errMsg = ""
		return m, nil

	case ui.LoginSubmitMsg:
		m.busy = true
		m.login.SetLoading(true)
		input := msg.Input
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return authResultMsg{err: m.controller.Login(context.Background(), input)}
		})

	case ui.RegisterSubmitMsg:
		m.busy = true
		m.register.SetLoading(true)
		input := msg.Input
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return authResultMsg{err: m.controller.Register(context.Background(), input)}
		})

	case ui.ProduceSubmitMsg:
		input := msg.Input
		if msg.ImagePath != "" {
			encoded, err := session.ReadImageFile(msg.ImagePath)
			if err != nil {
				m.produceForm.SetError(err.Error())
				return m, nil
			}
			input.ImageData = encoded
		}
		m.busy = true
		m.produceForm.SetLoading(true)
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return produceSavedMsg{err: m.controller.CreateProduceListing(context.Background(), input)}
		})

	case ui.OrderRequestMsg:
		produceID, title := msg.ProduceID, msg.Title
		return m, func() tea.Msg {
			return orderPlacedMsg{
				title: title,
				err:   m.controller.PlaceOrder(context.Background(), produceID, 1),
			}
		}

	case ui.ConfirmOrderMsg:
		orderID := msg.OrderID
		return m, func() tea.Msg {
			return orderConfirmedMsg{
				err: m.controller.AdvanceOrder(context.Background(), orderID, types.OrderConfirmed),
			}
		}

	case ui.FiltersChangedMsg:
		m.controller.ApplyFilters(msg.Filters)
		m.marketplace.UpdateContent(m.controller.Catalog(), m.controller.FilteredCatalog())
		return m, nil

	// Operation results
	case sessionResolvedMsg:
		if user := m.controller.User(); user != nil {
			m.notice = fmt.Sprintf("Welcome back, %s!", user.Name)
		}
		return m, nil

	case authResultMsg:
		m.busy = false
		m.login.SetLoading(false)
		m.register.SetLoading(false)
		if msg.err != nil {
			switch m.controller.View() {
			case session.ViewRegister:
				m.register.SetError(msg.err.Error())
			default:
				m.login.SetError(msg.err.Error())
			}
			return m, nil
		}
		m.notice = ""
		m.errMsg = ""
		return m, m.loadDashboardCmd()

	case dashboardLoadedMsg:
		m.dashboard.UpdateContent(
			m.controller.User(),
			m.controller.Stats(),
			m.controller.Orders(),
			m.controller.MyProduce(),
		)
		return m, nil

	case marketplaceLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.marketplace.UpdateContent(m.controller.Catalog(), m.controller.FilteredCatalog())
		return m, nil

	case produceSavedMsg:
		m.busy = false
		m.produceForm.SetLoading(false)
		if msg.err != nil {
			m.produceForm.SetError(msg.err.Error())
			return m, nil
		}
		m.notice = "Produce listed successfully!"
		m.produceForm.Reset()
		return m, m.loadDashboardCmd()

	case orderPlacedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			if errors.Is(msg.err, session.ErrLoginRequired) {
				m.controller.Navigate(session.ViewLogin)
				m.login.Reset()
			}
			return m, nil
		}
		m.errMsg = ""
		m.notice = fmt.Sprintf("Order placed for %s!", msg.title)
		return m, nil

	case orderConfirmedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notice = "Order confirmed."
		return m, m.loadDashboardCmd()
	}

	return m.updateActivePage(msg)
}

// handleGlobalKey treats keys that work on every screen. Returns handled
// false when the active page should see the key instead.
func (m appModel) handleGlobalKey(key tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit, true

	case tea.KeyCtrlL:
		model, cmd := m.navigate(session.ViewLogin)
		return model, cmd, true

	case tea.KeyCtrlR:
		model, cmd := m.navigate(session.ViewRegister)
		return model, cmd, true

	case tea.KeyCtrlO:
		if m.controller.Authenticated() {
			m.controller.Logout()
			m.notice = "Logged out."
			m.errMsg = ""
		}
		return m, nil, true

	case tea.KeyEsc:
		// The marketplace search box consumes Esc to unfocus itself.
		if m.controller.View() == session.ViewMarketplace && m.marketplace.FilterFocused() {
			return m, nil, false
		}
		switch m.controller.View() {
		case session.ViewHome:
			return m, nil, true
		case session.ViewAddProduce:
			model, cmd := m.navigate(m.produceForm.CancelTarget())
			return model, cmd, true
		default:
			model, cmd := m.navigate(session.ViewHome)
			return model, cmd, true
		}
	}
	return m, nil, false
}

// navigate asks the controller for a transition and runs the view's entry
// actions. A guarded transition that does not move is a no-op.
func (m appModel) navigate(target session.View) (tea.Model, tea.Cmd) {
	before := m.controller.View()
	after := m.controller.Navigate(target)
	if after == before && after != target {
		// Dashboard guard rejected the transition.
		m.errMsg = "Please login to view your dashboard"
		return m, nil
	}

	m.errMsg = ""
	switch after {
	case session.ViewLogin:
		m.login.Reset()
		return m, m.login.Init()
	case session.ViewRegister:
		m.register.Reset()
		return m, m.register.Init()
	case session.ViewAddProduce:
		m.produceForm.Reset()
		return m, m.produceForm.Init()
	case session.ViewDashboard:
		return m, m.loadDashboardCmd()
	case session.ViewMarketplace:
		return m, m.loadMarketplaceCmd()
	}
	return m, nil
}

// updateActivePage forwards a message to the page owning the screen.
func (m appModel) updateActivePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.controller.View() {
	case session.ViewHome:
		m.home, cmd = m.home.Update(msg)
	case session.ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case session.ViewRegister:
		m.register, cmd = m.register.Update(msg)
	case session.ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case session.ViewAddProduce:
		m.produceForm, cmd = m.produceForm.Update(msg)
	case session.ViewMarketplace:
		m.marketplace, cmd = m.marketplace.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if !m.ready {
		return "Loading AgriMarket..."
	}

	var content string
	switch m.controller.View() {
	case session.ViewHome:
		content = m.home.View()
	case session.ViewLogin:
		content = m.login.View()
	case session.ViewRegister:
		content = m.register.View()
	case session.ViewDashboard:
		if m.controller.Authenticated() {
			content = m.dashboard.View()
		} else {
			content = m.styles.Muted.Render("Login required.")
		}
	case session.ViewAddProduce:
		content = m.produceForm.View()
	case session.ViewMarketplace:
		content = m.marketplace.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.styles.Content.Render(content),
		m.renderFooter(),
	)
}

func (m appModel) renderHeader() string {
	title := m.styles.Header.Render(" AgriMarket Ghana ")

	var right string
	if user := m.controller.User(); user != nil {
		right = m.styles.Muted.Render(fmt.Sprintf("Hi, %s (%s)  [Ctrl+O] Logout", user.Name, user.Role))
	} else {
		right = m.styles.Muted.Render("[Ctrl+L] Login  [Ctrl+R] Register")
	}
	return title + "  " + right
}

func (m appModel) renderFooter() string {
	var parts []string
	if m.busy {
		parts = append(parts, m.spinner.View())
	}
	if m.errMsg != "" {
		parts = append(parts, m.styles.Error.Render(m.errMsg))
	}
	if m.notice != "" {
		parts = append(parts, m.styles.Success.Render(m.notice))
	}
	parts = append(parts, m.styles.Muted.Render("[Ctrl+C] Quit"))
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

// runInteractive launches the TUI.
func runInteractive(cfg config.Config) error {
	p := tea.NewProgram(initApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
