package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

const dashboardListLimit = 5

// DashboardPageModel renders the role-dependent dashboard: aggregate
// counters, recent orders, and (for farmers) their listings. Farmers can
// select a pending order and confirm it.
type DashboardPageModel struct {
	width  int
	height int

	user      *types.UserProfile
	stats     types.DashboardStats
	orders    []types.Order
	myProduce []types.ProduceListing

	selected int
	styles   Styles
}

// NewDashboardPageModel creates the dashboard.
func NewDashboardPageModel(styles Styles) DashboardPageModel {
	return DashboardPageModel{styles: styles}
}

// Init initializes the model.
func (m DashboardPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DashboardPageModel) Update(msg tea.Msg) (DashboardPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.visibleOrders()
	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(visible)-1 {
			m.selected++
		}
	case "a":
		if m.user != nil && m.user.Role == types.RoleFarmer {
			return m, func() tea.Msg { return NavigateMsg{Target: session.ViewAddProduce} }
		}
	case "m":
		return m, func() tea.Msg { return NavigateMsg{Target: session.ViewMarketplace} }
	case "enter":
		if m.user != nil && m.user.Role == types.RoleFarmer &&
			m.selected < len(visible) && visible[m.selected].Status == types.OrderPending {
			id := visible[m.selected].ID
			return m, func() tea.Msg { return ConfirmOrderMsg{OrderID: id} }
		}
	}
	return m, nil
}

func (m DashboardPageModel) visibleOrders() []types.Order {
	if len(m.orders) > dashboardListLimit {
		return m.orders[:dashboardListLimit]
	}
	return m.orders
}

// View renders the page.
func (m DashboardPageModel) View() string {
	if m.user == nil {
		return m.styles.Muted.Render("Login required.")
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Welcome, %s!", m.user.Name)) + "\n\n")
	sb.WriteString(m.renderStats() + "\n\n")
	sb.WriteString(m.renderOrders())

	if m.user.Role == types.RoleFarmer {
		sb.WriteString("\n")
		sb.WriteString(m.renderMyProduce())
		sb.WriteString("\n" + m.styles.Muted.Render("[a] Add produce  [Enter] Confirm pending order  [m] Marketplace  [Esc] Home"))
	} else {
		sb.WriteString("\n" + m.styles.Muted.Render("[m] Marketplace  [Esc] Home"))
	}
	return sb.String()
}

func (m DashboardPageModel) renderStats() string {
	card := func(label string, value int) string {
		body := m.styles.Bold.Render(fmt.Sprintf("%d", value)) + "\n" + m.styles.Muted.Render(label)
		return m.styles.Card.Render(body)
	}

	var cards []string
	switch m.user.Role {
	case types.RoleFarmer:
		cards = []string{
			card("Total Produce", m.stats.TotalProduce),
			card("Active Listings", m.stats.ActiveProduce),
			card("Pending Orders", m.stats.PendingOrders),
		}
	case types.RoleBuyer:
		cards = []string{
			card("Total Orders", m.stats.TotalOrders),
			card("Pending Orders", m.stats.PendingOrders),
			card("Completed Orders", m.stats.CompletedOrders),
		}
	default:
		cards = []string{card("Pending Orders", m.stats.PendingOrders)}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m DashboardPageModel) renderOrders() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("Recent Orders") + "\n")

	visible := m.visibleOrders()
	if len(visible) == 0 {
		sb.WriteString(m.styles.Muted.Render("No orders yet."))
		return sb.String()
	}

	for i, order := range visible {
		cursor := "  "
		if i == m.selected && m.user.Role == types.RoleFarmer {
			cursor = m.styles.Prompt.Render("> ")
		}
		counterparty := fmt.Sprintf("Farmer: %s", order.FarmerName)
		if m.user.Role == types.RoleFarmer {
			counterparty = fmt.Sprintf("Buyer: %s", order.BuyerName)
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, m.styles.Body.Render(order.ProduceTitle), m.styles.StatusBadge(string(order.Status))))
		sb.WriteString(fmt.Sprintf("    %s | Quantity: %d | Total: GHS %.2f\n",
			m.styles.Muted.Render(counterparty), order.Quantity, order.TotalAmount))
	}
	return sb.String()
}

func (m DashboardPageModel) renderMyProduce() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("My Produce") + "\n")

	listings := m.myProduce
	if len(listings) > dashboardListLimit {
		listings = listings[:dashboardListLimit]
	}
	if len(listings) == 0 {
		sb.WriteString(m.styles.Muted.Render("No listings yet. Press [a] to add one."))
		return sb.String()
	}

	for _, item := range listings {
		availability := "available"
		if !item.IsAvailable {
			availability = "unavailable"
		}
		sb.WriteString(fmt.Sprintf("  %s  %s\n", m.styles.Body.Render(item.Title), m.styles.StatusBadge(availability)))
		sb.WriteString(fmt.Sprintf("    %s | %s | %d %s left\n",
			m.styles.Muted.Render(string(item.Category)), m.styles.Price.Render(item.PriceLabel()), item.Quantity, item.Unit))
	}
	return sb.String()
}

// SetSize updates the size.
func (m *DashboardPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateContent refreshes the dashboard data after a cache reload.
func (m *DashboardPageModel) UpdateContent(user *types.UserProfile, stats types.DashboardStats, orders []types.Order, myProduce []types.ProduceListing) {
	m.user = user
	m.stats = stats
	m.orders = orders
	m.myProduce = myProduce
	if max := len(m.visibleOrders()); m.selected >= max && max > 0 {
		m.selected = max - 1
	}
	if len(m.visibleOrders()) == 0 {
		m.selected = 0
	}
}
