package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

// MarketplacePageModel is the catalog browser: a search box, category and
// region selectors, and a table of the filtered listings. Filtering is
// recomputed locally on every criteria change; no network call is made.
type MarketplacePageModel struct {
	width  int
	height int
	table  table.Model

	// Data
	catalog  []types.ProduceListing
	filtered []types.ProduceListing

	// Filter state
	filterInput   textinput.Model
	categoryIdx   int // 0 = all, otherwise index+1 into types.Categories
	regionIdx     int // same convention for types.Regions
	filterFocused bool

	styles Styles
}

// NewMarketplacePageModel creates the catalog browser.
func NewMarketplacePageModel(styles Styles) MarketplacePageModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 24},
			{Title: "Category", Width: 12},
			{Title: "Region", Width: 10},
			{Title: "Price", Width: 16},
			{Title: "Stock", Width: 12},
			{Title: "Farmer", Width: 16},
			{Title: "Code", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	fi := textinput.New()
	fi.Placeholder = "Search produce..."
	fi.CharLimit = 60
	fi.Width = 36

	return MarketplacePageModel{
		table:       t,
		filterInput: fi,
		styles:      styles,
	}
}

// Init initializes the model.
func (m MarketplacePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MarketplacePageModel) Update(msg tea.Msg) (MarketplacePageModel, tea.Cmd) {
	var cmds []tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "/":
			m.filterFocused = !m.filterFocused
			if m.filterFocused {
				m.filterInput.Focus()
			} else {
				m.filterInput.Blur()
			}
			return m, nil

		case "tab":
			if !m.filterFocused {
				m.categoryIdx = (m.categoryIdx + 1) % (len(types.Categories) + 1)
				return m, m.emitFilters()
			}

		case "r":
			if !m.filterFocused {
				m.regionIdx = (m.regionIdx + 1) % (len(types.Regions) + 1)
				return m, m.emitFilters()
			}

		case "esc":
			if m.filterFocused {
				m.filterFocused = false
				m.filterInput.Blur()
				return m, nil
			}

		case "enter":
			if m.filterFocused {
				m.filterFocused = false
				m.filterInput.Blur()
				return m, m.emitFilters()
			}
			if row := m.table.Cursor(); row >= 0 && row < len(m.filtered) {
				item := m.filtered[row]
				return m, func() tea.Msg {
					return OrderRequestMsg{ProduceID: item.ID, Title: item.Title}
				}
			}
		}
	}

	if m.filterFocused {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		// Live filtering on each keystroke.
		cmds = append(cmds, m.emitFilters())
	} else {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// FilterFocused reports whether the search box owns the keyboard.
func (m MarketplacePageModel) FilterFocused() bool {
	return m.filterFocused
}

// Criteria returns the currently selected filter set.
func (m MarketplacePageModel) Criteria() session.Filters {
	f := session.Filters{Search: m.filterInput.Value()}
	if m.categoryIdx > 0 {
		f.Category = types.Categories[m.categoryIdx-1]
	}
	if m.regionIdx > 0 {
		f.Region = types.Regions[m.regionIdx-1]
	}
	return f
}

func (m MarketplacePageModel) emitFilters() tea.Cmd {
	f := m.Criteria()
	return func() tea.Msg { return FiltersChangedMsg{Filters: f} }
}

// UpdateContent replaces the catalog and filtered views after a refresh
// or a filter recomputation.
func (m *MarketplacePageModel) UpdateContent(catalog, filtered []types.ProduceListing) {
	m.catalog = catalog
	m.filtered = filtered
	m.updateTableRows()
}

func (m *MarketplacePageModel) updateTableRows() {
	var rows []table.Row
	for _, item := range m.filtered {
		rows = append(rows, table.Row{
			item.Title,
			string(item.Category),
			string(item.Region),
			item.PriceLabel(),
			fmt.Sprintf("%d %s", item.Quantity, item.Unit),
			item.FarmerName,
			item.UniqueCode,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// View renders the page.
func (m MarketplacePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Marketplace") + "\n\n")
	sb.WriteString(m.renderFilterBar() + "\n\n")
	sb.WriteString(m.table.View())

	if len(m.filtered) != len(m.catalog) {
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("\nShowing %d of %d listings", len(m.filtered), len(m.catalog))))
	}

	sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Order  [/] Search  [Tab] Category  [r] Region  [Esc] Home"))
	return sb.String()
}

func (m MarketplacePageModel) renderFilterBar() string {
	var sb strings.Builder

	box := m.styles.BlurredBox
	if m.filterFocused {
		box = m.styles.FocusedBox
	}
	sb.WriteString(box.Render(m.filterInput.View()))
	sb.WriteString("  ")

	category := "All Categories"
	if m.categoryIdx > 0 {
		category = string(types.Categories[m.categoryIdx-1])
	}
	region := "All Regions"
	if m.regionIdx > 0 {
		region = string(types.Regions[m.regionIdx-1])
	}
	sb.WriteString(m.styles.Badge.Render(category))
	sb.WriteString(" ")
	sb.WriteString(m.styles.Badge.Render(region))
	return sb.String()
}

// SetSize updates the size.
func (m *MarketplacePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(ContentWidth(w))
	m.table.SetHeight(ContentHeight(h) - ControlsHeight)
}
