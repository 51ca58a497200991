package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/Canzo32/farmer-web/internal/session"
)

const homeMarkdown = `# AgriMarket Ghana

Connecting farmers, suppliers, and buyers across the **Accra**, **Ashanti**,
and **Western** regions. Fresh produce, fair prices, direct from farm to table.

- Fresh produce direct from farms, quality backed by photo verification
- Fixed prices set by farmers, in GHS
- Regional coverage across all three service areas
`

// HomePageModel renders the landing screen.
type HomePageModel struct {
	width    int
	height   int
	rendered string
	styles   Styles
}

// NewHomePageModel creates the landing page.
func NewHomePageModel(styles Styles) HomePageModel {
	m := HomePageModel{styles: styles}
	m.render(76)
	return m
}

func (m *HomePageModel) render(width int) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.styles.Theme.IsDark {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath("light"))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.rendered = homeMarkdown
		return
	}
	out, err := renderer.Render(homeMarkdown)
	if err != nil {
		m.rendered = homeMarkdown
		return
	}
	m.rendered = out
}

// Init initializes the model.
func (m HomePageModel) Init() tea.Cmd {
	return nil
}

// Update handles key shortcuts for the navigation actions shown on screen.
func (m HomePageModel) Update(msg tea.Msg) (HomePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "l":
			return m, func() tea.Msg { return NavigateMsg{Target: session.ViewLogin} }
		case "r":
			return m, func() tea.Msg { return NavigateMsg{Target: session.ViewRegister} }
		case "m":
			return m, func() tea.Msg { return NavigateMsg{Target: session.ViewMarketplace} }
		case "d":
			return m, func() tea.Msg { return NavigateMsg{Target: session.ViewDashboard} }
		}
	}
	return m, nil
}

// View renders the page.
func (m HomePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.rendered)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("[l] Login  [r] Register  [m] Marketplace  [d] Dashboard"))
	return sb.String()
}

// SetSize updates the size.
func (m *HomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.render(ContentWidth(w))
}
