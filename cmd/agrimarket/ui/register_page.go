package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Canzo32/farmer-web/internal/types"
)

// Field order on the registration form. The role and region selectors sit
// after the text fields and cycle with left/right.
const (
	regFieldName = iota
	regFieldEmail
	regFieldPassword
	regFieldPhone
	regFieldRole
	regFieldRegion
	regFieldCount
)

// RegisterPageModel is the registration form.
type RegisterPageModel struct {
	width  int
	height int

	inputs    []textinput.Model
	focus     int
	roleIdx   int
	regionIdx int

	errMsg  string
	loading bool
	styles  Styles
}

// NewRegisterPageModel creates the registration form.
func NewRegisterPageModel(styles Styles) RegisterPageModel {
	placeholders := []string{"Ama Mensah", "you@example.com", "password", "+233 20 000 0000"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, ph := range placeholders {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[regFieldPassword].EchoMode = textinput.EchoPassword
	inputs[regFieldPassword].EchoCharacter = '•'
	inputs[regFieldName].Focus()

	return RegisterPageModel{
		inputs: inputs,
		styles: styles,
	}
}

// Init initializes the model.
func (m RegisterPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Enter on the last selector submits.
func (m RegisterPageModel) Update(msg tea.Msg) (RegisterPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.loading {
			return m, nil
		}
		switch key.Type {
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % regFieldCount
			m.syncFocus()
			return m, nil

		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus + regFieldCount - 1) % regFieldCount
			m.syncFocus()
			return m, nil

		case tea.KeyLeft, tea.KeyRight:
			delta := 1
			if key.Type == tea.KeyLeft {
				delta = -1
			}
			switch m.focus {
			case regFieldRole:
				m.roleIdx = (m.roleIdx + delta + len(types.Roles)) % len(types.Roles)
				return m, nil
			case regFieldRegion:
				m.regionIdx = (m.regionIdx + delta + len(types.Regions)) % len(types.Regions)
				return m, nil
			}

		case tea.KeyEnter:
			if m.focus < regFieldRegion {
				m.focus++
				m.syncFocus()
				return m, nil
			}
			input := m.collect()
			if err := input.Validate(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			return m, func() tea.Msg { return RegisterSubmitMsg{Input: input} }
		}
	}

	if m.loading {
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *RegisterPageModel) syncFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m RegisterPageModel) collect() types.RegisterInput {
	return types.RegisterInput{
		Name:     strings.TrimSpace(m.inputs[regFieldName].Value()),
		Email:    strings.TrimSpace(m.inputs[regFieldEmail].Value()),
		Password: m.inputs[regFieldPassword].Value(),
		Phone:    strings.TrimSpace(m.inputs[regFieldPhone].Value()),
		Role:     types.Roles[m.roleIdx],
		Region:   types.Regions[m.regionIdx],
	}.Normalized()
}

// View renders the page.
func (m RegisterPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Register") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n\n")
	}

	labels := []string{"Full Name", "Email", "Password", "Phone"}
	for i, label := range labels {
		sb.WriteString(m.styles.FieldLabel.Render(label) + "\n")
		sb.WriteString(m.fieldBox(m.inputs[i].View(), m.focus == i) + "\n")
	}

	sb.WriteString(m.styles.FieldLabel.Render("Role") + "\n")
	sb.WriteString(m.selector(string(types.Roles[m.roleIdx]), m.focus == regFieldRole) + "\n")
	sb.WriteString(m.styles.FieldLabel.Render("Region") + "\n")
	sb.WriteString(m.selector(string(types.Regions[m.regionIdx]), m.focus == regFieldRegion) + "\n\n")

	if m.loading {
		sb.WriteString(m.styles.Info.Render("Registering...") + "\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("[Enter] Next/Submit  [Tab] Field  [←/→] Choose  [Esc] Home") + "\n")
		sb.WriteString(m.styles.Muted.Render("Already have an account? Press Ctrl+L to login"))
	}
	return sb.String()
}

func (m RegisterPageModel) fieldBox(content string, focused bool) string {
	if focused {
		return m.styles.FocusedBox.Render(content)
	}
	return m.styles.BlurredBox.Render(content)
}

func (m RegisterPageModel) selector(value string, focused bool) string {
	content := fmt.Sprintf("◂ %s ▸", value)
	return m.fieldBox(content, focused)
}

// SetSize updates the size.
func (m *RegisterPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetError attaches a view-scoped error message.
func (m *RegisterPageModel) SetError(msg string) {
	m.errMsg = msg
}

// SetLoading toggles the in-flight indicator.
func (m *RegisterPageModel) SetLoading(on bool) {
	m.loading = on
}

// Reset clears the form for the next visit.
func (m *RegisterPageModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.roleIdx = 0
	m.regionIdx = 0
	m.errMsg = ""
	m.loading = false
	m.focus = regFieldName
	m.syncFocus()
}
