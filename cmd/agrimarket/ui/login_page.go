package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Canzo32/farmer-web/internal/types"
)

// LoginPageModel is the login form.
type LoginPageModel struct {
	width  int
	height int

	email    textinput.Model
	password textinput.Model
	focus    int

	errMsg  string
	loading bool
	styles  Styles
}

// NewLoginPageModel creates the login form.
func NewLoginPageModel(styles Styles) LoginPageModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginPageModel{
		email:    email,
		password: password,
		styles:   styles,
	}
}

// Init initializes the model.
func (m LoginPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Enter on the last field submits the form.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
			if m.loading {
				return m, nil
			}
			m.focus = (m.focus + 1) % 2
			m.syncFocus()
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			if m.focus == 0 {
				m.focus = 1
				m.syncFocus()
				return m, nil
			}
			input := types.LoginInput{
				Email:    strings.TrimSpace(m.email.Value()),
				Password: m.password.Value(),
			}
			if err := input.Validate(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			return m, func() tea.Msg { return LoginSubmitMsg{Input: input} }
		}
	}

	if m.loading {
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *LoginPageModel) syncFocus() {
	if m.focus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

// View renders the page.
func (m LoginPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Login") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n\n")
	}

	sb.WriteString(m.styles.FieldLabel.Render("Email") + "\n")
	sb.WriteString(m.fieldBox(m.email.View(), m.focus == 0) + "\n")
	sb.WriteString(m.styles.FieldLabel.Render("Password") + "\n")
	sb.WriteString(m.fieldBox(m.password.View(), m.focus == 1) + "\n\n")

	if m.loading {
		sb.WriteString(m.styles.Info.Render("Logging in...") + "\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("[Enter] Submit  [Tab] Next field  [Esc] Home") + "\n")
		sb.WriteString(m.styles.Muted.Render("Don't have an account? Press Ctrl+R to register"))
	}
	return sb.String()
}

func (m LoginPageModel) fieldBox(content string, focused bool) string {
	if focused {
		return m.styles.FocusedBox.Render(content)
	}
	return m.styles.BlurredBox.Render(content)
}

// SetSize updates the size.
func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetError attaches a view-scoped error message.
func (m *LoginPageModel) SetError(msg string) {
	m.errMsg = msg
}

// SetLoading toggles the in-flight indicator.
func (m *LoginPageModel) SetLoading(on bool) {
	m.loading = on
}

// Reset clears the form for the next visit.
func (m *LoginPageModel) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.errMsg = ""
	m.loading = false
	m.focus = 0
	m.syncFocus()
}
