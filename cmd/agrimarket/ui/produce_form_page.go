package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

const (
	produceFieldTitle = iota
	produceFieldCategory
	produceFieldDescription
	produceFieldPrice
	produceFieldUnit
	produceFieldQuantity
	produceFieldImage
	produceFieldCount
)

// ProduceFormPageModel is the add-produce form for farmers.
type ProduceFormPageModel struct {
	width  int
	height int

	inputs      map[int]*textinput.Model
	focus       int
	categoryIdx int
	unitIdx     int

	errMsg  string
	loading bool
	styles  Styles
}

// NewProduceFormPageModel creates the listing form.
func NewProduceFormPageModel(styles Styles) ProduceFormPageModel {
	newInput := func(placeholder string, width int) *textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = width
		return &ti
	}

	inputs := map[int]*textinput.Model{
		produceFieldTitle:       newInput("Fresh Tomatoes", 40),
		produceFieldDescription: newInput("Ripe and ready for market", 40),
		produceFieldPrice:       newInput("12.50", 12),
		produceFieldQuantity:    newInput("100", 12),
		produceFieldImage:       newInput("photo.jpg (optional)", 40),
	}
	inputs[produceFieldTitle].Focus()

	return ProduceFormPageModel{
		inputs: inputs,
		styles: styles,
	}
}

// Init initializes the model.
func (m ProduceFormPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Enter on the image field submits.
func (m ProduceFormPageModel) Update(msg tea.Msg) (ProduceFormPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.loading {
			return m, nil
		}
		switch key.Type {
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % produceFieldCount
			m.syncFocus()
			return m, nil

		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus + produceFieldCount - 1) % produceFieldCount
			m.syncFocus()
			return m, nil

		case tea.KeyLeft, tea.KeyRight:
			delta := 1
			if key.Type == tea.KeyLeft {
				delta = -1
			}
			switch m.focus {
			case produceFieldCategory:
				m.categoryIdx = (m.categoryIdx + delta + len(types.Categories)) % len(types.Categories)
				return m, nil
			case produceFieldUnit:
				m.unitIdx = (m.unitIdx + delta + len(types.Units)) % len(types.Units)
				return m, nil
			}

		case tea.KeyEnter:
			if m.focus < produceFieldImage {
				m.focus++
				m.syncFocus()
				return m, nil
			}
			input := m.collect()
			if _, err := input.Parsed(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			imagePath := strings.TrimSpace(m.inputs[produceFieldImage].Value())
			return m, func() tea.Msg { return ProduceSubmitMsg{Input: input, ImagePath: imagePath} }
		}
	}

	if m.loading {
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		*m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *ProduceFormPageModel) syncFocus() {
	for i, ti := range m.inputs {
		if i == m.focus {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

func (m ProduceFormPageModel) collect() types.ProduceInput {
	return types.ProduceInput{
		Title:       strings.TrimSpace(m.inputs[produceFieldTitle].Value()),
		Category:    types.Categories[m.categoryIdx],
		Description: strings.TrimSpace(m.inputs[produceFieldDescription].Value()),
		Price:       strings.TrimSpace(m.inputs[produceFieldPrice].Value()),
		Quantity:    strings.TrimSpace(m.inputs[produceFieldQuantity].Value()),
		Unit:        types.Units[m.unitIdx],
	}
}

// View renders the page.
func (m ProduceFormPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Add New Produce") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n\n")
	}

	sb.WriteString(m.styles.FieldLabel.Render("Title") + "\n")
	sb.WriteString(m.fieldBox(m.inputs[produceFieldTitle].View(), m.focus == produceFieldTitle) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Category") + "\n")
	sb.WriteString(m.selector(string(types.Categories[m.categoryIdx]), m.focus == produceFieldCategory) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Description") + "\n")
	sb.WriteString(m.fieldBox(m.inputs[produceFieldDescription].View(), m.focus == produceFieldDescription) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Price (GHS)") + "\n")
	sb.WriteString(m.fieldBox(m.inputs[produceFieldPrice].View(), m.focus == produceFieldPrice) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Unit") + "\n")
	sb.WriteString(m.selector(string(types.Units[m.unitIdx]), m.focus == produceFieldUnit) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Quantity") + "\n")
	sb.WriteString(m.fieldBox(m.inputs[produceFieldQuantity].View(), m.focus == produceFieldQuantity) + "\n")

	sb.WriteString(m.styles.FieldLabel.Render("Photo (Optional)") + "\n")
	sb.WriteString(m.fieldBox(m.inputs[produceFieldImage].View(), m.focus == produceFieldImage) + "\n\n")

	if m.loading {
		sb.WriteString(m.styles.Info.Render("Adding...") + "\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("[Enter] Next/Submit  [Tab] Field  [←/→] Choose  [Esc] Cancel"))
	}
	return sb.String()
}

func (m ProduceFormPageModel) fieldBox(content string, focused bool) string {
	if focused {
		return m.styles.FocusedBox.Render(content)
	}
	return m.styles.BlurredBox.Render(content)
}

func (m ProduceFormPageModel) selector(value string, focused bool) string {
	return m.fieldBox(fmt.Sprintf("◂ %s ▸", value), focused)
}

// SetSize updates the size.
func (m *ProduceFormPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetError attaches a view-scoped error message.
func (m *ProduceFormPageModel) SetError(msg string) {
	m.errMsg = msg
}

// SetLoading toggles the in-flight indicator.
func (m *ProduceFormPageModel) SetLoading(on bool) {
	m.loading = on
}

// Reset clears the form for the next visit.
func (m *ProduceFormPageModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.categoryIdx = 0
	m.unitIdx = 0
	m.errMsg = ""
	m.loading = false
	m.focus = produceFieldTitle
	m.syncFocus()
}

// CancelTarget is where Esc returns to from the form.
func (m ProduceFormPageModel) CancelTarget() session.View {
	return session.ViewDashboard
}
