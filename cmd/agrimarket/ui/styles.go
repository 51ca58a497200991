// Package ui provides the visual styling and per-screen page models for the
// AgriMarket terminal client, with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Marketplace palette. Green is the brand color throughout.
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f9fafb")
	LightForeground = lipgloss.Color("#14532d") // Deep green
	LightPrimary    = lipgloss.Color("#16a34a") // Green 600
	LightAccent     = lipgloss.Color("#ca8a04") // Harvest gold
	LightSecondary  = lipgloss.Color("#dcfce7") // Green 100
	LightMuted      = lipgloss.Color("#9ca3af")
	LightBorder     = lipgloss.Color("#d1d5db")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#111827")
	DarkForeground = lipgloss.Color("#f0fdf4")
	DarkPrimary    = lipgloss.Color("#4ade80") // Green 400
	DarkAccent     = lipgloss.Color("#facc15")
	DarkSecondary  = lipgloss.Color("#1f2937")
	DarkMuted      = lipgloss.Color("#6b7280")
	DarkBorder     = lipgloss.Color("#374151")
	DarkCard       = lipgloss.Color("#1f2937")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626")
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#f59e0b")
	Info        = lipgloss.Color("#2563eb")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme auto-detects based on terminal hints or returns light mode.
func DetectTheme() Theme {
	// COLORFGBG is usually "foreground;background"; ANSI backgrounds 0-6
	// and 8 indicate a dark terminal.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("AGRIMARKET_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Prompt     lipgloss.Style
	FieldLabel lipgloss.Style
	FocusedBox lipgloss.Style
	BlurredBox lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Price   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			MarginRight(2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FocusedBox: box.BorderForeground(theme.Primary),
		BlurredBox: box,

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
	}
}

// DefaultStyles returns styles with the default (light) theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// StatusBadge renders an order or availability status with its semantic color.
func (s Styles) StatusBadge(status string) string {
	style := s.Muted
	switch status {
	case "pending":
		style = s.Warning
	case "confirmed":
		style = s.Info
	case "paid", "delivered", "available":
		style = s.Success
	case "cancelled", "unavailable":
		style = s.Error
	}
	return style.Render(status)
}
