// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants shared by the page models
const (
	HeaderHeight = 2
	FooterHeight = 2

	ContentHorizontalPadding = 4
	ContentVerticalPadding   = 6

	TableHeaderHeight = 3
	ControlsHeight    = 3

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
)

// ContentWidth returns the usable content width for a terminal width.
func ContentWidth(terminalWidth int) int {
	w := terminalWidth - ContentHorizontalPadding
	if w < 20 {
		w = 20
	}
	return w
}

// ContentHeight returns the usable content height for a terminal height.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - FooterHeight - ContentVerticalPadding
	if h < 5 {
		h = 5
	}
	return h
}
