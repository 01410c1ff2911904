// Package tui implements the interactive flexblend calculator on Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the views.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("250")
	ColorValue     = lipgloss.Color("255")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("243")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorAdditive  = lipgloss.Color("220")
	ColorBase      = lipgloss.Color("75")
)

// Glyphs.
const (
	IconArrowRight = "→"
	IconWarning    = "⚠"
	IconError      = "✗"
	IconCheck      = "✓"
	sliderFill     = "█"
	sliderEmpty    = "░"
)
