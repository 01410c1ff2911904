package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/flexblend/internal/blend"
)

// Column and slider sizing.
const (
	labelWidth  = 26
	valueWidth  = 10
	sliderWidth = 24
)

// RenderMixHeader renders the title box.
func RenderMixHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	return titleStyle.Render("Ethanol Content Calculator")
}

// RenderInputTable renders the five inputs with their sliders. When editing,
// editBuffer replaces the focused value.
func RenderInputTable(rows []InputRow, focusedRow int, editing bool, editBuffer string) string {
	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(renderInputRow(row, i == focusedRow, editing && i == focusedRow, editBuffer))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderInputRow(row InputRow, focused, editing bool, editBuffer string) string {
	var sb strings.Builder

	switch {
	case editing:
		sb.WriteString("> ")
	case focused:
		sb.WriteString(IconArrowRight + " ")
	default:
		sb.WriteString("  ")
	}

	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	if focused {
		labelStyle = labelStyle.Foreground(ColorHighlight).Bold(true)
		valueStyle = valueStyle.Bold(true)
	}

	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, row.Label)))

	if editing {
		sb.WriteString(editBuffer)
		return sb.String()
	}

	sb.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueWidth, formatRowValue(row))))
	sb.WriteString(" ")
	sb.WriteString(RenderSlider(row.Value, row.Min, row.Max, sliderWidth))
	return sb.String()
}

// formatRowValue formats a slider value with its unit.
func formatRowValue(row InputRow) string {
	if row.Unit == "%" {
		return blend.FormatVolume(row.Value, 0) + "%"
	}
	return blend.FormatVolume(row.Value, 1) + " " + abbreviateUnit(row.Unit)
}

func abbreviateUnit(unit string) string {
	switch unit {
	case "gallons":
		return "gal"
	case "liters", "litres":
		return "L"
	default:
		return unit
	}
}

// RenderSlider renders value as a bar of width cells between lo and hi.
func RenderSlider(value, lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if hi > lo && !math.IsNaN(value) {
		ratio := (value - lo) / (hi - lo)
		ratio = math.Max(0, math.Min(1, ratio))
		filled = int(math.Round(ratio * float64(width)))
	}
	fill := lipgloss.NewStyle().Foreground(ColorHighlight).Render(strings.Repeat(sliderFill, filled))
	empty := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat(sliderEmpty, width-filled))
	return fill + empty
}

// RenderMixResult renders the solver outcome. Errors hide all volumes,
// unreachable targets add a warning under the volumes.
func RenderMixResult(mix blend.Mix, err error, opts blend.SummaryOptions) string {
	if err != nil {
		return RenderError(blend.Message(err))
	}

	if mix.NoFuelNeeded() {
		return lipgloss.NewStyle().Foreground(ColorOK).Bold(true).Render(blend.NoFuelNeededText)
	}

	lines := mix.SummaryLines(opts)
	additiveStyle := lipgloss.NewStyle().Foreground(ColorAdditive).Bold(true)
	baseStyle := lipgloss.NewStyle().Foreground(ColorBase).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(ColorValue)

	var sb strings.Builder
	sb.WriteString(additiveStyle.Render(lines[0]))
	sb.WriteString("\n")
	sb.WriteString(baseStyle.Render(lines[1]))
	sb.WriteString("\n")
	sb.WriteString(totalStyle.Render(lines[2]))

	if adv := mix.Advisory(); adv != nil {
		sb.WriteString("\n")
		warn := lipgloss.NewStyle().Foreground(ColorWarning)
		sb.WriteString(warn.Render(IconWarning + " " + blend.Message(adv)))
	} else {
		sb.WriteString("\n")
		ok := lipgloss.NewStyle().Foreground(ColorMuted)
		sb.WriteString(ok.Render(fmt.Sprintf("%s Resulting blend: %.1f%% ethanol", IconCheck, mix.ResultingEthanol())))
	}

	return sb.String()
}

// RenderError renders msg as an error line.
func RenderError(msg string) string {
	style := lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	return style.Render(IconError + " " + msg)
}

// RenderMixHelp renders the keyboard shortcut help text.
func RenderMixHelp(editing bool) string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	shortcuts := []string{
		"↑/↓: Select",
		"←/→: Adjust",
		"PgUp/PgDn: Adjust x10",
		"Enter: Type value",
		"q: Quit",
	}
	if editing {
		shortcuts = []string{"Enter: Apply", "Esc: Cancel"}
	}

	return helpStyle.Render(strings.Join(shortcuts, " | "))
}
