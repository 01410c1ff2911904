package blend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for volume formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// NoFuelNeededText is shown when the tank is already full.
const NoFuelNeededText = "No additional fuel needed."

// FormatVolume formats v with the given number of decimals and thousand separators.
// Example: FormatVolume(1234.567, 2) returns "1,234.57".
func FormatVolume(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(v*multiplier) / multiplier
	if rounded == 0 {
		// Avoid printing "-0.00" for tiny negatives.
		rounded = 0
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	grouped := printer.Sprintf("%d", n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-" + grouped
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + fracPart
}

// SummaryOptions controls how a Mix is rendered as text.
type SummaryOptions struct {
	// Unit is the volume unit label, e.g. "gallons".
	Unit string

	// BaseLabel names the base fuel, e.g. "93E10". Empty uses BaseFuelLabel.
	BaseLabel string

	// Precision is the number of decimals for volumes.
	Precision int
}

// SummaryLines renders the mix as the lines shown to a user:
//
//	Add 3.31 gallons of E85
//	Add 2.89 gallons of 93E10
//	Total fuel to be added: 6.20 gallons
//
// A full tank renders the single line NoFuelNeededText.
func (m Mix) SummaryLines(opts SummaryOptions) []string {
	if m.NoFuelNeeded() {
		return []string{NoFuelNeededText}
	}

	unit := opts.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	label := opts.BaseLabel
	if label == "" {
		label = BaseFuelLabel(m.Input.BaseEthanol)
	}

	return []string{
		fmt.Sprintf("Add %s %s of %s", FormatVolume(m.Additive, opts.Precision), unit, AdditiveLabel),
		fmt.Sprintf("Add %s %s of %s", FormatVolume(m.Base, opts.Precision), unit, label),
		fmt.Sprintf("Total fuel to be added: %s %s", FormatVolume(m.Total(), opts.Precision), unit),
	}
}

// Summary joins SummaryLines with newlines.
func (m Mix) Summary(opts SummaryOptions) string {
	return strings.Join(m.SummaryLines(opts), "\n")
}
