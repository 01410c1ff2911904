package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/flexblend/internal/blend"
	"github.com/rshade/flexblend/internal/config"
)

// mixStyles holds the lipgloss styles used by the table renderer.
type mixStyles struct {
	volume  lipgloss.Style
	total   lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

// newMixStyles returns colored styles when color is true and plain ones otherwise.
func newMixStyles(color bool) mixStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return mixStyles{volume: plain, total: plain, warning: plain, err: plain}
	}
	return mixStyles{
		volume:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		total:   lipgloss.NewStyle().Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// writerIsTerminal reports whether w is a terminal file.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// mixJSON is the machine-readable shape of a successful mix.
type mixJSON struct {
	Additive         float64 `json:"additive"`
	Base             float64 `json:"base"`
	Total            float64 `json:"total"`
	NoFuelNeeded     bool    `json:"no_fuel_needed"`
	Unreachable      bool    `json:"unreachable"`
	Warning          string  `json:"warning,omitempty"`
	ResultingEthanol float64 `json:"resulting_ethanol"`
}

// mixErrorJSON is the machine-readable shape of a rejected mix.
type mixErrorJSON struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// renderMix writes either the mix or the solver error in the given format.
// A non-nil solveErr suppresses all volumes.
func renderMix(w io.Writer, format string, mix blend.Mix, solveErr error, opts blend.SummaryOptions) error {
	switch format {
	case config.OutputFormatJSON:
		return renderMixJSON(w, mix, solveErr, true)
	case config.OutputFormatNDJSON:
		return renderMixJSON(w, mix, solveErr, false)
	default:
		return renderMixTable(w, mix, solveErr, opts, newMixStyles(writerIsTerminal(w)))
	}
}

// renderMixTable writes the human-readable result lines.
func renderMixTable(w io.Writer, mix blend.Mix, solveErr error, opts blend.SummaryOptions, styles mixStyles) error {
	if solveErr != nil {
		_, err := fmt.Fprintln(w, styles.err.Render(blend.Message(solveErr)))
		return err
	}

	lines := mix.SummaryLines(opts)
	for i, line := range lines {
		style := styles.volume
		if i == len(lines)-1 {
			style = styles.total
		}
		if _, err := fmt.Fprintln(w, style.Render(line)); err != nil {
			return err
		}
	}

	if adv := mix.Advisory(); adv != nil {
		if _, err := fmt.Fprintln(w, styles.warning.Render(blend.Message(adv))); err != nil {
			return err
		}
	}
	return nil
}

// renderMixJSON writes the result as indented JSON or a single NDJSON line.
func renderMixJSON(w io.Writer, mix blend.Mix, solveErr error, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}

	if solveErr != nil {
		return enc.Encode(mixErrorJSON{
			Error:   blend.Kind(solveErr).String(),
			Message: blend.Message(solveErr),
		})
	}

	out := mixJSON{
		Additive:         mix.Additive,
		Base:             mix.Base,
		Total:            mix.Total(),
		NoFuelNeeded:     mix.NoFuelNeeded(),
		Unreachable:      mix.Unreachable(),
		ResultingEthanol: mix.ResultingEthanol(),
	}
	if adv := mix.Advisory(); adv != nil {
		out.Warning = adv.Error()
	}
	return enc.Encode(out)
}
