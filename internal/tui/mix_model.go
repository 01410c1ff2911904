package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/flexblend/internal/blend"
	"github.com/rshade/flexblend/internal/logging"
)

// MixState represents the current state of the mix TUI.
type MixState int

const (
	// MixStateEditing indicates the user is adjusting inputs.
	MixStateEditing MixState = iota
	// MixStateQuitting indicates the application is exiting.
	MixStateQuitting
)

// Field identifies one of the five calculator inputs.
type Field int

// Fields in display order.
const (
	FieldFuelLevel Field = iota
	FieldCurrentEthanol
	FieldTankSize
	FieldTargetEthanol
	FieldBaseEthanol
	fieldCount
)

// InputRow is one adjustable input with the range of its slider.
type InputRow struct {
	Field Field
	Label string
	Value float64
	Min   float64
	Max   float64
	Step  float64
	Unit  string
}

// clamp limits v to the row's range. NaN is passed through so the solver can reject it.
func (r InputRow) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// SolveFunc computes a mix for the given input.
type SolveFunc func(blend.Input) (blend.Mix, error)

// Key names handled by the mix model.
const (
	mixKeyQuit  = "q"
	mixKeyCtrlC = "ctrl+c"
	mixKeyUp    = "up"
	mixKeyDown  = "down"
	mixKeyLeft  = "left"
	mixKeyRight = "right"
	mixKeyK     = "k"
	mixKeyJ     = "j"
	mixKeyH     = "h"
	mixKeyL     = "l"
	mixKeyEnter = "enter"
	mixKeyEsc   = "esc"
	mixKeyPgUp  = "pgup"
	mixKeyPgDn  = "pgdown"
)

// Default dimensions and input sizing.
const (
	mixDefaultWidth   = 80
	mixDefaultHeight  = 24
	mixInputCharLimit = 12
	mixInputWidth     = 12
	coarseStepFactor  = 10
)

// MixModel is the Bubble Tea model for the interactive blend calculator.
type MixModel struct {
	ctx context.Context

	rows       []InputRow
	focusedRow int
	editMode   bool
	textInput  textinput.Model
	parseErr   string

	mix     blend.Mix
	err     error
	solveFn SolveFunc
	summary blend.SummaryOptions

	state  MixState
	width  int
	height int
}

// DefaultRows returns the calculator inputs with their slider ranges,
// seeded from in. A finite seed outside a slider range widens that range so
// the calculator solves for exactly what was asked.
func DefaultRows(in blend.Input, unit string) []InputRow {
	rows := []InputRow{
		{Field: FieldFuelLevel, Label: "Current Fuel Level", Min: 0, Max: 100, Step: 1, Unit: "%"},
		{Field: FieldCurrentEthanol, Label: "Current Ethanol Content", Min: 0, Max: 85, Step: 1, Unit: "%"},
		{Field: FieldTankSize, Label: "Fuel Tank Size", Min: 1, Max: 50, Step: 0.1, Unit: unit},
		{Field: FieldTargetEthanol, Label: "Target Ethanol Content", Min: 0, Max: 85, Step: 1, Unit: "%"},
		{Field: FieldBaseEthanol, Label: "Ethanol % of Base Fuel", Min: 0, Max: 15, Step: 1, Unit: "%"},
	}
	values := [fieldCount]float64{in.FuelLevel, in.CurrentEthanol, in.TankSize, in.TargetEthanol, in.BaseEthanol}
	for i := range rows {
		v := values[rows[i].Field]
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			rows[i].Min = math.Min(rows[i].Min, v)
			rows[i].Max = math.Max(rows[i].Max, v)
		}
		rows[i].Value = v
	}
	return rows
}

// NewMixModel creates a MixModel seeded with in. solveFn is called after
// every change; summary controls how volumes are labelled.
func NewMixModel(ctx context.Context, in blend.Input, solveFn SolveFunc, summary blend.SummaryOptions) *MixModel {
	if solveFn == nil {
		solveFn = blend.Solve
	}
	unit := summary.Unit
	if unit == "" {
		unit = blend.DefaultUnit
	}

	ti := textinput.New()
	ti.CharLimit = mixInputCharLimit
	ti.Width = mixInputWidth
	ti.Placeholder = "value"

	m := &MixModel{
		ctx:       ctx,
		rows:      DefaultRows(in, unit),
		textInput: ti,
		solveFn:   solveFn,
		summary:   summary,
		state:     MixStateEditing,
		width:     mixDefaultWidth,
		height:    mixDefaultHeight,
	}
	m.recalculate()
	return m
}

// Init initializes the model.
func (m *MixModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *MixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.editMode {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *MixModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case mixKeyQuit, mixKeyCtrlC:
		m.state = MixStateQuitting
		return m, tea.Quit
	case mixKeyUp, mixKeyK:
		if m.focusedRow > 0 {
			m.focusedRow--
		}
	case mixKeyDown, mixKeyJ:
		if m.focusedRow < len(m.rows)-1 {
			m.focusedRow++
		}
	case mixKeyLeft, mixKeyH:
		m.nudge(-1)
	case mixKeyRight, mixKeyL:
		m.nudge(1)
	case mixKeyPgDn:
		m.nudge(-coarseStepFactor)
	case mixKeyPgUp:
		m.nudge(coarseStepFactor)
	case mixKeyEnter:
		m.editMode = true
		m.parseErr = ""
		m.textInput.SetValue(strconv.FormatFloat(m.rows[m.focusedRow].Value, 'f', -1, 64))
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()
	}
	return m, nil
}

func (m *MixModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case mixKeyCtrlC:
		m.state = MixStateQuitting
		return m, tea.Quit
	case mixKeyEsc:
		m.editMode = false
		m.textInput.Blur()
		return m, nil
	case mixKeyEnter:
		m.editMode = false
		m.textInput.Blur()
		raw := strings.TrimSpace(m.textInput.Value())
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			m.parseErr = fmt.Sprintf("%q is not a number", raw)
			return m, nil
		}
		m.setValue(m.focusedRow, v)
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// nudge moves the focused slider by steps increments.
func (m *MixModel) nudge(steps float64) {
	row := m.rows[m.focusedRow]
	v := row.Value + steps*row.Step
	// Keep decimal steps from accumulating float noise.
	v = math.Round(v/row.Step) * row.Step
	m.setValue(m.focusedRow, v)
}

func (m *MixModel) setValue(idx int, v float64) {
	m.parseErr = ""
	m.rows[idx].Value = m.rows[idx].clamp(v)
	m.recalculate()
}

// recalculate runs the solver for the current inputs.
func (m *MixModel) recalculate() {
	in := m.Input()
	mix, err := m.solveFn(in)
	m.mix = mix
	m.err = err

	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Float64("fuel_level", in.FuelLevel).
		Float64("target_ethanol", in.TargetEthanol).
		Str("kind", blend.Kind(err).String()).
		Msg("mix recalculated")
}

// Input returns the solver input built from the current slider values.
func (m *MixModel) Input() blend.Input {
	var in blend.Input
	for _, r := range m.rows {
		switch r.Field {
		case FieldFuelLevel:
			in.FuelLevel = r.Value
		case FieldCurrentEthanol:
			in.CurrentEthanol = r.Value
		case FieldTankSize:
			in.TankSize = r.Value
		case FieldTargetEthanol:
			in.TargetEthanol = r.Value
		case FieldBaseEthanol:
			in.BaseEthanol = r.Value
		case fieldCount:
		}
	}
	return in
}

// Result returns the last mix and solver error.
func (m *MixModel) Result() (blend.Mix, error) {
	return m.mix, m.err
}

// View renders the current view.
func (m *MixModel) View() string {
	if m.state == MixStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderMixHeader())
	sb.WriteString("\n\n")

	editBuffer := ""
	if m.editMode {
		editBuffer = m.textInput.View()
	}
	sb.WriteString(RenderInputTable(m.rows, m.focusedRow, m.editMode, editBuffer))
	sb.WriteString("\n")
	if m.parseErr != "" {
		sb.WriteString(RenderError(m.parseErr))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(RenderMixResult(m.mix, m.err, m.summary))
	sb.WriteString("\n\n")
	sb.WriteString(RenderMixHelp(m.editMode))
	return sb.String()
}
