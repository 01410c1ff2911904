package tui

import (
	"context"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/flexblend/internal/blend"
)

func referenceInput() blend.Input {
	return blend.Input{FuelLevel: 50, CurrentEthanol: 10, TankSize: 12.4, TargetEthanol: 30, BaseEthanol: 10}
}

func newTestModel(t *testing.T, in blend.Input) *MixModel {
	t.Helper()
	m := NewMixModel(context.Background(), in, nil, blend.SummaryOptions{Unit: "gallons", BaseLabel: "93E10", Precision: 2})
	require.NotNil(t, m)
	return m
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewMixModel(t *testing.T) {
	t.Run("solves initial input", func(t *testing.T) {
		m := newTestModel(t, referenceInput())

		mix, err := m.Result()
		require.NoError(t, err)
		assert.InDelta(t, 3.306667, mix.Additive, 1e-6)
		assert.InDelta(t, 2.893333, mix.Base, 1e-6)
		assert.Equal(t, MixStateEditing, m.state)
		assert.Len(t, m.rows, int(fieldCount))
		assert.Equal(t, referenceInput(), m.Input())
	})

	t.Run("widens slider ranges to fit seed values", func(t *testing.T) {
		seed := blend.Input{FuelLevel: 50, CurrentEthanol: 10, TankSize: 60, TargetEthanol: 30, BaseEthanol: 20}
		m := newTestModel(t, seed)

		assert.Equal(t, seed, m.Input())
		assert.InDelta(t, 60, m.rows[FieldTankSize].Max, 1e-9)
		assert.InDelta(t, 20, m.rows[FieldBaseEthanol].Max, 1e-9)

		mix, err := m.Result()
		require.NoError(t, err)
		assert.InDelta(t, 30, mix.Total(), 1e-9)

		m.focusedRow = int(FieldTankSize)
		m.nudge(1)
		assert.InDelta(t, 60, m.Input().TankSize, 1e-9, "widened max still bounds nudges")
	})

	t.Run("out of domain seeds reach the solver", func(t *testing.T) {
		m := newTestModel(t, blend.Input{FuelLevel: 120, CurrentEthanol: 10, TankSize: 12.4, TargetEthanol: 30, BaseEthanol: 10})

		assert.InDelta(t, 120, m.Input().FuelLevel, 1e-9)
		_, err := m.Result()
		assert.ErrorIs(t, err, blend.ErrOutOfRange)
	})

	t.Run("uses custom solve func", func(t *testing.T) {
		calls := 0
		solve := func(in blend.Input) (blend.Mix, error) {
			calls++
			return blend.Solve(in)
		}
		m := NewMixModel(context.Background(), referenceInput(), solve, blend.SummaryOptions{})
		m.Update(key(tea.KeyRight))

		assert.Equal(t, 2, calls)
	})
}

func TestMixModel_Init(t *testing.T) {
	m := newTestModel(t, referenceInput())
	assert.Nil(t, m.Init())
}

func TestMixModel_Navigation(t *testing.T) {
	m := newTestModel(t, referenceInput())

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focusedRow, "cannot move above first row")

	for i := 0; i < 10; i++ {
		m.Update(key(tea.KeyDown))
	}
	assert.Equal(t, int(fieldCount)-1, m.focusedRow, "cannot move below last row")

	m.Update(runes("k"))
	assert.Equal(t, int(fieldCount)-2, m.focusedRow)
	m.Update(runes("j"))
	assert.Equal(t, int(fieldCount)-1, m.focusedRow)
}

func TestMixModel_Adjust(t *testing.T) {
	t.Run("right raises target and recomputes", func(t *testing.T) {
		m := newTestModel(t, referenceInput())
		m.focusedRow = int(FieldTargetEthanol)
		before, _ := m.Result()

		m.Update(key(tea.KeyRight))

		assert.InDelta(t, 31, m.Input().TargetEthanol, 1e-9)
		after, err := m.Result()
		require.NoError(t, err)
		assert.Greater(t, after.Additive, before.Additive)
	})

	t.Run("tank size moves in tenths without drift", func(t *testing.T) {
		m := newTestModel(t, referenceInput())
		m.focusedRow = int(FieldTankSize)

		for i := 0; i < 3; i++ {
			m.Update(key(tea.KeyRight))
		}
		assert.InDelta(t, 12.7, m.Input().TankSize, 1e-9)

		m.Update(runes("h"))
		assert.InDelta(t, 12.6, m.Input().TankSize, 1e-9)
	})

	t.Run("page keys move ten steps and clamp", func(t *testing.T) {
		m := newTestModel(t, referenceInput())
		m.focusedRow = int(FieldFuelLevel)

		for i := 0; i < 10; i++ {
			m.Update(key(tea.KeyPgUp))
		}
		assert.InDelta(t, 100, m.Input().FuelLevel, 1e-9)

		mix, err := m.Result()
		require.NoError(t, err)
		assert.True(t, mix.NoFuelNeeded())

		m.Update(key(tea.KeyPgDown))
		assert.InDelta(t, 90, m.Input().FuelLevel, 1e-9)
	})
}

func TestMixModel_EditValue(t *testing.T) {
	t.Run("typed value is applied", func(t *testing.T) {
		m := newTestModel(t, referenceInput())
		m.focusedRow = int(FieldTargetEthanol)

		m.Update(key(tea.KeyEnter))
		require.True(t, m.editMode)
		assert.Equal(t, "30", m.textInput.Value())

		m.textInput.SetValue("80")
		m.Update(key(tea.KeyEnter))

		assert.False(t, m.editMode)
		assert.InDelta(t, 80, m.Input().TargetEthanol, 1e-9)
		mix, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, blend.ClampAdditiveOnly, mix.Clamp)
	})

	t.Run("typed value is clamped", func(t *testing.T) {
		m := newTestModel(t, referenceInput())
		m.focusedRow = int(FieldBaseEthanol)

		m.Update(key(tea.KeyEnter))
		m.textInput.SetValue("50")
		m.Update(key(tea.KeyEnter))

		assert.InDelta(t, 15, m.Input().BaseEthanol, 1e-9)
	})

	t.Run("non-number keeps previous value", func(t *testing.T) {
		m := newTestModel(t, referenceInput())

		m.Update(key(tea.KeyEnter))
		m.textInput.SetValue("lots")
		m.Update(key(tea.KeyEnter))

		assert.InDelta(t, 50, m.Input().FuelLevel, 1e-9)
		assert.Contains(t, m.parseErr, "not a number")
		assert.Contains(t, m.View(), "not a number")
	})

	t.Run("NaN reaches the solver and is rejected", func(t *testing.T) {
		m := newTestModel(t, referenceInput())

		m.Update(key(tea.KeyEnter))
		m.textInput.SetValue("NaN")
		m.Update(key(tea.KeyEnter))

		assert.True(t, math.IsNaN(m.Input().FuelLevel))
		_, err := m.Result()
		assert.ErrorIs(t, err, blend.ErrInvalidInput)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newTestModel(t, referenceInput())

		m.Update(key(tea.KeyEnter))
		m.textInput.SetValue("75")
		m.Update(key(tea.KeyEsc))

		assert.False(t, m.editMode)
		assert.InDelta(t, 50, m.Input().FuelLevel, 1e-9)
	})

	t.Run("q types instead of quitting while editing", func(t *testing.T) {
		m := newTestModel(t, referenceInput())

		m.Update(key(tea.KeyEnter))
		m.textInput.SetValue("")
		m.Update(runes("q"))

		assert.True(t, m.editMode)
		assert.Equal(t, MixStateEditing, m.state)
		assert.Equal(t, "q", m.textInput.Value())
	})
}

func TestMixModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		m := newTestModel(t, referenceInput())

		_, cmd := m.Update(msg)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, MixStateQuitting, m.state)
		assert.Empty(t, m.View())
	}
}

func TestMixModel_WindowSize(t *testing.T) {
	m := newTestModel(t, referenceInput())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestMixModel_View(t *testing.T) {
	t.Run("shows volumes", func(t *testing.T) {
		view := newTestModel(t, referenceInput()).View()

		assert.Contains(t, view, "Ethanol Content Calculator")
		assert.Contains(t, view, "Current Fuel Level")
		assert.Contains(t, view, "Add 3.31 gallons of E85")
		assert.Contains(t, view, "Add 2.89 gallons of 93E10")
		assert.Contains(t, view, "Total fuel to be added: 6.20 gallons")
		assert.Contains(t, view, "Resulting blend: 30.0% ethanol")
	})

	t.Run("error hides volumes", func(t *testing.T) {
		in := referenceInput()
		in.CurrentEthanol = 80
		in.TargetEthanol = 10
		view := newTestModel(t, in).View()

		assert.Contains(t, view, "cannot lower the ethanol content")
		assert.NotContains(t, view, "Add ")
	})

	t.Run("unreachable shows warning", func(t *testing.T) {
		in := referenceInput()
		in.TargetEthanol = 80
		view := newTestModel(t, in).View()

		assert.Contains(t, view, "Add 6.20 gallons of E85")
		assert.Contains(t, view, "Warning:")
	})

	t.Run("full tank", func(t *testing.T) {
		in := referenceInput()
		in.FuelLevel = 100
		view := newTestModel(t, in).View()

		assert.Contains(t, view, blend.NoFuelNeededText)
	})
}
