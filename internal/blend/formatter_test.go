package blend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      string
	}{
		{"two decimals", 3.306667, 2, "3.31"},
		{"rounds down", 2.893333, 2, "2.89"},
		{"zero", 0, 2, "0.00"},
		{"tiny negative prints as zero", -0.000001, 2, "0.00"},
		{"thousands separator", 1234.567, 2, "1,234.57"},
		{"no decimals", 6.2, 0, "6"},
		{"negative precision treated as zero", 6.7, -1, "7"},
		{"negative value", -12.5, 1, "-12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVolume(tt.value, tt.precision))
		})
	}
}

func TestMix_SummaryLines(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		mix, err := Solve(Input{FuelLevel: 50, CurrentEthanol: 10, TankSize: 12.4, TargetEthanol: 30, BaseEthanol: 10})
		require.NoError(t, err)

		lines := mix.SummaryLines(SummaryOptions{Unit: "gallons", BaseLabel: "93E10", Precision: 2})
		assert.Equal(t, []string{
			"Add 3.31 gallons of E85",
			"Add 2.89 gallons of 93E10",
			"Total fuel to be added: 6.20 gallons",
		}, lines)
	})

	t.Run("defaults unit and label", func(t *testing.T) {
		mix := Mix{Additive: 1, Base: 2, Input: Input{BaseEthanol: 15}}

		lines := mix.SummaryLines(SummaryOptions{Precision: 1})
		assert.Equal(t, "Add 1.0 gallons of E85", lines[0])
		assert.Equal(t, "Add 2.0 gallons of E15", lines[1])
		assert.Equal(t, "Total fuel to be added: 3.0 gallons", lines[2])
	})

	t.Run("no fuel needed", func(t *testing.T) {
		mix := Mix{}
		assert.Equal(t, NoFuelNeededText, mix.Summary(SummaryOptions{}))
	})
}

func TestBaseFuelLabel(t *testing.T) {
	assert.Equal(t, "E10", BaseFuelLabel(10))
	assert.Equal(t, "E0", BaseFuelLabel(0))
	assert.Equal(t, "E7.5", BaseFuelLabel(7.5))
}
