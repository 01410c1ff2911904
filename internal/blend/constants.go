package blend

// Fuel composition constants.
const (
	// AdditiveFraction is the ethanol fraction of the high-ethanol additive (E85).
	AdditiveFraction = 0.85

	// AdditivePercent is AdditiveFraction expressed as a percentage.
	AdditivePercent = AdditiveFraction * percentScale

	// AdditiveLabel is the display name of the high-ethanol additive.
	AdditiveLabel = "E85"
)

// Numerical tolerances used by the solver.
const (
	// SnapEpsilon is the magnitude below which a solved volume is treated as exactly zero.
	// It absorbs floating point noise left behind by the closed-form division.
	SnapEpsilon = 1e-10

	// CapacityTolerance is the slack allowed when checking V1+V2 against the tank size.
	CapacityTolerance = 1e-9
)

// Input domain bounds.
const (
	percentScale = 100.0

	// MinPercent is the lowest accepted percentage for any input.
	MinPercent = 0.0

	// MaxPercent is the highest accepted percentage for fuel level and ethanol contents.
	// The base fuel ethanol content must be strictly below it.
	MaxPercent = 100.0
)

// Display defaults.
const (
	// DefaultPrecision is the number of decimal places used for volumes.
	DefaultPrecision = 2

	// DefaultUnit is the volume unit shown next to quantities.
	DefaultUnit = "gallons"
)
