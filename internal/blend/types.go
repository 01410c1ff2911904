// Package blend computes how much E85 and base fuel to add to a partially
// filled tank so that the full tank reaches a target ethanol percentage.
//
// Solve is a pure function: it validates five scalar inputs, solves the
// two-component mixing system and returns either a pair of volumes or a
// classified error. Volumes are in whatever unit the tank size is given in.
package blend

import (
	"fmt"
	"math"
)

// Input holds the tank state and fuel properties for one calculation.
// All percentages are on the 0..100 scale.
type Input struct {
	// FuelLevel is the percentage of the tank currently filled.
	FuelLevel float64 `json:"fuel_level" yaml:"fuel_level"`

	// CurrentEthanol is the ethanol percentage of the fuel in the tank.
	CurrentEthanol float64 `json:"current_ethanol" yaml:"current_ethanol"`

	// TankSize is the total tank capacity.
	TankSize float64 `json:"tank_size" yaml:"tank_size"`

	// TargetEthanol is the desired ethanol percentage after filling.
	TargetEthanol float64 `json:"target_ethanol" yaml:"target_ethanol"`

	// BaseEthanol is the ethanol percentage of the base fuel (10 for E10).
	BaseEthanol float64 `json:"base_ethanol" yaml:"base_ethanol"`
}

// Options tunes optional guards. The zero value applies no extra guards.
type Options struct {
	// MaxFuelLevel rejects inputs whose FuelLevel exceeds it. Zero disables the guard.
	MaxFuelLevel float64
}

// Derived holds the intermediate quantities computed from an Input.
type Derived struct {
	CurrentFuelVolume    float64 `json:"current_fuel_volume"`
	CurrentEthanolVolume float64 `json:"current_ethanol_volume"`
	TotalEthanolNeeded   float64 `json:"total_ethanol_needed"`
	EthanolToAdd         float64 `json:"ethanol_to_add"`
	FuelToAdd            float64 `json:"fuel_to_add"`
}

// ClampKind records whether the solver had to fall back to a single fuel.
type ClampKind int

const (
	// ClampNone means the exact target was reachable.
	ClampNone ClampKind = iota
	// ClampBaseOnly means the target is below what base fuel alone yields.
	ClampBaseOnly
	// ClampAdditiveOnly means the target is above what the additive alone yields.
	ClampAdditiveOnly
)

// String returns a human-readable representation of the ClampKind.
func (c ClampKind) String() string {
	switch c {
	case ClampNone:
		return "none"
	case ClampBaseOnly:
		return "base_only"
	case ClampAdditiveOnly:
		return "additive_only"
	default:
		return fmt.Sprintf("ClampKind(%d)", int(c))
	}
}

// Mix is a feasible answer: how much additive and base fuel to add.
type Mix struct {
	// Additive is the volume of E85 to add (V1).
	Additive float64

	// Base is the volume of base fuel to add (V2).
	Base float64

	// Clamp is set when the exact target was unreachable.
	Clamp ClampKind

	// Volumes holds the intermediate quantities of the calculation.
	Volumes Derived

	// Input is the validated input the mix was computed for.
	Input Input
}

// Total returns the total volume to add.
func (m Mix) Total() float64 {
	return m.Additive + m.Base
}

// NoFuelNeeded reports whether the tank needs nothing added.
func (m Mix) NoFuelNeeded() bool {
	return m.Additive == 0 && m.Base == 0
}

// Unreachable reports whether the volumes are a single-fuel fallback.
func (m Mix) Unreachable() bool {
	return m.Clamp != ClampNone
}

// ResultingEthanol returns the ethanol percentage of the full tank after adding the mix.
func (m Mix) ResultingEthanol() float64 {
	if m.Input.TankSize <= 0 {
		return 0
	}
	ethanol := m.Volumes.CurrentEthanolVolume +
		AdditiveFraction*m.Additive +
		(m.Input.BaseEthanol/percentScale)*m.Base
	return ethanol / m.Input.TankSize * percentScale
}

// Advisory returns a warning wrapping ErrUnreachable when the mix is a
// single-fuel fallback, or nil when the target is hit exactly.
func (m Mix) Advisory() error {
	switch m.Clamp {
	case ClampBaseOnly:
		return fmt.Errorf("%w: %.1f%% is below what %s alone gives, filling with base fuel only (%.1f%%)",
			ErrUnreachable, m.Input.TargetEthanol, BaseFuelLabel(m.Input.BaseEthanol), m.ResultingEthanol())
	case ClampAdditiveOnly:
		return fmt.Errorf("%w: %.1f%% is above what %s alone gives, filling with %s only (%.1f%%)",
			ErrUnreachable, m.Input.TargetEthanol, AdditiveLabel, AdditiveLabel, m.ResultingEthanol())
	case ClampNone:
		return nil
	default:
		return nil
	}
}

// BaseFuelLabel returns the conventional short name for a base fuel, e.g. "E10".
func BaseFuelLabel(baseEthanol float64) string {
	if baseEthanol == math.Trunc(baseEthanol) {
		return fmt.Sprintf("E%d", int(baseEthanol))
	}
	return fmt.Sprintf("E%.1f", baseEthanol)
}
