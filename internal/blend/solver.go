package blend

import (
	"fmt"
	"math"
)

// Solve computes the volumes of E85 (V1) and base fuel (V2) that fill the tank
// to capacity at the target ethanol percentage, with no optional guards.
//
// It is equivalent to SolveWithOptions(in, Options{}).
func Solve(in Input) (Mix, error) {
	return SolveWithOptions(in, Options{})
}

// SolveWithOptions validates in, then solves
//
//	V1 + V2 = fuel_to_add
//	0.85*V1 + base*V2 = ethanol_to_add
//
// A full tank yields a zero Mix and no error. When the exact target cannot be
// reached the result is clamped to the closest single-fuel fill and
// Mix.Unreachable reports true; this is not an error.
//
// Errors wrap ErrInvalidInput, ErrOutOfRange, ErrInfeasibleBlend,
// ErrFuelLevelTooHigh, ErrCannotLowerEthanol or ErrCapacityExceeded. No
// volumes are returned alongside an error.
func SolveWithOptions(in Input, opts Options) (Mix, error) {
	if err := Validate(in, opts); err != nil {
		return Mix{}, err
	}

	vol := deriveVolumes(in)
	if vol.CurrentEthanolVolume > vol.TotalEthanolNeeded {
		return Mix{}, fmt.Errorf("%w: tank holds %.4f of ethanol, target needs %.4f",
			ErrCannotLowerEthanol, vol.CurrentEthanolVolume, vol.TotalEthanolNeeded)
	}

	mix := Mix{Volumes: vol, Input: in}
	if vol.FuelToAdd <= 0 {
		return mix, nil
	}

	baseFraction := in.BaseEthanol / percentScale
	v1 := (vol.EthanolToAdd - vol.FuelToAdd*baseFraction) / (AdditiveFraction - baseFraction)
	v2 := vol.FuelToAdd - v1

	v1 = snap(v1)
	v2 = snap(v2)

	switch {
	case v1 < 0:
		v1, v2 = 0, vol.FuelToAdd
		mix.Clamp = ClampBaseOnly
	case v2 < 0:
		v1, v2 = vol.FuelToAdd, 0
		mix.Clamp = ClampAdditiveOnly
	}

	if v1+v2 > in.TankSize+CapacityTolerance {
		return Mix{}, fmt.Errorf("%w: %.4f + %.4f > %.4f", ErrCapacityExceeded, v1, v2, in.TankSize)
	}

	mix.Additive = v1
	mix.Base = v2
	return mix, nil
}

// Validate checks in against the input domain without solving.
// Checks run in order: finiteness, ranges, blend feasibility, fuel level guard.
func Validate(in Input, opts Options) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"fuel_level", in.FuelLevel},
		{"current_ethanol", in.CurrentEthanol},
		{"tank_size", in.TankSize},
		{"target_ethanol", in.TargetEthanol},
		{"base_ethanol", in.BaseEthanol},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidInput, f.name, f.value)
		}
	}

	if in.TankSize <= 0 {
		return fmt.Errorf("%w: tank_size must be greater than 0, got %g", ErrOutOfRange, in.TankSize)
	}
	for _, f := range fields {
		if f.name == "tank_size" || f.name == "base_ethanol" {
			continue
		}
		if f.value < MinPercent || f.value > MaxPercent {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g",
				ErrOutOfRange, f.name, MinPercent, MaxPercent, f.value)
		}
	}
	if in.BaseEthanol < MinPercent || in.BaseEthanol >= MaxPercent {
		return fmt.Errorf("%w: base_ethanol must be at least %g and below %g, got %g",
			ErrOutOfRange, MinPercent, MaxPercent, in.BaseEthanol)
	}

	if in.BaseEthanol/percentScale >= AdditiveFraction {
		return fmt.Errorf("%w: base fuel at %g%% is not below %s at %g%%",
			ErrInfeasibleBlend, in.BaseEthanol, AdditiveLabel, AdditivePercent)
	}

	if opts.MaxFuelLevel > 0 && in.FuelLevel > opts.MaxFuelLevel {
		return fmt.Errorf("%w: %g%% is above the %g%% limit", ErrFuelLevelTooHigh, in.FuelLevel, opts.MaxFuelLevel)
	}

	return nil
}

// deriveVolumes computes the intermediate quantities for a validated input.
func deriveVolumes(in Input) Derived {
	currentFuel := in.FuelLevel / percentScale * in.TankSize
	currentEthanol := in.CurrentEthanol / percentScale * currentFuel
	needed := in.TargetEthanol / percentScale * in.TankSize

	return Derived{
		CurrentFuelVolume:    currentFuel,
		CurrentEthanolVolume: currentEthanol,
		TotalEthanolNeeded:   needed,
		EthanolToAdd:         needed - currentEthanol,
		FuelToAdd:            in.TankSize - currentFuel,
	}
}

// snap returns 0 for values within SnapEpsilon of zero.
func snap(v float64) float64 {
	if math.Abs(v) < SnapEpsilon {
		return 0
	}
	return v
}
