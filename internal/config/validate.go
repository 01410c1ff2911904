package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = "1.0.0"

// Validation limits.
const (
	maxPrecision   = 6
	maxBaseEthanol = 85.0
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for values the CLI cannot use.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	switch c.Output.DefaultFormat {
	case OutputFormatTable, OutputFormatJSON, OutputFormatNDJSON:
	default:
		return fmt.Errorf("%w: output.default_format %q (want table, json or ndjson)",
			ErrInvalidConfig, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: output.precision %d (want 0-%d)", ErrInvalidConfig, c.Output.Precision, maxPrecision)
	}
	if c.Tank.Size <= 0 {
		return fmt.Errorf("%w: tank.size must be greater than 0, got %g", ErrInvalidConfig, c.Tank.Size)
	}
	if c.Fuel.BaseEthanol < 0 || c.Fuel.BaseEthanol >= maxBaseEthanol {
		return fmt.Errorf("%w: fuel.base_ethanol must be in [0, %g), got %g",
			ErrInvalidConfig, maxBaseEthanol, c.Fuel.BaseEthanol)
	}
	if c.Solver.MaxFuelLevel < 0 || c.Solver.MaxFuelLevel > 100 {
		return fmt.Errorf("%w: solver.max_fuel_level must be in [0, 100], got %g",
			ErrInvalidConfig, c.Solver.MaxFuelLevel)
	}
	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("%w: logging.level %q: %w", ErrInvalidConfig, c.Logging.Level, err)
		}
	}
	return nil
}

// validateVersion accepts an empty version (pre-versioned files) or any
// version sharing the major number of CurrentVersion.
func validateVersion(v string) error {
	if v == "" {
		return nil
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrInvalidConfig, v, err)
	}
	constraint, err := semver.NewConstraint("^" + CurrentVersion)
	if err != nil {
		return fmt.Errorf("building version constraint: %w", err)
	}
	if !constraint.Check(got) {
		return fmt.Errorf("%w: config version %s is not compatible with %s", ErrInvalidConfig, got, CurrentVersion)
	}
	return nil
}
