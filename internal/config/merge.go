package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyVersion = "version"
	keyOutput  = "output"
	keyTank    = "tank"
	keyFuel    = "fuel"
	keySolver  = "solver"
	keyLogging = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyVersion: true,
	keyOutput:  true,
	keyTank:    true,
	keyFuel:    true,
	keySolver:  true,
	keyLogging: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	// Sections stay as nodes so scalars keep their source text ("93E10" is a label, not a float).
	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes node into a fresh zero value for the section named
// by key and replaces that section of target with it.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyVersion:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Version = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyTank:
		var v TankConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Tank = v
	case keyFuel:
		var v FuelConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Fuel = v
	case keySolver:
		var v SolverConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Solver = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
