package blend

import (
	"errors"
	"fmt"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by Solve. Compare with errors.Is; the returned
// errors wrap these with the offending field and value.
var (
	// ErrInvalidInput indicates a value that is not a finite real number.
	ErrInvalidInput = constError("invalid input")

	// ErrOutOfRange indicates a percentage or tank size outside its domain.
	ErrOutOfRange = constError("value out of range")

	// ErrCannotLowerEthanol indicates the tank already holds more ethanol than the
	// target implies. Adding ethanol-bearing fuel cannot lower the percentage.
	ErrCannotLowerEthanol = constError("cannot lower ethanol content")

	// ErrInfeasibleBlend indicates the base fuel is at least as ethanol-rich as the
	// additive, so the two fuels cannot be blended toward a target.
	ErrInfeasibleBlend = constError("infeasible blend")

	// ErrCapacityExceeded indicates the computed volumes overflow the tank.
	ErrCapacityExceeded = constError("calculated volumes exceed tank capacity")

	// ErrFuelLevelTooHigh indicates the tank is fuller than the configured guard allows.
	ErrFuelLevelTooHigh = constError("fuel level too high")

	// ErrUnreachable is advisory: the exact target cannot be hit and the volumes
	// describe the closest single-fuel fill. It is never returned as the error of Solve.
	ErrUnreachable = constError("target ethanol content unreachable")
)

// ErrorKind classifies solver errors for the presentation layer.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindInvalidInput classifies ErrInvalidInput.
	KindInvalidInput
	// KindOutOfRange classifies ErrOutOfRange.
	KindOutOfRange
	// KindCannotLowerEthanol classifies ErrCannotLowerEthanol.
	KindCannotLowerEthanol
	// KindInfeasibleBlend classifies ErrInfeasibleBlend.
	KindInfeasibleBlend
	// KindCapacityExceeded classifies ErrCapacityExceeded.
	KindCapacityExceeded
	// KindFuelLevelTooHigh classifies ErrFuelLevelTooHigh.
	KindFuelLevelTooHigh
	// KindUnreachable classifies ErrUnreachable.
	KindUnreachable
	// KindUnknown is any error not produced by this package.
	KindUnknown
)

// String returns a stable identifier for the kind, used in JSON output.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindOutOfRange:
		return "out_of_range"
	case KindCannotLowerEthanol:
		return "cannot_lower_ethanol"
	case KindInfeasibleBlend:
		return "infeasible_blend"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindFuelLevelTooHigh:
		return "fuel_level_too_high"
	case KindUnreachable:
		return "unreachable"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

//nolint:gochecknoglobals // Lookup table mapping sentinels to kinds.
var kindBySentinel = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrOutOfRange, KindOutOfRange},
	{ErrCannotLowerEthanol, KindCannotLowerEthanol},
	{ErrInfeasibleBlend, KindInfeasibleBlend},
	{ErrCapacityExceeded, KindCapacityExceeded},
	{ErrFuelLevelTooHigh, KindFuelLevelTooHigh},
	{ErrUnreachable, KindUnreachable},
}

// Kind classifies err. A nil error is KindNone.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, s := range kindBySentinel {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}

// IsInputError reports whether err is one the user can fix by changing inputs.
func IsInputError(err error) bool {
	switch Kind(err) {
	case KindInvalidInput, KindOutOfRange, KindCannotLowerEthanol,
		KindInfeasibleBlend, KindFuelLevelTooHigh:
		return true
	default:
		return false
	}
}

// Message returns the human-readable message shown to the user for err.
func Message(err error) string {
	switch Kind(err) {
	case KindNone:
		return ""
	case KindCannotLowerEthanol:
		return "Error: Current ethanol content is already higher than the target ethanol content. " +
			"You cannot lower the ethanol content by adding more ethanol."
	case KindFuelLevelTooHigh:
		return "Error: Current fuel level is too high to make a significant adjustment to the " +
			"ethanol content. Please refuel after consuming some fuel."
	case KindCapacityExceeded:
		return "Error: Calculated volumes exceed tank capacity"
	case KindInfeasibleBlend:
		return "Error: Base fuel ethanol content must be below " + AdditiveLabel + " (85%): " + err.Error()
	case KindInvalidInput:
		return "Error: All inputs must be numbers: " + err.Error()
	case KindOutOfRange:
		return "Error: " + err.Error()
	case KindUnreachable:
		return "Warning: " + err.Error()
	case KindUnknown:
		return "Error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
