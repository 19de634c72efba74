// Package domain contains the core types and cycle rules for ZenFlowz:
// session modes, cycle goals, progression counters and quality history.
package domain

import "errors"

var (
	// ErrUnknownMode is returned when parsing an unrecognized mode name.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode identifies the kind of session currently on the clock.
type Mode string

const (
	// ModeZone is a focus session.
	ModeZone Mode = "zone"

	// ModeBreath is the short rest after a zone.
	ModeBreath Mode = "breath"

	// ModeDrift is the long rest earned after a run of zones.
	ModeDrift Mode = "drift"
)

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModeZone, ModeBreath, ModeDrift}
}

// Label returns a human-readable label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeZone:
		return "Zone"
	case ModeBreath:
		return "Breath"
	case ModeDrift:
		return "Drift"
	default:
		return "Unknown"
	}
}

// LimitMinutes returns the upper bound for the mode's configured
// duration. Writes above the limit are clamped, not rejected.
func (m Mode) LimitMinutes() int {
	switch m {
	case ModeZone:
		return 180
	case ModeBreath:
		return 30
	case ModeDrift:
		return 90
	default:
		return 1
	}
}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeZone, ModeBreath, ModeDrift:
		return Mode(s), nil
	}
	return "", ErrUnknownMode
}

// IsRest reports whether the mode is a rest session.
func (m Mode) IsRest() bool {
	return m == ModeBreath || m == ModeDrift
}
