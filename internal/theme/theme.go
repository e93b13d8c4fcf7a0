package theme

import (
	"errors"
	"fmt"
)

// Mode is the stored display preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// Scheme is the concrete light/dark appearance after resolving a Mode.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

var ErrInvalidMode = errors.New("theme must be light, dark or system")

// Parse parses a stored or user-supplied mode.
func Parse(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark, System:
		return Mode(s), nil
	}
	return System, fmt.Errorf("%w: got %q", ErrInvalidMode, s)
}

// Next returns the mode after m in the cycle system -> light -> dark -> system.
func (m Mode) Next() Mode {
	switch m {
	case System:
		return Light
	case Light:
		return Dark
	default:
		return System
	}
}

// Resolve returns the scheme for m, consulting signal only for System.
func Resolve(m Mode, signal Signal) Scheme {
	switch m {
	case Light:
		return SchemeLight
	case Dark:
		return SchemeDark
	}
	if signal != nil && signal.IsDark() {
		return SchemeDark
	}
	return SchemeLight
}

// IsDark reports whether s is the dark scheme.
func (s Scheme) IsDark() bool {
	return s == SchemeDark
}
