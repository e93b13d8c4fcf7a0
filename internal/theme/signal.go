package theme

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Signal reports the host environment's current light/dark preference.
type Signal interface {
	IsDark() bool
}

// SignalFunc adapts a function to Signal.
type SignalFunc func() bool

func (f SignalFunc) IsDark() bool { return f() }

// SystemSignal reads the desktop color scheme on every call.
// Lookup order: NEXUS_COLOR_SCHEME ("dark"/"light"), the desktop setting
// (macOS defaults, GNOME gsettings), then Fallback.
type SystemSignal struct {
	Fallback bool          // terminal background, detected once at start
	Timeout  time.Duration // per desktop query
}

// NewSystemSignal creates a SystemSignal with the given fallback.
func NewSystemSignal(fallbackDark bool) *SystemSignal {
	return &SystemSignal{Fallback: fallbackDark, Timeout: 500 * time.Millisecond}
}

func (s *SystemSignal) IsDark() bool {
	if dark, ok := parseScheme(os.Getenv("NEXUS_COLOR_SCHEME")); ok {
		return dark
	}
	if dark, ok := s.desktop(); ok {
		return dark
	}
	return s.Fallback
}

// desktop queries the OS setting. ok is false when it can't be determined.
func (s *SystemSignal) desktop() (dark bool, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
		if err != nil {
			// The key is absent in light mode
			if _, isExit := err.(*exec.ExitError); isExit {
				return false, true
			}
			return false, false
		}
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	case "linux":
		out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
		if err != nil {
			return false, false
		}
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	return false, false
}

func parseScheme(s string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}
