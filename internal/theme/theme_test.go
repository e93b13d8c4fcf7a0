package theme

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"light", "dark", "system"} {
		m, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", s, err)
		}
		if string(m) != s {
			t.Errorf("Parse(%q) = %q", s, m)
		}
	}

	m, err := Parse("sepia")
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
	if m != System {
		t.Errorf("invalid input should fall back to system, got %q", m)
	}
}

func TestMode_NextCycles(t *testing.T) {
	want := []Mode{Light, Dark, System, Light}
	m := System
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Errorf("step %d: got %q, want %q", i, m, w)
		}
	}
}

func TestResolve(t *testing.T) {
	dark := SignalFunc(func() bool { return true })
	light := SignalFunc(func() bool { return false })

	tests := []struct {
		mode   Mode
		signal Signal
		want   Scheme
	}{
		{Light, dark, SchemeLight},
		{Dark, light, SchemeDark},
		{System, dark, SchemeDark},
		{System, light, SchemeLight},
		{System, nil, SchemeLight},
	}

	for _, tt := range tests {
		if got := Resolve(tt.mode, tt.signal); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestWatcher_PollOnlyInSystemMode(t *testing.T) {
	isDark := false
	signal := SignalFunc(func() bool { return isDark })

	w := NewWatcher(System, signal)
	if w.Scheme() != SchemeLight {
		t.Fatalf("expected light initially, got %q", w.Scheme())
	}

	isDark = true
	if !w.Poll() {
		t.Error("expected change to be reported in system mode")
	}
	if w.Scheme() != SchemeDark {
		t.Errorf("expected dark after poll, got %q", w.Scheme())
	}
	if w.Poll() {
		t.Error("no change expected on second poll")
	}

	w.SetMode(Light)
	isDark = true
	if w.Poll() {
		t.Error("explicit mode must ignore the host signal")
	}
	if w.Scheme() != SchemeLight {
		t.Errorf("expected light, got %q", w.Scheme())
	}
}

func TestSystemSignal_EnvOverride(t *testing.T) {
	s := NewSystemSignal(false)

	t.Setenv("NEXUS_COLOR_SCHEME", "dark")
	if !s.IsDark() {
		t.Error("expected dark from env")
	}

	t.Setenv("NEXUS_COLOR_SCHEME", "light")
	if s.IsDark() {
		t.Error("expected light from env")
	}
}
