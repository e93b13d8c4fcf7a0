package theme

// Watcher tracks the resolved scheme for a mode and reports when the host
// signal flips while the mode is System.
type Watcher struct {
	signal  Signal
	mode    Mode
	current Scheme
}

// NewWatcher creates a Watcher and resolves the initial scheme.
func NewWatcher(mode Mode, signal Signal) *Watcher {
	return &Watcher{
		signal:  signal,
		mode:    mode,
		current: Resolve(mode, signal),
	}
}

// Mode returns the current preference.
func (w *Watcher) Mode() Mode {
	return w.mode
}

// Scheme returns the last resolved scheme.
func (w *Watcher) Scheme() Scheme {
	return w.current
}

// SetMode switches the preference and re-resolves immediately.
func (w *Watcher) SetMode(mode Mode) Scheme {
	w.mode = mode
	w.current = Resolve(mode, w.signal)
	return w.current
}

// Poll re-evaluates the host signal. It only consults the signal while the
// mode is System and returns true when the resolved scheme changed.
func (w *Watcher) Poll() bool {
	if w.mode != System {
		return false
	}
	next := Resolve(System, w.signal)
	if next == w.current {
		return false
	}
	w.current = next
	return true
}
