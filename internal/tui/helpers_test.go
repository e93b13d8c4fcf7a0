package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func layoutDefaults() layout.LayoutConfig {
	return layout.DefaultConfig()
}
