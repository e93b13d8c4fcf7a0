package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nexus/internal/theme"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Category     lipgloss.Style
	CategoryOn   lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	URL          lipgloss.Style
	Tag          lipgloss.Style
	Meta         lipgloss.Style
	Like         lipgloss.Style
	Dislike      lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	Label        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Success      lipgloss.Style
	Info         lipgloss.Style
}

// palette is one concrete color set.
type palette struct {
	primary  lipgloss.Color // main text
	subtle   lipgloss.Color // secondary text
	accent   lipgloss.Color // desaturated teal
	border   lipgloss.Color
	onAccent lipgloss.Color
	like     lipgloss.Color
	dislike  lipgloss.Color
	warning  lipgloss.Color
}

var (
	lightPalette = palette{
		primary:  "#505050",
		subtle:   "#888888",
		accent:   "#4A7070",
		border:   "#888888",
		onAccent: "#F5F5F5",
		like:     "#338833",
		dislike:  "#CC3333",
		warning:  "#CC8800",
	}
	darkPalette = palette{
		primary:  "#A0A0A0",
		subtle:   "#606060",
		accent:   "#5F8787",
		border:   "#505050",
		onAccent: "#1A1A1A",
		like:     "#66CC66",
		dislike:  "#FF6666",
		warning:  "#FFAA00",
	}
)

// NewStyles returns the styles for a resolved scheme.
// Industrial design: grayscale with single desaturated teal accent.
func NewStyles(scheme theme.Scheme) Styles {
	p := lightPalette
	if scheme.IsDark() {
		p = darkPalette
	}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Category: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(0, 1),

		CategoryOn: lipgloss.NewStyle().
			Background(p.accent).
			Foreground(p.onAccent).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Foreground(p.primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(p.accent).
			Foreground(p.onAccent),

		URL: lipgloss.NewStyle().
			Foreground(p.subtle),

		Tag: lipgloss.NewStyle().
			Foreground(p.accent),

		Meta: lipgloss.NewStyle().
			Foreground(p.subtle),

		Like: lipgloss.NewStyle().
			Foreground(p.like),

		Dislike: lipgloss.NewStyle().
			Foreground(p.dislike),

		Empty: lipgloss.NewStyle().
			Foreground(p.subtle).
			PaddingLeft(1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),

		Label: lipgloss.NewStyle().
			Foreground(p.subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(p.accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(p.subtle),

		Error: lipgloss.NewStyle().
			Foreground(p.dislike).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(p.like).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
	}
}
