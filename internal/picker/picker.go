package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/theme"
)

type styles struct {
	selected lipgloss.Style
	normal   lipgloss.Style
	match    lipgloss.Style
	meta     lipgloss.Style
	header   lipgloss.Style
}

func stylesFor(scheme theme.Scheme) styles {
	accent, text, muted, match := "212", "252", "244", "214"
	if !scheme.IsDark() {
		accent, text, muted, match = "125", "235", "242", "166"
	}
	return styles{
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		match:    lipgloss.NewStyle().Foreground(lipgloss.Color(match)).Underline(true),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true).MarginBottom(1),
	}
}

// Picker is a small TUI for choosing one fuzzy search result.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
	styles    styles
}

// New creates a Picker over results rendered for scheme.
func New(results []search.SearchResult, query string, scheme theme.Scheme) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
		styles:  stylesFor(scheme),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit
		case "enter":
			if len(p.results) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit
		case "down", "j", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
		case "up", "k", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
		case "g":
			p.cursor = 0
		case "G":
			if len(p.results) > 0 {
				p.cursor = len(p.results) - 1
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.header.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	// Each result takes two lines; keep the cursor visible
	visible := max((p.height-5)/2, 1)
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(p.results))

	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := p.styles.normal
		if i == p.cursor {
			cursor = "> "
			style = p.styles.selected
		}

		title := highlight(result.Bookmark.Title, result.MatchedIndexes, style, p.styles.match)
		meta := fmt.Sprintf("%s  ·  %s  ·  +%d -%d",
			result.Bookmark.URL, result.Bookmark.Category, result.Bookmark.Likes, result.Bookmark.Dislikes)

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, title))
		b.WriteString(fmt.Sprintf("   %s\n", p.styles.meta.Render(meta)))
	}

	b.WriteString("\n")
	b.WriteString(p.styles.meta.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlight renders the runes at matched byte indexes with matchStyle.
func highlight(s string, matched []int, base, matchStyle lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
