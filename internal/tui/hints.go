package tui

import (
	"strings"

	"github.com/nikbrunner/nexus/internal/search"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "Enter", "j/k")
	Desc string // Short description (e.g., "confirm", "move")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, d, +, -)
	Action []Hint // Action hints (o, Y, /)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move h/l:category"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// contextualHints returns the hints for the current mode.
func (a App) contextualHints() HintSet {
	switch a.mode {
	case ModeSearch:
		return HintSet{
			Action: []Hint{{"Enter", "keep"}},
			System: []Hint{{"Esc", "clear"}},
		}
	case ModeAdd:
		return HintSet{
			Nav:    []Hint{{"Tab", "next field"}},
			Action: []Hint{{"C-r", "analyze"}, {"Enter", "save"}},
			System: []Hint{{"Esc", "cancel"}},
		}
	case ModeConfirmDelete:
		return HintSet{
			Action: []Hint{{"y", "delete"}},
			System: []Hint{{"n", "cancel"}},
		}
	case ModeHelp:
		return HintSet{System: []Hint{{"any key", "close"}}}
	}

	hints := HintSet{
		Nav:    []Hint{{"j/k", "move"}, {"h/l", "category"}},
		Edit:   []Hint{{"a", "add"}},
		System: []Hint{{"T", "theme"}, {"?", "help"}, {"q", "quit"}},
	}
	if len(a.items) > 0 {
		hints.Action = []Hint{{"o", "open"}, {"Y", "yank"}, {"/", "search"}}
		hints.Edit = append(hints.Edit, Hint{"d", "delete"}, Hint{"+/-", "vote"})
	} else {
		hints.Action = []Hint{{"/", "search"}}
	}
	if a.view.Query != "" || a.view.Category != search.AllCategories {
		hints.System = append([]Hint{{"Esc", "reset"}}, hints.System...)
	}
	return hints
}
