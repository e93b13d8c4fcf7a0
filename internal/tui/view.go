package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// renderView renders the full screen for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeAdd, ModeConfirmDelete:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderCategoryBar(),
		a.renderSearchLine(),
		a.renderList(),
		a.renderHelpBar(),
	))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderHeader() string {
	total := len(a.lib.Bookmarks())
	count := fmt.Sprintf("%d bookmarks", total)
	if len(a.items) != total {
		count = fmt.Sprintf("%d of %d bookmarks", len(a.items), total)
	}
	return a.styles.Title.Render("nexus") + "  " +
		a.styles.Meta.Render(count+"  theme:"+string(a.watcher.Mode()))
}

func (a App) renderCategoryBar() string {
	parts := make([]string, len(a.categories))
	for i, c := range a.categories {
		if c == a.view.Category {
			parts[i] = a.styles.CategoryOn.Render(c)
		} else {
			parts[i] = a.styles.Category.Render(c)
		}
	}
	bar := strings.Join(parts, " ")
	if layout.VisibleLength(bar) > a.width-a.layoutConfig.List.ContentPadding {
		// Too wide for one line, only show the active category.
		bar = a.styles.Category.Render("category:") + a.styles.CategoryOn.Render(a.view.Category)
	}
	return bar
}

func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.searchInput.View()
	}
	if a.view.Query != "" {
		return a.styles.Meta.Render("/ " + a.view.Query)
	}
	return ""
}

func (a App) renderList() string {
	height := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	if len(a.items) == 0 {
		text := "No bookmarks yet. Press a to add one."
		if a.view.Query != "" || len(a.lib.Bookmarks()) > 0 {
			text = "No bookmarks match."
		}
		return lipgloss.NewStyle().Height(height).Render(a.styles.Empty.Render(text))
	}

	visible := layout.CalculateVisibleItems(height, a.layoutConfig.List)
	offset := layout.CalculateViewportOffset(a.cursor, len(a.items), visible)
	end := min(offset+visible, len(a.items))
	width := layout.CalculateItemWidth(a.width, a.layoutConfig.List)

	var b strings.Builder
	for i := offset; i < end; i++ {
		b.WriteString(a.renderItem(a.items[i], i == a.cursor, width))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

// renderItem renders a bookmark as a title line, a meta line and a spacer.
func (a App) renderItem(bm model.Bookmark, selected bool, width int) string {
	votes := a.renderVotes(bm)
	titleWidth := width - layout.VisibleLength(votes) - 3
	title, _ := layout.TruncateText(bm.Title, titleWidth, a.layoutConfig.Text)

	titleStyle := a.styles.Item
	prefix := "  "
	if selected {
		titleStyle = a.styles.ItemSelected
		prefix = "▸ "
	}
	line1 := titleStyle.Render(prefix+title) + " " + votes

	meta := layout.MetaLine(bm.URL, bm.Category, bm.Tags, width-3, a.layoutConfig.Text)
	line2 := "   " + a.styles.Meta.Render(meta)

	return line1 + "\n" + line2 + "\n"
}

func (a App) renderVotes(bm model.Bookmark) string {
	like := fmt.Sprintf("+%d", bm.Likes)
	dislike := fmt.Sprintf("-%d", bm.Dislikes)

	switch bm.UserVote {
	case model.VoteLike:
		like = a.styles.Like.Render(like)
		dislike = a.styles.Meta.Render(dislike)
	case model.VoteDislike:
		like = a.styles.Meta.Render(like)
		dislike = a.styles.Dislike.Render(dislike)
	default:
		like = a.styles.Meta.Render(like)
		dislike = a.styles.Meta.Render(dislike)
	}
	return like + " " + dislike
}

func (a App) renderHelpBar() string {
	var lines []string

	// Message replaces the gap line
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.contextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageWarning:
		return a.styles.Warning.Render("⚠ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Info.Render(a.messageText)
	}
}

func (a App) renderModal() string {
	var title, content strings.Builder
	var hints []Hint

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	switch a.mode {
	case ModeAdd:
		title.WriteString("Add Bookmark\n\n")
		for i := range a.form.Inputs {
			content.WriteString(a.styles.Label.Render(fieldLabels[i] + ":"))
			content.WriteString("\n")
			content.WriteString(a.form.Inputs[i].View())
			content.WriteString("\n\n")
		}
		if a.form.Analyzing {
			content.WriteString(a.styles.Info.Render("Analyzing..."))
			content.WriteString("\n\n")
		} else if a.messageText != "" {
			content.WriteString(a.renderMessageLine())
			content.WriteString("\n\n")
		}
		hints = []Hint{{"Tab", "next"}, {"C-r", "analyze"}, {"Enter", "save"}, {"Esc", "cancel"}}

	case ModeConfirmDelete:
		title.WriteString("Delete Bookmark\n\n")
		name := a.deleteID
		if bm := a.lib.Get(a.deleteID); bm != nil {
			name = bm.Title
		}
		content.WriteString(fmt.Sprintf("Delete %q?\n\n", name))
		hints = []Hint{{"y", "delete"}, {"n", "cancel"}}
	}

	content.WriteString(a.renderHintsInline(hints))

	modal := modalStyle.Render(a.styles.Title.Render(title.String()) + content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

func (a App) renderHelpOverlay() string {
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("h/l  category\n")
	left.WriteString("/    search\n")
	left.WriteString("Esc  reset view\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("a    add bookmark\n")
	right.WriteString("d    delete\n")
	right.WriteString("+/-  like/dislike\n")
	right.WriteString("o    open url\n")
	right.WriteString("Y    yank url\n")
	right.WriteString("T    cycle theme\n")
	right.WriteString("\n")
	right.WriteString(a.styles.HintDesc.Render("[any key] close"))

	leftCol := lipgloss.NewStyle().Width(20).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(26).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(cols))
}
