package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// metaSep separates the URL, category and tags on a bookmark's meta line.
const metaSep = " · "

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies.
// Wide runes count as two, escape sequences as zero.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText cuts text to at most maxWidth cells, ending in cfg.Ellipsis.
// The bool reports whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// MetaLine renders "url · category · #tag #tag" within maxWidth cells.
// Tags that do not fit are dropped from the end first, so a tag is never
// shown half cut. Only then is the line itself truncated.
func MetaLine(url, category string, tags []string, maxWidth int, cfg TextConfig) string {
	base := url + metaSep + category
	for n := len(tags); n > 0; n-- {
		line := base + metaSep + "#" + strings.Join(tags[:n], " #")
		if ansi.StringWidth(line) <= maxWidth {
			return line
		}
	}
	line, _ := TruncateText(base, maxWidth, cfg)
	return line
}
