package layout

// CalculateListHeight computes the rows available for the bookmark list.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeaderLines - cfg.FooterLines
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateVisibleItems computes how many bookmarks fit in listHeight rows.
func CalculateVisibleItems(listHeight int, cfg ListConfig) int {
	n := listHeight / cfg.LinesPerItem
	if n < 1 {
		return 1
	}
	return n
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(terminalWidth int, cfg ListConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < 10 {
		return 10
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
