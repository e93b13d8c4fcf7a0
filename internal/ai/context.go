package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikbrunner/nexus/internal/model"
)

const maxSampleTitles = 3

// BuildContext generates a compact description of the collection for the
// prompt: each category with a few sample titles, then all existing tags.
func BuildContext(bookmarks []model.Bookmark) string {
	if len(bookmarks) == 0 {
		return "The collection is empty."
	}

	var sb strings.Builder
	sb.WriteString("Existing categories (with sample bookmarks):\n")

	order := []string{}
	samples := map[string][]string{}
	for _, b := range bookmarks {
		if _, seen := samples[b.Category]; !seen {
			order = append(order, b.Category)
			samples[b.Category] = []string{}
		}
		if len(samples[b.Category]) < maxSampleTitles {
			samples[b.Category] = append(samples[b.Category], fmt.Sprintf("%q", b.Title))
		}
	}

	for _, category := range order {
		sb.WriteString(category)
		sb.WriteString("\n  - ")
		sb.WriteString(strings.Join(samples[category], ", "))
		sb.WriteString("\n")
	}

	if tags := UniqueTags(bookmarks); len(tags) > 0 {
		sb.WriteString("\nExisting tags: ")
		sb.WriteString(strings.Join(tags, ", "))
	}

	return sb.String()
}

// UniqueTags returns all distinct tags, sorted.
func UniqueTags(bookmarks []model.Bookmark) []string {
	tagSet := make(map[string]bool)
	for _, b := range bookmarks {
		for _, tag := range b.Tags {
			tagSet[tag] = true
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}
