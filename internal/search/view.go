package search

import (
	"strings"

	"github.com/nikbrunner/nexus/internal/model"
)

// AllCategories is the category selector that matches every bookmark.
const AllCategories = "all"

// Categories returns the AllCategories sentinel followed by the distinct
// categories of bookmarks in first-seen order.
func Categories(bookmarks []model.Bookmark) []string {
	result := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}

	for _, b := range bookmarks {
		if seen[b.Category] {
			continue
		}
		seen[b.Category] = true
		result = append(result, b.Category)
	}

	return result
}

// Filter returns the bookmarks in category whose title, description, URL or
// any tag contains query, case-insensitively. Order is preserved.
func Filter(bookmarks []model.Bookmark, category, query string) []model.Bookmark {
	needle := strings.ToLower(query)

	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if category != AllCategories && b.Category != category {
			continue
		}
		if needle != "" && !matches(b, needle) {
			continue
		}
		result = append(result, b)
	}

	return result
}

// matches reports whether the lowercase needle occurs in any searchable field.
func matches(b model.Bookmark, needle string) bool {
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Description), needle) ||
		strings.Contains(strings.ToLower(b.URL), needle) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// View is the transient category and query selection of a UI.
type View struct {
	Category string
	Query    string
}

// NewView returns a view showing every bookmark.
func NewView() View {
	return View{Category: AllCategories}
}

// Apply returns the bookmarks visible in this view.
func (v View) Apply(bookmarks []model.Bookmark) []model.Bookmark {
	category := v.Category
	if category == "" {
		category = AllCategories
	}
	return Filter(bookmarks, category, v.Query)
}

// Normalize falls back to AllCategories when the active category is no
// longer present, e.g. after its last bookmark was deleted.
func (v View) Normalize(categories []string) View {
	for _, c := range categories {
		if c == v.Category {
			return v
		}
	}
	v.Category = AllCategories
	return v
}

// Reset clears the query and category.
func (v View) Reset() View {
	return NewView()
}
