package search

import (
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for bookmark slice.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	// Results point into a private copy so callers can't alias the collection
	source := make(bookmarkTitles, len(bookmarks))
	for i := range bookmarks {
		b := bookmarks[i]
		source[i] = &b
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
