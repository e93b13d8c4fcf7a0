package search

import (
	"testing"

	"github.com/nikbrunner/nexus/internal/model"
)

func titled(titles ...string) []model.Bookmark {
	bookmarks := make([]model.Bookmark, len(titles))
	for i, title := range titles {
		bookmarks[i] = model.Bookmark{
			ID:    title,
			Title: title,
			URL:   "https://example.com/" + title,
			Tags:  []string{},
		}
	}
	return bookmarks
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub"), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub", "GitLab"), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(titled("TanStack Router", "React Router"), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub", "GitLab", "Gitea"), "git")

	if len(results) != 3 {
		t.Errorf("expected 3 results for 'git', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(titled("GitHub"), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ResultsDoNotAlias(t *testing.T) {
	bookmarks := titled("GitHub")
	results := FuzzySearchBookmarks(bookmarks, "git")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	results[0].Bookmark.Title = "changed"
	if bookmarks[0].Title != "GitHub" {
		t.Error("modifying a result should not touch the input slice")
	}
}
